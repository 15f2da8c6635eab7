package interval

import (
	"fmt"

	"github.com/probe-ir/probe/internal/ir"
)

// Operation kinds with stock transfer functions.
const (
	WithBoundsOpName    = "probe.with_bounds"
	IncrementOpName     = "probe.increment"
	ReflectBoundsOpName = "probe.reflect_bounds"
)

// Registry maps operation kind names to transfer functions. The kind
// set includes dynamically registered operations, so insertion stays
// available at runtime rather than being a compile-time switch.
// Re-registering a name replaces the previous entry; callers own
// uniqueness.
type Registry struct {
	fns map[string]TransferFn
}

// NewRegistry creates a registry pre-populated with the dialect's stock
// transfer functions.
func NewRegistry() *Registry {
	r := &Registry{fns: make(map[string]TransferFn)}
	r.Register(WithBoundsOpName, WithBounds)
	r.Register(IncrementOpName, Increment)
	r.Register(ReflectBoundsOpName, ReflectBounds)
	return r
}

// Register attaches a transfer function to an operation kind name.
func (r *Registry) Register(opName string, fn TransferFn) {
	r.fns[opName] = fn
}

// Lookup returns the transfer function for an operation kind, if any.
func (r *Registry) Lookup(opName string) (TransferFn, bool) {
	fn, ok := r.fns[opName]
	return fn, ok
}

// InferResultRanges runs the transfer function registered for op's kind
// over the operand ranges. Kinds without a transfer function have no
// range semantics, which is an error distinct from a transfer failure.
func (r *Registry) InferResultRanges(op *ir.Operation, operands []Range) ([]Range, error) {
	fn, ok := r.fns[op.Name]
	if !ok {
		return nil, fmt.Errorf("no transfer function registered for %s", op.Name)
	}
	return fn(op, operands)
}
