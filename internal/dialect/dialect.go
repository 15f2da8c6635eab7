package dialect

import (
	"errors"
	"fmt"

	"github.com/probe-ir/probe/internal/blob"
	"github.com/probe-ir/probe/internal/interval"
	"github.com/probe-ir/probe/internal/ir"
)

// VerifyError is a verification diagnostic attached to one operation.
type VerifyError struct {
	Op      string
	Message string
}

// Error implements the error interface.
func (e *VerifyError) Error() string {
	return fmt.Sprintf("operation %q: %s", e.Op, e.Message)
}

// IsVerifyError returns true if err is (or wraps) a VerifyError.
func IsVerifyError(err error) bool {
	var ve *VerifyError
	return errors.As(err, &ve)
}

// Dialect owns the probe dialect's registries. One instance belongs to
// one IR context for that context's lifetime; the host must not mutate
// its registries from more than one goroutine.
type Dialect struct {
	dynamicOps map[string]*DynamicOpDef
	blobs      *blob.Registry
	transfers  *interval.Registry
	fallback   *EffectsFallback
}

// New constructs a dialect with the stock dynamic operations, an empty
// blob registry, the stock transfer table, and the effect fallback
// singleton already in place.
func New() *Dialect {
	d := &Dialect{
		dynamicOps: make(map[string]*DynamicOpDef),
		blobs:      blob.NewRegistry(),
		transfers:  interval.NewRegistry(),
		fallback:   &EffectsFallback{},
	}
	for _, def := range stockDynamicOps() {
		d.RegisterDynamicOp(def)
	}
	return d
}

// RegisterDynamicOp adds a dynamic operation definition. Registration
// happens during dialect initialization; callers own name uniqueness,
// a duplicate name simply replaces the earlier definition.
func (d *Dialect) RegisterDynamicOp(def *DynamicOpDef) {
	d.dynamicOps[def.Name] = def
}

// LookupDynamicOp finds a dynamic operation definition by name.
func (d *Dialect) LookupDynamicOp(name string) (*DynamicOpDef, bool) {
	def, ok := d.dynamicOps[name]
	return def, ok
}

// DynamicOpNames returns the registered dynamic operation names in
// unspecified order.
func (d *Dialect) DynamicOpNames() []string {
	names := make([]string, 0, len(d.dynamicOps))
	for name := range d.dynamicOps {
		names = append(names, name)
	}
	return names
}

// Blobs returns the dialect-scoped resource blob registry.
func (d *Dialect) Blobs() *blob.Registry {
	return d.blobs
}

// Transfers returns the dialect-scoped range-inference transfer table.
func (d *Dialect) Transfers() *interval.Registry {
	return d.transfers
}

// VerifyOperation runs the registered verifier for op's kind, then the
// region verifier when one is present. Operations of kinds this
// dialect does not know are not its business to reject; they verify
// vacuously.
func (d *Dialect) VerifyOperation(op *ir.Operation) error {
	def, ok := d.dynamicOps[op.Name]
	if !ok {
		return nil
	}
	if err := def.Verify(op); err != nil {
		return fmt.Errorf("verifying %s: %w", op.Name, err)
	}
	if def.VerifyRegion != nil {
		if err := def.VerifyRegion(op); err != nil {
			return fmt.Errorf("verifying regions of %s: %w", op.Name, err)
		}
	}
	return nil
}

// VerifyModule verifies every operation under the module root.
func (d *Dialect) VerifyModule(m *ir.Module) error {
	return ir.Walk(m.Op, d.VerifyOperation)
}
