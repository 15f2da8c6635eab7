package dialect

import (
	"fmt"

	"github.com/probe-ir/probe/internal/effects"
	"github.com/probe-ir/probe/internal/ir"
)

// UnregisteredEffectOpName is the one operation kind the effect
// fallback answers for. The name is never registered anywhere; the
// fallback exists precisely so an unknown kind can still answer an
// effect query.
const UnregisteredEffectOpName = "probe.unregistered_side_effect_op"

// EffectsFallback is the process-wide default implementation of the
// effect query for unregistered operation kinds. It is allocated once
// by New and lives as long as the dialect.
type EffectsFallback struct{}

// Valid reports whether the fallback applies to the given kind name.
func (f *EffectsFallback) Valid(opName string) bool {
	return opName == UnregisteredEffectOpName
}

// Effects resolves op's declared effects. The fallback must never be
// dispatched against a kind its predicate rejects; that is a host bug,
// not an input error, so it fails fast.
func (f *EffectsFallback) Effects(op *ir.Operation) ([]effects.Instance, error) {
	if !f.Valid(op.Name) {
		panic(fmt.Sprintf("effect fallback dispatched against %q", op.Name))
	}
	return effects.FromOperation(op)
}

// FallbackFor returns the effect fallback when the kind name satisfies
// its predicate, and nothing otherwise.
func (d *Dialect) FallbackFor(opName string) (*EffectsFallback, bool) {
	if !d.fallback.Valid(opName) {
		return nil, false
	}
	return d.fallback, true
}

// OperationEffects answers the effect query for op: registered kinds
// resolve their declared effects directly, and the single fallback-
// eligible unregistered kind resolves through the fallback. Kinds with
// neither path report no implementation.
func (d *Dialect) OperationEffects(op *ir.Operation) ([]effects.Instance, bool, error) {
	if _, ok := d.dynamicOps[op.Name]; ok {
		instances, err := effects.FromOperation(op)
		return instances, true, err
	}
	if fb, ok := d.FallbackFor(op.Name); ok {
		instances, err := fb.Effects(op)
		return instances, true, err
	}
	return nil, false, nil
}
