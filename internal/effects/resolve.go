package effects

import (
	"errors"
	"fmt"

	"github.com/probe-ir/probe/internal/ir"
)

// Attribute keys consumed from effect dictionaries.
const (
	// EffectsAttrName is the top-level array attribute holding effect
	// dictionaries. Its absence means "no declared effects", which is
	// distinct from "unknown effects"; this dialect never expresses the
	// latter.
	EffectsAttrName = "effects"

	effectKey       = "effect"
	resourceMarker  = "probe_resource"
	onResultMarker  = "on_result"
	onReferenceKey  = "on_reference"
)

// ResolveErrorCode categorizes effect resolution failures.
type ResolveErrorCode string

const (
	// ErrCodeUnknownEffect indicates an effect string matching none of
	// the four kinds.
	ErrCodeUnknownEffect ResolveErrorCode = "UNKNOWN_EFFECT"

	// ErrCodeBadElement indicates a malformed effect dictionary.
	ErrCodeBadElement ResolveErrorCode = "BAD_ELEMENT"
)

// ResolveError represents a configuration error in an effects attribute.
type ResolveError struct {
	Code    ResolveErrorCode
	Message string
	Op      string // offending operation name, when known
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s (op=%s)", e.Code, e.Message, e.Op)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnknownEffect returns true for unknown effect string failures.
func IsUnknownEffect(err error) bool {
	var re *ResolveError
	return errors.As(err, &re) && re.Code == ErrCodeUnknownEffect
}

// Instance is one declared effect: a kind, the resource it acts on, and
// an optional target (the op's own result, or a symbol elsewhere in the
// module). A zero target means a whole-operation effect.
type Instance struct {
	Effect   Kind
	Resource Resource

	// Value is the affected SSA value, when the effect targets the
	// operation's result.
	Value *ir.Value

	// Symbol is the affected symbolic reference, when the effect targets
	// one. Empty otherwise.
	Symbol ir.SymbolRefAttr
}

// FromOperation resolves an operation's declared effects. An operation
// without an effects attribute has zero effects. Each array element is a
// dictionary resolved in three steps: effect kind by exact string match,
// resource by presence of the probe_resource marker, and target by
// presence of exactly one of on_result / on_reference.
func FromOperation(op *ir.Operation) ([]Instance, error) {
	attr, ok := op.Attr(EffectsAttrName)
	if !ok {
		return nil, nil
	}
	list, ok := attr.(ir.ArrayAttr)
	if !ok {
		return nil, &ResolveError{
			Code:    ErrCodeBadElement,
			Message: fmt.Sprintf("effects attribute must be an array, got %T", attr),
			Op:      op.Name,
		}
	}

	instances := make([]Instance, 0, len(list))
	for i, elem := range list {
		dict, ok := elem.(ir.DictAttr)
		if !ok {
			return nil, &ResolveError{
				Code:    ErrCodeBadElement,
				Message: fmt.Sprintf("effects[%d] must be a dictionary, got %T", i, elem),
				Op:      op.Name,
			}
		}
		inst, err := resolveElement(op, i, dict)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// resolveElement resolves one effect dictionary.
func resolveElement(op *ir.Operation, index int, dict ir.DictAttr) (Instance, error) {
	name, ok := dict[effectKey].(ir.StringAttr)
	if !ok {
		return Instance{}, &ResolveError{
			Code:    ErrCodeBadElement,
			Message: fmt.Sprintf("effects[%d] has no string %q entry", index, effectKey),
			Op:      op.Name,
		}
	}
	kind, err := ParseKind(string(name))
	if err != nil {
		var re *ResolveError
		if errors.As(err, &re) {
			re.Op = op.Name
		}
		return Instance{}, err
	}

	resource := DefaultResource
	if _, ok := dict[resourceMarker]; ok {
		resource = DialectResource
	}

	inst := Instance{Effect: kind, Resource: resource}

	_, onResult := dict[onResultMarker]
	ref, onReference := dict[onReferenceKey]
	switch {
	case onResult && onReference:
		return Instance{}, &ResolveError{
			Code:    ErrCodeBadElement,
			Message: fmt.Sprintf("effects[%d] names both %s and %s", index, onResultMarker, onReferenceKey),
			Op:      op.Name,
		}
	case onResult:
		if len(op.Results) == 0 {
			return Instance{}, &ResolveError{
				Code:    ErrCodeBadElement,
				Message: fmt.Sprintf("effects[%d] targets a result but the op has none", index),
				Op:      op.Name,
			}
		}
		inst.Value = op.Results[0]
	case onReference:
		sym, ok := ref.(ir.SymbolRefAttr)
		if !ok {
			return Instance{}, &ResolveError{
				Code:    ErrCodeBadElement,
				Message: fmt.Sprintf("effects[%d] %s must be a symbol reference, got %T", index, onReferenceKey, ref),
				Op:      op.Name,
			}
		}
		inst.Symbol = sym
	}
	return inst, nil
}
