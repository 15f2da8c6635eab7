package interval

import (
	"fmt"

	"github.com/probe-ir/probe/internal/ir"
)

// Attribute keys read and written by the bounds transfer functions.
const (
	uminKey  = "umin"
	umaxKey  = "umax"
	sminKey  = "smin"
	smaxKey  = "smax"
	widthKey = "width"
)

// TransferFn computes sound result ranges from operand ranges for one
// operation kind. The operation is passed so probe kinds can record
// what the engine computed; a transfer function must not otherwise
// depend on it, and must not produce a range excluding a value the
// operand could take.
type TransferFn func(op *ir.Operation, operands []Range) ([]Range, error)

// WithBounds ignores its operands and emits the four statically
// specified bounds carried as attributes on the operation.
func WithBounds(op *ir.Operation, _ []Range) ([]Range, error) {
	r, err := rangeFromAttrs(op)
	if err != nil {
		return nil, err
	}
	return []Range{r}, nil
}

// Increment adds one to both lanes of the single operand range,
// saturating at the width's maxima instead of wrapping. Saturation
// keeps the result sound: once the operand may already be at MAX, the
// result may be too.
func Increment(_ *ir.Operation, operands []Range) ([]Range, error) {
	if len(operands) != 1 {
		return nil, fmt.Errorf("increment expects 1 operand range, got %d", len(operands))
	}
	in := operands[0]
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("increment operand: %w", err)
	}
	out := Range{
		Width: in.Width,
		UMin:  in.uaddSatOne(in.UMin),
		UMax:  in.uaddSatOne(in.UMax),
		SMin:  in.saddSatOne(in.SMin),
		SMax:  in.saddSatOne(in.SMax),
	}
	return []Range{out}, nil
}

// ReflectBounds echoes the single operand range back out, and records
// the four bounds as attributes on the operation so tests can observe
// exactly what the inference engine computed.
func ReflectBounds(op *ir.Operation, operands []Range) ([]Range, error) {
	if len(operands) != 1 {
		return nil, fmt.Errorf("reflect_bounds expects 1 operand range, got %d", len(operands))
	}
	in := operands[0]
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("reflect_bounds operand: %w", err)
	}
	op.SetAttr(uminKey, ir.IntAttr(int64(in.UMin)))
	op.SetAttr(umaxKey, ir.IntAttr(int64(in.UMax)))
	op.SetAttr(sminKey, ir.IntAttr(in.SMin))
	op.SetAttr(smaxKey, ir.IntAttr(in.SMax))
	return []Range{in}, nil
}

// rangeFromAttrs reads the four bound attributes plus an optional width
// (default 64) off an operation.
func rangeFromAttrs(op *ir.Operation) (Range, error) {
	width := uint32(64)
	if w, ok := op.Attr(widthKey); ok {
		wi, ok := w.(ir.IntAttr)
		if !ok || wi <= 0 || wi > 64 {
			return Range{}, fmt.Errorf("op %s has bad width attribute %v", op.Name, w)
		}
		width = uint32(wi)
	}

	read := func(key string) (int64, error) {
		a, ok := op.Attr(key)
		if !ok {
			return 0, fmt.Errorf("op %s is missing bound attribute %q", op.Name, key)
		}
		i, ok := a.(ir.IntAttr)
		if !ok {
			return 0, fmt.Errorf("op %s bound attribute %q must be an integer, got %T", op.Name, key, a)
		}
		return int64(i), nil
	}

	umin, err := read(uminKey)
	if err != nil {
		return Range{}, err
	}
	umax, err := read(umaxKey)
	if err != nil {
		return Range{}, err
	}
	smin, err := read(sminKey)
	if err != nil {
		return Range{}, err
	}
	smax, err := read(smaxKey)
	if err != nil {
		return Range{}, err
	}

	r := Range{
		Width: width,
		UMin:  uint64(umin),
		UMax:  uint64(umax),
		SMin:  smin,
		SMax:  smax,
	}
	if err := r.Validate(); err != nil {
		return Range{}, fmt.Errorf("op %s bounds: %w", op.Name, err)
	}
	return r, nil
}
