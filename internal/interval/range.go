// Package interval implements the probe dialect's integer-range
// inference model: constant ranges over both unsigned and signed lanes,
// saturating arithmetic at an explicit bit width, and per-operation
// transfer functions.
//
// Every transfer function is sound: it may over-approximate the values a
// result can take, but must never exclude one the operand could
// legitimately produce.
package interval

import "fmt"

// Range is a constant integer range at a fixed bit width: an unsigned
// interval [UMin, UMax] and a signed interval [SMin, SMax] over the same
// N-bit value.
type Range struct {
	Width uint32 // bit width, 1..64

	UMin uint64
	UMax uint64
	SMin int64
	SMax int64
}

// MaxU returns the largest unsigned value representable at r's width.
func (r Range) MaxU() uint64 {
	if r.Width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << r.Width) - 1
}

// MaxS returns the largest signed value representable at r's width.
func (r Range) MaxS() int64 {
	if r.Width >= 64 {
		return int64(^uint64(0) >> 1)
	}
	return (int64(1) << (r.Width - 1)) - 1
}

// MinS returns the smallest signed value representable at r's width.
func (r Range) MinS() int64 {
	if r.Width >= 64 {
		return -r.MaxS() - 1
	}
	return -(int64(1) << (r.Width - 1))
}

// Validate checks the range invariants: a usable width, ordered lanes,
// and every bound representable at the width.
func (r Range) Validate() error {
	if r.Width == 0 || r.Width > 64 {
		return fmt.Errorf("range width must be 1..64, got %d", r.Width)
	}
	if r.UMin > r.UMax {
		return fmt.Errorf("unsigned range inverted: umin %d > umax %d", r.UMin, r.UMax)
	}
	if r.SMin > r.SMax {
		return fmt.Errorf("signed range inverted: smin %d > smax %d", r.SMin, r.SMax)
	}
	if r.UMax > r.MaxU() {
		return fmt.Errorf("umax %d exceeds %d-bit maximum %d", r.UMax, r.Width, r.MaxU())
	}
	if r.SMax > r.MaxS() || r.SMin < r.MinS() {
		return fmt.Errorf("signed bounds [%d, %d] exceed %d-bit limits [%d, %d]",
			r.SMin, r.SMax, r.Width, r.MinS(), r.MaxS())
	}
	return nil
}

// ContainsU reports whether the unsigned lane covers x.
func (r Range) ContainsU(x uint64) bool {
	return x >= r.UMin && x <= r.UMax
}

// ContainsS reports whether the signed lane covers x.
func (r Range) ContainsS(x int64) bool {
	return x >= r.SMin && x <= r.SMax
}

// String renders the range as "[umin, umax] / [smin, smax] : iN".
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d] / [%d, %d] : i%d", r.UMin, r.UMax, r.SMin, r.SMax, r.Width)
}

// uaddSatOne adds one to an unsigned value, clamping at the width's
// maximum instead of wrapping.
func (r Range) uaddSatOne(x uint64) uint64 {
	if x >= r.MaxU() {
		return r.MaxU()
	}
	return x + 1
}

// saddSatOne adds one to a signed value, clamping at the width's
// maximum instead of wrapping.
func (r Range) saddSatOne(x int64) int64 {
	if x >= r.MaxS() {
		return r.MaxS()
	}
	return x + 1
}
