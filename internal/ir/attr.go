package ir

import "sort"

// Attr is a sealed interface over the closed set of attribute kinds.
// Only StringAttr, IntAttr, BoolAttr, UnitAttr, ArrayAttr, DictAttr,
// SymbolRefAttr, and PairsAttr implement it. The bytecode codec and the
// textual printer both dispatch over this set exhaustively, so new kinds
// must be added here, not in client packages.
type Attr interface {
	irAttr() // Sealed - only these types implement it
}

// StringAttr represents a string attribute value.
type StringAttr string

func (StringAttr) irAttr() {}

// IntAttr represents an integer attribute value. Always int64.
type IntAttr int64

func (IntAttr) irAttr() {}

// BoolAttr represents a boolean attribute value.
type BoolAttr bool

func (BoolAttr) irAttr() {}

// UnitAttr is a marker attribute: its presence is the information.
// Effect dictionaries use unit markers to select resources and targets.
type UnitAttr struct{}

func (UnitAttr) irAttr() {}

// ArrayAttr represents an ordered list of attribute values.
type ArrayAttr []Attr

func (ArrayAttr) irAttr() {}

// DictAttr represents a keyed set of attribute values.
// Use SortedKeys for deterministic iteration.
type DictAttr map[string]Attr

func (DictAttr) irAttr() {}

// SymbolRefAttr is a by-name reference to a symbol elsewhere in the
// module. It carries no ownership; resolution is the host's problem.
type SymbolRefAttr string

func (SymbolRefAttr) irAttr() {}

// PairsAttr is the probe dialect's parameterized attribute: two integer
// fields with a custom bytecode encoding. The in-memory representation is
// version-independent; only the wire layout varies by dialect version.
type PairsAttr struct {
	V0 int64
	V1 int64
}

func (PairsAttr) irAttr() {}

// SortedKeys returns the dictionary keys in lexical order.
// All printing and hashing paths iterate via this to stay deterministic.
func (d DictAttr) SortedKeys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports deep equality of two attribute values.
func Equal(a, b Attr) bool {
	switch av := a.(type) {
	case StringAttr:
		bv, ok := b.(StringAttr)
		return ok && av == bv
	case IntAttr:
		bv, ok := b.(IntAttr)
		return ok && av == bv
	case BoolAttr:
		bv, ok := b.(BoolAttr)
		return ok && av == bv
	case UnitAttr:
		_, ok := b.(UnitAttr)
		return ok
	case SymbolRefAttr:
		bv, ok := b.(SymbolRefAttr)
		return ok && av == bv
	case PairsAttr:
		bv, ok := b.(PairsAttr)
		return ok && av == bv
	case ArrayAttr:
		bv, ok := b.(ArrayAttr)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case DictAttr:
		bv, ok := b.(DictAttr)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !Equal(v, bvv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
