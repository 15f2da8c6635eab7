package ir

import "fmt"

// Type is a sealed interface over the closed set of value types the
// substrate provides: index, sized integers, and tuples of those.
type Type interface {
	irType() // Sealed - only these types implement it
	String() string
}

// IndexType is the platform-width integer type.
type IndexType struct{}

func (IndexType) irType() {}

func (IndexType) String() string { return "index" }

// Signedness distinguishes integer type semantics.
type Signedness int

const (
	// Signless integers carry no sign interpretation of their own.
	Signless Signedness = iota
	// Signed integers are two's-complement signed.
	Signed
	// Unsigned integers are unsigned.
	Unsigned
)

// IntType is a fixed-width integer type.
type IntType struct {
	Width      uint32
	Signedness Signedness
}

func (IntType) irType() {}

func (t IntType) String() string {
	switch t.Signedness {
	case Signed:
		return fmt.Sprintf("si%d", t.Width)
	case Unsigned:
		return fmt.Sprintf("ui%d", t.Width)
	default:
		return fmt.Sprintf("i%d", t.Width)
	}
}

// TupleType is an ordered aggregate of element types.
type TupleType []Type

func (TupleType) irType() {}

func (t TupleType) String() string {
	s := "tuple<"
	for i, elem := range t {
		if i > 0 {
			s += ", "
		}
		s += elem.String()
	}
	return s + ">"
}

// I32 is the conventional signless 32-bit integer type.
var I32 = IntType{Width: 32}

// Index is the shared index type instance.
var Index = IndexType{}
