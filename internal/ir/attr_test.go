package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualScalars(t *testing.T) {
	assert.True(t, Equal(StringAttr("a"), StringAttr("a")))
	assert.False(t, Equal(StringAttr("a"), StringAttr("b")))
	assert.True(t, Equal(IntAttr(7), IntAttr(7)))
	assert.False(t, Equal(IntAttr(7), IntAttr(8)))
	assert.True(t, Equal(BoolAttr(true), BoolAttr(true)))
	assert.True(t, Equal(UnitAttr{}, UnitAttr{}))
	assert.True(t, Equal(SymbolRefAttr("f"), SymbolRefAttr("f")))
}

func TestEqualRejectsKindMismatch(t *testing.T) {
	assert.False(t, Equal(StringAttr("1"), IntAttr(1)), "different kinds never compare equal")
	assert.False(t, Equal(IntAttr(1), BoolAttr(true)))
	assert.False(t, Equal(UnitAttr{}, BoolAttr(true)))
}

func TestEqualPairs(t *testing.T) {
	assert.True(t, Equal(PairsAttr{V0: 1, V1: 2}, PairsAttr{V0: 1, V1: 2}))
	assert.False(t, Equal(PairsAttr{V0: 1, V1: 2}, PairsAttr{V0: 2, V1: 1}),
		"field order matters in memory even though wire order varies")
}

func TestEqualNested(t *testing.T) {
	a := ArrayAttr{IntAttr(1), DictAttr{"k": StringAttr("v")}}
	b := ArrayAttr{IntAttr(1), DictAttr{"k": StringAttr("v")}}
	c := ArrayAttr{IntAttr(1), DictAttr{"k": StringAttr("w")}}

	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.False(t, Equal(a, ArrayAttr{IntAttr(1)}), "length mismatch")
}

func TestDictSortedKeys(t *testing.T) {
	d := DictAttr{"zeta": IntAttr(1), "alpha": IntAttr(2), "mid": IntAttr(3)}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, d.SortedKeys())
}

func TestOperationAttrAccessors(t *testing.T) {
	op := NewOperation("probe.any")
	_, ok := op.Attr("dims")
	assert.False(t, ok)

	op.SetAttr("dims", IntAttr(4))
	got, ok := op.Attr("dims")
	assert.True(t, ok)
	assert.Equal(t, IntAttr(4), got)

	op.RemoveAttr("dims")
	_, ok = op.Attr("dims")
	assert.False(t, ok)

	// Removing twice is a no-op.
	op.RemoveAttr("dims")
}
