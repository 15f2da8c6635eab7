package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probe-ir/probe/internal/ir"
)

// legacyModule builds a module holding n legacy-shaped ops (with the old
// "dimensions" key) plus one unrelated op that must stay untouched.
func legacyModule(n int) *ir.Module {
	m := ir.NewModule()
	for i := 0; i < n; i++ {
		op := ir.NewOperation(LegacyOpName)
		op.SetAttr("dimensions", ir.IntAttr(int64(10+i)))
		m.Push(op)
	}
	other := ir.NewOperation("probe.other")
	other.SetAttr("dimensions", ir.IntAttr(99))
	m.Push(other)
	return m
}

func TestUpgradeAtCurrentVersionIsNoOp(t *testing.T) {
	m := legacyModule(2)
	before := ir.PrintAttrDict(m.Body().Ops[0])

	require.NoError(t, Upgrade(m.Op, Current))
	assert.Equal(t, before, ir.PrintAttrDict(m.Body().Ops[0]),
		"upgrade at the current version must not touch the module")
}

func TestUpgradeRejectsFutureVersions(t *testing.T) {
	m := legacyModule(1)

	futures := []Version{
		{Major: 2, Minor: 1},
		{Major: 3, Minor: 0},
		{Major: 7, Minor: 4},
	}
	for _, version := range futures {
		err := Upgrade(m.Op, version)
		require.Error(t, err, "version %s must be rejected", version)
		assert.True(t, IsUnsupportedVersion(err))
		assert.Contains(t, err.Error(), version.String())
		assert.Contains(t, err.Error(), "2.0")
	}
}

func TestUpgradeRewritesEveryLegacyInstance(t *testing.T) {
	m := legacyModule(3)
	require.NoError(t, Upgrade(m.Op, Version{Major: 1, Minor: 0}))

	for i, op := range m.Body().Ops[:3] {
		_, hasOld := op.Attr("dimensions")
		assert.False(t, hasOld, "op %d keeps no legacy key", i)

		dims, ok := op.Attr("dims")
		require.True(t, ok, "op %d gains the new key", i)
		assert.Equal(t, ir.IntAttr(int64(10+i)), dims, "value carried over unchanged")

		modifier, ok := op.Attr("modifier")
		require.True(t, ok)
		assert.Equal(t, ir.BoolAttr(false), modifier, "modifier defaults to false")
	}
}

func TestUpgradeIgnoresOtherOps(t *testing.T) {
	m := legacyModule(1)
	require.NoError(t, Upgrade(m.Op, Version{Major: 1, Minor: 0}))

	other := m.Body().Ops[1]
	dims, ok := other.Attr("dimensions")
	require.True(t, ok, "non-legacy ops are untouched even with a matching key")
	assert.Equal(t, ir.IntAttr(99), dims)
	_, hasModifier := other.Attr("modifier")
	assert.False(t, hasModifier)
}

func TestUpgradeLegacyModuleTwice(t *testing.T) {
	m := legacyModule(2)
	require.NoError(t, Upgrade(m.Op, Version{Major: 1, Minor: 0}))

	// Flip one modifier so a second application would be observable.
	m.Body().Ops[0].SetAttr("modifier", ir.BoolAttr(true))
	snapshot := make([]string, len(m.Body().Ops))
	for i, op := range m.Body().Ops {
		snapshot[i] = ir.PrintAttrDict(op)
	}

	require.NoError(t, Upgrade(m.Op, Version{Major: 1, Minor: 0}))
	for i, op := range m.Body().Ops {
		assert.Equal(t, snapshot[i], ir.PrintAttrDict(op),
			"re-applying the upgrade must be a no-op")
	}
}

func TestUpgradeWalksNestedRegions(t *testing.T) {
	m := ir.NewModule()
	outer := ir.NewOperation("probe.outer")
	block := outer.AddRegion().AddBlock("bb0")
	nested := ir.NewOperation(LegacyOpName)
	nested.SetAttr("dimensions", ir.ArrayAttr{ir.IntAttr(1), ir.IntAttr(2)})
	block.Append(nested)
	m.Push(outer)

	require.NoError(t, Upgrade(m.Op, Version{Major: 0, Minor: 9}))

	dims, ok := nested.Attr("dims")
	require.True(t, ok, "the whole module is traversed, not just top level")
	assert.True(t, ir.Equal(ir.ArrayAttr{ir.IntAttr(1), ir.IntAttr(2)}, dims))
}
