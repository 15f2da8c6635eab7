package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probe-ir/probe/internal/effects"
	"github.com/probe-ir/probe/internal/ir"
)

func effectOp(name string, kinds ...string) *ir.Operation {
	op := ir.NewOperation(name)
	var arr ir.ArrayAttr
	for _, kind := range kinds {
		arr = append(arr, ir.DictAttr{"effect": ir.StringAttr(kind)})
	}
	if arr != nil {
		op.SetAttr(effects.EffectsAttrName, arr)
	}
	return op
}

func TestFallbackForMatchesOneName(t *testing.T) {
	d := New()

	fb, ok := d.FallbackFor(UnregisteredEffectOpName)
	require.True(t, ok)
	assert.NotNil(t, fb)

	_, ok = d.FallbackFor("probe.some_other_op")
	assert.False(t, ok)
	_, ok = d.FallbackFor(SideEffectOpName)
	assert.False(t, ok)
}

func TestFallbackIsSingleton(t *testing.T) {
	d := New()
	a, ok := d.FallbackFor(UnregisteredEffectOpName)
	require.True(t, ok)
	b, ok := d.FallbackFor(UnregisteredEffectOpName)
	require.True(t, ok)
	assert.Same(t, a, b)
}

func TestFallbackResolvesDeclaredEffects(t *testing.T) {
	d := New()
	fb, ok := d.FallbackFor(UnregisteredEffectOpName)
	require.True(t, ok)

	instances, err := fb.Effects(effectOp(UnregisteredEffectOpName, "read", "write"))
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, effects.Read, instances[0].Effect)
	assert.Equal(t, effects.Write, instances[1].Effect)
}

func TestFallbackPanicsOnWrongKind(t *testing.T) {
	d := New()
	fb, ok := d.FallbackFor(UnregisteredEffectOpName)
	require.True(t, ok)

	assert.Panics(t, func() {
		_, _ = fb.Effects(effectOp("probe.some_other_op"))
	})
}

func TestOperationEffectsDirectPath(t *testing.T) {
	d := New()

	instances, answered, err := d.OperationEffects(effectOp(SideEffectOpName, "allocate"))
	require.NoError(t, err)
	require.True(t, answered)
	require.Len(t, instances, 1)
	assert.Equal(t, effects.Allocate, instances[0].Effect)
}

func TestOperationEffectsFallbackPath(t *testing.T) {
	d := New()

	instances, answered, err := d.OperationEffects(effectOp(UnregisteredEffectOpName, "free"))
	require.NoError(t, err)
	require.True(t, answered)
	require.Len(t, instances, 1)
	assert.Equal(t, effects.Free, instances[0].Effect)
}

func TestOperationEffectsUnansweredKind(t *testing.T) {
	d := New()

	_, answered, err := d.OperationEffects(effectOp("foreign.op", "read"))
	require.NoError(t, err)
	assert.False(t, answered)
}

func TestOperationEffectsNoAttrMeansZeroEffects(t *testing.T) {
	d := New()

	instances, answered, err := d.OperationEffects(effectOp(SideEffectOpName))
	require.NoError(t, err)
	assert.True(t, answered)
	assert.Empty(t, instances)
}
