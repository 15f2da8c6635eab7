package harness

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probe-ir/probe/internal/ir"
)

func TestRunLegacyUpgrade(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/legacy-upgrade.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, StatusPass, result.Status)
	assert.Equal(t, "run-legacy-upgrade", result.RunToken)
	require.Len(t, result.Events, 3)
	assert.Equal(t, StepLoadSection, result.Events[0].Step)
	assert.Equal(t, "decoded 1 records at version 1.0", result.Events[0].Detail)
	assert.Equal(t, "#probe.pairs<3, 9>", result.Events[1].Detail)
	assert.NotEmpty(t, result.Section)
}

func TestRunFutureVersionFails(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/future-version.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, StatusFail, result.Status)
	require.Len(t, result.Events, 1)
	assert.Equal(t, StepLoadSection, result.Events[0].Step)
	assert.Contains(t, result.Events[0].Error, "can't upgrade from version 3.1")
}

func TestRunIssuesFreshTokenWhenUnpinned(t *testing.T) {
	s := &Scenario{
		Name:        "fresh-token",
		Description: "runs without a pinned token get a fresh one",
		Version:     "2.0",
		Steps:       []string{StepVerify},
	}
	require.NoError(t, validateScenario(s))

	a, err := Run(s)
	require.NoError(t, err)
	b, err := Run(s)
	require.NoError(t, err)

	assert.NotEqual(t, a.RunToken, b.RunToken)
	_, err = uuid.Parse(a.RunToken)
	assert.NoError(t, err)
}

func TestRunStopsAfterFirstFailure(t *testing.T) {
	s := &Scenario{
		Name:        "stop-on-failure",
		Description: "a failing step ends the run",
		Version:     "3.0",
		Steps:       []string{StepLoadSection, StepVerify},
		RunToken:    "fixed",
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, StatusFail, result.Status)
	// The verify step never runs after the failed load.
	require.Len(t, result.Events, 1)
	assert.Equal(t, StepLoadSection, result.Events[0].Step)
}

func TestBuildModuleTranslatesAttrs(t *testing.T) {
	s := &Scenario{
		Module: []OpSpec{{
			Name: "probe.any",
			Attrs: map[string]any{
				"flag":  true,
				"count": 7,
				"label": "x",
				"list":  []any{1, 2},
				"nested": map[string]any{
					"inner": "y",
				},
			},
			Operands: 2,
			Results:  1,
		}},
	}

	module, err := BuildModule(s)
	require.NoError(t, err)
	ops := module.Body().Ops
	require.Len(t, ops, 1)

	op := ops[0]
	assert.True(t, ir.Equal(ir.BoolAttr(true), mustAttr(t, op, "flag")))
	assert.True(t, ir.Equal(ir.IntAttr(7), mustAttr(t, op, "count")))
	assert.True(t, ir.Equal(ir.StringAttr("x"), mustAttr(t, op, "label")))
	assert.True(t, ir.Equal(ir.ArrayAttr{ir.IntAttr(1), ir.IntAttr(2)}, mustAttr(t, op, "list")))
	assert.True(t, ir.Equal(ir.DictAttr{"inner": ir.StringAttr("y")}, mustAttr(t, op, "nested")))
	assert.Len(t, op.Operands, 2)
	assert.Len(t, op.Results, 1)
}

func mustAttr(t *testing.T, op *ir.Operation, name string) ir.Attr {
	t.Helper()
	a, ok := op.Attr(name)
	require.True(t, ok, name)
	return a
}

func TestRunEffectsConfigurationError(t *testing.T) {
	s := &Scenario{
		Name:        "bad-effect",
		Description: "an unknown effect string fails the run",
		Version:     "2.0",
		RunToken:    "fixed",
		Module: []OpSpec{{
			Name: "probe.side_effect_op",
			Attrs: map[string]any{
				"effects": []any{map[string]any{"effect": "observe"}},
			},
		}},
		Steps: []string{StepEffects},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, StatusFail, result.Status)
	require.Len(t, result.Events, 1)
	assert.Contains(t, result.Events[0].Error, `unknown effect "observe"`)
}
