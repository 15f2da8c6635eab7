package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/legacy-upgrade.yaml")
	require.NoError(t, err)
	assert.Equal(t, "legacy-upgrade", s.Name)
	assert.Equal(t, "1.0", s.Version)
	require.Len(t, s.Records, 1)
	assert.Equal(t, int64(3), s.Records[0].V0)
	assert.Equal(t, int64(9), s.Records[0].V1)
	assert.Equal(t, []string{StepLoadSection, StepVerify}, s.Steps)
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestParseScenarioRejectsUnknownFields(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: typo
description: a field name with a typo must fail loudly
version: "2.0"
steps: [verify]
asertions: []
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenarioValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "description: d\nversion: \"2.0\"\nsteps: [verify]\n",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: n\nversion: \"2.0\"\nsteps: [verify]\n",
			want: "description is required",
		},
		{
			name: "missing version",
			yaml: "name: n\ndescription: d\nsteps: [verify]\n",
			want: "version is required",
		},
		{
			name: "bad version",
			yaml: "name: n\ndescription: d\nversion: nope\nsteps: [verify]\n",
			want: "bad version",
		},
		{
			name: "no steps",
			yaml: "name: n\ndescription: d\nversion: \"2.0\"\n",
			want: "steps list is required",
		},
		{
			name: "unknown step",
			yaml: "name: n\ndescription: d\nversion: \"2.0\"\nsteps: [teleport]\n",
			want: `unknown step "teleport"`,
		},
		{
			name: "op without name",
			yaml: "name: n\ndescription: d\nversion: \"2.0\"\nsteps: [verify]\nmodule:\n  - attrs: {x: 1}\n",
			want: "module[0]: name is required",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tc.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
