package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probe-ir/probe/internal/dialect"
	"github.com/probe-ir/probe/internal/directive"
	"github.com/probe-ir/probe/internal/ir"
)

func TestLoadDynamicOps(t *testing.T) {
	defs, err := LoadDynamicOps(filepath.Join("testdata", "ops"))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	byName := map[string]*dialect.DynamicOpDef{}
	for _, def := range defs {
		byName[def.Name] = def
	}
	require.Contains(t, byName, "probe.shuffle")
	require.Contains(t, byName, "probe.tagged")
}

func TestLoadedArityVerifier(t *testing.T) {
	defs, err := LoadDynamicOps(filepath.Join("testdata", "ops"))
	require.NoError(t, err)

	var shuffle *dialect.DynamicOpDef
	for _, def := range defs {
		if def.Name == "probe.shuffle" {
			shuffle = def
		}
	}
	require.NotNil(t, shuffle)

	good := ir.NewOperation("probe.shuffle")
	good.AddOperand(&ir.Value{Name: "a", Type: ir.I32})
	good.AddOperand(&ir.Value{Name: "b", Type: ir.I32})
	good.AddResult("r", ir.I32)
	assert.NoError(t, shuffle.Verify(good))

	bad := ir.NewOperation("probe.shuffle")
	err = shuffle.Verify(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 operands, but had 0")
}

func TestLoadedKeywordSyntax(t *testing.T) {
	defs, err := LoadDynamicOps(filepath.Join("testdata", "ops"))
	require.NoError(t, err)

	var tagged *dialect.DynamicOpDef
	for _, def := range defs {
		if def.Name == "probe.tagged" {
			tagged = def
		}
	}
	require.NotNil(t, tagged)
	require.True(t, tagged.HasCustomSyntax())

	op := ir.NewOperation("probe.tagged")
	p := directive.NewParser("tagged_format")
	require.NoError(t, tagged.Parse(p, op))

	pr := directive.NewPrinter()
	tagged.Print(pr, op)
	assert.Equal(t, " tagged_format", pr.String())
}

func TestLoadDynamicOpsMissingDir(t *testing.T) {
	_, err := LoadDynamicOps("/nonexistent/ops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}

func TestLoadDynamicOpsEmptyDir(t *testing.T) {
	_, err := LoadDynamicOps(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNoFiles)
}

func TestLoadDynamicOpsBadDefinition(t *testing.T) {
	dir := t.TempDir()
	bad := "op: {\n\tbroken: {\n\t\toperands: -3\n\t}\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.cue"), []byte(bad), 0o644))

	_, err := LoadDynamicOps(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operands must be a non-negative integer")
}

func TestFindCUEFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.cue"), []byte("op: {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))

	files, err := FindCUEFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.cue", filepath.Base(files[0]))
}
