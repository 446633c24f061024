package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/moosepick/internal/config"
)

type recordingSelector struct {
	called bool
	answer []string
}

func (r *recordingSelector) Pick(_ context.Context, _ string, _ []string) ([]string, error) {
	r.called = true
	return r.answer, nil
}

func writeTestArtifacts(t *testing.T, dir string) *config.Config {
	t.Helper()
	objects := `[
  "Kernels/HeatConduction",
  "Mesh/GeneratedMeshGenerator",
  "Outputs/CSV"
]`
	syntaxMap := `{
  "Kernels/HeatConduction": "[Kernels]\n  type = HeatConduction\n  diffusion_coeff = \n[../]",
  "Mesh/GeneratedMeshGenerator": "[Mesh]\n  type = GeneratedMeshGenerator\n[../]",
  "Outputs/CSV": "[Outputs]\n  type = CSV\n[../]"
}`
	cfg := &config.Config{
		ObjectsPath:   filepath.Join(dir, "objects.json"),
		SyntaxMapPath: filepath.Join(dir, "syntax_map.json"),
		MinKeep:       1,
	}
	require.NoError(t, os.WriteFile(cfg.ObjectsPath, []byte(objects), 0o644))
	require.NoError(t, os.WriteFile(cfg.SyntaxMapPath, []byte(syntaxMap), 0o644))
	return cfg
}

func TestRunPick_PrintsObjectsThenSyntax(t *testing.T) {
	cfg := writeTestArtifacts(t, t.TempDir())
	sel := &recordingSelector{answer: []string{"Kernels/HeatConduction", "Mesh/GeneratedMeshGenerator", "Outputs/CSV"}}

	var out bytes.Buffer
	require.NoError(t, runPick(context.Background(), cfg, sel, "steady heat conduction", &out))

	assert.True(t, sel.called)
	assert.Contains(t, out.String(), "### Picked objects ###")
	assert.Contains(t, out.String(), `"Kernels/HeatConduction"`)
	assert.Contains(t, out.String(), "### Mini syntax ###")
	assert.Contains(t, out.String(), "type = HeatConduction")
}

func TestRunPick_MissingStoreFailsBeforeTheModelCall(t *testing.T) {
	cfg := writeTestArtifacts(t, t.TempDir())
	require.NoError(t, os.Remove(cfg.SyntaxMapPath))

	sel := &recordingSelector{}
	var out bytes.Buffer
	err := runPick(context.Background(), cfg, sel, "steady heat conduction", &out)

	require.Error(t, err)
	assert.False(t, sel.called, "the selector must not be invoked when the store cannot load")
}

func TestRunPick_MissingObjectsFailsBeforeTheModelCall(t *testing.T) {
	cfg := writeTestArtifacts(t, t.TempDir())
	require.NoError(t, os.Remove(cfg.ObjectsPath))

	sel := &recordingSelector{}
	var out bytes.Buffer
	err := runPick(context.Background(), cfg, sel, "steady heat conduction", &out)

	require.Error(t, err)
	assert.False(t, sel.called)
}
