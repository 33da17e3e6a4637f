package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// dataDir extracts the shared SKL fixture into a temporary data root and
// returns the root and the path of the target list.
func dataDir(t *testing.T) (string, string) {
	t.Helper()
	ar, err := txtar.ParseFile("../pmevo/testdata/skl.txtar")
	require.NoError(t, err)

	dir := t.TempDir()
	for _, f := range ar.Files {
		path := filepath.Join(dir, f.Name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, f.Data, 0o600))
	}
	return dir, filepath.Join(dir, "targets.txt")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"pmevo-compat"}, args...))
	return out.String(), err
}

func TestMapText(t *testing.T) {
	root, targets := dataDir(t)

	out, err := run(t, "map", "--data-root", root, "--arch", "SKL", targets)
	require.NoError(t, err)
	assert.Contains(t, out, "🖥 Architecture: SKL\n")
	assert.Contains(t, out, "⚙️ Rule Profile: pmevo-palmed\n")
	assert.Contains(t, out, " ✅ Mapped: 6\n")
	assert.Contains(t, out, " ❗ Unmapped: 2\n")
	assert.Contains(t, out, "1. DIV_GPR32\n")
	assert.Contains(t, out, "2. SHUFPS_VR128_VR128_IMM8\n")
}

func TestMapTable(t *testing.T) {
	root, targets := dataDir(t)

	out, err := run(t, "map", "--data-root", root, "--arch", "SKL", "--format", "table", targets)
	require.NoError(t, err)
	assert.Contains(t, out, "Instruction Mapping: SKL (pmevo-palmed)")
	assert.Contains(t, out, "DIV_GPR32")
}

func TestMapJSONToFile(t *testing.T) {
	root, targets := dataDir(t)
	output := filepath.Join(t.TempDir(), "report.json")

	out, err := run(t, "map", "--data-root", root, "--arch", "SKL",
		"--format", "json", "--report-output-path", output, targets)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var report struct {
		Arch     string `json:"arch"`
		Mapped   int    `json:"mapped"`
		Unmapped int    `json:"unmapped"`
	}
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "SKL", report.Arch)
	assert.Equal(t, 6, report.Mapped)
	assert.Equal(t, 2, report.Unmapped)
}

func TestMapErrors(t *testing.T) {
	root, targets := dataDir(t)

	_, err := run(t, "map", "--data-root", root, targets)
	assert.Error(t, err, "missing --arch")

	_, err = run(t, "map", "--data-root", root, "--arch", "ZEN2", targets)
	assert.ErrorContains(t, err, "architecture not found")

	_, err = run(t, "map", "--data-root", root, "--arch", "SKL", "--format", "xml", targets)
	assert.ErrorContains(t, err, "invalid format")

	_, err = run(t, "map", "--data-root", root, "--arch", "SKL")
	assert.Error(t, err)

	_, err = run(t, "--log-level", "loud", "map", "--data-root", root, "--arch", "SKL", targets)
	assert.ErrorContains(t, err, "invalid log level")
}

func TestCycles(t *testing.T) {
	root, _ := dataDir(t)

	out, err := run(t, "cycles", "--data-root", root, "--arch", "SKL", "MOV_((REG:GPR:G:8))_((IMM:32))")
	require.NoError(t, err)
	assert.Equal(t, "cycles: 0.25\nipc: 4.00\n", out)

	out, err = run(t, "cycles", "--data-root", root, "--arch", "SKL", "--convention", "target",
		"IMUL_GPR64q_GPR64q", "IMUL_GPR64q_GPR64q")
	require.NoError(t, err)
	assert.Equal(t, "cycles: 2.00\nipc: 1.00\n", out)
}

func TestCyclesErrors(t *testing.T) {
	root, _ := dataDir(t)

	_, err := run(t, "cycles", "--data-root", root, "--arch", "SKL")
	assert.Error(t, err)

	_, err = run(t, "cycles", "--data-root", root, "--arch", "SKL", "NOPE")
	assert.ErrorContains(t, err, "unknown reference instruction: NOPE")

	_, err = run(t, "cycles", "--data-root", root, "--arch", "SKL", "--convention", "target", "DIV_GPR32")
	assert.ErrorContains(t, err, "no reference instruction for DIV_GPR32")

	_, err = run(t, "cycles", "--data-root", root, "--arch", "SKL", "--convention", "intel", "CDQ")
	assert.Error(t, err)
}

func TestCanon(t *testing.T) {
	out, err := run(t, "canon", "--convention", "target", "MOV_GPR8extra_IMM32suffix", "CDQ")
	require.NoError(t, err)
	assert.Equal(t, "MOV_GPR8extra_IMM32suffix -> MOV(GPR8, IMM32)\nCDQ -> CDQ()\n", out)

	out, err = run(t, "canon", "MOV_((REG:GPR:G:8))_((IMM:32))")
	require.NoError(t, err)
	assert.Equal(t, "MOV_((REG:GPR:G:8))_((IMM:32)) -> MOV(GPR8, IMM32)\n", out)
}

func TestCanonCustomProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`name: upper
reference: []
target:
  - pattern: '^r(\d+)$'
    replacement: 'GPR${1}'
`), 0o600))

	out, err := run(t, "canon", "--profile", path, "--convention", "target", "ADD_r64_r64")
	require.NoError(t, err)
	assert.Equal(t, "ADD_r64_r64 -> ADD(GPR64, GPR64)\n", out)

	_, err = run(t, "canon", "--profile", filepath.Join(t.TempDir(), "missing.yaml"), "CDQ")
	assert.ErrorContains(t, err, "error loading profile")
}
