package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"depsolve/tests/testutil"
)

func TestSolveCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)

	scenario := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(scenario, []byte(`
packages:
  - name: app
    version: "1.0-0"
    dependencies:
      - "lib >= 1.0"
  - name: lib
    version: "1.0-0"
jobs:
  - kind: install
    requirement: app
`), 0o644))

	cmd := exec.Command("go", "run", "./cmd/depsolve", "solve", scenario)
	cmd.Dir = root
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "output: %s", out)
	require.Contains(t, string(out), "app-1.0-0")
	require.Contains(t, string(out), "lib-1.0-0")
}

func TestSolveCommandE2EUnsatisfiable(t *testing.T) {
	root := testutil.RepoRoot(t)

	scenario := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(scenario, []byte(`
packages:
  - name: app
    version: "1.0-0"
  - name: app
    version: "2.0-0"
jobs:
  - kind: install
    requirement: "app == 1.0-0"
  - kind: install
    requirement: "app == 2.0-0"
`), 0o644))

	cmd := exec.Command("go", "run", "./cmd/depsolve", "solve", scenario)
	cmd.Dir = root
	out, err := cmd.CombinedOutput()
	require.Error(t, err, "output: %s", out)
}
