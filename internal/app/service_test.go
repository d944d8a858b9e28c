package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const chainScenario = `
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
`

func TestServiceSolveReturnsModel(t *testing.T) {
	path := writeScenario(t, chainScenario)
	svc := NewService()
	result, err := svc.Solve(context.Background(), SolveRequest{ScenarioPath: path})
	require.NoError(t, err)
	require.Len(t, result.Models, 1)
	assert.Equal(t, 2, result.PackageCount)
}

func TestServiceSolveRequiresScenarioPath(t *testing.T) {
	svc := NewService()
	_, err := svc.Solve(context.Background(), SolveRequest{})
	require.Error(t, err)
}

func TestServiceExplainRendersRules(t *testing.T) {
	path := writeScenario(t, chainScenario)
	svc := NewService()
	lines, err := svc.Explain(context.Background(), path)
	require.NoError(t, err)
	assert.NotEmpty(t, lines)
}
