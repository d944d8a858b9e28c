package solve

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsolve/internal/constraints"
	"depsolve/internal/pool"
	"depsolve/internal/rules"
	"depsolve/internal/version"
)

func req(t *testing.T, s string) constraints.Requirement {
	t.Helper()
	r, err := constraints.ParseRequirementString(s)
	require.NoError(t, err)
	return r
}

// TestSolveInstallsDependencyChain builds a small pool where
// installing "app" requires pulling in its one dependency candidate,
// and confirms the resulting model contains both packages.
func TestSolveInstallsDependencyChain(t *testing.T) {
	p := pool.New([]pool.Package{
		{Name: "app", Version: version.MustParse("1.0-0"), Dependencies: []string{"lib >= 1.0"}},
		{Name: "lib", Version: version.MustParse("1.0-0")},
	})
	s := New(p)
	request := rules.Request{Jobs: []rules.Job{{Kind: rules.JobInstall, Requirement: req(t, "app")}}}

	seq, err := s.Solve(context.Background(), request, nil)
	require.NoError(t, err)

	var models []Model
	for m := range seq {
		models = append(models, m)
	}
	require.NotEmpty(t, models)

	names := map[string]bool{}
	for _, pkg := range models[0].Installed {
		names[pkg.Name] = true
	}
	assert.True(t, names["app"], "model does not install app: %v", models[0].Installed)
	assert.True(t, names["lib"], "model does not install lib: %v", models[0].Installed)
}

// TestSolveNeverInstallsConflictingVersions confirms that a same-name
// conflict rule rules out a model containing both versions.
func TestSolveNeverInstallsConflictingVersions(t *testing.T) {
	p := pool.New([]pool.Package{
		{Name: "numpy", Version: version.MustParse("1.8.1-1")},
		{Name: "numpy", Version: version.MustParse("1.9.0-0")},
	})
	s := New(p)
	request := rules.Request{Jobs: []rules.Job{{Kind: rules.JobInstall, Requirement: req(t, "numpy")}}}

	seq, err := s.Solve(context.Background(), request, nil)
	require.NoError(t, err)

	for m := range seq {
		count := 0
		for _, pkg := range m.Installed {
			if pkg.Name == "numpy" {
				count++
			}
		}
		assert.LessOrEqual(t, count, 1, "model installs %d numpy versions at once: %v", count, m.Installed)
	}
}
