// Package scenario loads the YAML fixture format this repository's
// CLI and integration tests point the solver at: a package universe,
// an installed set, and a job list, mirroring the teacher's
// YAML-driven product/profile specs but scoped to the solver's own
// domain (spec §1 places the on-disk repository format itself out of
// scope, so this is the minimal concrete loader a caller needs).
package scenario

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"depsolve/internal/constraints"
	"depsolve/internal/pool"
	"depsolve/internal/rules"
	"depsolve/internal/version"
)

// packageEntry is the on-disk shape of one pool.Package.
type packageEntry struct {
	Name         string   `yaml:"name"`
	Version      string   `yaml:"version"`
	Dependencies []string `yaml:"dependencies"`
}

// jobEntry is the on-disk shape of one rules.Job.
type jobEntry struct {
	Kind        string `yaml:"kind"`
	Requirement string `yaml:"requirement"`
}

// document is the top-level YAML shape: packages, an optional
// installed list, and an optional job list.
type document struct {
	Packages  []packageEntry `yaml:"packages"`
	Installed []string       `yaml:"installed"`
	Jobs      []jobEntry     `yaml:"jobs"`
}

// Scenario is a fully-parsed fixture ready to hand to solve.Solver.
type Scenario struct {
	Pool      *pool.Pool
	Installed *rules.InstalledMap
	Request   rules.Request
}

// Load reads and parses a scenario YAML file at path.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("reading scenario %q", path)).
			WithCause(err)
	}
	return Parse(data)
}

// Parse decodes scenario YAML from data.
func Parse(data []byte) (Scenario, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Scenario{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("parsing scenario").
			WithCause(err)
	}

	packages := make([]pool.Package, len(doc.Packages))
	byFullName := map[string]pool.Package{}
	for i, entry := range doc.Packages {
		v, err := version.Parse(entry.Version)
		if err != nil {
			return Scenario{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("package %q", entry.Name)).
				WithCause(err)
		}
		pkg := pool.Package{Name: entry.Name, Version: v, Dependencies: entry.Dependencies}
		packages[i] = pkg
		byFullName[pkg.FullName()] = pkg
	}
	p := pool.New(packages)

	installedPackages := make([]pool.Package, 0, len(doc.Installed))
	for _, fullName := range doc.Installed {
		pkg, ok := byFullName[fullName]
		if !ok {
			return Scenario{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("installed package %q not present in packages", fullName))
		}
		installedPackages = append(installedPackages, pkg)
	}
	installed := rules.NewInstalledMap(installedPackages)

	jobs := make([]rules.Job, len(doc.Jobs))
	for i, entry := range doc.Jobs {
		kind, err := parseJobKind(entry.Kind)
		if err != nil {
			return Scenario{}, err
		}
		requirement, err := constraints.ParseRequirementString(entry.Requirement)
		if err != nil {
			return Scenario{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("job %d", i)).
				WithCause(err)
		}
		jobs[i] = rules.Job{Kind: kind, Requirement: requirement}
	}

	return Scenario{Pool: p, Installed: installed, Request: rules.Request{Jobs: jobs}}, nil
}

func parseJobKind(s string) (rules.JobKind, error) {
	switch s {
	case "install":
		return rules.JobInstall, nil
	case "remove":
		return rules.JobRemove, nil
	case "update":
		return rules.JobUpdate, nil
	default:
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported job kind %q", s))
	}
}
