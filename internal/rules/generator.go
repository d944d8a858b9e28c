package rules

import (
	"context"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"depsolve/internal/constraints"
	"depsolve/internal/pool"
)

// generatorState holds the bookkeeping threaded through rule
// generation, consolidated into one struct so it doesn't need to be
// passed piecemeal through every helper (mirrors the teacher's
// solver-state-struct shape).
type generatorState struct {
	pool          *pool.Pool
	installed     *InstalledMap
	order         []string
	byKey         map[string]Rule
	addedPackages map[int]struct{}
}

// Generator turns a Pool, Request, and InstalledMap into the
// deterministic, duplicate-free rule set described in spec §4.3.
type Generator struct {
	pool      *pool.Pool
	request   Request
	installed *InstalledMap
}

// NewGenerator builds a Generator over p, serving request against the
// already-installed packages in installed (nil means none installed).
func NewGenerator(p *pool.Pool, request Request, installed *InstalledMap) *Generator {
	if installed == nil {
		installed = NewInstalledMap(nil)
	}
	return &Generator{pool: p, request: request, installed: installed}
}

// Rules runs the full generation procedure and returns the resulting
// rules in first-insertion order.
func (g *Generator) Rules(ctx context.Context) ([]Rule, error) {
	s := &generatorState{
		pool:          g.pool,
		installed:     g.installed,
		byKey:         map[string]Rule{},
		addedPackages: map[int]struct{}{},
	}

	for _, installedPkg := range g.installed.Packages() {
		for _, other := range g.pool.PackagesByName(installedPkg.Name) {
			if err := s.addPackageRules(other); err != nil {
				return nil, err
			}
		}
	}

	if err := s.addJobRules(g.request); err != nil {
		return nil, err
	}

	out := make([]Rule, len(s.order))
	for i, key := range s.order {
		out[i] = s.byKey[key]
	}
	log.Ctx(ctx).Debug().Int("rules", len(out)).Msg("rule generation completed")
	return out, nil
}

// addRule inserts rule into the ordered set if non-nil and not
// already present (deduplication by literal multiset, spec §4.3.4).
func (s *generatorState) addRule(rule *Rule) {
	if rule == nil {
		return
	}
	key := rule.Key()
	if _, seen := s.byKey[key]; seen {
		return
	}
	s.byKey[key] = *rule
	s.order = append(s.order, key)
}

// addDependencyRule builds the (¬P ∨ D₁ ∨ … ∨ Dₙ) clause for package
// against its resolved dependency candidates.
func addDependencyRule(p *pool.Pool, pkg pool.Package, dependencies []pool.Package) Rule {
	literals := []int{-p.PackageID(pkg)}
	for _, dep := range dependencies {
		if dep.FullName() != pkg.FullName() {
			literals = append(literals, p.PackageID(dep))
		}
	}
	return newRule(literals, ReasonPackageRequires, nil)
}

// addConflictsRule builds the (¬A ∨ ¬B) clause between two distinct
// packages, or nil if they are the same package.
func addConflictsRule(p *pool.Pool, issuer, provider pool.Package, reason Reason) *Rule {
	if issuer.FullName() == provider.FullName() {
		return nil
	}
	r := newRule([]int{-p.PackageID(issuer), -p.PackageID(provider)}, reason, nil)
	return &r
}

// addInstallOneOfRule builds the (P₁ ∨ … ∨ Pₖ) clause.
func addInstallOneOfRule(p *pool.Pool, packages []pool.Package, reason Reason, req *constraints.Requirement) Rule {
	literals := make([]int, len(packages))
	for i, pkg := range packages {
		literals[i] = p.PackageID(pkg)
	}
	return newRule(literals, reason, req)
}

// addRemoveRule builds the unit clause (¬P).
func addRemoveRule(p *pool.Pool, pkg pool.Package, req *constraints.Requirement) Rule {
	return newRule([]int{-p.PackageID(pkg)}, ReasonJobRemove, req)
}

// addDependenciesRules resolves pkg's declared dependency strings, in
// sorted order, into dependency rules, enqueuing every candidate for
// further expansion.
func (s *generatorState) addDependenciesRules(pkg pool.Package, queue *[]pool.Package) error {
	deps := append([]string(nil), pkg.Dependencies...)
	sort.Strings(deps)
	for _, dep := range deps {
		req, err := constraints.ParseRequirementString(dep)
		if err != nil {
			return err
		}
		candidates := s.pool.WhatProvides(req)
		if len(candidates) == 0 {
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("no candidates found for requirement %q, needed for dependency of %s", req.Name, pkg.FullName()))
		}
		rule := addDependencyRule(s.pool, pkg, candidates)
		s.addRule(&rule)
		*queue = append(*queue, candidates...)
	}
	return nil
}

// addPackageRules creates all rules required to satisfy installing
// pkg: a BFS over its transitive dependencies, plus same-name and
// implicit-obsoletes conflicts at every step.
func (s *generatorState) addPackageRules(pkg pool.Package) error {
	queue := []pool.Package{pkg}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		id := s.pool.PackageID(p)
		if _, seen := s.addedPackages[id]; seen {
			continue
		}
		s.addedPackages[id] = struct{}{}

		if err := s.addDependenciesRules(p, &queue); err != nil {
			return err
		}

		bareReq, err := constraints.FromConstraints(p.Name)
		if err != nil {
			return err
		}
		for _, provider := range s.pool.WhatProvides(bareReq) {
			if provider.FullName() == p.FullName() {
				continue
			}
			reason := ReasonPackageImplicitObsoletes
			if provider.Name == p.Name {
				reason = ReasonPackageSameName
			}
			s.addRule(addConflictsRule(s.pool, p, provider, reason))
		}
	}
	return nil
}

func (s *generatorState) addJobRules(request Request) error {
	for _, job := range request.Jobs {
		switch job.Kind {
		case JobInstall:
			if err := s.addInstallJobRules(job); err != nil {
				return err
			}
		case JobRemove:
			s.addRemoveJobRules(job)
		case JobUpdate:
			if err := s.addUpdateJobRules(job); err != nil {
				return err
			}
		default:
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("job kind %v not supported", job.Kind))
		}
	}
	return nil
}

func (s *generatorState) addInstallJobRules(job Job) error {
	packages := s.pool.WhatProvides(job.Requirement)
	if len(packages) == 0 {
		return nil
	}
	for _, p := range packages {
		if !s.installed.Contains(p) {
			if err := s.addPackageRules(p); err != nil {
				return err
			}
		}
	}
	rule := addInstallOneOfRule(s.pool, packages, ReasonJobInstall, &job.Requirement)
	s.addRule(&rule)
	return nil
}

func (s *generatorState) addRemoveJobRules(job Job) {
	for _, p := range s.pool.WhatProvides(job.Requirement) {
		rule := addRemoveRule(s.pool, p, &job.Requirement)
		s.addRule(&rule)
	}
}

// addUpdateJobRules forces the update of a requirement's latest
// candidate: the standard expansion rules plus a unit clause
// asserting the chosen package.
func (s *generatorState) addUpdateJobRules(job Job) error {
	packages := s.pool.WhatProvides(job.Requirement)
	if len(packages) == 0 {
		return nil
	}
	best := packages[0]
	for _, p := range packages[1:] {
		if best.Version.Less(p.Version) {
			best = p
		}
	}
	if err := s.addPackageRules(best); err != nil {
		return err
	}
	rule := newRule([]int{s.pool.PackageID(best)}, ReasonJobUpdate, &job.Requirement)
	s.addRule(&rule)
	return nil
}
