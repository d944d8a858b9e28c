// Package pool implements the package universe and lookup-by-requirement
// collaborator the solver core depends on (spec §3's Pool, C6):
// indexed packages, a stable package-id ↔ literal bijection, and the
// same-name/provider lookups the rule generator needs.
package pool

import (
	"fmt"
	"sort"

	"depsolve/internal/constraints"
	"depsolve/internal/version"
)

// Package is a single candidate (name, version) with its declared
// dependency requirement strings. Packages are opaque to the solver
// core beyond this surface (spec §3).
type Package struct {
	Name         string
	Version      version.Version
	Dependencies []string // requirement strings, e.g. "scipy >= 0.14"
}

// FullName renders "name-version", the package-full-name form.
func (p Package) FullName() string { return fmt.Sprintf("%s-%s", p.Name, p.Version) }

// Pool is an indexed, immutable package universe.
type Pool struct {
	byName map[string][]Package
	ids    map[string]int // FullName -> id, 1-based
	byID   []Package       // index i holds the package with id i+1
	order  []string        // names in first-seen order, for deterministic iteration
}

// New builds a Pool over packages, assigning package ids in the order
// packages are given (package_id is a bijective, insertion-ordered
// mapping, spec §3).
func New(packages []Package) *Pool {
	p := &Pool{
		byName: map[string][]Package{},
		ids:    map[string]int{},
	}
	for _, pkg := range packages {
		if _, seen := p.byName[pkg.Name]; !seen {
			p.order = append(p.order, pkg.Name)
		}
		p.byName[pkg.Name] = append(p.byName[pkg.Name], pkg)
		p.byID = append(p.byID, pkg)
		p.ids[pkg.FullName()] = len(p.byID)
	}
	for name := range p.byName {
		sort.SliceStable(p.byName[name], func(i, j int) bool {
			return p.byName[name][i].Version.Less(p.byName[name][j].Version)
		})
	}
	return p
}

// WhatProvides returns every package named req.Name whose version
// satisfies req.Constraints, in ascending version order.
func (p *Pool) WhatProvides(req constraints.Requirement) []Package {
	candidates := p.byName[req.Name]
	out := make([]Package, 0, len(candidates))
	for _, c := range candidates {
		if req.Matches(c.Version) {
			out = append(out, c)
		}
	}
	return out
}

// PackagesByName returns every known version of name, in ascending
// version order.
func (p *Pool) PackagesByName(name string) []Package {
	out := make([]Package, len(p.byName[name]))
	copy(out, p.byName[name])
	return out
}

// PackageID returns the literal-bearing id for pkg. Returns 0 if pkg
// is not in the pool.
func (p *Pool) PackageID(pkg Package) int {
	return p.ids[pkg.FullName()]
}

// PackageByID returns the package for a positive id, and whether it
// was found.
func (p *Pool) PackageByID(id int) (Package, bool) {
	if id <= 0 || id > len(p.byID) {
		return Package{}, false
	}
	return p.byID[id-1], true
}

// IDToString renders a signed literal for diagnostics: "-name-version"
// if negative, "name-version" if positive.
func (p *Pool) IDToString(literal int) string {
	id := literal
	sign := ""
	if id < 0 {
		id = -id
		sign = "-"
	}
	pkg, ok := p.PackageByID(id)
	if !ok {
		return fmt.Sprintf("%s<unknown:%d>", sign, id)
	}
	return sign + pkg.FullName()
}

// Len returns the number of packages (and thus variables) in the pool.
func (p *Pool) Len() int { return len(p.byID) }
