// Package rules turns a package pool, a set of already-installed
// packages, and a user request into the deterministic, duplicate-free
// CNF formula the SAT engine searches over (spec §4.3, C7/C8).
package rules

import (
	"fmt"
	"sort"
	"strings"

	"depsolve/internal/constraints"
	"depsolve/internal/pool"
)

// Reason tags a Rule with why it was generated. It is metadata only —
// two rules with the same literals are equal regardless of reason.
type Reason int

const (
	ReasonInternalAllowUpdate Reason = iota + 1
	ReasonJobInstall
	ReasonJobRemove
	ReasonJobUpdate
	ReasonPackageRequires
	ReasonPackageSameName
	ReasonPackageImplicitObsoletes
	ReasonPackageInstalled
	ReasonInternal
)

func (r Reason) String() string {
	switch r {
	case ReasonInternalAllowUpdate:
		return "internal_allow_update"
	case ReasonJobInstall:
		return "job_install"
	case ReasonJobRemove:
		return "job_remove"
	case ReasonJobUpdate:
		return "job_update"
	case ReasonPackageRequires:
		return "package_requires"
	case ReasonPackageSameName:
		return "package_same_name"
	case ReasonPackageImplicitObsoletes:
		return "package_implicit_obsoletes"
	case ReasonPackageInstalled:
		return "package_installed"
	case ReasonInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Rule is a disjunction (CNF clause) of signed package-id literals.
// Equality and hashing are over the literal multiset only; Reason and
// Requirement are diagnostic metadata (spec §3).
type Rule struct {
	Literals    []int
	Reason      Reason
	Requirement *constraints.Requirement
}

func newRule(literals []int, reason Reason, req *constraints.Requirement) Rule {
	sorted := append([]int(nil), literals...)
	sort.Ints(sorted)
	return Rule{Literals: sorted, Reason: reason, Requirement: req}
}

// IsAssertion reports whether the rule is a unit clause.
func (r Rule) IsAssertion() bool { return len(r.Literals) == 1 }

// Key is the canonical identity of a rule: its sorted literal
// multiset, used both for deduplication and as a map key.
func (r Rule) Key() string {
	parts := make([]string, len(r.Literals))
	for i, l := range r.Literals {
		parts[i] = fmt.Sprintf("%d", l)
	}
	return strings.Join(parts, ",")
}

// prettyLiterals renders each literal via p.IDToString, joined by " | ".
func prettyLiterals(p *pool.Pool, literals []int) string {
	parts := make([]string, len(literals))
	for i, l := range literals {
		parts[i] = p.IDToString(l)
	}
	return strings.Join(parts, " | ")
}

// String renders the §6 diagnostic form for the rule against pool p.
func (r Rule) String(p *pool.Pool) string {
	var desc string
	switch r.Reason {
	case ReasonJobInstall:
		desc = fmt.Sprintf("Install command rule (%s)", prettyLiterals(p, r.Literals))
	case ReasonJobUpdate:
		desc = fmt.Sprintf("Update to latest command rule (%s)", prettyLiterals(p, r.Literals))
	case ReasonJobRemove:
		desc = fmt.Sprintf("Remove command rule (%s)", prettyLiterals(p, r.Literals))
	case ReasonPackageSameName:
		desc = fmt.Sprintf("Can only install one of: (%s)", prettyLiterals(p, absLiterals(r.Literals)))
	case ReasonPackageInstalled:
		desc = fmt.Sprintf("Should install one of: (%s)", prettyLiterals(p, absLiterals(r.Literals)))
	case ReasonPackageRequires:
		source := p.IDToString(r.Literals[0])
		source = strings.TrimPrefix(source, "-")
		desc = fmt.Sprintf("%s requires (%s)", source, prettyLiterals(p, r.Literals[1:]))
	default:
		desc = prettyLiterals(p, r.Literals)
	}
	if r.Requirement != nil {
		return fmt.Sprintf("Requirement: '%s'\n\t%s", r.Requirement, desc)
	}
	return desc
}

func absLiterals(literals []int) []int {
	out := make([]int, len(literals))
	for i, l := range literals {
		if l < 0 {
			out[i] = -l
		} else {
			out[i] = l
		}
	}
	return out
}

// JobKind is the kind of a Job in a Request.
type JobKind int

const (
	JobInstall JobKind = iota + 1
	JobRemove
	JobUpdate
)

// Job is a single user-requested operation: install, remove, or
// update a requirement.
type Job struct {
	Kind        JobKind
	Requirement constraints.Requirement
}

// Request is an ordered list of jobs.
type Request struct {
	Jobs []Job
}

// InstalledMap is the insertion-ordered set of already-installed
// packages, keyed by package name.
type InstalledMap struct {
	order []string
	byName map[string]pool.Package
}

// NewInstalledMap builds an InstalledMap from packages in the given
// order, the last occurrence of a name winning (matches an ordered
// dict's assignment semantics).
func NewInstalledMap(packages []pool.Package) *InstalledMap {
	m := &InstalledMap{byName: map[string]pool.Package{}}
	for _, p := range packages {
		if _, seen := m.byName[p.Name]; !seen {
			m.order = append(m.order, p.Name)
		}
		m.byName[p.Name] = p
	}
	return m
}

// Packages returns the installed packages in insertion order.
func (m *InstalledMap) Packages() []pool.Package {
	if m == nil {
		return nil
	}
	out := make([]pool.Package, len(m.order))
	for i, name := range m.order {
		out[i] = m.byName[name]
	}
	return out
}

// Contains reports whether pkg (by full name) is recorded as installed.
func (m *InstalledMap) Contains(pkg pool.Package) bool {
	if m == nil {
		return false
	}
	installed, ok := m.byName[pkg.Name]
	return ok && installed.FullName() == pkg.FullName()
}
