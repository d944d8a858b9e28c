package constraints

import (
	"fmt"
	"strings"

	"depsolve/internal/version"
)

// Requirement is a named constraint over a package: (name, primitive
// conjunction). Equality/hash are structural. A Requirement whose
// MultiConstraint has no primitives, or only Any, has no version
// constraint (spec §3).
type Requirement struct {
	Name        string
	Constraints MultiConstraint
}

// HasAnyVersionConstraint reports whether r constrains the version at
// all.
func (r Requirement) HasAnyVersionConstraint() bool { return !r.Constraints.IsAny() }

// Matches reports whether v satisfies r's constraints.
func (r Requirement) Matches(v version.Version) bool { return r.Constraints.Matches(v) }

// Equal reports structural equality: same name, same constraint set.
func (r Requirement) Equal(other Requirement) bool {
	return r.Name == other.Name && r.Constraints.Equal(other.Constraints)
}

// Key returns a canonical identity string usable as a map key.
func (r Requirement) Key() string { return r.Name + "\x00" + r.Constraints.Key() }

// String renders "name op1, op2, …", or the bare name when r has no
// version constraint.
func (r Requirement) String() string {
	if r.Constraints.IsAny() {
		return r.Name
	}
	return fmt.Sprintf("%s %s", r.Name, r.Constraints.String())
}

// RawGroup is one (name, conjunction-of-tokens) disjunct, the input
// shape FromConstraintGroups validates: a Requirement admits only a
// single conjunction of primitives on a single name (spec §4.1).
type RawGroup struct {
	Name  string
	Parts []string // e.g. []string{">= 1.8.1-3", "< 1.9.0"}
}

// FromConstraintGroups builds a Requirement from an outer sequence of
// disjuncts. More than one group is structurally illegal — whether
// because the groups name different packages, or because they offer
// alternative conjunctions (a disjunction) for the same package — and
// raises InvalidConstraint either way.
func FromConstraintGroups(groups []RawGroup) (Requirement, error) {
	if len(groups) == 0 {
		return Requirement{}, newInvalidConstraint("at least one (name, constraints) group is required")
	}
	if len(groups) > 1 {
		names := map[string]struct{}{}
		for _, g := range groups {
			names[g.Name] = struct{}{}
		}
		if len(names) > 1 {
			return Requirement{}, newInvalidConstraint("requirement constraints must name a single package")
		}
		return Requirement{}, newInvalidConstraint("requirement admits only a conjunction of primitives, not a disjunction")
	}
	return FromConstraints(groups[0].Name, groups[0].Parts...)
}

// FromConstraints builds a Requirement for name from a flat list of
// "op version" tokens (their conjunction).
func FromConstraints(name string, parts ...string) (Requirement, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Requirement{}, newInvalidConstraint("package name is required")
	}
	primitives := make([]Primitive, 0, len(parts))
	for _, part := range parts {
		p, err := ParsePrimitive(part)
		if err != nil {
			return Requirement{}, err
		}
		primitives = append(primitives, p)
	}
	return Requirement{Name: name, Constraints: NewMultiConstraint(primitives...)}, nil
}

// ParseRequirementString parses the §6 requirement grammar:
//
//	req       := name (op_version (',' req_tail)*)?
//	req_tail  := name op_version        ; name must match preceding
//	op_version:= ('<'|'<='|'>'|'>='|'=='|'!='|'^=') version | '*'
//
// A bare name or "name *" yields the any-constraint. All names across
// comma-separated clauses must match, else InvalidDependencyString.
func ParseRequirementString(s string) (Requirement, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Requirement{}, newInvalidDependencyString("empty requirement string")
	}

	clauses := strings.Split(s, ",")
	var name string
	var parts []string
	for i, clause := range clauses {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			return Requirement{}, newInvalidDependencyString("empty clause in " + s)
		}
		fields := strings.Fields(clause)
		clauseName := fields[0]
		if i == 0 {
			name = clauseName
		} else if clauseName != name {
			return Requirement{}, newInvalidDependencyString(
				fmt.Sprintf("all clauses must name %q, found %q", name, clauseName))
		}
		if len(fields) == 1 {
			// bare name: contributes no primitive (any-constraint);
			// other clauses may still add constraints.
			continue
		}
		opVersion := strings.TrimSpace(strings.Join(fields[1:], " "))
		parts = append(parts, opVersion)
	}
	return FromConstraints(name, parts...)
}

// ParsePackageFullName splits a "name-version" package full name (the
// form produced by e.g. "numpy-1.8.1-1") into its name and version
// string. Unlike requirement strings, no space is permitted between
// name and version.
func ParsePackageFullName(s string) (name string, ver string, err error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, " ") {
		return "", "", newSolverException(fmt.Sprintf("malformed package full name %q", s))
	}
	idx := strings.Index(s, "-")
	if idx <= 0 || idx == len(s)-1 {
		return "", "", newSolverException(fmt.Sprintf("malformed package full name %q", s))
	}
	return s[:idx], s[idx+1:], nil
}

// FromPackageFullName parses "name-version" into a Requirement
// equivalent to EQ(parsed-version).
func FromPackageFullName(s string) (Requirement, error) {
	name, ver, err := ParsePackageFullName(s)
	if err != nil {
		return Requirement{}, err
	}
	v, err := version.Parse(ver)
	if err != nil {
		return Requirement{}, newSolverException(fmt.Sprintf("malformed package full name %q: %v", s, err))
	}
	return Requirement{Name: name, Constraints: NewMultiConstraint(PEQ(v))}, nil
}
