// Package constraints implements the version constraint algebra (spec
// C2/C3/C4/C5): primitive predicates and their conjunction, named
// requirements built from them, string parsing, and the relaxation
// rewrites the solver uses to search broader solution spaces.
package constraints

import (
	"fmt"
	"strings"

	"depsolve/internal/version"
)

// Kind is a primitive constraint's tag. Primitives are modeled as a
// sum type with exhaustive matching on Kind, rather than as per-kind
// subclasses.
type Kind int

const (
	Any Kind = iota
	GT
	GEQ
	LT
	LEQ
	EQ
	NEQ
	UpstreamMatch // "^= v": matches any build of a given upstream version
)

// op renders a Kind's comparison operator token ("^=" for
// UpstreamMatch), or "" for Any.
func (k Kind) op() string {
	switch k {
	case GT:
		return ">"
	case GEQ:
		return ">="
	case LT:
		return "<"
	case LEQ:
		return "<="
	case EQ:
		return "=="
	case NEQ:
		return "!="
	case UpstreamMatch:
		return "^="
	default:
		return ""
	}
}

// Primitive is a single version predicate: one of Any, GT(v), GEQ(v),
// LT(v), LEQ(v), EQ(v), NEQ(v), or UpstreamMatch(upstream).
//
// UpstreamMatch carries only the bare upstream string (no build),
// since "^= v" is specified against a release version, not a full
// build-qualified Version (spec §3, §6).
type Primitive struct {
	Kind     Kind
	Version  version.Version
	Upstream string
}

// PAny is the constraint matching every version.
var PAny = Primitive{Kind: Any}

// PGT, PGEQ, PLT, PLEQ, PEQ, PNEQ build the version-qualified primitives.
func PGT(v version.Version) Primitive  { return Primitive{Kind: GT, Version: v} }
func PGEQ(v version.Version) Primitive { return Primitive{Kind: GEQ, Version: v} }
func PLT(v version.Version) Primitive  { return Primitive{Kind: LT, Version: v} }
func PLEQ(v version.Version) Primitive { return Primitive{Kind: LEQ, Version: v} }
func PEQ(v version.Version) Primitive  { return Primitive{Kind: EQ, Version: v} }
func PNEQ(v version.Version) Primitive { return Primitive{Kind: NEQ, Version: v} }

// PUpstreamMatch builds the "^= upstream" primitive.
func PUpstreamMatch(upstream string) Primitive {
	return Primitive{Kind: UpstreamMatch, Upstream: upstream}
}

// Matches reports whether v satisfies the primitive.
func (p Primitive) Matches(v version.Version) bool {
	switch p.Kind {
	case Any:
		return true
	case GT:
		return p.Version.Less(v)
	case GEQ:
		return p.Version.Less(v) || p.Version.Equal(v)
	case LT:
		return v.Less(p.Version)
	case LEQ:
		return v.Less(p.Version) || v.Equal(p.Version)
	case EQ:
		return v.Equal(p.Version)
	case NEQ:
		return !v.Equal(p.Version)
	case UpstreamMatch:
		target, err := version.Parse(p.Upstream)
		if err != nil {
			return false
		}
		return v.UpstreamEqual(target)
	default:
		return false
	}
}

// key is the canonical identity string used for structural equality
// and hashing of a Primitive.
func (p Primitive) key() string {
	switch p.Kind {
	case Any:
		return "any"
	case UpstreamMatch:
		return fmt.Sprintf("^=:%s", p.Upstream)
	default:
		return fmt.Sprintf("%d:%s", p.Kind, p.Version)
	}
}

// Equal reports structural equality between two primitives.
func (p Primitive) Equal(other Primitive) bool { return p.key() == other.key() }

// String renders "op version" ("*" for Any, "^= upstream" for
// UpstreamMatch — no build component).
func (p Primitive) String() string {
	switch p.Kind {
	case Any:
		return "*"
	case UpstreamMatch:
		return fmt.Sprintf("^= %s", p.Upstream)
	default:
		return fmt.Sprintf("%s %s", p.Kind.op(), p.Version)
	}
}

// ParsePrimitive parses a single "op version" or "*" token (the
// version part of the §6 grammar).
func ParsePrimitive(token string) (Primitive, error) {
	token = strings.TrimSpace(token)
	if token == "" || token == "*" {
		return PAny, nil
	}
	for _, op := range []string{">=", "<=", "==", "!=", "^=", "<", ">"} {
		if rest, ok := strings.CutPrefix(token, op); ok {
			raw := strings.TrimSpace(rest)
			if op == "^=" {
				if raw == "" {
					return Primitive{}, newInvalidDependencyString(fmt.Sprintf("missing version in %q", token))
				}
				return PUpstreamMatch(raw), nil
			}
			v, err := version.Parse(raw)
			if err != nil {
				return Primitive{}, newInvalidDependencyString(fmt.Sprintf("bad version in %q: %v", token, err))
			}
			switch op {
			case ">=":
				return PGEQ(v), nil
			case "<=":
				return PLEQ(v), nil
			case "==":
				return PEQ(v), nil
			case "!=":
				return PNEQ(v), nil
			case "<":
				return PLT(v), nil
			case ">":
				return PGT(v), nil
			}
		}
	}
	return Primitive{}, newInvalidDependencyString(fmt.Sprintf("unrecognized constraint %q", token))
}
