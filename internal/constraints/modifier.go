package constraints

import "depsolve/internal/version"

// AllowSet names packages eligible for a given relaxation policy.
type AllowSet map[string]struct{}

// NewAllowSet builds an AllowSet from a list of package names.
func NewAllowSet(names ...string) AllowSet {
	s := make(AllowSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s AllowSet) has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s[name]
	return ok
}

// TransformRequirement rewrites each primitive of req.Constraints
// under the three independently addressable relaxation policies
// (spec §4.2): allowNewer relaxes upper bounds, allowOlder relaxes
// lower bounds, allowAny relaxes both. Redundant Any results are
// merged afterward: if every primitive relaxed to Any, the result is
// a single Any; otherwise Any entries are dropped and the remaining
// specific primitives kept.
//
// This resolves the reference implementation's `_make_allow_dict`
// duplicate-key bug (spec §9 open question) by keeping all three
// policies independently addressable rather than letting one silently
// shadow another.
func TransformRequirement(req Requirement, allowNewer, allowOlder, allowAny AllowSet) Requirement {
	newer := allowNewer.has(req.Name)
	older := allowOlder.has(req.Name)
	any := allowAny.has(req.Name) || (newer && older)

	transformed := make([]Primitive, 0, len(req.Constraints.primitives))
	for _, p := range req.Constraints.primitives {
		transformed = append(transformed, transformPrimitive(p, newer, older, any))
	}
	return Requirement{Name: req.Name, Constraints: NewMultiConstraint(transformed...)}
}

// transformPrimitive applies the spec §4.2 rewrite table to a single
// primitive.
func transformPrimitive(p Primitive, allowNewer, allowOlder, allowAny bool) Primitive {
	switch p.Kind {
	case GT, GEQ:
		if allowAny || allowOlder {
			return PAny
		}
		return p
	case LT, LEQ:
		if allowAny || allowNewer {
			return PAny
		}
		return p
	case UpstreamMatch:
		if allowAny {
			return PAny
		}
		if allowNewer {
			v, err := version.Parse(p.Upstream)
			if err != nil {
				return p
			}
			return PGEQ(v)
		}
		if allowOlder {
			v, err := version.Parse(p.Upstream)
			if err != nil {
				return p
			}
			return PLEQ(v.Successor().Predecessor())
		}
		return p
	case EQ:
		if allowAny {
			return PAny
		}
		if allowNewer {
			return PGEQ(p.Version)
		}
		if allowOlder {
			return PLEQ(p.Version)
		}
		return p
	case NEQ:
		return p
	default: // Any
		return p
	}
}
