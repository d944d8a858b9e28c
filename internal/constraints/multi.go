package constraints

import (
	"sort"
	"strings"

	"depsolve/internal/version"
)

// MultiConstraint is a conjunction of primitive constraints. Its
// canonical form contains no Any when any other primitive is present,
// and equality is structural over the set of primitives (spec §3,
// §4.1): two MultiConstraints with the same primitives in any order
// are equal.
type MultiConstraint struct {
	primitives []Primitive // insertion order, preserved for rendering
}

// NewMultiConstraint builds a MultiConstraint from a sequence of
// primitives, dropping any Any unless the result would otherwise be
// empty, and keeping only the first of structurally equal primitives.
func NewMultiConstraint(primitives ...Primitive) MultiConstraint {
	var kept []Primitive
	seen := map[string]struct{}{}
	for _, p := range primitives {
		if p.Kind == Any {
			continue
		}
		if _, dup := seen[p.key()]; dup {
			continue
		}
		seen[p.key()] = struct{}{}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return MultiConstraint{primitives: []Primitive{PAny}}
	}
	return MultiConstraint{primitives: kept}
}

// Primitives returns the constraint's primitives in insertion order.
func (m MultiConstraint) Primitives() []Primitive {
	out := make([]Primitive, len(m.primitives))
	copy(out, m.primitives)
	return out
}

// IsAny reports whether m denotes "any version" (no real constraint).
func (m MultiConstraint) IsAny() bool {
	return len(m.primitives) == 1 && m.primitives[0].Kind == Any
}

// Matches reports whether v satisfies every primitive in m.
func (m MultiConstraint) Matches(v version.Version) bool {
	for _, p := range m.primitives {
		if !p.Matches(v) {
			return false
		}
	}
	return true
}

// Equal reports structural equality over the set of primitives,
// ignoring order.
func (m MultiConstraint) Equal(other MultiConstraint) bool {
	if len(m.primitives) != len(other.primitives) {
		return false
	}
	a, b := m.sortedKeys(), other.sortedKeys()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Key returns a canonical, order-independent identity string usable
// as a map key — the basis of MultiConstraint's structural hashing.
func (m MultiConstraint) Key() string {
	return strings.Join(m.sortedKeys(), "|")
}

func (m MultiConstraint) sortedKeys() []string {
	keys := make([]string, len(m.primitives))
	for i, p := range m.primitives {
		keys[i] = p.key()
	}
	sort.Strings(keys)
	return keys
}

// String renders the primitives joined by ", ", in insertion order.
func (m MultiConstraint) String() string {
	parts := make([]string, len(m.primitives))
	for i, p := range m.primitives {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}
