package constraints

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"depsolve/internal/version"
)

func TestNewMultiConstraintDropsAnyWhenOthersPresent(t *testing.T) {
	m := NewMultiConstraint(PAny, PGEQ(version.MustParse("1.0.0")))
	assert.False(t, m.IsAny())
	assert.Len(t, m.Primitives(), 1)
}

func TestNewMultiConstraintEmptyIsAny(t *testing.T) {
	assert.True(t, NewMultiConstraint().IsAny())
	assert.True(t, NewMultiConstraint(PAny).IsAny())
}

// TestMultiConstraintEqualityIgnoresOrder confirms that Equal/Key treat
// two MultiConstraints built from the same primitives in different
// orders as identical, and cross-checks that with a structural diff of
// the two primitive sets once both are sorted into a canonical order.
func TestMultiConstraintEqualityIgnoresOrder(t *testing.T) {
	a := NewMultiConstraint(PGEQ(version.MustParse("1.8.1-3")), PLT(version.MustParse("1.9.0")))
	b := NewMultiConstraint(PLT(version.MustParse("1.9.0")), PGEQ(version.MustParse("1.8.1-3")))
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())

	less := func(x, y Primitive) bool { return x.key() < y.key() }
	if diff := cmp.Diff(a.Primitives(), b.Primitives(), cmpopts.SortSlices(less)); diff != "" {
		t.Fatalf("primitive sets differ (-a +b):\n%s", diff)
	}
}

func TestMultiConstraintMatches(t *testing.T) {
	m := NewMultiConstraint(
		PGEQ(version.MustParse("1.8.1-3")),
		PLT(version.MustParse("1.9.0")),
	)
	tests := []struct {
		v    string
		want bool
	}{
		{"1.8.1-3", true},
		{"1.8.2-1", true},
		{"1.8.1-2", false},
		{"1.9.0-1", false},
	}
	for _, tt := range tests {
		t.Run(tt.v, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Matches(version.MustParse(tt.v)))
		})
	}
}

// TestMultiConstraintFromConstraintGroupsMatchesSortOrder reproduces a
// Requirement built through two different entry orders and confirms the
// resulting primitive slices are structurally identical once sorted,
// the same way TestMultiConstraintEqualityIgnoresOrder does for a
// directly constructed MultiConstraint.
func TestMultiConstraintFromConstraintGroupsMatchesSortOrder(t *testing.T) {
	r1, err := FromConstraintGroups([]RawGroup{
		{Name: "numpy", Parts: []string{">= 1.8.1-3", "< 1.9.0"}},
	})
	assert.NoError(t, err)
	r2, err := FromConstraintGroups([]RawGroup{
		{Name: "numpy", Parts: []string{"< 1.9.0", ">= 1.8.1-3"}},
	})
	assert.NoError(t, err)

	p1 := append([]Primitive(nil), r1.Constraints.Primitives()...)
	p2 := append([]Primitive(nil), r2.Constraints.Primitives()...)
	sort.Slice(p1, func(i, j int) bool { return p1[i].key() < p1[j].key() })
	sort.Slice(p2, func(i, j int) bool { return p2[i].key() < p2[j].key() })
	if diff := cmp.Diff(p1, p2); diff != "" {
		t.Fatalf("unexpected primitive diff (-r1 +r2):\n%s", diff)
	}
}
