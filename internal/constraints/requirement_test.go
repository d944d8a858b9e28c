package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsolve/internal/version"
)

// TestRequirementMatchesScenarioA reproduces spec §8 scenario (a).
func TestRequirementMatchesScenarioA(t *testing.T) {
	req, err := ParseRequirementString("numpy >= 1.8.1-3, numpy < 1.9.0")
	require.NoError(t, err)
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
			assert.Equal(t, tt.want, req.Matches(version.MustParse(tt.v)))
		})
	}
}

func TestRequirementEqualityAndHashing(t *testing.T) {
	r1, err := ParseRequirementString("numpy >= 1.8.1-3, numpy < 1.9.0")
	require.NoError(t, err)
	r2, err := ParseRequirementString("numpy >= 1.8.1-3, numpy < 1.9.1")
	require.NoError(t, err)
	r3, err := ParseRequirementString("numpy >= 1.8.1-3, numpy < 1.9.0")
	require.NoError(t, err)

	assert.False(t, r1.Equal(r2))
	assert.True(t, r1.Equal(r3))
	assert.Equal(t, r1.Key(), r3.Key())
}

func TestBareNameEqualsAnyEqualsEmptyConjunction(t *testing.T) {
	bare, err := ParseRequirementString("numpy")
	require.NoError(t, err)
	star, err := ParseRequirementString("numpy *")
	require.NoError(t, err)
	empty, err := FromConstraints("numpy")
	require.NoError(t, err)

	assert.True(t, bare.Equal(star))
	assert.True(t, bare.Equal(empty))
	assert.True(t, star.Equal(empty))
	assert.False(t, bare.HasAnyVersionConstraint())
	assert.Equal(t, "numpy", bare.String())
}

func TestHasAnyVersionConstraint(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"numpy", false},
		{"numpy *", false},
		{"numpy < 1.8.1", true},
		{"numpy == 1.8.1-1", true},
		{"numpy ^= 1.8.1", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			req, err := ParseRequirementString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.HasAnyVersionConstraint())
		})
	}
}

func TestFromConstraintGroupsRejectsMultipleNames(t *testing.T) {
	_, err := FromConstraintGroups([]RawGroup{
		{Name: "numpy", Parts: []string{">= 1.8.1-3"}},
		{Name: "scipy", Parts: []string{"< 1.9.0"}},
	})
	require.Error(t, err)
}

func TestFromConstraintGroupsRejectsDisjunction(t *testing.T) {
	_, err := FromConstraintGroups([]RawGroup{
		{Name: "numpy", Parts: []string{"< 1.8.0"}},
		{Name: "numpy", Parts: []string{">= 1.8.1-3"}},
	})
	require.Error(t, err)
}

func TestParseRequirementStringRejectsMixedNames(t *testing.T) {
	_, err := ParseRequirementString("numpy >= 1.8.1-3, scipy < 1.9.0")
	require.Error(t, err)
}

func TestParsePackageFullName(t *testing.T) {
	name, ver, err := ParsePackageFullName("numpy-1.8.1-1")
	require.NoError(t, err)
	assert.Equal(t, "numpy", name)
	assert.Equal(t, "1.8.1-1", ver)

	_, _, err = ParsePackageFullName("numpy 1.8.1")
	require.Error(t, err)
}

func TestFromPackageFullName(t *testing.T) {
	req, err := FromPackageFullName("numpy-1.8.1-1")
	require.NoError(t, err)
	assert.Equal(t, "numpy", req.Name)

	want := NewMultiConstraint(PEQ(version.MustParse("1.8.1-1")))
	assert.True(t, req.Constraints.Equal(want), "Constraints = %v, want %v", req.Constraints, want)
}
