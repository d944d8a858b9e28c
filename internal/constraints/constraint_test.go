package constraints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depsolve/internal/version"
)

func TestPrimitiveMatches(t *testing.T) {
	v := func(s string) version.Version { return version.MustParse(s) }
	tests := []struct {
		name string
		p    Primitive
		v    version.Version
		want bool
	}{
		{"any matches anything", PAny, v("0.0.1"), true},
		{"gt excludes equal", PGT(v("1.0.0-0")), v("1.0.0-0"), false},
		{"gt includes greater", PGT(v("1.0.0-0")), v("1.0.1-0"), true},
		{"geq includes equal", PGEQ(v("1.0.0-0")), v("1.0.0-0"), true},
		{"lt excludes equal", PLT(v("1.0.0-0")), v("1.0.0-0"), false},
		{"leq includes equal", PLEQ(v("1.0.0-0")), v("1.0.0-0"), true},
		{"eq matches build", PEQ(v("1.0.0-2")), v("1.0.0-2"), true},
		{"eq rejects other build", PEQ(v("1.0.0-2")), v("1.0.0-3"), false},
		{"neq rejects match", PNEQ(v("1.0.0-2")), v("1.0.0-2"), false},
		{"upstream match any build", PUpstreamMatch("1.1.1"), v("1.1.1-7"), true},
		{"upstream match rejects other upstream", PUpstreamMatch("1.1.1"), v("1.1.2-0"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Matches(tt.v))
		})
	}
}

func TestParsePrimitive(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "*"},
		{"*", "*"},
		{">= 1.8.1-3", ">= 1.8.1-3"},
		{"<1.9.0", "< 1.9.0-0"},
		{"^= 1.1.1", "^= 1.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePrimitive(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestParsePrimitiveRejectsGarbage(t *testing.T) {
	_, err := ParsePrimitive("~= 1.0")
	require.Error(t, err)
}
