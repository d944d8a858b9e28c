// Package version wraps the external, totally-ordered version values
// the solver core is built against (spec C1): parsing, comparison, and
// a predecessor operation used by constraint modifier rewrites.
//
// Versions follow the "upstream-build" shape the solver assumes
// (e.g. "1.8.1-3"): a Debian-style upstream portion compared via
// go-deb-version, plus an integer build that defaults to 0 when a
// version string carries no explicit "-N" suffix.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"
)

// MaxBuild is the largest representable build number. It is the
// sentinel predecessor() falls back to when decrementing a version
// whose build is already 0 (there's no "current upstream -1"): it
// steps the upstream down instead and maxes out the build.
const MaxBuild = 999999999

// Version is an opaque, totally ordered version value.
type Version struct {
	Upstream string
	Build    int
}

// Parse parses a version string of the form "upstream" or
// "upstream-build". A missing build segment normalizes to 0.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty version string")
	}

	upstream, build := s, 0
	if idx := strings.LastIndex(s, "-"); idx > 0 {
		if n, err := strconv.Atoi(s[idx+1:]); err == nil {
			upstream, build = s[:idx], n
		}
	}
	if _, err := debversion.NewVersion(upstream); err != nil {
		return Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid version %q", s)).
			WithCause(err)
	}
	return Version{Upstream: upstream, Build: build}, nil
}

// MustParse is Parse but panics on error; used for literal versions in
// tests and fixtures where the input is known-good.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String renders the version as "upstream-build".
func (v Version) String() string {
	return fmt.Sprintf("%s-%d", v.Upstream, v.Build)
}

// Compare returns -1, 0, or 1 comparing v to other: upstream portions
// are compared first via go-deb-version semantics, ties are broken on
// Build.
func (v Version) Compare(other Version) int {
	vu, errV := debversion.NewVersion(v.Upstream)
	ou, errO := debversion.NewVersion(other.Upstream)
	if errV == nil && errO == nil {
		if c := vu.Compare(ou); c != 0 {
			return c
		}
	} else if v.Upstream != other.Upstream {
		if v.Upstream < other.Upstream {
			return -1
		}
		return 1
	}
	switch {
	case v.Build < other.Build:
		return -1
	case v.Build > other.Build:
		return 1
	default:
		return 0
	}
}

// Equal reports whether v and other denote the same version.
func (v Version) Equal(other Version) bool { return v.Compare(other) == 0 }

// Less reports whether v sorts strictly before other.
func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

// UpstreamEqual reports whether v and other share the same upstream
// portion, ignoring build — the match semantics of "^= v".
func (v Version) UpstreamEqual(other Version) bool {
	vu, errV := debversion.NewVersion(v.Upstream)
	ou, errO := debversion.NewVersion(other.Upstream)
	if errV != nil || errO != nil {
		return v.Upstream == other.Upstream
	}
	return vu.Compare(ou) == 0
}

// Predecessor returns the immediately smaller representable version:
// Build-1 when Build is positive, otherwise the previous upstream with
// Build reset to MaxBuild.
func (v Version) Predecessor() Version {
	if v.Build > 0 {
		return Version{Upstream: v.Upstream, Build: v.Build - 1}
	}
	return Version{Upstream: bumpUpstream(v.Upstream, -1), Build: MaxBuild}
}

// Successor returns the smallest version strictly greater than every
// version sharing v's upstream: the next upstream at build 0. Used to
// compute the upper edge of a "^= v" match window.
func (v Version) Successor() Version {
	return Version{Upstream: bumpUpstream(v.Upstream, 1), Build: 0}
}

// bumpUpstream adjusts the last dot-separated numeric segment of an
// upstream string by delta. Non-numeric trailing segments are left
// untouched (best-effort: the solver only ever needs this to invert
// itself, i.e. bumpUpstream(bumpUpstream(s, 1), -1) == s).
func bumpUpstream(s string, delta int) string {
	idx := strings.LastIndex(s, ".")
	head, last := "", s
	if idx >= 0 {
		head, last = s[:idx], s[idx+1:]
	}
	n, err := strconv.Atoi(last)
	if err != nil {
		return s
	}
	n += delta
	if head == "" {
		return strconv.Itoa(n)
	}
	return head + "." + strconv.Itoa(n)
}
