// Package version implements the three-part version arithmetic used for
// workspace releases.
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Level selects which component a bump increments.
type Level string

const (
	Major Level = "major"
	Minor Level = "minor"
	Patch Level = "patch"
)

// ParseLevel converts a bump argument into a level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	}
	return "", fmt.Errorf("unknown bump level %q (expected major, minor, or patch)", s)
}

var versionRe = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(.*)$`)

// Version is a parsed three-part version. Tail keeps any pre-release or
// build suffix for display; bumping drops it.
type Version struct {
	Major int
	Minor int
	Patch int
	Tail  string
}

// Parse parses a version string. Shortened forms like "1.2" are rejected:
// workspace versions are written back verbatim, so they must be exact.
func Parse(s string) (Version, error) {
	if !semver.IsValid("v" + s) {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("invalid version %q: want major.minor.patch", s)
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major component in %q: %w", s, err)
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor component in %q: %w", s, err)
	}
	patch, err := strconv.Atoi(m[3])
	if err != nil {
		return Version{}, fmt.Errorf("invalid patch component in %q: %w", s, err)
	}

	return Version{Major: major, Minor: minor, Patch: patch, Tail: m[4]}, nil
}

// Bump returns the version incremented at level, with lower components
// zeroed and any pre-release tail dropped.
func (v Version) Bump(level Level) (Version, error) {
	switch level {
	case Major:
		return Version{Major: v.Major + 1}, nil
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	case Patch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	}
	return Version{}, fmt.Errorf("unknown bump level %q", level)
}

// String renders the version, including any retained tail.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d%s", v.Major, v.Minor, v.Patch, v.Tail)
}

// IsValid reports whether s is a well-formed version.
func IsValid(s string) bool {
	return semver.IsValid("v" + s)
}

// Compare orders two version strings under semantic versioning rules.
func Compare(a, b string) int {
	return semver.Compare("v"+a, "v"+b)
}
