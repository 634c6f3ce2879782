package version

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind selects which component of a version a bump increments.
type Kind string

const (
	Major Kind = "major"
	Minor Kind = "minor"
	Patch Kind = "patch"
)

// ErrInvalidBump is returned for any bump kind other than major, minor or patch.
var ErrInvalidBump = errors.New("invalid version type, use major, minor, or patch")

// ErrOverflow is returned when the bumped component would not fit in an int.
var ErrOverflow = errors.New("version component overflows")

// Fallback is used as the base when the current version cannot be parsed.
var Fallback = Version{Major: 0, Minor: 1, Patch: 0}

var pattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Version is a plain major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseKind validates a bump argument.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Major, Minor, Patch:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBump, s)
}

// Parse accepts only strictly formatted "X.Y.Z" strings.
func Parse(s string) (Version, bool) {
	if !pattern.MatchString(s) {
		return Version{}, false
	}
	parts := strings.Split(s, ".")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, false
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}

// Bump returns the version that follows v for the given kind.
func (v Version) Bump(k Kind) (Version, error) {
	var component int
	switch k {
	case Major:
		component = v.Major
	case Minor:
		component = v.Minor
	case Patch:
		component = v.Patch
	default:
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidBump, k)
	}
	if component == math.MaxInt {
		return Version{}, fmt.Errorf("%w: %s %s", ErrOverflow, k, v)
	}

	switch k {
	case Major:
		return Version{Major: v.Major + 1}, nil
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	}
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
}

// Next computes the version after current. A malformed current version is
// replaced by Fallback and reported through fellBack so callers can warn.
func Next(current string, k Kind) (next string, fellBack bool, err error) {
	base, ok := Parse(current)
	if !ok {
		base, fellBack = Fallback, true
	}
	bumped, err := base.Bump(k)
	if err != nil {
		return "", fellBack, err
	}
	return bumped.String(), fellBack, nil
}
