package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/evergreen-ci/perfguard"
	"github.com/pkg/errors"
)

// Version is a "major.minor.patch" release identifier. Versions are ordered
// numerically component by component, so 1.10.0 sorts after 1.9.0.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses the canonical "major.minor.patch" form.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, &perfguard.VersionParseError{Input: s}
	}

	ints := make([]int, len(parts))
	for idx, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, &perfguard.VersionParseError{Input: s}
		}
		ints[idx] = n
	}

	return Version{Major: ints[0], Minor: ints[1], Patch: ints[2]}, nil
}

func (v Version) String() string { return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch) }

// Compare returns -1, 0 or 1 when v sorts before, equal to, or after other.
func (v Version) Compare(other Version) int {
	for _, pair := range [][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	} {
		switch {
		case pair[0] < pair[1]:
			return -1
		case pair[0] > pair[1]:
			return 1
		}
	}
	return 0
}

func (v Version) Less(other Version) bool { return v.Compare(other) < 0 }

// MarshalText encodes the version as its canonical text, which is also
// the JSON form.
func (v Version) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MaxVersion returns the greatest of versions.
func MaxVersion(versions []Version) (Version, error) {
	if len(versions) == 0 {
		return Version{}, errors.New("cannot find the maximum of no versions")
	}

	max := versions[0]
	for _, v := range versions[1:] {
		if max.Less(v) {
			max = v
		}
	}
	return max, nil
}
