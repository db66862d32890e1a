package vsinstance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is a Visual Studio style version: major.minor[.build[.revision]].
// The first three components are held as a semantic version so ordering uses
// the same comparison as the rest of the tooling; the revision breaks ties.
type Version struct {
	sem      *semver.Version
	revision uint64
	parts    int
}

// ParseVersion parses 2 to 4 dot-separated non-negative integers. Surrounding
// whitespace is ignored.
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	fields := strings.Split(trimmed, ".")
	if trimmed == "" || len(fields) < 2 || len(fields) > 4 {
		return Version{}, fmt.Errorf("invalid version %q: want major.minor[.build[.revision]]", s)
	}

	var nums [4]uint64
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 31)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: component %q", s, f)
		}
		nums[i] = n
	}

	return Version{
		sem:      semver.New(nums[0], nums[1], nums[2], "", ""),
		revision: nums[3],
		parts:    len(fields),
	}, nil
}

// MustParseVersion is ParseVersion that panics on error. For tests and constants.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v was never parsed.
func (v Version) IsZero() bool { return v.sem == nil }

// Major returns the major component.
func (v Version) Major() uint64 {
	if v.sem == nil {
		return 0
	}
	return v.sem.Major()
}

// Minor returns the minor component.
func (v Version) Minor() uint64 {
	if v.sem == nil {
		return 0
	}
	return v.sem.Minor()
}

// Build returns the third component.
func (v Version) Build() uint64 {
	if v.sem == nil {
		return 0
	}
	return v.sem.Patch()
}

// Revision returns the fourth component.
func (v Version) Revision() uint64 { return v.revision }

// Compare returns -1, 0 or 1. Missing components compare as zero.
func (v Version) Compare(o Version) int {
	a, b := v.semver(), o.semver()
	if c := a.Compare(b); c != 0 {
		return c
	}
	switch {
	case v.revision < o.revision:
		return -1
	case v.revision > o.revision:
		return 1
	default:
		return 0
	}
}

// GreaterThan reports whether v sorts after o.
func (v Version) GreaterThan(o Version) bool { return v.Compare(o) > 0 }

func (v Version) semver() *semver.Version {
	if v.sem == nil {
		return semver.New(0, 0, 0, "", "")
	}
	return v.sem
}

// String renders the version with as many components as were parsed.
func (v Version) String() string {
	if v.sem == nil {
		return ""
	}
	s := fmt.Sprintf("%d.%d", v.sem.Major(), v.sem.Minor())
	if v.parts >= 3 {
		s += fmt.Sprintf(".%d", v.sem.Patch())
	}
	if v.parts == 4 {
		s += fmt.Sprintf(".%d", v.revision)
	}
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
