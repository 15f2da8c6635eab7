package bytecode

import "fmt"

// Version identifies the on-wire encoding a producer used.
// The pair is monotonically non-decreasing across producers within one
// compatibility window; a consumer rejects anything newer than Current.
type Version struct {
	Major uint32
	Minor uint32
}

// Current is the highest encoding this build understands and the only
// one it produces.
var Current = Version{Major: 2, Minor: 0}

// String renders the version as "major.minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParseVersion parses a "major.minor" spelling.
func ParseVersion(s string) (Version, error) {
	var v Version
	if _, err := fmt.Sscanf(s, "%d.%d", &v.Major, &v.Minor); err != nil {
		return Version{}, fmt.Errorf("bad version %q: want major.minor", s)
	}
	return v, nil
}

// NewerThan reports whether v is strictly newer than o.
func (v Version) NewerThan(o Version) bool {
	if v.Major != o.Major {
		return v.Major > o.Major
	}
	return v.Minor > o.Minor
}
