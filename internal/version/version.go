package version

import (
	"regexp"
	"strings"
)

var verRe = regexp.MustCompile(`(?i)\bv?(\d+(?:\.\d+)*(?:[\w\.-]+)?)\b`)

// Extract pulls the first semver-looking token out of arbitrary command
// output (e.g. "ripgrep 14.1.0 (rev abc123)").
func Extract(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	line := strings.Split(s, "\n")[0]
	if m := verRe.FindStringSubmatch(line); len(m) > 1 {
		return m[1]
	}
	if m := verRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}

// Version is a permissively parsed semantic version. Pre-release and build
// suffixes are kept for display but ignored when classifying a change.
type Version struct {
	Major, Minor, Patch int
	Suffix              string
}

// Parse accepts semver-like strings ("1.2.3", "v2.0", "1.4.0-beta.1").
// Missing minor/patch components default to zero. Returns ok=false when the
// string has no leading numeric component at all; callers treat that the
// same as an absent version, never as an error.
func Parse(s string) (Version, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "v"))
	if s == "" {
		return Version{}, false
	}
	// Cut suffix at the first pre-release/build separator.
	core := s
	suffix := ""
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		core, suffix = s[:i], s[i:]
	}
	parts := strings.Split(core, ".")
	nums := [3]int{}
	seen := false
	for i := 0; i < len(parts) && i < 3; i++ {
		n, ok := leadingInt(parts[i])
		if !ok {
			break
		}
		nums[i] = n
		seen = true
	}
	if !seen {
		return Version{}, false
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Suffix: suffix}, true
}

// Compare orders by major, then minor, then patch. Suffixes are ignored.
func Compare(a, b Version) int {
	if a.Major != b.Major {
		return sign(a.Major - b.Major)
	}
	if a.Minor != b.Minor {
		return sign(a.Minor - b.Minor)
	}
	return sign(a.Patch - b.Patch)
}

// Less reports whether version string a sorts before b (best-effort).
// Unparsable inputs compare as not-less.
func Less(a, b string) bool {
	va, oka := Parse(a)
	vb, okb := Parse(b)
	if !oka || !okb {
		return false
	}
	return Compare(va, vb) < 0
}

// Change classifies the coarsest differing component between two versions.
type Change int

const (
	ChangeNone Change = iota
	ChangePatch
	ChangeMinor
	ChangeMajor
)

func (c Change) String() string {
	switch c {
	case ChangePatch:
		return "patch"
	case ChangeMinor:
		return "minor"
	case ChangeMajor:
		return "major"
	default:
		return "none"
	}
}

// Classify compares current and available version strings. Either side being
// empty or unparsable yields ChangeNone; downstream decision logic reports
// those as unknown before consulting the classification.
func Classify(current, available string) Change {
	cur, okc := Parse(current)
	avail, oka := Parse(available)
	if !okc || !oka {
		return ChangeNone
	}
	switch {
	case cur.Major != avail.Major:
		return ChangeMajor
	case cur.Minor != avail.Minor:
		return ChangeMinor
	case cur.Patch != avail.Patch:
		return ChangePatch
	default:
		return ChangeNone
	}
}

func leadingInt(s string) (int, bool) {
	n := 0
	ok := false
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		ok = true
	}
	return n, ok
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
