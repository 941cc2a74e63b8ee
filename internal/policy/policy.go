package policy

import (
	"fmt"
	"strings"
)

// Policy governs whether a tool accepts version updates.
type Policy string

const (
	Latest Policy = "latest"
	Stable Policy = "stable"
	Pinned Policy = "pinned"
)

// Default is the global fallback when nothing is configured.
const Default = Stable

// Parse accepts a policy name case-insensitively.
func Parse(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "latest":
		return Latest, nil
	case "stable":
		return Stable, nil
	case "pinned", "pin":
		return Pinned, nil
	default:
		return "", fmt.Errorf("unknown policy %q (latest, stable, pinned)", s)
	}
}

func (p Policy) String() string { return string(p) }

// Valid reports whether p is one of the three known policies.
func (p Policy) Valid() bool {
	return p == Latest || p == Stable || p == Pinned
}

// Next cycles latest -> stable -> pinned -> latest.
func (p Policy) Next() Policy {
	switch p {
	case Latest:
		return Stable
	case Stable:
		return Pinned
	default:
		return Latest
	}
}

// restrictiveness rank used for the bundle tie-break: pinned > stable > latest.
func (p Policy) rank() int {
	switch p {
	case Pinned:
		return 2
	case Stable:
		return 1
	default:
		return 0
	}
}
