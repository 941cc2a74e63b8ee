package policy

import "github.com/chrisbataille/hoards/internal/version"

// Decision is the actionable outcome of comparing versions under a policy.
type Decision int

const (
	DecisionUnknown Decision = iota
	DecisionUpToDate
	DecisionUpdate
	DecisionSkipMajor
	DecisionPinned
)

func (d Decision) String() string {
	switch d {
	case DecisionUpToDate:
		return "up-to-date"
	case DecisionUpdate:
		return "update"
	case DecisionSkipMajor:
		return "skip-major"
	case DecisionPinned:
		return "pinned"
	default:
		return "unknown"
	}
}

// Glyph maps every decision to its display marker. The mapping is total;
// up-to-date and unknown render as nothing.
func (d Decision) Glyph() string {
	switch d {
	case DecisionUpdate:
		return "↑"
	case DecisionSkipMajor:
		return "⚠"
	case DecisionPinned:
		return "📌"
	default:
		return ""
	}
}

// Decide determines whether an update is permitted given the current and
// available version strings and the resolved policy.
func Decide(current, available string, p Policy) Decision {
	if _, ok := version.Parse(current); !ok {
		return DecisionUnknown
	}
	if _, ok := version.Parse(available); !ok {
		return DecisionUnknown
	}
	change := version.Classify(current, available)
	switch {
	case change == version.ChangeNone:
		return DecisionUpToDate
	case p == Pinned:
		return DecisionPinned
	case p == Stable && change == version.ChangeMajor:
		return DecisionSkipMajor
	default:
		return DecisionUpdate
	}
}
