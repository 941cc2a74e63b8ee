// Package inventory defines the tool/bundle data model, the collaborator
// interfaces the console talks to, and the read-mostly per-tab projection
// it renders.
package inventory

import (
	"strings"
	"time"

	"github.com/chrisbataille/hoards/internal/policy"
)

// Source is the package-manager origin of a tool. The set is closed;
// anything unrecognized maps to SourceUnknown.
type Source string

const (
	SourceCargo   Source = "cargo"
	SourceApt     Source = "apt"
	SourceSnap    Source = "snap"
	SourceFlatpak Source = "flatpak"
	SourceNpm     Source = "npm"
	SourcePip     Source = "pip"
	SourceBrew    Source = "brew"
	SourceManual  Source = "manual"
	SourceUnknown Source = "unknown"
)

// Sources lists every known source in display order.
func Sources() []Source {
	return []Source{
		SourceCargo, SourceApt, SourceSnap, SourceFlatpak,
		SourceNpm, SourcePip, SourceBrew, SourceManual,
	}
}

// ParseSource maps a free-form tag to a Source.
func ParseSource(s string) Source {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case SourceCargo:
		return SourceCargo
	case SourceApt:
		return SourceApt
	case SourceSnap:
		return SourceSnap
	case SourceFlatpak:
		return SourceFlatpak
	case SourceNpm:
		return SourceNpm
	case SourcePip:
		return SourcePip
	case SourceBrew:
		return SourceBrew
	case SourceManual:
		return SourceManual
	default:
		return SourceUnknown
	}
}

func (s Source) String() string { return string(s) }

// Tool is one tracked CLI tool. Name is unique within a snapshot and a tool
// belongs to exactly one source.
type Tool struct {
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	Category         string         `json:"category,omitempty"`
	Source           Source         `json:"source"`
	InstallCommand   string         `json:"install_command,omitempty"`
	Binary           string         `json:"binary,omitempty"`
	Installed        bool           `json:"installed"`
	Favorite         bool           `json:"favorite,omitempty"`
	InstalledVersion string         `json:"installed_version,omitempty"`
	AvailableVersion string         `json:"available_version,omitempty"`
	Policy           *policy.Policy `json:"policy,omitempty"` // tool-level override
	Labels           []string       `json:"labels,omitempty"`
	UseCount         int            `json:"use_count,omitempty"`
	// Daily usage counts for the trailing 7 days, oldest first. The window
	// is anchored by LastUsedAt; RollUsage slides it forward.
	Daily      []int     `json:"daily,omitempty"`
	LastUsedAt time.Time `json:"last_used_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// RollUsage slides the daily usage window forward to now, zero-filling one
// bucket per calendar day elapsed since the tool was last used. Daily is
// normalized to seven buckets, oldest first. The anchor itself is only
// advanced by an actual use.
func (t *Tool) RollUsage(now time.Time) {
	for len(t.Daily) < 7 {
		t.Daily = append([]int{0}, t.Daily...)
	}
	if len(t.Daily) > 7 {
		t.Daily = t.Daily[len(t.Daily)-7:]
	}
	if t.LastUsedAt.IsZero() {
		return
	}
	days := daysBetween(t.LastUsedAt, now)
	if days <= 0 {
		return
	}
	if days > 7 {
		days = 7
	}
	t.Daily = append(t.Daily[days:], make([]int, days)...)
}

func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}

// Bundle references member tools by name; it does not own them. Deleting a
// bundle never deletes tools.
type Bundle struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Tools       []string       `json:"tools"`
	Policy      *policy.Policy `json:"policy,omitempty"`
}

// Contains reports whether the bundle lists the tool.
func (b Bundle) Contains(tool string) bool {
	for _, t := range b.Tools {
		if t == tool {
			return true
		}
	}
	return false
}

// Snapshot is the one-time inventory the console is constructed from.
type Snapshot struct {
	Tools          []Tool
	Bundles        []Bundle
	SourceDefaults map[Source]policy.Policy
	GlobalDefault  *policy.Policy
}

// Tool looks a tool up by name.
func (s Snapshot) Tool(name string) (Tool, bool) {
	for _, t := range s.Tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// BundlesFor returns the policies of every bundle listing the tool, in
// bundle lookup order, as resolver input.
func (s Snapshot) BundlesFor(tool string) []policy.BundlePolicy {
	var out []policy.BundlePolicy
	for _, b := range s.Bundles {
		if b.Policy != nil && b.Contains(tool) {
			out = append(out, policy.BundlePolicy{Bundle: b.Name, Policy: *b.Policy})
		}
	}
	return out
}
