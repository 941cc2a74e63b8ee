package inventory

import (
	"sort"

	"github.com/chrisbataille/hoards/internal/policy"
)

// Tab is one of the console's fixed browsing tabs.
type Tab int

const (
	TabInstalled Tab = iota
	TabAvailable
	TabUpdates
	TabBundles
)

// Tabs lists every tab in display order.
func Tabs() []Tab { return []Tab{TabInstalled, TabAvailable, TabUpdates, TabBundles} }

func (t Tab) Title() string {
	switch t {
	case TabInstalled:
		return "Installed"
	case TabAvailable:
		return "Available"
	case TabUpdates:
		return "Updates"
	case TabBundles:
		return "Bundles"
	default:
		return "?"
	}
}

// Next wraps to the first tab after the last.
func (t Tab) Next() Tab { return Tab((int(t) + 1) % len(Tabs())) }

// Prev wraps to the last tab before the first.
func (t Tab) Prev() Tab { return Tab((int(t) + len(Tabs()) - 1) % len(Tabs())) }

// TabFromIndex returns the tab at the 0-based index, if any.
func TabFromIndex(i int) (Tab, bool) {
	if i < 0 || i >= len(Tabs()) {
		return 0, false
	}
	return Tab(i), true
}

// SortBy orders a tab's items when no search query is active.
type SortBy int

const (
	SortName SortBy = iota
	SortUsage
	SortRecent
)

func (s SortBy) Next() SortBy { return (s + 1) % 3 }

func (s SortBy) Label() string {
	switch s {
	case SortUsage:
		return "usage"
	case SortRecent:
		return "recent"
	default:
		return "name"
	}
}

// ParseSortBy maps a command argument to a sort order.
func ParseSortBy(s string) (SortBy, bool) {
	switch s {
	case "name", "n", "alpha":
		return SortName, true
	case "usage", "u", "used":
		return SortUsage, true
	case "recent", "r", "last":
		return SortRecent, true
	default:
		return 0, false
	}
}

// Item is a display-ready tool row: the tool plus the derived fields the
// console renders. Items are recomputed from the snapshot; building them
// never mutates the underlying data.
type Item struct {
	Tool     Tool
	Policy   policy.Policy
	Prov     policy.Provenance
	Decision policy.Decision
	// Spark is the 0..7 usage intensity bucket feeding the sparkline glyph.
	Spark int
}

// BundleItem is a display-ready bundle row.
type BundleItem struct {
	Bundle    Bundle
	Installed int // members currently installed
}

// Decorate resolves the derived fields for one tool against the snapshot.
func Decorate(s Snapshot, t Tool) Item {
	return decorate(s, t, maxWeekTotal(s.Tools))
}

func decorate(s Snapshot, t Tool, maxWeek int) Item {
	var srcDefault *policy.Policy
	if p, ok := s.SourceDefaults[t.Source]; ok {
		srcDefault = &p
	}
	eff, prov := policy.Resolve(t.Policy, s.BundlesFor(t.Name), srcDefault, t.Source.String(), s.GlobalDefault)
	return Item{
		Tool:     t,
		Policy:   eff,
		Prov:     prov,
		Decision: policy.Decide(t.InstalledVersion, t.AvailableVersion, eff),
		Spark:    SparkBucket(weekTotal(t.Daily), maxWeek),
	}
}

// ItemsFor projects the snapshot onto a tab's eligible tools in name order.
// The projection is pure: calling it twice on the same snapshot yields the
// same result and the snapshot is never modified.
func ItemsFor(s Snapshot, tab Tab) []Item {
	var out []Item
	maxWeek := maxWeekTotal(s.Tools)
	for _, t := range s.Tools {
		item := decorate(s, t, maxWeek)
		switch tab {
		case TabInstalled:
			if !t.Installed {
				continue
			}
		case TabAvailable:
			if t.Installed {
				continue
			}
		case TabUpdates:
			if !t.Installed {
				continue
			}
			if item.Decision != policy.DecisionUpdate && item.Decision != policy.DecisionSkipMajor {
				continue
			}
		default:
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tool.Name < out[j].Tool.Name })
	return out
}

// BundleItemsFor projects the snapshot's bundles in name order.
func BundleItemsFor(s Snapshot) []BundleItem {
	out := make([]BundleItem, 0, len(s.Bundles))
	for _, b := range s.Bundles {
		installed := 0
		for _, name := range b.Tools {
			if t, ok := s.Tool(name); ok && t.Installed {
				installed++
			}
		}
		out = append(out, BundleItem{Bundle: b, Installed: installed})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bundle.Name < out[j].Bundle.Name })
	return out
}

// SortItems orders items by the given preference. Name is ascending; usage
// and recency are descending with name as tie-break.
func SortItems(items []Item, by SortBy) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Tool, items[j].Tool
		switch by {
		case SortUsage:
			if a.UseCount != b.UseCount {
				return a.UseCount > b.UseCount
			}
		case SortRecent:
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.After(b.UpdatedAt)
			}
		}
		return a.Name < b.Name
	})
}

// SparkBucket maps a usage total to one of 8 sparkline levels relative to
// the busiest tool in the snapshot.
func SparkBucket(total, max int) int {
	if total <= 0 || max <= 0 {
		return 0
	}
	b := total * 7 / max
	if b > 7 {
		b = 7
	}
	if b == 0 {
		b = 1 // any usage at all shows the lowest bar
	}
	return b
}

func weekTotal(daily []int) int {
	sum := 0
	for _, d := range daily {
		sum += d
	}
	return sum
}

func maxWeekTotal(tools []Tool) int {
	max := 0
	for _, t := range tools {
		if n := weekTotal(t.Daily); n > max {
			max = n
		}
	}
	return max
}
