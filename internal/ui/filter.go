package ui

import (
	"sort"

	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/search"
)

// nameBonus weights a name hit over an equal-scoring hit in the
// description or category, so "rg" surfaces ripgrep before tools that
// merely mention it.
const nameBonus = 10

// itemScore fuzzy-matches query against a tool's name, description and
// category and keeps the best field score.
func itemScore(it inventory.Item, query string) (int, bool) {
	best, ok := 0, false
	if s, hit := search.Match(query, it.Tool.Name); hit {
		best, ok = s+nameBonus, true
	}
	if s, hit := search.Match(query, it.Tool.Description); hit && (!ok || s > best) {
		best, ok = s, true
	}
	if s, hit := search.Match(query, it.Tool.Category); hit && (!ok || s > best) {
		best, ok = s, true
	}
	return best, ok
}

// rankItems filters items to those matching query and orders them by
// descending score, ties broken by name.
func rankItems(items []inventory.Item, query string) []inventory.Item {
	type scored struct {
		item  inventory.Item
		score int
	}
	matched := make([]scored, 0, len(items))
	for _, it := range items {
		if s, ok := itemScore(it, query); ok {
			matched = append(matched, scored{item: it, score: s})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].score != matched[j].score {
			return matched[i].score > matched[j].score
		}
		return matched[i].item.Tool.Name < matched[j].item.Tool.Name
	})
	out := make([]inventory.Item, len(matched))
	for i, s := range matched {
		out[i] = s.item
	}
	return out
}

// filterBundles applies the same matcher to bundle names.
func filterBundles(items []inventory.BundleItem, query string) []inventory.BundleItem {
	if query == "" {
		return items
	}
	type scored struct {
		item  inventory.BundleItem
		score int
	}
	matched := make([]scored, 0, len(items))
	for _, b := range items {
		s, ok := search.Match(query, b.Bundle.Name)
		if !ok {
			if s2, ok2 := search.Match(query, b.Bundle.Description); ok2 {
				s, ok = s2, true
			}
		} else {
			s += nameBonus
		}
		if ok {
			matched = append(matched, scored{item: b, score: s})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].score != matched[j].score {
			return matched[i].score > matched[j].score
		}
		return matched[i].item.Bundle.Name < matched[j].item.Bundle.Name
	})
	out := make([]inventory.BundleItem, len(matched))
	for i, s := range matched {
		out[i] = s.item
	}
	return out
}
