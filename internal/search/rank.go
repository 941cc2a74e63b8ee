package search

import "sort"

// Scored pairs an index into the caller's slice with its match score.
type Scored struct {
	Index int
	Score int
}

// Rank filters and orders targets against query. An empty query returns
// every target in its original order, unscored. Otherwise non-matching
// targets are dropped and results are ordered best score first, ties broken
// by the lexical order of the target string.
func Rank(query string, targets []string) []Scored {
	if query == "" {
		out := make([]Scored, len(targets))
		for i := range targets {
			out[i] = Scored{Index: i}
		}
		return out
	}
	out := make([]Scored, 0, len(targets))
	for i, t := range targets {
		if s, ok := Match(query, t); ok {
			out = append(out, Scored{Index: i, Score: s})
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		return targets[out[a].Index] < targets[out[b].Index]
	})
	return out
}
