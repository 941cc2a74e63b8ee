// Package search implements the subsequence scorer behind the console's
// live filter. A match requires every query character to appear in order in
// the target (case-insensitive); scoring rewards matches near the start of
// the string, runs of consecutive matches, and matches that open a word.
package search

import "strings"

// Match scores query against target. ok is false when the query is not a
// subsequence of the target. An empty query matches everything with score 0.
func Match(query, target string) (score int, ok bool) {
	s, _, ok := match(query, target, false)
	return s, ok
}

// MatchPositions is Match plus the matched rune indexes, for highlighting.
func MatchPositions(query, target string) (score int, positions []int, ok bool) {
	return match(query, target, true)
}

func match(query, target string, wantPositions bool) (int, []int, bool) {
	query = strings.ToLower(query)
	target = strings.ToLower(target)
	if query == "" {
		return 0, nil, true
	}

	qr := []rune(query)
	tr := []rune(target)

	qi := 0
	score := 0
	prev := -2 // index of previous matched rune
	consecutive := 0
	var positions []int

	for ti, tc := range tr {
		if qi >= len(qr) || tc != qr[qi] {
			continue
		}
		score++
		if ti == prev+1 {
			consecutive += 2
			score += consecutive
		} else {
			consecutive = 0
		}
		if ti == 0 || !isWordRune(tr[ti-1]) {
			score += 3
		}
		if wantPositions {
			positions = append(positions, ti)
		}
		prev = ti
		qi++
	}

	if qi != len(qr) {
		return 0, nil, false
	}
	if query == target {
		score += 100
	} else if strings.HasPrefix(target, query) {
		score += 50
	}
	return score, positions, true
}

func isWordRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
