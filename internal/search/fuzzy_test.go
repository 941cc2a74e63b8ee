package search

import (
	"reflect"
	"testing"
)

func TestMatchSubsequence(t *testing.T) {
	if _, ok := Match("rg", "ripgrep"); !ok {
		t.Fatal(`"rg" should match "ripgrep"`)
	}
	if _, ok := Match("rg", "fd"); ok {
		t.Fatal(`"rg" must not match "fd"`)
	}
	if _, ok := Match("RG", "ripgrep"); !ok {
		t.Fatal("matching must be case-insensitive")
	}
	// order matters: characters must appear in query order
	if _, ok := Match("gr", "rg"); ok {
		t.Fatal(`"gr" must not match "rg"`)
	}
	if s, ok := Match("", "anything"); !ok || s != 0 {
		t.Fatalf("empty query: got (%d, %v)", s, ok)
	}
}

func TestMatchScoring(t *testing.T) {
	// Exact match beats prefix match beats scattered match.
	exact, _ := Match("fd", "fd")
	prefix, _ := Match("fd", "fdupes")
	scattered, _ := Match("fd", "findutils-default")
	if !(exact > prefix && prefix > scattered) {
		t.Errorf("score order wrong: exact=%d prefix=%d scattered=%d", exact, prefix, scattered)
	}

	// Consecutive matches outscore the same letters spread out.
	run, _ := Match("grep", "ripgrep")
	spread, _ := Match("grep", "grinder-explorer-pack")
	if run <= spread {
		t.Errorf("consecutive run should win: run=%d spread=%d", run, spread)
	}

	// A word-boundary match beats a mid-word match.
	boundary, _ := Match("v", "some-viewer")
	mid, _ := Match("v", "xvtool")
	if boundary <= mid {
		t.Errorf("boundary should win: boundary=%d mid=%d", boundary, mid)
	}
}

func TestMatchPositions(t *testing.T) {
	_, pos, ok := MatchPositions("rg", "ripgrep")
	if !ok {
		t.Fatal("expected match")
	}
	if !reflect.DeepEqual(pos, []int{0, 3}) {
		t.Errorf("positions = %v, want [0 3]", pos)
	}
}

func TestRank(t *testing.T) {
	items := []string{"ripgrep", "fd", "bat"}

	got := Rank("rg", items)
	if len(got) != 1 || items[got[0].Index] != "ripgrep" {
		t.Fatalf(`Rank("rg") = %v, want only ripgrep`, got)
	}

	// Empty query: everything, original order, unscored.
	got = Rank("", items)
	if len(got) != 3 {
		t.Fatalf("empty query should keep all items, got %d", len(got))
	}
	for i, s := range got {
		if s.Index != i || s.Score != 0 {
			t.Fatalf("empty query must preserve order unscored, got %v", got)
		}
	}

	// No subsequence anywhere: empty result.
	if got = Rank("zzz", items); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestRankTiesLexical(t *testing.T) {
	// Identical scoring shape, tie broken by name.
	items := []string{"zoxide-b", "zoxide-a"}
	got := Rank("zoxide", items)
	if len(got) != 2 {
		t.Fatalf("want 2 results, got %d", len(got))
	}
	if items[got[0].Index] != "zoxide-a" {
		t.Errorf("tie should order lexically, got %q first", items[got[0].Index])
	}
}
