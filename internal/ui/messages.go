package ui

import "github.com/chrisbataille/hoards/internal/inventory"

// Bubble Tea messages. Background work communicates with the event loop
// exclusively through these; nothing outside Update touches view state.

// snapshotMsg delivers a (re)loaded inventory snapshot.
type snapshotMsg struct {
	snap inventory.Snapshot
	err  error
}

// jobDoneMsg reports one finished external action for one tool.
type jobDoneMsg struct {
	kind  jobKind
	name  string
	delta inventory.Delta
	err   error
}

// externalChangeMsg signals that the store files changed on disk.
type externalChangeMsg struct{}
