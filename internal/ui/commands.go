package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chrisbataille/hoards/internal/inventory"
)

// loadSnapshotCmd reads the full inventory off the update loop.
func loadSnapshotCmd(p inventory.Provider) tea.Cmd {
	return func() tea.Msg {
		snap, err := p.LoadSnapshot()
		return snapshotMsg{snap: snap, err: err}
	}
}

// runJobCmd performs one external action for one tool. The result lands
// back in Update as a jobDoneMsg; nothing here touches model state.
func runJobCmd(ctx context.Context, r inventory.ActionRunner, kind jobKind, t inventory.Tool) tea.Cmd {
	return func() tea.Msg {
		var (
			delta inventory.Delta
			err   error
		)
		switch kind {
		case jobUninstall:
			delta, err = r.Uninstall(ctx, t)
		case jobUpdate:
			delta, err = r.Update(ctx, t)
		default:
			delta, err = r.Install(ctx, t)
		}
		return jobDoneMsg{kind: kind, name: t.Name, delta: delta, err: err}
	}
}

// waitChangeCmd blocks on the store watcher and rearms itself after each
// delivery, so every external edit triggers one reload.
func waitChangeCmd(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return externalChangeMsg{}
	}
}
