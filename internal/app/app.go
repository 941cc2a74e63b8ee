// Package app wires the console together and runs the Bubble Tea program.
package app

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/chrisbataille/hoards/internal/config"
	"github.com/chrisbataille/hoards/internal/store"
	"github.com/chrisbataille/hoards/internal/system"
	"github.com/chrisbataille/hoards/internal/ui"
)

// Start opens the store, attaches a file watcher and runs the TUI until the
// user quits.
func Start() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	st, err := store.Open()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	var changes <-chan struct{}
	if w, err := st.Watch(); err != nil {
		system.Logger.Warn("store watcher unavailable", "err", err)
	} else {
		defer w.Close()
		changes = w.Changes()
	}

	// Global bubblezone manager for mouse-aware zones.
	zone.NewGlobal()
	m := ui.New(cfg, st, system.NewRunner(), changes)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return err
	}
	return nil
}

// Main is a helper to use as entry-point from cmd.
func Main() {
	if err := Start(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
