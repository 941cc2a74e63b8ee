package ui

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/policy"
	"github.com/chrisbataille/hoards/internal/system"
)

const pageStep = 10

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			m.setStatus("load failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.snap = msg.snap
		m.loaded = true
		m.pruneSelection()
		m.recompute()
		return m, nil

	case jobDoneMsg:
		return m.handleJobDone(msg)

	case externalChangeMsg:
		cmds := []tea.Cmd{loadSnapshotCmd(m.provider)}
		if m.changes != nil {
			cmds = append(cmds, waitChangeCmd(m.changes))
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			for _, t := range inventory.Tabs() {
				if zone.Get("tab-" + t.Title()).InBounds(msg) {
					m.switchTab(t)
					break
				}
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, whatever state the console is in.
	if msg.Type == tea.KeyCtrlC {
		m.cancelJobs()
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.showDetails {
		m.showDetails = false
		return m, nil
	}
	if m.pending != nil {
		return m.handleConfirmKey(msg)
	}

	switch m.mode {
	case modeSearch:
		return m.handleSearchKey(msg)
	case modeCommand:
		return m.handleCommandKey(msg)
	case modeJump:
		return m.handleJumpKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		p := *m.pending
		m.pending = nil
		return m.startJobs(p.kind, p.tools)
	case "n", "N", "esc":
		m.pending = nil
		m.setStatus("cancelled", false)
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// Abandon the search: the filter in effect before "/" comes back.
		m.mode = modeNormal
		m.searchInput.Blur()
		m.query = m.savedQuery
		m.recompute()
		return m, nil
	case tea.KeyEnter:
		committed := m.searchInput.Value()
		m.mode = modeNormal
		m.searchInput.Blur()
		if committed != m.savedQuery {
			m.record(histFilter)
		}
		m.query = committed
		m.recompute()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.recompute()
	return m, cmd
}

func (m Model) handleJumpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return m, nil
	}
	r := unicode.ToLower(msg.Runes[0])
	if !unicode.IsLetter(r) {
		return m, nil
	}
	for i := range m.items {
		name := strings.ToLower(m.items[i].Tool.Name)
		if name != "" && rune(name[0]) == r {
			m.cursor = i
			break
		}
	}
	return m, nil
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// status lines are transient: any key clears the previous one
	m.clearStatus()

	switch msg.String() {
	case "q":
		m.cancelJobs()
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = m.visibleCount() - 1
		m.clampCursor(m.visibleCount())
	case "ctrl+d", "pgdown":
		m.moveCursor(pageStep)
	case "ctrl+u", "pgup":
		m.moveCursor(-pageStep)

	case "tab", "]":
		m.switchTab(m.tab.Next())
	case "shift+tab", "[":
		m.switchTab(m.tab.Prev())
	case "1", "2", "3", "4":
		if t, ok := inventory.TabFromIndex(int(msg.String()[0] - '1')); ok {
			m.switchTab(t)
		}

	case "/":
		m.mode = modeSearch
		m.savedQuery = m.query
		m.searchInput.SetValue(m.query)
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
	case "n":
		if m.query != "" {
			m.stepMatch(1)
		}
	case "N":
		if m.query != "" {
			m.stepMatch(-1)
		}
	case "f":
		if m.tab != inventory.TabBundles && len(m.items) > 0 {
			m.mode = modeJump
		}
	case ":":
		m.mode = modeCommand
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.cmdHistIdx = -1

	case "esc":
		if m.query != "" {
			m.record(histFilter)
			m.query = ""
			m.recompute()
		}

	case "s":
		m.record(histSort)
		m.sortBy = m.sortBy.Next()
		m.recompute()
		m.setStatus("sort: "+m.sortBy.Label(), false)

	case " ":
		if it, ok := m.currentItem(); ok {
			m.record(histSelection)
			m.sel.Toggle(it.Tool.Name)
			m.moveCursor(1)
		}
	case "ctrl+a":
		if m.tab != inventory.TabBundles && len(m.items) > 0 {
			m.record(histSelection)
			for _, it := range m.items {
				m.sel.Add(it.Tool.Name)
			}
		}
	case "x":
		if m.sel.Len() > 0 {
			m.record(histSelection)
			m.sel.Clear()
		}

	case "i":
		return m.requestAction(jobInstall)
	case "D":
		return m.requestAction(jobUninstall)
	case "u":
		return m.requestAction(jobUpdate)

	case "p":
		m.cyclePolicy()
	case "r":
		m.setStatus("refreshing", false)
		return m, loadSnapshotCmd(m.provider)

	case "enter":
		if m.visibleCount() > 0 {
			m.showDetails = true
		}
	case "?":
		m.showHelp = true

	case "ctrl+z":
		m.undoView()
	case "ctrl+y":
		m.redoView()
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor(m.visibleCount())
}

// wrapCursor steps through filter matches with wrap-around.
func (m *Model) wrapCursor(delta int) {
	n := m.visibleCount()
	if n == 0 {
		return
	}
	m.cursor = ((m.cursor+delta)%n + n) % n
}

func (m *Model) stepMatch(delta int) {
	m.wrapCursor(delta)
	if n := m.visibleCount(); n > 0 {
		m.setStatus(fmt.Sprintf("match %d/%d", m.cursor+1, n), false)
	}
}

func (m *Model) switchTab(t inventory.Tab) {
	if t == m.tab {
		return
	}
	m.record(histTab)
	m.tab = t
	m.cursor = 0
	m.recompute()
}

// pruneSelection drops selected names no longer present in the snapshot.
func (m *Model) pruneSelection() {
	for _, name := range m.sel.Names() {
		if _, ok := m.snap.Tool(name); !ok {
			m.sel.Remove(name)
		}
	}
}

// requestAction gathers the target tools for an external action and asks
// for confirmation. Nothing runs until the user answers.
func (m Model) requestAction(kind jobKind) (tea.Model, tea.Cmd) {
	tools := m.actionTargets(kind)
	if len(tools) == 0 {
		m.setStatus("nothing to "+strings.ToLower(kind.verb()), false)
		return m, nil
	}
	m.pending = &pendingAction{kind: kind, tools: tools}
	return m, nil
}

// actionTargets resolves the action's tool set: the multi-selection when one
// exists, the cursor row otherwise. Ineligible and busy tools are skipped.
func (m Model) actionTargets(kind jobKind) []string {
	var candidates []string
	switch {
	case m.tab == inventory.TabBundles:
		if b, ok := m.currentBundle(); ok {
			candidates = b.Bundle.Tools
		}
	case m.sel.Len() > 0:
		candidates = m.sel.Names()
	default:
		if it, ok := m.currentItem(); ok {
			candidates = []string{it.Tool.Name}
		}
	}
	var out []string
	for _, name := range candidates {
		t, ok := m.snap.Tool(name)
		if !ok {
			continue
		}
		if _, running := m.busy[name]; running {
			continue
		}
		switch kind {
		case jobInstall:
			if t.Installed {
				continue
			}
		case jobUninstall, jobUpdate:
			if !t.Installed {
				continue
			}
		}
		if kind == jobUpdate {
			if inventory.Decorate(m.snap, t).Decision == policy.DecisionPinned {
				continue
			}
		}
		out = append(out, name)
	}
	return out
}

// startJobs launches one background job per tool and marks them busy.
func (m Model) startJobs(kind jobKind, names []string) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, name := range names {
		t, ok := m.snap.Tool(name)
		if !ok {
			continue
		}
		ctx, cancel := context.WithCancel(context.Background())
		m.busy[name] = cancel
		cmds = append(cmds, runJobCmd(ctx, m.runner, kind, t))
	}
	if len(cmds) == 0 {
		return m, nil
	}
	m.batchTotal += len(cmds)
	m.setStatus(fmt.Sprintf("%s: %d running", strings.ToLower(kind.verb()), len(cmds)), false)
	return m, tea.Batch(cmds...)
}

func (m Model) handleJobDone(msg jobDoneMsg) (tea.Model, tea.Cmd) {
	cancel, running := m.busy[msg.name]
	if !running {
		// Cancelled before completion; the result no longer applies.
		return m, nil
	}
	cancel()
	delete(m.busy, msg.name)
	m.batchDone++
	if len(m.busy) == 0 {
		m.batchTotal, m.batchDone = 0, 0
	}

	if msg.err != nil {
		m.setStatus(fmt.Sprintf("%s %s: %v", strings.ToLower(msg.kind.verb()), msg.name, msg.err), true)
		return m, nil
	}

	mut := inventory.Mutation{Tool: msg.name, Version: msg.delta.InstalledVersion}
	switch msg.kind {
	case jobUninstall:
		mut.Kind = inventory.MutationUninstall
	case jobUpdate:
		mut.Kind = inventory.MutationUpdate
	default:
		mut.Kind = inventory.MutationInstall
	}
	if err := m.provider.ApplyMutation(mut); err != nil {
		system.Logger.Error("persist mutation", "tool", msg.name, "err", err)
		m.setStatus("persist failed: "+err.Error(), true)
		return m, nil
	}

	for i := range m.snap.Tools {
		if m.snap.Tools[i].Name == msg.name {
			m.snap.Tools[i].Installed = msg.delta.Installed
			m.snap.Tools[i].InstalledVersion = msg.delta.InstalledVersion
			break
		}
	}
	if !msg.delta.Installed {
		m.sel.Remove(msg.name)
	}
	m.recompute()
	m.setStatus(fmt.Sprintf("%s %s done", strings.ToLower(msg.kind.verb()), msg.name), false)
	return m, nil
}

// cyclePolicy advances the cursor tool's override latest -> stable ->
// pinned and persists it immediately.
func (m *Model) cyclePolicy() {
	it, ok := m.currentItem()
	if !ok {
		return
	}
	next := it.Policy.Next()
	if err := m.provider.ApplyMutation(inventory.Mutation{
		Kind:   inventory.MutationSetPolicy,
		Tool:   it.Tool.Name,
		Policy: &next,
	}); err != nil {
		m.setStatus("set policy: "+err.Error(), true)
		return
	}
	for i := range m.snap.Tools {
		if m.snap.Tools[i].Name == it.Tool.Name {
			p := next
			m.snap.Tools[i].Policy = &p
			break
		}
	}
	m.recompute()
	m.setStatus(fmt.Sprintf("%s policy: %s", it.Tool.Name, next), false)
}

// record snapshots the current value of one view facet onto the undo stack.
func (m *Model) record(kind histKind) {
	m.hist.Push(m.entryOf(kind))
}

func (m *Model) entryOf(kind histKind) histEntry {
	e := histEntry{kind: kind}
	switch kind {
	case histSelection:
		e.selection = m.sel.Clone()
	case histFilter:
		e.filter = m.query
	case histTab:
		e.tab = m.tab
	case histSort:
		e.sort = m.sortBy
	}
	return e
}

func (m *Model) applyEntry(e histEntry) {
	switch e.kind {
	case histSelection:
		m.sel.Restore(e.selection)
	case histFilter:
		m.query = e.filter
	case histTab:
		m.tab = e.tab
		m.cursor = 0
	case histSort:
		m.sortBy = e.sort
	}
	m.recompute()
}

func (m *Model) undoView() {
	e, ok := m.hist.PopUndo()
	if !ok {
		m.setStatus("nothing to undo", false)
		return
	}
	m.hist.PushRedo(m.entryOf(e.kind))
	m.applyEntry(e)
	m.setStatus("undo", false)
}

func (m *Model) redoView() {
	e, ok := m.hist.PopRedo()
	if !ok {
		m.setStatus("nothing to redo", false)
		return
	}
	m.hist.PushUndoKeepRedo(m.entryOf(e.kind))
	m.applyEntry(e)
	m.setStatus("redo", false)
}
