package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/policy"
)

// commandSpec is one entry of the ":" palette.
type commandSpec struct {
	name string
	args string
	help string
}

var commandTable = []commandSpec{
	{name: "help", help: "show key help"},
	{name: "quit", help: "exit the console"},
	{name: "install", help: "install selection or cursor tool"},
	{name: "uninstall", help: "uninstall selection or cursor tool"},
	{name: "update", help: "update selection or cursor tool"},
	{name: "policy", args: "<latest|stable|pinned|clear>", help: "set or clear the tool policy override"},
	{name: "sort", args: "<name|usage|recent>", help: "change the sort order"},
	{name: "source", args: "<source|all>", help: "filter by package source"},
	{name: "tab", args: "<installed|available|updates|bundles>", help: "switch tab"},
	{name: "theme", args: "<name>", help: "switch color theme"},
	{name: "select-all", help: "select every visible tool"},
	{name: "clear", help: "clear the selection"},
	{name: "undo", help: "undo the last view change"},
	{name: "redo", help: "redo the last undone view change"},
	{name: "refresh", help: "reload the inventory from disk"},
}

func sourceList() string {
	names := make([]string, 0, len(inventory.Sources()))
	for _, s := range inventory.Sources() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}

func commandNames() []string {
	out := make([]string, len(commandTable))
	for i, c := range commandTable {
		out[i] = c.name
	}
	return out
}

// suggest fuzzy-ranks palette commands against the first word typed.
func suggest(input string) []string {
	word := strings.Fields(input)
	if len(word) != 1 {
		return nil
	}
	matches := fuzzy.Find(word[0], commandNames())
	out := make([]string, 0, len(matches))
	for _, mt := range matches {
		out = append(out, mt.Str)
	}
	return out
}

func (m Model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.commandInput.Blur()
		return m, nil
	case tea.KeyEnter:
		line := strings.TrimSpace(m.commandInput.Value())
		m.mode = modeNormal
		m.commandInput.Blur()
		if line == "" {
			return m, nil
		}
		m.cmdHistory = append(m.cmdHistory, line)
		m.cmdHistIdx = -1
		return m.executeCommand(line)
	case tea.KeyTab:
		if s := suggest(m.commandInput.Value()); len(s) > 0 {
			m.commandInput.SetValue(s[0] + " ")
			m.commandInput.CursorEnd()
		}
		return m, nil
	case tea.KeyUp:
		if len(m.cmdHistory) > 0 {
			if m.cmdHistIdx < 0 {
				m.cmdHistIdx = len(m.cmdHistory)
			}
			if m.cmdHistIdx > 0 {
				m.cmdHistIdx--
			}
			m.commandInput.SetValue(m.cmdHistory[m.cmdHistIdx])
			m.commandInput.CursorEnd()
		}
		return m, nil
	case tea.KeyDown:
		if m.cmdHistIdx >= 0 {
			m.cmdHistIdx++
			if m.cmdHistIdx >= len(m.cmdHistory) {
				m.cmdHistIdx = -1
				m.commandInput.SetValue("")
			} else {
				m.commandInput.SetValue(m.cmdHistory[m.cmdHistIdx])
				m.commandInput.CursorEnd()
			}
		}
		return m, nil
	case tea.KeyBackspace:
		if m.commandInput.Value() == "" {
			m.mode = modeNormal
			m.commandInput.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

func (m Model) executeCommand(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	// bare tab names and indexes switch directly, matching the 1-4 keys
	if len(name) == 1 && name[0] >= '1' && name[0] <= '4' {
		if t, ok := inventory.TabFromIndex(int(name[0] - '1')); ok {
			m.switchTab(t)
			return m, nil
		}
	}
	for _, t := range inventory.Tabs() {
		if strings.EqualFold(t.Title(), name) {
			m.switchTab(t)
			return m, nil
		}
	}

	switch name {
	case "help", "h":
		m.showHelp = true
	case "quit", "exit", "q":
		m.cancelJobs()
		m.quitting = true
		return m, tea.Quit

	case "install", "i":
		return m.requestAction(jobInstall)
	case "uninstall", "delete", "d":
		return m.requestAction(jobUninstall)
	case "update", "upgrade", "u":
		return m.requestAction(jobUpdate)

	case "policy":
		if len(args) != 1 {
			m.setStatus("usage: policy <latest|stable|pinned|clear>", true)
			return m, nil
		}
		m.setPolicyCommand(args[0])

	case "sort":
		if len(args) != 1 {
			m.setStatus("usage: sort <name|usage|recent>", true)
			return m, nil
		}
		by, ok := inventory.ParseSortBy(args[0])
		if !ok {
			m.setStatus("unknown sort order: "+args[0], true)
			return m, nil
		}
		if by != m.sortBy {
			m.record(histSort)
			m.sortBy = by
			m.recompute()
		}
		m.setStatus("sort: "+m.sortBy.Label(), false)

	case "source", "src", "filter":
		if len(args) != 1 {
			m.setStatus("usage: source <source|all>", true)
			return m, nil
		}
		if args[0] == "all" {
			m.sourceFilter = ""
		} else {
			src := inventory.ParseSource(args[0])
			if src == inventory.SourceUnknown {
				m.setStatus("unknown source "+args[0]+" (one of: "+sourceList()+", all)", true)
				return m, nil
			}
			m.sourceFilter = src.String()
		}
		m.recompute()

	case "tab":
		if len(args) != 1 {
			m.setStatus("usage: tab <installed|available|updates|bundles>", true)
			return m, nil
		}
		found := false
		for _, t := range inventory.Tabs() {
			if strings.EqualFold(t.Title(), args[0]) {
				m.switchTab(t)
				found = true
				break
			}
		}
		if !found {
			m.setStatus("unknown tab: "+args[0], true)
		}

	case "theme":
		if len(args) != 1 {
			m.setStatus("themes: "+strings.Join(themeNames(), ", "), false)
			return m, nil
		}
		if args[0] == "next" {
			m.applyTheme(nextTheme(m.theme.Name))
			m.setStatus("theme: "+m.theme.Name, false)
			return m, nil
		}
		t, ok := lookupTheme(args[0])
		if !ok {
			m.setStatus("unknown theme: "+args[0], true)
			return m, nil
		}
		m.applyTheme(t)
		m.setStatus("theme: "+t.Name, false)

	case "select-all":
		if m.tab != inventory.TabBundles && len(m.items) > 0 {
			m.record(histSelection)
			for _, it := range m.items {
				m.sel.Add(it.Tool.Name)
			}
		}
	case "clear":
		if m.sel.Len() > 0 {
			m.record(histSelection)
			m.sel.Clear()
		}

	case "undo", "z":
		m.undoView()
	case "redo", "y":
		m.redoView()
	case "refresh", "r":
		return m, loadSnapshotCmd(m.provider)

	default:
		m.setStatus("unknown command: "+name, true)
	}
	return m, nil
}

// setPolicyCommand applies a policy override to the selection or cursor
// tool; "clear" removes the override so defaults apply again.
func (m *Model) setPolicyCommand(arg string) {
	var pol *policy.Policy
	if arg != "clear" {
		p, err := policy.Parse(arg)
		if err != nil {
			m.setStatus(err.Error(), true)
			return
		}
		pol = &p
	}

	names := m.sel.Names()
	if len(names) == 0 {
		it, ok := m.currentItem()
		if !ok {
			m.setStatus("no tool under cursor", true)
			return
		}
		names = []string{it.Tool.Name}
	}
	for _, name := range names {
		if err := m.provider.ApplyMutation(inventory.Mutation{
			Kind:   inventory.MutationSetPolicy,
			Tool:   name,
			Policy: pol,
		}); err != nil {
			m.setStatus("set policy: "+err.Error(), true)
			return
		}
		for i := range m.snap.Tools {
			if m.snap.Tools[i].Name == name {
				if pol == nil {
					m.snap.Tools[i].Policy = nil
				} else {
					p := *pol
					m.snap.Tools[i].Policy = &p
				}
				break
			}
		}
	}
	m.recompute()
	if pol == nil {
		m.setStatus("policy override cleared", false)
	} else {
		m.setStatus("policy: "+pol.String(), false)
	}
}
