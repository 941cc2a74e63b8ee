package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chrisbataille/hoards/internal/config"
	"github.com/chrisbataille/hoards/internal/history"
	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/system"
)

// inputMode is the console's top-level input state. Modes are mutually
// exclusive; every key event is resolved against exactly one of them.
type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modeCommand
	modeJump
)

// jobKind is the class of external action a background job performs.
type jobKind int

const (
	jobInstall jobKind = iota
	jobUninstall
	jobUpdate
)

func (k jobKind) verb() string {
	switch k {
	case jobUninstall:
		return "Uninstall"
	case jobUpdate:
		return "Update"
	default:
		return "Install"
	}
}

// pendingAction is a destructive request awaiting confirmation.
type pendingAction struct {
	kind  jobKind
	tools []string
}

func (p pendingAction) description() string {
	if len(p.tools) == 1 {
		return fmt.Sprintf("%s %s?", p.kind.verb(), p.tools[0])
	}
	return fmt.Sprintf("%s %d tools?", p.kind.verb(), len(p.tools))
}

// histKind tags which facet of view state an undo entry restores.
type histKind int

const (
	histSelection histKind = iota
	histFilter
	histTab
	histSort
)

// histEntry snapshots the prior value of one undoable facet.
type histEntry struct {
	kind      histKind
	selection *history.Selection
	filter    string
	tab       inventory.Tab
	sort      inventory.SortBy
}

type statusLine struct {
	text  string
	isErr bool
}

// Model is the console state. It is the single owner of all view state;
// background jobs report back only through messages.
type Model struct {
	cfg      config.Config
	provider inventory.Provider
	runner   inventory.ActionRunner
	changes  <-chan struct{} // optional store-watcher signal

	snap   inventory.Snapshot
	loaded bool

	tab     inventory.Tab
	items   []inventory.Item
	bundles []inventory.BundleItem
	cursor  int

	mode         inputMode
	searchInput  textinput.Model
	commandInput textinput.Model
	query        string // committed filter
	savedQuery   string // filter before entering search, restored on Esc

	sortBy       inventory.SortBy
	sourceFilter string

	sel  *history.Selection
	hist *history.Stack[histEntry]

	pending *pendingAction
	busy    map[string]context.CancelFunc
	// batch progress across the jobs launched by one confirmation
	batchTotal int
	batchDone  int

	cmdHistory []string
	cmdHistIdx int // -1 when not navigating history

	showHelp    bool
	showDetails bool

	status statusLine
	theme  designTheme
	spin   spinner.Model
	prog   progress.Model

	width, height int
	quitting      bool
}

// New builds the console model from a config and its collaborators.
// changes may be nil when no store watcher is attached.
func New(cfg config.Config, provider inventory.Provider, runner inventory.ActionRunner, changes <-chan struct{}) Model {
	theme := themeByName(cfg.Theme)

	si := textinput.New()
	si.Prompt = "/"
	si.CharLimit = 128

	ci := textinput.New()
	ci.Prompt = ":"
	ci.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	pr := progress.New(
		progress.WithGradient(string(theme.Primary), string(theme.Cyan)),
		progress.WithWidth(24),
		progress.WithoutPercentage(),
	)

	return Model{
		cfg:          cfg,
		provider:     provider,
		runner:       runner,
		changes:      changes,
		tab:          inventory.TabInstalled,
		searchInput:  si,
		commandInput: ci,
		sel:          history.NewSelection(),
		hist:         history.New[histEntry](cfg.UndoDepth),
		busy:         make(map[string]context.CancelFunc),
		cmdHistIdx:   -1,
		theme:        theme,
		spin:         sp,
		prog:         pr,
	}
}

// applyTheme switches the palette, restyles the themed widgets, and saves
// the choice so it survives restarts.
func (m *Model) applyTheme(t designTheme) {
	m.theme = t
	m.spin.Style = lipgloss.NewStyle().Foreground(t.Primary)
	m.prog = progress.New(
		progress.WithGradient(string(t.Primary), string(t.Cyan)),
		progress.WithWidth(24),
		progress.WithoutPercentage(),
	)
	m.cfg.Theme = t.Name
	if err := config.Save(m.cfg); err != nil {
		system.Logger.Warn("save config", "err", err)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadSnapshotCmd(m.provider), m.spin.Tick}
	if m.changes != nil {
		cmds = append(cmds, waitChangeCmd(m.changes))
	}
	return tea.Batch(cmds...)
}

// liveQuery is the filter currently in effect: the search buffer while
// typing, the committed query otherwise.
func (m Model) liveQuery() string {
	if m.mode == modeSearch {
		return m.searchInput.Value()
	}
	return m.query
}

// recompute rebuilds the visible item list for the active tab. It only
// derives display state; the snapshot itself is never modified here.
func (m *Model) recompute() {
	if m.tab == inventory.TabBundles {
		m.bundles = filterBundles(inventory.BundleItemsFor(m.snap), m.liveQuery())
		m.clampCursor(len(m.bundles))
		return
	}
	items := inventory.ItemsFor(m.snap, m.tab)
	kept := items[:0]
	for _, it := range items {
		if !m.cfg.SourceEnabled(it.Tool.Source.String()) {
			continue
		}
		if m.sourceFilter != "" && it.Tool.Source.String() != m.sourceFilter {
			continue
		}
		kept = append(kept, it)
	}
	items = kept
	if q := m.liveQuery(); q != "" {
		items = rankItems(items, q)
	} else {
		inventory.SortItems(items, m.sortBy)
	}
	m.items = items
	m.clampCursor(len(m.items))
}

func (m *Model) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// visibleCount is the row count of the active tab.
func (m Model) visibleCount() int {
	if m.tab == inventory.TabBundles {
		return len(m.bundles)
	}
	return len(m.items)
}

// currentItem returns the tool item under the cursor, if any.
func (m Model) currentItem() (inventory.Item, bool) {
	if m.tab == inventory.TabBundles || m.cursor >= len(m.items) {
		return inventory.Item{}, false
	}
	return m.items[m.cursor], true
}

// currentBundle returns the bundle under the cursor on the Bundles tab.
func (m Model) currentBundle() (inventory.BundleItem, bool) {
	if m.tab != inventory.TabBundles || m.cursor >= len(m.bundles) {
		return inventory.BundleItem{}, false
	}
	return m.bundles[m.cursor], true
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = statusLine{text: text, isErr: isErr}
}

func (m *Model) clearStatus() { m.status = statusLine{} }

// cancelJobs cooperatively cancels every in-flight job. Their results are
// discarded when they eventually arrive.
func (m *Model) cancelJobs() {
	for name, cancel := range m.busy {
		cancel()
		delete(m.busy, name)
	}
	m.batchTotal, m.batchDone = 0, 0
}
