package ui

import (
	"context"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/chrisbataille/hoards/internal/config"
	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/policy"
	tu "github.com/chrisbataille/hoards/internal/testutil"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

type fakeProvider struct {
	snap inventory.Snapshot
	muts []inventory.Mutation
}

func (f *fakeProvider) LoadSnapshot() (inventory.Snapshot, error) { return f.snap, nil }

func (f *fakeProvider) RefreshTool(name string) (inventory.Tool, error) {
	t, _ := f.snap.Tool(name)
	return t, nil
}

func (f *fakeProvider) ApplyMutation(m inventory.Mutation) error {
	f.muts = append(f.muts, m)
	return nil
}

type fakeRunner struct{}

func (fakeRunner) Install(_ context.Context, t inventory.Tool) (inventory.Delta, error) {
	return inventory.Delta{Name: t.Name, Installed: true, InstalledVersion: t.AvailableVersion}, nil
}

func (fakeRunner) Uninstall(_ context.Context, t inventory.Tool) (inventory.Delta, error) {
	return inventory.Delta{Name: t.Name}, nil
}

func (fakeRunner) Update(_ context.Context, t inventory.Tool) (inventory.Delta, error) {
	return inventory.Delta{Name: t.Name, Installed: true, InstalledVersion: t.AvailableVersion}, nil
}

func testSnapshot() inventory.Snapshot {
	return inventory.Snapshot{
		Tools: []inventory.Tool{
			{Name: "bat", Description: "cat clone", Source: inventory.SourceCargo,
				Installed: true, InstalledVersion: "0.24.0", AvailableVersion: "0.25.0"},
			{Name: "eza", Description: "ls replacement", Source: inventory.SourceCargo,
				Installed: true, InstalledVersion: "1.0.0", AvailableVersion: "2.0.0"},
			{Name: "fd", Description: "find alternative", Source: inventory.SourceCargo,
				Installed: false, AvailableVersion: "10.2.0"},
			{Name: "ripgrep", Description: "recursive grep", Source: inventory.SourceCargo,
				Installed: true, InstalledVersion: "14.1.0", AvailableVersion: "14.1.1"},
		},
		Bundles: []inventory.Bundle{
			{Name: "rust-cli", Tools: []string{"bat", "ripgrep"}},
		},
	}
}

func newTestModel(t *testing.T) (Model, *fakeProvider) {
	t.Helper()
	p := &fakeProvider{snap: testSnapshot()}
	m := New(config.Defaults(), p, fakeRunner{}, nil)
	mm, _ := m.Update(snapshotMsg{snap: p.snap})
	return mm.(Model), p
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+z":
		return tea.KeyMsg{Type: tea.KeyCtrlZ}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		mm, _ := m.Update(keyMsg(k))
		m = mm.(Model)
	}
	return m
}

func pressCmd(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	mm, cmd := m.Update(keyMsg(k))
	return mm.(Model), cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, string(r))
	}
	return m
}

func visibleNames(m Model) []string {
	out := make([]string, len(m.items))
	for i, it := range m.items {
		out[i] = it.Tool.Name
	}
	return out
}

func TestModeTransitions(t *testing.T) {
	m, _ := newTestModel(t)
	if m.mode != modeNormal {
		t.Fatalf("initial mode = %v", m.mode)
	}

	m = press(t, m, "/")
	if m.mode != modeSearch {
		t.Fatalf("after /: mode = %v, want search", m.mode)
	}
	m = press(t, m, "esc")
	if m.mode != modeNormal {
		t.Fatalf("after esc: mode = %v, want normal", m.mode)
	}

	m = press(t, m, ":")
	if m.mode != modeCommand {
		t.Fatalf("after :: mode = %v, want command", m.mode)
	}
	m = press(t, m, "esc")
	if m.mode != modeNormal {
		t.Fatalf("after esc: mode = %v, want normal", m.mode)
	}

	m = press(t, m, "f")
	if m.mode != modeJump {
		t.Fatalf("after f: mode = %v, want jump", m.mode)
	}
	m = press(t, m, "r")
	if m.mode != modeNormal {
		t.Fatalf("jump always falls back to normal, got %v", m.mode)
	}
}

func TestSearchCommitFilters(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "/")
	m = typeText(t, m, "rg")
	// live filtering while typing
	if got := visibleNames(m); len(got) != 1 || got[0] != "ripgrep" {
		t.Fatalf("live filter = %v, want [ripgrep]", got)
	}
	m = press(t, m, "enter")
	if m.mode != modeNormal {
		t.Fatalf("enter should return to normal, got %v", m.mode)
	}
	if m.query != "rg" {
		t.Fatalf("committed query = %q, want rg", m.query)
	}
	if got := visibleNames(m); len(got) != 1 || got[0] != "ripgrep" {
		t.Fatalf("committed filter = %v, want [ripgrep]", got)
	}
}

func TestSearchEscRestoresPriorFilter(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "/")
	m = typeText(t, m, "bat")
	m = press(t, m, "enter")

	m = press(t, m, "/")
	m = typeText(t, m, "zzz")
	if len(visibleNames(m)) != 0 {
		t.Fatalf("live zzz should match nothing")
	}
	m = press(t, m, "esc")
	if m.query != "bat" {
		t.Fatalf("esc should restore previous filter, query = %q", m.query)
	}
	if got := visibleNames(m); len(got) != 1 || got[0] != "bat" {
		t.Fatalf("restored filter = %v, want [bat]", got)
	}
}

func TestMatchStepStatusAndWrap(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "/")
	m = typeText(t, m, "a")
	m = press(t, m, "enter")
	if got := visibleNames(m); len(got) != 2 {
		t.Fatalf("filter a = %v, want two matches", got)
	}

	m = press(t, m, "n")
	if m.cursor != 1 {
		t.Fatalf("n should step to next match, cursor = %d", m.cursor)
	}
	if m.status.text != "match 2/2" {
		t.Fatalf("status = %q, want match 2/2", m.status.text)
	}
	m = press(t, m, "n")
	if m.cursor != 0 || m.status.text != "match 1/2" {
		t.Fatalf("n should wrap, cursor = %d status = %q", m.cursor, m.status.text)
	}
	m = press(t, m, "N")
	if m.cursor != 1 || m.status.text != "match 2/2" {
		t.Fatalf("N should step back with wrap, cursor = %d status = %q", m.cursor, m.status.text)
	}
}

func TestFilterUndoRedo(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "/")
	m = typeText(t, m, "eza")
	m = press(t, m, "enter")

	m = press(t, m, "ctrl+z")
	if m.query != "" {
		t.Fatalf("undo should clear filter, got %q", m.query)
	}
	m = press(t, m, "ctrl+y")
	if m.query != "eza" {
		t.Fatalf("redo should restore filter, got %q", m.query)
	}
}

func TestTabSwitchingAndUndo(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "tab")
	if m.tab != inventory.TabAvailable {
		t.Fatalf("tab = %v, want Available", m.tab)
	}
	m = press(t, m, "3")
	if m.tab != inventory.TabUpdates {
		t.Fatalf("tab = %v, want Updates", m.tab)
	}
	m = press(t, m, "[")
	if m.tab != inventory.TabAvailable {
		t.Fatalf("tab = %v, want Available", m.tab)
	}
	m = press(t, m, "ctrl+z")
	if m.tab != inventory.TabUpdates {
		t.Fatalf("undo tab = %v, want Updates", m.tab)
	}
}

func TestSelectionToggleAdvanceAndUndo(t *testing.T) {
	m, _ := newTestModel(t)
	// installed tab order: bat, eza, ripgrep
	m = press(t, m, "space", "space")
	if got := m.sel.Names(); len(got) != 2 || got[0] != "bat" || got[1] != "eza" {
		t.Fatalf("selection = %v, want [bat eza]", got)
	}
	if m.cursor != 2 {
		t.Fatalf("cursor should advance to 2, got %d", m.cursor)
	}

	m = press(t, m, "ctrl+z")
	if got := m.sel.Names(); len(got) != 1 || got[0] != "bat" {
		t.Fatalf("after undo selection = %v, want [bat]", got)
	}
	m = press(t, m, "ctrl+z")
	if m.sel.Len() != 0 {
		t.Fatalf("after 2nd undo selection = %v, want empty", m.sel.Names())
	}
	m = press(t, m, "ctrl+y", "ctrl+y")
	if got := m.sel.Names(); len(got) != 2 {
		t.Fatalf("after redos selection = %v, want 2 entries", got)
	}
}

func TestSelectAllAndClear(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "ctrl+a")
	if m.sel.Len() != 3 {
		t.Fatalf("select-all on installed = %d, want 3", m.sel.Len())
	}
	m = press(t, m, "x")
	if m.sel.Len() != 0 {
		t.Fatalf("x should clear selection")
	}
	m = press(t, m, "ctrl+z")
	if m.sel.Len() != 3 {
		t.Fatalf("undo of clear should restore 3, got %d", m.sel.Len())
	}
}

func TestInstallConfirmAndCompletion(t *testing.T) {
	m, p := newTestModel(t)
	m = press(t, m, "2") // Available tab holds fd
	if got := visibleNames(m); len(got) != 1 || got[0] != "fd" {
		t.Fatalf("available tab = %v, want [fd]", got)
	}

	m = press(t, m, "i")
	if m.pending == nil || m.pending.kind != jobInstall {
		t.Fatalf("install should await confirmation")
	}

	m2, cmd := pressCmd(t, m, "y")
	m = m2
	if m.pending != nil {
		t.Fatalf("confirmation should clear pending")
	}
	if cmd == nil {
		t.Fatalf("confirmation should start the job")
	}
	if _, busy := m.busy["fd"]; !busy {
		t.Fatalf("fd should be marked busy")
	}

	mm, _ := m.Update(jobDoneMsg{
		kind:  jobInstall,
		name:  "fd",
		delta: inventory.Delta{Name: "fd", Installed: true, InstalledVersion: "10.2.0"},
	})
	m = mm.(Model)
	if _, busy := m.busy["fd"]; busy {
		t.Fatalf("completion should clear busy")
	}
	tool, _ := m.snap.Tool("fd")
	if !tool.Installed || tool.InstalledVersion != "10.2.0" {
		t.Fatalf("snapshot not folded: %+v", tool)
	}
	if len(p.muts) != 1 || p.muts[0].Kind != inventory.MutationInstall || p.muts[0].Tool != "fd" {
		t.Fatalf("mutation not persisted: %+v", p.muts)
	}
}

func TestConfirmDecline(t *testing.T) {
	m, p := newTestModel(t)
	m = press(t, m, "2", "i", "n")
	if m.pending != nil {
		t.Fatalf("n should cancel the pending action")
	}
	if len(m.busy) != 0 || len(p.muts) != 0 {
		t.Fatalf("declined action must not run")
	}
}

func TestBusyToolsAreSkipped(t *testing.T) {
	m, _ := newTestModel(t)
	m.busy["bat"] = func() {}

	targets := m.actionTargets(jobUpdate)
	for _, name := range targets {
		if name == "bat" {
			t.Fatalf("busy tool must not be targeted again")
		}
	}
}

func TestLateJobResultDiscarded(t *testing.T) {
	m, p := newTestModel(t)
	// fd was never started (or was cancelled): its result is dropped.
	mm, _ := m.Update(jobDoneMsg{
		kind:  jobInstall,
		name:  "fd",
		delta: inventory.Delta{Name: "fd", Installed: true, InstalledVersion: "10.2.0"},
	})
	m = mm.(Model)
	tool, _ := m.snap.Tool("fd")
	if tool.Installed {
		t.Fatalf("late result must not change the snapshot")
	}
	if len(p.muts) != 0 {
		t.Fatalf("late result must not persist anything")
	}
}

func TestPinnedToolSkippedOnUpdate(t *testing.T) {
	m, _ := newTestModel(t)
	pin := policy.Pinned
	m.snap.Tools[0].Policy = &pin // bat
	m.recompute()

	for _, name := range m.actionTargets(jobUpdate) {
		if name == "bat" {
			t.Fatalf("pinned tool must not be targeted by update")
		}
	}
}

func TestUpdatesTabContents(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "3")
	got := visibleNames(m)
	// bat (minor), eza (major under stable -> skip-major glyph), ripgrep (patch)
	want := []string{"bat", "eza", "ripgrep"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("updates tab = %v, want %v", got, want)
	}
}

func TestJumpToLetter(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "G") // bottom
	m = press(t, m, "f", "b")
	if m.cursor != 0 {
		t.Fatalf("jump b should land on bat at 0, got %d", m.cursor)
	}
	if m.mode != modeNormal {
		t.Fatalf("jump should return to normal")
	}
}

func TestUnknownCommand(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, ":")
	m = typeText(t, m, "bogus")
	m = press(t, m, "enter")
	if !m.status.isErr || !strings.Contains(m.status.text, "unknown command") {
		t.Fatalf("status = %+v, want unknown command error", m.status)
	}
	if m.mode != modeNormal {
		t.Fatalf("command mode should exit after enter")
	}
}

func TestCommandSortAndUndo(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, ":")
	m = typeText(t, m, "sort usage")
	m = press(t, m, "enter")
	if m.sortBy != inventory.SortUsage {
		t.Fatalf("sortBy = %v, want usage", m.sortBy)
	}
	m = press(t, m, "ctrl+z")
	if m.sortBy != inventory.SortName {
		t.Fatalf("undo should restore name sort, got %v", m.sortBy)
	}
}

func TestCommandPolicyClear(t *testing.T) {
	m, p := newTestModel(t)
	m = press(t, m, ":")
	m = typeText(t, m, "policy pinned")
	m = press(t, m, "enter")
	if len(p.muts) != 1 || p.muts[0].Kind != inventory.MutationSetPolicy {
		t.Fatalf("policy command should persist a mutation, got %+v", p.muts)
	}
	if p.muts[0].Policy == nil || *p.muts[0].Policy != policy.Pinned {
		t.Fatalf("mutation policy = %v, want pinned", p.muts[0].Policy)
	}
	tool, _ := m.snap.Tool("bat")
	if tool.Policy == nil || *tool.Policy != policy.Pinned {
		t.Fatalf("snapshot not updated: %+v", tool.Policy)
	}

	m = press(t, m, ":")
	m = typeText(t, m, "policy clear")
	m = press(t, m, "enter")
	tool, _ = m.snap.Tool("bat")
	if tool.Policy != nil {
		t.Fatalf("clear should drop the override")
	}
}

func TestCommandHistoryAndCompletion(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, ":")
	m = typeText(t, m, "sort usage")
	m = press(t, m, "enter")

	m = press(t, m, ":")
	m = press(t, m, "up")
	if got := m.commandInput.Value(); got != "sort usage" {
		t.Fatalf("history up = %q, want previous command", got)
	}
	m = press(t, m, "esc")

	m = press(t, m, ":")
	m = typeText(t, m, "ref")
	m = press(t, m, "tab")
	if got := m.commandInput.Value(); got != "refresh " {
		t.Fatalf("completion = %q, want %q", got, "refresh ")
	}
}

func TestSuggest(t *testing.T) {
	if s := suggest("und"); len(s) == 0 || s[0] != "undo" {
		t.Fatalf("suggest(und) = %v, want undo first", s)
	}
	if s := suggest("sort usage"); s != nil {
		t.Fatalf("no suggestions once args are typed, got %v", s)
	}
}

func TestStatusClearedOnNextKey(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "s") // sets a sort status line
	if m.status.text == "" {
		t.Fatalf("s should set a status line")
	}
	m = press(t, m, "j")
	if m.status.text != "" {
		t.Fatalf("status should clear on the next key, got %q", m.status.text)
	}
}

func TestCommandAliases(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "s") // name -> usage
	if m.sortBy != inventory.SortUsage {
		t.Fatalf("sortBy = %v", m.sortBy)
	}
	m = press(t, m, ":")
	m = typeText(t, m, "z")
	m = press(t, m, "enter")
	if m.sortBy != inventory.SortName {
		t.Fatalf(":z should undo, sortBy = %v", m.sortBy)
	}

	m = press(t, m, ":")
	m = typeText(t, m, "updates")
	m = press(t, m, "enter")
	if m.tab != inventory.TabUpdates {
		t.Fatalf(":updates should switch tab, got %v", m.tab)
	}
}

func TestThemeCommandRestylesAndPersists(t *testing.T) {
	defer tu.ConfigHome(t, t.TempDir())()
	m, _ := newTestModel(t)

	m = press(t, m, ":")
	m = typeText(t, m, "theme dracula")
	m = press(t, m, "enter")
	if m.theme.Name != "dracula" {
		t.Fatalf("theme = %q, want dracula", m.theme.Name)
	}
	want, _ := lookupTheme("dracula")
	if got := m.spin.Style.GetForeground(); got != want.Primary {
		t.Errorf("spinner color = %v, want %v", got, want.Primary)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "dracula" {
		t.Errorf("saved theme = %q, want dracula", cfg.Theme)
	}
}

func TestCyclePolicy(t *testing.T) {
	m, p := newTestModel(t)
	m = press(t, m, "p") // bat: effective stable -> pinned
	if len(p.muts) != 1 || p.muts[0].Kind != inventory.MutationSetPolicy {
		t.Fatalf("p should persist a set-policy mutation")
	}
	tool, _ := m.snap.Tool("bat")
	if tool.Policy == nil || *tool.Policy != policy.Pinned {
		t.Fatalf("policy = %v, want pinned", tool.Policy)
	}
}

func TestExternalChangeReloads(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(externalChangeMsg{})
	if cmd == nil {
		t.Fatalf("external change should trigger a reload command")
	}
}

func TestViewRenders(t *testing.T) {
	m, _ := newTestModel(t)
	m.width, m.height = 100, 30
	out := m.View()
	for _, want := range []string{"hoards", "Installed", "ripgrep"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}
