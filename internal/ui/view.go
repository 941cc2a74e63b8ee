package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/search"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.loaded {
		return m.spin.View() + " loading inventory..."
	}

	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteString("\n")

	if m.tab == inventory.TabBundles {
		b.WriteString(m.viewBundles())
	} else {
		b.WriteString(m.viewItems())
	}
	b.WriteString("\n")
	b.WriteString(m.viewStatusBar())

	out := b.String()
	if overlay := m.viewOverlay(); overlay != "" {
		out = m.place(overlay)
	}
	return zone.Scan(out)
}

func (m Model) viewTabs() string {
	active := lipgloss.NewStyle().
		Foreground(m.theme.Primary).
		Bold(true).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Foreground(m.theme.Muted).
		Padding(0, 1)

	parts := make([]string, 0, len(inventory.Tabs())+1)
	title := lipgloss.NewStyle().Foreground(m.theme.Magenta).Bold(true).Padding(0, 1)
	parts = append(parts, title.Render("hoards"))
	for _, t := range inventory.Tabs() {
		label := fmt.Sprintf("%d %s", int(t)+1, t.Title())
		style := inactive
		if t == m.tab {
			style = active
		}
		parts = append(parts, zone.Mark("tab-"+t.Title(), style.Render(label)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewItems() string {
	if len(m.items) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Padding(1, 2).
			Render("no tools here")
	}

	nameW := 20
	for _, it := range m.items {
		if w := runewidth.StringWidth(it.Tool.Name); w+2 > nameW {
			nameW = w + 2
		}
	}

	cursorStyle := lipgloss.NewStyle().Foreground(m.theme.Text).Background(m.theme.BgSoft).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	mutedStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)
	glyphStyle := lipgloss.NewStyle().Foreground(m.theme.Yellow)

	var rows []string
	for i, it := range m.items {
		marker := "  "
		if m.sel.Has(it.Tool.Name) {
			marker = lipgloss.NewStyle().Foreground(m.theme.Cyan).Render("✓ ")
		}

		glyph := it.Decision.Glyph()
		if glyph == "" {
			glyph = " "
		}

		version := it.Tool.InstalledVersion
		if it.Tool.AvailableVersion != "" && it.Tool.AvailableVersion != it.Tool.InstalledVersion {
			version = fmt.Sprintf("%s → %s", orDash(it.Tool.InstalledVersion), it.Tool.AvailableVersion)
		}

		busy := " "
		if _, running := m.busy[it.Tool.Name]; running {
			busy = m.spin.View()
		}

		line := fmt.Sprintf("%s%s %s %-14s %-8s %s %s %s",
			marker,
			glyphStyle.Render(glyph),
			m.highlightName(it.Tool.Name, nameW),
			orDash(version),
			it.Policy.String(),
			mutedStyle.Render(fmt.Sprintf("%-7s", it.Tool.Source)),
			string(sparkRunes[it.Spark]),
			busy,
		)
		if m.width > 0 {
			line = ansi.Truncate(line, m.width, "…")
		}
		if i == m.cursor {
			rows = append(rows, cursorStyle.Render(line))
		} else {
			rows = append(rows, rowStyle.Render(line))
		}
	}
	return strings.Join(rows, "\n")
}

// highlightName renders a name padded to width, with the runes matched by
// the active filter emphasized.
func (m Model) highlightName(name string, width int) string {
	pad := width - runewidth.StringWidth(name)
	if pad < 0 {
		pad = 0
	}
	query := m.liveQuery()
	if query == "" {
		return name + strings.Repeat(" ", pad)
	}
	_, positions, ok := search.MatchPositions(query, name)
	if !ok {
		return name + strings.Repeat(" ", pad)
	}
	hit := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true)
	matched := make(map[int]bool, len(positions))
	for _, p := range positions {
		matched[p] = true
	}
	var b strings.Builder
	for i, r := range []rune(name) {
		if matched[i] {
			b.WriteString(hit.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteString(strings.Repeat(" ", pad))
	return b.String()
}

func (m Model) viewBundles() string {
	if len(m.bundles) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Padding(1, 2).
			Render("no bundles defined")
	}

	cursorStyle := lipgloss.NewStyle().Foreground(m.theme.Text).Background(m.theme.BgSoft).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	mutedStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var rows []string
	for i, b := range m.bundles {
		pol := ""
		if b.Bundle.Policy != nil {
			pol = b.Bundle.Policy.String()
		}
		line := fmt.Sprintf("  %s %s %s",
			runewidth.FillRight(b.Bundle.Name, 22),
			fmt.Sprintf("%d/%d installed", b.Installed, len(b.Bundle.Tools)),
			mutedStyle.Render(pol),
		)
		if m.width > 0 {
			line = ansi.Truncate(line, m.width, "…")
		}
		if i == m.cursor {
			rows = append(rows, cursorStyle.Render(line))
		} else {
			rows = append(rows, rowStyle.Render(line))
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) viewStatusBar() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	errStyle := lipgloss.NewStyle().Foreground(m.theme.Red)
	okStyle := lipgloss.NewStyle().Foreground(m.theme.Secondary)

	switch m.mode {
	case modeSearch:
		return m.searchInput.View()
	case modeCommand:
		line := m.commandInput.View()
		if s := suggest(m.commandInput.Value()); len(s) > 0 {
			line += muted.Render("  (" + strings.Join(capped(s, 5), " ") + ")")
		}
		return line
	case modeJump:
		return muted.Render("jump: press a letter")
	}

	var parts []string
	if m.query != "" {
		parts = append(parts, "filter:"+m.query)
	}
	if m.sourceFilter != "" {
		parts = append(parts, "source:"+m.sourceFilter)
	}
	if m.sortBy != inventory.SortName {
		parts = append(parts, "sort:"+m.sortBy.Label())
	}
	if n := m.sel.Len(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if n := len(m.busy); n > 0 {
		parts = append(parts, fmt.Sprintf("%s %d running", m.spin.View(), n))
		if m.batchTotal > 1 {
			parts = append(parts, m.prog.ViewAs(float64(m.batchDone)/float64(m.batchTotal)))
		}
	}
	left := muted.Render(strings.Join(parts, "  "))

	status := ""
	if m.status.text != "" {
		if m.status.isErr {
			status = errStyle.Render(m.status.text)
		} else {
			status = okStyle.Render(m.status.text)
		}
	}

	hint := muted.Render("?:help  /:search  ::cmd  q:quit")
	line := strings.TrimRight(strings.Join(nonEmpty(left, status, hint), "  "), " ")
	if m.width > 0 {
		line = ansi.Truncate(line, m.width, "…")
	}
	return line
}

func (m Model) viewOverlay() string {
	switch {
	case m.pending != nil:
		return m.boxStyle().Render(fmt.Sprintf("%s\n\n[y]es  [n]o", m.pending.description()))
	case m.showHelp:
		return m.boxStyle().Render(helpText)
	case m.showDetails:
		return m.viewDetails()
	}
	return ""
}

func (m Model) viewDetails() string {
	label := lipgloss.NewStyle().Foreground(m.theme.Muted).Width(10)
	var b strings.Builder
	write := func(k, v string) {
		if v != "" {
			b.WriteString(label.Render(k) + " " + v + "\n")
		}
	}
	if bi, ok := m.currentBundle(); ok {
		write("bundle", bi.Bundle.Name)
		write("about", bi.Bundle.Description)
		write("tools", strings.Join(bi.Bundle.Tools, ", "))
		if bi.Bundle.Policy != nil {
			write("policy", bi.Bundle.Policy.String())
		}
		return m.boxStyle().Render(strings.TrimRight(b.String(), "\n"))
	}
	it, ok := m.currentItem()
	if !ok {
		return ""
	}
	write("tool", it.Tool.Name)
	write("about", it.Tool.Description)
	write("category", it.Tool.Category)
	write("source", it.Tool.Source.String())
	write("installed", orDash(it.Tool.InstalledVersion))
	write("available", orDash(it.Tool.AvailableVersion))
	write("policy", fmt.Sprintf("%s (%s)", it.Policy, it.Prov.Label()))
	write("decision", it.Decision.String())
	if it.Tool.UseCount > 0 {
		write("used", fmt.Sprintf("%d times", it.Tool.UseCount))
	}
	return m.boxStyle().Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) boxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Background(m.theme.Bg).
		Padding(1, 2)
}

func (m Model) place(overlay string) string {
	w, h := m.width, m.height
	if w <= 0 {
		w = lipgloss.Width(overlay)
	}
	if h <= 0 {
		h = lipgloss.Height(overlay)
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, overlay)
}

const helpText = `j/k move   g/G top/bottom   ctrl+d/u page
tab ] [ 1-4 switch tab      s cycle sort
/ search   n/N next match   f jump to letter
: command  esc clear filter
space select  ctrl+a all  x none
i install  D uninstall  u update  p cycle policy
r refresh  enter details
ctrl+z undo  ctrl+y redo   q quit`

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func capped(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
