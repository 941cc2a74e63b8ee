package ui

import "github.com/charmbracelet/lipgloss"

// designTheme centralizes the TUI color palette. The default palette is
// based on Vitesse Dark Soft:
// https://github.com/antfu/vscode-theme-vitesse/blob/main/themes/vitesse-dark-soft.json
type designTheme struct {
	Name string

	// Core brand/semantic colors
	Primary lipgloss.Color
	Blue    lipgloss.Color
	Yellow  lipgloss.Color
	Magenta lipgloss.Color
	Cyan    lipgloss.Color
	Red     lipgloss.Color

	// Text colors
	Text      lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color

	// Surfaces
	Bg     lipgloss.Color
	BgSoft lipgloss.Color
	Border lipgloss.Color
}

var themes = []designTheme{
	{
		Name:    "vitesse",
		Primary: lipgloss.Color("#4d9375"),
		Blue:    lipgloss.Color("#6394bf"),
		Yellow:  lipgloss.Color("#e6cc77"),
		Magenta: lipgloss.Color("#d9739f"),
		Cyan:    lipgloss.Color("#5eaab5"),
		Red:     lipgloss.Color("#cb7676"),

		Text:      lipgloss.Color("#dbd7caee"),
		Secondary: lipgloss.Color("#bfbaaa"),
		Muted:     lipgloss.Color("#dedcd590"),

		Bg:     lipgloss.Color("#181818"),
		BgSoft: lipgloss.Color("#292929"),
		Border: lipgloss.Color("#252525"),
	},
	{
		Name:    "dracula",
		Primary: lipgloss.Color("#bd93f9"),
		Blue:    lipgloss.Color("#8be9fd"),
		Yellow:  lipgloss.Color("#f1fa8c"),
		Magenta: lipgloss.Color("#ff79c6"),
		Cyan:    lipgloss.Color("#8be9fd"),
		Red:     lipgloss.Color("#ff5555"),

		Text:      lipgloss.Color("#f8f8f2"),
		Secondary: lipgloss.Color("#bfbfbf"),
		Muted:     lipgloss.Color("#6272a4"),

		Bg:     lipgloss.Color("#282a36"),
		BgSoft: lipgloss.Color("#343746"),
		Border: lipgloss.Color("#44475a"),
	},
	{
		Name:    "nord",
		Primary: lipgloss.Color("#88c0d0"),
		Blue:    lipgloss.Color("#81a1c1"),
		Yellow:  lipgloss.Color("#ebcb8b"),
		Magenta: lipgloss.Color("#b48ead"),
		Cyan:    lipgloss.Color("#8fbcbb"),
		Red:     lipgloss.Color("#bf616a"),

		Text:      lipgloss.Color("#eceff4"),
		Secondary: lipgloss.Color("#d8dee9"),
		Muted:     lipgloss.Color("#4c566a"),

		Bg:     lipgloss.Color("#2e3440"),
		BgSoft: lipgloss.Color("#3b4252"),
		Border: lipgloss.Color("#434c5e"),
	},
}

// lookupTheme reports whether a theme with the given name exists.
func lookupTheme(name string) (designTheme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return designTheme{}, false
}

// themeByName returns the named theme, defaulting to the first entry.
func themeByName(name string) designTheme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// nextTheme cycles through the palette list.
func nextTheme(current string) designTheme {
	for i, t := range themes {
		if t.Name == current {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

func themeNames() []string {
	out := make([]string, len(themes))
	for i, t := range themes {
		out[i] = t.Name
	}
	return out
}
