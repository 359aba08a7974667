package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color palette used by all TUI panels.
type Theme struct {
	Name     string
	Bg       lipgloss.Color
	Accent   lipgloss.Color // selection and titles
	Heading  lipgloss.Color // top-level outline entries
	Number   lipgloss.Color // section numbers
	Match    lipgloss.Color // fuzzy filter hits
	Subtle   lipgloss.Color
	Text     lipgloss.Color
	Dim      lipgloss.Color
	Border   lipgloss.Color
	StatusBg lipgloss.Color
	StatusFg lipgloss.Color
	Error    lipgloss.Color
}

var palettes = map[string]Theme{
	"catppuccin": {
		Name:     "catppuccin",
		Bg:       lipgloss.Color("#1e1e2e"),
		Accent:   lipgloss.Color("#cba6f7"),
		Heading:  lipgloss.Color("#89b4fa"),
		Number:   lipgloss.Color("#fab387"),
		Match:    lipgloss.Color("#a6e3a1"),
		Subtle:   lipgloss.Color("#6c7086"),
		Text:     lipgloss.Color("#cdd6f4"),
		Dim:      lipgloss.Color("#585b70"),
		Border:   lipgloss.Color("#45475a"),
		StatusBg: lipgloss.Color("#313244"),
		StatusFg: lipgloss.Color("#cdd6f4"),
		Error:    lipgloss.Color("#f38ba8"),
	},
	"nord": {
		Name:     "nord",
		Bg:       lipgloss.Color("#2e3440"),
		Accent:   lipgloss.Color("#88c0d0"),
		Heading:  lipgloss.Color("#81a1c1"),
		Number:   lipgloss.Color("#d08770"),
		Match:    lipgloss.Color("#a3be8c"),
		Subtle:   lipgloss.Color("#4c566a"),
		Text:     lipgloss.Color("#eceff4"),
		Dim:      lipgloss.Color("#434c5e"),
		Border:   lipgloss.Color("#3b4252"),
		StatusBg: lipgloss.Color("#3b4252"),
		StatusFg: lipgloss.Color("#eceff4"),
		Error:    lipgloss.Color("#bf616a"),
	},
	"gruvbox": {
		Name:     "gruvbox",
		Bg:       lipgloss.Color("#282828"),
		Accent:   lipgloss.Color("#d79921"),
		Heading:  lipgloss.Color("#83a598"),
		Number:   lipgloss.Color("#fe8019"),
		Match:    lipgloss.Color("#b8bb26"),
		Subtle:   lipgloss.Color("#665c54"),
		Text:     lipgloss.Color("#ebdbb2"),
		Dim:      lipgloss.Color("#504945"),
		Border:   lipgloss.Color("#3c3836"),
		StatusBg: lipgloss.Color("#3c3836"),
		StatusFg: lipgloss.Color("#ebdbb2"),
		Error:    lipgloss.Color("#fb4934"),
	},
	"tokyo-night": {
		Name:     "tokyo-night",
		Bg:       lipgloss.Color("#1a1b26"),
		Accent:   lipgloss.Color("#7aa2f7"),
		Heading:  lipgloss.Color("#bb9af7"),
		Number:   lipgloss.Color("#ff9e64"),
		Match:    lipgloss.Color("#9ece6a"),
		Subtle:   lipgloss.Color("#565f89"),
		Text:     lipgloss.Color("#c0caf5"),
		Dim:      lipgloss.Color("#414868"),
		Border:   lipgloss.Color("#292e42"),
		StatusBg: lipgloss.Color("#1f2335"),
		StatusFg: lipgloss.Color("#c0caf5"),
		Error:    lipgloss.Color("#f7768e"),
	},
}

// DefaultTheme returns the default color palette (catppuccin-inspired).
func DefaultTheme() Theme {
	return palettes["catppuccin"]
}

// Named returns a palette by name, defaulting to catppuccin.
func Named(name string) Theme {
	if t, ok := palettes[name]; ok {
		return t
	}
	return DefaultTheme()
}

// Names lists the built-in palettes.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
