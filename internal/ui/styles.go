package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/mdoutline/internal/theme"
)

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	PanelBorder   lipgloss.Style
	ActiveBorder  lipgloss.Style
	StatusBar     lipgloss.Style
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	SelectedItem  lipgloss.Style
	NormalItem    lipgloss.Style
	HeadingItem   lipgloss.Style
	NumberStyle   lipgloss.Style
	MatchStyle    lipgloss.Style
	DimText       lipgloss.Style
	ErrorText     lipgloss.Style
}

func NewStyles(t theme.Theme) Styles {
	return Styles{
		PanelBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),
		ActiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent),
		StatusBar: lipgloss.NewStyle().
			Background(t.StatusBg).
			Foreground(t.StatusFg).
			Padding(0, 1),
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		SubtitleStyle: lipgloss.NewStyle().
			Foreground(t.Subtle),
		SelectedItem: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		NormalItem: lipgloss.NewStyle().
			Foreground(t.Text),
		HeadingItem: lipgloss.NewStyle().
			Foreground(t.Heading).
			Bold(true),
		NumberStyle: lipgloss.NewStyle().
			Foreground(t.Number),
		MatchStyle: lipgloss.NewStyle().
			Foreground(t.Match).
			Underline(true),
		DimText: lipgloss.NewStyle().
			Foreground(t.Dim),
		ErrorText: lipgloss.NewStyle().
			Foreground(t.Error),
	}
}
