package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/mdoutline/internal/ui"
)

// FinderItem is one heading in the finder results.
type FinderItem struct {
	Title string // heading label
	Path  string // note path
	Line  int    // 0-based line of the heading
	Extra string // e.g. section number
}

// FinderResultMsg is sent when a finder item is selected.
type FinderResultMsg struct {
	Path string
	Line int
}

// FinderClosedMsg is sent when the finder is dismissed.
type FinderClosedMsg struct{}

// SearchFunc is called to get results for a query.
type SearchFunc func(query string) []FinderItem

// Finder is a vault-wide heading search overlay.
type Finder struct {
	input    textinput.Model
	items    []FinderItem
	cursor   int
	width    int
	height   int
	visible  bool
	searchFn SearchFunc
	styles   ui.Styles
}

func NewFinder(styles ui.Styles) Finder {
	ti := textinput.New()
	ti.Placeholder = "Search headings..."
	ti.CharLimit = 256
	ti.Width = 50

	return Finder{
		input:  ti,
		styles: styles,
	}
}

func (f *Finder) SetSearchFunc(fn SearchFunc) {
	f.searchFn = fn
}

func (f *Finder) Show() tea.Cmd {
	f.visible = true
	f.input.SetValue("")
	f.cursor = 0
	f.items = nil
	if f.searchFn != nil {
		f.items = f.searchFn("")
	}
	return f.input.Focus()
}

func (f *Finder) Hide() {
	f.visible = false
	f.input.Blur()
}

func (f Finder) Visible() bool {
	return f.visible
}

func (f Finder) Update(msg tea.Msg) (Finder, tea.Cmd) {
	if !f.visible {
		return f, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			f.Hide()
			return f, func() tea.Msg { return FinderClosedMsg{} }

		case "enter":
			if f.cursor < len(f.items) {
				item := f.items[f.cursor]
				f.Hide()
				return f, func() tea.Msg {
					return FinderResultMsg{Path: item.Path, Line: item.Line}
				}
			}
			return f, nil

		case "up", "ctrl+p", "ctrl+k":
			if f.cursor > 0 {
				f.cursor--
			}
			return f, nil

		case "down", "ctrl+n", "ctrl+j":
			if f.cursor < len(f.items)-1 {
				f.cursor++
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	prevValue := f.input.Value()
	f.input, cmd = f.input.Update(msg)

	// Re-search on input change
	if f.input.Value() != prevValue && f.searchFn != nil {
		f.items = f.searchFn(f.input.Value())
		f.cursor = 0
	}

	return f, cmd
}

func (f Finder) View() string {
	if !f.visible {
		return ""
	}

	s := f.styles

	width := f.width
	if width == 0 {
		width = 60
	}
	innerWidth := width - 6

	borderStyle := s.ActiveBorder.
		Padding(0, 1).
		Width(innerWidth)

	var lines []string
	lines = append(lines, s.TitleStyle.Render("Search Headings"))
	lines = append(lines, f.input.View())
	lines = append(lines, "")

	maxResults := f.height/2 - 4
	if maxResults < 5 {
		maxResults = 5
	}
	if maxResults > len(f.items) {
		maxResults = len(f.items)
	}

	if len(f.items) == 0 {
		if strings.TrimSpace(f.input.Value()) == "" {
			lines = append(lines, s.DimText.Render("Type to search every indexed heading"))
		} else {
			lines = append(lines, s.DimText.Render("No results"))
		}
	} else {
		for i := 0; i < maxResults; i++ {
			item := f.items[i]
			prefix := "  "
			style := s.NormalItem

			if i == f.cursor {
				prefix = "> "
				style = s.SelectedItem
			}

			line := prefix
			if item.Extra != "" {
				line += item.Extra + " "
			}
			line += item.Title
			loc := fmt.Sprintf(" %s:%d", item.Path, item.Line+1)
			line = truncate(line, innerWidth-lipgloss.Width(loc))

			lines = append(lines, style.Render(line)+s.DimText.Render(loc))
		}

		if len(f.items) > maxResults {
			lines = append(lines, s.DimText.Render(fmt.Sprintf("  ... and %d more", len(f.items)-maxResults)))
		}
	}

	content := strings.Join(lines, "\n")
	return borderStyle.Render(content)
}

func (f *Finder) SetSize(width, height int) {
	f.width = width
	f.height = height
	f.input.Width = width/2 - 8
}
