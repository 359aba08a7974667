package panel

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/mdoutline/internal/ui"
	"github.com/pfassina/mdoutline/internal/vault"
)

// FileSelectedMsg is sent when a file is selected in the tree.
type FileSelectedMsg struct {
	Path string
}

// Tree is the note tree panel.
type Tree struct {
	vault      *vault.Vault
	allEntries []vault.Entry
	entries    []vault.Entry
	collapsed  map[string]bool
	counts     map[string]int // note path -> indexed heading count
	cursor     int
	offset     int
	width      int
	height     int
	focused    bool
	showHelp   bool
	styles     ui.Styles
}

func NewTree(v *vault.Vault, styles ui.Styles) Tree {
	return Tree{
		vault:     v,
		collapsed: make(map[string]bool),
		styles:    styles,
	}
}

// Refresh re-reads the vault listing.
func (t *Tree) Refresh() error {
	entries, err := t.vault.ListEntries()
	t.allEntries = entries
	t.rebuildVisible()
	return err
}

// SetCounts sets the heading counts shown next to notes.
func (t *Tree) SetCounts(counts map[string]int) {
	t.counts = counts
}

// Select moves the cursor to path if it is visible.
func (t *Tree) Select(path string) {
	for i, e := range t.entries {
		if e.Path == path {
			t.moveTo(i)
			return
		}
	}
}

// rows is the number of entry rows below the title.
func (t Tree) rows() int {
	return max(t.height-2, 1)
}

// moveTo puts the cursor on entry i and scrolls it into view.
func (t *Tree) moveTo(i int) {
	t.cursor = min(max(i, 0), max(len(t.entries)-1, 0))
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor-t.offset >= t.rows() {
		t.offset = t.cursor - t.rows() + 1
	}
}

// rebuildVisible filters allEntries based on collapsed state.
func (t *Tree) rebuildVisible() {
	t.entries = nil
	for _, e := range t.allEntries {
		if t.isHiddenByCollapse(e.Path) {
			continue
		}
		t.entries = append(t.entries, e)
	}
	t.moveTo(t.cursor)
}

// isHiddenByCollapse checks if any ancestor directory of path is collapsed.
func (t *Tree) isHiddenByCollapse(path string) bool {
	dir := filepath.Dir(path)
	for dir != "." {
		if t.collapsed[dir] {
			return true
		}
		dir = filepath.Dir(dir)
	}
	return false
}

func (t Tree) Init() tea.Cmd {
	return nil
}

func (t Tree) Update(msg tea.Msg) (Tree, tea.Cmd) {
	if !t.focused {
		return t, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// When help is shown, any key dismisses it
		if t.showHelp {
			t.showHelp = false
			return t, nil
		}

		switch msg.String() {
		case "j", "down":
			t.moveTo(t.cursor + 1)
		case "k", "up":
			t.moveTo(t.cursor - 1)
		case "enter":
			if t.cursor < len(t.entries) {
				entry := t.entries[t.cursor]
				if entry.IsDir {
					t.collapsed[entry.Path] = !t.collapsed[entry.Path]
					t.rebuildVisible()
				} else {
					return t, func() tea.Msg {
						return FileSelectedMsg{Path: entry.Path}
					}
				}
			}
		case "G":
			t.moveTo(len(t.entries) - 1)
		case "g":
			t.moveTo(0)
		case "?":
			t.showHelp = !t.showHelp
		}
	}

	return t, nil
}

func (t Tree) View() string {
	if t.width == 0 || t.height == 0 {
		return ""
	}

	titleStyle := t.styles.SubtitleStyle.Bold(true).Padding(0, 1)
	if t.focused {
		titleStyle = t.styles.TitleStyle.Underline(true).Padding(0, 1)
	}

	var b strings.Builder

	// Title row with optional ? hint
	title := titleStyle.Render("Notes")
	if t.focused && !t.showHelp {
		hint := t.styles.DimText.Render("?")
		titleWidth := lipgloss.Width(title)
		hintWidth := lipgloss.Width(hint)
		gap := t.width - 2 - titleWidth - hintWidth
		if gap > 0 {
			b.WriteString(title)
			b.WriteString(strings.Repeat(" ", gap))
			b.WriteString(hint)
		} else {
			b.WriteString(title)
		}
	} else {
		b.WriteString(title)
	}
	b.WriteByte('\n')

	viewHeight := t.height - 2 // title + bottom padding
	if viewHeight < 0 {
		viewHeight = 0
	}

	// Reserve space for help if showing
	helpLines := 0
	if t.showHelp {
		helpLines = 6 // help box height
		viewHeight -= helpLines
		if viewHeight < 0 {
			viewHeight = 0
		}
	}

	for i := t.offset; i < len(t.entries) && i-t.offset < viewHeight; i++ {
		entry := t.entries[i]
		indent := strings.Repeat("  ", entry.Depth)
		icon := "  "
		if entry.IsDir {
			if t.collapsed[entry.Path] {
				icon = "▸ "
			} else {
				icon = "▾ "
			}
		}

		line := truncate(fmt.Sprintf("%s%s%s", indent, icon, entry.Name), t.width-2)

		count := ""
		if n, ok := t.counts[entry.Path]; ok && !entry.IsDir {
			count = fmt.Sprintf(" %d", n)
		}
		pad := t.width - 2 - lipgloss.Width(line) - lipgloss.Width(count)
		if pad < 0 {
			count = ""
			pad = t.width - 2 - lipgloss.Width(line)
		}
		if pad > 0 {
			line += strings.Repeat(" ", pad)
		}

		if i == t.cursor && t.focused {
			b.WriteString(t.styles.SelectedItem.Render(line))
		} else {
			b.WriteString(t.styles.NormalItem.Render(line))
		}
		b.WriteString(t.styles.DimText.Render(count))
		b.WriteByte('\n')
	}

	if t.showHelp {
		b.WriteString(t.renderHelp())
	}

	return b.String()
}

func (t Tree) renderHelp() string {
	dim := t.styles.DimText
	key := t.styles.SelectedItem
	border := t.styles.PanelBorder.
		Padding(0, 1).
		Width(t.width - 6)

	lines := []struct{ k, v string }{
		{"j/k", "Navigate"},
		{"enter", "Outline / Toggle dir"},
		{"g/G", "Top / Bottom"},
		{"?", "Toggle help"},
	}

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", key.Render(fmt.Sprintf("%-5s", l.k)), dim.Render(l.v)))
	}

	return border.Render(strings.TrimRight(sb.String(), "\n"))
}

func (t *Tree) SetSize(width, height int) {
	t.width = width
	t.height = height
}

func (t *Tree) SetFocused(focused bool) {
	t.focused = focused
}

func (t Tree) ShowingHelp() bool {
	return t.showHelp
}
