package panel

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/pfassina/mdoutline/internal/outline"
	"github.com/pfassina/mdoutline/internal/ui"
)

// HeadingSelectedMsg is sent when a header is chosen in the outline.
type HeadingSelectedMsg struct {
	Path   string
	Header outline.Header
}

// NumbersToggledMsg is sent when section numbers are switched on or off.
type NumbersToggledMsg struct {
	Show bool
}

// labelSource feeds header labels to the fuzzy matcher.
type labelSource []string

func (s labelSource) String(i int) string { return s[i] }
func (s labelSource) Len() int            { return len(s) }

// Outline is the table of contents panel for one note.
type Outline struct {
	path        string
	headers     []outline.Header
	labels      []string
	visible     []int         // indexes into headers, in document order
	matched     map[int][]int // header index -> matched byte offsets of its label
	cursor      int
	offset      int
	width       int
	height      int
	focused     bool
	filtering   bool
	filter      textinput.Model
	showNumbers bool
	styles      ui.Styles
}

func NewOutline(styles ui.Styles, showNumbers bool) Outline {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter headings"
	ti.CharLimit = 128

	return Outline{
		filter:      ti,
		showNumbers: showNumbers,
		styles:      styles,
	}
}

// SetHeaders replaces the displayed outline. The filter is kept and
// re-applied, and the cursor stays on the same header index when possible.
func (o *Outline) SetHeaders(path string, headers []outline.Header) {
	if path != o.path {
		o.cursor = 0
		o.offset = 0
	}
	o.path = path
	o.headers = headers
	o.labels = make([]string, len(headers))
	for i, h := range headers {
		o.labels[i] = ui.Label(h)
	}
	o.applyFilter()
}

// Path returns the note whose outline is shown.
func (o Outline) Path() string { return o.path }

// Len returns the number of headers currently listed.
func (o Outline) Len() int { return len(o.visible) }

// Selected returns the header under the cursor.
func (o Outline) Selected() (outline.Header, bool) {
	if o.cursor < 0 || o.cursor >= len(o.visible) {
		return outline.Header{}, false
	}
	return o.headers[o.visible[o.cursor]], true
}

// Cursor returns the cursor position in the listed headers.
func (o Outline) Cursor() int { return o.cursor }

// SetCursor moves the cursor, clamped to the listed headers.
func (o *Outline) SetCursor(i int) {
	o.cursor = i
	o.clamp()
}

// Filtering reports whether the filter input has focus.
func (o Outline) Filtering() bool { return o.filtering }

// FilterValue returns the current filter query.
func (o Outline) FilterValue() string { return o.filter.Value() }

func (o *Outline) applyFilter() {
	query := strings.TrimSpace(o.filter.Value())
	o.visible = nil
	o.matched = nil

	if query == "" {
		for i := range o.headers {
			o.visible = append(o.visible, i)
		}
		o.clamp()
		return
	}

	matches := fuzzy.FindFrom(query, labelSource(o.labels))
	o.matched = make(map[int][]int, len(matches))
	for _, m := range matches {
		o.visible = append(o.visible, m.Index)
		o.matched[m.Index] = m.MatchedIndexes
	}
	sort.Ints(o.visible)
	o.clamp()
}

func (o *Outline) clamp() {
	if o.cursor >= len(o.visible) {
		o.cursor = len(o.visible) - 1
	}
	if o.cursor < 0 {
		o.cursor = 0
	}
	if o.offset > o.cursor {
		o.offset = o.cursor
	}
	if rows := o.rows(); rows > 0 && o.cursor-o.offset >= rows {
		o.offset = o.cursor - rows + 1
	}
}

// rows is the number of header lines that fit in the panel.
func (o Outline) rows() int {
	rows := o.height - 2 // title + filter line
	if rows < 0 {
		return 0
	}
	return rows
}

func (o Outline) Init() tea.Cmd {
	return nil
}

func (o Outline) Update(msg tea.Msg) (Outline, tea.Cmd) {
	if !o.focused {
		return o, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if o.filtering {
			var cmd tea.Cmd
			o.filter, cmd = o.filter.Update(msg)
			return o, cmd
		}
		return o, nil
	}

	if o.filtering {
		return o.updateFilter(key)
	}

	switch key.String() {
	case "j", "down":
		o.cursor++
		o.clamp()
	case "k", "up":
		o.cursor--
		o.clamp()
	case "g", "home":
		o.cursor = 0
		o.clamp()
	case "G", "end":
		o.cursor = len(o.visible) - 1
		o.clamp()
	case "/":
		o.filtering = true
		return o, o.filter.Focus()
	case "esc":
		if o.filter.Value() != "" {
			o.filter.SetValue("")
			o.applyFilter()
		}
	case "n":
		o.showNumbers = !o.showNumbers
		show := o.showNumbers
		return o, func() tea.Msg { return NumbersToggledMsg{Show: show} }
	case "enter":
		return o, o.selectCmd()
	}
	return o, nil
}

func (o Outline) updateFilter(key tea.KeyMsg) (Outline, tea.Cmd) {
	switch key.String() {
	case "esc":
		o.filtering = false
		o.filter.Blur()
		o.filter.SetValue("")
		o.applyFilter()
		return o, nil
	case "enter":
		o.filtering = false
		o.filter.Blur()
		return o, o.selectCmd()
	case "down", "ctrl+n", "ctrl+j":
		o.cursor++
		o.clamp()
		return o, nil
	case "up", "ctrl+p", "ctrl+k":
		o.cursor--
		o.clamp()
		return o, nil
	}

	var cmd tea.Cmd
	o.filter, cmd = o.filter.Update(key)
	o.applyFilter()
	return o, cmd
}

func (o Outline) selectCmd() tea.Cmd {
	h, ok := o.Selected()
	if !ok {
		return nil
	}
	path := o.path
	return func() tea.Msg {
		return HeadingSelectedMsg{Path: path, Header: h}
	}
}

func (o Outline) View() string {
	if o.width == 0 || o.height == 0 {
		return ""
	}

	s := o.styles
	var b strings.Builder

	title := "Outline"
	if o.path != "" {
		title = o.path
	}
	titleStyle := s.SubtitleStyle.Bold(true).Padding(0, 1)
	if o.focused {
		titleStyle = s.TitleStyle.Underline(true).Padding(0, 1)
	}
	b.WriteString(titleStyle.Render(truncate(title, o.width-4)))
	b.WriteByte('\n')

	if o.filtering || o.filter.Value() != "" {
		b.WriteString(o.filter.View())
	} else if len(o.headers) == 0 {
		b.WriteString(s.DimText.Render(" no headings"))
	} else {
		b.WriteString(s.DimText.Render(fmt.Sprintf(" %d headings", len(o.headers))))
	}
	b.WriteByte('\n')

	rows := o.rows()
	for i := o.offset; i < len(o.visible) && i-o.offset < rows; i++ {
		idx := o.visible[i]
		h := o.headers[idx]

		var line strings.Builder
		line.WriteString(ui.Indent(h.Level))
		if o.showNumbers {
			line.WriteString(s.NumberStyle.Render(h.Number))
			line.WriteByte(' ')
		}

		itemStyle := s.NormalItem
		if h.Level == 1 {
			itemStyle = s.HeadingItem
		}
		if i == o.cursor && o.focused {
			itemStyle = s.SelectedItem
		}
		line.WriteString(o.renderLabel(idx, itemStyle))

		b.WriteString(truncateStyled(line.String(), o.width-2))
		b.WriteByte('\n')
	}

	return b.String()
}

// renderLabel styles a label, marking the runes hit by the fuzzy filter.
func (o Outline) renderLabel(idx int, base lipgloss.Style) string {
	label := o.labels[idx]
	hits := o.matched[idx]
	if len(hits) == 0 {
		return base.Render(label)
	}

	hit := make(map[int]bool, len(hits))
	for _, h := range hits {
		hit[h] = true
	}
	match := base.Inherit(o.styles.MatchStyle)

	var b strings.Builder
	for i, r := range label {
		if hit[i] {
			b.WriteString(match.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

func (o *Outline) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.filter.Width = width - 6
	o.clamp()
}

func (o *Outline) SetFocused(focused bool) {
	o.focused = focused
	if !focused && o.filtering {
		o.filtering = false
		o.filter.Blur()
	}
}

func (o *Outline) SetShowNumbers(show bool) {
	o.showNumbers = show
}

func (o Outline) ShowNumbers() bool {
	return o.showNumbers
}

// truncate cuts plain text to width cells.
func truncate(s string, width int) string {
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// truncateStyled cuts a rendered line to width cells.
func truncateStyled(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
