package theme

import "github.com/charmbracelet/lipgloss"

const (
	fgAttr = 0
	bgAttr = 1
)

// slot binds a Theme color to the Neovim highlight groups it is taken from,
// in order of preference.
type slot struct {
	color  func(*Theme) *lipgloss.Color
	attr   int
	groups []string
}

var slots = []slot{
	{func(t *Theme) *lipgloss.Color { return &t.Bg }, bgAttr, []string{"Normal"}},
	{func(t *Theme) *lipgloss.Color { return &t.Text }, fgAttr, []string{"Normal"}},
	{func(t *Theme) *lipgloss.Color { return &t.Accent }, fgAttr, []string{"Function", "Keyword"}},
	{func(t *Theme) *lipgloss.Color { return &t.Heading }, fgAttr, []string{"Title", "Statement"}},
	{func(t *Theme) *lipgloss.Color { return &t.Number }, fgAttr, []string{"Number", "Constant"}},
	{func(t *Theme) *lipgloss.Color { return &t.Match }, fgAttr, []string{"String", "Search"}},
	{func(t *Theme) *lipgloss.Color { return &t.Subtle }, fgAttr, []string{"Comment"}},
	{func(t *Theme) *lipgloss.Color { return &t.Dim }, fgAttr, []string{"NonText", "LineNr"}},
	{func(t *Theme) *lipgloss.Color { return &t.Border }, fgAttr, []string{"WinSeparator"}},
	{func(t *Theme) *lipgloss.Color { return &t.StatusBg }, bgAttr, []string{"StatusLine"}},
	{func(t *Theme) *lipgloss.Color { return &t.StatusFg }, fgAttr, []string{"StatusLine"}},
	{func(t *Theme) *lipgloss.Color { return &t.Error }, fgAttr, []string{"DiagnosticError", "ErrorMsg"}},
}

// Groups lists the highlight groups FromExtracted reads.
func Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, s := range slots {
		for _, g := range s.groups {
			if !seen[g] {
				seen[g] = true
				groups = append(groups, g)
			}
		}
	}
	return groups
}

// FromExtracted maps Neovim highlight group colors onto base. colors maps
// group names to [fg, bg] hex strings; an empty string means the group does
// not set that attribute. Colors without a source group keep the base value.
func FromExtracted(colors map[string][2]string, base Theme) Theme {
	t := base
	for _, s := range slots {
		for _, g := range s.groups {
			pair, ok := colors[g]
			if !ok || !isSet(pair[s.attr]) {
				continue
			}
			*s.color(&t) = lipgloss.Color(pair[s.attr])
			break
		}
	}
	t.Name = "nvim"
	return t
}

// isSet reports whether c is an explicit color. Neovim reports 0 for
// attributes inherited from Normal, which converts to "#000000".
func isSet(c string) bool {
	return c != "" && c != "#000000"
}
