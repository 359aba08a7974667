package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/mdoutline/internal/theme"
)

// Status is the status bar at the bottom.
type Status struct {
	width    int
	mode     string
	file     string
	vaultDir string
	message  string
	errMsg   string
	theme    theme.Theme
}

func NewStatus(vaultDir string, th theme.Theme) Status {
	return Status{
		vaultDir: vaultDir,
		mode:     "NOTES",
		theme:    th,
	}
}

func (s *Status) SetMode(mode string) {
	s.mode = mode
}

func (s *Status) SetFile(file string) {
	s.file = file
}

func (s *Status) SetWidth(width int) {
	s.width = width
}

// SetMessage shows a transient note on the right, such as a jump target.
func (s *Status) SetMessage(msg string) {
	s.message = msg
}

func (s *Status) SetError(msg string) {
	s.errMsg = msg
}

func (s *Status) ClearError() {
	s.errMsg = ""
}

func (s Status) View() string {
	if s.width == 0 {
		return ""
	}

	th := s.theme
	bgStyle := lipgloss.NewStyle().Background(th.StatusBg)

	modeColors := map[string]lipgloss.Color{
		"NOTES":   th.Accent,
		"OUTLINE": th.Heading,
		"FILTER":  th.Match,
		"SEARCH":  th.Number,
	}

	color, ok := modeColors[s.mode]
	if !ok {
		color = th.Text
	}

	modeStyle := lipgloss.NewStyle().
		Background(color).
		Foreground(th.Bg).
		Bold(true).
		Padding(0, 1)

	textStyle := lipgloss.NewStyle().
		Background(th.StatusBg).
		Foreground(th.StatusFg).
		Padding(0, 1)

	mode := modeStyle.Render(s.mode)

	var fileSection string
	if s.errMsg != "" {
		errStyle := textStyle.Foreground(th.Error)
		fileSection = errStyle.Render(s.errMsg)
	} else {
		file := s.file
		if file == "" {
			file = s.vaultDir
		}
		fileSection = textStyle.Render(file)
	}

	left := fmt.Sprintf("%s %s", mode, fileSection)

	right := ""
	if s.message != "" {
		right = textStyle.Render(s.message)
	}

	padLen := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padLen < 0 {
		padLen = 0
	}
	padding := bgStyle.Render(strings.Repeat(" ", padLen))

	return left + padding + right
}
