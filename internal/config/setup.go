package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/mdoutline/internal/vault"
)

// SetupResult is returned by RunSetup.
type SetupResult struct {
	VaultPath string
	Notes     int
	Cancelled bool
}

type setupModel struct {
	input textinput.Model
	err   string
	notes int
	quit  bool
}

func newSetupModel(initial string) setupModel {
	ti := textinput.New()
	ti.Placeholder = "~/notes"
	ti.CharLimit = 256
	ti.Width = 50
	ti.SetValue(initial)
	ti.Focus()

	return setupModel{input: ti}
}

func (m setupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			n, err := validateVaultPath(ExpandHome(m.value()))
			if err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.notes = n
			return m, tea.Quit

		case "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}
	}

	m.err = ""
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m setupModel) value() string {
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		return v
	}
	return "~/notes"
}

func (m setupModel) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("212")).
		Render("mdoutline setup")

	var s strings.Builder
	s.WriteString("\n " + title + "\n\n")
	s.WriteString(" Which directory holds your markdown notes?\n\n")
	s.WriteString("   " + m.input.View() + "\n\n")

	if m.err != "" {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		s.WriteString(" " + errStyle.Render(m.err) + "\n\n")
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	s.WriteString(" " + dim.Render("Press Enter to confirm, Esc to cancel") + "\n")

	return s.String()
}

// validateVaultPath checks that path is an existing directory and returns
// how many notes it holds.
func validateVaultPath(path string) (int, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return 0, fmt.Errorf("%s does not exist", path)
	}
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s exists but is not a directory", path)
	}

	notes, err := vault.New(path).ListNotes()
	if err != nil {
		return 0, fmt.Errorf("list notes: %w", err)
	}
	return len(notes), nil
}

// RunSetup runs the first-run TUI prompt, saves the chosen vault path and
// returns it.
func RunSetup(initial string) (SetupResult, error) {
	p := tea.NewProgram(newSetupModel(initial))
	final, err := p.Run()
	if err != nil {
		return SetupResult{}, err
	}

	fm, ok := final.(setupModel)
	if !ok {
		return SetupResult{}, fmt.Errorf("unexpected model type from setup wizard")
	}
	if fm.quit {
		return SetupResult{Cancelled: true}, nil
	}

	expanded := ExpandHome(fm.value())
	if err := SaveFile(expanded); err != nil {
		return SetupResult{}, fmt.Errorf("saving config: %w", err)
	}

	return SetupResult{VaultPath: expanded, Notes: fm.notes}, nil
}
