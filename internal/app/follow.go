package app

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfassina/mdoutline/internal/config"
	"github.com/pfassina/mdoutline/internal/outline"
	"github.com/pfassina/mdoutline/internal/panel"
	"github.com/pfassina/mdoutline/internal/theme"
	"github.com/pfassina/mdoutline/internal/ui"
)

// BufferSource provides the buffer currently being edited.
type BufferSource interface {
	BufferName() (string, error)
	BufferText() (string, error)
}

// bufferChangedMsg is sent when the followed buffer may have changed.
type bufferChangedMsg struct{}

type bufferLoadedMsg struct {
	name    string
	headers []outline.Header
	err     error
}

// Follower shows the outline of an editor's current buffer and keeps it
// in sync as the buffer is edited.
type Follower struct {
	src     BufferSource
	jumper  Jumper
	builder *outline.Builder
	outline panel.Outline
	status  panel.Status
	program *tea.Program
	width   int
	height  int
}

func NewFollower(cfg config.Config, src BufferSource, jumper Jumper, th theme.Theme) *Follower {
	styles := ui.NewStyles(th)
	f := &Follower{
		src:     src,
		jumper:  jumper,
		builder: outline.New(outline.Options{SkipFrontmatter: cfg.SkipFrontmatter}),
		outline: panel.NewOutline(styles, cfg.ShowNumbers),
		status:  panel.NewStatus("nvim", th),
	}
	f.outline.SetFocused(true)
	f.status.SetMode("OUTLINE")
	return f
}

// SetProgram lets Notify deliver messages to the running program.
func (f *Follower) SetProgram(p *tea.Program) {
	f.program = p
}

// Notify schedules a reload of the buffer outline. It is safe to call from
// any goroutine.
func (f *Follower) Notify() {
	if f.program != nil {
		f.program.Send(bufferChangedMsg{})
	}
}

func (f *Follower) Init() tea.Cmd {
	return f.load()
}

func (f *Follower) load() tea.Cmd {
	src, builder := f.src, f.builder
	return func() tea.Msg {
		name, err := src.BufferName()
		if err != nil {
			return bufferLoadedMsg{err: err}
		}
		text, err := src.BufferText()
		if err != nil {
			return bufferLoadedMsg{name: name, err: err}
		}
		return bufferLoadedMsg{name: name, headers: builder.Build(text)}
	}
}

func (f *Follower) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return f, tea.Quit
		case "q":
			if !f.outline.Filtering() {
				return f, tea.Quit
			}
		}
		var cmd tea.Cmd
		f.outline, cmd = f.outline.Update(msg)
		if f.outline.Filtering() {
			f.status.SetMode("FILTER")
		} else {
			f.status.SetMode("OUTLINE")
		}
		return f, cmd

	case tea.WindowSizeMsg:
		f.width = msg.Width
		f.height = msg.Height
		f.outline.SetSize(msg.Width, msg.Height-1)
		f.status.SetWidth(msg.Width)
		return f, nil

	case bufferChangedMsg:
		return f, f.load()

	case bufferLoadedMsg:
		if msg.err != nil {
			f.status.SetError(fmt.Sprintf("read buffer: %v", msg.err))
			return f, nil
		}
		f.status.ClearError()
		f.status.SetFile(filepath.Base(msg.name))
		f.outline.SetHeaders(msg.name, msg.headers)
		return f, nil

	case panel.HeadingSelectedMsg:
		jumper := f.jumper
		path, lineno := msg.Path, msg.Header.Lineno
		return f, func() tea.Msg {
			if jumper == nil {
				return jumpedMsg{path: path, lineno: lineno}
			}
			return jumpedMsg{path: path, lineno: lineno, err: jumper.Jump(path, lineno)}
		}

	case jumpedMsg:
		if msg.err != nil {
			f.status.SetError(fmt.Sprintf("jump: %v", msg.err))
			return f, nil
		}
		f.status.SetMessage(jumpTarget(filepath.Base(msg.path), msg.lineno))
		return f, nil
	}

	var cmd tea.Cmd
	f.outline, cmd = f.outline.Update(msg)
	return f, cmd
}

func (f *Follower) View() string {
	if f.width == 0 || f.height == 0 {
		return "Loading..."
	}
	body := lipgloss.NewStyle().
		Width(f.width).
		Height(f.height - 1).
		Render(f.outline.View())
	return body + "\n" + f.status.View()
}
