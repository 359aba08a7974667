package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/mdoutline/internal/outline"
)

// fatalErrorMsg is sent to the Bubble Tea program when a background subsystem
// encounters an unrecoverable error. The app should quit and show the error.
type fatalErrorMsg struct{ err error }

func fatalCmd(err error) tea.Cmd {
	return tea.Batch(tea.Printf("fatal: %v\n", err), tea.Quit)
}

// indexDoneMsg signals that the initial indexing pass finished.
type indexDoneMsg struct {
	changed int
	err     error
}

// noteChangedMsg is sent by the watcher after a note was re-indexed or removed.
type noteChangedMsg struct{ path string }

// outlineLoadedMsg carries the headers of a note.
type outlineLoadedMsg struct {
	path    string
	headers []outline.Header
	err     error
}

// countsLoadedMsg carries the heading count of every indexed note.
type countsLoadedMsg struct{ counts map[string]int }

// jumpedMsg reports the result of moving the editor to a header.
type jumpedMsg struct {
	path   string
	lineno int
	err    error
}

// pollMsg triggers a periodic refresh from the index.
type pollMsg struct{}
