package session

// State represents persisted TUI state.
type State struct {
	ActiveNote  string         `json:"active_note,omitempty"`
	ShowNumbers bool           `json:"show_numbers"`
	ShowTree    bool           `json:"show_tree"`
	TreeWidth   int            `json:"tree_width,omitempty"`
	Cursors     map[string]int `json:"cursors,omitempty"` // note path -> selected header index
}

// Default returns the default session state.
func Default() State {
	return State{
		ShowNumbers: true,
		ShowTree:    true,
		TreeWidth:   30,
	}
}

// Cursor returns the remembered header index for a note.
func (s State) Cursor(note string) int {
	return s.Cursors[note]
}

// SetCursor remembers the selected header index of a note.
func (s *State) SetCursor(note string, index int) {
	if s.Cursors == nil {
		s.Cursors = make(map[string]int)
	}
	s.Cursors[note] = index
}
