package panel

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/mdoutline/internal/outline"
	"github.com/pfassina/mdoutline/internal/theme"
	"github.com/pfassina/mdoutline/internal/ui"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testOutline(t *testing.T) Outline {
	t.Helper()
	o := NewOutline(ui.NewStyles(theme.DefaultTheme()), true)
	o.SetSize(40, 20)
	o.SetFocused(true)
	o.SetHeaders("note.md", outline.Headers("# Intro\n## Setup\n## Usage\n### Flags\n# Appendix"))
	return o
}

func selected(t *testing.T, o Outline) string {
	t.Helper()
	h, ok := o.Selected()
	if !ok {
		t.Fatal("nothing selected")
	}
	return ui.Label(h)
}

func TestOutline_Navigation(t *testing.T) {
	o := testOutline(t)

	o, _ = o.Update(keyRunes("j"))
	o, _ = o.Update(keyRunes("j"))
	if got := selected(t, o); got != "Usage" {
		t.Errorf("after jj: %q, want Usage", got)
	}

	o, _ = o.Update(keyRunes("G"))
	if got := selected(t, o); got != "Appendix" {
		t.Errorf("after G: %q, want Appendix", got)
	}
	o, _ = o.Update(keyRunes("j"))
	if o.Cursor() != 4 {
		t.Errorf("cursor moved past the end: %d", o.Cursor())
	}

	o, _ = o.Update(keyRunes("g"))
	o, _ = o.Update(keyRunes("k"))
	if o.Cursor() != 0 {
		t.Errorf("cursor moved before the start: %d", o.Cursor())
	}
}

func TestOutline_EnterSelects(t *testing.T) {
	o := testOutline(t)
	o, _ = o.Update(keyRunes("j"))

	_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(HeadingSelectedMsg)
	if !ok {
		t.Fatalf("unexpected message %T", cmd())
	}
	if msg.Path != "note.md" || msg.Header.Lineno != 1 || msg.Header.Number != "1.1" {
		t.Errorf("unexpected selection: %+v", msg)
	}
}

func TestOutline_Filter(t *testing.T) {
	o := testOutline(t)

	o, _ = o.Update(keyRunes("/"))
	if !o.Filtering() {
		t.Fatal("expected filter mode")
	}
	for _, r := range "flg" {
		o, _ = o.Update(keyRunes(string(r)))
	}
	if o.Len() != 1 {
		t.Fatalf("filtered len = %d, want 1", o.Len())
	}
	if got := selected(t, o); got != "Flags" {
		t.Errorf("filtered selection %q, want Flags", got)
	}

	o, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if o.Filtering() {
		t.Error("enter should leave filter mode")
	}
	if msg, ok := cmd().(HeadingSelectedMsg); !ok || msg.Header.Lineno != 3 {
		t.Errorf("unexpected selection after filter: %+v", msg)
	}
	if o.FilterValue() != "flg" {
		t.Errorf("filter should persist, got %q", o.FilterValue())
	}

	o, _ = o.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if o.Len() != 5 {
		t.Errorf("esc should clear the filter, len = %d", o.Len())
	}
}

func TestOutline_FilterKeepsDocumentOrder(t *testing.T) {
	o := testOutline(t)
	o, _ = o.Update(keyRunes("/"))
	o, _ = o.Update(keyRunes("p"))

	var got []int
	for i := 0; i < o.Len(); i++ {
		o.SetCursor(i)
		h, _ := o.Selected()
		got = append(got, h.Lineno)
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("filtered headers out of order: %v", got)
		}
	}
}

func TestOutline_ToggleNumbers(t *testing.T) {
	o := testOutline(t)

	if !strings.Contains(o.View(), "1.2") {
		t.Error("expected section numbers in view")
	}

	o, cmd := o.Update(keyRunes("n"))
	if msg, ok := cmd().(NumbersToggledMsg); !ok || msg.Show {
		t.Errorf("unexpected toggle message: %+v", msg)
	}
	if strings.Contains(o.View(), "1.2") {
		t.Error("expected numbers to be hidden")
	}
}

func TestOutline_Empty(t *testing.T) {
	o := NewOutline(ui.NewStyles(theme.DefaultTheme()), true)
	o.SetSize(40, 10)
	o.SetFocused(true)
	o.SetHeaders("empty.md", nil)

	for _, k := range []string{"j", "G", "k"} {
		o, _ = o.Update(keyRunes(k))
	}
	_, cmd := o.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected nil cmd for enter on an empty outline")
	}
	if !strings.Contains(o.View(), "no headings") {
		t.Error("expected empty hint")
	}
}

func TestOutline_SameNoteKeepsCursor(t *testing.T) {
	o := testOutline(t)
	o.SetCursor(2)

	o.SetHeaders("note.md", outline.Headers("# Intro\n## Setup\n## Usage changed"))
	if o.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", o.Cursor())
	}

	o.SetHeaders("other.md", outline.Headers("# A\n# B\n# C"))
	if o.Cursor() != 0 {
		t.Errorf("cursor = %d after switching notes, want 0", o.Cursor())
	}
}
