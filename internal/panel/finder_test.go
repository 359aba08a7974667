package panel

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/mdoutline/internal/theme"
	"github.com/pfassina/mdoutline/internal/ui"
)

func TestFinder_SearchAndSelect(t *testing.T) {
	var queries []string
	f := NewFinder(ui.NewStyles(theme.DefaultTheme()))
	f.SetSize(80, 30)
	f.SetSearchFunc(func(q string) []FinderItem {
		queries = append(queries, q)
		if q == "" {
			return nil
		}
		return []FinderItem{
			{Title: "Install", Path: "a.md", Line: 3, Extra: "1.1"},
			{Title: "Install again", Path: "b.md", Line: 9, Extra: "2"},
		}
	})

	f.Show()
	if !f.Visible() {
		t.Fatal("finder should be visible")
	}

	f, _ = f.Update(keyRunes("i"))
	if len(queries) != 2 || queries[1] != "i" {
		t.Errorf("search calls = %q", queries)
	}
	if !strings.Contains(f.View(), "a.md:4") {
		t.Error("expected 1-based location in view")
	}

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyDown})
	f, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if f.Visible() {
		t.Error("finder should close after selection")
	}
	msg, ok := cmd().(FinderResultMsg)
	if !ok || msg.Path != "b.md" || msg.Line != 9 {
		t.Errorf("unexpected result: %+v", msg)
	}
}

func TestFinder_EscCloses(t *testing.T) {
	f := NewFinder(ui.NewStyles(theme.DefaultTheme()))
	f.Show()

	f, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if f.Visible() {
		t.Error("finder should be hidden")
	}
	if _, ok := cmd().(FinderClosedMsg); !ok {
		t.Error("expected FinderClosedMsg")
	}

	_, cmd = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("hidden finder should ignore keys")
	}
}
