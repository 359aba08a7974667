package panel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/mdoutline/internal/theme"
	"github.com/pfassina/mdoutline/internal/ui"
	"github.com/pfassina/mdoutline/internal/vault"
)

func TestTree_GKey_EmptyEntries(t *testing.T) {
	tr := Tree{
		focused: true,
		height:  20,
		width:   30,
	}

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}}
	result, _ := tr.Update(msg)

	if result.cursor != 0 {
		t.Errorf("cursor = %d after G on empty tree, want 0", result.cursor)
	}
}

func TestTree_Enter_EmptyEntries(t *testing.T) {
	tr := Tree{
		focused: true,
		height:  20,
		width:   30,
	}

	msg := tea.KeyMsg{Type: tea.KeyEnter}
	result, cmd := tr.Update(msg)

	if result.cursor != 0 {
		t.Errorf("cursor = %d after enter on empty tree, want 0", result.cursor)
	}
	if cmd != nil {
		t.Error("expected nil cmd for enter on empty tree")
	}
}

func TestTree_JKey_EmptyEntries(t *testing.T) {
	tr := Tree{
		focused: true,
		height:  20,
		width:   30,
	}

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	result, _ := tr.Update(msg)

	if result.cursor != 0 {
		t.Errorf("cursor = %d after j on empty tree, want 0", result.cursor)
	}
}

func TestTree_RefreshAndSelect(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"a.md", "b.md", "dir/c.md"} {
		path := filepath.Join(root, rel)
		os.MkdirAll(filepath.Dir(path), 0755)
		os.WriteFile(path, []byte("# x"), 0644)
	}

	tr := NewTree(vault.New(root), ui.NewStyles(theme.DefaultTheme()))
	tr.SetSize(30, 20)
	tr.SetFocused(true)
	if err := tr.Refresh(); err != nil {
		t.Fatal(err)
	}
	tr.SetCounts(map[string]int{"b.md": 7})

	tr.Select("b.md")
	_, cmd := tr.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if msg, ok := cmd().(FileSelectedMsg); !ok || msg.Path != "b.md" {
		t.Errorf("unexpected message: %+v", cmd())
	}

	if !strings.Contains(tr.View(), " 7") {
		t.Error("expected the heading count in the view")
	}

	// Collapsing the directory hides its notes.
	tr.Select("dir")
	tr, _ = tr.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if strings.Contains(tr.View(), "c.md") {
		t.Error("expected c.md to be hidden after collapsing dir")
	}
}
