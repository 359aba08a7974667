package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissing(t *testing.T) {
	s := NewStore(t.TempDir())

	state, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !state.ShowNumbers || state.TreeWidth != 30 {
		t.Errorf("expected defaults, got %+v", state)
	}
}

func TestSaveLoad(t *testing.T) {
	vaultPath := t.TempDir()
	s := NewStore(vaultPath)

	want := Default()
	want.ActiveNote = "projects/plan.md"
	want.ShowNumbers = false
	want.SetCursor("projects/plan.md", 3)

	if s.Exists() {
		t.Error("Exists before the first save")
	}
	if err := s.Save(want); err != nil {
		t.Fatal(err)
	}
	if !s.Exists() {
		t.Error("Exists = false after save")
	}
	if _, err := os.Stat(filepath.Join(vaultPath, ".mdoutline", "state.json")); err != nil {
		t.Fatalf("state file not written: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.ActiveNote != want.ActiveNote || got.ShowNumbers || got.Cursor("projects/plan.md") != 3 {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
	if got.Cursor("other.md") != 0 {
		t.Errorf("unknown note cursor = %d, want 0", got.Cursor("other.md"))
	}
}

func TestLoadCorrupt(t *testing.T) {
	vaultPath := t.TempDir()
	dir := filepath.Join(vaultPath, ".mdoutline")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "state.json"), []byte("{not json"), 0644)

	state, err := NewStore(vaultPath).Load()
	if err == nil {
		t.Error("expected a decode error")
	}
	if !state.ShowNumbers {
		t.Errorf("expected defaults on error, got %+v", state)
	}
}
