package index

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pfassina/mdoutline/internal/outline"
	"github.com/pfassina/mdoutline/internal/vault"
)

func newTestIndexer(t *testing.T) (*Indexer, *DB, string) {
	t.Helper()
	root := t.TempDir()
	db := openTestDB(t)
	idx := NewIndexer(db, vault.New(root), outline.New(outline.Options{SkipFrontmatter: true}), nil)
	return idx, db, root
}

func write(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIndexFile(t *testing.T) {
	idx, db, root := newTestIndexer(t)
	path := write(t, root, "notes/plan.md", "---\ntitle: The Plan\n# not a header\n---\n# ==Goals==\n## Steps\n")

	changed, err := idx.IndexFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("expected first index to report a change")
	}

	headings, err := db.Outline(filepath.Join("notes", "plan.md"))
	if err != nil {
		t.Fatal(err)
	}
	if len(headings) != 2 {
		t.Fatalf("expected 2 headings, got %+v", headings)
	}
	if headings[0].Lineno != 4 || headings[0].Text != "Goals" || headings[0].HTML != "<mark>Goals</mark>" {
		t.Errorf("unexpected first heading: %+v", headings[0])
	}
	if headings[1].Number != "1.1" {
		t.Errorf("number: got %q, want %q", headings[1].Number, "1.1")
	}

	notes, err := db.ListNotes(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 || notes[0].Title != "The Plan" {
		t.Errorf("expected frontmatter title, got %+v", notes)
	}

	changed, err = idx.IndexFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("expected unchanged file to be skipped")
	}
}

func TestIndexAllDropsStaleNotes(t *testing.T) {
	idx, db, root := newTestIndexer(t)
	write(t, root, "a.md", "# A")
	gone := write(t, root, "b.md", "# B")

	n, err := idx.IndexAll(false)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("changed: got %d, want 2", n)
	}

	if err := os.Remove(gone); err != nil {
		t.Fatal(err)
	}
	n, err = idx.IndexAll(false)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("changed on second pass: got %d, want 0", n)
	}

	notes, err := db.ListNotes(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 || notes[0].Path != "a.md" {
		t.Errorf("expected only a.md to remain, got %+v", notes)
	}

	n, err = idx.IndexAll(true)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("forced pass: got %d, want 1", n)
	}
}

func TestWatcherReindexes(t *testing.T) {
	idx, db, root := newTestIndexer(t)
	path := write(t, root, "live.md", "# Before")
	if _, err := idx.IndexAll(false); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 4)
	w, err := NewWatcher(idx, root, func(p string) { changed <- p }, func(err error) { t.Errorf("watch error: %v", err) })
	if err != nil {
		t.Fatal(err)
	}
	go w.Start()
	defer w.Stop()

	write(t, root, "live.md", "# After\n## Child")

	select {
	case p := <-changed:
		if p != path {
			t.Errorf("changed path: got %q, want %q", p, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for re-index")
	}

	headings, err := db.Outline("live.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(headings) != 2 || headings[0].Text != "After" {
		t.Errorf("unexpected outline after change: %+v", headings)
	}
}

func TestIndexFileKeepsHashWhenHeadingsFail(t *testing.T) {
	idx, db, root := newTestIndexer(t)
	path := write(t, root, "a.md", "# Old")
	if _, err := idx.IndexFile(path); err != nil {
		t.Fatal(err)
	}
	oldHash, _ := db.GetNoteHash("a.md")

	if _, err := db.conn.Exec(`CREATE TRIGGER reject_heading BEFORE INSERT ON headings
		WHEN NEW.slug = 'broken' BEGIN SELECT RAISE(ABORT, 'rejected'); END`); err != nil {
		t.Fatal(err)
	}
	write(t, root, "a.md", "# Broken")
	if _, err := idx.IndexFile(path); err == nil {
		t.Fatal("expected the heading insert to fail")
	}

	if hash, _ := db.GetNoteHash("a.md"); hash != oldHash {
		t.Errorf("hash changed to %q after a failed write, want %q", hash, oldHash)
	}
	headings, err := db.Outline("a.md")
	if err != nil {
		t.Fatal(err)
	}
	if len(headings) != 1 || headings[0].Text != "Old" {
		t.Errorf("expected the old outline to survive, got %+v", headings)
	}

	if _, err := db.conn.Exec("DROP TRIGGER reject_heading"); err != nil {
		t.Fatal(err)
	}
	changed, err := idx.IndexFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("expected the note to be re-indexed once writes succeed")
	}
}

// syncBuffer is a log sink that is safe to read while the watcher writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatcherSkipsBadNotes(t *testing.T) {
	root := t.TempDir()
	logs := &syncBuffer{}
	idx := NewIndexer(openTestDB(t), vault.New(root), outline.New(outline.Options{}), log.New(logs))

	changed := make(chan string, 4)
	w, err := NewWatcher(idx, root, func(p string) { changed <- p }, func(err error) { t.Errorf("watch error: %v", err) })
	if err != nil {
		t.Fatal(err)
	}
	go w.Start()
	defer w.Stop()

	// A directory named like a note is watched, not indexed.
	if err := os.Mkdir(filepath.Join(root, "chapter.md"), 0755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * DebounceDelay)
	nested := write(t, root, "chapter.md/one.md", "# One")

	select {
	case p := <-changed:
		if p != nested {
			t.Errorf("changed path: got %q, want %q", p, nested)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the nested note")
	}

	// An unreadable note is logged and skipped.
	locked := write(t, root, "locked.md", "# Locked")
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := os.ReadFile(locked); err == nil {
		t.Skip("file permissions are not enforced for this user")
	}
	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(logs.String(), "locked.md") {
		if time.Now().After(deadline) {
			t.Fatalf("expected a log line for the unreadable note, got %q", logs.String())
		}
		time.Sleep(20 * time.Millisecond)
	}
}
