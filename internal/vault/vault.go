package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// StateDirName is the per-vault directory holding the index, session state
// and SSH host key. It is hidden, so listings never descend into it.
const StateDirName = ".mdoutline"

// Entry represents a file or directory in the vault.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
	Depth int
}

// Vault is a directory of markdown notes.
type Vault struct {
	Root string
}

func New(root string) *Vault {
	return &Vault{Root: root}
}

// IsNote reports whether name looks like a markdown note.
func IsNote(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".markdown"
}

// ListEntries returns a flat list of the vault's directories and notes,
// directories first, then by path. Hidden entries are skipped.
func (v *Vault) ListEntries() ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(v.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are left out
		}

		rel, _ := filepath.Rel(v.Root, path)
		if rel == "." {
			return nil
		}

		name := d.Name()
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && !IsNote(name) {
			return nil
		}

		entries = append(entries, Entry{
			Name:  name,
			Path:  rel,
			IsDir: d.IsDir(),
			Depth: strings.Count(rel, string(filepath.Separator)),
		})
		return nil
	})

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return entries[i].Path < entries[j].Path
	})

	return entries, err
}

// ListNotes returns only the notes of the vault, sorted by path.
func (v *Vault) ListNotes() ([]Entry, error) {
	all, err := v.ListEntries()
	if err != nil {
		return nil, err
	}

	var notes []Entry
	for _, e := range all {
		if !e.IsDir {
			notes = append(notes, e)
		}
	}
	return notes, nil
}

// Abs resolves a vault-relative path. Paths escaping the root are rejected.
func (v *Vault) Abs(rel string) (string, error) {
	abs := filepath.Join(v.Root, rel)
	back, err := filepath.Rel(v.Root, abs)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside the vault", rel)
	}
	return abs, nil
}

// Rel returns abs relative to the vault root, or abs itself when it lies
// elsewhere.
func (v *Vault) Rel(abs string) string {
	rel, err := filepath.Rel(v.Root, abs)
	if err != nil {
		return abs
	}
	return rel
}

// Read returns the content of a note.
func (v *Vault) Read(rel string) ([]byte, error) {
	abs, err := v.Abs(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read note: %w", err)
	}
	return data, nil
}

// StateDir returns the vault's state directory, creating it if needed.
func (v *Vault) StateDir() (string, error) {
	dir := filepath.Join(v.Root, StateDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create state dir: %w", err)
	}
	return dir, nil
}

// TitleFromPath derives a display title from a note's file name.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return name
}
