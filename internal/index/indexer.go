package index

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pfassina/mdoutline/internal/markdown"
	"github.com/pfassina/mdoutline/internal/outline"
	"github.com/pfassina/mdoutline/internal/vault"
)

// Indexer keeps the outline index in step with the vault.
type Indexer struct {
	db      *DB
	vault   *vault.Vault
	builder *outline.Builder
	logger  *log.Logger
}

func NewIndexer(db *DB, v *vault.Vault, builder *outline.Builder, logger *log.Logger) *Indexer {
	if logger == nil {
		logger = log.Default()
	}
	return &Indexer{
		db:      db,
		vault:   v,
		builder: builder,
		logger:  logger,
	}
}

// IndexAll indexes every note in the vault and drops notes that no longer
// exist. When force is set, unchanged notes are re-indexed too.
func (idx *Indexer) IndexAll(force bool) (int, error) {
	if force {
		if err := idx.db.ClearHashes(); err != nil {
			return 0, fmt.Errorf("clear hashes: %w", err)
		}
	}

	notes, err := idx.vault.ListNotes()
	if err != nil {
		return 0, fmt.Errorf("list notes: %w", err)
	}

	present := make(map[string]bool, len(notes))
	changed := 0
	for _, n := range notes {
		present[n.Path] = true
		ok, err := idx.IndexFile(filepath.Join(idx.vault.Root, n.Path))
		if err != nil {
			return changed, err
		}
		if ok {
			changed++
		}
	}

	stored, err := idx.db.ListNotes(-1)
	if err != nil {
		return changed, fmt.Errorf("list indexed notes: %w", err)
	}
	for _, n := range stored {
		if present[n.Path] {
			continue
		}
		if err := idx.db.DeleteNote(n.Path); err != nil {
			return changed, fmt.Errorf("delete stale note %s: %w", n.Path, err)
		}
		idx.logger.Debug("dropped stale note", "path", n.Path)
	}
	return changed, nil
}

// IndexFile indexes a single markdown file. It reports whether the note was
// (re)written, which is false when its content hash is unchanged.
func (idx *Indexer) IndexFile(absPath string) (bool, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", absPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", absPath, err)
	}

	relPath := idx.vault.Rel(absPath)

	hash := fmt.Sprintf("%x", sha256.Sum256(content))
	existingHash, _ := idx.db.GetNoteHash(relPath)
	if hash == existingHash {
		return false, nil
	}

	title := vault.TitleFromPath(relPath)
	status := ""
	var tags []string
	if fm := markdown.ExtractFrontmatter(content); fm != nil {
		if fm.Title != "" {
			title = fm.Title
		}
		status = fm.Status
		tags = fm.Tags
	}

	headers := idx.builder.Build(string(content))
	headings := make([]Heading, len(headers))
	for i, h := range headers {
		headings[i] = Heading{Header: h, Text: markdown.PlainText(h.HTML)}
	}

	note := Note{
		Path:    relPath,
		Title:   title,
		Status:  status,
		Tags:    strings.Join(tags, " "),
		Hash:    hash,
		ModTime: info.ModTime().Unix(),
		Size:    info.Size(),
	}
	if err := idx.db.SaveNote(note, headings); err != nil {
		return false, fmt.Errorf("save %s: %w", relPath, err)
	}

	idx.logger.Debug("indexed note", "path", relPath, "headings", len(headings))
	return true, nil
}

// RemoveFile removes a file from the index.
func (idx *Indexer) RemoveFile(absPath string) error {
	return idx.db.DeleteNote(idx.vault.Rel(absPath))
}
