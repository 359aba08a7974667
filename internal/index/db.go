package index

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/pfassina/mdoutline/internal/outline"
)

// ErrNoteNotFound is returned when a path has no row in the notes table.
var ErrNoteNotFound = errors.New("note not found")

const schema = `
CREATE TABLE IF NOT EXISTS notes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT '',
    mod_time INTEGER NOT NULL,
    size INTEGER NOT NULL DEFAULT 0,
    hash TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS headings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    note_id INTEGER NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
    level INTEGER NOT NULL,
    number TEXT NOT NULL,
    slug TEXT NOT NULL,
    html TEXT NOT NULL,
    text TEXT NOT NULL,
    line INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_headings_note ON headings(note_id, line);

CREATE VIRTUAL TABLE IF NOT EXISTS headings_fts USING fts5(
    text,
    tokenize='porter unicode61 remove_diacritics 2'
);
`

// Heading is an outline header as stored in the index. Text is the plain
// text of the rendered HTML and is what full-text search matches against.
type Heading struct {
	outline.Header
	Text string
}

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the database at the given path.
func Open(path string) (*DB, error) {
	return open(path + "?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
}

// OpenMemory opens an in-memory database (for testing).
func OpenMemory() (*DB, error) {
	return open(":memory:?_pragma=foreign_keys(on)")
}

func open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A second pooled connection to :memory: would see an empty database.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		return nil, errors.Join(fmt.Errorf("init schema: %w", err), conn.Close())
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, errors.Join(fmt.Errorf("migrate db: %w", err), conn.Close())
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Note is the stored metadata of an indexed note.
type Note struct {
	Path    string
	Title   string
	Status  string
	Tags    string
	Hash    string
	ModTime int64
	Size    int64
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// UpsertNote inserts or updates a note and returns its ID.
func (db *DB) UpsertNote(path, title, status, tags, hash string, modTime, size int64) (int64, error) {
	return upsertNote(db.conn, Note{Path: path, Title: title, Status: status, Tags: tags, Hash: hash, ModTime: modTime, Size: size})
}

func upsertNote(q execer, n Note) (int64, error) {
	_, err := q.Exec(`
		INSERT INTO notes (path, title, status, tags, mod_time, size, hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			status = excluded.status,
			tags = excluded.tags,
			mod_time = excluded.mod_time,
			size = excluded.size,
			hash = excluded.hash
	`, n.Path, n.Title, n.Status, n.Tags, n.ModTime, n.Size, n.Hash)
	if err != nil {
		return 0, err
	}

	var id int64
	err = q.QueryRow("SELECT id FROM notes WHERE path = ?", n.Path).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ReplaceHeadings swaps the stored outline of a note for headings, keeping
// the full-text index in step.
func (db *DB) ReplaceHeadings(noteID int64, headings []Heading) (err error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if err := replaceHeadings(tx, noteID, headings); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveNote writes a note and its outline in one transaction, so a stored
// hash always matches the stored headings.
func (db *DB) SaveNote(n Note, headings []Heading) (err error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	noteID, err := upsertNote(tx, n)
	if err != nil {
		return fmt.Errorf("upsert note: %w", err)
	}
	if err := replaceHeadings(tx, noteID, headings); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceHeadings(tx *sql.Tx, noteID int64, headings []Heading) error {
	if err := clearHeadings(tx, "note_id = ?", noteID); err != nil {
		return err
	}

	insert, err := tx.Prepare(`
		INSERT INTO headings (note_id, level, number, slug, html, text, line)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer func() { _ = insert.Close() }()

	for _, h := range headings {
		res, err := insert.Exec(noteID, h.Level, h.Number, h.Slug, h.HTML, h.Text, h.Lineno)
		if err != nil {
			return fmt.Errorf("insert heading %q: %w", h.Slug, err)
		}
		rowID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		if _, err := tx.Exec("INSERT INTO headings_fts(rowid, text) VALUES (?, ?)", rowID, h.Text); err != nil {
			return fmt.Errorf("index heading %q: %w", h.Slug, err)
		}
	}
	return nil
}

// GetNoteHash returns the stored hash for a note path.
func (db *DB) GetNoteHash(path string) (string, error) {
	var hash string
	err := db.conn.QueryRow("SELECT hash FROM notes WHERE path = ?", path).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return hash, err
}

// ClearHashes forgets every stored hash so the next pass re-indexes all notes.
func (db *DB) ClearHashes() error {
	_, err := db.conn.Exec("UPDATE notes SET hash = ''")
	return err
}

// DeleteNote removes a note and its headings.
func (db *DB) DeleteNote(path string) (err error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	if err := clearHeadings(tx, "note_id IN (SELECT id FROM notes WHERE path = ?)", path); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM notes WHERE path = ?", path); err != nil {
		return err
	}
	return tx.Commit()
}

// clearHeadings drops the headings matching where along with their FTS rows.
// The FTS table is standalone, so cascades do not reach it.
func clearHeadings(tx *sql.Tx, where string, arg any) error {
	if _, err := tx.Exec("DELETE FROM headings_fts WHERE rowid IN (SELECT id FROM headings WHERE "+where+")", arg); err != nil {
		return fmt.Errorf("clear heading index: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM headings WHERE "+where, arg); err != nil {
		return fmt.Errorf("clear headings: %w", err)
	}
	return nil
}

func (db *DB) migrate() error {
	// notes.tags (space separated frontmatter tags)
	hasTags, err := db.hasColumn("notes", "tags")
	if err != nil {
		return err
	}
	if !hasTags {
		if _, err := db.conn.Exec("ALTER TABLE notes ADD COLUMN tags TEXT NOT NULL DEFAULT ''"); err != nil {
			return fmt.Errorf("add notes.tags: %w", err)
		}
	}
	return nil
}

func (db *DB) hasColumn(table, col string) (bool, error) {
	rows, err := db.conn.Query("PRAGMA table_info(" + table + ")")
	if err != nil {
		return false, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == col {
			return true, nil
		}
	}
	return false, rows.Err()
}
