package index

import (
	"database/sql"
	"errors"

	"github.com/pfassina/mdoutline/internal/outline"
)

// NoteResult is a row of the notes table.
type NoteResult struct {
	ID       int64
	Path     string
	Title    string
	Status   string
	Headings int
}

// HeadingResult is a heading matched by a full-text search.
type HeadingResult struct {
	NotePath  string
	NoteTitle string
	Heading
	Rank float64
}

// Outline returns the stored headings of a note in document order.
func (db *DB) Outline(path string) ([]Heading, error) {
	var noteID int64
	err := db.conn.QueryRow("SELECT id FROM notes WHERE path = ?", path).Scan(&noteID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.Query(`
		SELECT level, number, slug, html, text, line
		FROM headings
		WHERE note_id = ?
		ORDER BY line
	`, noteID)
	if err != nil {
		return nil, err
	}

	var results []Heading
	for rows.Next() {
		var h Heading
		if err := rows.Scan(&h.Level, &h.Number, &h.Slug, &h.HTML, &h.Text, &h.Lineno); err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, h)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// SearchHeadings performs a full-text search over heading text across all
// notes. query uses FTS5 syntax.
func (db *DB) SearchHeadings(query string, limit int) ([]HeadingResult, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.Query(`
		SELECT n.path, n.title, h.level, h.number, h.slug, h.html, h.text, h.line, headings_fts.rank
		FROM headings_fts
		JOIN headings h ON h.id = headings_fts.rowid
		JOIN notes n ON n.id = h.note_id
		WHERE headings_fts MATCH ?
		ORDER BY headings_fts.rank, n.path, h.line
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, err
	}

	var results []HeadingResult
	for rows.Next() {
		var r HeadingResult
		if err := rows.Scan(&r.NotePath, &r.NoteTitle, &r.Level, &r.Number, &r.Slug, &r.HTML, &r.Text, &r.Lineno, &r.Rank); err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// ListNotes returns notes with their heading counts, sorted by path. A limit
// of zero or less returns every note.
func (db *DB) ListNotes(limit int) ([]NoteResult, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := db.conn.Query(`
		SELECT n.id, n.path, n.title, n.status, COUNT(h.id)
		FROM notes n
		LEFT JOIN headings h ON h.note_id = n.id
		GROUP BY n.id
		ORDER BY n.path
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}

	var results []NoteResult
	for rows.Next() {
		var r NoteResult
		if err := rows.Scan(&r.ID, &r.Path, &r.Title, &r.Status, &r.Headings); err != nil {
			_ = rows.Close()
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	return results, nil
}

// Headers strips the index-only fields from stored headings.
func Headers(headings []Heading) []outline.Header {
	out := make([]outline.Header, len(headings))
	for i, h := range headings {
		out[i] = h.Header
	}
	return out
}
