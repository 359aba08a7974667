package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfassina/mdoutline/internal/index"
	"github.com/pfassina/mdoutline/internal/panel"
)

const searchLimit = 50

// initIndex runs an indexing pass in a goroutine.
func (a *App) initIndex(force bool) tea.Cmd {
	indexer := a.indexer
	return func() tea.Msg {
		n, err := indexer.IndexAll(force)
		return indexDoneMsg{changed: n, err: err}
	}
}

// loadOutline reads the outline of a note from the index, falling back to
// building it from the file when the note is not indexed.
func (a *App) loadOutline(path string) tea.Cmd {
	db, v, builder := a.db, a.vault, a.builder
	return func() tea.Msg {
		if db != nil {
			headings, err := db.Outline(path)
			if err == nil {
				return outlineLoadedMsg{path: path, headers: index.Headers(headings)}
			}
			if !errors.Is(err, index.ErrNoteNotFound) {
				return outlineLoadedMsg{path: path, err: err}
			}
		}
		content, err := v.Read(path)
		if err != nil {
			return outlineLoadedMsg{path: path, err: err}
		}
		return outlineLoadedMsg{path: path, headers: builder.Build(string(content))}
	}
}

// loadCounts reads the heading count of every indexed note.
func (a *App) loadCounts() tea.Cmd {
	db := a.db
	if db == nil {
		return nil
	}
	return func() tea.Msg {
		notes, err := db.ListNotes(-1)
		if err != nil {
			return countsLoadedMsg{}
		}
		counts := make(map[string]int, len(notes))
		for _, n := range notes {
			counts[n.Path] = n.Headings
		}
		return countsLoadedMsg{counts: counts}
	}
}

// jump moves the editor to the header at lineno of a note.
func (a *App) jump(path string, lineno int) tea.Cmd {
	jumper, v := a.jumper, a.vault
	return func() tea.Msg {
		if jumper == nil {
			return jumpedMsg{path: path, lineno: lineno}
		}
		abs, err := v.Abs(path)
		if err == nil {
			err = jumper.Jump(abs, lineno)
		}
		return jumpedMsg{path: path, lineno: lineno, err: err}
	}
}

func (a *App) poll() tea.Cmd {
	return tea.Tick(a.pollEvery, func(time.Time) tea.Msg { return pollMsg{} })
}

// searchHeadings returns finder items for a query.
func (a *App) searchHeadings(query string) []panel.FinderItem {
	if a.db == nil || strings.TrimSpace(query) == "" {
		return nil
	}

	results, err := a.db.SearchHeadings(prefixQuery(query), searchLimit)
	if err != nil {
		a.logger.Debug("heading search failed", "query", query, "err", err)
		return nil
	}

	items := make([]panel.FinderItem, len(results))
	for i, r := range results {
		items[i] = panel.FinderItem{
			Title: r.Heading.Text,
			Path:  r.NotePath,
			Line:  r.Heading.Lineno,
			Extra: r.Heading.Number,
		}
	}
	return items
}

func jumpTarget(path string, lineno int) string {
	return fmt.Sprintf("%s:%d", path, lineno+1)
}

// prefixQuery turns typed words into an FTS5 query matching headings that
// contain every word as a prefix.
func prefixQuery(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		words[i] = `"` + strings.ReplaceAll(w, `"`, `""`) + `"*`
	}
	return strings.Join(words, " ")
}
