package index

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pfassina/mdoutline/internal/vault"
)

// DebounceDelay is how long a path must stay quiet before it is re-indexed.
const DebounceDelay = 200 * time.Millisecond

// Watcher monitors the vault for file changes and triggers re-indexing.
type Watcher struct {
	indexer  *Indexer
	watcher  *fsnotify.Watcher
	root     string
	debounce map[string]*time.Timer
	mu       sync.Mutex
	closed   bool
	onChange func(path string) // called after a note was re-indexed or removed
	onError  func(error) // called when the watcher itself fails
}

// NewWatcher watches root and its non-hidden subdirectories. onChange and
// onError may be nil.
func NewWatcher(indexer *Indexer, root string, onChange func(path string), onError func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		indexer:  indexer,
		watcher:  fw,
		root:     root,
		debounce: make(map[string]*time.Timer),
		onChange: onChange,
		onError:  onError,
	}

	if err := w.addTree(root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != w.root {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Start begins watching for changes. Blocks until Stop is called.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(fmt.Errorf("watch: %w", err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	// New directories get watched too, including ones named like notes.
	if event.Has(fsnotify.Create) {
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			if !strings.HasPrefix(info.Name(), ".") {
				if err := w.addTree(path); err != nil {
					w.indexer.logger.Warn("watch directory", "path", path, "err", err)
				}
			}
			return
		}
	}
	if !vault.IsNote(path) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(DebounceDelay, func() {
		w.mu.Lock()
		delete(w.debounce, path)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}

		w.sync(path)
	})
}

// sync re-indexes path, or drops it when it is gone. The file's current
// state wins over the event type, since editors often save by rename.
// A note that cannot be read is logged and skipped.
func (w *Watcher) sync(path string) {
	changed := true
	var err error
	info, statErr := os.Stat(path)
	switch {
	case os.IsNotExist(statErr):
		err = w.indexer.RemoveFile(path)
	case statErr == nil && info.IsDir():
		return
	default:
		changed, err = w.indexer.IndexFile(path)
	}
	if err != nil {
		w.indexer.logger.Warn("skip note", "path", path, "err", err)
		return
	}
	if changed && w.onChange != nil {
		w.onChange(path)
	}
}

func (w *Watcher) report(err error) {
	w.mu.Lock()
	onError := w.onError
	w.mu.Unlock()

	if onError != nil {
		onError(err)
	}
}

// Stop stops the watcher and cancels pending re-indexes.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for path, timer := range w.debounce {
		timer.Stop()
		delete(w.debounce, path)
	}
	w.mu.Unlock()

	return w.watcher.Close()
}
