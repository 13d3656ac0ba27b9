package main

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long a file must be quiet before a change is
// reported. Editors often write a file several times in quick
// succession; one restart per save is enough.
const settleDelay = 150 * time.Millisecond

// scenarioWatcher tracks edits to the scenario's definition and script
// files. It accumulates change notifications into a pending set that
// the game loop polls once per frame with Changed, so the reload stays
// on the tick thread and bursts of writes coalesce into one restart.
type scenarioWatcher struct {
	fs *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]time.Time
	lastErr error
}

func watchScenarioDir(dirs ...string) (*scenarioWatcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &scenarioWatcher{fs: fs, pending: map[string]time.Time{}}
	go w.collect()
	return w, nil
}

func (w *scenarioWatcher) Close() error {
	return w.fs.Close()
}

func (w *scenarioWatcher) collect() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !watchedFile(event.Name) {
				continue
			}
			w.mu.Lock()
			w.pending[event.Name] = time.Now()
			w.mu.Unlock()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.lastErr = err
			w.mu.Unlock()
		}
	}
}

// Changed returns the files whose last notification has settled, and
// forgets them. Files still being written stay pending for a later poll.
func (w *scenarioWatcher) Changed() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	cutoff := time.Now().Add(-settleDelay)
	var settled []string
	for name, at := range w.pending {
		if at.Before(cutoff) {
			settled = append(settled, name)
			delete(w.pending, name)
		}
	}
	return settled
}

// Err returns and clears the most recent watcher error.
func (w *scenarioWatcher) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.lastErr
	w.lastErr = nil
	return err
}

func watchedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".tengo":
		return true
	default:
		return false
	}
}
