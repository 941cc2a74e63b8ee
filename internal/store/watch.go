package store

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher coalesces filesystem events on the store's JSON files into a
// simple change channel the console can poll for external-edit refreshes.
type Watcher struct {
	fs      *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
}

// Watch starts watching the store directory for writes to tools.json or
// bundles.json.
func (s *Store) Watch() (*Watcher, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(s.dir); err != nil {
		fs.Close()
		return nil, err
	}
	w := &Watcher{
		fs:      fs,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			switch filepath.Base(ev.Name) {
			case "tools.json", "bundles.json", "config.json":
			default:
				continue
			}
			// non-blocking: collapse bursts into one pending change
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

// Changes delivers one signal per coalesced burst of store edits.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
