package codebase

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// Watcher polls a codebase's roots and reloads it when a class file or
// jar is added, changed or removed.
type Watcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onReload     func(error)
}

func NewWatcher(c *Codebase, pollInterval time.Duration) *Watcher {
	return &Watcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: pollInterval,
		modTimes:     make(map[string]time.Time),
	}
}

// OnReload registers a callback run after every reload the watcher
// triggers.
func (w *Watcher) OnReload(fn func(error)) { w.onReload = fn }

func (w *Watcher) Start() {
	w.snapshot()
	go w.run()
}

func (w *Watcher) Stop() {
	close(w.stopCh)
}

func (w *Watcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if w.snapshot() {
				w.reload()
			}
		}
	}
}

func (w *Watcher) reload() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-w.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()
	defer cancel()

	err := w.codebase.Reload(ctx)
	if err != nil {
		log.Errorf("reload failed: %s", err)
	}
	if w.onReload != nil {
		w.onReload(err)
	}
}

// snapshot records the modification times of every input and reports
// whether anything changed since the previous snapshot.
func (w *Watcher) snapshot() bool {
	changed := false
	current := make(map[string]bool)

	for _, root := range w.codebase.Roots() {
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			switch strings.ToLower(filepath.Ext(path)) {
			case ".class", ".jar", ".zip":
			default:
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}

			current[path] = true
			lastMod, known := w.modTimes[path]
			if !known || info.ModTime().After(lastMod) {
				w.modTimes[path] = info.ModTime()
				changed = true
			}
			return nil
		})
	}

	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
			changed = true
		}
	}
	return changed
}
