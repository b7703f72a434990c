package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watcher invalidates cached entity collections when the content tree
// changes underneath the process, e.g. an external tool editing descriptors
// directly. Invalidations are coarse: any event under a type directory drops
// that type's cached collection and the next read reloads from disk.
type Watcher struct {
	fsw    *fsnotify.Watcher
	cache  *Cache
	root   string
	logger *slog.Logger
	done   chan struct{}
}

// WatchContent starts a watcher over the store's content directory. The
// caller owns the returned Watcher and must Close it.
func WatchContent(s *Store, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	root := s.ContentDir()
	if err := fsw.Add(root); err != nil {
		fsw.Close()
		return nil, err
	}
	// fsnotify watches are not recursive, so per-type directories and the
	// entity directories under them each get their own watch. Missing ones
	// are picked up from Create events as they appear.
	for _, t := range Types {
		dir := s.TypeDir(t)
		if err := fsw.Add(dir); err != nil {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				_ = fsw.Add(filepath.Join(dir, e.Name()))
			}
		}
	}

	w := &Watcher{
		fsw:    fsw,
		cache:  s.Cache,
		root:   root,
		logger: logger,
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("content watch error", "err", err)
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) == 0 {
		return
	}
	t := Type(parts[0])
	if !t.Valid() {
		return
	}
	// A new type or entity directory needs its own watch for events one
	// level deeper.
	if len(parts) <= 2 && ev.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.fsw.Add(ev.Name)
		}
	}
	w.cache.Invalidate(t)
	if w.logger != nil {
		w.logger.Debug("cache invalidated by fs event",
			"type", string(t), "op", ev.Op.String())
	}
}
