package assets

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// Running is satisfied by the shutdown flag.
type Running interface {
	Running() bool
}

// pollInterval bounds how long the watcher takes to notice shutdown.
const pollInterval = 100 * time.Millisecond

// Watcher observes the asset root and invalidates cache entries whose file
// data changes. It only reacts to content writes; creates, renames, removes
// and attribute changes are ignored.
type Watcher struct {
	fs     *fsnotify.Watcher
	cache  *Cache
	logger *log.Logger

	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher watches every directory under the cache root.
func NewWatcher(cache *Cache, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWatcherInit, err)
	}

	w := &Watcher{
		fs:     fw,
		cache:  cache,
		logger: logger,
		done:   make(chan struct{}),
	}
	if err := w.addTree(cache.Root().Dir()); err != nil {
		fw.Close()
		return nil, fmt.Errorf("%w: %w", ErrWatcherInit, err)
	}
	return w, nil
}

// addTree adds dir and all of its subdirectories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.fs.Add(p)
	})
}

// Run processes events until running reports false or Close is called.
// It closes the underlying fsnotify watcher on return.
func (w *Watcher) Run(running Running) {
	defer w.fs.Close()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	w.logger.Info("start monitoring asset files", "root", w.cache.Root().Dir())
	defer w.logger.Info("finish monitoring asset files")

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("asset watcher error", "error", err)
		case <-ticker.C:
			if running != nil && !running.Running() {
				return
			}
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		// New directories must be watched explicitly.
		if err := w.addTree(ev.Name); err != nil {
			w.logger.Debug("cannot watch new path", "path", ev.Name, "error", err)
		}
		return
	}
	if !ev.Has(fsnotify.Write) {
		return
	}

	rel, err := w.cache.Root().Rel(ev.Name)
	if err != nil {
		w.logger.Warn("event outside asset root", "path", ev.Name, "error", err)
		return
	}
	if _, ok := w.cache.Manifest().Lookup(rel); !ok {
		return
	}
	w.logger.Debug("asset data modified", "path", rel)
	w.cache.Invalidate(rel)
}

// Close stops Run. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() { close(w.done) })
	return nil
}
