package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDelay is how long a watched file must be quiet before it is
// reloaded. Editors often write a file in several steps.
const DefaultReloadDelay = 200 * time.Millisecond

// Watcher reloads catalog files into a registry when they change on disk.
// A file that fails to parse is logged and the previous catalog stays.
type Watcher struct {
	registry *Registry
	files    map[string]bool
	delay    time.Duration
	onReload func(*Catalog)

	fs *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher watches files for changes. onReload, when non-nil, is called
// with every catalog that was reloaded successfully.
func NewWatcher(r *Registry, files []string, onReload func(*Catalog)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		registry: r,
		files:    make(map[string]bool, len(files)),
		delay:    DefaultReloadDelay,
		onReload: onReload,
		fs:       fsw,
		pending:  make(map[string]*time.Timer),
	}

	// Directories are watched rather than the files themselves so that
	// rename-into-place saves are still seen.
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run processes file events until ctx is done. It always closes the
// underlying watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			slog.Warn("catalog_watch_error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	path, err := filepath.Abs(event.Name)
	if err != nil || !w.files[path] {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.delay, func() { w.reload(path) })
}

func (w *Watcher) reload(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	w.mu.Unlock()

	c, err := LoadFile(path)
	if err != nil {
		slog.Warn("catalog_reload_failed",
			slog.String("source", path),
			slog.String("error", err.Error()))
		return
	}
	w.registry.Add(c)
	slog.Info("catalog_reloaded",
		slog.String("name", c.Name),
		slog.String("source", path),
		slog.Int("options", len(c.Options)))
	if w.onReload != nil {
		w.onReload(c)
	}
}

func (w *Watcher) close() {
	w.mu.Lock()
	for _, t := range w.pending {
		t.Stop()
	}
	clear(w.pending)
	w.mu.Unlock()
	_ = w.fs.Close()
}
