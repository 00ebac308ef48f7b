package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kasuboski/mediaindex/pkg/library"
	"github.com/kasuboski/mediaindex/pkg/logger"
	"github.com/kasuboski/mediaindex/pkg/media"
)

// target is an item directory of a collection, or the whole collection when name is empty
type target struct {
	collection int
	name       string
}

// Watcher rescans items when files below their directories change. fsnotify is not recursive so
// collection roots, item directories and their direct subdirectories are watched.
type Watcher struct {
	scanner     *Scanner
	collections []media.Collection
	debounce    time.Duration
	watcher     *fsnotify.Watcher

	// pending holds the time of the latest event per target
	pending map[target]time.Time
}

// NewWatcher starts watching the collections. Changes are acted on once Run is called, after
// debounce of quiet per item.
func NewWatcher(scanner *Scanner, collections []media.Collection, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		scanner:     scanner,
		collections: collections,
		debounce:    debounce,
		watcher:     fw,
		pending:     map[target]time.Time{},
	}

	for _, coll := range collections {
		err := w.addTree(coll.Directory, 2)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch collection %s: %w", coll.Name, err)
		}
	}

	return w, nil
}

// Run handles changes until ctx is done and closes the watcher. Pending scans are dropped on shutdown.
func (w *Watcher) Run(ctx context.Context) error {
	log := logger.FromCtx(ctx)
	defer w.watcher.Close()

	log.Infow("watching collections", "count", len(w.collections), "debounce", w.debounce)

	ticker := time.NewTicker(max(w.debounce/2, 10*time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorw("watcher error", "error", err)
		case now := <-ticker.C:
			w.flush(ctx, now)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	t, depth, ok := w.locate(event.Name)
	if !ok {
		return
	}

	info, statErr := os.Stat(event.Name)
	isDir := statErr == nil && info.IsDir()

	// only directories are items
	if depth == 0 && statErr == nil && !isDir {
		return
	}

	if event.Has(fsnotify.Create) && isDir && depth < 2 {
		err := w.addTree(event.Name, 1-depth)
		if err != nil {
			logger.FromCtx(ctx).Debugw("failed to watch new directory", "path", event.Name, "error", err)
		}
	}

	// an item directory going away can only be settled by looking at the whole collection
	if depth == 0 && event.Has(fsnotify.Remove|fsnotify.Rename) {
		t.name = ""
	}

	logger.FromCtx(ctx).Debugw("change detected", "path", event.Name, "op", event.Op.String())
	w.pending[t] = time.Now()
}

// locate maps an event path to its target and the depth below the item directory
func (w *Watcher) locate(name string) (target, int, bool) {
	for i, coll := range w.collections {
		rel, err := filepath.Rel(coll.Directory, name)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}

		parts := strings.Split(filepath.ToSlash(rel), "/")
		for _, p := range parts {
			if strings.HasPrefix(p, ".") || strings.HasPrefix(p, "+ ") {
				return target{}, 0, false
			}
		}

		return target{collection: i, name: parts[0]}, len(parts) - 1, true
	}

	return target{}, 0, false
}

// flush scans every target that has been quiet for the debounce interval
func (w *Watcher) flush(ctx context.Context, now time.Time) {
	for t, last := range w.pending {
		if now.Sub(last) < w.debounce {
			continue
		}
		delete(w.pending, t)
		w.scan(ctx, t)
	}
}

func (w *Watcher) scan(ctx context.Context, t target) {
	log := logger.FromCtx(ctx)
	coll := w.collections[t.collection]

	if t.name != "" {
		res, err := w.scanner.ScanPath(ctx, coll, t.name, library.ScanOptions{})
		if err == nil {
			log.Infow("rescanned item", "collection", coll.Name, "item", t.name, "outcome", res.Outcome)
			return
		}
		if !errors.Is(err, fs.ErrNotExist) {
			log.Errorw("failed to rescan item", "collection", coll.Name, "item", t.name, "error", err)
			return
		}
	}

	_, err := w.scanner.ScanCollection(ctx, coll, library.ScanOptions{})
	if err != nil {
		log.Errorw("failed to rescan collection", "collection", coll.Name, "error", err)
	}
}

// addTree watches dir and its subdirectories down to depth levels
func (w *Watcher) addTree(dir string, depth int) error {
	err := w.watcher.Add(dir)
	if err != nil {
		return err
	}
	if depth <= 0 {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		// subdirectories that vanish between listing and watching are picked up by the next event
		_ = w.addTree(filepath.Join(dir, e.Name()), depth-1)
	}

	return nil
}
