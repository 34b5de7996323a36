package classify

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// CatalogWatcher watches the synced external catalog file and swaps the
// engine's pattern catalog when it changes, invalidating the cached result in
// the process. Changes are debounced so rapid successive writes (editors,
// sync jobs) collapse into a single reload.
type CatalogWatcher struct {
	engine   *Engine
	cacheDir string

	watcher       *fsnotify.Watcher
	debounceDelay time.Duration
	logger        zerolog.Logger

	mu            sync.Mutex
	debounceTimer *time.Timer
}

// NewCatalogWatcher creates a watcher for the catalog cached under cacheDir.
func NewCatalogWatcher(engine *Engine, cacheDir string, logger zerolog.Logger) (*CatalogWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &CatalogWatcher{
		engine:        engine,
		cacheDir:      cacheDir,
		watcher:       watcher,
		debounceDelay: 100 * time.Millisecond,
		logger:        logger.With().Str("component", "classify.watcher").Logger(),
	}, nil
}

// Start begins watching and blocks until the context is canceled. Run it in
// its own goroutine:
//
//	go watcher.Start(ctx)
func (w *CatalogWatcher) Start(ctx context.Context) error {
	// Watch the directory, not the file: sync jobs replace the file via
	// rename, which drops a file-level watch.
	if err := w.watcher.Add(w.cacheDir); err != nil {
		return err
	}

	target := filepath.Join(w.cacheDir, CatalogFileName)
	w.logger.Debug().Str("path", target).Msg("watching rule catalog")

	for {
		select {
		case <-ctx.Done():
			return w.Close()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(target) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("catalog watch error")
		}
	}
}

// Close stops the watcher and releases its resources.
func (w *CatalogWatcher) Close() error {
	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *CatalogWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, w.reload)
}

func (w *CatalogWatcher) reload() {
	catalog, err := LoadExternalCatalog(w.cacheDir)
	if err != nil {
		w.logger.Warn().Err(err).Msg("catalog reload failed; keeping previous rules")
		return
	}
	w.engine.SetCatalog(catalog)
	w.logger.Info().Int("version_rules", len(catalog.VersionRules)).Msg("rule catalog reloaded")
}
