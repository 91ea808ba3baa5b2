// Package configwatch reloads the charview config file when it changes on disk.
package configwatch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/charview/internal/cliconfig"
	"github.com/bft-labs/charview/pkg/log"
)

// Config holds configuration options for the watcher.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
	}
}

// Watcher monitors a single TOML config file. The parent directory is
// watched so that editors replacing the file are noticed too.
type Watcher struct {
	mu sync.Mutex

	path          string
	debounceDelay time.Duration
	onChange      func(cliconfig.FileConfig)
	logger        log.Logger

	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
}

// New creates a watcher for path. onChange receives every successfully parsed
// version of the file, on the watcher's goroutine.
func New(path string, onChange func(cliconfig.FileConfig), logger log.Logger, cfg Config) *Watcher {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{
		path:          path,
		debounceDelay: cfg.DebounceDelay,
		onChange:      onChange,
		logger:        logger.With(log.String("component", "configwatch")),
	}
}

// Start begins watching. It returns an error if the directory cannot be watched.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	w.logger.Info("config watcher started", log.String("path", w.path))

	w.wg.Add(1)
	go w.watchLoop(watchCtx, fw)

	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.mu.Unlock()
	w.wg.Wait()
}

// watchLoop watches for config file changes.
func (w *Watcher) watchLoop(ctx context.Context, fw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fw.Close()

	name := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceReload(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) debounceReload(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}

	w.debounce = time.AfterFunc(w.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		w.reload()
	})
}

func (w *Watcher) reload() {
	fc, err := cliconfig.LoadFileConfig(w.path)
	if err != nil {
		w.logger.Warn("config reload failed", log.String("path", w.path), log.Err(err))
		return
	}
	w.logger.Info("config reloaded", log.String("path", w.path))
	w.onChange(fc)
}
