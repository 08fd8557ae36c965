package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches the configuration file for changes and triggers
// reloads. It implements debouncing to prevent reload storms when editors
// write the file in several steps.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	path     string
	debounce *Debouncer

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// DefaultDebounceInterval is the quiet period required before a detected
// file change triggers a reload.
const DefaultDebounceInterval = 100 * time.Millisecond

// NewFileWatcher creates a watcher for the configuration file at path.
func NewFileWatcher(path string, logger *slog.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:  watcher,
		logger:   logger.With("component", "config-watcher"),
		path:     path,
		debounce: NewDebouncer(DefaultDebounceInterval),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}

	return fw, nil
}

// Watch starts watching for file changes and invokes onReload after each
// change. This is a blocking operation that runs until the context is
// cancelled or Stop is called.
//
// The parent directory is watched rather than the file itself so that
// atomic rename-over-write saves (the common editor pattern) are observed.
func (fw *FileWatcher) Watch(ctx context.Context, onReload func() error) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	fw.running = true
	fw.mu.Unlock()

	defer func() {
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
		close(fw.doneCh)
	}()

	if err := fw.watcher.Add(filepath.Dir(fw.path)); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	fw.logger.Info("Configuration watcher started",
		"path", fw.path,
		"debounce_ms", DefaultDebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("Configuration watcher stopped (context cancelled)")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("Configuration watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !fw.shouldProcessEvent(event) {
				continue
			}

			fw.logger.Debug("File event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			fw.debounce.Trigger(func() {
				fw.logger.Info("Triggering configuration reload",
					"path", event.Name,
					"op", event.Op.String(),
				)

				if err := onReload(); err != nil {
					fw.logger.Error("Configuration reload failed, keeping previous configuration",
						"error", err,
					)
				}
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}

			fw.logger.Error("Configuration watcher error", "error", err)
			// Continue watching despite errors
		}
	}
}

// Stop stops the file watcher.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		return nil
	}
	fw.mu.Unlock()

	close(fw.stopCh)
	<-fw.doneCh

	fw.debounce.Stop()

	if err := fw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}

	return nil
}

// shouldProcessEvent determines if an event should trigger a reload.
// Only events on the watched configuration file count; Chmod-only events
// are ignored.
func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	return filepath.Base(event.Name) == filepath.Base(fw.path)
}

// Debouncer implements event debouncing to prevent reload storms.
// It collects rapid events and triggers the callback only after a quiet period.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopCh   chan struct{}
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Trigger triggers the debouncer with a new event.
// The callback will be called after the debounce interval if no new events occur.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callback = callback

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case <-d.stopCh:
			return
		default:
			d.mu.Lock()
			cb := d.callback
			d.mu.Unlock()

			if cb != nil {
				cb()
			}
		}
	})
}

// Stop stops the debouncer and cancels any pending callbacks.
func (d *Debouncer) Stop() {
	close(d.stopCh)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
