package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay coalesces the burst of events an editor save produces
const reloadDelay = 100 * time.Millisecond

// Watcher reloads a config file when it changes on disk
// The parent directory is watched so editors that save by rename are seen.
type Watcher struct {
	path    string
	fsw     *fsnotify.Watcher
	updates chan Config
	errs    chan error
}

// NewWatcher starts watching path; call Run to process events
func NewWatcher(path string) (*Watcher, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("config watcher: %w", err)
	}

	return &Watcher{
		path:    abs,
		fsw:     fsw,
		updates: make(chan Config, 1),
		errs:    make(chan error, 1),
	}, nil
}

// Path returns the watched file
func (w *Watcher) Path() string {
	return w.path
}

// Updates delivers each successfully reloaded config; only the latest is kept
func (w *Watcher) Updates() <-chan Config {
	return w.updates
}

// Errors delivers reload failures; the previous config stays in effect
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Run processes file events until ctx is done, then closes the underlying watcher
func (w *Watcher) Run(ctx context.Context) {
	defer w.fsw.Close()

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(reloadDelay)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("[config] watcher error: %v", err)

		case <-timer.C:
			cfg, err := Load(w.path)
			if err != nil {
				// A rename-replace leaves the file missing for a moment; the Create retries
				log.Printf("[config] reload failed: %v", err)
				replace(w.errs, err)
				continue
			}
			log.Printf("[config] reloaded from %s", w.path)
			replace(w.updates, cfg)
		}
	}
}

// replace sends v, dropping a stale pending value if the channel is full
func replace[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
