// Package watch implements the FileWatcher port with fsnotify.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temp file over the original keep
// producing events.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/agricatalog/internal/core/domain"
	"github.com/custodia-labs/agricatalog/internal/core/ports/driven"
	"github.com/custodia-labs/agricatalog/internal/logger"
)

// DefaultMinInterval is the shortest gap between two change signals.
const DefaultMinInterval = time.Second

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// Watcher coalesces bursts of filesystem events into single signals.
type Watcher struct {
	debounce    time.Duration
	minInterval time.Duration
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithMinInterval overrides DefaultMinInterval.
func WithMinInterval(d time.Duration) Option {
	return func(w *Watcher) { w.minInterval = d }
}

// New creates a watcher that waits for debounce of quiet before signalling.
// A non-positive debounce uses domain.DefaultWatchDebounce.
func New(debounce time.Duration, opts ...Option) *Watcher {
	if debounce <= 0 {
		debounce = domain.DefaultWatchDebounce
	}
	w := &Watcher{debounce: debounce, minInterval: DefaultMinInterval}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch starts watching path. The returned channel is buffered with room
// for one signal; signals arriving while one is pending are merged.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	info, err := os.Stat(target)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	case err != nil:
		return nil, fmt.Errorf("stat %s: %w", path, err)
	case info.IsDir():
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	out := make(chan struct{}, 1)
	go w.run(ctx, fw, target, out)

	logger.Debug("Watching %s", target)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, target string, out chan<- struct{}) {
	defer close(out)
	defer fw.Close()

	limiter := rate.NewLimiter(rate.Every(w.minInterval), 1)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	reserved := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !relevant(event, target) {
				continue
			}
			logger.Debug("watch: %s %s", event.Op, event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch: %v", err)

		case <-timer.C:
			if !reserved {
				if d := limiter.Reserve().Delay(); d > 0 {
					reserved = true
					timer.Reset(d)
					continue
				}
			}
			reserved = false
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}
}

// relevant reports whether event touches the watched file with an
// operation that can change its content.
func relevant(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}
