// Package watcher reports changes to the fragments document made by other
// processes, so an open view can reload.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the burst of events one atomic save produces
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches the directory holding the document and signals on
// Changes whenever the document itself is created, written, renamed or
// removed.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	dir      string
	name     string
	debounce time.Duration
	logger   *zap.Logger
	changes  chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
	stopped  bool
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the quiet period before a change is reported
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher logger
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// New creates a watcher for the document at path. The parent directory is
// watched rather than the file because atomic saves replace the inode.
func New(path string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		dir:      filepath.Dir(path),
		name:     filepath.Base(path),
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
		changes:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Changes delivers at most one pending notification at a time
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching. It is non-blocking and safe to call twice.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running || w.stopped {
		return nil
	}
	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.running = true

	w.logger.Debug("watching document", zap.String("dir", w.dir), zap.String("file", w.name))
	go w.run(ctx)
	return nil
}

// Stop ends the event loop and releases the OS watch
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	running := w.running
	w.mu.Unlock()

	close(w.stopCh)
	if running {
		<-w.doneCh
	}
	return w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))

		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != w.name {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
