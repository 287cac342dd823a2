// Package reference loads the reference snapshot shown in the playground's
// toggleable reference pane, and hot-reloads it when the file changes.
package reference

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"codepad/internal/logging"
	"codepad/internal/ratelimit"
)

// Watcher watches the reference snapshot file and delivers reloaded content
// on Updates. Editors often write a file several times in quick succession;
// a throttler coalesces those bursts into a leading and a trailing reload.
type Watcher struct {
	mu      sync.RWMutex
	path    string
	content string

	watcher  *fsnotify.Watcher
	throttle *ratelimit.Throttler
	updates  chan string
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher creates a watcher for the snapshot at path. The file is read
// once up front; a missing file yields empty content, not an error.
func NewWatcher(path string, reloadThrottle time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     path,
		watcher:  fsw,
		throttle: ratelimit.NewThrottler(reloadThrottle),
		updates:  make(chan string, 4),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	w.content = readSnapshot(path)
	return w, nil
}

// Content returns the last loaded snapshot.
func (w *Watcher) Content() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.content
}

// Updates returns the channel carrying reloaded snapshot content.
func (w *Watcher) Updates() <-chan string {
	return w.updates
}

// Start begins watching the snapshot's directory. Non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	log := logging.Get(logging.CategoryReference)

	// Watch the directory, not the file: editors that write via
	// rename-over would otherwise drop the watch.
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warnw("failed to create reference dir", "dir", dir, "error", err)
	}
	if err := w.watcher.Add(dir); err != nil {
		log.Warnw("initial watch failed", "dir", dir, "error", err)
	} else {
		log.Infow("watching reference snapshot", "path", w.path)
	}

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	w.throttle.Cancel()
	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryReference).Errorw("error closing watcher", "error", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryReference).Errorw("watch error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}
	w.throttle.Throttle(w.reload)
}

// reload re-reads the snapshot and publishes it. The send never blocks; a
// lagging consumer just misses intermediate versions.
func (w *Watcher) reload() {
	content := readSnapshot(w.path)

	w.mu.Lock()
	w.content = content
	w.mu.Unlock()

	logging.Get(logging.CategoryReference).Debugw("reference reloaded", "bytes", len(content))
	select {
	case w.updates <- content:
	default:
	}
}

// readSnapshot reads the snapshot file; a missing or unreadable file yields
// empty content.
func readSnapshot(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
