// Package watch reports changes to a single input file.
//
// The parent directory is watched rather than the file itself so that
// editors which save by writing a new file and renaming it over the old
// one are still seen. Bursts of events are coalesced into one change.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceDelay is the default delay for coalescing rapid writes
const DefaultDebounceDelay = 100 * time.Millisecond

// Watcher emits the target path each time the file is created or written
type Watcher struct {
	watcher *fsnotify.Watcher
	changes chan string
	errors  chan error
	done    chan struct{}
	target  string

	mu            sync.Mutex
	debounceDelay time.Duration
	timer         *time.Timer
	closed        bool
}

// New starts watching path. The file's directory must exist.
func New(path string) (*Watcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	target = filepath.Clean(target)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	w := &Watcher{
		watcher:       watcher,
		changes:       make(chan string, 1),
		errors:        make(chan error, 10),
		done:          make(chan struct{}),
		target:        target,
		debounceDelay: DefaultDebounceDelay,
	}
	go w.processEvents()

	return w, nil
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
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
			select {
			case w.errors <- err:
			default:
				// Error channel full, drop the error
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.target {
		return
	}
	// Remove and Rename mean the file went away; the replacing Create follows
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	w.debounce()
}

// debounce restarts the pending timer so a burst yields a single change
func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.send)
}

func (w *Watcher) send() {
	select {
	case w.changes <- w.target:
	case <-w.done:
	default:
		// a change is already pending; the consumer will rebuild anyway
	}
}

// Changes returns the channel receiving the target path after each change
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Errors returns the channel receiving watcher errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Target returns the absolute path being watched
func (w *Watcher) Target() string {
	return w.target
}

// SetDebounceDelay sets the delay for coalescing rapid writes
func (w *Watcher) SetDebounceDelay(delay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounceDelay = delay
}

// Close stops the watcher and releases resources
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}
