// Package watcher monitors the directories shown in the tree and notifies
// the TUI to refresh. Only the root and the directories the user expanded
// are watched, never the whole tree, so inotify/kqueue watch limits are
// not exhausted on large checkouts.
package watcher

import (
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is sent once per debounce window. Dirs holds the directories whose
// contents changed, sorted.
type Event struct {
	Dirs []string
}

// Watcher follows a changing set of directories. Rapid bursts of events are
// coalesced via the debounce window.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration
	events   chan Event
	done     chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	watched map[string]struct{}
}

// New starts a watcher with an empty directory set.
func New(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:       fw,
		debounce: debounce,
		events:   make(chan Event, 1),
		done:     make(chan struct{}),
		watched:  make(map[string]struct{}),
	}
	go w.loop()
	return w, nil
}

// Add starts watching dir. Adding a watched directory is a no-op.
func (w *Watcher) Add(dir string) error {
	dir = filepath.Clean(dir)
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.watched[dir]; ok {
		return nil
	}
	if err := w.fs.Add(dir); err != nil {
		return err
	}
	w.watched[dir] = struct{}{}
	return nil
}

// Remove stops watching dir.
func (w *Watcher) Remove(dir string) error {
	dir = filepath.Clean(dir)
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.watched[dir]; !ok {
		return nil
	}
	delete(w.watched, dir)
	return w.fs.Remove(dir)
}

// Watched returns the watched directories, sorted.
func (w *Watcher) Watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.watched))
	for dir := range w.watched {
		out = append(out, dir)
	}
	slices.Sort(out)
	return out
}

// Events returns the debounced change notifications. The channel is closed
// when the watcher stops.
func (w *Watcher) Events() <-chan Event { return w.events }

// Close tears down the watcher.
func (w *Watcher) Close() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fs.Close()
	})
}

func (w *Watcher) loop() {
	defer close(w.events)

	// jitterRange adds randomness to the debounce so several instances
	// watching the same tree do not re-list it in lockstep.
	jitterRange := int64(w.debounce / 2) // 0 to 50% of debounce

	var timer *time.Timer
	pending := make(map[string]struct{})

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if shouldIgnore(ev.Name) {
				continue
			}
			pending[filepath.Dir(ev.Name)] = struct{}{}
			d := w.debounce
			if jitterRange > 0 {
				d += time.Duration(rand.Int64N(jitterRange))
			}
			if timer == nil {
				timer = time.NewTimer(d)
			} else {
				timer.Reset(d)
			}
		case <-timerChan(timer):
			timer = nil
			select {
			case w.events <- Event{Dirs: sortedKeys(pending)}:
				pending = make(map[string]struct{})
			default:
				// Receiver busy: keep collecting and try again later.
				timer = time.NewTimer(w.debounce)
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// shouldIgnore returns true for events that should not trigger a refresh.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)

	// Lock files: transient, mid-operation.
	if strings.HasSuffix(base, ".lock") {
		return true
	}

	// Editor swap/temp files.
	if strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, ".swx") || strings.HasSuffix(base, "~") ||
		strings.HasPrefix(base, ".#") || base == "4913" {
		return true
	}

	// Atomic-save temporaries written next to the real file.
	if strings.HasSuffix(base, ".tmp") || strings.HasPrefix(base, ".goutputstream-") {
		return true
	}

	return false
}
