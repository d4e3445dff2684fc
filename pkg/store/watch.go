package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/peterbourgon/diskv/v3"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventSessionsChanged indicates entries were added or replies attached.
	EventSessionsChanged EventType = iota

	// EventSummariesChanged indicates the summary cache was written.
	EventSummariesChanged

	// EventThreadChanged indicates a chat thread was written; Event.EntryID
	// names the entry it belongs to.
	EventThreadChanged

	// EventInvalidated signals that the store changed in a way that could not
	// be classified (for example a clear) and callers should reload everything.
	EventInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type    EventType
	EntryID string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(filepath.Join(p.basePath, chatDir), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				warn.Printf("store: watcher close: %v", err)
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// The consumer reloads on the next event anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				warn.Printf("store: watch: %v", err)
				throttle.Enqueue(Event{Type: EventInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if p.isTemp(evt.Name) {
					continue
				}
				if evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
					// A removed directory loses its watch; forget it so a
					// recreated one is added again.
					delete(watched, filepath.Clean(evt.Name))
				}
				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								warn.Printf("store: watch %s: %v", absDir, err)
							} else {
								watched[absDir] = struct{}{}
							}
						}
						continue
					}
				}

				throttle.Enqueue(p.eventForPath(evt.Name), send)
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns all directories that should be watched.
// Half-written documents under the temp directory are not watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() || path == base {
			return nil
		}
		if d.Name() == tempDir {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}

// isTemp reports whether path is the temp directory or inside it.
func (p *persistence) isTemp(path string) bool {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil {
		return false
	}
	first, _, _ := strings.Cut(rel, string(os.PathSeparator))
	return first == tempDir
}

// eventForPath maps a file under the store to the document it holds.
func (p *persistence) eventForPath(path string) Event {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return Event{Type: EventInvalidated}
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	key := pathToKeyTransform(&diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	})
	switch {
	case key == sessionsKey:
		return Event{Type: EventSessionsChanged}
	case key == summariesKey:
		return Event{Type: EventSummariesChanged}
	case strings.HasPrefix(key, chatPrefix+"-"):
		return Event{Type: EventThreadChanged, EntryID: strings.TrimPrefix(key, chatPrefix+"-")}
	}
	return Event{Type: EventInvalidated}
}

// eventThrottle coalesces rapid change notifications so a view can redraw once
// per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[Event]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[Event]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[Event]struct{})
	t.timer = nil
	t.mu.Unlock()

	for ev := range pending {
		send(ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
