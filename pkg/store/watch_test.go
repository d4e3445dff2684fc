package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/mindlog/pkg/chat"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func (t testConfig) SummaryTop() int {
	return DefaultSummaryTop
}

func TestPersistenceWatchEmitsThreadChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.SaveThread(ctx, "entry-1", []chat.Message{chat.System("frame")}); err != nil {
		t.Fatalf("save thread: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventThreadChanged {
				if evt.EntryID != "entry-1" {
					t.Fatalf("expected entry 'entry-1', got %q", evt.EntryID)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for thread change event")
		}
	}
}

func TestEventForPath(t *testing.T) {
	p := &persistence{basePath: "/base"}
	tests := []struct {
		path string
		want Event
	}{
		{path: "/base/sessions.json", want: Event{Type: EventSessionsChanged}},
		{path: "/base/summaries.json", want: Event{Type: EventSummariesChanged}},
		{path: "/base/chats/abc-123.json", want: Event{Type: EventThreadChanged, EntryID: "abc-123"}},
		{path: "/base/other.txt", want: Event{Type: EventInvalidated}},
		{path: "/base", want: Event{Type: EventInvalidated}},
	}
	for _, tt := range tests {
		if got := p.eventForPath(tt.path); got != tt.want {
			t.Errorf("eventForPath(%q) = %+v, want %+v", tt.path, got, tt.want)
		}
	}
}

func TestPersistenceWatchSurvivesClear(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := p.SaveSessions(ctx, sampleSessions()); err != nil {
		t.Fatalf("save sessions: %v", err)
	}
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := p.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(base); err != nil {
		t.Fatalf("clear removed the store directory: %v", err)
	}

	// Let the clear's own events flush before writing again.
	drain := time.After(300 * time.Millisecond)
	for draining := true; draining; {
		select {
		case <-ch:
		case <-drain:
			draining = false
		}
	}

	if err := p.SaveSessions(ctx, sampleSessions()); err != nil {
		t.Fatalf("save after clear: %v", err)
	}
	select {
	case evt := <-ch:
		if evt.Type != EventSessionsChanged && evt.Type != EventInvalidated {
			t.Fatalf("unexpected event %+v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher went quiet after clear")
	}
}

func TestTempDocumentsAreIgnored(t *testing.T) {
	base := t.TempDir()
	p := &persistence{basePath: base}
	if !p.isTemp(filepath.Join(base, tempDir, "123456")) || !p.isTemp(filepath.Join(base, tempDir)) {
		t.Error("expected paths under the temp directory to be ignored")
	}
	if p.isTemp(filepath.Join(base, "sessions.json")) {
		t.Error("sessions.json is not a temp document")
	}

	if err := os.MkdirAll(filepath.Join(base, tempDir), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(base, chatDir), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	dirs, err := collectDirs(base)
	if err != nil {
		t.Fatalf("collectDirs: %v", err)
	}
	if len(dirs) != 2 || dirs[0] != base || dirs[1] != filepath.Join(base, chatDir) {
		t.Fatalf("unexpected watched dirs %v", dirs)
	}
}
