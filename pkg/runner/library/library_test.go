package library

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/mindlog/pkg/app"
	"tableflip.dev/mindlog/pkg/commands/options"
	"tableflip.dev/mindlog/pkg/entry"
	"tableflip.dev/mindlog/pkg/session"
	"tableflip.dev/mindlog/pkg/store"
)

type tempConfig struct {
	path string
}

func (c tempConfig) BasePath() string { return c.path }
func (c tempConfig) SummaryTop() int  { return 3 }

func seeded(t *testing.T) (*app.Service, store.Persistence) {
	t.Helper()
	ctx := context.Background()
	p, err := store.Load(tempConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	sessions := session.AppendEntry(nil, "2024-03-08", entry.Entry{ID: "a", User: "Long walk by the river", AI: "Sounds restful.", Metadata: entry.DefaultMetadata()})
	sessions = session.AppendEntry(sessions, "2024-03-09", entry.Entry{ID: "b", User: "Had a tough meeting today", AI: "That sounds draining.", Metadata: entry.Metadata{Importance: 4, Topic: "work"}})
	sessions = session.AppendEntry(sessions, "2024-03-09", entry.Entry{ID: "c", User: "Cooked dinner", AI: "Nice.", Metadata: entry.DefaultMetadata()})
	if err := p.SaveSessions(ctx, sessions); err != nil {
		t.Fatalf("SaveSessions: %v", err)
	}
	if err := p.SaveSummaries(ctx, map[string]string{"2024-03-09": "A hard day at work."}); err != nil {
		t.Fatalf("SaveSummaries: %v", err)
	}
	return app.New(p, nil, 3), p
}

func render(t *testing.T, l Library) []sessionView {
	t.Helper()
	var out bytes.Buffer
	l.Output = options.OutputOptions{JSON: true}
	l.Out = &out
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var views []sessionView
	if err := json.Unmarshal(out.Bytes(), &views); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	return views
}

func TestLibraryFilters(t *testing.T) {
	svc, _ := seeded(t)

	all := render(t, Library{Service: svc})
	if len(all) != 2 || all[0].ID != "2024-03-09" || all[1].ID != "2024-03-08" {
		t.Fatalf("expected both sessions newest first, got %+v", all)
	}
	if all[0].Summary != "A hard day at work." {
		t.Fatalf("expected the cached summary, got %q", all[0].Summary)
	}

	found := render(t, Library{Service: svc, Search: "MEETING"})
	if len(found) != 1 || len(found[0].Entries) != 1 || found[0].Entries[0].ID != "b" {
		t.Fatalf("unexpected search result %+v", found)
	}

	on := render(t, Library{Service: svc, Session: "2024-03-08"})
	if len(on) != 1 || on[0].ID != "2024-03-08" {
		t.Fatalf("unexpected session filter result %+v", on)
	}

	both := render(t, Library{Service: svc, Search: "river", Session: "2024-03-08"})
	if len(both) != 1 || both[0].Entries[0].ID != "a" {
		t.Fatalf("unexpected combined filter result %+v", both)
	}
}

func TestLibraryUnknownSession(t *testing.T) {
	svc, _ := seeded(t)
	l := Library{Service: svc, Session: "2023-01-01", Out: &bytes.Buffer{}}
	if err := l.Do(context.Background()); !errors.Is(err, app.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestLibraryPretty(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	svc, _ := seeded(t)
	var out bytes.Buffer
	l := Library{Service: svc, ShowID: true, Out: &out}
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	for _, want := range []string{"March 9, 2024", "Had a tough meeting today", "That sounds draining.", "A hard day at work.", "work"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output is missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	l.Brief = true
	if err := l.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if strings.Contains(out.String(), "Had a tough meeting today") {
		t.Errorf("brief view should not print entries:\n%s", out.String())
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLibraryFollowRendersChanges(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	svc, p := seeded(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	l := Library{Service: svc, Follow: true, Out: out}
	done := make(chan error, 1)
	go func() { done <- l.Do(ctx) }()

	// Give the watcher time to subscribe before writing.
	time.Sleep(100 * time.Millisecond)
	sessions := p.LoadSessions(ctx)
	sessions = session.AppendEntry(sessions, "2024-03-10", entry.Entry{ID: "d", User: "A new morning", Metadata: entry.DefaultMetadata()})
	if err := p.SaveSessions(ctx, sessions); err != nil {
		t.Fatalf("SaveSessions: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for !strings.Contains(out.String(), "A new morning") {
		if time.Now().After(deadline) {
			t.Fatalf("follow did not re-render:\n%s", out.String())
		}
		time.Sleep(20 * time.Millisecond)
	}
	if !strings.Contains(out.String(), "--- updated ---") {
		t.Errorf("expected an update marker:\n%s", out.String())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Do: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("follow did not stop after cancel")
	}
}
