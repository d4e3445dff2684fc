package info

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/mindlog/pkg/ai"
	"tableflip.dev/mindlog/pkg/chat"
	"tableflip.dev/mindlog/pkg/entry"
	"tableflip.dev/mindlog/pkg/session"
	"tableflip.dev/mindlog/pkg/store"
)

type tempConfig struct {
	path string
}

func (c tempConfig) BasePath() string { return c.path }
func (c tempConfig) SummaryTop() int  { return 5 }

func TestInfoReportsCounts(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	ctx := context.Background()
	cfg := tempConfig{path: t.TempDir()}
	p, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	sessions := session.AppendEntry(nil, "2024-03-09", entry.Entry{ID: "a", User: "one"})
	sessions = session.AppendEntry(sessions, "2024-03-09", entry.Entry{ID: "b", User: "two"})
	if err := p.SaveSessions(ctx, sessions); err != nil {
		t.Fatalf("SaveSessions: %v", err)
	}
	if err := p.SaveThread(ctx, "a", []chat.Message{chat.System("seed")}); err != nil {
		t.Fatalf("SaveThread: %v", err)
	}

	var out bytes.Buffer
	n := Info{Config: cfg, AI: ai.Config{Model: "gpt-test"}, Persistence: p, Out: &out}
	if err := n.Do(ctx); err != nil {
		t.Fatalf("Do: %v", err)
	}

	got := out.String()
	for _, want := range []string{cfg.path, "gpt-test", "not set", "sessions  1", "entries  2", "chats  1", "summary.top  5"} {
		if !strings.Contains(got, want) {
			t.Errorf("info missing %q:\n%s", want, got)
		}
	}
}

func TestInfoRequiresPersistence(t *testing.T) {
	n := Info{Config: tempConfig{path: t.TempDir()}, Out: &bytes.Buffer{}}
	if err := n.Do(context.Background()); err == nil {
		t.Fatalf("expected error without persistence")
	}
}
