package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/mindlog/pkg/ai"
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

func newService(t *testing.T, sessions []session.Session, client ai.Client) (*app.Service, store.Persistence) {
	t.Helper()
	p, err := store.Load(tempConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	if err := p.SaveSessions(context.Background(), sessions); err != nil {
		t.Fatalf("SaveSessions: %v", err)
	}
	return app.New(p, client, 3), p
}

func TestSummarizeEmptySession(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	called := false
	svc, p := newService(t, []session.Session{{ID: "2024-03-09", Date: "March 9, 2024"}},
		ai.ClientFunc(func(context.Context, ai.Request) (string, error) {
			called = true
			return "x", nil
		}))
	var out bytes.Buffer

	s := Summarize{Service: svc, Session: "2024-03-09", Out: &out}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if strings.TrimSpace(out.String()) != "nothing to summarize" {
		t.Fatalf("unexpected output %q", out.String())
	}
	if called {
		t.Fatal("completion client should not be called")
	}
	if got := p.LoadSummaries(context.Background()); len(got) != 0 {
		t.Fatalf("nothing should be cached, got %v", got)
	}
}

func TestSummarizePrintsAndCaches(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	sessions := session.AppendEntry(nil, "2024-03-09", entry.Entry{ID: "a", User: "Had a tough meeting today", AI: "That sounds draining.", Metadata: entry.DefaultMetadata()})
	svc, p := newService(t, sessions, ai.ClientFunc(func(context.Context, ai.Request) (string, error) {
		return "A demanding day.", nil
	}))

	var out bytes.Buffer
	s := Summarize{Service: svc, Session: "2024-03-09", Out: &out}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	for _, want := range []string{"March 9, 2024", "Summary", "A demanding day."} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output is missing %q:\n%s", want, out.String())
		}
	}
	if got := p.LoadSummaries(context.Background())["2024-03-09"]; got != "A demanding day." {
		t.Fatalf("summary not cached, got %q", got)
	}

	out.Reset()
	s.Output = options.OutputOptions{JSON: true}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if got["session"] != "2024-03-09" || got["summary"] != "A demanding day." {
		t.Fatalf("unexpected JSON %v", got)
	}
}
