package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"tableflip.dev/mindlog/pkg/ai"
	"tableflip.dev/mindlog/pkg/entry"
	"tableflip.dev/mindlog/pkg/session"
)

func seed(t *testing.T, mp *memoryPersistence, key string, entries ...entry.Entry) {
	t.Helper()
	ctx := context.Background()
	sessions := mp.LoadSessions(ctx)
	if len(entries) == 0 {
		sessions = append(sessions, session.Session{ID: key, Date: session.DisplayDate(key)})
	}
	for _, e := range entries {
		sessions = session.AppendEntry(sessions, key, e)
	}
	if err := mp.SaveSessions(ctx, sessions); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func rated(id, text string, importance int) entry.Entry {
	return entry.Entry{ID: id, User: text, AI: "ai " + text, Metadata: entry.Metadata{Importance: importance, InsightLevel: entry.Balanced}}
}

func TestGenerateSummaryUsesTopEntries(t *testing.T) {
	ctx := context.Background()
	var got ai.Request
	svc, mp := newTestService(ai.ClientFunc(func(_ context.Context, req ai.Request) (string, error) {
		got = req
		return "  A day of hard conversations.  ", nil
	}))
	seed(t, mp, "2024-03-09",
		rated("a", "low", 1),
		rated("b", "high", 5),
		rated("c", "mid", 3),
		rated("d", "higher", 4),
	)

	text, err := svc.GenerateSummary(ctx, "2024-03-09")
	if err != nil {
		t.Fatalf("GenerateSummary: %v", err)
	}
	if text != "A day of hard conversations." {
		t.Fatalf("unexpected summary %q", text)
	}
	if len(got.Messages) != 2 || got.Messages[0].Content != summarySystemPrompt {
		t.Fatalf("unexpected request %+v", got.Messages)
	}
	prompt := got.Messages[1].Content
	for _, want := range []string{"User: high", "User: higher", "User: mid", "AI: ai high", "March 9, 2024"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "User: low") {
		t.Errorf("prompt should leave out the least important entry:\n%s", prompt)
	}
	if strings.Index(prompt, "User: high\n") > strings.Index(prompt, "User: mid") {
		t.Errorf("entries should be ordered by importance:\n%s", prompt)
	}

	cached, ok, err := svc.Summary(ctx, "2024-03-09")
	if err != nil || !ok || cached != text {
		t.Fatalf("expected cached summary, got %q %v %v", cached, ok, err)
	}
	if svc.Summarizing("2024-03-09") {
		t.Fatalf("busy flag should be cleared")
	}
}

func TestGenerateSummaryOverwritesCache(t *testing.T) {
	ctx := context.Background()
	n := 0
	svc, mp := newTestService(ai.ClientFunc(func(context.Context, ai.Request) (string, error) {
		n++
		return strings.Repeat("v", n), nil
	}))
	seed(t, mp, "2024-03-09", rated("a", "one", 3))

	for i := 0; i < 2; i++ {
		if _, err := svc.GenerateSummary(ctx, "2024-03-09"); err != nil {
			t.Fatalf("GenerateSummary: %v", err)
		}
	}
	if got, _, _ := svc.Summary(ctx, "2024-03-09"); got != "vv" {
		t.Fatalf("expected newest summary, got %q", got)
	}
}

func TestGenerateSummaryEmptySession(t *testing.T) {
	called := false
	svc, mp := newTestService(ai.ClientFunc(func(context.Context, ai.Request) (string, error) {
		called = true
		return "x", nil
	}))
	seed(t, mp, "2024-03-09")

	_, err := svc.GenerateSummary(context.Background(), "2024-03-09")
	if !errors.Is(err, ErrNothingToSummarize) {
		t.Fatalf("expected ErrNothingToSummarize, got %v", err)
	}
	if called {
		t.Fatalf("completion client should not be called")
	}
	if svc.Summarizing("2024-03-09") {
		t.Fatalf("busy flag should be cleared")
	}
}

func TestGenerateSummaryFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("timeout")
	tests := []struct {
		name    string
		reply   string
		err     error
		wantErr error
	}{
		{name: "transport", err: boom, wantErr: boom},
		{name: "empty", reply: " ", wantErr: ai.ErrEmptyCompletion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mp := newTestService(ai.ClientFunc(func(context.Context, ai.Request) (string, error) {
				return tt.reply, tt.err
			}))
			seed(t, mp, "2024-03-09", rated("a", "one", 3))
			if err := mp.SaveSummaries(ctx, map[string]string{"2024-03-09": "older"}); err != nil {
				t.Fatalf("seed summary: %v", err)
			}

			_, err := svc.GenerateSummary(ctx, "2024-03-09")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if got, _, _ := svc.Summary(ctx, "2024-03-09"); got != "older" {
				t.Fatalf("cached summary changed to %q", got)
			}
			if svc.Summarizing("2024-03-09") {
				t.Fatalf("busy flag should be cleared")
			}
		})
	}
}

func TestGenerateSummaryUnknownSession(t *testing.T) {
	svc, _ := newTestService(echoClient())
	if _, err := svc.GenerateSummary(context.Background(), "1999-01-01"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestGenerateSummaryBusyPerSession(t *testing.T) {
	ctx := context.Background()
	started := make(chan string, 2)
	gate := make(chan struct{})
	svc, mp := newTestService(ai.ClientFunc(func(_ context.Context, req ai.Request) (string, error) {
		started <- req.Messages[1].Content
		<-gate
		return "summary", nil
	}))
	seed(t, mp, "2024-03-08", rated("a", "one", 3))
	seed(t, mp, "2024-03-09", rated("b", "two", 3))

	var wg sync.WaitGroup
	for _, key := range []string{"2024-03-08", "2024-03-09"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			if _, err := svc.GenerateSummary(ctx, key); err != nil {
				t.Errorf("GenerateSummary(%s): %v", key, err)
			}
		}(key)
	}

	// Both sessions summarize at the same time.
	<-started
	<-started

	if _, err := svc.GenerateSummary(ctx, "2024-03-09"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy for repeated request, got %v", err)
	}
	close(gate)
	wg.Wait()

	summaries, _ := svc.Summaries(ctx)
	if len(summaries) != 2 {
		t.Fatalf("expected both summaries cached, got %v", summaries)
	}
}

func TestSearchAndSessions(t *testing.T) {
	ctx := context.Background()
	svc, mp := newTestService(echoClient())
	seed(t, mp, "2024-03-08", rated("a", "gym session", 3))
	seed(t, mp, "2024-03-09", rated("b", "team meeting", 3), rated("c", "quiet dinner", 2))

	all, err := svc.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(all) != 2 || all[0].ID != "2024-03-09" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	found, err := svc.Search(ctx, "MEETING")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(found) != 1 || len(found[0].Entries) != 1 || found[0].Entries[0].ID != "b" {
		t.Fatalf("unexpected search result %+v", found)
	}
}
