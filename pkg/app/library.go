package app

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/mindlog/pkg/ai"
	"tableflip.dev/mindlog/pkg/chat"
	"tableflip.dev/mindlog/pkg/session"
)

// Sessions returns every session, newest first.
func (s *Service) Sessions(ctx context.Context) ([]session.Session, error) {
	all, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return session.Newest(all), nil
}

// Search returns sessions, newest first, narrowed to entries mentioning term.
func (s *Service) Search(ctx context.Context, term string) ([]session.Session, error) {
	all, err := s.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	return session.Filter(all, term), nil
}

// Session returns the session stored under key.
func (s *Service) Session(ctx context.Context, key string) (session.Session, error) {
	all, err := s.Snapshot(ctx)
	if err != nil {
		return session.Session{}, err
	}
	found, ok := session.Find(all, key)
	if !ok {
		return session.Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, key)
	}
	return found, nil
}

// Summaries returns the cached summaries keyed by session.
func (s *Service) Summaries(ctx context.Context) (map[string]string, error) {
	if err := s.ready(false); err != nil {
		return nil, err
	}
	return s.Persistence.LoadSummaries(ctx), nil
}

// Summary returns the cached summary for a session, if any.
func (s *Service) Summary(ctx context.Context, key string) (string, bool, error) {
	all, err := s.Summaries(ctx)
	if err != nil {
		return "", false, err
	}
	text, ok := all[key]
	return text, ok, nil
}

// GenerateSummary asks for a synthesis of a session's most important entries
// and caches it, replacing any earlier summary for that session. Nothing is
// cached when the request fails or comes back empty. Only one summary per
// session may be in flight; others run independently.
func (s *Service) GenerateSummary(ctx context.Context, key string) (string, error) {
	if err := s.ready(true); err != nil {
		return "", err
	}
	if !s.summarizing.acquire(key) {
		return "", ErrBusy
	}
	defer s.summarizing.release(key)

	sess, err := s.Session(ctx, key)
	if err != nil {
		return "", err
	}
	if len(sess.Entries) == 0 {
		return "", ErrNothingToSummarize
	}

	picked := session.TopByImportance(sess.Entries, s.SummaryTop)
	text, err := s.AI.Complete(ctx, ai.Request{
		Messages: []chat.Message{
			chat.System(summarySystemPrompt),
			chat.User(SummaryInput(sess, picked)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarize %s: %w", key, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("summarize %s: %w", key, ai.ErrEmptyCompletion)
	}

	if err := s.updateSummaries(ctx, func(m map[string]string) {
		m[key] = text
	}); err != nil {
		return "", fmt.Errorf("store summary: %w", err)
	}
	return text, nil
}

// Summarizing reports whether a summary for the session is in flight.
func (s *Service) Summarizing(key string) bool {
	return s.summarizing.busy(key)
}

// ParseSession resolves "today", "yesterday" or an ISO date to a session key.
func (s *Service) ParseSession(raw string) (string, error) {
	key, err := session.ParseKey(raw, s.now())
	if err != nil {
		return "", fmt.Errorf("invalid session %q, expected YYYY-MM-DD", raw)
	}
	return key, nil
}
