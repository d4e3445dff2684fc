// Package app holds the journaling operations shared by the CLI, the chat
// view and the MCP server: composing entries, summarizing sessions and
// continuing conversations about an entry.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"tableflip.dev/mindlog/pkg/ai"
	"tableflip.dev/mindlog/pkg/session"
	"tableflip.dev/mindlog/pkg/store"
)

var (
	ErrNoPersistence      = errors.New("app: no persistence configured")
	ErrNoClient           = errors.New("app: no completion client configured")
	ErrBusy               = errors.New("app: a request for this item is already in flight")
	ErrSessionNotFound    = errors.New("app: session not found")
	ErrEntryNotFound      = errors.New("app: entry not found")
	ErrNothingToSummarize = errors.New("app: nothing to summarize")
	ErrEmptyMessage       = errors.New("app: message is empty")
)

// Service provides the journaling operations over a store and a completion
// client. A Service must not be copied after first use.
type Service struct {
	Persistence store.Persistence
	AI          ai.Client
	// SummaryTop limits how many entries feed a daily summary; 0 uses all.
	SummaryTop int
	Now        func() time.Time

	// mu serializes read-modify-write cycles on the session and summary
	// documents. It is never held across a completion request.
	mu sync.Mutex

	composing   atomic.Int32
	exclusive   sync.Mutex
	summarizing inflight
	chatting    inflight
}

// New returns a Service with the default summary size.
func New(p store.Persistence, client ai.Client, summaryTop int) *Service {
	return &Service{Persistence: p, AI: client, SummaryTop: summaryTop}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) ready(needAI bool) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	if needAI && s.AI == nil {
		return ErrNoClient
	}
	return nil
}

// updateSessions applies fn to the stored sessions and saves the result.
func (s *Service) updateSessions(ctx context.Context, fn func([]session.Session) ([]session.Session, error)) ([]session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.Persistence.LoadSessions(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.Persistence.SaveSessions(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// updateSummaries applies fn to a copy of the summary cache and saves it.
func (s *Service) updateSummaries(ctx context.Context, fn func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.Persistence.LoadSummaries(ctx)
	next := make(map[string]string, len(cur)+1)
	for k, v := range cur {
		next[k] = v
	}
	fn(next)
	return s.Persistence.SaveSummaries(ctx, next)
}

// Snapshot returns the stored sessions.
func (s *Service) Snapshot(ctx context.Context) ([]session.Session, error) {
	if err := s.ready(false); err != nil {
		return nil, err
	}
	return s.Persistence.LoadSessions(ctx), nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if err := s.ready(false); err != nil {
		return nil, err
	}
	return s.Persistence.Watch(ctx)
}

// Clear erases sessions, summaries and chat threads. The caller is
// responsible for confirming with the user.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.ready(false); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Persistence.Clear(ctx)
}
