package app

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/mindlog/pkg/ai"
	"tableflip.dev/mindlog/pkg/chat"
	"tableflip.dev/mindlog/pkg/entry"
	"tableflip.dev/mindlog/pkg/session"
)

// Submit records a new entry in today's session and asks for a reflection.
//
// Blank text is ignored: Submit returns a nil entry and a nil error and the
// store is left untouched. Other text is stored exactly as written. The entry is stored before the completion request
// is sent, so a failed request still keeps what the writer wrote; the error is
// returned alongside the entry. The reflection is attached by entry ID, never
// by position, so overlapping submissions cannot trade replies.
func (s *Service) Submit(ctx context.Context, text string, meta entry.Metadata) (*entry.Entry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if err := s.ready(true); err != nil {
		return nil, err
	}

	s.composing.Add(1)
	defer s.composing.Add(-1)

	meta = meta.Normalize()
	now := s.now()
	e := entry.New(text, meta, now)
	key := session.DateKey(now)

	if _, err := s.updateSessions(ctx, func(sessions []session.Session) ([]session.Session, error) {
		return session.AppendEntry(sessions, key, *e), nil
	}); err != nil {
		return nil, fmt.Errorf("store entry: %w", err)
	}

	reply, err := s.AI.Complete(ctx, ai.Request{
		Messages: []chat.Message{
			chat.System(ReflectionPrompt(meta)),
			chat.User(text),
		},
		MaxTokens:   reflectionMaxTokens,
		Temperature: ai.Float(reflectionTemperature),
	})
	if err != nil {
		return e, fmt.Errorf("reflect on entry: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		reply = ai.NoResponse
	}

	if _, err := s.updateSessions(ctx, func(sessions []session.Session) ([]session.Session, error) {
		return session.AttachReply(sessions, e.ID, reply)
	}); err != nil {
		return e, fmt.Errorf("attach reflection: %w", err)
	}
	e.AI = reply
	return e, nil
}

// SubmitExclusive is Submit for surfaces that allow one submission at a time.
// It fails with ErrBusy while another exclusive submission is in flight.
func (s *Service) SubmitExclusive(ctx context.Context, text string, meta entry.Metadata) (*entry.Entry, error) {
	if !s.exclusive.TryLock() {
		return nil, ErrBusy
	}
	defer s.exclusive.Unlock()
	return s.Submit(ctx, text, meta)
}

// Composing reports whether any submission is waiting for its reflection.
// Views disable their submit action while it is true.
func (s *Service) Composing() bool {
	return s.composing.Load() > 0
}

// Pending returns the number of submissions waiting for a reflection.
func (s *Service) Pending() int {
	return int(s.composing.Load())
}
