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

// Entry looks up an entry by ID across all sessions.
func (s *Service) Entry(ctx context.Context, entryID string) (entry.Entry, error) {
	all, err := s.Snapshot(ctx)
	if err != nil {
		return entry.Entry{}, err
	}
	e, _, ok := session.FindEntry(all, entryID)
	if !ok {
		return entry.Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}
	return e, nil
}

// OpenChat returns the thread for an entry, creating and storing the seeded
// thread the first time.
func (s *Service) OpenChat(ctx context.Context, entryID string) ([]chat.Message, error) {
	if err := s.ready(false); err != nil {
		return nil, err
	}
	if thread := s.Persistence.LoadThread(ctx, entryID); len(thread) > 0 {
		return thread, nil
	}
	e, err := s.Entry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	thread := chat.Seed(e)
	if err := s.Persistence.SaveThread(ctx, entryID, thread); err != nil {
		return nil, fmt.Errorf("store thread: %w", err)
	}
	return thread, nil
}

// SendChat adds a follow-up question to an entry's thread and returns the
// assistant's answer. The whole thread is sent with every turn. When the
// request fails the thread is put back the way it was.
func (s *Service) SendChat(ctx context.Context, entryID, text string) (chat.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return chat.Message{}, ErrEmptyMessage
	}
	if err := s.ready(true); err != nil {
		return chat.Message{}, err
	}
	if !s.chatting.acquire(entryID) {
		return chat.Message{}, ErrBusy
	}
	defer s.chatting.release(entryID)

	prior, err := s.OpenChat(ctx, entryID)
	if err != nil {
		return chat.Message{}, err
	}

	thread := chat.Append(prior, chat.User(text))
	if err := s.Persistence.SaveThread(ctx, entryID, thread); err != nil {
		return chat.Message{}, fmt.Errorf("store thread: %w", err)
	}

	reply, err := s.AI.Complete(ctx, ai.Request{Messages: thread})
	if err != nil {
		if rerr := s.Persistence.SaveThread(ctx, entryID, prior); rerr != nil {
			return chat.Message{}, fmt.Errorf("chat: %w (restoring thread: %v)", err, rerr)
		}
		return chat.Message{}, fmt.Errorf("chat: %w", err)
	}
	if strings.TrimSpace(reply) == "" {
		reply = ai.NoResponse
	}

	answer := chat.Assistant(reply)
	if err := s.Persistence.SaveThread(ctx, entryID, chat.Append(thread, answer)); err != nil {
		return chat.Message{}, fmt.Errorf("store thread: %w", err)
	}
	return answer, nil
}

// Chatting reports whether a turn for the entry's thread is in flight.
func (s *Service) Chatting(entryID string) bool {
	return s.chatting.busy(entryID)
}
