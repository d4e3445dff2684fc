// Package mcp provides the Model Context Protocol server integration for mindlog.
package mcp

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/mindlog/pkg/app"
	"tableflip.dev/mindlog/pkg/chat"
	"tableflip.dev/mindlog/pkg/entry"
	"tableflip.dev/mindlog/pkg/session"
)

// Service adapts the journal service to transport-friendly projections.
type Service struct {
	App *app.Service
}

// WriteEntryOptions captures the parameters used to write a new entry.
type WriteEntryOptions struct {
	Text     string
	Metadata entry.Metadata
}

// SessionDTO describes a session and its aggregate metadata.
type SessionDTO struct {
	ID         string     `json:"id"`
	Date       string     `json:"date"`
	EntryCount int        `json:"entryCount"`
	Summary    string     `json:"summary,omitempty"`
	Entries    []EntryDTO `json:"entries,omitempty"`
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID         string `json:"id"`
	Session    string `json:"session,omitempty"`
	Created    string `json:"created,omitempty"`
	Timestamp  string `json:"timestamp"`
	User       string `json:"user"`
	AI         string `json:"ai"`
	Importance int    `json:"importance"`
	Mood       int    `json:"mood,omitempty"`
	Topic      string `json:"topic"`
	Stressed   bool   `json:"stressed,omitempty"`
	Motivated  bool   `json:"motivated,omitempty"`
	Insight    string `json:"insight"`
}

// ChatDTO is the outcome of a chat turn.
type ChatDTO struct {
	EntryID string         `json:"entryId"`
	Reply   string         `json:"reply"`
	Thread  []chat.Message `json:"thread"`
}

// SummaryDTO carries a cached or freshly generated session summary.
type SummaryDTO struct {
	Session string `json:"session"`
	Summary string `json:"summary"`
	Cached  bool   `json:"cached"`
}

// NewService builds a service wrapper around the journal service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// WriteEntry submits a new entry and waits for its reflection. Only one
// submission may be in flight at a time.
func (s *Service) WriteEntry(ctx context.Context, opts WriteEntryOptions) (EntryDTO, error) {
	if strings.TrimSpace(opts.Text) == "" {
		return EntryDTO{}, errors.New("text is required")
	}
	if err := opts.Metadata.Validate(); err != nil {
		return EntryDTO{}, err
	}
	e, err := s.App.SubmitExclusive(ctx, opts.Text, opts.Metadata)
	if e == nil {
		return EntryDTO{}, err
	}
	dto := toEntryDTO(*e, session.DateKey(e.Created.Time))
	return dto, err
}

// ListSessions returns every session, newest first, with cached summaries.
func (s *Service) ListSessions(ctx context.Context) ([]SessionDTO, error) {
	sessions, err := s.App.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	summaries, err := s.App.Summaries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SessionDTO, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, SessionDTO{
			ID:         sess.ID,
			Date:       sess.Date,
			EntryCount: len(sess.Entries),
			Summary:    summaries[sess.ID],
		})
	}
	return out, nil
}

// SessionByID returns one session including its entries.
func (s *Service) SessionByID(ctx context.Context, key string) (SessionDTO, error) {
	sess, err := s.App.Session(ctx, key)
	if err != nil {
		return SessionDTO{}, err
	}
	summary, _, err := s.App.Summary(ctx, sess.ID)
	if err != nil {
		return SessionDTO{}, err
	}
	return toSessionDTO(sess, summary), nil
}

// SearchEntries returns matching entries, newest session first, capped at limit
// when limit is positive.
func (s *Service) SearchEntries(ctx context.Context, term string, limit int) ([]EntryDTO, error) {
	sessions, err := s.App.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	out := make([]EntryDTO, 0)
	for _, sess := range sessions {
		for _, e := range sess.Entries {
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
			out = append(out, toEntryDTO(e, sess.ID))
		}
	}
	return out, nil
}

// EntryByID returns one entry.
func (s *Service) EntryByID(ctx context.Context, id string) (EntryDTO, error) {
	sessions, err := s.App.Snapshot(ctx)
	if err != nil {
		return EntryDTO{}, err
	}
	e, key, ok := session.FindEntry(sessions, id)
	if !ok {
		return EntryDTO{}, app.ErrEntryNotFound
	}
	return toEntryDTO(e, key), nil
}

// Summarize generates and caches a fresh summary for the session.
func (s *Service) Summarize(ctx context.Context, key string) (SummaryDTO, error) {
	text, err := s.App.GenerateSummary(ctx, key)
	if err != nil {
		return SummaryDTO{}, err
	}
	return SummaryDTO{Session: key, Summary: text}, nil
}

// GetSummary returns the cached summary for the session.
func (s *Service) GetSummary(ctx context.Context, key string) (SummaryDTO, error) {
	text, ok, err := s.App.Summary(ctx, key)
	if err != nil {
		return SummaryDTO{}, err
	}
	if !ok {
		return SummaryDTO{}, errors.New("no summary for session " + key)
	}
	return SummaryDTO{Session: key, Summary: text, Cached: true}, nil
}

// ChatEntry continues the conversation about an entry. An empty message only
// opens the thread.
func (s *Service) ChatEntry(ctx context.Context, id, message string) (ChatDTO, error) {
	out := ChatDTO{EntryID: id}
	if strings.TrimSpace(message) != "" {
		reply, err := s.App.SendChat(ctx, id, message)
		if err != nil {
			return ChatDTO{}, err
		}
		out.Reply = reply.Content
	}
	thread, err := s.App.OpenChat(ctx, id)
	if err != nil {
		return ChatDTO{}, err
	}
	out.Thread = chat.Visible(thread)
	return out, nil
}

func toSessionDTO(sess session.Session, summary string) SessionDTO {
	dto := SessionDTO{
		ID:         sess.ID,
		Date:       sess.Date,
		EntryCount: len(sess.Entries),
		Summary:    summary,
		Entries:    make([]EntryDTO, 0, len(sess.Entries)),
	}
	for _, e := range sess.Entries {
		dto.Entries = append(dto.Entries, toEntryDTO(e, sess.ID))
	}
	return dto
}

func toEntryDTO(e entry.Entry, key string) EntryDTO {
	dto := EntryDTO{
		ID:         e.ID,
		Session:    key,
		Timestamp:  e.When(),
		User:       e.User,
		AI:         e.AI,
		Importance: e.Importance,
		Mood:       e.Mood,
		Topic:      e.TopicOrDefault(),
		Stressed:   e.Stressed,
		Motivated:  e.Motivated,
		Insight:    e.InsightLevel.String(),
	}
	if !e.Created.IsZero() {
		dto.Created = e.Created.String()
	}
	return dto
}

// ParseSession resolves a session argument to a session key.
func (s *Service) ParseSession(raw string) (string, error) {
	return s.App.ParseSession(raw)
}
