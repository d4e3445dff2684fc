// Package session groups journal entries into day-keyed sessions. Every
// function here treats its input as an immutable snapshot and returns a new
// slice, so callers can express store writes as read-modify-write transforms.
package session

import (
	"errors"
	"sort"
	"strings"
	"time"

	"tableflip.dev/mindlog/pkg/entry"
)

const (
	layoutISO = "2006-01-02"
	layoutUS  = "January 2, 2006"
)

// ErrEntryNotFound is returned when no session holds the requested entry.
var ErrEntryNotFound = errors.New("session: entry not found")

// Session is one day's entries, keyed by ISO date.
type Session struct {
	ID      string        `json:"id"`
	Date    string        `json:"date"`
	Entries []entry.Entry `json:"entries"`
}

// DateKey returns the session key for the local calendar day of t.
func DateKey(t time.Time) string {
	return t.Local().Format(layoutISO)
}

// DisplayDate renders a session key for people. Keys that are not ISO dates
// are returned unchanged.
func DisplayDate(key string) string {
	t, err := time.Parse(layoutISO, key)
	if err != nil {
		return key
	}
	return t.Format(layoutUS)
}

// ParseKey accepts an ISO date, "today" or "yesterday" relative to now.
func ParseKey(s string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return DateKey(now), nil
	case "yesterday":
		return DateKey(now.AddDate(0, 0, -1)), nil
	}
	t, err := time.Parse(layoutISO, strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return t.Format(layoutISO), nil
}

func (s Session) clone() Session {
	c := s
	c.Entries = append([]entry.Entry(nil), s.Entries...)
	return c
}

// Dedupe merges sessions that share a key. Entry lists are concatenated in
// order and entries already present by ID are not repeated.
func Dedupe(sessions []Session) []Session {
	out := make([]Session, 0, len(sessions))
	index := make(map[string]int, len(sessions))
	for _, s := range sessions {
		i, ok := index[s.ID]
		if !ok {
			index[s.ID] = len(out)
			c := s.clone()
			if c.Date == "" {
				c.Date = DisplayDate(c.ID)
			}
			out = append(out, c)
			continue
		}
		seen := make(map[string]struct{}, len(out[i].Entries))
		for _, e := range out[i].Entries {
			if e.ID != "" {
				seen[e.ID] = struct{}{}
			}
		}
		for _, e := range s.Entries {
			if _, dup := seen[e.ID]; dup && e.ID != "" {
				continue
			}
			out[i].Entries = append(out[i].Entries, e)
		}
	}
	return out
}

// AppendEntry returns sessions with e concatenated onto the session for key,
// creating that session when absent.
func AppendEntry(sessions []Session, key string, e entry.Entry) []Session {
	out := Dedupe(sessions)
	for i := range out {
		if out[i].ID == key {
			out[i].Entries = append(out[i].Entries, e)
			return out
		}
	}
	return append(out, Session{
		ID:      key,
		Date:    DisplayDate(key),
		Entries: []entry.Entry{e},
	})
}

// AttachReply sets the reflection of the entry identified by entryID.
func AttachReply(sessions []Session, entryID, reply string) ([]Session, error) {
	out := Dedupe(sessions)
	for i := range out {
		for j := range out[i].Entries {
			if out[i].Entries[j].ID != entryID {
				continue
			}
			if err := out[i].Entries[j].AttachReply(reply); err != nil {
				return sessions, err
			}
			return out, nil
		}
	}
	return sessions, ErrEntryNotFound
}

// Find returns the session with the given key.
func Find(sessions []Session, key string) (Session, bool) {
	for _, s := range Dedupe(sessions) {
		if s.ID == key {
			return s, true
		}
	}
	return Session{}, false
}

// FindEntry returns the entry with the given ID and the key of its session.
func FindEntry(sessions []Session, entryID string) (entry.Entry, string, bool) {
	for _, s := range sessions {
		for _, e := range s.Entries {
			if e.ID == entryID {
				return e, s.ID, true
			}
		}
	}
	return entry.Entry{}, "", false
}

// Newest returns a copy ordered by date, most recent first.
func Newest(sessions []Session) []Session {
	out := Dedupe(sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ID > out[j].ID
	})
	return out
}

// Count returns the number of entries across all sessions.
func Count(sessions []Session) int {
	n := 0
	for _, s := range sessions {
		n += len(s.Entries)
	}
	return n
}
