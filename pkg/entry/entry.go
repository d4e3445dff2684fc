package entry

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrReplyAttached is returned when an entry already carries its reflection.
	ErrReplyAttached = errors.New("entry: reply already attached")
	// ErrEmptyReply is returned when attaching a blank reflection.
	ErrEmptyReply = errors.New("entry: reply is empty")
)

// Entry is one journaling submission and the reflection written for it.
type Entry struct {
	ID        string    `json:"id"`
	Created   Timestamp `json:"created"`
	Timestamp string    `json:"timestamp"`
	User      string    `json:"user"`
	AI        string    `json:"ai"`
	Metadata
}

// New creates an entry with a fresh identity and an empty reply.
func New(text string, meta Metadata, now time.Time) *Entry {
	created := Timestamp{Time: now}
	return &Entry{
		ID:        uuid.NewString(),
		Created:   created,
		Timestamp: created.Display(),
		User:      text,
		Metadata:  meta,
	}
}

// legacyNamespace scopes identities derived for entries stored without one.
var legacyNamespace = uuid.MustParse("3f6c2b1e-8d4a-5c7e-9b0f-1a2d3e4f5a6b")

// EnsureID assigns an identity to entries written before identities existed.
// The identity is derived from slot, which names the entry's position in the
// stored document, and the entry's own text, so reloading the same document
// yields the same ID.
func (e *Entry) EnsureID(slot string) bool {
	if e.ID != "" {
		return false
	}
	name := slot + "\x00" + e.Timestamp + "\x00" + e.User
	e.ID = uuid.NewSHA1(legacyNamespace, []byte(name)).String()
	return true
}

// Pending reports whether the reflection has not arrived yet.
func (e *Entry) Pending() bool {
	return e.AI == ""
}

// AttachReply sets the reflection. It succeeds once per entry.
func (e *Entry) AttachReply(reply string) error {
	if reply == "" {
		return ErrEmptyReply
	}
	if e.AI != "" {
		return ErrReplyAttached
	}
	e.AI = reply
	return nil
}

// When returns the display string for the creation time, falling back to the
// stored timestamp for entries that predate structured times.
func (e *Entry) When() string {
	if e.Created.IsZero() {
		return e.Timestamp
	}
	return e.Created.Display()
}
