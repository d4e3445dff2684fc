// Package chat models follow-up conversations about a single journal entry.
package chat

import (
	"fmt"

	"tableflip.dev/mindlog/pkg/entry"
)

// Role tags who authored a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func System(content string) Message    { return Message{Role: RoleSystem, Content: content} }
func User(content string) Message      { return Message{Role: RoleUser, Content: content} }
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// Seed starts a thread framed by the entry's text and its reflection.
func Seed(e entry.Entry) []Message {
	return []Message{System(fmt.Sprintf(
		"You are a reflective assistant helping the writer explore a journal entry more deeply. "+
			"Their original entry was: \"%s\". Your earlier reflection on it was: \"%s\".",
		e.User, e.AI,
	))}
}

// Append returns a new thread with msgs added after thread.
func Append(thread []Message, msgs ...Message) []Message {
	out := make([]Message, 0, len(thread)+len(msgs))
	out = append(out, thread...)
	return append(out, msgs...)
}

// Visible drops the system framing, leaving the turns people read.
func Visible(thread []Message) []Message {
	out := make([]Message, 0, len(thread))
	for _, m := range thread {
		if m.Role != RoleSystem {
			out = append(out, m)
		}
	}
	return out
}
