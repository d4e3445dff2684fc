// Package ai talks to the chat-completion service that writes reflections,
// summaries and follow-up replies.
package ai

import (
	"context"
	"errors"

	"tableflip.dev/mindlog/pkg/chat"
)

// NoResponse stands in for a completion that came back without text.
const NoResponse = "No response."

var (
	// ErrEmptyCompletion is returned by callers that cannot use the fallback text.
	ErrEmptyCompletion = errors.New("ai: completion returned no text")
	// ErrNoAPIKey is returned when no credential is configured.
	ErrNoAPIKey = errors.New("ai: OPENAI_API_KEY is not set")
)

// Request is an ordered, role-tagged conversation plus generation knobs.
// Zero MaxTokens and nil Temperature leave the service defaults.
type Request struct {
	Messages    []chat.Message
	MaxTokens   int
	Temperature *float64
}

// Client completes a conversation. An empty string with a nil error means the
// service answered without any candidate text.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Float returns a pointer to v, for Request.Temperature.
func Float(v float64) *float64 {
	return &v
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req Request) (string, error)

func (f ClientFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
