// Package chat is a minimal client for OpenAI-compatible chat-completion
// endpoints. It sends an ordered list of role-tagged messages and returns the
// text of the first choice. Retrying is left to the caller.
package chat

import (
	"context"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// System returns a system message.
func System(content string) Message { return Message{Role: RoleSystem, Content: content} }

// User returns a user message.
func User(content string) Message { return Message{Role: RoleUser, Content: content} }

// Assistant returns an assistant message.
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// Completer sends messages and returns the model's answer.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

type requestIDKey struct{}

// WithRequestID attaches a request id that Client sends as X-Request-Id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id attached to ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
