// Package ai provides pluggable text-completion backends. The agent treats a
// backend as optional: every path that consults one falls back to rule-based
// behavior when the backend is unreachable or returns garbage.
package ai

import "context"

// Message is one entry of the conversation history handed to a backend.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// CompletionBackend is an abstract text-completion capability.
type CompletionBackend interface {
	// Complete returns the model's reply given a system prompt, prior
	// history and the current user message.
	Complete(ctx context.Context, systemPrompt string, history []Message, userMessage string) (string, error)
	// Available reports whether the backend can currently serve requests.
	Available(ctx context.Context) bool
	// Name identifies the backend in status endpoints and logs.
	Name() string
}
