// Package llm provides the language model completion client.
package llm

import (
	"context"
)

// Options tunes a single completion call.
type Options struct {
	// MaxOutputTokens caps the length of the completion.
	MaxOutputTokens int

	// Temperature controls sampling randomness.
	Temperature float64

	// ThinkingBudget reserves tokens for model reasoning. Zero disables
	// reasoning so every token goes to the visible completion.
	ThinkingBudget int
}

// Client is the interface for completion providers.
type Client interface {
	// Complete sends a prompt and returns the textual completion.
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}
