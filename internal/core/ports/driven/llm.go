package driven

import (
	"context"
)

// LLMService invokes a language model to generate answer text.
// Complete may block for the provider's full latency or return an error;
// deadline enforcement is the caller's responsibility (see the bounded
// generator service).
type LLMService interface {
	// Complete generates a completion for the given prompt
	Complete(ctx context.Context, prompt string) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the LLM service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the LLM service
	Close() error
}
