package gateway

import (
	"context"
	"fmt"
)

// Request is one schema-constrained generation call. The response schema is
// fixed per backend.
type Request struct {
	Prompt      string
	Temperature float32
}

// Backend returns the raw response text of a generation call.
type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// BackendFactory builds a Backend once a non-empty API key is available.
type BackendFactory func(ctx context.Context, cfg Config, apiKey string) (Backend, error)

func NewBackend(ctx context.Context, cfg Config, apiKey string) (Backend, error) {
	switch cfg.Provider {
	case "", ProviderGemini:
		return NewGeminiBackend(ctx, cfg, apiKey)
	case ProviderOpenAI:
		return NewOpenAIBackend(cfg, apiKey)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrConfiguration, cfg.Provider)
	}
}
