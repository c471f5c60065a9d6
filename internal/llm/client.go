// Package llm talks to the configured language model. Every backend turns a
// prompt into the raw text of the first answer and nothing more.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/NomadCrew/nomad-crew-itinerary/config"
)

// ErrEmptyResponse is returned when the model answered without any text.
var ErrEmptyResponse = errors.New("llm returned an empty response")

// Client is a model backend.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	// Provider names the resolved provider, e.g. "dashscope".
	Provider() string
	Model() string
	Close() error
}

// NewClient resolves cfg and connects to the selected backend.
func NewClient(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	ep, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}

	switch ep.Backend {
	case config.BackendGemini:
		return NewGeminiClient(ctx, ep, cfg.Temperature)
	case config.BackendOpenAICompatible:
		return NewOpenAIClient(ep, cfg.Temperature, nil), nil
	default:
		return nil, fmt.Errorf("unsupported llm backend %q", ep.Backend)
	}
}
