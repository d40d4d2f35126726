package ai

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rocketresume/rocket/pkg/config"
)

// ErrUnavailable is returned by providers that cannot serve requests,
// either because none is configured or the upstream rejected the call.
var ErrUnavailable = errors.New("ai provider unavailable")

// Provider is a text-completion backend. Implementations must be safe
// for concurrent use.
type Provider interface {
	// Name identifies the provider in logs and stored analyses.
	Name() string

	// Complete sends one prompt and returns the model's text reply.
	Complete(ctx context.Context, prompt string) (string, error)
}

// FromConfig builds the provider selected by ai_provider. It returns a
// Nop when the provider is "none", and an error when a real provider is
// selected but its API key is missing from the environment.
func FromConfig(ctx context.Context, cfg *config.RocketConfig) (Provider, error) {
	switch cfg.AIProvider {
	case "", "none":
		return Nop{}, nil
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			key = os.Getenv("GOOGLE_API_KEY")
		}
		if key == "" {
			return nil, errors.New("ai_provider is gemini but neither GEMINI_API_KEY nor GOOGLE_API_KEY is set")
		}
		return NewGemini(ctx, key, cfg.AIModel)
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, errors.New("ai_provider is openai but OPENAI_API_KEY is not set")
		}
		return NewOpenAI(key, cfg.AIModel), nil
	default:
		return nil, fmt.Errorf("unknown ai provider: %s", cfg.AIProvider)
	}
}
