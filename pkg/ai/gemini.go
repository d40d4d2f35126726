package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini talks to the Gemini API through the official genai client.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini dials the Gemini API. The model name comes from the
// ai_model config option, e.g. "gemini-2.0-flash".
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Name() string { return "gemini/" + g.model }

func (g *Gemini) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response: %w", ErrUnavailable)
	}
	return text, nil
}
