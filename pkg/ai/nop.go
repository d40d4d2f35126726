package ai

import "context"

// Nop is the provider used when AI is disabled. Every call fails with
// ErrUnavailable, which callers treat as "produce deterministic output
// only".
type Nop struct{}

func (Nop) Name() string { return "none" }

func (Nop) Complete(ctx context.Context, prompt string) (string, error) {
	return "", ErrUnavailable
}
