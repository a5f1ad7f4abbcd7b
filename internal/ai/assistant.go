package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned by providers when the model produced no text.
var ErrEmptyResponse = errors.New("model returned empty response")

// Generator is the boundary to an external text-generation capability.
// Implementations perform a single request per call and never retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// GenerationError reports that a provider could not produce text:
// transport failures, timeouts, quota exhaustion or an empty answer.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("generation failed: %v", e.Err)
	}
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// NewGenerationError wraps err unless it already is a GenerationError.
func NewGenerationError(provider string, err error) error {
	if err == nil {
		return nil
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return err
	}
	return &GenerationError{Provider: provider, Err: err}
}
