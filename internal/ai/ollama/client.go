// Package ollama provides a Generator for models served by a local Ollama runtime.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/spigell/interviu/internal/ai"
)

const (
	provider       = "ollama"
	defaultHostURL = "http://localhost:11434"
	defaultModel   = "llama3.1"
)

type Generator struct {
	client  *api.Client
	model   string
	timeout time.Duration
}

// NewGenerator creates a Generator for the Ollama server at hostURL.
func NewGenerator(hostURL, model string, timeout time.Duration) (*Generator, error) {
	hostURL = strings.TrimSpace(hostURL)
	if hostURL == "" {
		hostURL = defaultHostURL
	}

	parsed, err := url.Parse(hostURL)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host %q: %w", hostURL, err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Generator{
		client:  api.NewClient(parsed, http.DefaultClient),
		model:   model,
		timeout: timeout,
	}, nil
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ai.NewGenerationError(provider, errors.New("prompt must not be empty"))
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	stream := false
	req := &api.ChatRequest{
		Model:    g.model,
		Messages: []api.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
	}

	var builder strings.Builder
	err := g.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		builder.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", ai.NewGenerationError(provider, fmt.Errorf("chat: %w", err))
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", ai.NewGenerationError(provider, ai.ErrEmptyResponse)
	}

	return output, nil
}

func (g *Generator) Model() string { return g.model }
