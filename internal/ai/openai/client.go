// Package openai provides a Generator backed by the official OpenAI Go SDK.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/spigell/interviu/internal/ai"
)

const (
	provider         = "openai"
	defaultModel     = "gpt-4o-mini"
	defaultMaxTokens = 1024
)

// Generator calls the OpenAI Responses API with a plain text input.
type Generator struct {
	client    openai.Client
	model     string
	maxTokens int64
	timeout   time.Duration
}

// NewGenerator creates a Generator. SDK level retries are disabled; failed
// calls surface immediately so the caller can fall back.
func NewGenerator(apiKey, model string, maxTokens int, timeout time.Duration, opts ...option.RequestOption) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	return &Generator{
		client:    openai.NewClient(opts...),
		model:     model,
		maxTokens: int64(maxTokens),
		timeout:   timeout,
	}, nil
}

// Generate sends a single prompt and returns the aggregated output text.
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

	params := responses.ResponseNewParams{
		Model:           g.model,
		MaxOutputTokens: openai.Int(g.maxTokens),
		Input:           responses.ResponseNewParamsInputUnion{OfString: openai.String(prompt)},
	}

	resp, err := g.client.Responses.New(ctx, params)
	if err != nil {
		return "", ai.NewGenerationError(provider, fmt.Errorf("responses api: %w", err))
	}
	if resp == nil {
		return "", ai.NewGenerationError(provider, ai.ErrEmptyResponse)
	}

	output := strings.TrimSpace(resp.OutputText())
	if output == "" {
		return "", ai.NewGenerationError(provider, ai.ErrEmptyResponse)
	}

	return output, nil
}

func (g *Generator) Model() string { return g.model }
