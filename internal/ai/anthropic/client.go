// Package anthropic provides a Generator backed by the Anthropic Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/spigell/interviu/internal/ai"
)

const (
	provider         = "anthropic"
	defaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 1024
)

type Generator struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	timeout   time.Duration
}

func NewGenerator(apiKey, model string, maxTokens int, timeout time.Duration, opts ...option.RequestOption) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
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
		client:    anthropic.NewClient(opts...),
		model:     anthropic.Model(model),
		maxTokens: int64(maxTokens),
		timeout:   timeout,
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

	resp, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", ai.NewGenerationError(provider, fmt.Errorf("messages api: %w", err))
	}
	if resp == nil || len(resp.Content) == 0 {
		return "", ai.NewGenerationError(provider, ai.ErrEmptyResponse)
	}

	var builder strings.Builder
	for i := range resp.Content {
		block := &resp.Content[i]
		if block.Type != "text" {
			continue
		}
		builder.WriteString(block.AsText().Text)
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", ai.NewGenerationError(provider, ai.ErrEmptyResponse)
	}

	return output, nil
}

func (g *Generator) Model() string { return string(g.model) }
