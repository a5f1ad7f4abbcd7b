package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/interviu/internal/ai"
)

const (
	provider     = "gemini"
	defaultModel = "gemini-2.0-flash-001"
)

type contentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	models  contentModels
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, apiKey, model string, timeout time.Duration, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		models:  client.Models,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Generate sends the prompt to Gemini and returns the joined textual parts of the response.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", ai.NewGenerationError(provider, errors.New("gemini generator is not initialized"))
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ai.NewGenerationError(provider, errors.New("prompt must not be empty"))
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			g.logger.Debug("gemini api error",
				zap.Int("code", apiErr.Code),
				zap.String("status", apiErr.Status),
			)
		}
		return "", ai.NewGenerationError(provider, fmt.Errorf("generate content: %w", err))
	}

	output := joinCandidates(resp)
	if output == "" {
		return "", ai.NewGenerationError(provider, ai.ErrEmptyResponse)
	}

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func joinCandidates(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}
