package cmd

import (
	"context"
	"fmt"
	"strings"

	openaioption "github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/spigell/interviu/internal/ai"
	"github.com/spigell/interviu/internal/ai/anthropic"
	"github.com/spigell/interviu/internal/ai/gemini"
	"github.com/spigell/interviu/internal/ai/ollama"
	"github.com/spigell/interviu/internal/ai/openai"
	"github.com/spigell/interviu/internal/logger"
	"github.com/spigell/interviu/internal/secrets"
)

const (
	providerGemini    = "gemini"
	providerOpenAI    = "openai"
	providerAnthropic = "anthropic"
	providerOllama    = "ollama"
	providerNone      = "none"
)

// newGenerator builds the configured provider wrapped with metrics.
// Provider "none" returns a nil generator so every call takes the fallback path.
func newGenerator(ctx context.Context, cfg *AIConfig, observer ai.GenerationObserver, log *zap.Logger) (ai.Generator, error) {
	if cfg == nil {
		cfg = &AIConfig{}
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider == "" {
		provider = providerGemini
	}

	var (
		generator ai.Generator
		err       error
	)

	switch provider {
	case providerNone:
		log.Warn("ai provider disabled, all questions and scores will come from fallbacks")
		return nil, nil
	case providerGemini:
		generator, err = newGemini(ctx, cfg, log)
	case providerOpenAI:
		generator, err = newOpenAI(cfg)
	case providerAnthropic:
		generator, err = newAnthropic(cfg)
	case providerOllama:
		generator, err = newOllama(cfg)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.WithCommonFields(log, provider, generator.Model()).Info("ai provider configured",
		zap.Duration("timeout", cfg.Timeout),
	)

	return ai.WithMetrics(generator, provider, observer), nil
}

func newGemini(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Generator, error) {
	gc := cfg.Gemini
	if gc == nil {
		gc = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: gc.APIKey,
		File:  gc.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (or set ai.gemini.api-key-file)", err)
	}

	return gemini.NewGenerator(ctx, apiKey, gc.Model, cfg.Timeout, logger.WithCommonFields(log, providerGemini, gc.Model))
}

func newOpenAI(cfg *AIConfig) (ai.Generator, error) {
	oc := cfg.OpenAI
	if oc == nil {
		oc = &OpenAIConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "openai api key",
		Value: oc.APIKey,
		File:  oc.APIKeyFile,
		Env:   "OPENAI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (or set ai.openai.api-key-file)", err)
	}

	var opts []openaioption.RequestOption
	if base := strings.TrimSpace(oc.BaseURL); base != "" {
		opts = append(opts, openaioption.WithBaseURL(base))
	}

	return openai.NewGenerator(apiKey, oc.Model, oc.MaxTokens, cfg.Timeout, opts...)
}

func newAnthropic(cfg *AIConfig) (ai.Generator, error) {
	ac := cfg.Anthropic
	if ac == nil {
		ac = &AnthropicConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "anthropic api key",
		Value: ac.APIKey,
		File:  ac.APIKeyFile,
		Env:   "ANTHROPIC_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (or set ai.anthropic.api-key-file)", err)
	}

	return anthropic.NewGenerator(apiKey, ac.Model, ac.MaxTokens, cfg.Timeout)
}

func newOllama(cfg *AIConfig) (ai.Generator, error) {
	oc := cfg.Ollama
	if oc == nil {
		oc = &OllamaConfig{}
	}
	return ollama.NewGenerator(oc.Host, oc.Model, cfg.Timeout)
}
