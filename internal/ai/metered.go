package ai

import (
	"context"
	"time"
)

// GenerationObserver receives one observation per generation call.
type GenerationObserver interface {
	ObserveGeneration(provider, model string, success bool, duration time.Duration)
}

type metered struct {
	next     Generator
	provider string
	observer GenerationObserver
	now      func() time.Time
}

// WithMetrics decorates g so that every call is reported to observer.
func WithMetrics(g Generator, provider string, observer GenerationObserver) Generator {
	if observer == nil {
		return g
	}
	return &metered{next: g, provider: provider, observer: observer, now: time.Now}
}

func (m *metered) Generate(ctx context.Context, prompt string) (string, error) {
	start := m.now()
	out, err := m.next.Generate(ctx, prompt)
	m.observer.ObserveGeneration(m.provider, m.next.Model(), err == nil, m.now().Sub(start))
	return out, err
}

func (m *metered) Model() string { return m.next.Model() }
