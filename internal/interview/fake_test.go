package interview

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

var errUnavailable = errors.New("service unavailable")

// fakeGenerator routes prompts to per-kind responders and records every call.
type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string

	setup      func(prompt string) (string, error)
	question   func(prompt string) (string, error)
	evaluation func(prompt string) (string, error)
	report     func(prompt string) (string, error)
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	var respond func(string) (string, error)
	switch promptKind(prompt) {
	case "setup":
		respond = f.setup
	case "question":
		respond = f.question
	case "evaluation":
		respond = f.evaluation
	case "report":
		respond = f.report
	}
	if respond == nil {
		return "", errUnavailable
	}
	return respond(prompt)
}

func (f *fakeGenerator) Model() string { return "fake-model" }

func (f *fakeGenerator) calls(kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.prompts {
		if promptKind(p) == kind {
			n++
		}
	}
	return n
}

func (f *fakeGenerator) last(kind string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.prompts) - 1; i >= 0; i-- {
		if promptKind(f.prompts[i]) == kind {
			return f.prompts[i]
		}
	}
	return ""
}

func promptKind(prompt string) string {
	switch {
	case strings.Contains(prompt, "Extract and validate"):
		return "setup"
	case strings.Contains(prompt, `"followUpQuestion"`):
		return "evaluation"
	case strings.Contains(prompt, `"overallScore"`):
		return "report"
	case strings.Contains(prompt, "Generate one clear"):
		return "question"
	default:
		return ""
	}
}

// countingRecorder tallies fallbacks per kind.
type countingRecorder struct {
	mu        sync.Mutex
	fallbacks map[string]int
}

func (r *countingRecorder) ObserveGeneration(string, string, bool, time.Duration) {}

func (r *countingRecorder) IncFallback(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fallbacks == nil {
		r.fallbacks = map[string]int{}
	}
	r.fallbacks[kind]++
}

func (r *countingRecorder) ObserveFinalized(int) {}

func (r *countingRecorder) count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fallbacks[kind]
}

func reply(s string) func(string) (string, error) {
	return func(string) (string, error) { return s, nil }
}

func fail() func(string) (string, error) {
	return func(string) (string, error) { return "", errUnavailable }
}

func readySession(role string) *Session {
	s := NewSession("session-1", "owner-1", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	s.Company = "Acme"
	s.Role = role
	s.ExperienceLevel = "Senior"
	return s
}
