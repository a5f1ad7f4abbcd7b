package ai

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubGenerator struct {
	out string
	err error
}

func (s stubGenerator) Generate(context.Context, string) (string, error) { return s.out, s.err }
func (s stubGenerator) Model() string                                    { return "stub-model" }

type observation struct {
	provider string
	model    string
	success  bool
	duration time.Duration
}

type recordingObserver struct {
	seen []observation
}

func (r *recordingObserver) ObserveGeneration(provider, model string, success bool, d time.Duration) {
	r.seen = append(r.seen, observation{provider, model, success, d})
}

func TestWithMetricsReportsOutcome(t *testing.T) {
	obs := &recordingObserver{}

	ok := WithMetrics(stubGenerator{out: "hi"}, "stub", obs)
	if out, err := ok.Generate(context.Background(), "p"); err != nil || out != "hi" {
		t.Fatalf("unexpected result: %q, %v", out, err)
	}

	failing := WithMetrics(stubGenerator{err: errors.New("down")}, "stub", obs)
	if _, err := failing.Generate(context.Background(), "p"); err == nil {
		t.Fatal("expected error to pass through")
	}

	if len(obs.seen) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(obs.seen))
	}
	if !obs.seen[0].success || obs.seen[1].success {
		t.Fatalf("unexpected success flags: %+v", obs.seen)
	}
	if obs.seen[0].provider != "stub" || obs.seen[0].model != "stub-model" {
		t.Fatalf("unexpected labels: %+v", obs.seen[0])
	}
	if ok.Model() != "stub-model" {
		t.Fatalf("unexpected model: %q", ok.Model())
	}
}

func TestWithMetricsNilObserver(t *testing.T) {
	g := stubGenerator{out: "x"}
	if WithMetrics(g, "stub", nil) != Generator(g) {
		t.Fatal("expected generator to be returned unchanged")
	}
}

func TestNewGenerationError(t *testing.T) {
	if NewGenerationError("p", nil) != nil {
		t.Fatal("expected nil for nil error")
	}

	cause := errors.New("timeout")
	err := NewGenerationError("gemini", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be unwrapped")
	}
	if err.Error() != "gemini generation failed: timeout" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	if again := NewGenerationError("other", err); again != err {
		t.Fatal("expected existing GenerationError to be kept")
	}
}
