package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/interviu/internal/ai"
)

type fakeModels struct {
	mu       sync.Mutex
	calls    []modelCall
	resp     *genai.GenerateContentResponse
	err      error
	deadline bool
}

type modelCall struct {
	model    string
	contents []*genai.Content
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, f.deadline = ctx.Deadline()
	f.calls = append(f.calls, modelCall{model: model, contents: contents})
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGeneratorJoinsParts(t *testing.T) {
	models := &fakeModels{resp: textResponse("  first ", "", "second")}
	g := &Generator{models: models, model: "gemini-pro", logger: zap.NewNop()}

	output, err := g.Generate(context.Background(), "  ask something  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != "first\nsecond" {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(models.calls))
	}

	call := models.calls[0]
	if call.model != "gemini-pro" {
		t.Fatalf("unexpected model: %q", call.model)
	}
	if got := call.contents[0].Parts[0].Text; got != "ask something" {
		t.Fatalf("unexpected prompt: %q", got)
	}
}

func TestGeneratorDoesNotRetryOnError(t *testing.T) {
	models := &fakeModels{err: genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}}
	g := &Generator{models: models, model: "gemini-pro", logger: zap.NewNop()}

	_, err := g.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}

	var genErr *ai.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %T", err)
	}
	if genErr.Provider != "gemini" {
		t.Fatalf("unexpected provider: %q", genErr.Provider)
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
}

func TestGeneratorEmptyResponse(t *testing.T) {
	models := &fakeModels{resp: textResponse("   ")}
	g := &Generator{models: models, model: "gemini-pro", logger: zap.NewNop()}

	_, err := g.Generate(context.Background(), "prompt")
	if !errors.Is(err, ai.ErrEmptyResponse) {
		t.Fatalf("expected empty response error, got %v", err)
	}
}

func TestGeneratorRejectsEmptyPrompt(t *testing.T) {
	models := &fakeModels{resp: textResponse("unused")}
	g := &Generator{models: models, model: "gemini-pro", logger: zap.NewNop()}

	if _, err := g.Generate(context.Background(), " \n "); err == nil {
		t.Fatal("expected error for empty prompt")
	}
	if len(models.calls) != 0 {
		t.Fatalf("expected no calls, got %d", len(models.calls))
	}
}

func TestGeneratorAppliesTimeout(t *testing.T) {
	models := &fakeModels{resp: textResponse("ok")}
	g := &Generator{models: models, model: "gemini-pro", timeout: time.Second, logger: zap.NewNop()}

	if _, err := g.Generate(context.Background(), "prompt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !models.deadline {
		t.Fatal("expected context deadline to be set")
	}
}

func TestNilGenerator(t *testing.T) {
	var g *Generator
	if _, err := g.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error from nil generator")
	}
	if g.Model() != "" {
		t.Fatal("expected empty model for nil generator")
	}
}
