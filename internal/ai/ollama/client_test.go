package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spigell/interviu/internal/ai"
)

func TestGeneratorChat(t *testing.T) {
	var received struct {
		Model    string `json:"model"`
		Stream   *bool  `json:"stream"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3.1","message":{"role":"assistant","content":" What is a goroutine? "},"done":true}` + "\n"))
	}))
	defer server.Close()

	g, err := NewGenerator(server.URL, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output, err := g.Generate(context.Background(), "ask")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output != "What is a goroutine?" {
		t.Fatalf("unexpected output: %q", output)
	}
	if received.Model != defaultModel {
		t.Fatalf("unexpected model: %q", received.Model)
	}
	if received.Stream == nil || *received.Stream {
		t.Fatalf("expected streaming to be disabled")
	}
	if len(received.Messages) != 1 || received.Messages[0].Content != "ask" {
		t.Fatalf("unexpected messages: %+v", received.Messages)
	}
}

func TestGeneratorServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model not found"}` + "\n"))
	}))
	defer server.Close()

	g, err := NewGenerator(server.URL, "missing", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = g.Generate(context.Background(), "ask")
	var genErr *ai.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
}

func TestGeneratorEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"model":"m","message":{"role":"assistant","content":"  "},"done":true}` + "\n"))
	}))
	defer server.Close()

	g, err := NewGenerator(server.URL, "m", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := g.Generate(context.Background(), "ask"); !errors.Is(err, ai.ErrEmptyResponse) {
		t.Fatalf("expected empty response error, got %v", err)
	}
}
