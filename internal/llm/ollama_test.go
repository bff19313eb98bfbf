package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	ollama "github.com/ollama/ollama/api"
)

func ollamaStub(t *testing.T, content string, got *ollama.ChatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q, want /api/chat", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"model":      got.Model,
			"created_at": "2024-01-01T00:00:00Z",
			"message":    map[string]string{"role": "assistant", "content": content},
			"done":       true,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOllamaGenerator_Generate(t *testing.T) {
	t.Parallel()
	var req ollama.ChatRequest
	srv := ollamaStub(t, "\nrefactor: split parser\n\n", &req)

	g, err := NewOllamaGenerator(Options{Endpoint: srv.URL, MaxTokens: 64}, WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewOllamaGenerator: %v", err)
	}
	got, err := g.Generate(context.Background(), "diff", "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "refactor: split parser" {
		t.Errorf("got %q, want %q", got, "refactor: split parser")
	}
	if req.Model != DefaultOllamaModel {
		t.Errorf("model = %q, want %q", req.Model, DefaultOllamaModel)
	}
	if req.Stream == nil || *req.Stream {
		t.Errorf("stream = %v, want false", req.Stream)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "diff" {
		t.Errorf("messages = %+v, want system + diff", req.Messages)
	}
	if v, ok := req.Options["num_predict"].(float64); !ok || v != 64 {
		t.Errorf("num_predict = %v, want 64", req.Options["num_predict"])
	}
	if v, ok := req.Options["temperature"].(float64); !ok || v != DefaultTemperature {
		t.Errorf("temperature = %v, want %v", req.Options["temperature"], DefaultTemperature)
	}
}

func TestOllamaGenerator_emptyContent(t *testing.T) {
	t.Parallel()
	var req ollama.ChatRequest
	srv := ollamaStub(t, "", &req)

	g, err := NewOllamaGenerator(Options{Endpoint: srv.URL}, WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("NewOllamaGenerator: %v", err)
	}
	if _, err := g.Generate(context.Background(), "diff", ""); !errors.Is(err, ErrNoCommitMessage) {
		t.Errorf("err = %v, want ErrNoCommitMessage", err)
	}
}
