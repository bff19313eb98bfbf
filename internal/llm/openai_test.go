package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"gptcommit/internal/prompt"

	openai "github.com/sashabaranov/go-openai"
)

type capturedRequest struct {
	auth string
	body openai.ChatCompletionRequest
}

// stubEndpoint serves /chat/completions, recording each request and replying
// with the given choices.
func stubEndpoint(t *testing.T, contents ...string) (*httptest.Server, func() []capturedRequest) {
	t.Helper()
	var mu sync.Mutex
	var reqs []capturedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("path = %q, want suffix /chat/completions", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var c capturedRequest
		c.auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&c.body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		mu.Lock()
		reqs = append(reqs, c)
		mu.Unlock()

		choices := make([]map[string]interface{}, 0, len(contents))
		for i, content := range contents {
			choices = append(choices, map[string]interface{}{
				"index":         i,
				"finish_reason": "stop",
				"message":       map[string]string{"role": "assistant", "content": content},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"model":   c.body.Model,
			"choices": choices,
		})
	}))
	t.Cleanup(srv.Close)
	return srv, func() []capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedRequest(nil), reqs...)
	}
}

func TestOpenAIGenerator_Generate(t *testing.T) {
	t.Parallel()
	srv, reqs := stubEndpoint(t, "fix: bug")

	g := NewOpenAIGenerator("sk-test", Options{Endpoint: srv.URL + "/v1"}, WithHTTPClient(srv.Client()))
	got, err := g.Generate(context.Background(), "diff --git a/x b/x", "")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "fix: bug" {
		t.Errorf("got %q, want %q", got, "fix: bug")
	}
	if len(reqs()) != 1 {
		t.Fatalf("requests = %d, want 1", len(reqs()))
	}
	if auth := reqs()[0].auth; auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want %q", auth, "Bearer sk-test")
	}
}

func TestOpenAIGenerator_defaults(t *testing.T) {
	t.Parallel()
	srv, reqs := stubEndpoint(t, "feat: x")

	g := NewOpenAIGenerator("k", Options{Endpoint: srv.URL}, WithHTTPClient(srv.Client()))
	if _, err := g.Generate(context.Background(), "d", ""); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	body := reqs()[0].body
	if body.Model != "gpt-3.5-turbo-16k" {
		t.Errorf("model = %q, want gpt-3.5-turbo-16k", body.Model)
	}
	if body.Temperature != float32(0.2) {
		t.Errorf("temperature = %v, want 0.2", body.Temperature)
	}
	if body.MaxTokens != 196 {
		t.Errorf("max_tokens = %d, want 196", body.MaxTokens)
	}
}

func TestOpenAIGenerator_overrides(t *testing.T) {
	t.Parallel()
	srv, reqs := stubEndpoint(t, "feat: x")

	opts := Options{
		Model:       "gpt-4o",
		Temperature: 1.7,
		MaxTokens:   4000,
		Endpoint:    "  " + srv.URL + "/v1\n",
	}
	g := NewOpenAIGenerator("k", opts, WithHTTPClient(srv.Client()))
	if _, err := g.Generate(context.Background(), "d", ""); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	body := reqs()[0].body
	if body.Model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", body.Model)
	}
	if body.Temperature != float32(1.7) {
		t.Errorf("temperature = %v, want 1.7 unclamped", body.Temperature)
	}
	if body.MaxTokens != 4000 {
		t.Errorf("max_tokens = %d, want 4000", body.MaxTokens)
	}
	if got := g.Config().Endpoint; got != srv.URL+"/v1" {
		t.Errorf("endpoint = %q, want trimmed %q", got, srv.URL+"/v1")
	}
}

func TestOpenAIGenerator_conversation(t *testing.T) {
	t.Parallel()
	srv, reqs := stubEndpoint(t, "feat: x")

	style := prompt.Style{Language: "french", Emoji: true}
	examples := []prompt.Exchange{{Diff: "-a\n+b", Message: "fix: b"}}
	diff := "diff --git a/main.go b/main.go\n+func main() {}\n"
	g := NewOpenAIGenerator("k", Options{Endpoint: srv.URL, Style: style, Examples: examples}, WithHTTPClient(srv.Client()))
	if _, err := g.Generate(context.Background(), diff, ""); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	msgs := reqs()[0].body.Messages
	want := prompt.Build(diff, style, examples...)
	if len(msgs) != len(want) {
		t.Fatalf("messages = %d, want %d", len(msgs), len(want))
	}
	for i := range want {
		if msgs[i].Role != string(want[i].Role) || msgs[i].Content != want[i].Content {
			t.Errorf("message %d = {%s %q}, want {%s %q}", i, msgs[i].Role, msgs[i].Content, want[i].Role, want[i].Content)
		}
	}
	if msgs[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("first role = %q, want system", msgs[0].Role)
	}
	if !strings.HasSuffix(msgs[0].Content, "Use fr language for the commit message.") {
		t.Errorf("instruction = %q, want fr clause", msgs[0].Content)
	}
	if last := msgs[len(msgs)-1]; last.Role != openai.ChatMessageRoleUser || last.Content != diff {
		t.Errorf("last message = %+v, want user diff", last)
	}
}

func TestOpenAIGenerator_noCommitMessage(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		contents []string
	}{
		{name: "zero_choices"},
		{name: "empty_content", contents: []string{""}},
		{name: "blank_content", contents: []string{"\n  \n"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv, _ := stubEndpoint(t, tt.contents...)
			g := NewOpenAIGenerator("k", Options{Endpoint: srv.URL}, WithHTTPClient(srv.Client()))
			_, err := g.Generate(context.Background(), "d", "")
			if !errors.Is(err, ErrNoCommitMessage) {
				t.Fatalf("err = %v, want ErrNoCommitMessage", err)
			}
			if err.Error() != "No commit message were generated. Try again." {
				t.Errorf("message = %q", err.Error())
			}
		})
	}
}

func TestOpenAIGenerator_firstChoiceNormalized(t *testing.T) {
	t.Parallel()
	srv, _ := stubEndpoint(t, "\n\nfeat: add X\n\nbody\n\n", "chore: second")

	g := NewOpenAIGenerator("k", Options{Endpoint: srv.URL}, WithHTTPClient(srv.Client()))
	got, err := g.Generate(context.Background(), "d", " | ")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if want := "feat: add X |  | body"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOpenAIGenerator_transportErrorUnchanged(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer srv.Close()

	g := NewOpenAIGenerator("bad", Options{Endpoint: srv.URL}, WithHTTPClient(srv.Client()))
	_, err := g.Generate(context.Background(), "d", "")
	if err == nil {
		t.Fatal("Generate: want error, got nil")
	}
	if errors.Is(err, ErrNoCommitMessage) {
		t.Fatalf("transport error reported as ErrNoCommitMessage: %v", err)
	}
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T %v, want *openai.APIError", err, err)
	}
	if apiErr.HTTPStatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", apiErr.HTTPStatusCode)
	}
}

func TestOpenAIGenerator_SetAPIKey(t *testing.T) {
	t.Parallel()
	srv, reqs := stubEndpoint(t, "feat: x")

	g := NewOpenAIGenerator("old-key", Options{Endpoint: srv.URL}, WithHTTPClient(srv.Client()))
	if _, err := g.Generate(context.Background(), "d", ""); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	g.SetAPIKey("new-key")
	if _, err := g.Generate(context.Background(), "d", ""); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got := reqs()[0].auth; got != "Bearer old-key" {
		t.Errorf("first auth = %q", got)
	}
	if got := reqs()[1].auth; got != "Bearer new-key" {
		t.Errorf("second auth = %q", got)
	}
}

func TestOpenAIGenerator_concurrent(t *testing.T) {
	t.Parallel()
	srv, reqs := stubEndpoint(t, "feat: x")
	g := NewOpenAIGenerator("k", Options{Endpoint: srv.URL}, WithHTTPClient(srv.Client()))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := g.Generate(context.Background(), "d", ""); err != nil {
				t.Errorf("Generate: %v", err)
			}
		}()
	}
	wg.Wait()
	if len(reqs()) != 8 {
		t.Errorf("requests = %d, want 8", len(reqs()))
	}
}
