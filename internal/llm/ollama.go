package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gptcommit/internal/prompt"

	ollama "github.com/ollama/ollama/api"
	"github.com/rs/zerolog"
)

// OllamaGenerator implements Generator against a local Ollama server.
type OllamaGenerator struct {
	cfg    GenerationConfig
	client *ollama.Client
	log    zerolog.Logger
}

// NewOllamaGenerator connects to opts.Endpoint, or to OLLAMA_HOST when no
// endpoint is set.
func NewOllamaGenerator(opts Options, gopts ...GeneratorOption) (*OllamaGenerator, error) {
	defaults := DefaultConfig()
	defaults.Model = DefaultOllamaModel
	defaults.Endpoint = ""
	cfg := Resolve(opts, defaults)
	s := newSettings(gopts)

	var client *ollama.Client
	if cfg.Endpoint == "" {
		c, err := ollama.ClientFromEnvironment()
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		client = c
	} else {
		base, err := url.Parse(cfg.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid ollama endpoint %q: %w", cfg.Endpoint, err)
		}
		httpClient := s.httpClient
		if httpClient == nil {
			httpClient = http.DefaultClient
		}
		client = ollama.NewClient(base, httpClient)
	}

	return &OllamaGenerator{
		cfg:    cfg,
		client: client,
		log:    s.logger.With().Str("backend", ProviderOllama).Logger(),
	}, nil
}

func (g *OllamaGenerator) Config() GenerationConfig {
	return g.cfg
}

// Generate sends one non-streaming chat request for diff.
func (g *OllamaGenerator) Generate(ctx context.Context, diff, delimiter string) (string, error) {
	conv := prompt.Build(diff, g.cfg.Style, g.cfg.Examples...)
	msgs := make([]ollama.Message, len(conv))
	for i, m := range conv {
		msgs[i] = ollama.Message{Role: string(m.Role), Content: m.Content}
	}

	stream := false
	req := &ollama.ChatRequest{
		Model:    g.cfg.Model,
		Messages: msgs,
		Stream:   &stream,
		Options: map[string]interface{}{
			"temperature": g.cfg.Temperature,
			"num_predict": g.cfg.MaxTokens,
		},
	}

	g.log.Debug().Str("model", req.Model).Int("messages", len(msgs)).Msg("sending chat request")

	start := time.Now()
	var content string
	err := g.client.Chat(ctx, req, func(resp ollama.ChatResponse) error {
		content += resp.Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}
	g.log.Debug().Dur("elapsed", time.Since(start)).Int("content_bytes", len(content)).Msg("chat request done")

	return finish(content, delimiter)
}
