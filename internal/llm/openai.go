package llm

import (
	"context"
	"sync/atomic"
	"time"

	"gptcommit/internal/prompt"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator implements Generator against an OpenAI-compatible
// chat-completion endpoint.
type OpenAIGenerator struct {
	cfg      GenerationConfig
	settings settings
	client   atomic.Pointer[openai.Client]
	log      zerolog.Logger
}

// NewOpenAIGenerator creates a generator authenticated with apiKey. Fields of
// opts left unset fall back to DefaultConfig.
func NewOpenAIGenerator(apiKey string, opts Options, gopts ...GeneratorOption) *OpenAIGenerator {
	g := &OpenAIGenerator{
		cfg:      Resolve(opts, DefaultConfig()),
		settings: newSettings(gopts),
	}
	g.log = g.settings.logger.With().Str("backend", ProviderOpenAI).Logger()
	g.SetAPIKey(apiKey)
	return g
}

// SetAPIKey rotates the credential used by subsequent requests.
func (g *OpenAIGenerator) SetAPIKey(apiKey string) {
	conf := openai.DefaultConfig(apiKey)
	conf.BaseURL = g.cfg.Endpoint
	if g.settings.httpClient != nil {
		conf.HTTPClient = g.settings.httpClient
	}
	g.client.Store(openai.NewClientWithConfig(conf))
}

// Config returns the resolved configuration.
func (g *OpenAIGenerator) Config() GenerationConfig {
	return g.cfg
}

// Generate sends one chat completion for diff and returns the normalized
// content of the first choice. Transport errors are returned as is.
func (g *OpenAIGenerator) Generate(ctx context.Context, diff, delimiter string) (string, error) {
	conv := prompt.Build(diff, g.cfg.Style, g.cfg.Examples...)
	req := openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		Messages:    chatMessages(conv),
		Temperature: float32(g.cfg.Temperature),
		MaxTokens:   g.cfg.MaxTokens,
	}

	g.log.Debug().
		Str("endpoint", g.cfg.Endpoint).
		Str("model", req.Model).
		Int("messages", len(req.Messages)).
		Int("diff_bytes", len(conv.Diff())).
		Msg("sending chat completion")

	start := time.Now()
	resp, err := g.client.Load().CreateChatCompletion(ctx, req)
	if err != nil {
		g.log.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("chat completion failed")
		return "", err
	}
	g.log.Debug().Dur("elapsed", time.Since(start)).Int("choices", len(resp.Choices)).Msg("chat completion done")

	if len(resp.Choices) == 0 {
		return "", ErrNoCommitMessage
	}
	return finish(resp.Choices[0].Message.Content, delimiter)
}

func chatMessages(conv prompt.Conversation) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, len(conv))
	for i, m := range conv {
		msgs[i] = openai.ChatCompletionMessage{Role: string(m.Role), Content: m.Content}
	}
	return msgs
}
