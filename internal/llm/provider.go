// Package llm turns a staged diff into a commit message through a
// chat-completion backend.
package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gptcommit/internal/logging"
	"gptcommit/internal/prompt"
	"gptcommit/internal/text"

	"github.com/rs/zerolog"
)

// ErrNoCommitMessage is returned when the backend produced no usable content.
var ErrNoCommitMessage = errors.New("No commit message were generated. Try again.")

// Generator produces a commit message for a diff. An empty delimiter joins
// lines with a newline.
type Generator interface {
	Generate(ctx context.Context, diff, delimiter string) (string, error)
}

// Options carries caller-supplied settings. Zero values mean "not set".
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Endpoint    string
	Style       prompt.Style
	Examples    []prompt.Exchange
}

// GenerationConfig is Options with every field resolved.
type GenerationConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Endpoint    string
	Style       prompt.Style
	Examples    []prompt.Exchange
}

// DefaultConfig is the configuration used for every field Options leaves unset.
func DefaultConfig() GenerationConfig {
	return GenerationConfig{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		Endpoint:    OpenAIEndpoint,
		Style:       prompt.Style{Language: prompt.DefaultLanguage},
	}
}

// Resolve merges opts over defaults field by field. Numeric values are
// passed through without range checks.
func Resolve(opts Options, defaults GenerationConfig) GenerationConfig {
	cfg := defaults
	if opts.Model != "" {
		cfg.Model = opts.Model
	}
	if opts.Temperature != 0 {
		cfg.Temperature = opts.Temperature
	}
	if opts.MaxTokens != 0 {
		cfg.MaxTokens = opts.MaxTokens
	}
	if endpoint := strings.TrimSpace(opts.Endpoint); endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if opts.Style.Language != "" {
		cfg.Style.Language = opts.Style.Language
	}
	cfg.Style.Emoji = opts.Style.Emoji || defaults.Style.Emoji
	cfg.Style.Description = opts.Style.Description || defaults.Style.Description
	if len(opts.Examples) > 0 {
		cfg.Examples = opts.Examples
	}
	return cfg
}

// GeneratorOption customizes a generator at construction.
type GeneratorOption func(*settings)

type settings struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

func newSettings(opts []GeneratorOption) settings {
	s := settings{logger: logging.For("llm")}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) GeneratorOption {
	return func(s *settings) {
		s.httpClient = c
	}
}

func WithLogger(l zerolog.Logger) GeneratorOption {
	return func(s *settings) {
		s.logger = l
	}
}

// finish normalizes the first candidate's content.
func finish(content, delimiter string) (string, error) {
	if content == "" {
		return "", ErrNoCommitMessage
	}
	msg := text.TrimNewLines(content, delimiter)
	if msg == "" {
		return "", ErrNoCommitMessage
	}
	return msg, nil
}
