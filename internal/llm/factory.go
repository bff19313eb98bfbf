package llm

import (
	"fmt"
	"strings"
)

// GeneratorFactory builds a Generator for one provider.
type GeneratorFactory func(apiKey string, opts Options, gopts ...GeneratorOption) (Generator, error)

var factories = map[string]GeneratorFactory{
	ProviderOpenAI: openAICompatible(ProviderOpenAI),
	ProviderGroq:   openAICompatible(ProviderGroq),
	ProviderZai:    openAICompatible(ProviderZai),
	ProviderOllama: func(_ string, opts Options, gopts ...GeneratorOption) (Generator, error) {
		g, err := NewOllamaGenerator(opts, gopts...)
		if err != nil {
			return nil, err
		}
		return g, nil
	},
}

// openAICompatible fills in the provider's endpoint and first model before
// building an OpenAIGenerator. OpenAI itself keeps DefaultModel.
func openAICompatible(name string) GeneratorFactory {
	return func(apiKey string, opts Options, gopts ...GeneratorOption) (Generator, error) {
		if apiKey == "" {
			return nil, fmt.Errorf("%s API key is not configured", name)
		}
		if info, ok := GetProviderInfo(name); ok {
			if strings.TrimSpace(opts.Endpoint) == "" {
				opts.Endpoint = info.Endpoint
			}
			if opts.Model == "" && name != ProviderOpenAI && len(info.Models) > 0 {
				opts.Model = info.Models[0]
			}
		}
		return NewOpenAIGenerator(apiKey, opts, gopts...), nil
	}
}

// CreateGenerator builds the Generator registered under name.
func CreateGenerator(name, apiKey string, opts Options, gopts ...GeneratorOption) (Generator, error) {
	factory, exists := factories[name]
	if !exists {
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
	return factory(apiKey, opts, gopts...)
}

// RegisterProvider registers a factory under name, replacing any existing one.
func RegisterProvider(name string, factory GeneratorFactory) {
	factories[name] = factory
}
