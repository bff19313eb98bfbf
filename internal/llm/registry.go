package llm

// ProviderInfo describes a backend the factory can build.
type ProviderInfo struct {
	Name        string
	DisplayName string
	Endpoint    string
	Models      []string
	NeedsAPIKey bool
}

// Registry lists the built-in providers. The first model is used when
// none is configured.
var Registry = []ProviderInfo{
	{
		Name:        ProviderOpenAI,
		DisplayName: "OpenAI (GPT models)",
		Endpoint:    OpenAIEndpoint,
		Models:      []string{DefaultModel, "gpt-4o-mini", "gpt-4o", "gpt-4-turbo", "gpt-3.5-turbo"},
		NeedsAPIKey: true,
	},
	{
		Name:        ProviderGroq,
		DisplayName: "Groq (Ultra-fast inference)",
		Endpoint:    GroqEndpoint,
		Models:      []string{"llama-3.1-8b-instant", "llama-3.3-70b-versatile", "mixtral-8x7b-32768", "gemma2-9b-it"},
		NeedsAPIKey: true,
	},
	{
		Name:        ProviderZai,
		DisplayName: "z.ai (GLM models)",
		Endpoint:    ZaiEndpoint,
		Models:      []string{"glm-4.7", "glm-4.7-Flash", "glm-4.7-FlashX"},
		NeedsAPIKey: true,
	},
	{
		Name:        ProviderOllama,
		DisplayName: "Ollama (local models)",
		Models:      []string{DefaultOllamaModel, "qwen2.5-coder", "mistral"},
	},
}

// GetProviderInfo returns the registry entry for name.
func GetProviderInfo(name string) (ProviderInfo, bool) {
	for _, info := range Registry {
		if info.Name == name {
			return info, true
		}
	}
	return ProviderInfo{}, false
}

// GetProviderNames returns the names of all registered providers.
func GetProviderNames() []string {
	names := make([]string, len(Registry))
	for i, info := range Registry {
		names[i] = info.Name
	}
	return names
}
