package llm

const (
	DefaultModel       = "gpt-3.5-turbo-16k"
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 196
)

const (
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
	ProviderZai    = "zai"
	ProviderOllama = "ollama"
)

const (
	OpenAIEndpoint = "https://api.openai.com/v1"
	GroqEndpoint   = "https://api.groq.com/openai/v1"
	ZaiEndpoint    = "https://api.z.ai/api/paas/v4"
)

const DefaultOllamaModel = "llama3.1"
