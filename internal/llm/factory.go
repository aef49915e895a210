package llm

import (
	"fmt"
	"os"
)

// NewProvider creates a completion provider based on the given provider type
// and model. Supported types: "ollama", "openai".
func NewProvider(providerType, model, baseURL string) (Provider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = os.Getenv("OLLAMA_HOST")
		}
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return NewOllamaProvider(baseURL, model), nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		// Hosted APIs enforce request-per-minute quotas; the local path does not.
		return NewRateLimitedProvider(NewOpenAIProvider(apiKey, model, baseURL), 60), nil

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
}
