package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// providerDefaults maps a completion provider to its suggested models.
var providerDefaults = map[ProviderType]struct {
	CompletionModel string
	EmbeddingModel  string
}{
	ProviderOllama: {CompletionModel: "llama3", EmbeddingModel: "all-minilm"},
	ProviderOpenAI: {CompletionModel: "gpt-4o-mini", EmbeddingModel: "text-embedding-3-small"},
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .algomentor.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to algomentor! Let's configure your mentor.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Completion provider.
	providerPrompt := promptui.Select{
		Label: "Select completion provider",
		Items: []string{"ollama (local, recommended)", "openai"},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	providers := []ProviderType{ProviderOllama, ProviderOpenAI}
	provider := providers[providerIdx]
	defaults := providerDefaults[provider]

	// 2. Completion model.
	modelPrompt := promptui.Prompt{
		Label:   "Completion model",
		Default: defaults.CompletionModel,
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}
	cfg.Completion.Provider = provider
	cfg.Completion.Model = model

	// Embeddings follow the completion provider; the hosted fallback stays
	// configured either way.
	cfg.Embedding.Provider = provider
	cfg.Embedding.Model = defaults.EmbeddingModel

	// 3. Corpus location.
	corpusPrompt := promptui.Prompt{
		Label:   "Path to the problem corpus (JSON)",
		Default: cfg.CorpusPath,
	}
	corpusPath, err := corpusPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("corpus path: %w", err)
	}
	cfg.CorpusPath = corpusPath

	// 4. HTTP port for serve mode.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port for algomentor serve",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// Check for API key.
	if envVar := APIKeyEnvVar(provider); envVar != "" {
		if os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running algomentor.\n", envVar)
		}
	}

	configPath := ".algomentor.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("Next: run `algomentor index` to build the retrieval snapshot.")
	return cfg, nil
}
