// Package config loads and validates the .algomentor.yml configuration with
// ALGOMENTOR_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A double underscore in the variable name
// descends into a section: ALGOMENTOR_COMPLETION__MODEL sets
// completion.model, ALGOMENTOR_CORPUS_PATH sets corpus_path.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("ALGOMENTOR_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "ALGOMENTOR_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized provider values.
var validProviders = map[ProviderType]bool{
	ProviderOllama: true,
	ProviderOpenAI: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validProviders[c.Completion.Provider] {
		return fmt.Errorf("invalid completion provider %q: must be ollama or openai", c.Completion.Provider)
	}
	if c.Completion.Model == "" {
		return fmt.Errorf("completion model is required")
	}

	if !validProviders[c.Embedding.Provider] {
		return fmt.Errorf("invalid embedding provider %q: must be ollama or openai", c.Embedding.Provider)
	}
	if c.Embedding.Model == "" {
		return fmt.Errorf("embedding model is required")
	}
	if c.Embedding.Dimension <= 0 {
		return fmt.Errorf("embedding dimension must be positive")
	}
	if c.Embedding.FallbackProvider != "" && !validProviders[c.Embedding.FallbackProvider] {
		return fmt.Errorf("invalid embedding fallback provider %q", c.Embedding.FallbackProvider)
	}

	if c.Retrieval.MinSimilarity < 0 || c.Retrieval.MinSimilarity > 1 {
		return fmt.Errorf("retrieval min_similarity must be between 0 and 1")
	}
	if c.Retrieval.ChunkSize <= 0 {
		return fmt.Errorf("retrieval chunk_size must be positive")
	}

	if c.Interview.MaxInteractions <= 0 {
		return fmt.Errorf("interview max_interactions must be positive")
	}
	if c.Interview.TimeoutMinutes <= 0 || c.Interview.SweepMinutes <= 0 {
		return fmt.Errorf("interview timeout_minutes and sweep_minutes must be positive")
	}
	if c.Interview.TriggerPhrase == "" {
		return fmt.Errorf("interview trigger_phrase is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}

	if c.CorpusPath == "" || c.IndexPath == "" {
		return fmt.Errorf("corpus_path and index_path are required")
	}

	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for the
// API key of the given provider. Ollama needs no key.
func APIKeyEnvVar(provider ProviderType) string {
	if provider == ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return ""
}
