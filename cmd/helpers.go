package cmd

import (
	"fmt"
	"os"
	"time"

	"algomentor/internal/config"
	"algomentor/internal/db"
	"algomentor/internal/embeddings"
	"algomentor/internal/interview"
	"algomentor/internal/llm"
	"algomentor/internal/pipeline"
	"algomentor/internal/retriever"
	"algomentor/internal/vectorindex"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `algomentor init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newEmbedder builds one embedding backend for a provider/model pair.
func newEmbedder(provider config.ProviderType, model string, dimension int, baseURL string) (embeddings.Embedder, error) {
	switch provider {
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(model, dimension, baseURL), nil
	case config.ProviderOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, model, dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
}

// createEmbedderFromConfig builds the configured embedder, wrapping it with
// the sticky fallback (when configured) and the SQLite memoization cache.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	primary, err := newEmbedder(cfg.Embedding.Provider, cfg.Embedding.Model, cfg.Embedding.Dimension, "")
	if err != nil {
		return nil, err
	}

	embedder := primary
	if cfg.Embedding.FallbackProvider != "" && cfg.Embedding.FallbackProvider != cfg.Embedding.Provider {
		secondary, err := newEmbedder(cfg.Embedding.FallbackProvider, cfg.Embedding.FallbackModel, cfg.Embedding.Dimension, "")
		if err != nil {
			// A misconfigured or keyless fallback is not fatal; the primary
			// still works on its own.
			if verbose {
				fmt.Fprintf(os.Stderr, "Warning: embedding fallback unavailable: %v\n", err)
			}
		} else {
			embedder = embeddings.NewFallbackEmbedder(primary, secondary)
		}
	}

	if cfg.CachePath != "" {
		database, err := db.Open(cfg.CachePath)
		if err != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "Warning: embedding cache unavailable: %v\n", err)
			}
			return embedder, nil
		}
		embedder = embeddings.NewCachedEmbedder(embedder, database)
	}

	return embedder, nil
}

// createLLMProviderFromConfig creates the completion provider from config.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(string(cfg.Completion.Provider), cfg.Completion.Model, cfg.Completion.BaseURL)
}

// loadStore loads the vector snapshot, or returns an empty store with a
// warning when none exists yet.
func loadStore(cfg *config.Config) *vectorindex.Store {
	store, err := vectorindex.LoadStore(cfg.IndexPath, cfg.Embedding.Dimension)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load index from %s: %v\n", cfg.IndexPath, err)
		fmt.Fprintf(os.Stderr, "Retrieval will be empty. Run `algomentor index` first.\n")
		return vectorindex.NewStore(cfg.Embedding.Dimension, cfg.Embedding.Model)
	}
	return store
}

// buildComponents wires the full pipeline from config: snapshot, embedder,
// retriever, completion provider, and session manager. The retriever is
// returned separately for callers that expose raw similarity search.
func buildComponents(cfg *config.Config) (*pipeline.Orchestrator, *retriever.Retriever, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating embedder: %w", err)
	}

	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating completion provider: %w", err)
	}

	store := loadStore(cfg)
	ret := retriever.New(store, embedder, cfg.Retrieval.MinSimilarity, cfg.Retrieval.ChunkSize)

	sessions := interview.NewManager(interview.ManagerOptions{
		MaxInteractions: cfg.Interview.MaxInteractions,
		Timeout:         minutes(cfg.Interview.TimeoutMinutes),
		SweepInterval:   minutes(cfg.Interview.SweepMinutes),
		TriggerPhrase:   cfg.Interview.TriggerPhrase,
	})

	return pipeline.New(store, ret, provider, sessions), ret, nil
}

func buildOrchestrator(cfg *config.Config) (*pipeline.Orchestrator, error) {
	pipe, _, err := buildComponents(cfg)
	return pipe, err
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
