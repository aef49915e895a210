package config

// DefaultConfig returns a Config with sensible defaults: a local Ollama
// backend for both completion and embedding, with a hosted embedding
// fallback.
func DefaultConfig() *Config {
	return &Config{
		Completion: CompletionConfig{
			Provider: ProviderOllama,
			Model:    "llama3",
		},
		Embedding: EmbeddingConfig{
			Provider:         ProviderOllama,
			Model:            "all-minilm",
			Dimension:        384,
			FallbackProvider: ProviderOpenAI,
			FallbackModel:    "text-embedding-3-small",
		},
		Retrieval: RetrievalConfig{
			MinSimilarity: 0.7,
			ChunkSize:     500,
		},
		Interview: InterviewConfig{
			MaxInteractions: 3,
			TimeoutMinutes:  30,
			SweepMinutes:    5,
			TriggerPhrase:   "interview mode",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		CorpusPath: "corpus.json",
		IndexPath:  ".algomentor/index.json",
		CachePath:  ".algomentor/cache.db",
	}
}
