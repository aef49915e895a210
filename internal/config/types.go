package config

// ProviderType identifies a completion or embedding backend.
type ProviderType string

const (
	ProviderOllama ProviderType = "ollama"
	ProviderOpenAI ProviderType = "openai"
)

// CompletionConfig selects the text-generation backend.
type CompletionConfig struct {
	Provider ProviderType `yaml:"provider" koanf:"provider"`
	Model    string       `yaml:"model" koanf:"model"`
	BaseURL  string       `yaml:"base_url" koanf:"base_url"`
}

// EmbeddingConfig selects the embedding backend and its fallback. The
// fallback is consulted once per process lifetime: after the first primary
// failure, all embedding traffic switches over and stays switched.
type EmbeddingConfig struct {
	Provider         ProviderType `yaml:"provider" koanf:"provider"`
	Model            string       `yaml:"model" koanf:"model"`
	Dimension        int          `yaml:"dimension" koanf:"dimension"`
	FallbackProvider ProviderType `yaml:"fallback_provider" koanf:"fallback_provider"`
	FallbackModel    string       `yaml:"fallback_model" koanf:"fallback_model"`
}

// RetrievalConfig tunes similarity search and context rendering.
type RetrievalConfig struct {
	// MinSimilarity is the cosine-score floor for retrieved documents.
	MinSimilarity float64 `yaml:"min_similarity" koanf:"min_similarity"`
	// ChunkSize caps per-document text in full-format context rendering.
	ChunkSize int `yaml:"chunk_size" koanf:"chunk_size"`
}

// InterviewConfig tunes guided-interview sessions.
type InterviewConfig struct {
	MaxInteractions int    `yaml:"max_interactions" koanf:"max_interactions"`
	TimeoutMinutes  int    `yaml:"timeout_minutes" koanf:"timeout_minutes"`
	SweepMinutes    int    `yaml:"sweep_minutes" koanf:"sweep_minutes"`
	TriggerPhrase   string `yaml:"trigger_phrase" koanf:"trigger_phrase"`
}

// ServerConfig holds the HTTP API listen settings.
type ServerConfig struct {
	Host string `yaml:"host" koanf:"host"`
	Port int    `yaml:"port" koanf:"port"`
}

// Config is the top-level algomentor configuration, corresponding to
// .algomentor.yml.
type Config struct {
	Completion CompletionConfig `yaml:"completion" koanf:"completion"`
	Embedding  EmbeddingConfig  `yaml:"embedding" koanf:"embedding"`
	Retrieval  RetrievalConfig  `yaml:"retrieval" koanf:"retrieval"`
	Interview  InterviewConfig  `yaml:"interview" koanf:"interview"`
	Server     ServerConfig     `yaml:"server" koanf:"server"`

	CorpusPath string `yaml:"corpus_path" koanf:"corpus_path"`
	IndexPath  string `yaml:"index_path" koanf:"index_path"`
	CachePath  string `yaml:"cache_path" koanf:"cache_path"`
}
