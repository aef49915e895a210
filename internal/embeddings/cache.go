package embeddings

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"

	"algomentor/internal/db"
)

// CachedEmbedder is a read-through memoization layer keyed by the exact text
// and model name. Cache failures are never fatal: a broken cache degrades to
// embedding directly through the inner backend.
type CachedEmbedder struct {
	inner Embedder
	db    *db.DB
}

// NewCachedEmbedder wraps an embedder with the SQLite-backed cache.
func NewCachedEmbedder(inner Embedder, database *db.DB) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, db: database}
}

func (c *CachedEmbedder) Name() string {
	return c.inner.Name()
}

func (c *CachedEmbedder) Dimensions() int {
	return c.inner.Dimensions()
}

func (c *CachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	results := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int

	for i, text := range texts {
		if vec, ok := c.lookup(ctx, text); ok {
			results[i] = vec
		} else {
			missing = append(missing, text)
			missingIdx = append(missingIdx, i)
		}
	}

	if len(missing) == 0 {
		return results, nil
	}

	embedded, err := c.inner.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}

	for j, vec := range embedded {
		results[missingIdx[j]] = vec
		c.store(ctx, missing[j], vec)
	}

	return results, nil
}

func (c *CachedEmbedder) lookup(ctx context.Context, text string) ([]float32, bool) {
	var raw string
	err := c.db.QueryRowContext(ctx,
		`SELECT vector FROM embedding_cache WHERE text_hash = ? AND model = ?`,
		hashText(text), c.inner.Name(),
	).Scan(&raw)
	if err != nil {
		return nil, false
	}

	var vec []float32
	if err := json.Unmarshal([]byte(raw), &vec); err != nil {
		return nil, false
	}
	if len(vec) != c.inner.Dimensions() {
		// Stale entry from a different model configuration.
		return nil, false
	}
	return vec, true
}

func (c *CachedEmbedder) store(ctx context.Context, text string, vec []float32) {
	raw, err := json.Marshal(vec)
	if err != nil {
		return
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO embedding_cache (text_hash, model, vector) VALUES (?, ?, ?)`,
		hashText(text), c.inner.Name(), string(raw),
	)
	if err != nil {
		log.Printf("embeddings: cache write failed: %v", err)
	}
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
