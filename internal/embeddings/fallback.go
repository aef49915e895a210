package embeddings

import (
	"context"
	"log"
	"sync"
)

// FallbackEmbedder wraps a primary and a secondary backend. When the primary
// fails once, the embedder switches to the secondary for the remainder of the
// process lifetime. The switch is one-way: a transient primary failure
// permanently routes traffic to the fallback until restart.
type FallbackEmbedder struct {
	primary   Embedder
	secondary Embedder

	mu       sync.Mutex
	switched bool
}

// NewFallbackEmbedder creates a fallback embedder. Both backends must produce
// vectors of the same dimension or retrieval against an existing index would
// silently break.
func NewFallbackEmbedder(primary, secondary Embedder) *FallbackEmbedder {
	return &FallbackEmbedder{primary: primary, secondary: secondary}
}

func (f *FallbackEmbedder) Name() string {
	return f.active().Name()
}

func (f *FallbackEmbedder) Dimensions() int {
	return f.primary.Dimensions()
}

func (f *FallbackEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	backend := f.active()
	results, err := backend.Embed(ctx, texts)
	if err == nil {
		return results, nil
	}
	if backend != f.primary || f.secondary == nil {
		return nil, err
	}

	f.mu.Lock()
	if !f.switched {
		f.switched = true
		log.Printf("embeddings: primary backend %s failed (%v), switching to %s for the rest of this process", f.primary.Name(), err, f.secondary.Name())
	}
	f.mu.Unlock()

	return f.secondary.Embed(ctx, texts)
}

// Switched reports whether the one-way fallback has been taken.
func (f *FallbackEmbedder) Switched() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.switched
}

func (f *FallbackEmbedder) active() Embedder {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.switched && f.secondary != nil {
		return f.secondary
	}
	return f.primary
}
