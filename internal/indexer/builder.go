// Package indexer builds the vector snapshot from the reference corpus:
// load -> embed -> store -> persist.
package indexer

import (
	"context"
	"fmt"
	"time"

	"algomentor/internal/corpus"
	"algomentor/internal/embeddings"
	"algomentor/internal/retriever"
	"algomentor/internal/vectorindex"
)

// ProgressFunc is called after each document is embedded and stored.
type ProgressFunc func(done, total int, title string)

const defaultBatchSize = 16

// Builder embeds corpus documents and assembles the searchable store.
type Builder struct {
	embedder   embeddings.Embedder
	dimension  int
	batchSize  int
	onProgress ProgressFunc
}

// Result summarizes one index build.
type Result struct {
	Documents int
	Duration  time.Duration
}

// NewBuilder creates a Builder. The dimension must match what the embedder
// produces; the store rejects mismatched vectors.
func NewBuilder(embedder embeddings.Embedder, dimension int) *Builder {
	return &Builder{
		embedder:  embedder,
		dimension: dimension,
		batchSize: defaultBatchSize,
	}
}

// SetProgressFunc sets the progress callback.
func (b *Builder) SetProgressFunc(fn ProgressFunc) {
	b.onProgress = fn
}

// Build embeds every document and returns a populated store. Embedding is
// batched; a batch failure aborts the build since a partial index would
// silently narrow retrieval.
func (b *Builder) Build(ctx context.Context, docs []corpus.Document) (*vectorindex.Store, *Result, error) {
	start := time.Now()
	store := vectorindex.NewStore(b.dimension, b.embedder.Name())

	for offset := 0; offset < len(docs); offset += b.batchSize {
		end := offset + b.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[offset:end]

		texts := make([]string, len(batch))
		for i, doc := range batch {
			texts[i] = retriever.DocumentText(doc)
		}

		vecs, err := b.embedder.Embed(ctx, texts)
		if err != nil {
			return nil, nil, fmt.Errorf("embed documents %d-%d: %w", offset, end-1, err)
		}

		for i, doc := range batch {
			if err := store.Add(doc, vecs[i]); err != nil {
				return nil, nil, fmt.Errorf("store %q: %w", doc.Title, err)
			}
			if b.onProgress != nil {
				b.onProgress(offset+i+1, len(docs), doc.Title)
			}
		}
	}

	return store, &Result{Documents: store.Count(), Duration: time.Since(start)}, nil
}

// BuildFile loads the corpus from corpusPath, builds the store, and writes
// the snapshot to snapshotPath.
func (b *Builder) BuildFile(ctx context.Context, corpusPath, snapshotPath string) (*Result, error) {
	docs, err := corpus.Load(corpusPath)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}

	store, result, err := b.Build(ctx, docs)
	if err != nil {
		return nil, err
	}

	if err := store.Save(snapshotPath); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return result, nil
}
