// Package retriever turns a free-text query into a rendered context block of
// similar reference problems, ready for prompt injection.
package retriever

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"algomentor/internal/corpus"
	"algomentor/internal/embeddings"
	"algomentor/internal/vectorindex"
)

// Format selects how retrieved results are rendered into context text.
type Format string

const (
	// FormatMinimal is one line per result: title, difficulty, approach cut.
	FormatMinimal Format = "minimal"
	// FormatHints is title and tags only. It must never leak approach text:
	// interview prompts are built from this format.
	FormatHints Format = "hints"
	// FormatFull is a delimited block per result with problem and approach.
	FormatFull Format = "full"
)

const (
	// DefaultThreshold is the similarity floor below which results are
	// dropped. The configured value is the source of truth; do not assume
	// this literal elsewhere.
	DefaultThreshold = 0.7

	// DefaultChunkSize caps problem/approach text in full-format rendering.
	DefaultChunkSize = 500

	// minimalApproachCut caps approach text in minimal-format rendering.
	minimalApproachCut = 200

	blockDelimiter = "---"
)

// Source is the caller-facing record of one retrieved document, for UI
// display alongside the analysis.
type Source struct {
	Title      string            `json:"title"`
	Score      float32           `json:"score"`
	Difficulty corpus.Difficulty `json:"difficulty"`
	Tags       []string          `json:"tags"`
}

// Retriever wraps the vector index with query embedding, threshold filtering,
// and context rendering.
type Retriever struct {
	store     *vectorindex.Store
	embedder  embeddings.Embedder
	threshold float32
	chunkSize int
}

// New creates a retriever. A negative threshold and chunkSize <= 0 fall back
// to defaults. Zero is a valid floor: cosine scores can be negative, so a
// threshold of 0.0 still filters.
func New(store *vectorindex.Store, embedder embeddings.Embedder, threshold float64, chunkSize int) *Retriever {
	if threshold < 0 {
		threshold = DefaultThreshold
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Retriever{
		store:     store,
		embedder:  embedder,
		threshold: float32(threshold),
		chunkSize: chunkSize,
	}
}

// DocumentText is the canonical projection of a document for embedding at
// index-build time. Queries are embedded as raw user text, never projected.
func DocumentText(doc corpus.Document) string {
	var parts []string
	if doc.Title != "" {
		parts = append(parts, "Title: "+doc.Title)
	}
	if doc.Problem != "" {
		parts = append(parts, "Problem: "+doc.Problem)
	}
	if doc.Approach != "" {
		parts = append(parts, "Approach: "+doc.Approach)
	}
	if len(doc.Tags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(doc.Tags, ", "))
	}
	if doc.Difficulty != "" {
		parts = append(parts, "Difficulty: "+string(doc.Difficulty))
	}
	if doc.Complexity != "" {
		parts = append(parts, "Complexity: "+doc.Complexity)
	}
	return strings.Join(parts, "\n")
}

// Retrieve embeds the query, finds the topK nearest documents, drops any
// below the similarity threshold, and renders the survivors per format.
// Retrieval fails soft: on any embedding or index error it returns empty
// context and no sources, because a missing context block must never block
// problem analysis.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int, format Format) (string, []Source) {
	queryVec, err := embeddings.EmbedOne(ctx, r.embedder, query)
	if err != nil {
		log.Printf("retriever: embedding query failed, continuing without context: %v", err)
		return "", nil
	}
	if len(queryVec) == 0 {
		return "", nil
	}

	results := r.store.Search(vectorindex.Normalize(queryVec), topK)

	var kept []vectorindex.SearchResult
	for _, res := range results {
		if res.Score >= r.threshold {
			kept = append(kept, res)
		}
	}
	if len(kept) == 0 {
		return "", nil
	}

	sources := make([]Source, len(kept))
	for i, res := range kept {
		sources[i] = Source{
			Title:      res.Document.Title,
			Score:      res.Score,
			Difficulty: res.Document.Difficulty,
			Tags:       res.Document.Tags,
		}
	}

	return r.render(kept, format), sources
}

func (r *Retriever) render(results []vectorindex.SearchResult, format Format) string {
	var b strings.Builder
	switch format {
	case FormatHints:
		// Title and tags only. Approach text must not reach interview
		// prompts, or the mentor leaks the strategy it is supposed to
		// withhold.
		for i, res := range results {
			fmt.Fprintf(&b, "%d. %s (topics: %s)\n", i+1, res.Document.Title, strings.Join(res.Document.Tags, ", "))
		}

	case FormatFull:
		for i, res := range results {
			if i > 0 {
				b.WriteString(blockDelimiter + "\n")
			}
			doc := res.Document
			fmt.Fprintf(&b, "Title: %s [%s]\n", doc.Title, doc.Difficulty)
			if len(doc.Tags) > 0 {
				fmt.Fprintf(&b, "Tags: %s\n", strings.Join(doc.Tags, ", "))
			}
			fmt.Fprintf(&b, "Problem: %s\n", truncate(doc.Problem, r.chunkSize))
			fmt.Fprintf(&b, "Approach: %s\n", truncate(doc.Approach, r.chunkSize))
		}

	default: // FormatMinimal
		for i, res := range results {
			doc := res.Document
			fmt.Fprintf(&b, "%d. %s [%s]: %s\n", i+1, doc.Title, doc.Difficulty, truncate(doc.Approach, minimalApproachCut))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// truncate cuts s to at most max bytes without splitting a UTF-8 rune, so a
// multi-byte character at the boundary never leaks invalid bytes into a
// prompt.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + "..."
}
