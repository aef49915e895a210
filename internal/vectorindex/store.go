package vectorindex

import (
	"fmt"
	"sync"
	"time"

	"algomentor/internal/corpus"
)

// SearchResult pairs a corpus document with its similarity against a query.
// Rank is the 1-based position in the descending-score ordering.
type SearchResult struct {
	Document corpus.Document
	Score    float32
	Rank     int
}

// Store holds the corpus documents alongside their embeddings. The two lists
// are index-aligned: position i of the index always refers to documents[i].
// Reads vastly outnumber writes; writes happen only during an index build.
type Store struct {
	mu        sync.RWMutex
	index     *flatIndex
	raw       [][]float32 // original vectors, kept for snapshots
	documents []corpus.Document
	modelID   string
	createdAt time.Time
}

// NewStore creates an empty store for vectors of the given dimension,
// embedded by the named model.
func NewStore(dim int, modelID string) *Store {
	return &Store{
		index:     newFlatIndex(dim),
		modelID:   modelID,
		createdAt: time.Now().UTC(),
	}
}

// Add appends a document and its embedding. The vector is normalized inside
// the index; the raw vector is retained so snapshots preserve the original
// values.
func (s *Store) Add(doc corpus.Document, vec []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(vec) != s.index.dim {
		return fmt.Errorf("vector for %q has dimension %d, index expects %d", doc.Title, len(vec), s.index.dim)
	}

	rawCopy := make([]float32, len(vec))
	copy(rawCopy, vec)
	s.raw = append(s.raw, rawCopy)
	s.index.add(vec)
	s.documents = append(s.documents, doc)
	return nil
}

// Search returns the k documents most similar to the (normalized) query
// vector, descending by score. An empty store yields an empty result.
func (s *Store) Search(query []float32, k int) []SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := s.index.search(query, k)
	results := make([]SearchResult, len(hits))
	for i, h := range hits {
		results[i] = SearchResult{
			Document: s.documents[h.Label],
			Score:    h.Score,
			Rank:     i + 1,
		}
	}
	return results
}

// Count returns the number of indexed documents.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.count()
}

// Dimension returns the embedding dimension the store was built for.
func (s *Store) Dimension() int {
	return s.index.dim
}

// ModelID returns the identifier of the embedding model used at build time.
func (s *Store) ModelID() string {
	return s.modelID
}
