package vectorindex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"algomentor/internal/corpus"
)

// snapshot is the on-disk representation of a Store: the raw vectors, the
// parallel document list, and enough metadata to validate a reload.
type snapshot struct {
	Documents  []corpus.Document `json:"documents"`
	Embeddings [][]float32       `json:"embeddings"`
	Metadata   snapshotMetadata  `json:"metadata"`
}

type snapshotMetadata struct {
	Dimension int       `json:"dimension"`
	ModelID   string    `json:"model_id"`
	CreatedAt time.Time `json:"created_at"`
	Count     int       `json:"count"`
}

// Save writes the store to a single JSON snapshot file, creating parent
// directories as needed.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	snap := snapshot{
		Documents:  s.documents,
		Embeddings: s.raw,
		Metadata: snapshotMetadata{
			Dimension: s.index.dim,
			ModelID:   s.modelID,
			CreatedAt: s.createdAt,
			Count:     len(s.documents),
		},
	}
	s.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot to %s: %w", path, err)
	}
	return nil
}

// LoadStore reconstructs a store from a snapshot file, re-normalizing and
// re-adding every vector. wantDim must match the snapshot's dimension; a
// mismatch means the configured embedding model changed since the index was
// built and the caller should trigger a rebuild.
func LoadStore(path string, wantDim int) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}

	if snap.Metadata.Dimension != wantDim {
		return nil, fmt.Errorf("snapshot dimension %d does not match configured dimension %d", snap.Metadata.Dimension, wantDim)
	}
	if len(snap.Documents) != len(snap.Embeddings) {
		return nil, fmt.Errorf("snapshot is corrupt: %d documents but %d embeddings", len(snap.Documents), len(snap.Embeddings))
	}

	store := NewStore(snap.Metadata.Dimension, snap.Metadata.ModelID)
	store.createdAt = snap.Metadata.CreatedAt
	for i, doc := range snap.Documents {
		if err := store.Add(doc, snap.Embeddings[i]); err != nil {
			return nil, fmt.Errorf("restoring document %q: %w", doc.Title, err)
		}
	}
	return store, nil
}
