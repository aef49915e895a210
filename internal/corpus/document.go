package corpus

import (
	"encoding/json"
	"fmt"
	"os"
)

// Difficulty classifies a reference problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Document is one reference problem in the curated corpus. Documents are
// loaded in bulk at index-build time and immutable afterwards.
type Document struct {
	ID         int        `json:"id"`
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
	Tags       []string   `json:"tags"`
	Problem    string     `json:"problem"`
	Approach   string     `json:"approach"`
	Complexity string     `json:"complexity"`
	Companies  []string   `json:"companies,omitempty"`
	Hints      []string   `json:"hints,omitempty"`
}

// Load reads the corpus from a JSON file containing an array of documents.
func Load(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing corpus file %s: %w", path, err)
	}

	if err := validate(docs); err != nil {
		return nil, fmt.Errorf("invalid corpus %s: %w", path, err)
	}
	return docs, nil
}

// validate checks that every document has a title and a unique ID. IDs address
// positions in the vector index, so duplicates would corrupt retrieval.
func validate(docs []Document) error {
	seen := make(map[int]string, len(docs))
	for _, d := range docs {
		if d.Title == "" {
			return fmt.Errorf("document %d has no title", d.ID)
		}
		if prev, ok := seen[d.ID]; ok {
			return fmt.Errorf("duplicate document id %d (%q and %q)", d.ID, prev, d.Title)
		}
		seen[d.ID] = d.Title
	}
	return nil
}
