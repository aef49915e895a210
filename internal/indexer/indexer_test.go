package indexer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"algomentor/internal/corpus"
	"algomentor/internal/vectorindex"
)

// countingEmbedder returns a distinct vector per call and records batch sizes.
type countingEmbedder struct {
	batches []int
	err     error
	next    float32
}

func (c *countingEmbedder) Name() string    { return "counting" }
func (c *countingEmbedder) Dimensions() int { return 3 }

func (c *countingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	c.batches = append(c.batches, len(texts))
	if c.err != nil {
		return nil, c.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		c.next++
		out[i] = []float32{c.next, 1, 0}
	}
	return out, nil
}

func sampleDocs(n int) []corpus.Document {
	docs := make([]corpus.Document, n)
	for i := range docs {
		docs[i] = corpus.Document{
			ID:         i + 1,
			Title:      string(rune('A' + i)),
			Difficulty: corpus.DifficultyEasy,
			Problem:    "problem text",
			Approach:   "approach text",
		}
	}
	return docs
}

func TestBuild(t *testing.T) {
	emb := &countingEmbedder{}
	b := NewBuilder(emb, 3)

	var progress []string
	b.SetProgressFunc(func(done, total int, title string) {
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		progress = append(progress, title)
	})

	store, result, err := b.Build(context.Background(), sampleDocs(3))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if store.Count() != 3 || result.Documents != 3 {
		t.Errorf("count = %d, result = %d, want 3", store.Count(), result.Documents)
	}
	if len(progress) != 3 || progress[0] != "A" || progress[2] != "C" {
		t.Errorf("progress = %v", progress)
	}
}

func TestBuildBatches(t *testing.T) {
	emb := &countingEmbedder{}
	b := NewBuilder(emb, 3)
	b.batchSize = 2

	if _, _, err := b.Build(context.Background(), sampleDocs(5)); err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []int{2, 2, 1}
	if len(emb.batches) != len(want) {
		t.Fatalf("batches = %v, want %v", emb.batches, want)
	}
	for i := range want {
		if emb.batches[i] != want[i] {
			t.Errorf("batch %d = %d, want %d", i, emb.batches[i], want[i])
		}
	}
}

func TestBuildEmbedFailureAborts(t *testing.T) {
	backend := errors.New("backend down")
	b := NewBuilder(&countingEmbedder{err: backend}, 3)

	_, _, err := b.Build(context.Background(), sampleDocs(2))
	if !errors.Is(err, backend) {
		t.Errorf("err = %v, want wrapped backend error", err)
	}
}

func TestBuildFile(t *testing.T) {
	dir := t.TempDir()
	corpusPath := filepath.Join(dir, "corpus.json")
	snapshotPath := filepath.Join(dir, "index.json")

	corpusJSON := `[
		{"id": 1, "title": "Two Sum", "difficulty": "Easy", "tags": ["array"], "problem": "p", "approach": "a"},
		{"id": 2, "title": "Merge Intervals", "difficulty": "Medium", "tags": ["intervals"], "problem": "p", "approach": "a"}
	]`
	if err := os.WriteFile(corpusPath, []byte(corpusJSON), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}

	b := NewBuilder(&countingEmbedder{}, 3)
	result, err := b.BuildFile(context.Background(), corpusPath, snapshotPath)
	if err != nil {
		t.Fatalf("BuildFile: %v", err)
	}
	if result.Documents != 2 {
		t.Errorf("Documents = %d, want 2", result.Documents)
	}

	loaded, err := vectorindex.LoadStore(snapshotPath, 3)
	if err != nil {
		t.Fatalf("LoadStore: %v", err)
	}
	if loaded.Count() != 2 {
		t.Errorf("loaded count = %d, want 2", loaded.Count())
	}
}

func TestBuildFileMissingCorpus(t *testing.T) {
	b := NewBuilder(&countingEmbedder{}, 3)
	if _, err := b.BuildFile(context.Background(), filepath.Join(t.TempDir(), "absent.json"), "out.json"); err == nil {
		t.Fatal("expected error for missing corpus file")
	}
}
