package retriever

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"algomentor/internal/corpus"
	"algomentor/internal/vectorindex"
)

// stubEmbedder returns a fixed vector for every text, or an error.
type stubEmbedder struct {
	vec []float32
	err error
}

func (s *stubEmbedder) Name() string    { return "stub" }
func (s *stubEmbedder) Dimensions() int { return len(s.vec) }

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = s.vec
	}
	return out, nil
}

func buildStore(t *testing.T) *vectorindex.Store {
	t.Helper()
	store := vectorindex.NewStore(4, "stub")
	docs := []corpus.Document{
		{ID: 1, Title: "Two Sum", Difficulty: corpus.DifficultyEasy, Tags: []string{"array", "hashmap"},
			Problem: "Find two numbers that add up to a target.", Approach: "Store complements in a hash map while scanning."},
		{ID: 2, Title: "Merge Intervals", Difficulty: corpus.DifficultyMedium, Tags: []string{"intervals"},
			Problem: "Merge overlapping intervals.", Approach: "Sort by start and sweep, merging as you go."},
		{ID: 3, Title: "Word Ladder", Difficulty: corpus.DifficultyHard, Tags: []string{"bfs"},
			Problem: "Shortest transformation sequence.", Approach: "BFS over one-letter neighbors."},
	}
	vecs := [][]float32{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	}
	for i := range docs {
		if err := store.Add(docs[i], vecs[i]); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	return store
}

func TestRetrieveFiltersByThreshold(t *testing.T) {
	store := buildStore(t)
	// Query aligned mostly with doc 1, slightly with doc 2.
	emb := &stubEmbedder{vec: []float32{0.95, 0.3, 0, 0}}

	r := New(store, emb, 0.9, 0)
	_, sources := r.Retrieve(context.Background(), "sum of two numbers", 3, FormatMinimal)
	if len(sources) != 1 {
		t.Fatalf("expected 1 source above 0.9, got %d", len(sources))
	}
	if sources[0].Title != "Two Sum" {
		t.Errorf("top source = %q, want Two Sum", sources[0].Title)
	}

	// Lowering the threshold can only add results.
	loose := New(store, emb, 0.01, 0)
	_, more := loose.Retrieve(context.Background(), "sum of two numbers", 3, FormatMinimal)
	if len(more) < len(sources) {
		t.Errorf("lower threshold returned fewer results: %d < %d", len(more), len(sources))
	}
	for _, s := range more {
		if s.Score < 0.01 {
			t.Errorf("source %q below threshold: %f", s.Title, s.Score)
		}
	}
}

func TestRetrieveZeroThresholdIsHonored(t *testing.T) {
	store := buildStore(t)
	// Aligned with doc 1, slightly with doc 2, orthogonal to doc 3.
	emb := &stubEmbedder{vec: []float32{0.95, 0.3, 0, 0}}

	r := New(store, emb, 0.1, 0)
	_, sources := r.Retrieve(context.Background(), "q", 3, FormatMinimal)
	if len(sources) != 2 {
		t.Fatalf("expected 2 sources above 0.1, got %d", len(sources))
	}

	// Zero is a real floor, not a request for the default: the orthogonal
	// document scores exactly 0 and must now be kept.
	zero := New(store, emb, 0.0, 0)
	_, all := zero.Retrieve(context.Background(), "q", 3, FormatMinimal)
	if len(all) != 3 {
		t.Fatalf("threshold 0.0 returned %d sources, want all 3", len(all))
	}
	if len(all) < len(sources) {
		t.Errorf("lowering threshold removed results: %d -> %d", len(sources), len(all))
	}
}

func TestRetrieveHintsFormatNeverLeaksApproach(t *testing.T) {
	store := buildStore(t)
	emb := &stubEmbedder{vec: []float32{1, 1, 1, 0}}

	r := New(store, emb, 0.1, 0)
	contextText, sources := r.Retrieve(context.Background(), "anything", 3, FormatHints)
	if len(sources) == 0 {
		t.Fatal("expected sources")
	}

	for _, fragment := range []string{"hash map", "Sort by start", "BFS over"} {
		if strings.Contains(contextText, fragment) {
			t.Errorf("hints context leaked approach text %q:\n%s", fragment, contextText)
		}
	}
	if !strings.Contains(contextText, "Two Sum") || !strings.Contains(contextText, "hashmap") {
		t.Errorf("hints context missing title or tags:\n%s", contextText)
	}
}

func TestRetrieveFullFormatTruncates(t *testing.T) {
	store := vectorindex.NewStore(4, "stub")
	long := strings.Repeat("a", 600)
	doc := corpus.Document{ID: 1, Title: "Long One", Difficulty: corpus.DifficultyEasy,
		Problem: long, Approach: long}
	if err := store.Add(doc, []float32{1, 0, 0, 0}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	emb := &stubEmbedder{vec: []float32{1, 0, 0, 0}}
	r := New(store, emb, 0.1, 500)
	contextText, _ := r.Retrieve(context.Background(), "q", 1, FormatFull)

	if strings.Contains(contextText, strings.Repeat("a", 501)) {
		t.Error("full format did not truncate to chunk size")
	}
	if !strings.Contains(contextText, "...") {
		t.Error("expected truncation marker")
	}
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	// 3-byte runes ensure the byte cap lands mid-rune for a non-multiple cap.
	s := strings.Repeat("世", 200)
	out := truncate(s, 500)

	if !utf8.ValidString(out) {
		t.Errorf("truncate produced invalid UTF-8: %q", out[:20])
	}
	if !strings.HasSuffix(out, "...") {
		t.Error("expected truncation marker")
	}
	if len(out) > 503 {
		t.Errorf("truncate returned %d bytes, want at most 503", len(out))
	}
}

func TestRetrieveFailsSoftOnEmbeddingError(t *testing.T) {
	store := buildStore(t)
	emb := &stubEmbedder{err: errors.New("backend down")}

	r := New(store, emb, 0.5, 0)
	contextText, sources := r.Retrieve(context.Background(), "q", 3, FormatFull)
	if contextText != "" || sources != nil {
		t.Errorf("expected empty context and nil sources on embedding failure, got %q, %v", contextText, sources)
	}
}

func TestRetrieveEmptyStore(t *testing.T) {
	store := vectorindex.NewStore(4, "stub")
	emb := &stubEmbedder{vec: []float32{1, 0, 0, 0}}

	r := New(store, emb, 0.5, 0)
	contextText, sources := r.Retrieve(context.Background(), "q", 3, FormatMinimal)
	if contextText != "" || len(sources) != 0 {
		t.Errorf("expected empty result for empty store, got %q, %v", contextText, sources)
	}
}

func TestTwoSumEndToEnd(t *testing.T) {
	store := vectorindex.NewStore(4, "stub")
	doc := corpus.Document{ID: 1, Title: "Two Sum", Tags: []string{"array", "hashmap"},
		Difficulty: corpus.DifficultyEasy, Approach: "hash map"}
	if err := store.Add(doc, []float32{0.2, 0.9, 0.1, 0}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	emb := &stubEmbedder{vec: []float32{0.3, 0.8, 0.2, 0.1}}
	r := New(store, emb, 0.0, 0)
	_, sources := r.Retrieve(context.Background(), "find two numbers that sum to a target", 1, FormatMinimal)
	if len(sources) != 1 {
		t.Fatalf("expected exactly one source, got %d", len(sources))
	}
	if sources[0].Title != "Two Sum" {
		t.Errorf("source = %q, want Two Sum", sources[0].Title)
	}
}

func TestDocumentText(t *testing.T) {
	doc := corpus.Document{
		Title:      "Two Sum",
		Problem:    "Find two numbers.",
		Approach:   "Hash map.",
		Tags:       []string{"array", "hashmap"},
		Difficulty: corpus.DifficultyEasy,
		Complexity: "O(n) time, O(n) space",
	}
	text := DocumentText(doc)

	want := "Title: Two Sum\nProblem: Find two numbers.\nApproach: Hash map.\nTags: array, hashmap\nDifficulty: Easy\nComplexity: O(n) time, O(n) space"
	if text != want {
		t.Errorf("DocumentText:\n%s\nwant:\n%s", text, want)
	}
}

func TestDocumentTextOmitsAbsentFields(t *testing.T) {
	text := DocumentText(corpus.Document{Title: "Bare"})
	if text != "Title: Bare" {
		t.Errorf("DocumentText = %q, want only the title line", text)
	}
}
