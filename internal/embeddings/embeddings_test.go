package embeddings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"algomentor/internal/db"
)

// MockEmbedder is a test embedder that records calls and returns canned vectors.
type MockEmbedder struct {
	mu      sync.Mutex
	Calls   [][]string
	Err     error
	Dim     int
	ModName string
}

func NewMockEmbedder(name string, dim int) *MockEmbedder {
	return &MockEmbedder{ModName: name, Dim: dim}
}

func (m *MockEmbedder) Name() string    { return m.ModName }
func (m *MockEmbedder) Dimensions() int { return m.Dim }

func (m *MockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, texts)
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, m.Dim)
		// Deterministic per-text vector so cache hits are observable.
		for j := range vec {
			vec[j] = float32(len(text)+j) / 10
		}
		out[i] = vec
	}
	return out, nil
}

func (m *MockEmbedder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func TestEmbedOne(t *testing.T) {
	mock := NewMockEmbedder("mock", 4)
	vec, err := EmbedOne(context.Background(), mock, "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 4 {
		t.Errorf("expected 4 dimensions, got %d", len(vec))
	}
}

func TestOllamaEmbedderBatchesInOneRequest(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		vecs := make([][]float32, len(req.Input))
		for i := range vecs {
			vecs[i] = []float32{float32(i), 0, 0}
		}
		json.NewEncoder(w).Encode(map[string]any{"embeddings": vecs})
	}))
	defer srv.Close()

	emb := NewOllamaEmbedder("all-minilm", 3, srv.URL)
	vecs, err := emb.Embed(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != 1 {
		t.Errorf("expected 1 HTTP request for the batch, got %d", requests)
	}
	if len(vecs) != 3 {
		t.Fatalf("expected 3 vectors, got %d", len(vecs))
	}
	if vecs[1][0] != 1 {
		t.Errorf("vectors out of input order: %v", vecs[1])
	}
}

func TestOllamaEmbedderRejectsDimensionMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"embeddings": [][]float32{{1, 2}}})
	}))
	defer srv.Close()

	emb := NewOllamaEmbedder("all-minilm", 3, srv.URL)
	if _, err := emb.Embed(context.Background(), []string{"a"}); err == nil {
		t.Error("expected error for wrong vector dimension")
	}
}

func TestOllamaEmbedderAtomicBatchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// One vector short for the batch.
		json.NewEncoder(w).Encode(map[string]any{"embeddings": [][]float32{{1, 0, 0}}})
	}))
	defer srv.Close()

	emb := NewOllamaEmbedder("all-minilm", 3, srv.URL)
	vecs, err := emb.Embed(context.Background(), []string{"a", "b"})
	if err == nil {
		t.Error("expected error for short embedding batch")
	}
	if vecs != nil {
		t.Errorf("partial batch must not be returned, got %v", vecs)
	}
}

func TestFallbackPrefersPrimary(t *testing.T) {
	primary := NewMockEmbedder("primary", 4)
	secondary := NewMockEmbedder("secondary", 4)
	fb := NewFallbackEmbedder(primary, secondary)

	if _, err := fb.Embed(context.Background(), []string{"a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if primary.CallCount() != 1 || secondary.CallCount() != 0 {
		t.Errorf("expected primary only, got primary=%d secondary=%d", primary.CallCount(), secondary.CallCount())
	}
	if fb.Switched() {
		t.Error("fallback should not have switched")
	}
}

func TestFallbackSwitchIsSticky(t *testing.T) {
	primary := NewMockEmbedder("primary", 4)
	primary.Err = errors.New("connection refused")
	secondary := NewMockEmbedder("secondary", 4)
	fb := NewFallbackEmbedder(primary, secondary)

	if _, err := fb.Embed(context.Background(), []string{"a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fb.Switched() {
		t.Fatal("expected fallback switch after primary failure")
	}
	if fb.Name() != "secondary" {
		t.Errorf("active name = %q, want secondary", fb.Name())
	}

	// Primary recovers, but the switch is one-way for the process lifetime.
	primary.Err = nil
	if _, err := fb.Embed(context.Background(), []string{"b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if primary.CallCount() != 1 {
		t.Errorf("primary called %d times, want 1 (sticky switch)", primary.CallCount())
	}
	if secondary.CallCount() != 2 {
		t.Errorf("secondary called %d times, want 2", secondary.CallCount())
	}
}

func TestFallbackErrorWithoutSecondary(t *testing.T) {
	primary := NewMockEmbedder("primary", 4)
	primary.Err = errors.New("down")
	fb := NewFallbackEmbedder(primary, nil)

	if _, err := fb.Embed(context.Background(), []string{"a"}); err == nil {
		t.Error("expected error when primary fails and no secondary exists")
	}
}

func TestCachedEmbedderMemoizes(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	mock := NewMockEmbedder("mock", 4)
	cached := NewCachedEmbedder(mock, database)
	ctx := context.Background()

	first, err := cached.Embed(ctx, []string{"two sum", "merge sort"})
	if err != nil {
		t.Fatalf("first embed: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 backend call, got %d", mock.CallCount())
	}

	second, err := cached.Embed(ctx, []string{"two sum", "merge sort"})
	if err != nil {
		t.Fatalf("second embed: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected no extra backend calls on cache hit, got %d", mock.CallCount())
	}

	for i := range first {
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Fatalf("cached vector %d differs at %d: %f vs %f", i, j, first[i][j], second[i][j])
			}
		}
	}
}

func TestCachedEmbedderPartialMiss(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	mock := NewMockEmbedder("mock", 4)
	cached := NewCachedEmbedder(mock, database)
	ctx := context.Background()

	if _, err := cached.Embed(ctx, []string{"two sum"}); err != nil {
		t.Fatalf("seed embed: %v", err)
	}

	if _, err := cached.Embed(ctx, []string{"two sum", "new text"}); err != nil {
		t.Fatalf("mixed embed: %v", err)
	}

	// Second call should only have embedded the missing text.
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 backend calls, got %d", mock.CallCount())
	}
	last := mock.Calls[len(mock.Calls)-1]
	if len(last) != 1 || last[0] != "new text" {
		t.Errorf("expected backend to receive only the cache miss, got %v", last)
	}
}
