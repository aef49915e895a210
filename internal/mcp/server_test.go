package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"algomentor/internal/corpus"
	"algomentor/internal/interview"
	"algomentor/internal/llm"
	"algomentor/internal/pipeline"
	"algomentor/internal/retriever"
	"algomentor/internal/vectorindex"
)

type mockEmbedder struct{}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = []float32{1, 0, 0}
	}
	return result, nil
}
func (m *mockEmbedder) Dimensions() int { return 3 }
func (m *mockEmbedder) Name() string    { return "mock" }

type mockProvider struct{ reply string }

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{Content: m.reply, Model: "mock-model"}, nil
}

func newTestMCPServer(t *testing.T, reply string, docs int) *Server {
	t.Helper()

	store := vectorindex.NewStore(3, "mock")
	titles := []string{"Two Sum", "Three Sum", "Four Sum"}
	for i := 0; i < docs; i++ {
		doc := corpus.Document{ID: i + 1, Title: titles[i], Difficulty: corpus.DifficultyEasy,
			Tags: []string{"array"}, Problem: "p", Approach: "hash map"}
		if err := store.Add(doc, []float32{1, 0, 0}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	ret := retriever.New(store, &mockEmbedder{}, 0.5, 0)
	sessions := interview.NewManager(interview.ManagerOptions{})
	t.Cleanup(sessions.Stop)

	pipe := pipeline.New(store, ret, &mockProvider{reply: reply}, sessions)
	return NewServer(pipe, ret)
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"analyze_problem", analyzeProblemTool, "analyze_problem"},
		{"search_similar", searchSimilarTool, "search_similar"},
		{"evaluate_code", evaluateCodeTool, "evaluate_code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := newTestMCPServer(t, "x", 1)
	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return tc.Text
}

func TestHandleAnalyzeProblem(t *testing.T) {
	srv := newTestMCPServer(t, "## 1. Problem Understanding\nPairs summing to target.\n", 1)
	ctx := context.Background()

	t.Run("basic analysis", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"problem": "find two numbers that sum to a target",
		}

		result, err := srv.handleAnalyzeProblem(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := textContent(t, result)
		if !strings.Contains(text, "Pairs summing to target") {
			t.Errorf("missing understanding section:\n%s", text)
		}
		if !strings.Contains(text, "Similar Problems") {
			t.Errorf("missing sources section:\n%s", text)
		}
	})

	t.Run("missing problem", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleAnalyzeProblem(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing problem")
		}
	})
}

func TestHandleAnalyzeProblemInterviewSession(t *testing.T) {
	srv := newTestMCPServer(t, "What are the input constraints?", 1)
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"problem": "interview mode: find two numbers that sum to a target",
	}
	result, err := srv.handleAnalyzeProblem(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := textContent(t, result)
	if !strings.Contains(text, "[interview session ") || !strings.Contains(text, "phase understanding") {
		t.Fatalf("guidance header missing session id or phase:\n%s", text)
	}

	// The id in the header is the handle for the next turn.
	id := text[strings.Index(text, "session ")+len("session "):]
	id = id[:strings.Index(id, ",")]

	next := mcp.CallToolRequest{}
	next.Params.Arguments = map[string]any{
		"problem":    "a sorted array of integers and a target",
		"session_id": id,
	}
	result, err = srv.handleAnalyzeProblem(ctx, next)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text = textContent(t, result)
	if !strings.Contains(text, "session "+id) {
		t.Errorf("continuation lost the session id:\n%s", text)
	}
	if !strings.Contains(text, "phase approach") {
		t.Errorf("second turn should reach phase approach:\n%s", text)
	}
}

func TestHandleSearchSimilar(t *testing.T) {
	srv := newTestMCPServer(t, "x", 2)
	ctx := context.Background()

	t.Run("basic search", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"query": "sum of pairs",
			"limit": float64(2),
		}

		result, err := srv.handleSearchSimilar(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := textContent(t, result)
		if !strings.Contains(text, "Two Sum") {
			t.Errorf("missing result title:\n%s", text)
		}
	})

	t.Run("empty store", func(t *testing.T) {
		emptySrv := newTestMCPServer(t, "x", 0)
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"query": "anything"}

		result, err := emptySrv.handleSearchSimilar(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatal("empty store is not a tool error")
		}
		if !strings.Contains(textContent(t, result), "No similar problems") {
			t.Error("expected empty-index hint")
		}
	})

	t.Run("missing query", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleSearchSimilar(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing query")
		}
	})
}

func TestHandleEvaluateCode(t *testing.T) {
	reply := `{"overall_score": 70, "criteria": {"correctness": {"score": 7, "feedback": "mostly right"}}, "suggestions": ["add tests"]}`
	srv := newTestMCPServer(t, reply, 1)
	ctx := context.Background()

	t.Run("basic evaluation", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"problem": "two sum",
			"code":    "def solve(): pass",
		}

		result, err := srv.handleEvaluateCode(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := textContent(t, result)
		if !strings.Contains(text, "Overall score: 70/100") {
			t.Errorf("missing overall score:\n%s", text)
		}
		if !strings.Contains(text, "add tests") {
			t.Errorf("missing suggestion:\n%s", text)
		}
	})

	t.Run("missing code", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"problem": "two sum"}

		result, err := srv.handleEvaluateCode(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing code")
		}
	})
}
