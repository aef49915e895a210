package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"algomentor/internal/pipeline"
	"algomentor/internal/retriever"
)

// handleAnalyzeProblem runs the full analysis pipeline for a problem.
func (s *Server) handleAnalyzeProblem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	problem, err := request.RequireString("problem")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: problem"), nil
	}

	res, err := s.pipe.Analyze(ctx, problem, pipeline.Options{
		Mode:      request.GetString("mode", ""),
		SessionID: request.GetString("session_id", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatResult(res)), nil
}

// handleSearchSimilar retrieves corpus problems similar to the query.
func (s *Server) handleSearchSimilar(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 3)
	if limit <= 0 {
		limit = 3
	}

	contextText, sources := s.retriever.Retrieve(ctx, query, limit, retriever.FormatFull)
	if len(sources) == 0 {
		return mcp.NewToolResultText("No similar problems found. The corpus may not be indexed yet; run `algomentor index` first."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d similar problem(s):\n\n", len(sources))
	for i, src := range sources {
		fmt.Fprintf(&sb, "%d. %s [%s] (similarity %.1f%%, topics: %s)\n",
			i+1, src.Title, src.Difficulty, src.Score*100, strings.Join(src.Tags, ", "))
	}
	sb.WriteString("\n")
	sb.WriteString(contextText)

	return mcp.NewToolResultText(sb.String()), nil
}

// handleEvaluateCode scores candidate code against the rubric.
func (s *Server) handleEvaluateCode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	problem, err := request.RequireString("problem")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: problem"), nil
	}
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: code"), nil
	}

	res, err := s.pipe.EvaluateCode(ctx, problem, code)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	return mcp.NewToolResultText(formatEvaluation(res)), nil
}

// formatResult renders an analysis result as readable text for agent
// consumption. Interview guidance passes through with its phase tag.
func formatResult(res *pipeline.Result) string {
	if res.Guidance != nil {
		// The session id is the only handle for advancing the interview;
		// agents pass it back as session_id on the next call.
		g := res.Guidance
		return fmt.Sprintf("[interview session %s, phase %s, turn %d/%d]\n\n%s",
			g.SessionID, g.Phase, g.Interactions, g.MaxInteractions, g.Text)
	}

	a := res.Analysis
	var sb strings.Builder

	section := func(title, body string) {
		if body != "" {
			fmt.Fprintf(&sb, "## %s\n%s\n\n", title, body)
		}
	}
	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&sb, "## %s\n", title)
		for _, item := range items {
			fmt.Fprintf(&sb, "- %s\n", item)
		}
		sb.WriteString("\n")
	}

	section("Problem Understanding", a.Understanding)
	section("Pattern", a.Pattern)
	section("Brute Force", a.BruteForce)
	section("Optimized Approach", a.Optimized)
	section("Time Complexity", a.TimeComplexity)
	section("Space Complexity", a.SpaceComplexity)
	if a.Code != "" {
		fmt.Fprintf(&sb, "## Code\n```\n%s\n```\n\n", a.Code)
	}
	list("Edge Cases", a.EdgeCases)
	list("Follow-ups", a.FollowUps)
	list("Common Mistakes", a.CommonMistakes)
	list("Variations", a.Variations)

	if len(res.Sources) > 0 {
		sb.WriteString("## Similar Problems\n")
		for _, src := range res.Sources {
			fmt.Fprintf(&sb, "- %s [%s] (similarity %.1f%%)\n", src.Title, src.Difficulty, src.Score*100)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// formatEvaluation renders a rubric record as readable text.
func formatEvaluation(res *pipeline.EvaluationResult) string {
	ev := res.Evaluation
	var sb strings.Builder

	fmt.Fprintf(&sb, "Overall score: %.0f/100\n\n", ev.OverallScore)

	criterion := func(name string, score float64, feedback string) {
		fmt.Fprintf(&sb, "- %s: %.0f/10. %s\n", name, score, feedback)
	}
	criterion("Correctness", ev.Criteria.Correctness.Score, ev.Criteria.Correctness.Feedback)
	criterion("Efficiency", ev.Criteria.Efficiency.Score, ev.Criteria.Efficiency.Feedback)
	criterion("Code quality", ev.Criteria.CodeQuality.Score, ev.Criteria.CodeQuality.Feedback)
	criterion("Edge cases", ev.Criteria.EdgeCaseHandling.Score, ev.Criteria.EdgeCaseHandling.Feedback)
	criterion("Readability", ev.Criteria.Readability.Score, ev.Criteria.Readability.Feedback)

	if len(ev.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for _, s := range ev.Suggestions {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
	}
	if ev.Hint != "" {
		fmt.Fprintf(&sb, "\nHint: %s\n", ev.Hint)
	}
	if ev.Raw != "" {
		fmt.Fprintf(&sb, "\nRaw model reply (could not be parsed):\n%s\n", ev.Raw)
	}

	return strings.TrimRight(sb.String(), "\n")
}
