package mcp

import "github.com/mark3labs/mcp-go/mcp"

// analyzeProblemTool defines the analyze_problem MCP tool.
var analyzeProblemTool = mcp.NewTool("analyze_problem",
	mcp.WithDescription("Analyze an algorithmic problem: approaches, complexity, code, edge cases, and related problems from the reference corpus."),
	mcp.WithString("problem",
		mcp.Required(),
		mcp.Description("The problem statement to analyze"),
	),
	mcp.WithString("mode",
		mcp.Description("Analysis depth (default detailed)"),
		mcp.Enum("quick", "detailed"),
	),
	mcp.WithString("session_id",
		mcp.Description("Continues an interview session; interview responses show the id. The problem text is then treated as the candidate's reply."),
	),
)

// searchSimilarTool defines the search_similar MCP tool.
var searchSimilarTool = mcp.NewTool("search_similar",
	mcp.WithDescription("Find reference problems similar to a query, with difficulty, topics, and approaches."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language description of the problem"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 3)"),
	),
)

// evaluateCodeTool defines the evaluate_code MCP tool.
var evaluateCodeTool = mcp.NewTool("evaluate_code",
	mcp.WithDescription("Score a candidate solution against a fixed interview rubric: correctness, efficiency, code quality, edge cases, readability."),
	mcp.WithString("problem",
		mcp.Required(),
		mcp.Description("The problem the code is solving"),
	),
	mcp.WithString("code",
		mcp.Required(),
		mcp.Description("The candidate's solution code"),
	),
)
