// Package mcp exposes the mentor's operations as MCP tools over stdio so
// coding agents can call them directly.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"algomentor/internal/pipeline"
	"algomentor/internal/retriever"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server exposing analysis and retrieval tools.
type Server struct {
	pipe      *pipeline.Orchestrator
	retriever *retriever.Retriever
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(pipe *pipeline.Orchestrator, ret *retriever.Retriever) *Server {
	s := &Server{
		pipe:      pipe,
		retriever: ret,
	}

	s.mcp = server.NewMCPServer(
		"algomentor",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(analyzeProblemTool, s.handleAnalyzeProblem)
	s.mcp.AddTool(searchSimilarTool, s.handleSearchSimilar)
	s.mcp.AddTool(evaluateCodeTool, s.handleEvaluateCode)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
