package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "algomentor/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing problem analysis, similarity search, and code evaluation tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		pipe, ret, err := buildComponents(cfg)
		if err != nil {
			return err
		}
		defer pipe.Sessions().Stop()

		mcpserver.Version = Version

		status := pipe.GetStatus()
		fmt.Fprintf(os.Stderr, "algomentor MCP server started on stdio (documents=%d)\n", status.DocumentCount)

		srv := mcpserver.NewServer(pipe, ret)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
