// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/petar-djukic/memorabot/internal/server"
)

// newServeCmd creates the "serve" command.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long:  "Serve runs memorabot as an MCP server over stdin/stdout, for use from an MCP client such as an AI assistant.",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := serverConfig()

	s, cleanup, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Startup notice on stderr; stdout belongs to the MCP transport.
	fmt.Fprintf(os.Stderr, "memorabot %s serving MCP on stdio (data: %s)\n", version, cfg.DataDir)

	return mcpserver.ServeStdio(s)
}
