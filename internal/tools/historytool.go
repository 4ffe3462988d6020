// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/petar-djukic/memorabot/internal/history"
)

// EditHistoryTool handles the edit_history MCP tool.
type EditHistoryTool struct {
	log *history.Log
}

func NewEditHistoryTool(log *history.Log) *EditHistoryTool {
	return &EditHistoryTool{log: log}
}

func (t *EditHistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("edit_history",
		mcp.WithDescription(
			"Show recent edits recorded by the mutating tools, newest first. "+
				"Give both bucket and filename to restrict to one file.",
		),
		mcp.WithString("bucket", mcp.Description("Bucket of the file to show history for")),
		mcp.WithString("filename", mcp.Description("File to show history for")),
		mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default 20)")),
	)
}

func (t *EditHistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.log == nil {
		return mcp.NewToolResultError("edit history is disabled"), nil
	}

	bucket := req.GetString("bucket", "")
	filename := req.GetString("filename", "")
	limit := intArg(req, "limit", 0)

	entries, err := t.log.Recent(bucket, filename, limit)
	if err != nil {
		return toolError(err), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("No edits recorded"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d edit(s):\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "- [%s] %s %s/%s: %s\n", e.CreatedAt, e.Operation, e.Bucket, e.Filename, e.Summary)
	}
	return mcp.NewToolResultText(b.String()), nil
}
