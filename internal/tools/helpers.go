// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tools exposes MemoraBot's storage and editing operations as
// MCP tools: one struct per tool with a Definition for registration and
// a Handle for calls. Handlers validate parameters, call the engine or
// store, and render results (diffs included) as markdown text.
package tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/petar-djukic/memorabot/internal/history"
	"github.com/petar-djukic/memorabot/pkg/types"
)

// toolError renders an engine or store error as an MCP error result.
// Typed errors already carry their hints (closest similar lines, marker
// positions) in the message, which the model sees verbatim.
func toolError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

// renderEdit formats a successful edit result: summary first, then the
// diff and any context excerpt in fenced blocks.
func renderEdit(result *types.EditResult) string {
	var b strings.Builder
	b.WriteString(result.Summary)
	if result.Diff != "" {
		b.WriteString("\n\n```diff\n")
		b.WriteString(result.Diff)
		b.WriteString("```")
	}
	if result.Context != "" {
		b.WriteString("\n\nContext:\n```\n")
		b.WriteString(result.Context)
		b.WriteString("```")
	}
	return b.String()
}

// record writes an edit to the history log when one is configured.
// History failures are deliberately not surfaced to the model: the edit
// itself already succeeded.
func record(log *history.Log, operation, bucket, filename string, result *types.EditResult) {
	if log == nil || result == nil {
		return
	}
	_ = log.Record(operation, bucket, filename, result.Summary, result.Diff)
}

// intArg extracts an integer argument, returning defaultVal when the
// key is missing or not a number (JSON numbers arrive as float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// requireString fetches a required string parameter, returning an MCP
// error result when it is missing or blank.
func requireString(req mcp.CallToolRequest, key string) (string, *mcp.CallToolResult) {
	v := req.GetString(key, "")
	if strings.TrimSpace(v) == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("'%s' is required", key))
	}
	return v, nil
}
