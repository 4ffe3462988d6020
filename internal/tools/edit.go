// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/petar-djukic/memorabot/internal/editor"
	"github.com/petar-djukic/memorabot/internal/history"
	"github.com/petar-djukic/memorabot/pkg/types"
)

// EditFileLinesTool handles the edit_file_lines MCP tool: exact text
// replacement with similarity hints on a miss.
type EditFileLinesTool struct {
	engine *editor.Engine
	log    *history.Log
}

func NewEditFileLinesTool(e *editor.Engine, log *history.Log) *EditFileLinesTool {
	return &EditFileLinesTool{engine: e, log: log}
}

func (t *EditFileLinesTool) Definition() mcp.Tool {
	return mcp.NewTool("edit_file_lines",
		mcp.WithDescription(
			"Replace the first occurrence of exact text in a file. The most "+
				"token-efficient way to change existing content: send only the "+
				"text to find and its replacement, never the whole file. On a "+
				"miss the error lists the closest similar lines.",
		),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("The bucket (folder) name")),
		mcp.WithString("filename", mcp.Required(), mcp.Description("The file name to edit")),
		mcp.WithString("search_text", mcp.Required(), mcp.Description("Exact text to find (can span lines)")),
		mcp.WithString("replacement_text", mcp.Required(), mcp.Description("Text to replace it with")),
	)
}

func (t *EditFileLinesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bucket, errResult := requireString(req, "bucket")
	if errResult != nil {
		return errResult, nil
	}
	filename, errResult := requireString(req, "filename")
	if errResult != nil {
		return errResult, nil
	}
	searchText, errResult := requireString(req, "search_text")
	if errResult != nil {
		return errResult, nil
	}
	replacementText := req.GetString("replacement_text", "")

	result, err := t.engine.ReplaceText(bucket, filename, searchText, replacementText)
	if err != nil {
		return toolError(err), nil
	}
	record(t.log, "edit_file_lines", bucket, filename, result)
	return mcp.NewToolResultText(renderEdit(result)), nil
}

// InsertAtLineTool handles the insert_at_line MCP tool.
type InsertAtLineTool struct {
	engine *editor.Engine
	log    *history.Log
}

func NewInsertAtLineTool(e *editor.Engine, log *history.Log) *InsertAtLineTool {
	return &InsertAtLineTool{engine: e, log: log}
}

func (t *InsertAtLineTool) Definition() mcp.Tool {
	return mcp.NewTool("insert_at_line",
		mcp.WithDescription(
			"Insert text at a specific line number: before it, after it, or "+
				"replacing it. Use preview_file_section first to confirm line "+
				"numbers in files you have not just read.",
		),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("The bucket (folder) name")),
		mcp.WithString("filename", mcp.Required(), mcp.Description("The file name to edit")),
		mcp.WithNumber("line_number", mcp.Required(), mcp.Description("1-based line number")),
		mcp.WithString("text", mcp.Required(), mcp.Description("Text to insert (can span lines)")),
		mcp.WithString("position", mcp.Description("'before', 'after' (default) or 'replace'")),
	)
}

func (t *InsertAtLineTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bucket, errResult := requireString(req, "bucket")
	if errResult != nil {
		return errResult, nil
	}
	filename, errResult := requireString(req, "filename")
	if errResult != nil {
		return errResult, nil
	}
	text, errResult := requireString(req, "text")
	if errResult != nil {
		return errResult, nil
	}
	lineNumber := intArg(req, "line_number", 0)

	pos, err := types.ParseInsertPosition(req.GetString("position", ""))
	if err != nil {
		return toolError(err), nil
	}

	result, err := t.engine.InsertAtLine(bucket, filename, lineNumber, text, pos)
	if err != nil {
		return toolError(err), nil
	}
	record(t.log, "insert_at_line", bucket, filename, result)
	return mcp.NewToolResultText(renderEdit(result)), nil
}
