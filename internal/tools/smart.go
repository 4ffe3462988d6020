// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/petar-djukic/memorabot/internal/editor"
	"github.com/petar-djukic/memorabot/internal/history"
)

// SmartAppendTool handles the smart_append MCP tool: content placement
// by document structure rather than a fixed position.
type SmartAppendTool struct {
	engine *editor.Engine
	log    *history.Log
}

func NewSmartAppendTool(e *editor.Engine, log *history.Log) *SmartAppendTool {
	return &SmartAppendTool{engine: e, log: log}
}

func (t *SmartAppendTool) Definition() mcp.Tool {
	return mcp.NewTool("smart_append",
		mcp.WithDescription(
			"Add content where it fits: under a named section when a hint is "+
				"given, continuing a list when the content is a list item, or "+
				"under the last section otherwise. Creates the file when absent "+
				"and skips near-duplicate lines unless told not to.",
		),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("The bucket (folder) name")),
		mcp.WithString("filename", mcp.Required(), mcp.Description("The file name to add to")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Content to place")),
		mcp.WithString("section_hint", mcp.Description("Keyword of the section to place the content under")),
		mcp.WithBoolean("avoid_duplicates", mcp.Description("Skip content already present in near-identical form (default true)")),
	)
}

func (t *SmartAppendTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bucket, errResult := requireString(req, "bucket")
	if errResult != nil {
		return errResult, nil
	}
	filename, errResult := requireString(req, "filename")
	if errResult != nil {
		return errResult, nil
	}
	content, errResult := requireString(req, "content")
	if errResult != nil {
		return errResult, nil
	}
	sectionHint := req.GetString("section_hint", "")
	avoidDuplicates := boolArg(req, "avoid_duplicates", true)

	result, err := t.engine.SmartAppend(bucket, filename, content, sectionHint, avoidDuplicates)
	if err != nil {
		return toolError(err), nil
	}
	record(t.log, "smart_append", bucket, filename, result)
	return mcp.NewToolResultText(renderEdit(result)), nil
}

// PreviewSectionTool handles the preview_file_section MCP tool.
type PreviewSectionTool struct {
	engine *editor.Engine
}

func NewPreviewSectionTool(e *editor.Engine) *PreviewSectionTool {
	return &PreviewSectionTool{engine: e}
}

func (t *PreviewSectionTool) Definition() mcp.Tool {
	return mcp.NewTool("preview_file_section",
		mcp.WithDescription(
			"Show a numbered slice of a file around a line number or around "+
				"matching text, without reading the whole file. Use it to find "+
				"line numbers before insert_at_line, or to verify an edit.",
		),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("The bucket (folder) name")),
		mcp.WithString("filename", mcp.Required(), mcp.Description("The file name to preview")),
		mcp.WithNumber("around_line", mcp.Description("Center the preview on this 1-based line")),
		mcp.WithString("around_text", mcp.Description("Center the preview on the line containing this text")),
		mcp.WithNumber("context_lines", mcp.Description("Lines to show on each side (default 5)")),
	)
}

func (t *PreviewSectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bucket, errResult := requireString(req, "bucket")
	if errResult != nil {
		return errResult, nil
	}
	filename, errResult := requireString(req, "filename")
	if errResult != nil {
		return errResult, nil
	}
	aroundLine := intArg(req, "around_line", 0)
	aroundText := req.GetString("around_text", "")
	contextLines := intArg(req, "context_lines", 0)

	result, err := t.engine.Preview(bucket, filename, aroundLine, aroundText, contextLines)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(renderEdit(result)), nil
}
