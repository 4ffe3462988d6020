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

// ReplaceSectionTool handles the replace_section MCP tool: replace the
// marker-delimited line range, markers included.
type ReplaceSectionTool struct {
	engine *editor.Engine
	log    *history.Log
}

func NewReplaceSectionTool(e *editor.Engine, log *history.Log) *ReplaceSectionTool {
	return &ReplaceSectionTool{engine: e, log: log}
}

func (t *ReplaceSectionTool) Definition() mcp.Tool {
	return mcp.NewTool("replace_section",
		mcp.WithDescription(
			"Replace the whole range from the start marker line through the "+
				"end marker line, markers included. To keep a marker line, "+
				"repeat it in new_content. Good for rewriting one section of "+
				"a structured note without touching the rest.",
		),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("The bucket (folder) name")),
		mcp.WithString("filename", mcp.Required(), mcp.Description("The file name to edit")),
		mcp.WithString("start_marker", mcp.Required(), mcp.Description("Text of the line that opens the section")),
		mcp.WithString("end_marker", mcp.Required(), mcp.Description("Text of the line that closes the section")),
		mcp.WithString("new_content", mcp.Required(), mcp.Description("Replacement for the whole marker-to-marker range")),
	)
}

func (t *ReplaceSectionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bucket, errResult := requireString(req, "bucket")
	if errResult != nil {
		return errResult, nil
	}
	filename, errResult := requireString(req, "filename")
	if errResult != nil {
		return errResult, nil
	}
	startMarker, errResult := requireString(req, "start_marker")
	if errResult != nil {
		return errResult, nil
	}
	endMarker, errResult := requireString(req, "end_marker")
	if errResult != nil {
		return errResult, nil
	}
	newContent := req.GetString("new_content", "")

	result, err := t.engine.ReplaceSection(bucket, filename, startMarker, endMarker, newContent)
	if err != nil {
		return toolError(err), nil
	}
	record(t.log, "replace_section", bucket, filename, result)
	return mcp.NewToolResultText(renderEdit(result)), nil
}

// ModifyPatternTool handles the modify_pattern MCP tool: apply one
// action to every line matching a pattern.
type ModifyPatternTool struct {
	engine *editor.Engine
	log    *history.Log
}

func NewModifyPatternTool(e *editor.Engine, log *history.Log) *ModifyPatternTool {
	return &ModifyPatternTool{engine: e, log: log}
}

func (t *ModifyPatternTool) Definition() mcp.Tool {
	return mcp.NewTool("modify_pattern",
		mcp.WithDescription(
			"Apply one change to every line matching a pattern: replace the "+
				"line, insert before or after it, or delete it. One call covers "+
				"any number of matching lines.",
		),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("The bucket (folder) name")),
		mcp.WithString("filename", mcp.Required(), mcp.Description("The file name to edit")),
		mcp.WithString("search_pattern", mcp.Required(), mcp.Description("Pattern matched against each line")),
		mcp.WithString("action", mcp.Required(), mcp.Description("'replace', 'insert_before', 'insert_after' or 'delete'")),
		mcp.WithString("new_content", mcp.Description("Content for the action; unused for 'delete'")),
	)
}

func (t *ModifyPatternTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bucket, errResult := requireString(req, "bucket")
	if errResult != nil {
		return errResult, nil
	}
	filename, errResult := requireString(req, "filename")
	if errResult != nil {
		return errResult, nil
	}
	searchPattern, errResult := requireString(req, "search_pattern")
	if errResult != nil {
		return errResult, nil
	}

	action, err := types.ParseModifyAction(req.GetString("action", ""))
	if err != nil {
		return toolError(err), nil
	}
	newContent := req.GetString("new_content", "")
	if newContent == "" && action != types.ActionDelete {
		return mcp.NewToolResultError("'new_content' is required unless action is 'delete'"), nil
	}

	result, err := t.engine.ModifyPattern(bucket, filename, searchPattern, action, newContent)
	if err != nil {
		return toolError(err), nil
	}
	record(t.log, "modify_pattern", bucket, filename, result)
	return mcp.NewToolResultText(renderEdit(result)), nil
}
