// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/petar-djukic/memorabot/internal/history"
	"github.com/petar-djukic/memorabot/internal/store"
)

// ReadFileTool handles the read_file MCP tool.
type ReadFileTool struct {
	store *store.FileStore
}

func NewReadFileTool(s *store.FileStore) *ReadFileTool {
	return &ReadFileTool{store: s}
}

func (t *ReadFileTool) Definition() mcp.Tool {
	return mcp.NewTool("read_file",
		mcp.WithDescription(
			"Read the full contents of a file from a bucket. "+
				"Prefer preview_file_section when you only need part of a large file.",
		),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("The bucket (folder) name")),
		mcp.WithString("filename", mcp.Required(), mcp.Description("The file name to read")),
	)
}

func (t *ReadFileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bucket, errResult := requireString(req, "bucket")
	if errResult != nil {
		return errResult, nil
	}
	filename, errResult := requireString(req, "filename")
	if errResult != nil {
		return errResult, nil
	}

	content, err := t.store.Read(bucket, filename)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(content), nil
}

// WriteFileTool handles the write_file MCP tool.
type WriteFileTool struct {
	store *store.FileStore
	log   *history.Log
}

func NewWriteFileTool(s *store.FileStore, log *history.Log) *WriteFileTool {
	return &WriteFileTool{store: s, log: log}
}

func (t *WriteFileTool) Definition() mcp.Tool {
	return mcp.NewTool("write_file",
		mcp.WithDescription(
			"Create a new file in a bucket. Fails if the file exists unless "+
				"overwrite is set. For changes to existing files prefer the "+
				"editing tools, which send only the changed region.",
		),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("The bucket (folder) name")),
		mcp.WithString("filename", mcp.Required(), mcp.Description("The file name to create")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Content to write")),
		mcp.WithBoolean("overwrite", mcp.Description("Replace the file if it already exists")),
	)
}

func (t *WriteFileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bucket, errResult := requireString(req, "bucket")
	if errResult != nil {
		return errResult, nil
	}
	filename, errResult := requireString(req, "filename")
	if errResult != nil {
		return errResult, nil
	}
	content := req.GetString("content", "")
	overwrite := boolArg(req, "overwrite", false)

	if !overwrite {
		exists, err := t.store.Exists(bucket, filename)
		if err != nil {
			return toolError(err), nil
		}
		if exists {
			return mcp.NewToolResultError(fmt.Sprintf(
				"file %s/%s already exists; set overwrite or use the editing tools", bucket, filename)), nil
		}
	}

	if err := t.store.Write(bucket, filename, content); err != nil {
		return toolError(err), nil
	}
	if t.log != nil {
		_ = t.log.Record("write_file", bucket, filename, fmt.Sprintf("wrote %d bytes", len(content)), "")
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created %s/%s with %d characters", bucket, filename, len(content))), nil
}

// AppendFileTool handles the append_file MCP tool.
type AppendFileTool struct {
	store *store.FileStore
	log   *history.Log
}

func NewAppendFileTool(s *store.FileStore, log *history.Log) *AppendFileTool {
	return &AppendFileTool{store: s, log: log}
}

func (t *AppendFileTool) Definition() mcp.Tool {
	return mcp.NewTool("append_file",
		mcp.WithDescription(
			"Append content to the end of a file, creating it when absent. "+
				"For placement inside the file use smart_append instead.",
		),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("The bucket (folder) name")),
		mcp.WithString("filename", mcp.Required(), mcp.Description("The file name to append to")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Content to append")),
		mcp.WithString("separator", mcp.Description("Separator between existing content and the addition (default: blank line)")),
	)
}

func (t *AppendFileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
	separator := req.GetString("separator", "\n\n")

	if err := t.store.Append(bucket, filename, content, separator); err != nil {
		return toolError(err), nil
	}
	if t.log != nil {
		_ = t.log.Record("append_file", bucket, filename, fmt.Sprintf("appended %d bytes", len(content)), "")
	}
	return mcp.NewToolResultText(fmt.Sprintf("Appended %d characters to %s/%s", len(content), bucket, filename)), nil
}

// DeleteFileTool handles the delete_file MCP tool.
type DeleteFileTool struct {
	store *store.FileStore
	log   *history.Log
}

func NewDeleteFileTool(s *store.FileStore, log *history.Log) *DeleteFileTool {
	return &DeleteFileTool{store: s, log: log}
}

func (t *DeleteFileTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_file",
		mcp.WithDescription("Delete a file from a bucket."),
		mcp.WithString("bucket", mcp.Required(), mcp.Description("The bucket (folder) name")),
		mcp.WithString("filename", mcp.Required(), mcp.Description("The file name to delete")),
	)
}

func (t *DeleteFileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bucket, errResult := requireString(req, "bucket")
	if errResult != nil {
		return errResult, nil
	}
	filename, errResult := requireString(req, "filename")
	if errResult != nil {
		return errResult, nil
	}

	if err := t.store.Delete(bucket, filename); err != nil {
		return toolError(err), nil
	}
	if t.log != nil {
		_ = t.log.Record("delete_file", bucket, filename, "deleted", "")
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted %s/%s", bucket, filename)), nil
}
