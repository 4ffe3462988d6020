// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/petar-djukic/memorabot/internal/store"
)

// ListFilesTool handles the list_files MCP tool.
type ListFilesTool struct {
	store *store.FileStore
}

func NewListFilesTool(s *store.FileStore) *ListFilesTool {
	return &ListFilesTool{store: s}
}

func (t *ListFilesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_files",
		mcp.WithDescription("List files, either in one bucket or across all buckets."),
		mcp.WithString("bucket", mcp.Description("Bucket to list; omit to list every bucket")),
	)
}

func (t *ListFilesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bucket := req.GetString("bucket", "")

	files, err := t.store.List(bucket)
	if err != nil {
		return toolError(err), nil
	}
	if len(files) == 0 {
		if bucket != "" {
			return mcp.NewToolResultText(fmt.Sprintf("No files in bucket '%s'", bucket)), nil
		}
		return mcp.NewToolResultText("No files stored yet"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d file(s):\n", len(files))
	for _, f := range files {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// SearchFilesTool handles the search_files MCP tool.
type SearchFilesTool struct {
	store *store.FileStore
}

func NewSearchFilesTool(s *store.FileStore) *SearchFilesTool {
	return &SearchFilesTool{store: s}
}

func (t *SearchFilesTool) Definition() mcp.Tool {
	return mcp.NewTool("search_files",
		mcp.WithDescription(
			"Search file contents for a phrase (case-insensitive). Returns "+
				"each matching file with an excerpt around the first hit.",
		),
		mcp.WithString("query", mcp.Required(), mcp.Description("Text to search for")),
		mcp.WithString("bucket", mcp.Description("Restrict the search to one bucket")),
	)
}

func (t *SearchFilesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, errResult := requireString(req, "query")
	if errResult != nil {
		return errResult, nil
	}
	bucket := req.GetString("bucket", "")

	results, err := t.store.Search(query, bucket)
	if err != nil {
		return toolError(err), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No files matching '%s'", query)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d match(es) for '%s':\n", len(results), query)
	for _, r := range results {
		fmt.Fprintf(&b, "\n%s (%s)\n  %s\n", r.Doc, store.FormatFileSize(int64(r.Size)), r.Excerpt)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// BucketStatsTool handles the get_bucket_stats MCP tool.
type BucketStatsTool struct {
	store *store.FileStore
}

func NewBucketStatsTool(s *store.FileStore) *BucketStatsTool {
	return &BucketStatsTool{store: s}
}

func (t *BucketStatsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_bucket_stats",
		mcp.WithDescription(
			"Summarize storage: file count and total size per bucket, or "+
				"detailed statistics for a single file when filename is given.",
		),
		mcp.WithString("bucket", mcp.Description("Bucket name, required when filename is given")),
		mcp.WithString("filename", mcp.Description("File to report detailed statistics for")),
	)
}

func (t *BucketStatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bucket := req.GetString("bucket", "")
	filename := req.GetString("filename", "")

	if filename != "" {
		if bucket == "" {
			return mcp.NewToolResultError("'bucket' is required when 'filename' is given"), nil
		}
		stats, err := t.store.Stats(bucket, filename)
		if err != nil {
			return toolError(err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(
			"%s: %s, %d lines, %d words, %d characters",
			stats.Doc, store.FormatFileSize(stats.SizeBytes), stats.Lines, stats.Words, stats.Characters)), nil
	}

	stats, err := t.store.BucketStats()
	if err != nil {
		return toolError(err), nil
	}
	if stats.TotalFiles == 0 {
		return mcp.NewToolResultText("No files stored yet"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d bucket(s), %d file(s), %s total\n",
		stats.TotalBuckets, stats.TotalFiles, store.FormatFileSize(stats.TotalSize))
	names := make([]string, 0, len(stats.Buckets))
	for name := range stats.Buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		info := stats.Buckets[name]
		fmt.Fprintf(&b, "- %s: %d file(s), %s\n", name, info.Files, store.FormatFileSize(info.Size))
	}
	return mcp.NewToolResultText(b.String()), nil
}
