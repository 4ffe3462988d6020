// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/petar-djukic/memorabot/internal/store"
)

// SuggestBucketTool handles the suggest_bucket MCP tool: name a bucket
// for a piece of content based on its keywords and the buckets that
// already exist.
type SuggestBucketTool struct {
	store *store.FileStore
}

func NewSuggestBucketTool(s *store.FileStore) *SuggestBucketTool {
	return &SuggestBucketTool{store: s}
}

func (t *SuggestBucketTool) Definition() mcp.Tool {
	return mcp.NewTool("suggest_bucket",
		mcp.WithDescription(
			"Suggest a bucket name for new content. Reuses an existing bucket "+
				"when the content's keywords match one, otherwise proposes a new "+
				"name from the most salient keyword.",
		),
		mcp.WithString("content", mcp.Required(), mcp.Description("The content to place")),
	)
}

func (t *SuggestBucketTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, errResult := requireString(req, "content")
	if errResult != nil {
		return errResult, nil
	}

	existing, err := t.store.Buckets()
	if err != nil {
		return toolError(err), nil
	}

	suggestion := store.SuggestBucketName(content, existing)
	keywords := store.ExtractKeywords(content)

	var b strings.Builder
	fmt.Fprintf(&b, "Suggested bucket: %s\n", suggestion)
	if len(keywords) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(keywords, ", "))
	}
	if len(existing) > 0 {
		fmt.Fprintf(&b, "Existing buckets: %s\n", strings.Join(existing, ", "))
	}
	return mcp.NewToolResultText(b.String()), nil
}
