// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package server wires the storage, editing and history components into
// an MCP server. No business logic lives here, only construction and
// tool registration.
package server

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/petar-djukic/memorabot/internal/editor"
	"github.com/petar-djukic/memorabot/internal/history"
	"github.com/petar-djukic/memorabot/internal/store"
	"github.com/petar-djukic/memorabot/internal/tools"
	"github.com/petar-djukic/memorabot/pkg/types"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config carries everything New needs to assemble the server.
type Config struct {
	DataDir            string
	MaxFileSize        int64
	FuzzyThreshold     float64
	DuplicateThreshold float64
	PatternMode        string
	StrictMatch        bool

	// HistoryPath is the SQLite file for the edit log. Empty disables
	// history recording.
	HistoryPath string
}

// New builds the MCP server with every tool registered. The returned
// cleanup function closes the history database and is always non-nil.
//
// History is advisory: if its database cannot be opened the server
// still starts, with a warning, and the mutating tools simply skip
// recording.
func New(cfg Config) (*server.MCPServer, func(), error) {
	fileStore, err := store.New(cfg.DataDir, cfg.MaxFileSize)
	if err != nil {
		return nil, noop, err
	}

	patternMode, err := types.ParsePatternMode(cfg.PatternMode)
	if err != nil {
		return nil, noop, err
	}

	engine := &editor.Engine{
		Store:              fileStore,
		FuzzyThreshold:     cfg.FuzzyThreshold,
		DuplicateThreshold: cfg.DuplicateThreshold,
		PatternMode:        patternMode,
		StrictMatch:        cfg.StrictMatch,
	}

	cleanup := noop
	var hist *history.Log
	if cfg.HistoryPath != "" {
		hist, err = history.New(cfg.HistoryPath)
		if err != nil {
			log.Printf("WARNING: edit history disabled: %v", err)
			hist = nil
		} else {
			h := hist
			cleanup = func() {
				if err := h.Close(); err != nil {
					log.Printf("WARNING: closing edit history: %v", err)
				}
			}
		}
	}

	s := server.NewMCPServer(
		"memorabot",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// File tools.
	readTool := tools.NewReadFileTool(fileStore)
	s.AddTool(readTool.Definition(), readTool.Handle)

	writeTool := tools.NewWriteFileTool(fileStore, hist)
	s.AddTool(writeTool.Definition(), writeTool.Handle)

	appendTool := tools.NewAppendFileTool(fileStore, hist)
	s.AddTool(appendTool.Definition(), appendTool.Handle)

	deleteTool := tools.NewDeleteFileTool(fileStore, hist)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	// Browse tools.
	listTool := tools.NewListFilesTool(fileStore)
	s.AddTool(listTool.Definition(), listTool.Handle)

	searchTool := tools.NewSearchFilesTool(fileStore)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	statsTool := tools.NewBucketStatsTool(fileStore)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	suggestTool := tools.NewSuggestBucketTool(fileStore)
	s.AddTool(suggestTool.Definition(), suggestTool.Handle)

	// Editing tools.
	editTool := tools.NewEditFileLinesTool(engine, hist)
	s.AddTool(editTool.Definition(), editTool.Handle)

	insertTool := tools.NewInsertAtLineTool(engine, hist)
	s.AddTool(insertTool.Definition(), insertTool.Handle)

	sectionTool := tools.NewReplaceSectionTool(engine, hist)
	s.AddTool(sectionTool.Definition(), sectionTool.Handle)

	patternTool := tools.NewModifyPatternTool(engine, hist)
	s.AddTool(patternTool.Definition(), patternTool.Handle)

	smartTool := tools.NewSmartAppendTool(engine, hist)
	s.AddTool(smartTool.Definition(), smartTool.Handle)

	previewTool := tools.NewPreviewSectionTool(engine)
	s.AddTool(previewTool.Definition(), previewTool.Handle)

	// History tool registered unconditionally; it reports history as
	// disabled when there is no log.
	historyTool := tools.NewEditHistoryTool(hist)
	s.AddTool(historyTool.Definition(), historyTool.Handle)

	return s, cleanup, nil
}

// noop is the default cleanup when no history database is open.
func noop() {}

func serverInstructions() string {
	return `MemoraBot stores notes as files inside named buckets (folders).

Choosing where things go:
- Check existing buckets with list_files before creating new ones.
- suggest_bucket proposes a bucket for new content from its keywords.
- Use descriptive filenames like meeting_notes.md or shopping_list.md.

Editing efficiently — prefer the cheapest tool that can do the job:
1. Adding to an existing file: smart_append places content under the
   right section and skips near-duplicates.
2. Changing specific text: edit_file_lines with the exact text to find.
   On a miss it lists the closest lines, so you rarely need to re-read.
3. Rewriting one section: replace_section between two marker lines.
4. Repetitive line changes: modify_pattern applies one action to every
   matching line in a single call.
5. Known line number: insert_at_line, verified with
   preview_file_section first.

Never rewrite a whole file just to change part of it. read_file and
write_file with overwrite are the last resort, not the default.

Every mutating tool returns a unified diff of what changed; show users
a short summary of it rather than the raw diff.`
}
