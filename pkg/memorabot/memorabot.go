// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package memorabot defines the public interface for the MemoraBot
// editing library: bucket-organized document storage with structured,
// diff-producing edit operations.
package memorabot

import (
	"errors"

	"github.com/petar-djukic/memorabot/pkg/types"
)

// ErrInvalidConfig reports a Config that New rejected.
var ErrInvalidConfig = errors.New("invalid config")

// Config configures an Editor instance.
type Config struct {
	DataDir            string  // Directory holding the note buckets (required)
	MaxFileSize        int64   // Per-file size cap in bytes (default 1 MiB)
	FuzzyThreshold     float64 // Minimum similarity for fuzzy location (default 0.8)
	DuplicateThreshold float64 // SmartAppend near-duplicate cutoff (default 0.85)
	PatternMode        string  // "literal" (default) or "regex" for ModifyPattern
	StrictMatch        bool    // Fail ambiguous ReplaceText instead of taking the first hit
}

// Editor applies structured edits to documents in buckets. Every
// mutating call returns an EditResult carrying a unified diff of the
// change; reads return the result without writing.
type Editor interface {
	// Read returns the full content of a document.
	Read(bucket, filename string) (string, error)

	// Write stores content as a document, creating bucket and file as
	// needed.
	Write(bucket, filename, content string) error

	// ReplaceText replaces the first exact occurrence of searchText.
	// When the text is absent the error carries the closest lines by
	// similarity.
	ReplaceText(bucket, filename, searchText, replacementText string) (*types.EditResult, error)

	// InsertAtLine places text before, after, or replacing the given
	// 1-based line.
	InsertAtLine(bucket, filename string, lineNumber int, text string, pos types.InsertPosition) (*types.EditResult, error)

	// ReplaceSection replaces the inclusive range from the start marker
	// line through the end marker line. The marker lines themselves are
	// replaced; include them in newContent to keep them.
	ReplaceSection(bucket, filename, startMarker, endMarker, newContent string) (*types.EditResult, error)

	// ModifyPattern applies one action to every line matching pattern.
	ModifyPattern(bucket, filename, searchPattern string, action types.ModifyAction, newContent string) (*types.EditResult, error)

	// SmartAppend places content where the document's structure says it
	// belongs, creating the document when absent.
	SmartAppend(bucket, filename, content, sectionHint string, avoidDuplicates bool) (*types.EditResult, error)

	// Preview returns a numbered excerpt around a line or around
	// matching text, without modifying anything.
	Preview(bucket, filename string, aroundLine int, aroundText string, contextLines int) (*types.EditResult, error)
}
