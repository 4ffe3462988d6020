// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the shared data types for the MemoraBot editing
// engine: document addressing, edit parameters and results, the typed
// error taxonomy, and the Store interface that the engine reads and
// writes documents through.
package types

import "fmt"

// DocumentRef addresses a document by bucket and filename.
type DocumentRef struct {
	Bucket   string
	Filename string
}

func (d DocumentRef) String() string {
	return d.Bucket + "/" + d.Filename
}

// Store is the document access adapter. The engine never holds document
// content across calls; every operation reads the current content,
// computes a new version, and writes it back through this interface.
//
// Read returns *DocumentNotFoundError when the document does not exist.
// Write fully replaces the prior content or fails without a partial write.
type Store interface {
	Read(bucket, filename string) (string, error)
	Write(bucket, filename, content string) error
	Exists(bucket, filename string) (bool, error)
}

// EditResult is returned by every successful engine operation.
type EditResult struct {
	Diff    string // Unified diff of the change (empty when nothing changed)
	Summary string // Human-readable account of what happened
	Context string // Line-numbered excerpt around the change, when applicable
}

// SimilarLine is one entry of a similarity search over document lines.
type SimilarLine struct {
	Line  int     // 1-based line number
	Text  string  // Line content
	Score float64 // Similarity score in [0,1]
}

func (s SimilarLine) String() string {
	return fmt.Sprintf("line %d (%.2f): %s", s.Line, s.Score, s.Text)
}

// Section is a half-open line range [Start, End) in 0-based line indices.
type Section struct {
	Start int
	End   int
}

// Len returns the number of lines covered by the section.
func (s Section) Len() int {
	return s.End - s.Start
}
