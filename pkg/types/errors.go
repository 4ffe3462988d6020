// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"fmt"
	"strings"
)

// DocumentNotFoundError reports that the target document does not exist.
type DocumentNotFoundError struct {
	Doc DocumentRef
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document %s not found", e.Doc)
}

// TextNotFoundError reports that an exact search text has no occurrence
// in the document. Hints carries the closest lines by similarity so the
// caller can retry with corrected text instead of re-reading the file.
type TextNotFoundError struct {
	Doc        DocumentRef
	SearchText string
	Hints      []SimilarLine
}

func (e *TextNotFoundError) Error() string {
	msg := fmt.Sprintf("text not found in %s: %q", e.Doc, truncate(e.SearchText, 80))
	if len(e.Hints) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	b.WriteString("; closest lines:")
	for _, h := range e.Hints {
		b.WriteString("\n  ")
		b.WriteString(h.String())
	}
	return b.String()
}

// PatternNotFoundError reports that a find-and-modify pattern matched
// zero lines.
type PatternNotFoundError struct {
	Doc     DocumentRef
	Pattern string
}

func (e *PatternNotFoundError) Error() string {
	return fmt.Sprintf("pattern not found in %s: %q", e.Doc, truncate(e.Pattern, 80))
}

// SectionNotFoundError reports that a marker- or keyword-delimited
// section could not be located.
type SectionNotFoundError struct {
	Doc    DocumentRef
	Reason string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section not found in %s: %s", e.Doc, e.Reason)
}

// ReferenceNotFoundError reports that a preview anchor (line or text)
// could not be resolved.
type ReferenceNotFoundError struct {
	Doc    DocumentRef
	Anchor string
}

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("reference not found in %s: %s", e.Doc, e.Anchor)
}

// InvalidLineNumberError reports a line index outside the valid range.
type InvalidLineNumberError struct {
	Doc     DocumentRef
	Line    int
	MaxLine int
}

func (e *InvalidLineNumberError) Error() string {
	return fmt.Sprintf("invalid line number %d in %s (document has %d lines)", e.Line, e.Doc, e.MaxLine)
}

// AmbiguousMatchError reports that an operation requiring a unique match
// found several candidates while strict matching was enabled. Lines
// holds the 1-based line number of each occurrence.
type AmbiguousMatchError struct {
	Doc        DocumentRef
	SearchText string
	Lines      []int
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous match in %s: %q occurs %d times (lines %s)",
		e.Doc, truncate(e.SearchText, 80), len(e.Lines), joinInts(e.Lines))
}

// ValidationError reports a size, name, or parameter constraint violation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
