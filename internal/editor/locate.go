// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/memorabot/pkg/types"
)

// markerSection locates the inclusive line range delimited by two
// literal marker substrings: the first line containing startMarker and
// the first subsequent line containing endMarker. The returned section
// is half-open, so End is the line after the end-marker line.
func markerSection(doc types.DocumentRef, lines []string, startMarker, endMarker string) (types.Section, error) {
	startIdx := -1
	for i, line := range lines {
		if strings.Contains(line, startMarker) {
			startIdx = i
			break
		}
	}
	if startIdx < 0 {
		return types.Section{}, &types.SectionNotFoundError{
			Doc:    doc,
			Reason: fmt.Sprintf("start marker %q not found", startMarker),
		}
	}

	for i := startIdx + 1; i < len(lines); i++ {
		if strings.Contains(lines[i], endMarker) {
			return types.Section{Start: startIdx, End: i + 1}, nil
		}
	}

	// Distinguish an absent end marker from one that only occurs before
	// the start marker, so the caller knows which parameter to fix.
	for i := 0; i <= startIdx; i++ {
		if strings.Contains(lines[i], endMarker) {
			return types.Section{}, &types.SectionNotFoundError{
				Doc:    doc,
				Reason: fmt.Sprintf("end marker %q occurs before start marker %q", endMarker, startMarker),
			}
		}
	}
	return types.Section{}, &types.SectionNotFoundError{
		Doc:    doc,
		Reason: fmt.Sprintf("end marker %q not found", endMarker),
	}
}

// keywordSection locates the line range spanned by keyword matches: from
// the first matching line minus window to the last matching line plus
// window, clamped to document bounds. Keyword comparison is a
// case-insensitive substring match.
func keywordSection(doc types.DocumentRef, lines []string, keywords []string, window int) (types.Section, error) {
	first, last := -1, -1
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(kw)) {
				if first < 0 {
					first = i
				}
				last = i
				break
			}
		}
	}
	if first < 0 {
		return types.Section{}, &types.SectionNotFoundError{
			Doc:    doc,
			Reason: fmt.Sprintf("no line matches keywords %v", keywords),
		}
	}

	start := first - window
	if start < 0 {
		start = 0
	}
	end := last + window + 1
	if end > len(lines) {
		end = len(lines)
	}
	return types.Section{Start: start, End: end}, nil
}

// validateLine checks a 1-based line number against the document length.
// len(lines)+1 is valid only for position "after", which allows
// appending past the last line.
func validateLine(doc types.DocumentRef, lines []string, lineNumber int, pos types.InsertPosition) error {
	max := len(lines)
	if pos == types.PositionAfter {
		max = len(lines) + 1
	}
	if lineNumber < 1 || lineNumber > max {
		return &types.InvalidLineNumberError{Doc: doc, Line: lineNumber, MaxLine: len(lines)}
	}
	return nil
}
