// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package editor implements MemoraBot's token-efficient editing engine:
// targeted modifications to bucket documents without rewriting whole
// files, each reported as a unified diff.
//
// Every operation is a pure function of the document's current content
// and the request parameters. The engine keeps no state between calls;
// it reads through the Store, computes a new line sequence, writes the
// result back, and returns the diff. Concurrent edits to the same
// document must be serialized by the caller.
package editor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/petar-djukic/memorabot/pkg/types"
)

// Engine applies structured edits to documents in a Store.
// The zero value is not usable; Store must be set.
type Engine struct {
	Store types.Store

	// FuzzyThreshold is the minimum similarity score for fuzzy line
	// location (preview around_text). Defaults to 0.8 if zero.
	FuzzyThreshold float64

	// DuplicateThreshold is the similarity above which SmartAppend
	// treats content as a near-duplicate. Defaults to 0.85 if zero.
	DuplicateThreshold float64

	// PatternMode selects literal or regex matching for ModifyPattern.
	// Defaults to literal.
	PatternMode types.PatternMode

	// StrictMatch makes ReplaceText fail with AmbiguousMatchError when
	// the search text occurs more than once. Off by default: the legacy
	// behavior replaces the first occurrence only.
	StrictMatch bool
}

// ReplaceText replaces the first exact, case-sensitive occurrence of
// searchText with replacementText. When the text is absent the returned
// TextNotFoundError carries the closest lines by similarity. With
// StrictMatch set, multiple occurrences fail instead of silently editing
// the first.
func (e *Engine) ReplaceText(bucket, filename, searchText, replacementText string) (*types.EditResult, error) {
	doc := types.DocumentRef{Bucket: bucket, Filename: filename}
	if searchText == "" {
		return nil, &types.ValidationError{Field: "search_text", Reason: "must not be empty"}
	}

	content, err := e.Store.Read(bucket, filename)
	if err != nil {
		return nil, err
	}

	idx := strings.Index(content, searchText)
	if idx < 0 {
		return nil, &types.TextNotFoundError{
			Doc:        doc,
			SearchText: searchText,
			Hints:      similarLineHints(content, searchText),
		}
	}

	if e.StrictMatch {
		if lines := occurrenceLines(content, searchText); len(lines) > 1 {
			return nil, &types.AmbiguousMatchError{Doc: doc, SearchText: searchText, Lines: lines}
		}
	}

	// Replacing text with itself is a no-op: empty diff, no write.
	if searchText == replacementText {
		return &types.EditResult{Summary: fmt.Sprintf("no change to %s: replacement equals search text", doc)}, nil
	}

	updated := content[:idx] + replacementText + content[idx+len(searchText):]
	return e.commit(doc, content, updated, fmt.Sprintf("replaced first occurrence of %q", truncateSummary(searchText)))
}

// InsertAtLine splices text at a 1-based line number. Position "before"
// and "after" insert new lines adjacent to the target; "replace"
// substitutes the target line. Multi-line text is spliced as multiple
// lines. The result's Context holds a 3-line window around the change.
func (e *Engine) InsertAtLine(bucket, filename string, lineNumber int, text string, pos types.InsertPosition) (*types.EditResult, error) {
	doc := types.DocumentRef{Bucket: bucket, Filename: filename}

	content, err := e.Store.Read(bucket, filename)
	if err != nil {
		return nil, err
	}

	lines := splitLines(content)
	if err := validateLine(doc, lines, lineNumber, pos); err != nil {
		return nil, err
	}

	newText := splitLines(text)
	var newLines []string
	var changeAt int // 0-based index of the first affected line

	switch pos {
	case types.PositionBefore:
		changeAt = lineNumber - 1
		newLines = spliceLines(lines, changeAt, changeAt, newText)
	case types.PositionAfter:
		changeAt = lineNumber
		if changeAt > len(lines) {
			changeAt = len(lines)
		}
		newLines = spliceLines(lines, changeAt, changeAt, newText)
	case types.PositionReplace:
		changeAt = lineNumber - 1
		newLines = spliceLines(lines, changeAt, changeAt+1, newText)
	default:
		return nil, &types.ValidationError{Field: "position", Reason: fmt.Sprintf("unknown position %q", pos)}
	}

	result, err := e.commit(doc, content, joinLines(newLines),
		fmt.Sprintf("inserted %d line(s) %s line %d", len(newText), pos, lineNumber))
	if err != nil {
		return nil, err
	}
	result.Context = excerpt(newLines, changeAt, 3)
	return result, nil
}

// ReplaceSection replaces the inclusive range delimited by startMarker
// and endMarker with the lines of newContent. Lines outside the range
// are preserved verbatim. The marker lines themselves are replaced;
// callers who want to keep them include them in newContent.
func (e *Engine) ReplaceSection(bucket, filename, startMarker, endMarker, newContent string) (*types.EditResult, error) {
	doc := types.DocumentRef{Bucket: bucket, Filename: filename}
	if startMarker == "" || endMarker == "" {
		return nil, &types.ValidationError{Field: "markers", Reason: "start_marker and end_marker must not be empty"}
	}

	content, err := e.Store.Read(bucket, filename)
	if err != nil {
		return nil, err
	}

	lines := splitLines(content)
	sec, err := markerSection(doc, lines, startMarker, endMarker)
	if err != nil {
		return nil, err
	}

	newLines := spliceLines(lines, sec.Start, sec.End, splitLines(newContent))
	return e.commit(doc, content, joinLines(newLines),
		fmt.Sprintf("replaced section lines %d-%d (markers %q..%q)", sec.Start+1, sec.End, startMarker, endMarker))
}

// ModifyPattern applies an action to every line matching searchPattern.
// The pattern is a literal substring unless the engine is configured for
// regex mode. Unlike ReplaceText this deliberately touches all matches:
// it exists for structural, possibly-repeated edits.
func (e *Engine) ModifyPattern(bucket, filename, searchPattern string, action types.ModifyAction, newContent string) (*types.EditResult, error) {
	doc := types.DocumentRef{Bucket: bucket, Filename: filename}
	if searchPattern == "" {
		return nil, &types.ValidationError{Field: "search_pattern", Reason: "must not be empty"}
	}

	matchLine, err := e.patternMatcher(searchPattern)
	if err != nil {
		return nil, err
	}

	content, err := e.Store.Read(bucket, filename)
	if err != nil {
		return nil, err
	}

	lines := splitLines(content)
	insert := splitLines(newContent)
	var newLines []string
	matched := 0

	for _, line := range lines {
		if !matchLine(line) {
			newLines = append(newLines, line)
			continue
		}
		matched++
		switch action {
		case types.ActionReplace:
			newLines = append(newLines, insert...)
		case types.ActionInsertBefore:
			newLines = append(newLines, insert...)
			newLines = append(newLines, line)
		case types.ActionInsertAfter:
			newLines = append(newLines, line)
			newLines = append(newLines, insert...)
		case types.ActionDelete:
			// Line dropped.
		default:
			return nil, &types.ValidationError{Field: "modification_type", Reason: fmt.Sprintf("unknown action %q", action)}
		}
	}

	if matched == 0 {
		return nil, &types.PatternNotFoundError{Doc: doc, Pattern: searchPattern}
	}

	return e.commit(doc, content, joinLines(newLines),
		fmt.Sprintf("%s applied to %d line(s) matching %q", action, matched, truncateSummary(searchPattern)))
}

// Preview returns a read-only, line-numbered excerpt of the document
// centered on aroundText (exact substring first, then fuzzy line match)
// or aroundLine. It never writes. contextLines defaults to 5 if zero.
func (e *Engine) Preview(bucket, filename string, aroundLine int, aroundText string, contextLines int) (*types.EditResult, error) {
	doc := types.DocumentRef{Bucket: bucket, Filename: filename}
	if contextLines <= 0 {
		contextLines = 5
	}

	content, err := e.Store.Read(bucket, filename)
	if err != nil {
		return nil, err
	}
	lines := splitLines(content)

	center := -1
	switch {
	case aroundText != "":
		center = locateText(lines, aroundText, e.fuzzyThreshold())
		if center < 0 {
			return nil, &types.ReferenceNotFoundError{Doc: doc, Anchor: fmt.Sprintf("text %q", truncateSummary(aroundText))}
		}
	case aroundLine > 0:
		if aroundLine > len(lines) {
			return nil, &types.ReferenceNotFoundError{Doc: doc, Anchor: fmt.Sprintf("line %d (document has %d lines)", aroundLine, len(lines))}
		}
		center = aroundLine - 1
	default:
		return nil, &types.ValidationError{Field: "around", Reason: "either around_line or around_text is required"}
	}

	return &types.EditResult{
		Summary: fmt.Sprintf("preview of %s around line %d", doc, center+1),
		Context: excerpt(lines, center, contextLines),
	}, nil
}

// commit renders the diff between old and new content, writes the new
// content, and builds the result. Nothing is written when the content is
// unchanged.
func (e *Engine) commit(doc types.DocumentRef, oldContent, newContent, summary string) (*types.EditResult, error) {
	diff, err := unifiedDiff(splitLines(oldContent), splitLines(newContent), doc.String())
	if err != nil {
		return nil, err
	}
	if diff == "" {
		return &types.EditResult{Summary: fmt.Sprintf("no change to %s", doc)}, nil
	}
	if err := e.Store.Write(doc.Bucket, doc.Filename, newContent); err != nil {
		return nil, fmt.Errorf("writing %s: %w", doc, err)
	}
	return &types.EditResult{Diff: diff, Summary: summary}, nil
}

// patternMatcher builds the per-line match predicate for ModifyPattern.
func (e *Engine) patternMatcher(pattern string) (func(string) bool, error) {
	if e.PatternMode == types.PatternRegex {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, &types.ValidationError{Field: "search_pattern", Reason: fmt.Sprintf("invalid regular expression: %v", err)}
		}
		return re.MatchString, nil
	}
	return func(line string) bool { return strings.Contains(line, pattern) }, nil
}

func (e *Engine) fuzzyThreshold() float64 {
	if e.FuzzyThreshold > 0 {
		return e.FuzzyThreshold
	}
	return defaultFuzzyThreshold
}

func (e *Engine) duplicateThreshold() float64 {
	if e.DuplicateThreshold > 0 {
		return e.DuplicateThreshold
	}
	return defaultDuplicateThreshold
}

// locateText finds the 0-based line index of text: first by exact
// substring, then by the most similar line at or above threshold.
// Returns -1 when neither resolves.
func locateText(lines []string, text string, threshold float64) int {
	target := firstLine(text)
	for i, line := range lines {
		if strings.Contains(line, target) {
			return i
		}
	}
	best := bestLineMatch(joinLines(lines), target)
	if best.Score >= threshold {
		return best.Line - 1
	}
	return -1
}

// occurrenceLines returns the 1-based line number of every occurrence of
// search in content.
func occurrenceLines(content, search string) []int {
	var out []int
	offset := 0
	for {
		idx := strings.Index(content[offset:], search)
		if idx < 0 {
			return out
		}
		abs := offset + idx
		out = append(out, strings.Count(content[:abs], "\n")+1)
		offset = abs + len(search)
	}
}

// spliceLines returns lines with [start, end) replaced by insert.
func spliceLines(lines []string, start, end int, insert []string) []string {
	out := make([]string, 0, len(lines)-(end-start)+len(insert))
	out = append(out, lines[:start]...)
	out = append(out, insert...)
	out = append(out, lines[end:]...)
	return out
}

// excerpt renders a line-numbered window of contextLines lines around a
// 0-based center index, clamped to document bounds.
func excerpt(lines []string, center, contextLines int) string {
	if len(lines) == 0 {
		return ""
	}
	start := center - contextLines
	if start < 0 {
		start = 0
	}
	end := center + contextLines + 1
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		fmt.Fprintf(&b, "%4d: %s\n", i+1, lines[i])
	}
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncateSummary(s string) string {
	s = firstLine(s)
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}
