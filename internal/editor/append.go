// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/petar-djukic/memorabot/pkg/types"
)

// placement is the outcome of a placement strategy: where to insert and
// which strategy fired.
type placement struct {
	index  int    // 0-based line index to insert at
	reason string // strategy name for the result summary
}

// SmartAppend inserts content at the most plausible location in the
// document. With avoidDuplicates set, content scoring at or above the
// duplicate threshold against any existing line makes the call a no-op
// that reports the near-duplicate instead of writing.
//
// Placement strategies are tried in order: continuation of the
// section_hint block, continuation of the last matching list, the last
// headed section, insertion before trailing blank lines, and finally
// end of file. A missing document is created with the content.
func (e *Engine) SmartAppend(bucket, filename, content, sectionHint string, avoidDuplicates bool) (*types.EditResult, error) {
	doc := types.DocumentRef{Bucket: bucket, Filename: filename}
	if strings.TrimSpace(content) == "" {
		return nil, &types.ValidationError{Field: "content", Reason: "must not be empty"}
	}

	existing, err := e.Store.Read(bucket, filename)
	if err != nil {
		var notFound *types.DocumentNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		return e.commit(doc, "", joinLines(splitLines(content)),
			fmt.Sprintf("created %s with %d line(s)", doc, len(splitLines(content))))
	}

	if avoidDuplicates {
		if dup := e.nearDuplicate(existing, content); dup != nil {
			return &types.EditResult{
				Summary: fmt.Sprintf("not appended: near-duplicate of %s (similarity %.2f)", dup.String(), dup.Score),
			}, nil
		}
	}

	lines := splitLines(existing)
	p := choosePlacement(lines, content, sectionHint)
	newLines := spliceLines(lines, p.index, p.index, splitLines(content))

	result, err := e.commit(doc, existing, joinLines(newLines),
		fmt.Sprintf("appended %d line(s) via %s at line %d", len(splitLines(content)), p.reason, p.index+1))
	if err != nil {
		return nil, err
	}
	result.Context = excerpt(newLines, p.index, 3)
	return result, nil
}

// nearDuplicate returns the existing line most similar to content if it
// crosses the duplicate threshold, nil otherwise. Multi-line content is
// compared line by line; one duplicated line is enough to refuse.
func (e *Engine) nearDuplicate(existing, content string) *types.SimilarLine {
	threshold := e.duplicateThreshold()
	for _, newLine := range splitLines(content) {
		if strings.TrimSpace(newLine) == "" {
			continue
		}
		best := bestLineMatch(existing, newLine)
		if best.Score >= threshold {
			return &best
		}
	}
	return nil
}

// choosePlacement runs the placement strategies in priority order.
// Always succeeds: end of file is the fallback.
func choosePlacement(lines []string, content, sectionHint string) placement {
	if sectionHint != "" {
		if p, ok := hintBlockEnd(lines, sectionHint); ok {
			return p
		}
	}
	if p, ok := listContinuation(lines, content); ok {
		return p
	}
	if p, ok := lastHeadedSection(lines); ok {
		return p
	}
	if p, ok := beforeTrailingBlanks(lines); ok {
		return p
	}
	return placement{index: len(lines), reason: "end of file"}
}

// hintBlockEnd finds the block named by the hint: the first line
// matching any hint word, extended downward over contiguous non-blank
// lines. Insertion goes after the last non-blank line of that block, so
// new content lands inside the section rather than after its trailing
// blank separator.
func hintBlockEnd(lines []string, hint string) (placement, bool) {
	doc := types.DocumentRef{}
	sec, err := keywordSection(doc, lines, strings.Fields(hint), 0)
	if err != nil {
		return placement{}, false
	}

	end := sec.Start
	for end+1 < len(lines) && strings.TrimSpace(lines[end+1]) != "" {
		end++
	}
	return placement{index: end + 1, reason: fmt.Sprintf("continuation of %q section", hint)}, true
}

// listContinuation places list-item content after the document's last
// list item. Only fires when the content itself looks like a list item.
func listContinuation(lines []string, content string) (placement, bool) {
	if !isListItem(firstLine(content)) {
		return placement{}, false
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if isListItem(lines[i]) {
			return placement{index: i + 1, reason: "list continuation"}, true
		}
	}
	return placement{}, false
}

// lastHeadedSection places content at the end of the last block opened
// by a heading line ("Tasks:", "## Notes", ...).
func lastHeadedSection(lines []string) (placement, bool) {
	head := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if isHeading(lines[i]) {
			head = i
			break
		}
	}
	if head < 0 {
		return placement{}, false
	}

	end := head
	for end+1 < len(lines) && strings.TrimSpace(lines[end+1]) != "" {
		end++
	}
	return placement{index: end + 1, reason: "section continuation"}, true
}

// beforeTrailingBlanks inserts before a run of blank lines at the end of
// the document, keeping the trailing separator trailing.
func beforeTrailingBlanks(lines []string) (placement, bool) {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	if end == len(lines) || end == 0 {
		return placement{}, false
	}
	return placement{index: end, reason: "before trailing blank lines"}, true
}

// isListItem reports whether a line looks like a bullet or numbered
// list entry.
func isListItem(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "- ") || strings.HasPrefix(s, "* ") || strings.HasPrefix(s, "+ ") {
		return true
	}
	// Numbered entries: "1. " or "1) ".
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i+1 >= len(s) {
		return false
	}
	return (s[i] == '.' || s[i] == ')') && s[i+1] == ' '
}

// isHeading reports whether a line opens a section: markdown heading or
// a short label ending with a colon.
func isHeading(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "#") {
		return true
	}
	return strings.HasSuffix(s, ":") && !isListItem(s)
}
