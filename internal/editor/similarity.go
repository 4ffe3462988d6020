// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/petar-djukic/memorabot/pkg/types"
)

const (
	defaultFuzzyThreshold     = 0.8
	defaultDuplicateThreshold = 0.85

	// hintThreshold is the floor for closest-line hints attached to
	// TextNotFoundError. Low on purpose: a weak hint beats none.
	hintThreshold = 0.3
	maxHints      = 3
)

// similarity computes a normalized Levenshtein similarity ratio between
// two strings using the go-diff library. Comparison is case-insensitive.
// Returns a value between 0.0 and 1.0.
func similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	distance := dmp.DiffLevenshtein(diffs)

	// DiffLevenshtein counts runes, so the denominator must too.
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// findSimilarLines scores every line of content against target and
// returns the lines scoring at or above threshold, ordered by descending
// score with ties broken by ascending line number.
func findSimilarLines(content, target string, threshold float64) []types.SimilarLine {
	var matches []types.SimilarLine
	for i, line := range splitLines(content) {
		score := similarity(line, target)
		if score >= threshold {
			matches = append(matches, types.SimilarLine{
				Line:  i + 1,
				Text:  line,
				Score: score,
			})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Line < matches[j].Line
	})
	return matches
}

// similarLineHints returns the top closest lines for a failed search,
// for embedding in a TextNotFoundError.
func similarLineHints(content, search string) []types.SimilarLine {
	hints := findSimilarLines(content, search, hintThreshold)
	if len(hints) > maxHints {
		hints = hints[:maxHints]
	}
	return hints
}

// bestLineMatch returns the single most similar line to target, or a
// zero SimilarLine if the document is empty.
func bestLineMatch(content, target string) types.SimilarLine {
	var best types.SimilarLine
	for i, line := range splitLines(content) {
		score := similarity(line, target)
		if score > best.Score {
			best = types.SimilarLine{Line: i + 1, Text: line, Score: score}
		}
	}
	return best
}

// splitLines normalizes line endings and splits content into lines.
// Empty content yields no lines; a trailing newline does not produce a
// trailing empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// joinLines reassembles lines into document content with a trailing
// newline. Zero lines yield empty content.
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
