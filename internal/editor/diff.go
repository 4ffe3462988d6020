// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

const diffContextLines = 3

// unifiedDiff renders a line-oriented unified diff between two line
// sequences. The label appears in the ---/+++ headers. Identical inputs
// produce an empty string. Output is deterministic: no timestamps, no
// randomness.
func unifiedDiff(oldLines, newLines []string, label string) (string, error) {
	if equalLines(oldLines, newLines) {
		return "", nil
	}

	ud := difflib.UnifiedDiff{
		A:        terminated(oldLines),
		B:        terminated(newLines),
		FromFile: label + " (before)",
		ToFile:   label + " (after)",
		Context:  diffContextLines,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("rendering diff for %s: %w", label, err)
	}
	return text, nil
}

// terminated appends a newline to each line, as difflib expects.
func terminated(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l + "\n"
	}
	return out
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
