// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifiedDiff(t *testing.T) {
	t.Run("identical inputs yield empty diff", func(t *testing.T) {
		diff, err := unifiedDiff([]string{"a", "b"}, []string{"a", "b"}, "doc")
		require.NoError(t, err)
		assert.Empty(t, diff)
	})

	t.Run("single changed line", func(t *testing.T) {
		diff, err := unifiedDiff(
			[]string{"Shopping:", "- bread", "- milk"},
			[]string{"Shopping:", "- bread", "- organic milk"},
			"notes/groceries.txt")
		require.NoError(t, err)

		assert.Contains(t, diff, "--- notes/groceries.txt (before)")
		assert.Contains(t, diff, "+++ notes/groceries.txt (after)")
		assert.Contains(t, diff, "-- milk")
		assert.Contains(t, diff, "+- organic milk")
		assert.Contains(t, diff, " - bread")
	})

	t.Run("pure insertion", func(t *testing.T) {
		diff, err := unifiedDiff([]string{"a"}, []string{"a", "b"}, "doc")
		require.NoError(t, err)
		assert.Contains(t, diff, "+b")
		assert.NotContains(t, diff, "\n-a")
	})

	t.Run("pure deletion", func(t *testing.T) {
		diff, err := unifiedDiff([]string{"a", "b"}, []string{"a"}, "doc")
		require.NoError(t, err)
		assert.Contains(t, diff, "-b")
	})

	t.Run("from and to empty", func(t *testing.T) {
		diff, err := unifiedDiff(nil, []string{"a"}, "doc")
		require.NoError(t, err)
		assert.Contains(t, diff, "+a")

		diff, err = unifiedDiff([]string{"a"}, nil, "doc")
		require.NoError(t, err)
		assert.Contains(t, diff, "-a")
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := unifiedDiff([]string{"a", "b", "c"}, []string{"a", "x", "c"}, "doc")
		require.NoError(t, err)
		second, err := unifiedDiff([]string{"a", "b", "c"}, []string{"a", "x", "c"}, "doc")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
