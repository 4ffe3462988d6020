// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/memorabot/pkg/types"
)

var locateDoc = types.DocumentRef{Bucket: "notes", Filename: "doc.txt"}

func TestMarkerSection(t *testing.T) {
	lines := []string{"Shopping:", "- bread", "- milk", "", "Tasks:", "- call mom"}

	t.Run("finds inclusive range", func(t *testing.T) {
		sec, err := markerSection(locateDoc, lines, "Tasks:", "- call mom")
		require.NoError(t, err)
		assert.Equal(t, types.Section{Start: 4, End: 6}, sec)
	})

	t.Run("first occurrence of each marker", func(t *testing.T) {
		repeated := []string{"x", "begin", "a", "end", "b", "end"}
		sec, err := markerSection(locateDoc, repeated, "begin", "end")
		require.NoError(t, err)
		assert.Equal(t, types.Section{Start: 1, End: 4}, sec)
	})

	t.Run("missing start marker", func(t *testing.T) {
		_, err := markerSection(locateDoc, lines, "Chores:", "- call mom")
		var notFound *types.SectionNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("end marker only before start", func(t *testing.T) {
		_, err := markerSection(locateDoc, lines, "Tasks:", "- bread")
		var notFound *types.SectionNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Contains(t, notFound.Reason, "before start marker")
	})
}

func TestKeywordSection(t *testing.T) {
	lines := []string{"intro", "shopping list", "- bread", "- milk", "notes", "more SHOPPING here", "outro"}

	t.Run("spans matches with window", func(t *testing.T) {
		sec, err := keywordSection(locateDoc, lines, []string{"shopping"}, 1)
		require.NoError(t, err)
		assert.Equal(t, types.Section{Start: 0, End: 7}, sec)
	})

	t.Run("case-insensitive match", func(t *testing.T) {
		sec, err := keywordSection(locateDoc, lines, []string{"Shopping"}, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, sec.Start)
		assert.Equal(t, 6, sec.End)
	})

	t.Run("clamps to bounds", func(t *testing.T) {
		sec, err := keywordSection(locateDoc, lines, []string{"intro", "outro"}, 10)
		require.NoError(t, err)
		assert.Equal(t, types.Section{Start: 0, End: 7}, sec)
	})

	t.Run("no keyword matches", func(t *testing.T) {
		_, err := keywordSection(locateDoc, lines, []string{"banking"}, 2)
		var notFound *types.SectionNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestValidateLine(t *testing.T) {
	lines := []string{"a", "b", "c"}

	tests := []struct {
		name    string
		line    int
		pos     types.InsertPosition
		wantErr bool
	}{
		{"first line before", 1, types.PositionBefore, false},
		{"last line replace", 3, types.PositionReplace, false},
		{"append position after end", 4, types.PositionAfter, false},
		{"past end for before", 4, types.PositionBefore, true},
		{"past end for replace", 4, types.PositionReplace, true},
		{"zero", 0, types.PositionAfter, true},
		{"negative", -1, types.PositionBefore, true},
		{"far past end", 5, types.PositionAfter, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLine(locateDoc, lines, tt.line, tt.pos)
			if tt.wantErr {
				var invalid *types.InvalidLineNumberError
				assert.ErrorAs(t, err, &invalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
