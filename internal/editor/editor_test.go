// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package editor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/memorabot/pkg/types"
)

// memStore is an in-memory Store for engine tests.
type memStore struct {
	docs map[string]string
}

func newMemStore() *memStore {
	return &memStore{docs: map[string]string{}}
}

func (s *memStore) Read(bucket, filename string) (string, error) {
	content, ok := s.docs[bucket+"/"+filename]
	if !ok {
		return "", &types.DocumentNotFoundError{Doc: types.DocumentRef{Bucket: bucket, Filename: filename}}
	}
	return content, nil
}

func (s *memStore) Write(bucket, filename, content string) error {
	s.docs[bucket+"/"+filename] = content
	return nil
}

func (s *memStore) Exists(bucket, filename string) (bool, error) {
	_, ok := s.docs[bucket+"/"+filename]
	return ok, nil
}

const groceriesDoc = "Shopping:\n- bread\n- milk\n\nTasks:\n- call mom\n"

func newTestEngine(t *testing.T, content string) (*Engine, *memStore) {
	t.Helper()
	store := newMemStore()
	if content != "" {
		require.NoError(t, store.Write("notes", "groceries.txt", content))
	}
	return &Engine{Store: store}, store
}

func TestReplaceText(t *testing.T) {
	t.Run("replaces exactly one line", func(t *testing.T) {
		e, store := newTestEngine(t, groceriesDoc)

		result, err := e.ReplaceText("notes", "groceries.txt", "- milk", "- organic milk")
		require.NoError(t, err)

		got, err := store.Read("notes", "groceries.txt")
		require.NoError(t, err)
		assert.Equal(t, "Shopping:\n- bread\n- organic milk\n\nTasks:\n- call mom\n", got)

		assert.Contains(t, result.Diff, "-- milk")
		assert.Contains(t, result.Diff, "+- organic milk")
		assert.Equal(t, 1, strings.Count(result.Diff, "\n-")-strings.Count(result.Diff, "\n---"))
	})

	t.Run("replaces only first of multiple occurrences", func(t *testing.T) {
		e, store := newTestEngine(t, "a: 1\nb: 2\na: 1\n")

		_, err := e.ReplaceText("notes", "groceries.txt", "a: 1", "a: 99")
		require.NoError(t, err)

		got, _ := store.Read("notes", "groceries.txt")
		assert.Equal(t, "a: 99\nb: 2\na: 1\n", got)
	})

	t.Run("strict mode rejects ambiguous matches", func(t *testing.T) {
		e, store := newTestEngine(t, "a: 1\nb: 2\na: 1\n")
		e.StrictMatch = true

		_, err := e.ReplaceText("notes", "groceries.txt", "a: 1", "a: 99")

		var ambiguous *types.AmbiguousMatchError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, []int{1, 3}, ambiguous.Lines)

		got, _ := store.Read("notes", "groceries.txt")
		assert.Equal(t, "a: 1\nb: 2\na: 1\n", got, "document must be unchanged")
	})

	t.Run("missing text fails with hints and leaves document unchanged", func(t *testing.T) {
		e, store := newTestEngine(t, groceriesDoc)

		_, err := e.ReplaceText("notes", "groceries.txt", "- mikl", "- milk")

		var notFound *types.TextNotFoundError
		require.ErrorAs(t, err, &notFound)
		require.NotEmpty(t, notFound.Hints)
		assert.Equal(t, "- milk", notFound.Hints[0].Text)

		got, _ := store.Read("notes", "groceries.txt")
		assert.Equal(t, groceriesDoc, got)
	})

	t.Run("idempotent when search equals replacement", func(t *testing.T) {
		e, store := newTestEngine(t, groceriesDoc)

		result, err := e.ReplaceText("notes", "groceries.txt", "- milk", "- milk")
		require.NoError(t, err)
		assert.Empty(t, result.Diff)

		got, _ := store.Read("notes", "groceries.txt")
		assert.Equal(t, groceriesDoc, got)
	})

	t.Run("missing document", func(t *testing.T) {
		e, _ := newTestEngine(t, "")

		_, err := e.ReplaceText("notes", "nope.txt", "x", "y")

		var notFound *types.DocumentNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("empty search text is invalid", func(t *testing.T) {
		e, _ := newTestEngine(t, groceriesDoc)

		_, err := e.ReplaceText("notes", "groceries.txt", "", "x")

		var invalid *types.ValidationError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestInsertAtLine(t *testing.T) {
	tests := []struct {
		name    string
		line    int
		text    string
		pos     types.InsertPosition
		want    string
		wantErr bool
	}{
		{
			name: "after line three",
			line: 3, text: "- eggs", pos: types.PositionAfter,
			want: "Shopping:\n- bread\n- milk\n- eggs\n\nTasks:\n- call mom\n",
		},
		{
			name: "before line two",
			line: 2, text: "- eggs", pos: types.PositionBefore,
			want: "Shopping:\n- eggs\n- bread\n- milk\n\nTasks:\n- call mom\n",
		},
		{
			name: "replace line three",
			line: 3, text: "- oat milk", pos: types.PositionReplace,
			want: "Shopping:\n- bread\n- oat milk\n\nTasks:\n- call mom\n",
		},
		{
			name: "after past the end appends",
			line: 7, text: "- done", pos: types.PositionAfter,
			want: groceriesDoc + "- done\n",
		},
		{
			name: "multi-line insert",
			line: 3, text: "- eggs\n- butter", pos: types.PositionAfter,
			want: "Shopping:\n- bread\n- milk\n- eggs\n- butter\n\nTasks:\n- call mom\n",
		},
		{
			name: "before past the end is invalid",
			line: 7, text: "- x", pos: types.PositionBefore, wantErr: true,
		},
		{
			name: "replace past the end is invalid",
			line: 7, text: "- x", pos: types.PositionReplace, wantErr: true,
		},
		{
			name: "zero line is invalid",
			line: 0, text: "- x", pos: types.PositionAfter, wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, store := newTestEngine(t, groceriesDoc)

			result, err := e.InsertAtLine("notes", "groceries.txt", tt.line, tt.text, tt.pos)
			if tt.wantErr {
				var invalid *types.InvalidLineNumberError
				require.ErrorAs(t, err, &invalid)
				got, _ := store.Read("notes", "groceries.txt")
				assert.Equal(t, groceriesDoc, got, "document must be unchanged")
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, result.Diff)
			assert.NotEmpty(t, result.Context, "insert should return a context window")

			got, _ := store.Read("notes", "groceries.txt")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplaceSection(t *testing.T) {
	t.Run("replaces marker-delimited range", func(t *testing.T) {
		e, store := newTestEngine(t, groceriesDoc)

		result, err := e.ReplaceSection("notes", "groceries.txt",
			"Tasks:", "- call mom", "Tasks:\n- call mom\n- buy groceries")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Diff)

		got, _ := store.Read("notes", "groceries.txt")
		assert.Equal(t, "Shopping:\n- bread\n- milk\n\nTasks:\n- call mom\n- buy groceries\n", got)
		assert.True(t, strings.HasPrefix(got, "Shopping:\n- bread\n- milk\n\n"), "lines outside the section must be preserved")
	})

	t.Run("missing start marker", func(t *testing.T) {
		e, store := newTestEngine(t, groceriesDoc)

		_, err := e.ReplaceSection("notes", "groceries.txt", "Chores:", "- call mom", "x")

		var notFound *types.SectionNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Contains(t, notFound.Reason, "start marker")

		got, _ := store.Read("notes", "groceries.txt")
		assert.Equal(t, groceriesDoc, got)
	})

	t.Run("end marker before start marker", func(t *testing.T) {
		e, _ := newTestEngine(t, groceriesDoc)

		_, err := e.ReplaceSection("notes", "groceries.txt", "Tasks:", "- bread", "x")

		var notFound *types.SectionNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Contains(t, notFound.Reason, "before start marker")
	})

	t.Run("missing end marker", func(t *testing.T) {
		e, _ := newTestEngine(t, groceriesDoc)

		_, err := e.ReplaceSection("notes", "groceries.txt", "Tasks:", "- feed cat", "x")

		var notFound *types.SectionNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Contains(t, notFound.Reason, "end marker")
	})
}

func TestModifyPattern(t *testing.T) {
	const doc = "- bread [ ]\n- milk [x]\n- eggs [ ]\n"

	t.Run("replace touches every matching line", func(t *testing.T) {
		e, store := newTestEngine(t, doc)

		_, err := e.ModifyPattern("notes", "groceries.txt", "[ ]", types.ActionReplace, "- TODO")
		require.NoError(t, err)

		got, _ := store.Read("notes", "groceries.txt")
		assert.Equal(t, "- TODO\n- milk [x]\n- TODO\n", got)
	})

	t.Run("delete removes matching lines and returns a diff", func(t *testing.T) {
		e, store := newTestEngine(t, doc)

		result, err := e.ModifyPattern("notes", "groceries.txt", "[x]", types.ActionDelete, "")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Diff, "destructive operations must return a diff")

		got, _ := store.Read("notes", "groceries.txt")
		assert.Equal(t, "- bread [ ]\n- eggs [ ]\n", got)
	})

	t.Run("insert before and after", func(t *testing.T) {
		e, store := newTestEngine(t, "Tasks:\n- call mom\n")

		_, err := e.ModifyPattern("notes", "groceries.txt", "Tasks:", types.ActionInsertAfter, "- water plants")
		require.NoError(t, err)

		_, err = e.ModifyPattern("notes", "groceries.txt", "Tasks:", types.ActionInsertBefore, "## Today")
		require.NoError(t, err)

		got, _ := store.Read("notes", "groceries.txt")
		assert.Equal(t, "## Today\nTasks:\n- water plants\n- call mom\n", got)
	})

	t.Run("no match fails", func(t *testing.T) {
		e, store := newTestEngine(t, doc)

		_, err := e.ModifyPattern("notes", "groceries.txt", "[?]", types.ActionDelete, "")

		var notFound *types.PatternNotFoundError
		require.ErrorAs(t, err, &notFound)

		got, _ := store.Read("notes", "groceries.txt")
		assert.Equal(t, doc, got)
	})

	t.Run("regex mode", func(t *testing.T) {
		e, store := newTestEngine(t, doc)
		e.PatternMode = types.PatternRegex

		_, err := e.ModifyPattern("notes", "groceries.txt", `\[.\]$`, types.ActionDelete, "")
		require.NoError(t, err)

		got, _ := store.Read("notes", "groceries.txt")
		assert.Equal(t, "", got)
	})

	t.Run("invalid regex", func(t *testing.T) {
		e, _ := newTestEngine(t, doc)
		e.PatternMode = types.PatternRegex

		_, err := e.ModifyPattern("notes", "groceries.txt", "[", types.ActionDelete, "")

		var invalid *types.ValidationError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestPreview(t *testing.T) {
	t.Run("around line never mutates", func(t *testing.T) {
		e, store := newTestEngine(t, groceriesDoc)
		before, _ := store.Read("notes", "groceries.txt")

		result, err := e.Preview("notes", "groceries.txt", 3, "", 1)
		require.NoError(t, err)
		assert.Empty(t, result.Diff)
		assert.Contains(t, result.Context, "   3: - milk")
		assert.Contains(t, result.Context, "   2: - bread")
		assert.Contains(t, result.Context, "   4: ")

		after, _ := store.Read("notes", "groceries.txt")
		assert.Equal(t, before, after)
	})

	t.Run("around text", func(t *testing.T) {
		e, _ := newTestEngine(t, groceriesDoc)

		result, err := e.Preview("notes", "groceries.txt", 0, "call mom", 1)
		require.NoError(t, err)
		assert.Contains(t, result.Context, "   6: - call mom")
	})

	t.Run("fuzzy text locate", func(t *testing.T) {
		e, _ := newTestEngine(t, groceriesDoc)

		result, err := e.Preview("notes", "groceries.txt", 0, "- call mum", 0)
		require.NoError(t, err)
		assert.Contains(t, result.Context, "- call mom")
	})

	t.Run("unresolvable reference", func(t *testing.T) {
		e, _ := newTestEngine(t, groceriesDoc)

		_, err := e.Preview("notes", "groceries.txt", 0, "entirely absent anchor text", 2)

		var notFound *types.ReferenceNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("line out of range", func(t *testing.T) {
		e, _ := newTestEngine(t, groceriesDoc)

		_, err := e.Preview("notes", "groceries.txt", 42, "", 2)

		var notFound *types.ReferenceNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("clamps to document bounds", func(t *testing.T) {
		e, _ := newTestEngine(t, groceriesDoc)

		result, err := e.Preview("notes", "groceries.txt", 1, "", 10)
		require.NoError(t, err)
		assert.Contains(t, result.Context, "   1: Shopping:")
		assert.Contains(t, result.Context, "   6: - call mom")
		assert.NotContains(t, result.Context, "   7:")
	})
}

func TestOccurrenceLines(t *testing.T) {
	lines := occurrenceLines("a: 1\nb: 2\na: 1\n", "a: 1")
	assert.Equal(t, []int{1, 3}, lines)

	assert.Empty(t, occurrenceLines("abc", "xyz"))
}
