// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/memorabot/pkg/types"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := New(t.TempDir(), 0)
	require.NoError(t, err)
	return s
}

func TestReadWrite(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Write("Notes", "groceries.txt", "- bread\n"))

	got, err := s.Read("notes", "groceries.txt")
	require.NoError(t, err)
	assert.Equal(t, "- bread\n", got, "bucket names are sanitized to the same directory")

	ok, err := s.Exists("notes", "groceries.txt")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReadMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Read("notes", "nope.txt")

	var notFound *types.DocumentNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "notes/nope.txt", notFound.Doc.String())
}

func TestWriteSizeCap(t *testing.T) {
	s, err := New(t.TempDir(), 16)
	require.NoError(t, err)

	err = s.Write("notes", "big.txt", "this content is longer than sixteen bytes")

	var invalid *types.ValidationError
	require.ErrorAs(t, err, &invalid)

	ok, err := s.Exists("notes", "big.txt")
	require.NoError(t, err)
	assert.False(t, ok, "nothing may be written when the cap is exceeded")
}

func TestWriteIsAtomicAndPreservesPermissions(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write("notes", "a.txt", "old"))

	path := s.path("notes", "a.txt")
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, s.Write("notes", "a.txt", "new"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, _ := s.Read("notes", "a.txt")
	assert.Equal(t, "new", got)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write("notes", "a.txt", "x"))

	require.NoError(t, s.Delete("notes", "a.txt"))

	var notFound *types.DocumentNotFoundError
	assert.ErrorAs(t, s.Delete("notes", "a.txt"), &notFound)
}

func TestAppend(t *testing.T) {
	s := newTestStore(t)

	t.Run("creates missing document", func(t *testing.T) {
		require.NoError(t, s.Append("notes", "log.txt", "first", "\n\n"))
		got, _ := s.Read("notes", "log.txt")
		assert.Equal(t, "first", got)
	})

	t.Run("joins with separator", func(t *testing.T) {
		require.NoError(t, s.Append("notes", "log.txt", "second", "\n\n"))
		got, _ := s.Read("notes", "log.txt")
		assert.Equal(t, "first\n\nsecond", got)
	})
}

func TestList(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write("notes", "b.txt", "x"))
	require.NoError(t, s.Write("notes", "a.txt", "x"))
	require.NoError(t, s.Write("recipes", "soup.txt", "x"))

	t.Run("single bucket sorted", func(t *testing.T) {
		files, err := s.List("notes")
		require.NoError(t, err)
		assert.Equal(t, []string{"notes/a.txt", "notes/b.txt"}, files)
	})

	t.Run("all buckets", func(t *testing.T) {
		files, err := s.List("")
		require.NoError(t, err)
		assert.Equal(t, []string{"notes/a.txt", "notes/b.txt", "recipes/soup.txt"}, files)
	})

	t.Run("missing bucket is empty", func(t *testing.T) {
		files, err := s.List("nothing")
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write("notes", "groceries.txt", "Shopping:\n- bread\n- milk\n"))
	require.NoError(t, s.Write("recipes", "soup.txt", "Add milk and stir.\n"))

	t.Run("case-insensitive across buckets", func(t *testing.T) {
		results, err := s.Search("MILK", "")
		require.NoError(t, err)
		require.Len(t, results, 2)
	})

	t.Run("scoped to a bucket with excerpt", func(t *testing.T) {
		results, err := s.Search("milk", "recipes")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "recipes/soup.txt", results[0].Doc.String())
		assert.Contains(t, results[0].Excerpt, "Add milk and stir.")
	})

	t.Run("no hits", func(t *testing.T) {
		results, err := s.Search("nothing here", "")
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("excerpt window lands on rune boundaries", func(t *testing.T) {
		// 20 three-byte runes on each side put both byte-offset window
		// edges in the middle of a rune.
		padding := strings.Repeat("€", 20)
		require.NoError(t, s.Write("notes", "euros.txt", padding+"needle"+padding))

		results, err := s.Search("needle", "notes")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.True(t, utf8.ValidString(results[0].Excerpt))
		assert.Contains(t, results[0].Excerpt, "needle")
	})
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write("notes", "a.txt", "one two\nthree\n"))

	stats, err := s.Stats("notes", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Lines)
	assert.Equal(t, 3, stats.Words)
	assert.Equal(t, 14, stats.Characters)
	assert.Equal(t, int64(14), stats.SizeBytes)
}

func TestStatsEmptyFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write("notes", "empty.txt", ""))

	stats, err := s.Stats("notes", "empty.txt")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Lines)
	assert.Equal(t, 0, stats.Words)
	assert.Equal(t, 0, stats.Characters)
}

func TestBucketStats(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write("notes", "a.txt", "12345"))
	require.NoError(t, s.Write("notes", "b.txt", "123"))
	require.NoError(t, s.Write("recipes", "c.txt", "12"))

	stats, err := s.BucketStats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBuckets)
	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, int64(10), stats.TotalSize)
	assert.Equal(t, BucketInfo{Files: 2, Size: 8}, stats.Buckets["notes"])
}

func TestBuckets(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Write("zoo", "a.txt", "x"))
	require.NoError(t, s.Write("alpha", "b.txt", "x"))

	buckets, err := s.Buckets()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zoo"}, buckets)
}
