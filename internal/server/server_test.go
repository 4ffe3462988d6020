// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package server

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	dir := t.TempDir()
	s, cleanup, err := New(Config{
		DataDir:     dir,
		HistoryPath: filepath.Join(dir, ".history.db"),
	})
	require.NoError(t, err)
	require.NotNil(t, cleanup)
	defer cleanup()
	assert.NotNil(t, s)
}

func TestNewWithoutHistory(t *testing.T) {
	s, cleanup, err := New(Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, s)
}

func TestNewRejectsBadPatternMode(t *testing.T) {
	_, _, err := New(Config{DataDir: t.TempDir(), PatternMode: "glob"})
	assert.Error(t, err)
}
