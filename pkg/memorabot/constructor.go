// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package memorabot

import (
	"fmt"

	"github.com/petar-djukic/memorabot/internal/editor"
	"github.com/petar-djukic/memorabot/internal/store"
	"github.com/petar-djukic/memorabot/pkg/types"
)

// New validates the config, opens the data directory, and returns a
// ready-to-use Editor.
func New(cfg Config) (Editor, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	patternMode, err := types.ParsePatternMode(cfg.PatternMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	fileStore, err := store.New(cfg.DataDir, cfg.MaxFileSize)
	if err != nil {
		return nil, err
	}

	return &editorAdapter{
		store: fileStore,
		engine: &editor.Engine{
			Store:              fileStore,
			FuzzyThreshold:     cfg.FuzzyThreshold,
			DuplicateThreshold: cfg.DuplicateThreshold,
			PatternMode:        patternMode,
			StrictMatch:        cfg.StrictMatch,
		},
	}, nil
}

// editorAdapter adapts the internal engine and store to the public
// Editor interface.
type editorAdapter struct {
	store  *store.FileStore
	engine *editor.Engine
}

func (a *editorAdapter) Read(bucket, filename string) (string, error) {
	return a.store.Read(bucket, filename)
}

func (a *editorAdapter) Write(bucket, filename, content string) error {
	return a.store.Write(bucket, filename, content)
}

func (a *editorAdapter) ReplaceText(bucket, filename, searchText, replacementText string) (*types.EditResult, error) {
	return a.engine.ReplaceText(bucket, filename, searchText, replacementText)
}

func (a *editorAdapter) InsertAtLine(bucket, filename string, lineNumber int, text string, pos types.InsertPosition) (*types.EditResult, error) {
	return a.engine.InsertAtLine(bucket, filename, lineNumber, text, pos)
}

func (a *editorAdapter) ReplaceSection(bucket, filename, startMarker, endMarker, newContent string) (*types.EditResult, error) {
	return a.engine.ReplaceSection(bucket, filename, startMarker, endMarker, newContent)
}

func (a *editorAdapter) ModifyPattern(bucket, filename, searchPattern string, action types.ModifyAction, newContent string) (*types.EditResult, error) {
	return a.engine.ModifyPattern(bucket, filename, searchPattern, action, newContent)
}

func (a *editorAdapter) SmartAppend(bucket, filename, content, sectionHint string, avoidDuplicates bool) (*types.EditResult, error) {
	return a.engine.SmartAppend(bucket, filename, content, sectionHint, avoidDuplicates)
}

func (a *editorAdapter) Preview(bucket, filename string, aroundLine int, aroundText string, contextLines int) (*types.EditResult, error) {
	return a.engine.Preview(bucket, filename, aroundLine, aroundText, contextLines)
}

// validateConfig checks required fields and value ranges.
func validateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return fmt.Errorf("DataDir is required")
	}
	if cfg.FuzzyThreshold < 0 || cfg.FuzzyThreshold > 1 {
		return fmt.Errorf("FuzzyThreshold must be between 0 and 1")
	}
	if cfg.DuplicateThreshold < 0 || cfg.DuplicateThreshold > 1 {
		return fmt.Errorf("DuplicateThreshold must be between 0 and 1")
	}
	if cfg.MaxFileSize < 0 {
		return fmt.Errorf("MaxFileSize must not be negative")
	}
	return nil
}
