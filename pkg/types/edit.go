// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "fmt"

// InsertPosition controls where InsertAtLine places text relative to the
// target line.
type InsertPosition string

const (
	PositionBefore  InsertPosition = "before"
	PositionAfter   InsertPosition = "after"
	PositionReplace InsertPosition = "replace"
)

// ParseInsertPosition validates a position string. An empty string
// defaults to "after".
func ParseInsertPosition(s string) (InsertPosition, error) {
	switch InsertPosition(s) {
	case "":
		return PositionAfter, nil
	case PositionBefore, PositionAfter, PositionReplace:
		return InsertPosition(s), nil
	default:
		return "", &ValidationError{Field: "position", Reason: fmt.Sprintf("must be before, after, or replace; got %q", s)}
	}
}

// ModifyAction is what ModifyPattern does to each matching line.
type ModifyAction string

const (
	ActionReplace      ModifyAction = "replace"
	ActionInsertBefore ModifyAction = "insert_before"
	ActionInsertAfter  ModifyAction = "insert_after"
	ActionDelete       ModifyAction = "delete"
)

// ParseModifyAction validates a modification type string.
func ParseModifyAction(s string) (ModifyAction, error) {
	switch ModifyAction(s) {
	case ActionReplace, ActionInsertBefore, ActionInsertAfter, ActionDelete:
		return ModifyAction(s), nil
	default:
		return "", &ValidationError{Field: "modification_type", Reason: fmt.Sprintf("must be replace, insert_before, insert_after, or delete; got %q", s)}
	}
}

// PatternMode selects how ModifyPattern interprets its search pattern.
// Literal substring matching is the default; regular expressions are
// opt-in because an innocent-looking pattern like "1.5" matches more
// than callers usually intend.
type PatternMode string

const (
	PatternLiteral PatternMode = "literal"
	PatternRegex   PatternMode = "regex"
)

// ParsePatternMode validates a pattern mode string. An empty string
// defaults to literal.
func ParsePatternMode(s string) (PatternMode, error) {
	switch PatternMode(s) {
	case "":
		return PatternLiteral, nil
	case PatternLiteral, PatternRegex:
		return PatternMode(s), nil
	default:
		return "", &ValidationError{Field: "pattern_mode", Reason: fmt.Sprintf("must be literal or regex; got %q", s)}
	}
}
