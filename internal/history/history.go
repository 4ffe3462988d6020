// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package history records every mutating edit operation in a SQLite
// database, so users can audit what the assistant changed and when.
// The log is advisory: tools keep working when it is unavailable.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded edit operation.
type Entry struct {
	ID        int64  `json:"id"`
	Operation string `json:"operation"`
	Bucket    string `json:"bucket"`
	Filename  string `json:"filename"`
	Summary   string `json:"summary"`
	Diff      string `json:"diff,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Log is the SQLite-backed edit history.
type Log struct {
	db *sql.DB
}

// New opens (or creates) the history database at path and applies the
// schema.
func New(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	l := &Log{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

// Close releases the database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

func (l *Log) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS edits (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	operation  TEXT NOT NULL,
	bucket     TEXT NOT NULL,
	filename   TEXT NOT NULL,
	summary    TEXT NOT NULL,
	diff       TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_edits_document ON edits(bucket, filename);
CREATE INDEX IF NOT EXISTS idx_edits_created ON edits(created_at);
`
	if _, err := l.db.Exec(schema); err != nil {
		return fmt.Errorf("applying history schema: %w", err)
	}
	return nil
}

// Record appends one edit to the log.
func (l *Log) Record(operation, bucket, filename, summary, diff string) error {
	_, err := l.db.Exec(
		`INSERT INTO edits (operation, bucket, filename, summary, diff, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		operation, bucket, filename, summary, diff, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording edit: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first. A non-empty
// bucket/filename pair restricts the result to one document. limit of
// zero defaults to 20.
func (l *Log) Recent(bucket, filename string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, operation, bucket, filename, summary, diff, created_at
	          FROM edits`
	args := []any{}
	if bucket != "" && filename != "" {
		query += ` WHERE bucket = ? AND filename = ?`
		args = append(args, bucket, filename)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Operation, &e.Bucket, &e.Filename, &e.Summary, &e.Diff, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading history rows: %w", err)
	}
	return entries, nil
}
