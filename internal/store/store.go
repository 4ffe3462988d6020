// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package store implements the filesystem document access adapter:
// buckets are directories under a data directory, documents are text
// files inside them. Names are sanitized on every access, writes are
// atomic (temp file + rename), and a configurable size cap is enforced
// before anything touches disk.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/petar-djukic/memorabot/pkg/types"
)

// DefaultMaxFileSize caps a single document at 1 MiB.
const DefaultMaxFileSize = 1 << 20

// FileStore stores bucket documents on the local filesystem.
// It implements the types.Store interface.
type FileStore struct {
	dataDir     string
	maxFileSize int64
}

// Verify interface compliance at compile time.
var _ types.Store = (*FileStore)(nil)

// New creates a FileStore rooted at dataDir, creating the directory if
// needed. maxFileSize of zero means DefaultMaxFileSize.
func New(dataDir string, maxFileSize int64) (*FileStore, error) {
	if dataDir == "" {
		return nil, &types.ValidationError{Field: "data_dir", Reason: "must not be empty"}
	}
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %s: %w", dataDir, err)
	}
	return &FileStore{dataDir: dataDir, maxFileSize: maxFileSize}, nil
}

// path resolves the sanitized on-disk path for a document.
func (s *FileStore) path(bucket, filename string) string {
	return filepath.Join(s.dataDir, SanitizeBucketName(bucket), SanitizeFilename(filename))
}

// Read returns the content of a document, or *DocumentNotFoundError.
func (s *FileStore) Read(bucket, filename string) (string, error) {
	data, err := os.ReadFile(s.path(bucket, filename))
	if os.IsNotExist(err) {
		return "", &types.DocumentNotFoundError{Doc: types.DocumentRef{Bucket: bucket, Filename: filename}}
	}
	if err != nil {
		return "", fmt.Errorf("reading %s/%s: %w", bucket, filename, err)
	}
	return string(data), nil
}

// Write fully replaces a document's content, creating the bucket if
// needed. The write is atomic: a partial write never replaces the
// previous content.
func (s *FileStore) Write(bucket, filename, content string) error {
	if int64(len(content)) > s.maxFileSize {
		return &types.ValidationError{
			Field:  "content",
			Reason: fmt.Sprintf("size %s exceeds maximum %s", FormatFileSize(int64(len(content))), FormatFileSize(s.maxFileSize)),
		}
	}

	path := s.path(bucket, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating bucket directory: %w", err)
	}
	if err := atomicWrite(path, []byte(content)); err != nil {
		return fmt.Errorf("writing %s/%s: %w", bucket, filename, err)
	}
	return nil
}

// Exists reports whether the document is present.
func (s *FileStore) Exists(bucket, filename string) (bool, error) {
	_, err := os.Stat(s.path(bucket, filename))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s/%s: %w", bucket, filename, err)
	}
	return true, nil
}

// Delete removes a document. Missing documents fail with
// *DocumentNotFoundError.
func (s *FileStore) Delete(bucket, filename string) error {
	err := os.Remove(s.path(bucket, filename))
	if os.IsNotExist(err) {
		return &types.DocumentNotFoundError{Doc: types.DocumentRef{Bucket: bucket, Filename: filename}}
	}
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", bucket, filename, err)
	}
	return nil
}

// Append adds content to the end of a document, creating it when
// absent. Existing content and the addition are joined by separator.
func (s *FileStore) Append(bucket, filename, content, separator string) error {
	existing, err := s.Read(bucket, filename)
	if err != nil {
		var notFound *types.DocumentNotFoundError
		if errors.As(err, &notFound) {
			return s.Write(bucket, filename, content)
		}
		return err
	}
	if separator == "" {
		separator = "\n"
	}
	return s.Write(bucket, filename, existing+separator+content)
}

// List returns "bucket/filename" entries, sorted. An empty bucket lists
// every bucket.
func (s *FileStore) List(bucket string) ([]string, error) {
	var buckets []string
	if bucket != "" {
		buckets = []string{SanitizeBucketName(bucket)}
	} else {
		entries, err := os.ReadDir(s.dataDir)
		if err != nil {
			return nil, fmt.Errorf("listing data directory: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				buckets = append(buckets, e.Name())
			}
		}
	}

	var files []string
	for _, b := range buckets {
		entries, err := os.ReadDir(filepath.Join(s.dataDir, b))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("listing bucket %s: %w", b, err)
		}
		for _, e := range entries {
			if !e.IsDir() {
				files = append(files, b+"/"+e.Name())
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// SearchResult is one hit of a content search.
type SearchResult struct {
	Doc     types.DocumentRef
	Excerpt string // Text surrounding the first match
	Size    int    // Document size in bytes
}

const excerptRadius = 50

// Search finds documents containing query (case-insensitive), with an
// excerpt around the first match. An empty bucket searches everywhere.
// Unreadable files are skipped rather than failing the whole search.
func (s *FileStore) Search(query, bucket string) ([]SearchResult, error) {
	files, err := s.List(bucket)
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	var results []SearchResult
	for _, f := range files {
		b, name, _ := strings.Cut(f, "/")
		content, err := s.Read(b, name)
		if err != nil {
			continue
		}

		idx := strings.Index(strings.ToLower(content), queryLower)
		if idx < 0 {
			continue
		}

		start := idx - excerptRadius
		if start < 0 {
			start = 0
		}
		end := idx + len(query) + excerptRadius
		if end > len(content) {
			end = len(content)
		}
		// The radius is in bytes; don't cut a rune in half.
		for start > 0 && !utf8.RuneStart(content[start]) {
			start--
		}
		for end < len(content) && !utf8.RuneStart(content[end]) {
			end++
		}
		excerpt := strings.TrimSpace(content[start:end])
		if start > 0 {
			excerpt = "..." + excerpt
		}
		if end < len(content) {
			excerpt = excerpt + "..."
		}

		results = append(results, SearchResult{
			Doc:     types.DocumentRef{Bucket: b, Filename: name},
			Excerpt: excerpt,
			Size:    len(content),
		})
	}
	return results, nil
}

// FileStats holds per-document statistics.
type FileStats struct {
	Doc        types.DocumentRef
	SizeBytes  int64
	Lines      int
	Words      int
	Characters int
}

// Stats returns statistics for one document.
func (s *FileStore) Stats(bucket, filename string) (*FileStats, error) {
	content, err := s.Read(bucket, filename)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(s.path(bucket, filename))
	if err != nil {
		return nil, fmt.Errorf("stat %s/%s: %w", bucket, filename, err)
	}
	lines := 0
	if content != "" {
		lines = len(strings.Split(strings.TrimSuffix(content, "\n"), "\n"))
	}
	return &FileStats{
		Doc:        types.DocumentRef{Bucket: bucket, Filename: filename},
		SizeBytes:  info.Size(),
		Lines:      lines,
		Words:      len(strings.Fields(content)),
		Characters: len(content),
	}, nil
}

// BucketStats summarizes all buckets: file count and total size per
// bucket plus overall totals.
type BucketStats struct {
	TotalBuckets int
	TotalFiles   int
	TotalSize    int64
	Buckets      map[string]BucketInfo
}

// BucketInfo is the per-bucket slice of BucketStats.
type BucketInfo struct {
	Files int
	Size  int64
}

// BucketStats aggregates statistics across every bucket.
func (s *FileStore) BucketStats() (*BucketStats, error) {
	files, err := s.List("")
	if err != nil {
		return nil, err
	}

	stats := &BucketStats{Buckets: map[string]BucketInfo{}}
	for _, f := range files {
		b, name, _ := strings.Cut(f, "/")
		info, err := os.Stat(filepath.Join(s.dataDir, b, name))
		if err != nil {
			continue
		}
		bi := stats.Buckets[b]
		bi.Files++
		bi.Size += info.Size()
		stats.Buckets[b] = bi
		stats.TotalFiles++
		stats.TotalSize += info.Size()
	}
	stats.TotalBuckets = len(stats.Buckets)
	return stats, nil
}

// Buckets returns the existing bucket names, sorted.
func (s *FileStore) Buckets() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("listing data directory: %w", err)
	}
	var buckets []string
	for _, e := range entries {
		if e.IsDir() {
			buckets = append(buckets, e.Name())
		}
	}
	sort.Strings(buckets)
	return buckets, nil
}

// atomicWrite writes data to a temp file in the same directory, then
// renames it to the target path. This prevents partial writes from
// corrupting documents.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	// Preserve original file permissions if the file exists.
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	f, err := os.CreateTemp(dir, ".memorabot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
