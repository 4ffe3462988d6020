// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const maxFilenameLength = 255

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	invalidBucketChars   = regexp.MustCompile(`[^a-z0-9_-]`)
	wordPattern          = regexp.MustCompile(`\b[a-z]+\b`)
)

// SanitizeFilename makes a filename safe for filesystem use: invalid
// characters become underscores, leading/trailing dots and spaces are
// stripped, overlong names are truncated preserving the extension, and
// an empty result gets a timestamped default.
func SanitizeFilename(filename string) string {
	filename = invalidFilenameChars.ReplaceAllString(filename, "_")
	filename = strings.Trim(filename, ". ")

	if len(filename) > maxFilenameLength {
		ext := filepath.Ext(filename)
		if ext != "" && ext != filename {
			name := filename[:len(filename)-len(ext)]
			filename = name[:maxFilenameLength-len(ext)] + ext
		} else {
			filename = filename[:maxFilenameLength]
		}
	}

	if filename == "" {
		filename = "file_" + time.Now().Format("20060102_150405")
	}
	return filename
}

// SanitizeBucketName makes a bucket name safe for directory use:
// lowercased, spaces to underscores, restricted to [a-z0-9_-], with
// "default" as the fallback for an empty result.
func SanitizeBucketName(bucket string) string {
	bucket = strings.ToLower(bucket)
	bucket = strings.ReplaceAll(bucket, " ", "_")
	bucket = invalidBucketChars.ReplaceAllString(bucket, "")
	bucket = strings.Trim(bucket, "-_")

	if bucket == "" {
		bucket = "default"
	}
	return bucket
}

// stopWords are excluded from keyword extraction.
var stopWords = map[string]bool{
	"the": true, "is": true, "at": true, "which": true, "on": true,
	"a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "with": true, "to": true, "for": true, "of": true,
	"as": true, "by": true, "that": true, "this": true, "it": true,
	"from": true, "be": true, "are": true, "was": true, "were": true,
	"been": true,
}

const maxKeywords = 10

// ExtractKeywords pulls up to ten distinct keywords out of free text,
// skipping stop words and words shorter than four characters.
func ExtractKeywords(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	seen := map[string]bool{}
	var keywords []string
	for _, w := range words {
		if stopWords[w] || len(w) <= 3 || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// SuggestBucketName proposes a bucket for new content: an existing
// bucket sharing a keyword wins, otherwise the most prominent keyword,
// otherwise "notes".
func SuggestBucketName(text string, existingBuckets []string) string {
	keywords := ExtractKeywords(text)

	for _, kw := range keywords {
		for _, bucket := range existingBuckets {
			if strings.Contains(bucket, kw) || strings.Contains(kw, bucket) {
				return bucket
			}
		}
	}

	if len(keywords) > 0 {
		suggested := SanitizeBucketName(keywords[0])
		for _, bucket := range existingBuckets {
			if bucket == suggested {
				return bucket
			}
		}
		return suggested
	}
	return "notes"
}

// FormatFileSize renders a byte count in human-readable units.
func FormatFileSize(sizeBytes int64) string {
	size := float64(sizeBytes)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.2f TB", size)
}
