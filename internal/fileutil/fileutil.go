// Package fileutil provides file and path utility functions.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MarkdownExtensions lists the file extensions accepted as markdown input.
var MarkdownExtensions = []string{".md", ".markdown"}

// IsMarkdownFile returns true if the path carries a markdown extension.
// The comparison is case-insensitive, so README.MD is accepted.
func IsMarkdownFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range MarkdownExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "myconfig" -> false (name)
//   - "./custom.yaml" -> true (relative path)
//   - "/etc/md2text.yaml" -> true (absolute)
//   - "C:\configs\md2text.yaml" -> true (Windows)
//   - "sub/dir" -> true (contains separator)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// CheckWritable verifies that dir accepts new files by creating and removing
// a probe file.
func CheckWritable(dir string) error {
	probe, err := os.CreateTemp(dir, ".md2text-probe-*")
	if err != nil {
		return fmt.Errorf("directory not writable: %w", err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return nil
}
