package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-md2text/internal/fileutil"
	"github.com/alnah/go-md2text/internal/hints"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// maxWorkers caps the batch worker count, explicit or automatic.
const maxWorkers = 32

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all markdown files to convert.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdownFile(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the text output path for a markdown file.
// With no output dir the text lands next to the input. An output dir ending
// in .txt names the output file directly. Otherwise the input tree is
// mirrored under the output dir relative to baseInputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+".txt")
	}

	if strings.HasSuffix(outputDir, ".txt") {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+".txt")
		}
	}

	return filepath.Join(outputDir, base+".txt")
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdownFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)%s", ErrInvalidWorkerCount, n, hints.ForWorkers())
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)%s", ErrInvalidWorkerCount, n, maxWorkers, hints.ForWorkers())
	}
	return nil
}

// resolveWorkers returns the batch worker count. Zero means auto sizing
// from GOMAXPROCS, capped at maxWorkers.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	auto := runtime.GOMAXPROCS(0)
	if auto > maxWorkers {
		auto = maxWorkers
	}
	if auto < 1 {
		auto = 1
	}
	return auto
}
