package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	md2text "github.com/alnah/go-md2text"
	"github.com/alnah/go-md2text/internal/fileutil"
)

// debounceDelay batches rapid editor write events into one re-conversion.
const debounceDelay = 500 * time.Millisecond

// runWatch converts the discovered files once, then re-converts changed
// files until ctx cancels.
func runWatch(ctx context.Context, converter *md2text.Converter, inputPath, outputDir string, params *conversionParams, flags *convertFlags, workers int, env *Environment) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return err
	}

	// Single files resolve sibling outputs; directories mirror their tree.
	baseDir := ""
	watchFile := ""
	if info.IsDir() {
		baseDir = inputPath
	} else {
		watchFile = filepath.Clean(inputPath)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchPaths(watcher, inputPath, info.IsDir()); err != nil {
		return fmt.Errorf("watching %s: %w", inputPath, err)
	}

	// Initial conversion before waiting for changes
	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	results := convertBatch(ctx, converter, files, params, workers)
	printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s for changes...\n", inputPath)
	}

	pending := make(map[string]bool)
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(event.Name)
			if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
				delete(pending, name)
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if st, err := os.Stat(name); err == nil && st.IsDir() {
				// New subdirectories join the watch.
				_ = watcher.Add(name)
				continue
			}
			if watchFile != "" && name != watchFile {
				continue
			}
			if !fileutil.IsMarkdownFile(name) {
				continue
			}
			pending[name] = true
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				timerC = timer.C
			} else {
				timer.Reset(debounceDelay)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			changed := pendingFiles(pending, outputDir, baseDir)
			pending = make(map[string]bool)
			if len(changed) == 0 {
				continue
			}
			results := convertBatch(ctx, converter, changed, params, workers)
			printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(env.Stderr, "watch error: %v\n", err)
		}
	}
}

// addWatchPaths registers inputPath with the watcher. Directories are added
// recursively since fsnotify does not recurse on its own; a single file
// watches its parent so editors that replace the file are still seen.
func addWatchPaths(watcher *fsnotify.Watcher, inputPath string, isDir bool) error {
	if !isDir {
		return watcher.Add(filepath.Dir(inputPath))
	}
	return filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// pendingFiles builds the re-conversion list for changed paths, dropping
// any that disappeared after their event fired.
func pendingFiles(pending map[string]bool, outputDir, baseDir string) []FileToConvert {
	files := make([]FileToConvert, 0, len(pending))
	for path := range pending {
		st, err := os.Stat(path)
		if err != nil || st.IsDir() {
			continue
		}
		files = append(files, FileToConvert{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, baseDir),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].InputPath < files[j].InputPath })
	return files
}
