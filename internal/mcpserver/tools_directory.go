package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/alnah/go-md2text/internal/fileutil"
)

const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

type convertDirectoryInput struct {
	Path      string `json:"path" jsonschema:"Directory to scan for markdown files"`
	Recursive bool   `json:"recursive,omitempty" jsonschema:"Also scan subdirectories"`
	OutputDir string `json:"output_dir,omitempty" jsonschema:"Directory to write converted .txt files into\\, mirroring the input tree. When omitted\\, converted text is returned inline per file."`
	renderOptions
}

// directoryFileResult reports the outcome for one file in a batch. Either
// Error is set or the conversion fields are.
type directoryFileResult struct {
	Path            string         `json:"path"`
	OutputPath      string         `json:"output_path,omitempty"`
	Text            string         `json:"text,omitempty"`
	OriginalLength  int            `json:"original_length,omitempty"`
	ConvertedLength int            `json:"converted_length,omitempty"`
	FrontMatter     map[string]any `json:"front_matter,omitempty"`
	Error           string         `json:"error,omitempty"`
}

type directoryOutput struct {
	JobID     string                `json:"job_id"`
	Directory string                `json:"directory"`
	Converted int                   `json:"converted"`
	Failed    int                   `json:"failed"`
	Files     []directoryFileResult `json:"files"`
}

func (s *Server) handleConvertDirectory(ctx context.Context, _ *mcp.CallToolRequest, input convertDirectoryInput) (*mcp.CallToolResult, directoryOutput, error) {
	if input.Path == "" {
		return errResult(errors.New("path is required")), directoryOutput{}, nil
	}
	// Reject bad policies once up front instead of failing every file.
	if _, err := input.engineOptions(); err != nil {
		return errResult(err), directoryOutput{}, nil
	}
	info, err := os.Stat(input.Path)
	if err != nil {
		return errResult(err), directoryOutput{}, nil
	}
	if !info.IsDir() {
		return errResult(fmt.Errorf("not a directory: %s", input.Path)), directoryOutput{}, nil
	}

	paths, err := discoverMarkdownFiles(input.Path, input.Recursive)
	if err != nil {
		return errResult(err), directoryOutput{}, nil
	}
	if len(paths) == 0 {
		return errResult(fmt.Errorf("no markdown files found in %s; set recursive=true to include subdirectories", input.Path)), directoryOutput{}, nil
	}
	if len(paths) > s.cfg.MaxBatchFiles {
		return errResult(fmt.Errorf("directory holds %d markdown files, exceeding the %d file cap; convert subdirectories separately or raise MD2TEXT_MCP_MAX_BATCH_FILES", len(paths), s.cfg.MaxBatchFiles)), directoryOutput{}, nil
	}

	out := directoryOutput{
		JobID:     uuid.NewString(),
		Directory: input.Path,
		Files:     make([]directoryFileResult, 0, len(paths)),
	}
	for _, path := range paths {
		res := s.convertOneOf(ctx, input, path)
		if res.Error != "" {
			out.Failed++
		} else {
			out.Converted++
		}
		out.Files = append(out.Files, res)
	}
	return nil, out, nil
}

// convertOneOf converts a single discovered file, writing the result to the
// output tree when one was requested. Failures land in the Error field so
// the rest of the batch keeps going.
func (s *Server) convertOneOf(ctx context.Context, input convertDirectoryInput, path string) directoryFileResult {
	res := directoryFileResult{Path: path}

	markdown, err := s.readMarkdownFile(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	converted, err := s.convert(ctx, "convert_directory", markdown, input.renderOptions)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.OriginalLength = converted.OriginalLength
	res.ConvertedLength = converted.ConvertedLength
	res.FrontMatter = converted.FrontMatter

	if input.OutputDir == "" {
		res.Text = converted.Text
		return res
	}
	outputPath, err := writeConverted(input.Path, path, input.OutputDir, converted.Text)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.OutputPath = outputPath
	return res
}

// discoverMarkdownFiles lists markdown files under root in lexical order.
// Without recursive only the top level is scanned.
func discoverMarkdownFiles(root string, recursive bool) ([]string, error) {
	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		var paths []string
		for _, entry := range entries {
			if entry.Type().IsRegular() && fileutil.IsMarkdownFile(entry.Name()) {
				paths = append(paths, filepath.Join(root, entry.Name()))
			}
		}
		return paths, nil
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && fileutil.IsMarkdownFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// writeConverted writes text to outputDir under the input file's path
// relative to root, swapping the extension for .txt.
func writeConverted(root, inputPath, outputDir, text string) (string, error) {
	rel, err := filepath.Rel(root, inputPath)
	if err != nil {
		rel = filepath.Base(inputPath)
	}
	outputPath := filepath.Join(outputDir, strings.TrimSuffix(rel, filepath.Ext(rel))+".txt")
	if err := os.MkdirAll(filepath.Dir(outputPath), dirPermissions); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	// #nosec G306 -- converted text files are meant to be readable
	if err := os.WriteFile(outputPath, []byte(text), filePermissions); err != nil {
		return "", fmt.Errorf("writing output file: %w", err)
	}
	return outputPath, nil
}
