package main

import (
	"errors"
	"os"

	md2text "github.com/alnah/go-md2text"
	"github.com/alnah/go-md2text/internal/config"
	"github.com/alnah/go-md2text/internal/dateutil"
	"github.com/alnah/go-md2text/internal/docmeta"
)

// Exit codes for the md2text CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2text.ErrEmptyMarkdown) ||
		errors.Is(err, md2text.ErrInvalidListStyle) ||
		errors.Is(err, md2text.ErrInvalidCodeHandling) ||
		errors.Is(err, md2text.ErrInvalidTableFormat) ||
		errors.Is(err, md2text.ErrInvalidHeadingStyle) ||
		errors.Is(err, docmeta.ErrInvalidFrontMatter) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrStdoutBatch) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrUnknownTransport) {
		return ExitUsage
	}

	return ExitGeneral
}
