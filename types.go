package md2text

import (
	"fmt"
	"strings"
	"time"
)

// ListStyle selects the list-item prefix policy.
type ListStyle string

// List style constants.
const (
	ListStyleBullets ListStyle = "bullets"
	ListStyleNumbers ListStyle = "numbers"
	ListStyleNone    ListStyle = "none"
)

// CodeHandling selects the code block and span policy.
type CodeHandling string

// Code handling constants.
const (
	CodeHandlingPreserve CodeHandling = "preserve"
	CodeHandlingRemove   CodeHandling = "remove"
	CodeHandlingInline   CodeHandling = "inline"
)

// TableFormat selects the table rendering policy.
type TableFormat string

// Table format constants.
const (
	TableFormatSimple TableFormat = "simple"
	TableFormatGrid   TableFormat = "grid"
	TableFormatNone   TableFormat = "none"
)

// HeadingStyle selects the heading rendering policy.
type HeadingStyle string

// Heading style constants.
const (
	HeadingStyleHash      HeadingStyle = "hash"
	HeadingStyleUnderline HeadingStyle = "underline"
	HeadingStyleNone      HeadingStyle = "none"
)

// Options configures one conversion. The zero value means defaults: links
// dropped, bullet lists, code preserved, simple tables, hash headings.
// Convert treats unrecognized values like unset ones; use Validate to
// reject them instead.
type Options struct {
	PreserveLinks bool
	ListStyle     ListStyle
	CodeHandling  CodeHandling
	TableFormat   TableFormat
	HeadingStyle  HeadingStyle
}

// DefaultOptions returns options with all policies at their defaults.
func DefaultOptions() *Options {
	return &Options{
		ListStyle:    ListStyleBullets,
		CodeHandling: CodeHandlingPreserve,
		TableFormat:  TableFormatSimple,
		HeadingStyle: HeadingStyleHash,
	}
}

// Validate checks that every set option carries a recognized value.
// Returns nil if o is nil (nil means use defaults). Empty fields are valid.
// Does not mutate - uses case-insensitive comparison.
func (o *Options) Validate() error {
	if o == nil {
		return nil
	}

	if !isValidListStyle(o.ListStyle) {
		return fmt.Errorf("%w: %q", ErrInvalidListStyle, o.ListStyle)
	}

	if !isValidCodeHandling(o.CodeHandling) {
		return fmt.Errorf("%w: %q", ErrInvalidCodeHandling, o.CodeHandling)
	}

	if !isValidTableFormat(o.TableFormat) {
		return fmt.Errorf("%w: %q", ErrInvalidTableFormat, o.TableFormat)
	}

	if !isValidHeadingStyle(o.HeadingStyle) {
		return fmt.Errorf("%w: %q", ErrInvalidHeadingStyle, o.HeadingStyle)
	}

	return nil
}

// isValidListStyle checks if s is a known list style (case-insensitive).
func isValidListStyle(s ListStyle) bool {
	switch ListStyle(strings.ToLower(string(s))) {
	case "", ListStyleBullets, ListStyleNumbers, ListStyleNone:
		return true
	}
	return false
}

// isValidCodeHandling checks if c is a known code policy (case-insensitive).
func isValidCodeHandling(c CodeHandling) bool {
	switch CodeHandling(strings.ToLower(string(c))) {
	case "", CodeHandlingPreserve, CodeHandlingRemove, CodeHandlingInline:
		return true
	}
	return false
}

// isValidTableFormat checks if f is a known table format (case-insensitive).
func isValidTableFormat(f TableFormat) bool {
	switch TableFormat(strings.ToLower(string(f))) {
	case "", TableFormatSimple, TableFormatGrid, TableFormatNone:
		return true
	}
	return false
}

// isValidHeadingStyle checks if h is a known heading style (case-insensitive).
func isValidHeadingStyle(h HeadingStyle) bool {
	switch HeadingStyle(strings.ToLower(string(h))) {
	case "", HeadingStyleHash, HeadingStyleUnderline, HeadingStyleNone:
		return true
	}
	return false
}

// Input contains conversion parameters.
type Input struct {
	Markdown string   // Markdown content (required)
	Options  *Options // Rendering policies (optional, nil = defaults)
}

// ElementKind names a Markdown construct category reported in metadata.
type ElementKind string

// Element kinds, in the order they are reported.
const (
	ElementHeadings        ElementKind = "headings"
	ElementUnorderedLists  ElementKind = "unordered-lists"
	ElementOrderedLists    ElementKind = "ordered-lists"
	ElementLinks           ElementKind = "links"
	ElementImages          ElementKind = "images"
	ElementCodeBlocks      ElementKind = "code-blocks"
	ElementInlineCode      ElementKind = "inline-code"
	ElementBlockquotes     ElementKind = "blockquotes"
	ElementTables          ElementKind = "tables"
	ElementHorizontalRules ElementKind = "horizontal-rules"
	ElementBold            ElementKind = "bold"
	ElementItalic          ElementKind = "italic"
	ElementStrikethrough   ElementKind = "strikethrough"
)

// Metadata describes one conversion. Elements reflects the original input,
// independent of the options used; lengths are in bytes.
type Metadata struct {
	OriginalLength  int
	ConvertedLength int
	Duration        time.Duration
	Elements        []ElementKind
}

// Result is the outcome of one conversion.
type Result struct {
	Text     string
	Metadata Metadata
}
