package pipeline

import (
	"regexp"
	"strings"
)

var (
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	trailingLineSpace  = regexp.MustCompile(`(?m)[ \t]+$`)
	leadingLineSpace   = regexp.MustCompile(`(?m)^[ \t]+`)
)

// Postprocessor normalizes whitespace in converted text.
type Postprocessor interface {
	Postprocess(content string) string
}

// WhitespacePostprocessor collapses blank-line runs to a single blank line,
// strips horizontal whitespace at both ends of every line, and trims the
// whole result. Trailing whitespace is stripped before collapsing so a line
// of pure whitespace counts as blank and cannot shield a run from the
// collapse.
type WhitespacePostprocessor struct{}

// Postprocess returns content with normalized whitespace.
func (p *WhitespacePostprocessor) Postprocess(content string) string {
	content = trailingLineSpace.ReplaceAllString(content, "")
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	content = leadingLineSpace.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}
