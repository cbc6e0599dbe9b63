package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Leading YAML front matter: an opening --- line at the very start of
	// input through the next --- line, both fences included. Matched before
	// line ending normalization, so a trailing CR on each fence line is
	// tolerated. Only the first block is removed.
	frontMatterBlock = regexp.MustCompile(`\A---\r?\n(?s:.*?\r?\n)?---(?:\r?\n|\z)`)

	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// HTML comment regions, non-greedy, spanning lines
	htmlComment = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// Preprocessor defines the contract for raw input normalization.
type Preprocessor interface {
	Preprocess(content string) string
}

// MarkdownPreprocessor normalizes raw markdown before element rewriting.
type MarkdownPreprocessor struct{}

// Preprocess strips leading YAML front matter, normalizes line endings,
// removes HTML comments, and trims surrounding whitespace, in that order.
func (p *MarkdownPreprocessor) Preprocess(content string) string {
	content = stripFrontMatter(content)
	content = normalizeLineEndings(content)
	content = stripHTMLComments(content)
	return strings.TrimSpace(content)
}

// stripFrontMatter removes the leading YAML front matter block, if any.
func stripFrontMatter(content string) string {
	return frontMatterBlock.ReplaceAllString(content, "")
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// stripHTMLComments removes <!-- ... --> regions, including multi-line ones.
// Unterminated comments are left as-is.
func stripHTMLComments(content string) string {
	return htmlComment.ReplaceAllString(content, "")
}
