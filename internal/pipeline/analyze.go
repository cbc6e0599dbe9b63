package pipeline

import (
	"regexp"
	"strings"
)

// A pipe row directly followed by a separator row of dash cells, matching
// what the table pass recognizes: no intervening blank line, every
// separator cell dashes with optional alignment colons.
var tableDetectPattern = regexp.MustCompile(`(?m)^[ \t]*\|.+\|[ \t]*\n[ \t]*\|(?:[ \t]*:?-+:?[ \t]*\|)+[ \t]*$`)

// Element kind names reported by the analyzer.
const (
	kindHeadings        = "headings"
	kindUnorderedLists  = "unordered-lists"
	kindOrderedLists    = "ordered-lists"
	kindLinks           = "links"
	kindImages          = "images"
	kindCodeBlocks      = "code-blocks"
	kindInlineCode      = "inline-code"
	kindBlockquotes     = "blockquotes"
	kindTables          = "tables"
	kindHorizontalRules = "horizontal-rules"
	kindBold            = "bold"
	kindItalic          = "italic"
	kindStrikethrough   = "strikethrough"
)

// elementDetectors pairs each kind with its presence check. Checks run
// against the original document, independent of the rewrite passes, using
// the same construct patterns the renderer matches on.
var elementDetectors = []struct {
	kind    string
	present func(content string) bool
}{
	{kindHeadings, headingPattern.MatchString},
	{kindUnorderedLists, unorderedItemPattern.MatchString},
	{kindOrderedLists, orderedItemPattern.MatchString},
	{kindLinks, hasLink},
	{kindImages, imagePattern.MatchString},
	{kindCodeBlocks, fencedCodePattern.MatchString},
	{kindInlineCode, inlineCodePattern.MatchString},
	{kindBlockquotes, blockquotePattern.MatchString},
	{kindTables, tableDetectPattern.MatchString},
	{kindHorizontalRules, horizontalRulePattern.MatchString},
	{kindBold, hasBold},
	{kindItalic, hasItalic},
	{kindStrikethrough, strikePattern.MatchString},
}

// Analyzer reports which Markdown constructs appear in a document.
type Analyzer interface {
	Analyze(content string) []string
}

// ElementAnalyzer scans a document for construct presence. Detection is
// purely informational and never fails.
type ElementAnalyzer struct{}

// Analyze returns the kinds present in content, in a fixed order.
func (a *ElementAnalyzer) Analyze(content string) []string {
	found := make([]string, 0, len(elementDetectors))
	for _, d := range elementDetectors {
		if d.present(content) {
			found = append(found, d.kind)
		}
	}
	return found
}

// hasLink reports a link match that is not image syntax.
func hasLink(content string) bool {
	for _, match := range linkOrImagePattern.FindAllString(content, -1) {
		if !strings.HasPrefix(match, "!") {
			return true
		}
	}
	return false
}

func hasBold(content string) bool {
	return boldPattern.MatchString(content) || boldAltPattern.MatchString(content)
}

func hasItalic(content string) bool {
	return italicPattern.MatchString(content) || italicAltPattern.MatchString(content)
}
