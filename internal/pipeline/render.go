package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Policy values recognized by the renderer. Callers resolve user-facing
// configuration to these values before rendering; anything else falls back
// to the default arm of the relevant pass.
const (
	ListBullets = "bullets"
	ListNumbers = "numbers"
	ListNone    = "none"

	CodePreserve = "preserve"
	CodeRemove   = "remove"
	CodeInline   = "inline"

	TableSimple = "simple"
	TableGrid   = "grid"
	TableNone   = "none"

	HeadingHash      = "hash"
	HeadingUnderline = "underline"
	HeadingNone      = "none"
)

// RenderConfig holds the resolved rendering policies for one conversion.
type RenderConfig struct {
	PreserveLinks bool
	ListStyle     string
	CodeHandling  string
	TableFormat   string
	HeadingStyle  string
}

// Precompiled construct patterns. Link and image targets exclude closing
// parentheses, matching the constrained dialect rather than full CommonMark.
var (
	headingPattern = regexp.MustCompile(`(?m)^(#{1,6}) (.+)$`)

	// Optional leading bang so the link pass can skip image syntax without
	// lookbehind; the image pass then handles the bang form.
	linkOrImagePattern = regexp.MustCompile(`!?\[([^\]]*)\]\(([^)]+)\)`)
	imagePattern       = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

	fencedCodePattern = regexp.MustCompile("```([^`\\n]*)\\n?([\\s\\S]*?)```")
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")

	unorderedItemPattern = regexp.MustCompile(`(?m)^([ \t]*)[*+-] (.*)$`)
	orderedItemPattern   = regexp.MustCompile(`(?m)^([ \t]*)\d+\. (.*)$`)

	blockquotePattern = regexp.MustCompile(`(?m)^[ \t]*>[ \t]*(.*)$`)

	boldPattern      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	boldAltPattern   = regexp.MustCompile(`__(.+?)__`)
	italicPattern    = regexp.MustCompile(`\*([^*]+)\*`)
	italicAltPattern = regexp.MustCompile(`_([^_]+)_`)
	strikePattern    = regexp.MustCompile(`~~(.+?)~~`)

	horizontalRulePattern = regexp.MustCompile(`(?m)^[ \t]*-{3,}[ \t]*$`)
)

// Renderer defines the contract for the element rewrite sequence.
type Renderer interface {
	Render(content string, cfg RenderConfig) string
}

// RegexRenderer rewrites markdown constructs into plain text using a fixed
// sequence of whole-document passes. Each pass scans the output of the
// previous one, so order matters: emphasis stripping runs after headings and
// lists have been rewritten, and tables are recognized after cell content
// has already been normalized.
type RegexRenderer struct {
	sanitizer *HTMLSanitizer
}

// NewRegexRenderer creates a renderer with its embedded HTML sanitizer.
func NewRegexRenderer() *RegexRenderer {
	return &RegexRenderer{sanitizer: &HTMLSanitizer{}}
}

// Render applies the rewrite passes in their fixed order and sanitizes any
// raw HTML fragments that survive them. Every pass is total: malformed
// constructs pass through unchanged rather than failing.
func (r *RegexRenderer) Render(content string, cfg RenderConfig) string {
	// Rules are normalized before headings so the dash underlines the
	// heading pass generates keep their full length.
	content = rewriteHorizontalRules(content)
	content = rewriteHeadings(content, cfg.HeadingStyle)
	content = rewriteLinks(content, cfg.PreserveLinks)
	content = rewriteImages(content, cfg.PreserveLinks)
	content = rewriteCode(content, cfg.CodeHandling)
	content = rewriteLists(content, cfg.ListStyle)
	content = rewriteBlockquotes(content)
	content = stripEmphasis(content)
	content = rewriteTables(content, cfg.TableFormat)
	return r.sanitizer.Sanitize(content)
}

// rewriteHeadings renders # headings per the heading style. Hash style
// re-emits the construct unchanged. Underline style emits the content line
// followed by a rule of = (levels 1-2) or - (levels 3-6) repeated to the
// content's rune count.
func rewriteHeadings(content, style string) string {
	switch style {
	case HeadingUnderline:
		return headingPattern.ReplaceAllStringFunc(content, func(m string) string {
			sub := headingPattern.FindStringSubmatch(m)
			level := len(sub[1])
			text := sub[2]
			rule := "="
			if level > 2 {
				rule = "-"
			}
			return text + "\n" + strings.Repeat(rule, utf8.RuneCountInString(text))
		})
	case HeadingNone:
		return headingPattern.ReplaceAllString(content, "$2")
	default:
		return content
	}
}

// rewriteLinks rewrites [text](target) to "text (target)" when links are
// preserved, or "text" alone otherwise. Image syntax is skipped here and
// handled by the image pass.
func rewriteLinks(content string, preserve bool) string {
	return linkOrImagePattern.ReplaceAllStringFunc(content, func(m string) string {
		if strings.HasPrefix(m, "!") {
			return m
		}
		sub := linkOrImagePattern.FindStringSubmatch(m)
		if preserve {
			return sub[1] + " (" + sub[2] + ")"
		}
		return sub[1]
	})
}

// rewriteImages rewrites ![alt](target) to "[Image: alt] (target)" when
// links are preserved, or "[Image: alt]" otherwise. An empty alt becomes the
// literal "image".
func rewriteImages(content string, preserve bool) string {
	return imagePattern.ReplaceAllStringFunc(content, func(m string) string {
		sub := imagePattern.FindStringSubmatch(m)
		alt := sub[1]
		if alt == "" {
			alt = "image"
		}
		if preserve {
			return "[Image: " + alt + "] (" + sub[2] + ")"
		}
		return "[Image: " + alt + "]"
	})
}

// rewriteCode applies the code handling policy to fenced blocks and inline
// spans. Fenced blocks are handled first so inline-span matching never eats
// fence delimiters. The inline policy keeps content but drops delimiters and
// the opening fence's language tag.
func rewriteCode(content, policy string) string {
	switch policy {
	case CodeRemove:
		content = fencedCodePattern.ReplaceAllString(content, "")
		return inlineCodePattern.ReplaceAllString(content, "")
	case CodeInline:
		content = fencedCodePattern.ReplaceAllString(content, "$2")
		return inlineCodePattern.ReplaceAllString(content, "$1")
	default:
		return content
	}
}

// rewriteLists applies the list style to unordered (*, -, +) and ordered
// (digits + dot) items. Bullets rewrites both marker kinds to "• ". Numbers
// rewrites unordered markers to a literal "1. " without renumbering and
// leaves ordered items untouched. None drops markers entirely. Task-list
// checkboxes ride along as item content and render literally.
func rewriteLists(content, style string) string {
	switch style {
	case ListNumbers:
		return unorderedItemPattern.ReplaceAllString(content, "${1}1. $2")
	case ListNone:
		content = unorderedItemPattern.ReplaceAllString(content, "$1$2")
		return orderedItemPattern.ReplaceAllString(content, "$1$2")
	default:
		content = unorderedItemPattern.ReplaceAllString(content, "$1• $2")
		return orderedItemPattern.ReplaceAllString(content, "$1• $2")
	}
}

// rewriteBlockquotes re-emits quoted lines as "> " + content with the
// whitespace after the marker normalized to one space.
func rewriteBlockquotes(content string) string {
	return blockquotePattern.ReplaceAllString(content, "> $1")
}

// stripEmphasis removes bold, italic, and strikethrough delimiters, keeping
// the inner content. Double-delimiter forms run before single-delimiter
// forms so ** is never consumed as two italics. Formatting is stripped
// regardless of configuration.
func stripEmphasis(content string) string {
	content = boldPattern.ReplaceAllString(content, "$1")
	content = boldAltPattern.ReplaceAllString(content, "$1")
	content = italicPattern.ReplaceAllString(content, "$1")
	content = italicAltPattern.ReplaceAllString(content, "$1")
	return strikePattern.ReplaceAllString(content, "$1")
}

// rewriteHorizontalRules normalizes lines of three or more dashes to the
// literal "---".
func rewriteHorizontalRules(content string) string {
	return horizontalRulePattern.ReplaceAllString(content, "---")
}
