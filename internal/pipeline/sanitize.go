package pipeline

import "regexp"

var (
	scriptRegionPattern = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	iframeRegionPattern = regexp.MustCompile(`(?is)<iframe\b[^>]*>.*?</iframe\s*>`)

	// Optional closing bracket so an unterminated tag at end of input is
	// still swept out.
	strayScriptTagPattern = regexp.MustCompile(`(?i)</?script\b[^>]*>?`)
	strayIframeTagPattern = regexp.MustCompile(`(?i)</?iframe\b[^>]*>?`)

	javascriptSchemePattern = regexp.MustCompile(`(?i)javascript:`)
	dataBase64Pattern       = regexp.MustCompile(`(?i)data:[^,\s]*base64[^\s"')\]>]*`)
)

// Sanitizer removes active HTML content from converted text.
type Sanitizer interface {
	Sanitize(content string) string
}

// HTMLSanitizer strips script and iframe regions, stray script and iframe
// tags, javascript: schemes, and base64 data URIs. Removal repeats until the
// content stops changing, so token fragments that reassemble into a tag
// after one pass are removed by the next. The repetition also makes the
// operation idempotent: sanitizing already sanitized text returns it
// unchanged.
type HTMLSanitizer struct{}

// Sanitize returns content with all active HTML removed.
func (s *HTMLSanitizer) Sanitize(content string) string {
	for {
		next := sanitizeOnce(content)
		if next == content {
			return content
		}
		content = next
	}
}

// sanitizeOnce applies each removal pattern a single time. Every removal
// strictly shrinks the content, so the fixpoint loop in Sanitize terminates.
func sanitizeOnce(content string) string {
	content = scriptRegionPattern.ReplaceAllString(content, "")
	content = iframeRegionPattern.ReplaceAllString(content, "")
	content = strayScriptTagPattern.ReplaceAllString(content, "")
	content = strayIframeTagPattern.ReplaceAllString(content, "")
	content = javascriptSchemePattern.ReplaceAllString(content, "")
	content = dataBase64Pattern.ReplaceAllString(content, "")
	return content
}
