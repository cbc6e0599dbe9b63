// Package dateutil formats front-matter date values for display.
//
// Formats are written with user-friendly tokens (YYYY-MM-DD, "MMMM D, YYYY")
// instead of Go reference-time layouts. The package converts a token format
// to a Go layout once, then renders whatever date representation the YAML
// front matter produced: a time.Time from the decoder or a string in one of
// the common document layouts.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is the format applied when none is configured.
const DefaultDateFormat = "YYYY-MM-DD"

// dateTokens maps user-friendly tokens to Go time format components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets provides named shortcuts for common date formats.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// valueLayouts are the string representations accepted from front matter,
// tried in order. Date-only layouts come last so a timestamped value is not
// truncated by a premature match.
var valueLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"02 Jan 2006",
}

// Layout converts a token format string, or a preset name, to Go's time
// layout. Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Brackets escape literal
// text: [Date] preserves "Date". Any non-token characters outside brackets
// are preserved as literals. Returns ErrInvalidDateFormat if the format is
// empty, too long, or has an unclosed bracket.
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}

	var result strings.Builder
	result.Grow(len(format) + 10)

	i := 0
	for i < len(format) {
		// Bracket-escaped literal text
		if format[i] == '[' {
			end := strings.Index(format[i+1:], "]")
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			result.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(format[i:], t.token) {
				result.WriteString(t.goFmt)
				i += len(t.token)
				matched = true
				break
			}
		}

		if !matched {
			result.WriteByte(format[i])
			i++
		}
	}

	return result.String(), nil
}

// FormatValue renders a front-matter value with the given Go layout. It
// accepts a time.Time directly, or a string in one of the common document
// date layouts. Values that are not recognizable dates report ok=false so
// callers can fall back to printing them verbatim.
func FormatValue(value any, layout string) (formatted string, ok bool) {
	switch v := value.(type) {
	case time.Time:
		return v.Format(layout), true
	case string:
		s := strings.TrimSpace(v)
		for _, l := range valueLayouts {
			if t, err := time.Parse(l, s); err == nil {
				return t.Format(layout), true
			}
		}
		return "", false
	default:
		return "", false
	}
}
