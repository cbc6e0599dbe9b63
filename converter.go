package md2text

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2text/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.Preprocessor  = (*pipeline.MarkdownPreprocessor)(nil)
	_ pipeline.Renderer      = (*pipeline.RegexRenderer)(nil)
	_ pipeline.Postprocessor = (*pipeline.WhitespacePostprocessor)(nil)
	_ pipeline.Sanitizer     = (*pipeline.HTMLSanitizer)(nil)
	_ pipeline.Analyzer      = (*pipeline.ElementAnalyzer)(nil)
)

// Converter orchestrates the markdown-to-text conversion pipeline.
// Create with NewConverter and use Convert for conversion. A Converter holds
// no per-call state, so a single instance serves concurrent conversions.
type Converter struct {
	preprocessor  pipeline.Preprocessor
	renderer      pipeline.Renderer
	postprocessor pipeline.Postprocessor
	sanitizer     pipeline.Sanitizer
	analyzer      pipeline.Analyzer
}

// NewConverter creates a Converter with the standard pipeline stages.
func NewConverter() *Converter {
	return &Converter{
		preprocessor:  &pipeline.MarkdownPreprocessor{},
		renderer:      pipeline.NewRegexRenderer(),
		postprocessor: &pipeline.WhitespacePostprocessor{},
		sanitizer:     &pipeline.HTMLSanitizer{},
		analyzer:      &pipeline.ElementAnalyzer{},
	}
}

// Convert runs the full pipeline and returns the plain-text result with
// metadata. Element analysis runs against the original input, so the
// reported elements do not depend on the options used. Recovers from
// internal panics to prevent crashes from propagating to callers; every
// failure surfaces as a ConversionError.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			if convErr, ok := r.(*ConversionError); ok {
				err = convErr
				return
			}
			err = &ConversionError{
				Message: "internal conversion failure",
				Cause:   fmt.Errorf("%v", r),
			}
		}
	}()

	start := time.Now()

	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	content := c.preprocessor.Preprocess(input.Markdown)
	if err := cancelled(ctx); err != nil {
		return nil, err
	}

	content = c.renderer.Render(content, toRenderConfig(input.Options))
	if err := cancelled(ctx); err != nil {
		return nil, err
	}

	content = c.postprocessor.Postprocess(content)

	// Final defense-in-depth pass; the renderer has already sanitized.
	content = c.sanitizer.Sanitize(content)

	elements := c.analyzer.Analyze(input.Markdown)

	return &Result{
		Text: content,
		Metadata: Metadata{
			OriginalLength:  len(input.Markdown),
			ConvertedLength: len(content),
			Duration:        time.Since(start),
			Elements:        toElementKinds(elements),
		},
	}, nil
}

// Analyze reports which construct categories appear in markdown, in the
// fixed ElementKind order. It never renders, so the answer is independent
// of any Options. Purely informational; an empty input yields an empty
// slice rather than an error.
func (c *Converter) Analyze(markdown string) []ElementKind {
	return toElementKinds(c.analyzer.Analyze(markdown))
}

// cancelled wraps a context error so callers still see a ConversionError.
func cancelled(ctx context.Context) error {
	if ctx.Err() != nil {
		return &ConversionError{Message: "conversion cancelled", Cause: ctx.Err()}
	}
	return nil
}

// toRenderConfig maps public Options to internal pipeline.RenderConfig.
// Values are lowercased only; the renderer treats anything it does not
// recognize as the documented default, which makes unset and unrecognized
// behave identically.
func toRenderConfig(o *Options) pipeline.RenderConfig {
	if o == nil {
		o = DefaultOptions()
	}
	return pipeline.RenderConfig{
		PreserveLinks: o.PreserveLinks,
		ListStyle:     strings.ToLower(string(o.ListStyle)),
		CodeHandling:  strings.ToLower(string(o.CodeHandling)),
		TableFormat:   strings.ToLower(string(o.TableFormat)),
		HeadingStyle:  strings.ToLower(string(o.HeadingStyle)),
	}
}

// toElementKinds converts the analyzer's kind names to public ElementKind
// values.
func toElementKinds(kinds []string) []ElementKind {
	out := make([]ElementKind, len(kinds))
	for i, k := range kinds {
		out[i] = ElementKind(k)
	}
	return out
}
