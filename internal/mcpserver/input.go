package mcpserver

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	md2text "github.com/alnah/go-md2text"
	"github.com/alnah/go-md2text/internal/docmeta"
	"github.com/alnah/go-md2text/internal/fileutil"
)

// renderOptions carries the rendering policies shared by every convert tool.
// It is embedded in tool inputs so the fields appear flat on the wire.
type renderOptions struct {
	PreserveLinks bool   `json:"preserve_links,omitempty" jsonschema:"Keep link targets as 'text (url)' instead of dropping them"`
	ListStyle     string `json:"list_style,omitempty" jsonschema:"List item prefix policy: bullets (default)\\, numbers\\, or none"`
	CodeHandling  string `json:"code_handling,omitempty" jsonschema:"Code block policy: preserve (default)\\, remove\\, or inline"`
	TableFormat   string `json:"table_format,omitempty" jsonschema:"Table rendering policy: simple (default)\\, grid\\, or none"`
	HeadingStyle  string `json:"heading_style,omitempty" jsonschema:"Heading rendering policy: hash (default)\\, underline\\, or none"`
	FrontMatter   bool   `json:"front_matter,omitempty" jsonschema:"Extract YAML front matter and return it as structured data"`
}

// engineOptions validates the policies and maps them onto engine options.
// Unknown policy values are rejected here rather than silently defaulted.
func (r renderOptions) engineOptions() (*md2text.Options, error) {
	opts := &md2text.Options{
		PreserveLinks: r.PreserveLinks,
		ListStyle:     md2text.ListStyle(r.ListStyle),
		CodeHandling:  md2text.CodeHandling(r.CodeHandling),
		TableFormat:   md2text.TableFormat(r.TableFormat),
		HeadingStyle:  md2text.HeadingStyle(r.HeadingStyle),
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// conversionOutput is the wire shape shared by the single-document convert
// tools. Path, FinalURL, and ContentType are filled only by the tools they
// apply to.
type conversionOutput struct {
	Text             string         `json:"text"`
	OriginalLength   int            `json:"original_length"`
	ConvertedLength  int            `json:"converted_length"`
	ProcessingTimeMS int64          `json:"processing_time_ms"`
	ElementsFound    []string       `json:"elements_found"`
	FrontMatter      map[string]any `json:"front_matter,omitempty"`
	Path             string         `json:"path,omitempty"`
	FinalURL         string         `json:"final_url,omitempty"`
	ContentType      string         `json:"content_type,omitempty"`
}

// convert runs one conversion, shapes the wire output, and records the
// outcome under the given tool name.
func (s *Server) convert(ctx context.Context, tool, markdown string, opts renderOptions) (*conversionOutput, error) {
	engineOpts, err := opts.engineOptions()
	if err != nil {
		return nil, err
	}

	var frontMatter map[string]any
	if opts.FrontMatter {
		meta, _, err := docmeta.Parse(markdown)
		if err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			frontMatter = meta
		}
	}

	start := time.Now()
	result, err := s.converter.Convert(ctx, md2text.Input{Markdown: markdown, Options: engineOpts})
	if err != nil {
		s.recorder.RecordConversion(tool, time.Since(start), len(markdown), 0, err)
		return nil, err
	}
	s.recorder.RecordConversion(tool, result.Metadata.Duration, len(markdown), len(result.Text), nil)

	return &conversionOutput{
		Text:             result.Text,
		OriginalLength:   result.Metadata.OriginalLength,
		ConvertedLength:  result.Metadata.ConvertedLength,
		ProcessingTimeMS: result.Metadata.Duration.Milliseconds(),
		ElementsFound:    elementNames(result.Metadata.Elements),
		FrontMatter:      frontMatter,
	}, nil
}

// readMarkdownFile validates that path names a regular markdown file under
// the input size cap and returns its contents.
func (s *Server) readMarkdownFile(path string) (string, error) {
	if !fileutil.IsMarkdownFile(path) {
		return "", fmt.Errorf("not a markdown file: %s (expected .md or .markdown)", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("not a regular file: %s", path)
	}
	if info.Size() > s.cfg.MaxInputBytes {
		return "", fmt.Errorf("file is %d bytes, exceeding the %d byte cap; raise MD2TEXT_MCP_MAX_INPUT_BYTES to convert it", info.Size(), s.cfg.MaxInputBytes)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path is tool input
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// elementNames converts element kinds to their wire strings, keeping the
// engine's fixed reporting order.
func elementNames(kinds []md2text.ElementKind) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

// countLines reports the number of lines in s. A trailing newline does not
// start an empty extra line.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
