// Package docmeta extracts YAML front matter from markdown documents.
//
// The conversion engine strips front matter on its own; this package is for
// callers that need the metadata itself, such as the --front-matter header
// block and the MCP tool outputs.
package docmeta

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-md2text/internal/yamlutil"
)

// ErrInvalidFrontMatter indicates a front-matter block that could not be
// decoded as YAML.
var ErrInvalidFrontMatter = errors.New("invalid front matter")

// yamlFormat recognizes only "---" fences, matching what the conversion
// engine strips. TOML and JSON front matter pass through as regular text.
var yamlFormat = frontmatter.NewFormat("---", "---", decodeYAML)

// Parse splits a markdown document into its front-matter fields and the
// remaining body. Documents without front matter return an empty map and
// the original text.
func Parse(raw string) (map[string]any, string, error) {
	var meta map[string]any

	body, err := frontmatter.Parse(strings.NewReader(raw), &meta, yamlFormat)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
	}
	if meta == nil {
		meta = map[string]any{}
	}

	return meta, string(body), nil
}

// decodeYAML adapts yamlutil to the frontmatter format interface. Decoding
// through yamlutil keeps nested mappings string-keyed, so parsed metadata
// survives encoding/json marshaling in tool outputs.
func decodeYAML(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return yamlutil.Unmarshal(data, v)
}
