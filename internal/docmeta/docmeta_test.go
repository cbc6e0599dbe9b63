package docmeta

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("document with front matter", func(t *testing.T) {
		t.Parallel()
		raw := "---\ntitle: Hello\ndraft: true\n---\n\n# Heading\n\nBody text.\n"

		meta, body, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if meta["title"] != "Hello" {
			t.Errorf("meta[title] = %v, want %q", meta["title"], "Hello")
		}
		if meta["draft"] != true {
			t.Errorf("meta[draft] = %v, want true", meta["draft"])
		}
		if !strings.Contains(body, "# Heading") {
			t.Errorf("body should contain heading, got %q", body)
		}
		if strings.Contains(body, "title:") {
			t.Errorf("body should not contain front matter, got %q", body)
		}
	})

	t.Run("document without front matter", func(t *testing.T) {
		t.Parallel()
		raw := "# Just a doc\n\nNo metadata here.\n"

		meta, body, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(meta) != 0 {
			t.Errorf("meta = %v, want empty map", meta)
		}
		if body != raw {
			t.Errorf("body = %q, want original input", body)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		meta, body, err := Parse("")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(meta) != 0 {
			t.Errorf("meta = %v, want empty map", meta)
		}
		if body != "" {
			t.Errorf("body = %q, want empty", body)
		}
	})

	t.Run("front matter only", func(t *testing.T) {
		t.Parallel()
		raw := "---\ntitle: Standalone\n---\n"

		meta, body, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if meta["title"] != "Standalone" {
			t.Errorf("meta[title] = %v, want %q", meta["title"], "Standalone")
		}
		if strings.TrimSpace(body) != "" {
			t.Errorf("body = %q, want blank", body)
		}
	})

	t.Run("malformed front matter returns error", func(t *testing.T) {
		t.Parallel()
		raw := "---\ntitle: [unclosed\n---\nbody\n"

		_, _, err := Parse(raw)
		if !errors.Is(err, ErrInvalidFrontMatter) {
			t.Errorf("error = %v, want ErrInvalidFrontMatter", err)
		}
	})

	t.Run("nested values survive JSON marshaling", func(t *testing.T) {
		t.Parallel()
		raw := "---\nauthor:\n  name: Ada\n  email: ada@example.com\ntags:\n  - one\n  - two\n---\nbody\n"

		meta, _, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		author, ok := meta["author"].(map[string]any)
		if !ok {
			t.Fatalf("meta[author] = %T, want map[string]any", meta["author"])
		}
		if author["name"] != "Ada" {
			t.Errorf("author[name] = %v, want %q", author["name"], "Ada")
		}

		tags, ok := meta["tags"].([]any)
		if !ok {
			t.Fatalf("meta[tags] = %T, want []any", meta["tags"])
		}
		if len(tags) != 2 || tags[0] != "one" {
			t.Errorf("tags = %v, want [one two]", tags)
		}

		if _, err := json.Marshal(meta); err != nil {
			t.Errorf("metadata should be JSON-marshalable: %v", err)
		}
	})

	t.Run("toml fences pass through as text", func(t *testing.T) {
		t.Parallel()
		raw := "+++\ntitle = \"x\"\n+++\nbody\n"

		meta, body, err := Parse(raw)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(meta) != 0 {
			t.Errorf("meta = %v, want empty map", meta)
		}
		if body != raw {
			t.Errorf("body = %q, want original input", body)
		}
	})
}
