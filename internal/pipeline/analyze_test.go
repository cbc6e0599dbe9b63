package pipeline

import (
	"reflect"
	"testing"
)

func TestElementAnalyzer_Analyze(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "plain text",
			input:    "nothing markdown here",
			expected: []string{},
		},
		{
			name:     "heading",
			input:    "# Title",
			expected: []string{"headings"},
		},
		{
			name:     "unordered list",
			input:    "- item",
			expected: []string{"unordered-lists"},
		},
		{
			name:     "ordered list",
			input:    "1. item",
			expected: []string{"ordered-lists"},
		},
		{
			name:     "link",
			input:    "[a](b)",
			expected: []string{"links"},
		},
		{
			name:     "image is not a link",
			input:    "![a](b)",
			expected: []string{"images"},
		},
		{
			name:     "fenced block also reports inline code",
			input:    "```\ncode\n```",
			expected: []string{"code-blocks", "inline-code"},
		},
		{
			name:     "inline code",
			input:    "`x`",
			expected: []string{"inline-code"},
		},
		{
			name:     "blockquote",
			input:    "> q",
			expected: []string{"blockquotes"},
		},
		{
			name:     "table",
			input:    "| a |\n| --- |",
			expected: []string{"tables"},
		},
		{
			name:     "aligned separator table",
			input:    "| a | b |\n| :-- | --: |\n| 1 | 2 |",
			expected: []string{"tables"},
		},
		{
			name:     "blank line before separator is not a table",
			input:    "| a |\n\n| --- |",
			expected: []string{},
		},
		{
			name:     "non-dash separator cell is not a table",
			input:    "| a | b |\n| --- | x |",
			expected: []string{},
		},
		{
			name:     "horizontal rule",
			input:    "---",
			expected: []string{"horizontal-rules"},
		},
		{
			name:     "front matter fences count as rules",
			input:    "---\ntitle: x\n---\nbody",
			expected: []string{"horizontal-rules"},
		},
		{
			name:     "bold also reports italic",
			input:    "**x**",
			expected: []string{"bold", "italic"},
		},
		{
			name:     "italic",
			input:    "*x*",
			expected: []string{"italic"},
		},
		{
			name:     "underscore bold",
			input:    "__x__",
			expected: []string{"bold", "italic"},
		},
		{
			name:     "strikethrough",
			input:    "~~x~~",
			expected: []string{"strikethrough"},
		},
		{
			name:     "basic document",
			input:    "# Title\n\n[link](http://e.com)\n\n**bold**",
			expected: []string{"headings", "links", "bold", "italic"},
		},
		{
			name:  "full document in fixed order",
			input: "# H\n- u\n1. o\n[l](t)\n![i](t)\n`c`\n> q\n---\n~~s~~\n| a |\n|---|\n",
			expected: []string{
				"headings",
				"unordered-lists",
				"ordered-lists",
				"links",
				"images",
				"inline-code",
				"blockquotes",
				"tables",
				"horizontal-rules",
				"strikethrough",
			},
		},
	}

	analyzer := &ElementAnalyzer{}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.Analyze(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Analyze() = %v, want %v", got, tt.expected)
			}
		})
	}
}
