package pipeline

import (
	"testing"
)

func TestRewriteTables(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		format   string
		expected string
	}{
		{
			name:     "simple joins cells with tabs",
			input:    "| a | b |\n| --- | --- |\n| 1 | 2 |",
			format:   TableSimple,
			expected: "a\tb\n1\t2",
		},
		{
			name:     "simple keeps surrounding text",
			input:    "before\n| h1 | h2 |\n|---|---|\n| x | y |\nafter",
			format:   TableSimple,
			expected: "before\nh1\th2\nx\ty\nafter",
		},
		{
			name:     "alignment colons accepted",
			input:    "| a | b |\n|:---|---:|\n| 1 | 2 |",
			format:   TableSimple,
			expected: "a\tb\n1\t2",
		},
		{
			name:     "header only table",
			input:    "| a | b |\n|---|---|",
			format:   TableSimple,
			expected: "a\tb",
		},
		{
			name:     "ragged body row",
			input:    "| a | b | c |\n|---|---|---|\n| 1 |",
			format:   TableSimple,
			expected: "a\tb\tc\n1",
		},
		{
			name:     "no separator passes through",
			input:    "| a | b |\n| c | d |",
			format:   TableSimple,
			expected: "| a | b |\n| c | d |",
		},
		{
			name:     "single pipe row passes through",
			input:    "| a |",
			format:   TableSimple,
			expected: "| a |",
		},
		{
			name:     "grid borders header and body",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			format:   TableGrid,
			expected: "+---+---+\n| a | b |\n+---+---+\n| 1 | 2 |\n+---+---+",
		},
		{
			name:     "grid pads to widest cell",
			input:    "| name | x |\n|---|---|\n| a | longer |",
			format:   TableGrid,
			expected: "+------+--------+\n| name | x      |\n+------+--------+\n| a    | longer |\n+------+--------+",
		},
		{
			name:     "grid header only has no body border",
			input:    "| a |\n|---|",
			format:   TableGrid,
			expected: "+---+\n| a |\n+---+",
		},
		{
			name:     "grid pads missing cells",
			input:    "| a | b |\n|---|---|\n| 1 |",
			format:   TableGrid,
			expected: "+---+---+\n| a | b |\n+---+---+\n| 1 |   |\n+---+---+",
		},
		{
			name:     "none drops the table",
			input:    "before\n| a | b |\n|---|---|\n| 1 | 2 |\nafter",
			format:   TableNone,
			expected: "before\nafter",
		},
		{
			name:     "unknown format falls back to simple",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			format:   "boxed",
			expected: "a\tb\n1\t2",
		},
		{
			name:     "two tables in one document",
			input:    "| a |\n|---|\n| 1 |\ntext\n| b |\n|---|\n| 2 |",
			format:   TableSimple,
			expected: "a\n1\ntext\nb\n2",
		},
		{
			name:     "no tables unchanged",
			input:    "plain\ntext",
			format:   TableSimple,
			expected: "plain\ntext",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewriteTables(tt.input, tt.format)
			if got != tt.expected {
				t.Errorf("rewriteTables() = %q, want %q", got, tt.expected)
			}
		})
	}
}
