package main

// Notes:
// - wrapText delegates to the reflow wordwrap package; we pin down the CLI
//   contract (passthrough on zero width, no mid-word breaks) rather than
//   the wrapping algorithm itself.

import (
	"strings"
	"testing"

	"github.com/alnah/go-md2text/internal/config"
)

// ---------------------------------------------------------------------------
// TestResolveWrapWidth - Wrap column resolution
// ---------------------------------------------------------------------------

func TestResolveWrapWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfgWrap  int
		toStdout bool
		termCols int
		want     int
	}{
		{
			name:    "config value wins for file output",
			cfgWrap: 80,
			want:    80,
		},
		{
			name:     "config value wins over terminal width",
			cfgWrap:  80,
			toStdout: true,
			termCols: 120,
			want:     80,
		},
		{
			name:     "terminal width used for stdout",
			toStdout: true,
			termCols: 72,
			want:     72,
		},
		{
			name:     "no terminal means no wrapping",
			toStdout: true,
			termCols: 0,
			want:     0,
		},
		{
			name: "file output without config does not wrap",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.Convert.Wrap = tt.cfgWrap

			env, _, _ := testEnv()
			env.TerminalWidth = func() int { return tt.termCols }

			got := resolveWrapWidth(cfg, tt.toStdout, env)
			if got != tt.want {
				t.Errorf("resolveWrapWidth() = %d, want %d", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWrapText - Word wrapping behavior
// ---------------------------------------------------------------------------

func TestWrapText(t *testing.T) {
	t.Parallel()

	t.Run("zero width passes text through", func(t *testing.T) {
		t.Parallel()

		text := "a very long line that would normally wrap somewhere"
		if got := wrapText(text, 0); got != text {
			t.Errorf("wrapText() = %q, want unchanged", got)
		}
	})

	t.Run("negative width passes text through", func(t *testing.T) {
		t.Parallel()

		text := "unchanged"
		if got := wrapText(text, -5); got != text {
			t.Errorf("wrapText() = %q, want unchanged", got)
		}
	})

	t.Run("wraps at word boundaries", func(t *testing.T) {
		t.Parallel()

		got := wrapText("alpha beta gamma", 10)
		want := "alpha beta\ngamma"
		if got != want {
			t.Errorf("wrapText() = %q, want %q", got, want)
		}
	})

	t.Run("lines stay within width", func(t *testing.T) {
		t.Parallel()

		got := wrapText("one two three four five six seven eight nine ten", 12)
		for _, line := range strings.Split(got, "\n") {
			if len(line) > 12 {
				t.Errorf("line %q exceeds width 12", line)
			}
		}
	})

	t.Run("words longer than width are not broken", func(t *testing.T) {
		t.Parallel()

		word := "unbreakablesupercompound"
		got := wrapText(word, 8)
		if !strings.Contains(got, word) {
			t.Errorf("wrapText() = %q, long word should stay intact", got)
		}
	})

	t.Run("existing line breaks are preserved", func(t *testing.T) {
		t.Parallel()

		text := "line one\nline two"
		if got := wrapText(text, 80); got != text {
			t.Errorf("wrapText() = %q, want %q", got, text)
		}
	})
}
