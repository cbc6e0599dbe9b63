package main

import (
	"github.com/muesli/reflow/wordwrap"

	"github.com/alnah/go-md2text/internal/config"
)

// resolveWrapWidth returns the wrap column for converted output. A merged
// config value wins; otherwise text destined for a terminal wraps to the
// terminal width. Zero disables wrapping.
func resolveWrapWidth(cfg *config.Config, toStdout bool, env *Environment) int {
	if cfg.Convert.Wrap > 0 {
		return cfg.Convert.Wrap
	}
	if toStdout {
		return env.TerminalWidth()
	}
	return 0
}

// wrapText word-wraps text at the given column width.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}
