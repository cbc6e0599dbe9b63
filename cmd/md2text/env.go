package main

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

// Environment holds injectable dependencies for testability.
// Includes I/O streams, time, and terminal detection.
type Environment struct {
	Now           func() time.Time
	Stdin         io.Reader
	Stdout        io.Writer
	Stderr        io.Writer
	TerminalWidth func() int // 0 when stdout is not a terminal
}

// DefaultEnv returns the production environment backed by the process
// streams and the real terminal.
func DefaultEnv() *Environment {
	return &Environment{
		Now:           time.Now,
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		TerminalWidth: stdoutTerminalWidth,
	}
}

// stdoutTerminalWidth reports the column width of the terminal attached
// to stdout, or 0 when stdout is not a terminal.
func stdoutTerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 0
	}
	return w
}
