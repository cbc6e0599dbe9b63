package main

// Notes:
// - This file contains test helpers shared across cmd tests.
// - These are not functions under test themselves, but supporting infrastructure.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"strings"
	"time"

	md2text "github.com/alnah/go-md2text"
)

// testEnv returns an Environment wired to in-memory buffers so tests can
// inspect what the CLI wrote.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:           time.Now,
		Stdin:         strings.NewReader(""),
		Stdout:        &stdout,
		Stderr:        &stderr,
		TerminalWidth: func() int { return 0 },
	}
	return env, &stdout, &stderr
}

// testEnvWithStdin is testEnv with stdin preloaded.
func testEnvWithStdin(input string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	env, stdout, stderr := testEnv()
	env.Stdin = strings.NewReader(input)
	return env, stdout, stderr
}

// testParams returns conversion params with engine defaults.
func testParams() *conversionParams {
	return &conversionParams{opts: md2text.DefaultOptions()}
}
