package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlag wraps flag parse failures so they map to the usage exit code.
var ErrInvalidFlag = errors.New("invalid flag")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// policyFlags holds rendering policy flags.
type policyFlags struct {
	preserveLinks bool
	listStyle     string
	code          string
	tables        string
	headings      string
	frontMatter   bool
	dateFormat    string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	policy  policyFlags
	output  string
	workers int
	wrap    int
	watch   bool

	// changed records which flags were set on the command line, so merge
	// logic can tell an explicit zero from an absent flag.
	changed map[string]bool
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common    commonFlags
	transport string
	addr      string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPolicyFlags adds rendering policy flags to a FlagSet.
func addPolicyFlags(fs *flag.FlagSet, f *policyFlags) {
	fs.BoolVar(&f.preserveLinks, "preserve-links", false, "render links as \"text (url)\"")
	fs.StringVar(&f.listStyle, "list-style", "", "list rendering: bullets, numbers, none")
	fs.StringVar(&f.code, "code", "", "code block handling: preserve, remove, inline")
	fs.StringVar(&f.tables, "tables", "", "table rendering: simple, grid, none")
	fs.StringVar(&f.headings, "headings", "", "heading rendering: hash, underline, none")
	fs.BoolVar(&f.frontMatter, "front-matter", false, "emit front matter keys as a header block")
	fs.StringVar(&f.dateFormat, "date-format", "", "front-matter date display format (e.g. YYYY-MM-DD, long)")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (- for stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.IntVar(&f.wrap, "wrap", 0, "wrap output at N columns (0 = no wrapping)")
	fs.BoolVar(&f.watch, "watch", false, "re-convert when input files change")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addPolicyFlags(fs, &f.policy)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.changed = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.changed[fl.Name] = true })

	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string) (*serveFlags, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &serveFlags{}

	fs.StringVar(&f.transport, "transport", "", "server transport: stdio, http")
	fs.StringVar(&f.addr, "addr", "", "listen address for the http transport")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printServeUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return f, nil
}
