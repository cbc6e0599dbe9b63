package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	md2text "github.com/alnah/go-md2text"
	"github.com/alnah/go-md2text/internal/config"
	"github.com/alnah/go-md2text/internal/dateutil"
	"github.com/alnah/go-md2text/internal/docmeta"
	"github.com/alnah/go-md2text/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteOutput  = errors.New("failed to write output file")
	ErrStdoutBatch  = errors.New("stdout output requires a single input file")
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	opts        *md2text.Options
	frontMatter bool
	dateLayout  string
	wrap        int
}

// runConvertCmd parses convert flags and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	// Load configuration
	cfg := config.DefaultConfig()
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		var err error
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(nil))
			}
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge environment then CLI flags into config (CLI wins)
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	// Validate merged worker count, covering flag, env, and config values
	if err := validateWorkers(cfg.Workers); err != nil {
		return err
	}
	workers := resolveWorkers(cfg.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", workers)
	}

	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}

	params := &conversionParams{
		opts:        opts,
		frontMatter: cfg.Convert.FrontMatter,
	}
	if params.frontMatter {
		params.dateLayout, err = resolveDateLayout(cfg.Convert.DateFormat)
		if err != nil {
			return err
		}
	}

	converter := md2text.NewConverter()

	// Stdin mode: a single document arrives on stdin
	if len(positionalArgs) > 0 && positionalArgs[0] == "-" {
		params.wrap = resolveWrapWidth(cfg, stdoutDestination(flags.output), env)
		return convertStdin(ctx, converter, flags, params, env)
	}

	// Resolve input path
	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	// Stdout mode: a single file converted to stdout
	if flags.output == "-" {
		params.wrap = resolveWrapWidth(cfg, true, env)
		return convertToStdout(ctx, converter, inputPath, params, env)
	}

	// Resolve output directory
	outputDir := resolveOutputDir(flags.output, cfg)

	// Discover files to convert
	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no markdown files found in %s", inputPath)
	}

	params.wrap = resolveWrapWidth(cfg, false, env)

	if flags.watch {
		return runWatch(ctx, converter, inputPath, outputDir, params, flags, workers, env)
	}

	// Convert files
	results := convertBatch(ctx, converter, files, params, workers)

	// Print results
	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
// Bool and numeric flags consult the changed set, so an explicit zero wins
// over a config value while an absent flag does not.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Policy flags
	if flags.changed["preserve-links"] {
		cfg.Convert.PreserveLinks = flags.policy.preserveLinks
	}
	if flags.policy.listStyle != "" {
		cfg.Convert.ListStyle = flags.policy.listStyle
	}
	if flags.policy.code != "" {
		cfg.Convert.Code = flags.policy.code
	}
	if flags.policy.tables != "" {
		cfg.Convert.Tables = flags.policy.tables
	}
	if flags.policy.headings != "" {
		cfg.Convert.Headings = flags.policy.headings
	}
	if flags.changed["front-matter"] {
		cfg.Convert.FrontMatter = flags.policy.frontMatter
	}
	if flags.policy.dateFormat != "" {
		cfg.Convert.DateFormat = flags.policy.dateFormat
	}

	// I/O flags
	if flags.changed["wrap"] {
		cfg.Convert.Wrap = flags.wrap
	}
	if flags.changed["workers"] {
		cfg.Workers = flags.workers
	}
}

// buildOptions maps merged config policies onto engine options. The CLI is
// stricter than the engine here: unknown policy values are usage errors
// instead of silently falling back to defaults.
func buildOptions(cfg *config.Config) (*md2text.Options, error) {
	opts := md2text.DefaultOptions()
	opts.PreserveLinks = cfg.Convert.PreserveLinks
	if cfg.Convert.ListStyle != "" {
		opts.ListStyle = md2text.ListStyle(cfg.Convert.ListStyle)
	}
	if cfg.Convert.Code != "" {
		opts.CodeHandling = md2text.CodeHandling(cfg.Convert.Code)
	}
	if cfg.Convert.Tables != "" {
		opts.TableFormat = md2text.TableFormat(cfg.Convert.Tables)
	}
	if cfg.Convert.Headings != "" {
		opts.HeadingStyle = md2text.HeadingStyle(cfg.Convert.Headings)
	}
	if err := opts.Validate(); err != nil {
		return nil, policyError(err)
	}
	return opts, nil
}

// policyError appends the accepted values for the policy that failed.
func policyError(err error) error {
	switch {
	case errors.Is(err, md2text.ErrInvalidListStyle):
		return fmt.Errorf("%w%s", err, hints.ForInvalidPolicy("bullets", "numbers", "none"))
	case errors.Is(err, md2text.ErrInvalidCodeHandling):
		return fmt.Errorf("%w%s", err, hints.ForInvalidPolicy("preserve", "remove", "inline"))
	case errors.Is(err, md2text.ErrInvalidTableFormat):
		return fmt.Errorf("%w%s", err, hints.ForInvalidPolicy("simple", "grid", "none"))
	case errors.Is(err, md2text.ErrInvalidHeadingStyle):
		return fmt.Errorf("%w%s", err, hints.ForInvalidPolicy("hash", "underline", "none"))
	default:
		return err
	}
}

// resolveInputPath determines the input from positional args or config.
func resolveInputPath(positionalArgs []string, cfg *config.Config) (string, error) {
	if len(positionalArgs) > 0 {
		return positionalArgs[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output location from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// stdoutDestination reports whether the output flag sends text to stdout.
func stdoutDestination(flagOutput string) bool {
	return flagOutput == "" || flagOutput == "-"
}

// convertStdin converts a single document read from stdin. Output goes to
// stdout unless --output names a file.
func convertStdin(ctx context.Context, converter *md2text.Converter, flags *convertFlags, params *conversionParams, env *Environment) error {
	content, err := io.ReadAll(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	text, err := renderText(ctx, converter, string(content), params)
	if err != nil {
		return err
	}

	if stdoutDestination(flags.output) {
		fmt.Fprintln(env.Stdout, text)
		return nil
	}
	return writeTextFile(flags.output, text)
}

// convertToStdout converts a single markdown file and prints the text.
func convertToStdout(ctx context.Context, converter *md2text.Converter, inputPath string, params *conversionParams, env *Environment) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrStdoutBatch, inputPath)
	}
	if err := validateMarkdownExtension(inputPath); err != nil {
		return err
	}

	content, err := os.ReadFile(inputPath) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	text, err := renderText(ctx, converter, string(content), params)
	if err != nil {
		return err
	}

	fmt.Fprintln(env.Stdout, text)
	return nil
}

// renderText converts one markdown document according to params. The engine
// strips front matter on its own; docmeta only supplies the header block.
func renderText(ctx context.Context, converter *md2text.Converter, markdown string, params *conversionParams) (string, error) {
	var header string
	if params.frontMatter {
		meta, _, err := docmeta.Parse(markdown)
		if err != nil {
			return "", err
		}
		header = frontMatterHeader(meta, params.dateLayout)
	}

	result, err := converter.Convert(ctx, md2text.Input{Markdown: markdown, Options: params.opts})
	if err != nil {
		return "", err
	}

	text := result.Text
	if header != "" {
		text = header + "\n" + text
	}
	if params.wrap > 0 {
		text = wrapText(text, params.wrap)
	}
	return text, nil
}

// resolveDateLayout converts the configured date format to a Go time layout,
// falling back to the default format when none is configured.
func resolveDateLayout(format string) (string, error) {
	if format == "" {
		format = dateutil.DefaultDateFormat
	}
	layout, err := dateutil.Layout(format)
	if err != nil {
		return "", fmt.Errorf("invalid date format %q: %w", format, err)
	}
	return layout, nil
}

// dateKeys are the front-matter fields rendered through the date layout.
var dateKeys = map[string]bool{
	"date":    true,
	"updated": true,
}

// frontMatterHeader renders front matter keys as "key: value" lines in
// sorted order. Date fields are reformatted per dateLayout when their value
// parses as a date; anything else prints verbatim. Empty metadata yields an
// empty string.
func frontMatterHeader(meta map[string]any, dateLayout string) string {
	if len(meta) == 0 {
		return ""
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		value := meta[k]
		if dateLayout != "" && dateKeys[k] {
			if formatted, ok := dateutil.FormatValue(value, dateLayout); ok {
				value = formatted
			}
		}
		fmt.Fprintf(&b, "%s: %v\n", k, value)
	}
	return b.String()
}
