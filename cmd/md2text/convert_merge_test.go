package main

// Notes:
// - mergeFlags: we test override and preserve behavior for every flag.
//   String policies merge on non-empty values; bool and numeric flags merge
//   on the changed set so an explicit zero still wins over config.
// - buildOptions: we test policy mapping onto engine options and that
//   invalid values become usage errors with hints.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"strings"
	"testing"
	"time"

	md2text "github.com/alnah/go-md2text"
	"github.com/alnah/go-md2text/internal/config"
	"github.com/alnah/go-md2text/internal/dateutil"
)

// changedSet builds a changed map from flag names.
func changedSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI flags override config values
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		flags *convertFlags
		cfg   *config.Config
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name:  "empty flags preserve config policies",
			flags: &convertFlags{},
			cfg: &config.Config{Convert: config.ConvertConfig{
				ListStyle: "numbers",
				Tables:    "grid",
			}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Convert.ListStyle != "numbers" {
					t.Errorf("ListStyle = %q, want %q", cfg.Convert.ListStyle, "numbers")
				}
				if cfg.Convert.Tables != "grid" {
					t.Errorf("Tables = %q, want %q", cfg.Convert.Tables, "grid")
				}
			},
		},
		{
			name:  "list-style overrides config",
			flags: &convertFlags{policy: policyFlags{listStyle: "none"}},
			cfg:   &config.Config{Convert: config.ConvertConfig{ListStyle: "bullets"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Convert.ListStyle != "none" {
					t.Errorf("ListStyle = %q, want %q", cfg.Convert.ListStyle, "none")
				}
			},
		},
		{
			name:  "code overrides config",
			flags: &convertFlags{policy: policyFlags{code: "inline"}},
			cfg:   &config.Config{Convert: config.ConvertConfig{Code: "preserve"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Convert.Code != "inline" {
					t.Errorf("Code = %q, want %q", cfg.Convert.Code, "inline")
				}
			},
		},
		{
			name:  "tables overrides config",
			flags: &convertFlags{policy: policyFlags{tables: "simple"}},
			cfg:   &config.Config{Convert: config.ConvertConfig{Tables: "grid"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Convert.Tables != "simple" {
					t.Errorf("Tables = %q, want %q", cfg.Convert.Tables, "simple")
				}
			},
		},
		{
			name:  "headings overrides config",
			flags: &convertFlags{policy: policyFlags{headings: "underline"}},
			cfg:   &config.Config{Convert: config.ConvertConfig{Headings: "hash"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Convert.Headings != "underline" {
					t.Errorf("Headings = %q, want %q", cfg.Convert.Headings, "underline")
				}
			},
		},
		{
			name: "explicit preserve-links=false overrides config true",
			flags: &convertFlags{
				policy:  policyFlags{preserveLinks: false},
				changed: changedSet("preserve-links"),
			},
			cfg: &config.Config{Convert: config.ConvertConfig{PreserveLinks: true}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Convert.PreserveLinks {
					t.Error("PreserveLinks should be false after explicit override")
				}
			},
		},
		{
			name:  "absent preserve-links keeps config true",
			flags: &convertFlags{policy: policyFlags{preserveLinks: false}},
			cfg:   &config.Config{Convert: config.ConvertConfig{PreserveLinks: true}},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.Convert.PreserveLinks {
					t.Error("PreserveLinks should stay true when flag absent")
				}
			},
		},
		{
			name: "front-matter flag overrides config",
			flags: &convertFlags{
				policy:  policyFlags{frontMatter: true},
				changed: changedSet("front-matter"),
			},
			cfg: &config.Config{},
			check: func(t *testing.T, cfg *config.Config) {
				if !cfg.Convert.FrontMatter {
					t.Error("FrontMatter should be true")
				}
			},
		},
		{
			name: "date-format flag overrides config",
			flags: &convertFlags{
				policy: policyFlags{dateFormat: "long"},
			},
			cfg: &config.Config{Convert: config.ConvertConfig{DateFormat: "iso"}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Convert.DateFormat != "long" {
					t.Errorf("DateFormat = %q, want %q", cfg.Convert.DateFormat, "long")
				}
			},
		},
		{
			name: "explicit wrap zero overrides config",
			flags: &convertFlags{
				wrap:    0,
				changed: changedSet("wrap"),
			},
			cfg: &config.Config{Convert: config.ConvertConfig{Wrap: 100}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Convert.Wrap != 0 {
					t.Errorf("Wrap = %d, want 0 after explicit override", cfg.Convert.Wrap)
				}
			},
		},
		{
			name:  "absent wrap keeps config value",
			flags: &convertFlags{},
			cfg:   &config.Config{Convert: config.ConvertConfig{Wrap: 100}},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Convert.Wrap != 100 {
					t.Errorf("Wrap = %d, want 100 when flag absent", cfg.Convert.Wrap)
				}
			},
		},
		{
			name: "workers flag overrides config",
			flags: &convertFlags{
				workers: 8,
				changed: changedSet("workers"),
			},
			cfg: &config.Config{Workers: 2},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Workers != 8 {
					t.Errorf("Workers = %d, want 8", cfg.Workers)
				}
			},
		},
		{
			name:  "absent workers keeps config value",
			flags: &convertFlags{},
			cfg:   &config.Config{Workers: 2},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Workers != 2 {
					t.Errorf("Workers = %d, want 2 when flag absent", cfg.Workers)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mergeFlags(tt.flags, tt.cfg)
			tt.check(t, tt.cfg)
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildOptions - Config policies map onto engine options
// ---------------------------------------------------------------------------

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	t.Run("empty config keeps engine defaults", func(t *testing.T) {
		t.Parallel()
		opts, err := buildOptions(&config.Config{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		def := md2text.DefaultOptions()
		if opts.ListStyle != def.ListStyle {
			t.Errorf("ListStyle = %q, want default %q", opts.ListStyle, def.ListStyle)
		}
		if opts.CodeHandling != def.CodeHandling {
			t.Errorf("CodeHandling = %q, want default %q", opts.CodeHandling, def.CodeHandling)
		}
	})

	t.Run("config policies applied", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{Convert: config.ConvertConfig{
			PreserveLinks: true,
			ListStyle:     "numbers",
			Code:          "inline",
			Tables:        "grid",
			Headings:      "underline",
		}}

		opts, err := buildOptions(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !opts.PreserveLinks {
			t.Error("PreserveLinks should be true")
		}
		if opts.ListStyle != md2text.ListStyleNumbers {
			t.Errorf("ListStyle = %q, want %q", opts.ListStyle, md2text.ListStyleNumbers)
		}
		if opts.CodeHandling != md2text.CodeHandlingInline {
			t.Errorf("CodeHandling = %q, want %q", opts.CodeHandling, md2text.CodeHandlingInline)
		}
		if opts.TableFormat != md2text.TableFormatGrid {
			t.Errorf("TableFormat = %q, want %q", opts.TableFormat, md2text.TableFormatGrid)
		}
		if opts.HeadingStyle != md2text.HeadingStyleUnderline {
			t.Errorf("HeadingStyle = %q, want %q", opts.HeadingStyle, md2text.HeadingStyleUnderline)
		}
	})

	t.Run("case-insensitive policy values accepted", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{Convert: config.ConvertConfig{ListStyle: "NUMBERS"}}

		if _, err := buildOptions(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("invalid list style is a usage error with hint", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{Convert: config.ConvertConfig{ListStyle: "fancy"}}

		_, err := buildOptions(cfg)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !errors.Is(err, md2text.ErrInvalidListStyle) {
			t.Errorf("error should wrap ErrInvalidListStyle, got: %v", err)
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("error should carry a hint, got: %v", err)
		}
		if exitCodeFor(err) != ExitUsage {
			t.Errorf("exit code = %d, want %d", exitCodeFor(err), ExitUsage)
		}
	})

	t.Run("invalid code handling is a usage error", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{Convert: config.ConvertConfig{Code: "strip"}}

		_, err := buildOptions(cfg)
		if !errors.Is(err, md2text.ErrInvalidCodeHandling) {
			t.Errorf("error should wrap ErrInvalidCodeHandling, got: %v", err)
		}
	})

	t.Run("invalid table format is a usage error", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{Convert: config.ConvertConfig{Tables: "fancy"}}

		_, err := buildOptions(cfg)
		if !errors.Is(err, md2text.ErrInvalidTableFormat) {
			t.Errorf("error should wrap ErrInvalidTableFormat, got: %v", err)
		}
	})

	t.Run("invalid heading style is a usage error", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{Convert: config.ConvertConfig{Headings: "shout"}}

		_, err := buildOptions(cfg)
		if !errors.Is(err, md2text.ErrInvalidHeadingStyle) {
			t.Errorf("error should wrap ErrInvalidHeadingStyle, got: %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveInputPath - Input resolution order
// ---------------------------------------------------------------------------

func TestResolveInputPath(t *testing.T) {
	t.Parallel()

	t.Run("positional arg wins", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{Input: config.InputConfig{DefaultDir: "/default"}}
		got, err := resolveInputPath([]string{"doc.md"}, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "doc.md" {
			t.Errorf("input = %q, want doc.md", got)
		}
	})

	t.Run("config default used when no positional", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{Input: config.InputConfig{DefaultDir: "/default"}}
		got, err := resolveInputPath(nil, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "/default" {
			t.Errorf("input = %q, want /default", got)
		}
	})

	t.Run("no input returns ErrNoInput", func(t *testing.T) {
		t.Parallel()
		_, err := resolveInputPath(nil, &config.Config{})
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("error = %v, want ErrNoInput", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveOutputDir - Output resolution order
// ---------------------------------------------------------------------------

func TestResolveOutputDir(t *testing.T) {
	t.Parallel()

	t.Run("flag wins over config", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{Output: config.OutputConfig{DefaultDir: "/config-out"}}
		if got := resolveOutputDir("/flag-out", cfg); got != "/flag-out" {
			t.Errorf("output = %q, want /flag-out", got)
		}
	})

	t.Run("config default when flag empty", func(t *testing.T) {
		t.Parallel()
		cfg := &config.Config{Output: config.OutputConfig{DefaultDir: "/config-out"}}
		if got := resolveOutputDir("", cfg); got != "/config-out" {
			t.Errorf("output = %q, want /config-out", got)
		}
	})

	t.Run("empty when neither set", func(t *testing.T) {
		t.Parallel()
		if got := resolveOutputDir("", &config.Config{}); got != "" {
			t.Errorf("output = %q, want empty", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFrontMatterHeader - Header block rendering
// ---------------------------------------------------------------------------

func TestFrontMatterHeader(t *testing.T) {
	t.Parallel()

	t.Run("empty metadata yields empty string", func(t *testing.T) {
		t.Parallel()
		if got := frontMatterHeader(nil, ""); got != "" {
			t.Errorf("header = %q, want empty", got)
		}
		if got := frontMatterHeader(map[string]any{}, ""); got != "" {
			t.Errorf("header = %q, want empty", got)
		}
	})

	t.Run("keys render sorted", func(t *testing.T) {
		t.Parallel()
		meta := map[string]any{
			"title":  "Runbook",
			"author": "Ops",
			"draft":  true,
		}

		got := frontMatterHeader(meta, "")
		want := "author: Ops\ndraft: true\ntitle: Runbook\n"
		if got != want {
			t.Errorf("header = %q, want %q", got, want)
		}
	})

	t.Run("date fields follow the date layout", func(t *testing.T) {
		t.Parallel()
		layout, err := resolveDateLayout("MMMM D, YYYY")
		if err != nil {
			t.Fatalf("resolveDateLayout: %v", err)
		}
		meta := map[string]any{
			"title":   "Runbook",
			"date":    "2024-03-15",
			"updated": time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		}

		got := frontMatterHeader(meta, layout)
		want := "date: March 15, 2024\ntitle: Runbook\nupdated: April 1, 2024\n"
		if got != want {
			t.Errorf("header = %q, want %q", got, want)
		}
	})

	t.Run("unparseable date prints verbatim", func(t *testing.T) {
		t.Parallel()
		layout, err := resolveDateLayout("")
		if err != nil {
			t.Fatalf("resolveDateLayout: %v", err)
		}
		meta := map[string]any{"date": "next Tuesday"}

		got := frontMatterHeader(meta, layout)
		if got != "date: next Tuesday\n" {
			t.Errorf("header = %q, want verbatim value", got)
		}
	})
}

func TestResolveDateLayout(t *testing.T) {
	t.Parallel()

	t.Run("empty format falls back to the default", func(t *testing.T) {
		t.Parallel()
		layout, err := resolveDateLayout("")
		if err != nil {
			t.Fatalf("resolveDateLayout: %v", err)
		}
		if layout != "2006-01-02" {
			t.Errorf("layout = %q, want %q", layout, "2006-01-02")
		}
	})

	t.Run("invalid format maps to the usage exit code", func(t *testing.T) {
		t.Parallel()
		_, err := resolveDateLayout("[unclosed")
		if !errors.Is(err, dateutil.ErrInvalidDateFormat) {
			t.Fatalf("error = %v, want ErrInvalidDateFormat", err)
		}
		if code := exitCodeFor(err); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}
