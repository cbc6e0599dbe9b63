package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-md2text/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string // MD2TEXT_CONFIG: config file name or path
	InputDir      string // MD2TEXT_INPUT_DIR: default input directory
	OutputDir     string // MD2TEXT_OUTPUT_DIR: default output directory
	Workers       int    // MD2TEXT_WORKERS: parallel workers
	Wrap          int    // MD2TEXT_WRAP: output wrap column
	ListStyle     string // MD2TEXT_LIST_STYLE: bullets, numbers, none
	Code          string // MD2TEXT_CODE: preserve, remove, inline
	Tables        string // MD2TEXT_TABLES: simple, grid, none
	Headings      string // MD2TEXT_HEADINGS: hash, underline, none
	DateFormat    string // MD2TEXT_DATE_FORMAT: front-matter date display format
	PreserveLinks bool   // MD2TEXT_PRESERVE_LINKS: render link targets
}

// knownEnvVars lists valid MD2TEXT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2TEXT_CONFIG":         true,
	"MD2TEXT_INPUT_DIR":      true,
	"MD2TEXT_OUTPUT_DIR":     true,
	"MD2TEXT_WORKERS":        true,
	"MD2TEXT_WRAP":           true,
	"MD2TEXT_LIST_STYLE":     true,
	"MD2TEXT_CODE":           true,
	"MD2TEXT_TABLES":         true,
	"MD2TEXT_HEADINGS":       true,
	"MD2TEXT_DATE_FORMAT":    true,
	"MD2TEXT_PRESERVE_LINKS": true,
	// Server knobs read by internal/mcpserver, listed so the typo
	// check does not flag them.
	"MD2TEXT_MCP_MAX_INPUT_BYTES":    true,
	"MD2TEXT_MCP_MAX_BATCH_FILES":    true,
	"MD2TEXT_MCP_FETCH_TIMEOUT":      true,
	"MD2TEXT_MCP_ALLOW_PRIVATE_URLS": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MD2TEXT_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2TEXT_CONFIG"),
		InputDir:   os.Getenv("MD2TEXT_INPUT_DIR"),
		OutputDir:  os.Getenv("MD2TEXT_OUTPUT_DIR"),
		ListStyle:  os.Getenv("MD2TEXT_LIST_STYLE"),
		Code:       os.Getenv("MD2TEXT_CODE"),
		Tables:     os.Getenv("MD2TEXT_TABLES"),
		Headings:   os.Getenv("MD2TEXT_HEADINGS"),
		DateFormat: os.Getenv("MD2TEXT_DATE_FORMAT"),
	}

	if workers := os.Getenv("MD2TEXT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if wrap := os.Getenv("MD2TEXT_WRAP"); wrap != "" {
		if n, err := strconv.Atoi(wrap); err == nil && n > 0 {
			cfg.Wrap = n
		}
	}
	if raw := os.Getenv("MD2TEXT_PRESERVE_LINKS"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			cfg.PreserveLinks = b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2TEXT_* variables.
// Helps catch typos like MD2TEXT_LISTSTYLE instead of MD2TEXT_LIST_STYLE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2TEXT_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > config file > env vars > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
	if env.Wrap > 0 && cfg.Convert.Wrap == 0 {
		cfg.Convert.Wrap = env.Wrap
	}
	if env.ListStyle != "" && cfg.Convert.ListStyle == "" {
		cfg.Convert.ListStyle = env.ListStyle
	}
	if env.Code != "" && cfg.Convert.Code == "" {
		cfg.Convert.Code = env.Code
	}
	if env.Tables != "" && cfg.Convert.Tables == "" {
		cfg.Convert.Tables = env.Tables
	}
	if env.Headings != "" && cfg.Convert.Headings == "" {
		cfg.Convert.Headings = env.Headings
	}
	if env.DateFormat != "" && cfg.Convert.DateFormat == "" {
		cfg.Convert.DateFormat = env.DateFormat
	}
	if env.PreserveLinks && !cfg.Convert.PreserveLinks {
		cfg.Convert.PreserveLinks = true
	}
}
