// Package config loads and validates md2text YAML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2text/internal/dateutil"
	"github.com/alnah/go-md2text/internal/fileutil"
	"github.com/alnah/go-md2text/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits. Directories get the common PATH_MAX; policy names
// are short, so a tight cap surfaces misplaced YAML blocks as errors.
const (
	MaxDirLength    = 4096
	MaxPolicyLength = 16
	MaxAddrLength   = 256
)

// appConfigDir is the subdirectory of os.UserConfigDir() searched for
// named config files.
const appConfigDir = "md2text"

// Config holds all md2text configuration.
type Config struct {
	Convert ConvertConfig `yaml:"convert"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Workers int           `yaml:"workers"`
	Server  ServerConfig  `yaml:"server"`
}

// ConvertConfig holds default rendering policies. Empty strings mean the
// engine default applies.
type ConvertConfig struct {
	PreserveLinks bool   `yaml:"preserve_links"`
	ListStyle     string `yaml:"list_style"` // "bullets", "numbers", "none"
	Code          string `yaml:"code"`       // "preserve", "remove", "inline"
	Tables        string `yaml:"tables"`     // "simple", "grid", "none"
	Headings      string `yaml:"headings"`   // "hash", "underline", "none"
	FrontMatter   bool   `yaml:"front_matter"`
	DateFormat    string `yaml:"date_format"` // front-matter date display format
	Wrap          int    `yaml:"wrap"`        // output columns, 0 = no wrapping
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"default_dir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"default_dir"` // Default output directory (empty = same as source)
}

// ServerConfig defines MCP server options.
type ServerConfig struct {
	Transport string `yaml:"transport"` // "stdio", "http"
	Addr      string `yaml:"addr"`      // listen address for the http transport
}

// Validate checks enum values, ranges, and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	// Length caps first, so an oversized value reports its size rather
	// than failing the enum check.
	if err := validateFieldLength("convert.list_style", c.Convert.ListStyle, MaxPolicyLength); err != nil {
		return err
	}
	if err := validateFieldLength("convert.code", c.Convert.Code, MaxPolicyLength); err != nil {
		return err
	}
	if err := validateFieldLength("convert.tables", c.Convert.Tables, MaxPolicyLength); err != nil {
		return err
	}
	if err := validateFieldLength("convert.headings", c.Convert.Headings, MaxPolicyLength); err != nil {
		return err
	}
	if err := validateFieldLength("input.default_dir", c.Input.DefaultDir, MaxDirLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.default_dir", c.Output.DefaultDir, MaxDirLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}

	// Convert policies
	if err := validateEnum("convert.list_style", c.Convert.ListStyle, "bullets", "numbers", "none"); err != nil {
		return err
	}
	if err := validateEnum("convert.code", c.Convert.Code, "preserve", "remove", "inline"); err != nil {
		return err
	}
	if err := validateEnum("convert.tables", c.Convert.Tables, "simple", "grid", "none"); err != nil {
		return err
	}
	if err := validateEnum("convert.headings", c.Convert.Headings, "hash", "underline", "none"); err != nil {
		return err
	}
	if c.Convert.DateFormat != "" {
		if _, err := dateutil.Layout(c.Convert.DateFormat); err != nil {
			return fmt.Errorf("%w: convert.date_format: %v", ErrInvalidValue, err)
		}
	}
	if c.Convert.Wrap < 0 {
		return fmt.Errorf("%w: convert.wrap must be >= 0, got %d", ErrInvalidValue, c.Convert.Wrap)
	}

	// Workers
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidValue, c.Workers)
	}

	// Server
	if err := validateEnum("server.transport", c.Server.Transport, "stdio", "http"); err != nil {
		return err
	}

	return nil
}

// validateEnum checks a field against its allowed values, case-insensitively.
// Empty is always valid: it means "use the default".
func validateEnum(fieldName, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	v := strings.ToLower(value)
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (must be one of: %s)",
		ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration. Every field is unset, so
// the engine defaults and CLI fallbacks apply.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns an error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = ResolvePath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ResolvePath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, then os.UserConfigDir()/md2text/.
func ResolvePath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// User config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appConfigDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
