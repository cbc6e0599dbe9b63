package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds the operational limits of one MCP server instance,
// loaded from MD2TEXT_MCP_* environment variables when the server is built.
//
// MCP clients typically launch the server as a subprocess, so environment
// variables set in the client configuration are the natural knob for these.
type serverConfig struct {
	// MaxInputBytes caps inline markdown and on-disk file sizes.
	MaxInputBytes int64
	// MaxBatchFiles caps how many files convert_directory will process.
	MaxBatchFiles int
	// FetchTimeout bounds each convert_url request end to end.
	FetchTimeout time.Duration
	// AllowPrivateURLs disables the private-host guard on convert_url.
	AllowPrivateURLs bool
}

func loadConfig() *serverConfig {
	return &serverConfig{
		MaxInputBytes:    envInt64("MD2TEXT_MCP_MAX_INPUT_BYTES", 4<<20),
		MaxBatchFiles:    envInt("MD2TEXT_MCP_MAX_BATCH_FILES", 200),
		FetchTimeout:     envDuration("MD2TEXT_MCP_FETCH_TIMEOUT", 15*time.Second),
		AllowPrivateURLs: envBool("MD2TEXT_MCP_ALLOW_PRIVATE_URLS", false),
	}
}

// envBool reads a boolean environment variable, falling back to def when the
// variable is unset or unparseable. Invalid values are logged rather than
// failing server startup.
func envBool(key string, def bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid boolean env var, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return v
}

func envInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		slog.Warn("invalid integer env var, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return v
}

func envInt64(key string, def int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		slog.Warn("invalid integer env var, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", raw, "default", def)
		return def
	}
	return v
}
