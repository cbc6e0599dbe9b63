package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Notes:
// - t.Setenv with an empty value makes each test hermetic against
//   MD2TEXT_MCP_* variables leaking in from the host environment.
// - Invalid values must never fail server startup; they fall back to the
//   documented defaults.

func clearServerEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MD2TEXT_MCP_MAX_INPUT_BYTES", "")
	t.Setenv("MD2TEXT_MCP_MAX_BATCH_FILES", "")
	t.Setenv("MD2TEXT_MCP_FETCH_TIMEOUT", "")
	t.Setenv("MD2TEXT_MCP_ALLOW_PRIVATE_URLS", "")
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearServerEnv(t)

	cfg := loadConfig()
	assert.Equal(t, int64(4<<20), cfg.MaxInputBytes)
	assert.Equal(t, 200, cfg.MaxBatchFiles)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.False(t, cfg.AllowPrivateURLs)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("MD2TEXT_MCP_MAX_INPUT_BYTES", "1024")
	t.Setenv("MD2TEXT_MCP_MAX_BATCH_FILES", "3")
	t.Setenv("MD2TEXT_MCP_FETCH_TIMEOUT", "2s")
	t.Setenv("MD2TEXT_MCP_ALLOW_PRIVATE_URLS", "true")

	cfg := loadConfig()
	assert.Equal(t, int64(1024), cfg.MaxInputBytes)
	assert.Equal(t, 3, cfg.MaxBatchFiles)
	assert.Equal(t, 2*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.AllowPrivateURLs)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("MD2TEXT_MCP_MAX_INPUT_BYTES", "not-a-number")
	t.Setenv("MD2TEXT_MCP_MAX_BATCH_FILES", "-5")
	t.Setenv("MD2TEXT_MCP_FETCH_TIMEOUT", "soon")
	t.Setenv("MD2TEXT_MCP_ALLOW_PRIVATE_URLS", "yep")

	cfg := loadConfig()
	assert.Equal(t, int64(4<<20), cfg.MaxInputBytes)
	assert.Equal(t, 200, cfg.MaxBatchFiles)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.False(t, cfg.AllowPrivateURLs)
}

func TestEnvHelpers_RejectNonPositive(t *testing.T) {
	t.Setenv("MD2TEXT_TEST_INT", "0")
	t.Setenv("MD2TEXT_TEST_INT64", "-1")
	t.Setenv("MD2TEXT_TEST_DURATION", "0s")

	assert.Equal(t, 7, envInt("MD2TEXT_TEST_INT", 7))
	assert.Equal(t, int64(9), envInt64("MD2TEXT_TEST_INT64", 9))
	assert.Equal(t, time.Minute, envDuration("MD2TEXT_TEST_DURATION", time.Minute))
}

func TestEnvBool_AcceptedSpellings(t *testing.T) {
	for _, raw := range []string{"1", "t", "TRUE", "True"} {
		t.Setenv("MD2TEXT_TEST_BOOL", raw)
		assert.True(t, envBool("MD2TEXT_TEST_BOOL", false), "value %q", raw)
	}
	for _, raw := range []string{"0", "f", "FALSE", "False"} {
		t.Setenv("MD2TEXT_TEST_BOOL", raw)
		assert.False(t, envBool("MD2TEXT_TEST_BOOL", true), "value %q", raw)
	}
}
