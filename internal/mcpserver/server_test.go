package mcpserver

import (
	"errors"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	md2text "github.com/alnah/go-md2text"
	"github.com/alnah/go-md2text/internal/metrics"
)

// newTestServer builds a server with default limits and no metrics export.
// Individual tests shrink s.cfg fields directly to exercise the caps.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	clearServerEnv(t)
	return New(metrics.NewNopRecorder())
}

func TestNew_Wiring(t *testing.T) {
	s := newTestServer(t)

	require.NotNil(t, s.mcp)
	require.NotNil(t, s.converter)
	require.NotNil(t, s.fetcher)
	require.NotNil(t, s.recorder)
	require.NotNil(t, s.cfg)
	assert.NotNil(t, s.HTTPHandler())
}

func TestServerInstructions_NameEveryTool(t *testing.T) {
	for _, name := range []string{
		"convert_markdown",
		"convert_file",
		"convert_directory",
		"convert_url",
		"analyze_markdown",
	} {
		assert.True(t, strings.Contains(serverInstructions, name), "instructions missing %s", name)
	}
}

func TestErrResult(t *testing.T) {
	res := errResult(errors.New("boom"))

	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", res.Content[0])
	assert.Equal(t, "boom", text.Text)
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"single line", "a", 1},
		{"single line with newline", "a\n", 1},
		{"two lines", "a\nb", 2},
		{"two lines with trailing newline", "a\nb\n", 2},
		{"blank line only", "\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countLines(tt.input))
		})
	}
}

func TestElementNames(t *testing.T) {
	names := elementNames([]md2text.ElementKind{md2text.ElementHeadings, md2text.ElementLinks})
	assert.Equal(t, []string{"headings", "links"}, names)

	assert.NotNil(t, elementNames(nil), "empty result should marshal as [] rather than null")
	assert.Empty(t, elementNames(nil))
}
