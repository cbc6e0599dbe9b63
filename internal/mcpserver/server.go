// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes markdown-to-text conversion as MCP tools, over stdio or streamable
// HTTP.
package mcpserver

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	md2text "github.com/alnah/go-md2text"
	"github.com/alnah/go-md2text/internal/fetch"
	"github.com/alnah/go-md2text/internal/metrics"
)

const serverInstructions = `md2text MCP server: converts Markdown to clean plain text and reports document structure.

Tool selection:
- convert_markdown for inline markdown content
- convert_file for a single .md or .markdown file on disk
- convert_directory for bulk conversion of a directory tree
- convert_url for a remote document (HTML pages are turned into markdown first)
- analyze_markdown to inspect which constructs a document uses without converting it

All convert tools accept the same rendering policies: preserve_links, list_style (bullets|numbers|none), code_handling (preserve|remove|inline), table_format (simple|grid|none), heading_style (hash|underline|none), and front_matter to extract YAML front matter as structured data. Omitted policies use sensible defaults.

Configuration: limits are configurable via MD2TEXT_MCP_* environment variables set in your MCP client config:
- MD2TEXT_MCP_MAX_INPUT_BYTES (default: 4194304) caps inline and per-file input size
- MD2TEXT_MCP_MAX_BATCH_FILES (default: 200) caps convert_directory file count
- MD2TEXT_MCP_FETCH_TIMEOUT (default: 15s) bounds each convert_url request
- MD2TEXT_MCP_ALLOW_PRIVATE_URLS (default: false) allows fetching loopback and private hosts`

// Server bundles the conversion engine, the URL fetcher, and a metrics
// recorder behind one MCP server instance. Safe for concurrent tool calls.
type Server struct {
	mcp       *mcp.Server
	converter *md2text.Converter
	fetcher   *fetch.Fetcher
	recorder  metrics.Recorder
	cfg       *serverConfig
}

// New builds a server with all tools registered and limits loaded from
// MD2TEXT_MCP_* environment variables. Pass a NopRecorder when metrics are
// not exported anywhere.
func New(recorder metrics.Recorder) *Server {
	cfg := loadConfig()
	s := &Server{
		converter: md2text.NewConverter(),
		fetcher: fetch.NewFetcher(
			fetch.WithTimeout(cfg.FetchTimeout),
			fetch.WithUserAgent(md2text.UserAgent()),
			fetch.WithAllowPrivateHosts(cfg.AllowPrivateURLs),
		),
		recorder: recorder,
		cfg:      cfg,
	}
	s.mcp = mcp.NewServer(
		&mcp.Implementation{Name: "md2text", Version: md2text.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	s.registerTools()
	return s
}

// Run serves MCP over stdin/stdout and blocks until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler returns a streamable-HTTP handler for the same tool set,
// suitable for mounting on a mux next to health and metrics endpoints.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "convert_markdown",
		Description: "Convert inline markdown content to clean plain text. Returns the converted text plus metadata: original and converted lengths, processing time, and which construct categories the document uses. Accepts rendering policies (preserve_links, list_style, code_handling, table_format, heading_style); set front_matter=true to also return YAML front matter as structured data.",
	}, s.handleConvertMarkdown)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "convert_file",
		Description: "Convert a single markdown file on disk to plain text. The path must name a regular .md or .markdown file under the size cap (MD2TEXT_MCP_MAX_INPUT_BYTES, default 4 MiB). Accepts the same rendering policies as convert_markdown.",
	}, s.handleConvertFile)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "convert_directory",
		Description: "Convert every markdown file in a directory to plain text. Set recursive=true to include subdirectories. With output_dir the converted text is written to .txt files mirroring the input tree and the response carries per-file output paths; without it the text is returned inline per file. Files that fail are reported individually and do not stop the batch. File count is capped (MD2TEXT_MCP_MAX_BATCH_FILES, default 200).",
	}, s.handleConvertDirectory)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "convert_url",
		Description: "Fetch a remote document and convert it to plain text. HTML responses are turned into markdown before rendering; markdown and plain-text responses are converted as-is. Only http and https URLs resolving to public hosts are fetched unless MD2TEXT_MCP_ALLOW_PRIVATE_URLS=true. Accepts the same rendering policies as convert_markdown.",
	}, s.handleConvertURL)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "analyze_markdown",
		Description: "Report which markdown constructs (headings, lists, links, images, code, blockquotes, tables, horizontal rules, emphasis, strikethrough) a document uses, plus size and line counts, without converting it. Takes exactly one of inline markdown or a file path. Analysis is independent of rendering policies.",
	}, s.handleAnalyzeMarkdown)
}

// errResult creates an MCP error result from an error. Tool errors are
// returned in-band so the model can see what went wrong and correct its
// next call.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
