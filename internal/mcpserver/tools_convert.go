package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/alnah/go-md2text/internal/fetch"
	"github.com/alnah/go-md2text/internal/hints"
)

type convertMarkdownInput struct {
	Markdown string `json:"markdown" jsonschema:"Markdown content to convert"`
	renderOptions
}

func (s *Server) handleConvertMarkdown(ctx context.Context, _ *mcp.CallToolRequest, input convertMarkdownInput) (*mcp.CallToolResult, conversionOutput, error) {
	if input.Markdown == "" {
		return errResult(errors.New("markdown is required")), conversionOutput{}, nil
	}
	if int64(len(input.Markdown)) > s.cfg.MaxInputBytes {
		return errResult(fmt.Errorf("markdown is %d bytes, exceeding the %d byte cap; use convert_file for large documents or raise MD2TEXT_MCP_MAX_INPUT_BYTES", len(input.Markdown), s.cfg.MaxInputBytes)), conversionOutput{}, nil
	}

	out, err := s.convert(ctx, "convert_markdown", input.Markdown, input.renderOptions)
	if err != nil {
		return errResult(err), conversionOutput{}, nil
	}
	return nil, *out, nil
}

type convertFileInput struct {
	Path string `json:"path" jsonschema:"Path to a .md or .markdown file on disk"`
	renderOptions
}

func (s *Server) handleConvertFile(ctx context.Context, _ *mcp.CallToolRequest, input convertFileInput) (*mcp.CallToolResult, conversionOutput, error) {
	if input.Path == "" {
		return errResult(errors.New("path is required")), conversionOutput{}, nil
	}

	markdown, err := s.readMarkdownFile(input.Path)
	if err != nil {
		return errResult(err), conversionOutput{}, nil
	}

	out, err := s.convert(ctx, "convert_file", markdown, input.renderOptions)
	if err != nil {
		return errResult(err), conversionOutput{}, nil
	}
	out.Path = input.Path
	return nil, *out, nil
}

type convertURLInput struct {
	URL string `json:"url" jsonschema:"http or https URL of the document to fetch. HTML pages are turned into markdown before rendering."`
	renderOptions
}

func (s *Server) handleConvertURL(ctx context.Context, _ *mcp.CallToolRequest, input convertURLInput) (*mcp.CallToolResult, conversionOutput, error) {
	if input.URL == "" {
		return errResult(errors.New("url is required")), conversionOutput{}, nil
	}

	fetched, err := s.fetcher.Fetch(ctx, input.URL)
	if err != nil {
		if errors.Is(err, fetch.ErrBlockedHost) {
			return errResult(fmt.Errorf("%v%s", err, hints.ForBlockedURL())), conversionOutput{}, nil
		}
		return errResult(err), conversionOutput{}, nil
	}
	if int64(len(fetched.Markdown)) > s.cfg.MaxInputBytes {
		return errResult(fmt.Errorf("fetched document is %d bytes, exceeding the %d byte cap; raise MD2TEXT_MCP_MAX_INPUT_BYTES to convert it", len(fetched.Markdown), s.cfg.MaxInputBytes)), conversionOutput{}, nil
	}

	out, err := s.convert(ctx, "convert_url", fetched.Markdown, input.renderOptions)
	if err != nil {
		return errResult(err), conversionOutput{}, nil
	}
	out.FinalURL = fetched.FinalURL
	out.ContentType = fetched.ContentType
	return nil, *out, nil
}
