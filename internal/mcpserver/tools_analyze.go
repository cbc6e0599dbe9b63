package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type analyzeMarkdownInput struct {
	Markdown string `json:"markdown,omitempty" jsonschema:"Inline markdown content to analyze"`
	Path     string `json:"path,omitempty" jsonschema:"Path to a .md or .markdown file to analyze"`
}

type analyzeMarkdownOutput struct {
	ElementsFound  []string `json:"elements_found"`
	OriginalLength int      `json:"original_length"`
	LineCount      int      `json:"line_count"`
}

func (s *Server) handleAnalyzeMarkdown(_ context.Context, _ *mcp.CallToolRequest, input analyzeMarkdownInput) (*mcp.CallToolResult, analyzeMarkdownOutput, error) {
	if (input.Markdown == "") == (input.Path == "") {
		return errResult(errors.New("provide exactly one of markdown or path")), analyzeMarkdownOutput{}, nil
	}

	markdown := input.Markdown
	if input.Path != "" {
		var err error
		markdown, err = s.readMarkdownFile(input.Path)
		if err != nil {
			return errResult(err), analyzeMarkdownOutput{}, nil
		}
	} else if int64(len(markdown)) > s.cfg.MaxInputBytes {
		return errResult(fmt.Errorf("markdown is %d bytes, exceeding the %d byte cap; raise MD2TEXT_MCP_MAX_INPUT_BYTES to analyze it", len(markdown), s.cfg.MaxInputBytes)), analyzeMarkdownOutput{}, nil
	}

	kinds := s.converter.Analyze(markdown)
	return nil, analyzeMarkdownOutput{
		ElementsFound:  elementNames(kinds),
		OriginalLength: len(markdown),
		LineCount:      countLines(markdown),
	}, nil
}
