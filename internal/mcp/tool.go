package mcp

// Implementation Plan:
// 1. AddRubyOutlineTool - composable tool registration function
// 2. createRubyOutlineHandler - handler factory that captures the provider
// 3. Parse RubyOutlineRequest from MCP arguments
// 4. Outline the file (or inline source) through the provider
// 5. Convert to LSP document symbols and return as JSON text

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rubyscope/rubyscope/internal/outline"
	"github.com/rubyscope/rubyscope/internal/protocol"
)

// OutlineProvider is the subset of the cached outliner the tool needs.
type OutlineProvider interface {
	OutlineFile(ctx context.Context, path string) (*outline.Result, error)
	OutlineSource(ctx context.Context, source []byte) (*outline.Result, error)
}

// AddRubyOutlineTool registers the ruby_outline tool with an MCP server.
// This function is composable - it can be combined with other tool registrations.
func AddRubyOutlineTool(s *server.MCPServer, provider OutlineProvider) {
	tool := mcp.NewTool(
		"ruby_outline",
		mcp.WithDescription("Extract the document outline of a Ruby file: classes, modules, methods, constants, attributes and their nesting, with visibility and source ranges."),
		mcp.WithString("file",
			mcp.Description("Path to the Ruby file to outline. Required unless 'source' is given.")),
		mcp.WithString("source",
			mcp.Description("Raw Ruby source to outline instead of reading a file.")),
	)

	s.AddTool(tool, createRubyOutlineHandler(provider))
}

// createRubyOutlineHandler creates the handler function for the ruby_outline tool.
func createRubyOutlineHandler(provider OutlineProvider) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args RubyOutlineRequest
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		if file, ok := argsMap["file"].(string); ok {
			args.File = file
		}
		if source, ok := argsMap["source"].(string); ok {
			args.Source = source
		}
		if args.File == "" && args.Source == "" {
			return mcp.NewToolResultError("either 'file' or 'source' is required"), nil
		}

		var (
			result *outline.Result
			err    error
		)
		if args.Source != "" {
			result, err = provider.OutlineSource(ctx, []byte(args.Source))
		} else {
			result, err = provider.OutlineFile(ctx, args.File)
		}
		if err != nil {
			return nil, fmt.Errorf("outline failed: %w", err)
		}

		symbols := protocol.DocumentSymbols(result.Symbols)
		response := &RubyOutlineResponse{
			File:    args.File,
			Symbols: symbols,
			Partial: result.Partial,
			Total:   len(symbols),
		}

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		// Return as text result (mcp-go convention)
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
