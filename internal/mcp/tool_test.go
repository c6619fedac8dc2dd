package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubyscope/rubyscope/internal/outliner"
)

// Test Plan:
// - Tool registration does not panic and is composable
// - Handler outlines inline source and files on disk
// - Missing arguments produce a tool error, not a Go error
// - Response JSON carries the symbol forest and total

func newTestProvider(t *testing.T) *CachedOutliner {
	t.Helper()
	provider, err := NewCachedOutliner(outliner.New(), 16, 0)
	require.NoError(t, err)
	t.Cleanup(provider.Close)
	return provider
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "ruby_outline",
			Arguments: args,
		},
	}
}

func decodeResponse(t *testing.T, result *mcp.CallToolResult) RubyOutlineResponse {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)

	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent")

	var response RubyOutlineResponse
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &response))
	return response
}

func TestAddRubyOutlineTool_Registration(t *testing.T) {
	t.Parallel()

	mcpServer := server.NewMCPServer(
		"test-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	require.NotPanics(t, func() {
		AddRubyOutlineTool(mcpServer, newTestProvider(t))
	})
	assert.NotNil(t, mcpServer)
}

func TestRubyOutlineHandler_InlineSource(t *testing.T) {
	t.Parallel()

	handler := createRubyOutlineHandler(newTestProvider(t))

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"source": "class A\n  def go\n  end\nend\n",
	}))
	require.NoError(t, err)

	response := decodeResponse(t, result)
	require.Equal(t, 1, response.Total)
	assert.Equal(t, "A", response.Symbols[0].Name)
	require.Len(t, response.Symbols[0].Children, 1)
	assert.Equal(t, "go", response.Symbols[0].Children[0].Name)
	assert.False(t, response.Partial)
}

func TestRubyOutlineHandler_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "svc.rb")
	require.NoError(t, os.WriteFile(path, []byte("module Svc\nend\n"), 0o644))

	handler := createRubyOutlineHandler(newTestProvider(t))

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"file": path,
	}))
	require.NoError(t, err)

	response := decodeResponse(t, result)
	assert.Equal(t, path, response.File)
	require.Equal(t, 1, response.Total)
	assert.Equal(t, "Svc", response.Symbols[0].Name)
}

func TestRubyOutlineHandler_MissingArguments(t *testing.T) {
	t.Parallel()

	handler := createRubyOutlineHandler(newTestProvider(t))

	result, err := handler(context.Background(), callRequest(map[string]interface{}{}))
	require.NoError(t, err, "argument problems are tool errors, not Go errors")
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestRubyOutlineHandler_MissingFile(t *testing.T) {
	t.Parallel()

	handler := createRubyOutlineHandler(newTestProvider(t))

	_, err := handler(context.Background(), callRequest(map[string]interface{}{
		"file": filepath.Join(t.TempDir(), "absent.rb"),
	}))
	assert.Error(t, err)
}
