package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubyscope/rubyscope/internal/outline"
	"github.com/rubyscope/rubyscope/internal/outliner"
	"github.com/rubyscope/rubyscope/internal/scanner"
)

// Test Plan:
// - Text rendering indents nested symbols and shows detail plus visibility
// - JSON rendering emits LSP document symbols
// - Scan rendering groups per file and reports per-file errors

func outlineOf(t *testing.T, source string) *outline.Result {
	t.Helper()
	result, err := outliner.New().OutlineSource(context.Background(), []byte(source))
	require.NoError(t, err)
	return result
}

func TestRenderOutline_Text(t *testing.T) {
	t.Parallel()

	result := outlineOf(t, `class User < Base
  private

  def save(force = false)
  end
end
`)

	var buf bytes.Buffer
	require.NoError(t, renderOutline(&buf, result, "text"))

	out := buf.String()
	assert.Contains(t, out, "class User < Base")
	assert.Contains(t, out, "  method save (force = false) private")
	assert.Contains(t, out, "[1:0]")
}

func TestRenderOutline_JSON(t *testing.T) {
	t.Parallel()

	result := outlineOf(t, "module M\nend\n")

	var buf bytes.Buffer
	require.NoError(t, renderOutline(&buf, result, "json"))

	var payload struct {
		Symbols []struct {
			Name string `json:"name"`
			Kind int    `json:"kind"`
		} `json:"symbols"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	require.Len(t, payload.Symbols, 1)
	assert.Equal(t, "M", payload.Symbols[0].Name)
	assert.NotZero(t, payload.Symbols[0].Kind)
}

func TestRenderScan_TextWithError(t *testing.T) {
	t.Parallel()

	good := outlineOf(t, "class Good\nend\n")
	outlines := []scanner.FileOutline{
		{Path: "/project/good.rb", Result: good},
		{Path: "/project/bad.rb", Err: errors.New("permission denied")},
	}

	var buf bytes.Buffer
	require.NoError(t, renderScan(&buf, "/project", outlines, "text"))

	out := buf.String()
	assert.Contains(t, out, "== good.rb")
	assert.Contains(t, out, "class Good")
	assert.Contains(t, out, "== bad.rb")
	assert.Contains(t, out, "error: permission denied")
}

func TestRenderScan_JSON(t *testing.T) {
	t.Parallel()

	good := outlineOf(t, "class Good\nend\n")
	outlines := []scanner.FileOutline{
		{Path: "/project/lib/good.rb", Result: good},
		{Path: "/project/bad.rb", Err: errors.New("boom")},
	}

	var buf bytes.Buffer
	require.NoError(t, renderScan(&buf, "/project", outlines, "json"))

	var entries []struct {
		File  string `json:"file"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "lib/good.rb", entries[0].File)
	assert.Equal(t, "boom", entries[1].Error)
}
