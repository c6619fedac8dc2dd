package mcp

import (
	lsp "go.lsp.dev/protocol"
)

// RubyOutlineRequest holds the parsed arguments of the ruby_outline tool.
type RubyOutlineRequest struct {
	File   string `json:"file"`
	Source string `json:"source,omitempty"`
}

// RubyOutlineResponse is the JSON payload returned by the ruby_outline tool.
type RubyOutlineResponse struct {
	File    string               `json:"file,omitempty"`
	Symbols []lsp.DocumentSymbol `json:"symbols"`
	Partial bool                 `json:"partial,omitempty"`
	Total   int                  `json:"total"`
}
