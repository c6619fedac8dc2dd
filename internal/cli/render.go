package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rubyscope/rubyscope/internal/outline"
	"github.com/rubyscope/rubyscope/internal/protocol"
)

// renderOutline writes a single file's outline in the requested format.
func renderOutline(w io.Writer, result *outline.Result, format string) error {
	if format == "json" {
		payload := struct {
			Symbols interface{} `json:"symbols"`
			Partial bool        `json:"partial,omitempty"`
		}{
			Symbols: protocol.DocumentSymbols(result.Symbols),
			Partial: result.Partial,
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}

	for _, sym := range result.Symbols {
		if err := renderSymbolTree(w, sym, 0); err != nil {
			return err
		}
	}
	return nil
}

// renderSymbolTree prints one symbol and its children as an indented tree:
//
//	class User < ApplicationRecord   [1:0]
//	  method save! (force = false)   private [10:2]
func renderSymbolTree(w io.Writer, sym *outline.Symbol, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(string(sym.Kind))
	b.WriteByte(' ')
	b.WriteString(sym.Name)
	if sym.Detail != "" {
		b.WriteByte(' ')
		b.WriteString(sym.Detail)
	}
	if sym.Visibility != "" && sym.Visibility != outline.VisibilityPublic {
		b.WriteByte(' ')
		b.WriteString(string(sym.Visibility))
	}
	fmt.Fprintf(&b, "   [%d:%d]", sym.Range.Start.Line+1, sym.Range.Start.Character)

	if _, err := fmt.Fprintln(w, b.String()); err != nil {
		return err
	}
	for _, child := range sym.Children {
		if err := renderSymbolTree(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
