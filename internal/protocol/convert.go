// Package protocol converts extracted outline symbols into LSP
// textDocument/documentSymbol structures, so the engine's output can be
// served to any LSP-speaking editor without the engine knowing about the
// wire types.
package protocol

import (
	lsp "go.lsp.dev/protocol"

	"github.com/rubyscope/rubyscope/internal/document"
	"github.com/rubyscope/rubyscope/internal/outline"
)

// DocumentSymbols converts an outline forest into LSP DocumentSymbol values,
// preserving order and nesting.
func DocumentSymbols(symbols []*outline.Symbol) []lsp.DocumentSymbol {
	if len(symbols) == 0 {
		return nil
	}
	out := make([]lsp.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		out = append(out, documentSymbol(sym))
	}
	return out
}

func documentSymbol(sym *outline.Symbol) lsp.DocumentSymbol {
	return lsp.DocumentSymbol{
		Name:           sym.Name,
		Detail:         detailFor(sym),
		Kind:           symbolKind(sym),
		Range:          lspRange(sym.Range),
		SelectionRange: lspRange(sym.SelectionRange),
		Children:       DocumentSymbols(sym.Children),
	}
}

// detailFor folds non-public visibility into the detail string, since the
// LSP symbol type has no visibility slot of its own.
func detailFor(sym *outline.Symbol) string {
	if sym.Visibility == outline.VisibilityPublic || sym.Visibility == "" {
		return sym.Detail
	}
	if sym.Detail == "" {
		return string(sym.Visibility)
	}
	return sym.Detail + " " + string(sym.Visibility)
}

func symbolKind(sym *outline.Symbol) lsp.SymbolKind {
	switch sym.Kind {
	case outline.KindClass:
		return lsp.SymbolKindClass
	case outline.KindModule:
		return lsp.SymbolKindModule
	case outline.KindMethod, outline.KindSingletonMethod, outline.KindAlias:
		return lsp.SymbolKindMethod
	case outline.KindConstant:
		return lsp.SymbolKindConstant
	case outline.KindProperty:
		return lsp.SymbolKindProperty
	case outline.KindField:
		return lsp.SymbolKindField
	default:
		return lsp.SymbolKindObject
	}
}

func lspRange(r document.Range) lsp.Range {
	return lsp.Range{
		Start: lsp.Position{Line: r.Start.Line, Character: r.Start.Character},
		End:   lsp.Position{Line: r.End.Line, Character: r.End.Character},
	}
}
