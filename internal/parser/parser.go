// Package parser wraps the tree-sitter Ruby grammar behind a small,
// error-tolerant parsing front-end. A tree containing ERROR or MISSING
// nodes is still returned so downstream extraction can recover whatever
// declarations survived the parse.
package parser

import (
	"context"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
)

// RubyParser parses Ruby source into tree-sitter syntax trees.
type RubyParser struct {
	language *sitter.Language
}

// NewRubyParser creates a parser bound to the Ruby grammar.
func NewRubyParser() *RubyParser {
	return &RubyParser{
		language: sitter.NewLanguage(ruby.Language()),
	}
}

// Parse parses source bytes into a syntax tree. The caller owns the returned
// tree and must Close it. Only a nil tree from tree-sitter is an error;
// partial trees with error nodes are returned as-is.
func (p *RubyParser) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, fmt.Errorf("failed to set ruby language: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter produced no tree")
	}

	return tree, nil
}
