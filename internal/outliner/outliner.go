// Package outliner is the orchestration layer over the parser and the
// extraction engine: it owns the parse-tree lifecycle and exposes outline
// operations on raw source or files on disk.
package outliner

import (
	"context"
	"fmt"
	"os"

	"github.com/rubyscope/rubyscope/internal/document"
	"github.com/rubyscope/rubyscope/internal/outline"
	"github.com/rubyscope/rubyscope/internal/parser"
)

// Service produces outlines for Ruby sources. Safe for concurrent use.
type Service struct {
	parser  *parser.RubyParser
	options []outline.Option
}

// New creates a Service. The options are applied to every extraction.
func New(opts ...outline.Option) *Service {
	return &Service{
		parser:  parser.NewRubyParser(),
		options: opts,
	}
}

// OutlineSource parses source and extracts its outline. The syntax tree is
// released before returning; only the symbol forest survives.
func (s *Service) OutlineSource(ctx context.Context, source []byte) (*outline.Result, error) {
	tree, err := s.parser.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}
	defer tree.Close()

	doc := document.New(source)
	result, err := outline.New(doc, s.options...).Extract(ctx, tree.RootNode(), source)
	if err != nil {
		return nil, fmt.Errorf("extracting outline: %w", err)
	}
	return result, nil
}

// OutlineFile reads path from disk and outlines its contents.
func (s *Service) OutlineFile(ctx context.Context, path string) (*outline.Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s.OutlineSource(ctx, source)
}
