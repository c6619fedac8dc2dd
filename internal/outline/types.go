// Package outline implements the symbol extraction engine: a single-pass
// tree walk over a parsed Ruby syntax tree that produces a nested forest of
// document symbols for editor outline and breadcrumb features.
package outline

import (
	"github.com/rubyscope/rubyscope/internal/document"
)

// Kind classifies an extracted symbol. The set is open: consumers must
// tolerate kinds they do not know.
type Kind string

const (
	KindClass           Kind = "class"
	KindModule          Kind = "module"
	KindMethod          Kind = "method"
	KindSingletonMethod Kind = "singleton_method"
	KindConstant        Kind = "constant"
	KindProperty        Kind = "property"
	KindField           Kind = "field"
	KindAlias           Kind = "alias"
)

// Visibility is the Ruby member visibility captured at symbol creation time.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
)

// MethodType distinguishes how a method-like symbol is bound.
type MethodType string

const (
	MethodTypeInstance  MethodType = "instance"
	MethodTypeClass     MethodType = "class"
	MethodTypeSingleton MethodType = "singleton"
)

// Symbol is one node in the extracted outline forest.
//
// SelectionRange always lies within Range, and every child's Range lies
// within its parent's Range. Children are in source declaration order.
type Symbol struct {
	Name           string         `json:"name"`
	Kind           Kind           `json:"kind"`
	Detail         string         `json:"detail,omitempty"`
	Range          document.Range `json:"range"`
	SelectionRange document.Range `json:"selectionRange"`
	Visibility     Visibility     `json:"visibility"`
	MethodType     MethodType     `json:"methodType,omitempty"`
	Children       []*Symbol      `json:"children,omitempty"`
}

// Result is the outcome of a single extraction pass.
type Result struct {
	// Symbols is the top-level forest in source order.
	Symbols []*Symbol

	// Partial is true when the traversal stopped early, either because the
	// node budget ran out or the context was cancelled. The forest built so
	// far is still returned.
	Partial bool

	// NodesVisited counts syntax nodes dispatched during the walk.
	NodesVisited int
}

// Positioner converts byte offsets into line/character ranges. It is the
// engine's only dependency on the surrounding document service.
type Positioner interface {
	RangeBetween(startByte, endByte uint) document.Range
}
