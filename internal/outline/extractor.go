package outline

import (
	"context"
	"errors"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/rubyscope/rubyscope/internal/document"
)

// Extractor drives the depth-first extraction walk. It holds only
// per-instance configuration; all traversal state lives in a per-call
// walker, so a single Extractor is safe for concurrent use.
type Extractor struct {
	pos      Positioner
	maxNodes int
	verify   bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxNodes sets a soft budget on visited syntax nodes. When the budget
// is exhausted the walk stops and the result is marked partial. Zero means
// unbounded.
func WithMaxNodes(n int) Option {
	return func(e *Extractor) { e.maxNodes = n }
}

// WithVerify enables the best-effort containment check during assembly.
// Violations are logged, never fatal.
func WithVerify(enabled bool) Option {
	return func(e *Extractor) { e.verify = enabled }
}

// New creates an Extractor that materializes ranges through pos.
func New(pos Positioner, opts ...Option) *Extractor {
	e := &Extractor{pos: pos}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract walks the syntax tree rooted at root and returns the outline
// forest. It never fails on malformed or unrecognized syntax: nodes that
// cannot be modeled are skipped and traversal continues, so a file with
// parse errors still yields whatever declarations survived. The only error
// case is a nil root.
func (e *Extractor) Extract(ctx context.Context, root *sitter.Node, source []byte) (*Result, error) {
	if root == nil {
		return nil, errors.New("nil syntax tree root")
	}

	w := &walker{
		ex:     e,
		ctx:    ctx,
		source: source,
		stack:  newScopeStack(),
	}
	w.walkChildren(root)

	symbols := w.stack.top
	e.assemble(symbols)

	return &Result{
		Symbols:      symbols,
		Partial:      w.partial,
		NodesVisited: w.visited,
	}, nil
}

// walker carries the mutable state of one extraction pass.
type walker struct {
	ex      *Extractor
	ctx     context.Context
	source  []byte
	stack   *scopeStack
	visited int
	partial bool
}

// walk dispatches one node. It returns false when traversal must stop
// entirely (budget exhausted or cancelled); scope frames unwind through the
// recursion so the partial forest stays well-formed.
func (w *walker) walk(node *sitter.Node) bool {
	if node == nil {
		return true
	}

	w.visited++
	if w.ex.maxNodes > 0 && w.visited > w.ex.maxNodes {
		w.partial = true
		return false
	}

	switch node.Kind() {
	case "class":
		return w.walkClass(node)
	case "module":
		return w.walkModule(node)
	case "singleton_class":
		return w.walkSingletonClass(node)
	case "method":
		return w.walkMethod(node)
	case "singleton_method":
		return w.walkSingletonMethod(node)
	case "assignment":
		return w.walkAssignment(node)
	case "alias":
		w.walkAlias(node)
		return true
	case "call":
		return w.walkCall(node)
	case "identifier":
		w.maybeAmbientVisibility(node)
		return true
	case "comment":
		return true
	default:
		// Unrecognized kinds (including ERROR placeholders) are traversed
		// into so nested declarations are still recovered.
		return w.walkChildren(node)
	}
}

// walkChildren traverses all children of a node in order.
func (w *walker) walkChildren(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		if !w.walk(node.Child(uint(i))) {
			return false
		}
	}
	return true
}

// cancelled checks the context at scope boundaries. A cancelled walk marks
// the result partial and stops.
func (w *walker) cancelled() bool {
	if w.ctx != nil && w.ctx.Err() != nil {
		w.partial = true
		return true
	}
	return false
}

func (w *walker) rangeOf(node *sitter.Node) document.Range {
	return w.ex.pos.RangeBetween(node.StartByte(), node.EndByte())
}

// walkClass handles `class Name < Super ... end`.
func (w *walker) walkClass(node *sitter.Node) bool {
	if w.cancelled() {
		return false
	}

	body := bodyNode(node)
	nameNode := declaredName(node)
	if nameNode == nil {
		// Parse damage: no record, but recover nested declarations.
		if body != nil {
			return w.walkChildren(body)
		}
		return true
	}

	sym := &Symbol{
		Name:           nodeText(nameNode, w.source),
		Kind:           KindClass,
		Detail:         superclassDetail(node, w.source),
		Range:          w.rangeOf(node),
		SelectionRange: w.rangeOf(nameNode),
		Visibility:     w.stack.visibility,
	}

	w.stack.enter(sym, false)
	cont := true
	if body != nil {
		cont = w.walkChildren(body)
	}
	w.stack.exit()

	if w.cancelled() {
		return false
	}
	return cont
}

// walkModule handles `module Name ... end`.
func (w *walker) walkModule(node *sitter.Node) bool {
	if w.cancelled() {
		return false
	}

	body := bodyNode(node)
	nameNode := declaredName(node)
	if nameNode == nil {
		if body != nil {
			return w.walkChildren(body)
		}
		return true
	}

	sym := &Symbol{
		Name:           nodeText(nameNode, w.source),
		Kind:           KindModule,
		Range:          w.rangeOf(node),
		SelectionRange: w.rangeOf(nameNode),
		Visibility:     w.stack.visibility,
	}

	w.stack.enter(sym, false)
	cont := true
	if body != nil {
		cont = w.walkChildren(body)
	}
	w.stack.exit()

	if w.cancelled() {
		return false
	}
	return cont
}

// walkSingletonClass handles `class << self ... end`. The scope itself
// becomes a container symbol; methods declared inside it are singleton
// methods.
func (w *walker) walkSingletonClass(node *sitter.Node) bool {
	if w.cancelled() {
		return false
	}

	value := node.ChildByFieldName("value")
	selection := node
	if value != nil {
		selection = value
	}

	sym := &Symbol{
		Name:           "<< self",
		Kind:           KindClass,
		Range:          w.rangeOf(node),
		SelectionRange: w.rangeOf(selection),
		Visibility:     w.stack.visibility,
	}

	w.stack.enter(sym, true)
	cont := true
	if body := bodyNode(node); body != nil {
		cont = w.walkChildren(body)
	}
	w.stack.exit()

	if w.cancelled() {
		return false
	}
	return cont
}

// walkMethod handles `def name(params) ... end`.
func (w *walker) walkMethod(node *sitter.Node) bool {
	nameNode := declaredName(node)
	if nameNode == nil {
		return true
	}

	sym := &Symbol{
		Name:           nodeText(nameNode, w.source),
		Kind:           KindMethod,
		Detail:         renderParameters(node, w.source),
		Range:          w.rangeOf(node),
		SelectionRange: w.rangeOf(nameNode),
		Visibility:     w.stack.visibility,
		MethodType:     MethodTypeInstance,
	}
	if w.stack.inSingleton() {
		sym.Kind = KindSingletonMethod
		sym.MethodType = MethodTypeSingleton
	}
	w.stack.add(sym)

	// Method bodies can contain nested defs and reopened classes; those
	// attach to the enclosing scope, not to the method.
	if body := bodyNode(node); body != nil {
		return w.walkChildren(body)
	}
	return true
}

// walkSingletonMethod handles `def self.name` and `def obj.name`.
func (w *walker) walkSingletonMethod(node *sitter.Node) bool {
	nameNode := declaredName(node)
	if nameNode == nil {
		return true
	}

	name := nodeText(nameNode, w.source)
	object := node.ChildByFieldName("object")
	if object != nil && object.Kind() != "self" {
		name = nodeText(object, w.source) + "." + name
	}

	sym := &Symbol{
		Name:           name,
		Kind:           KindSingletonMethod,
		Detail:         renderParameters(node, w.source),
		Range:          w.rangeOf(node),
		SelectionRange: w.rangeOf(nameNode),
		Visibility:     w.stack.visibility,
		MethodType:     MethodTypeClass,
	}
	w.stack.add(sym)

	if body := bodyNode(node); body != nil {
		return w.walkChildren(body)
	}
	return true
}

// walkAssignment emits constants for `NAME = ...` and fields for
// `@name = ...` / `@@name = ...` assignments, then traverses the right side
// so declarations inside e.g. `K = Class.new do ... end` are not lost.
func (w *walker) walkAssignment(node *sitter.Node) bool {
	left := node.ChildByFieldName("left")
	if left == nil {
		return w.walkChildren(node)
	}

	switch left.Kind() {
	case "constant", "scope_resolution":
		w.stack.add(&Symbol{
			Name:           nodeText(left, w.source),
			Kind:           KindConstant,
			Range:          w.rangeOf(node),
			SelectionRange: w.rangeOf(left),
			Visibility:     w.stack.visibility,
		})
	case "instance_variable", "class_variable":
		w.stack.add(&Symbol{
			Name:           nodeText(left, w.source),
			Kind:           KindField,
			Range:          w.rangeOf(node),
			SelectionRange: w.rangeOf(left),
			Visibility:     w.stack.visibility,
		})
	}

	if right := node.ChildByFieldName("right"); right != nil {
		return w.walk(right)
	}
	return true
}

// walkAlias handles the `alias new_name old_name` keyword form.
func (w *walker) walkAlias(node *sitter.Node) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	detail := ""
	if aliased := node.ChildByFieldName("alias"); aliased != nil {
		detail = "alias " + nodeText(aliased, w.source)
	}

	w.stack.add(&Symbol{
		Name:           nodeText(nameNode, w.source),
		Kind:           KindAlias,
		Detail:         detail,
		Range:          w.rangeOf(node),
		SelectionRange: w.rangeOf(nameNode),
		Visibility:     w.stack.visibility,
	})
}

// maybeAmbientVisibility handles bare modifier statements (`private` on a
// line of its own), which parse as plain identifiers rather than calls.
func (w *walker) maybeAmbientVisibility(node *sitter.Node) {
	parent := node.Parent()
	if parent == nil {
		return
	}
	if kind := parent.Kind(); kind != "body_statement" && kind != "program" {
		return
	}

	if v, ok := visibilityFromName(nodeText(node, w.source)); ok {
		w.stack.setVisibility(v)
	}
}

// visibilityFromName maps a modifier method name to its visibility value.
func visibilityFromName(name string) (Visibility, bool) {
	switch name {
	case "public":
		return VisibilityPublic, true
	case "private":
		return VisibilityPrivate, true
	case "protected":
		return VisibilityProtected, true
	default:
		return "", false
	}
}

// declaredName returns a declaration's name node, or nil when the parse
// left it absent or as an error-recovery placeholder.
func declaredName(node *sitter.Node) *sitter.Node {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil || nameNode.IsMissing() || nameNode.StartByte() == nameNode.EndByte() {
		return nil
	}
	return nameNode
}

// bodyNode locates a construct's body. Newer grammar versions expose it as a
// field; older ones only as a body_statement child.
func bodyNode(node *sitter.Node) *sitter.Node {
	if body := node.ChildByFieldName("body"); body != nil {
		return body
	}
	return findChildByKind(node, "body_statement")
}
