package outline

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// walkCall routes receiver-less calls that declare members (visibility
// modifiers, attribute accessors, define_method, alias_method). Anything
// else is traversed conservatively so declarations inside blocks such as
// `class_eval do ... end` are not lost.
func (w *walker) walkCall(node *sitter.Node) bool {
	method := node.ChildByFieldName("method")
	receiver := node.ChildByFieldName("receiver")

	if method != nil && (receiver == nil || receiver.Kind() == "self") {
		switch nodeText(method, w.source) {
		case "public", "private", "protected":
			v, _ := visibilityFromName(nodeText(method, w.source))
			return w.handleVisibilityCall(node, v)
		case "attr_reader":
			w.expandAccessor(node, "attr_reader")
			return true
		case "attr_writer":
			w.expandAccessor(node, "attr_writer")
			return true
		case "attr_accessor":
			w.expandAccessor(node, "attr_accessor")
			return true
		case "define_method":
			w.expandDefineMethod(node)
			return true
		case "alias_method":
			w.expandAliasMethod(node)
			return true
		}
	}

	return w.walkChildren(node)
}

// handleVisibilityCall implements the two modifier forms:
//
//	private              — sets the ambient state for the rest of the scope
//	private :foo, :bar   — corrects already-collected members in place
//	private def foo ...  — declares the method with the given visibility
//
// Corrections for members not yet visited are skipped; ambient state is
// untouched whenever arguments are present.
func (w *walker) handleVisibilityCall(node *sitter.Node, v Visibility) bool {
	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		w.stack.setVisibility(v)
		return true
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(uint(i))
		if arg == nil {
			continue
		}

		switch arg.Kind() {
		case "method", "singleton_method":
			// Inline form: visit the definition, then override the
			// visibility it captured from the ambient state.
			if !w.walk(arg) {
				return false
			}
			if nameNode := arg.ChildByFieldName("name"); nameNode != nil {
				w.stack.correctVisibility(nodeText(nameNode, w.source), v)
			}
		default:
			if name := literalName(arg, w.source); name != "" {
				w.stack.correctVisibility(name, v)
			}
		}
	}
	return true
}

// expandAccessor emits one property symbol per literal accessor name.
// Both ranges cover the argument literal itself: there is no separate
// declaration token to select.
func (w *walker) expandAccessor(node *sitter.Node, form string) {
	args := node.ChildByFieldName("arguments")
	if args == nil {
		return
	}

	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(uint(i))
		if arg == nil {
			continue
		}
		name := literalName(arg, w.source)
		if name == "" {
			continue
		}

		w.stack.add(&Symbol{
			Name:           name,
			Kind:           KindProperty,
			Detail:         form,
			Range:          w.rangeOf(arg),
			SelectionRange: w.rangeOf(arg),
			Visibility:     w.stack.visibility,
			MethodType:     MethodTypeInstance,
		})
	}
}

// expandDefineMethod emits a method symbol for define_method calls whose
// name is a literal. Computed names are skipped: resolving them would
// require evaluation.
func (w *walker) expandDefineMethod(node *sitter.Node) {
	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return
	}
	nameArg := args.NamedChild(0)
	name := literalName(nameArg, w.source)
	if name == "" {
		return
	}

	sym := &Symbol{
		Name:           name,
		Kind:           KindMethod,
		Detail:         "define_method",
		Range:          w.rangeOf(node),
		SelectionRange: w.rangeOf(nameArg),
		Visibility:     w.stack.visibility,
		MethodType:     MethodTypeInstance,
	}
	if w.stack.inSingleton() {
		sym.Kind = KindSingletonMethod
		sym.MethodType = MethodTypeSingleton
	}
	w.stack.add(sym)
}

// expandAliasMethod handles `alias_method :new_name, :old_name`.
func (w *walker) expandAliasMethod(node *sitter.Node) {
	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() < 2 {
		return
	}

	newArg := args.NamedChild(0)
	newName := literalName(newArg, w.source)
	oldName := literalName(args.NamedChild(1), w.source)
	if newName == "" {
		return
	}

	detail := ""
	if oldName != "" {
		detail = "alias_method :" + oldName
	}

	w.stack.add(&Symbol{
		Name:           newName,
		Kind:           KindAlias,
		Detail:         detail,
		Range:          w.rangeOf(node),
		SelectionRange: w.rangeOf(newArg),
		Visibility:     w.stack.visibility,
	})
}
