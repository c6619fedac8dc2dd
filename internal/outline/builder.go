package outline

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// nodeText extracts the source text covered by a node.
func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// superclassDetail renders the `< Base` annotation for a class node, or
// returns "" when the class has no superclass clause.
func superclassDetail(classNode *sitter.Node, source []byte) string {
	super := classNode.ChildByFieldName("superclass")
	if super == nil {
		return ""
	}

	// The superclass node wraps the `<` token and the expression after it;
	// render just the expression.
	for i := int(super.NamedChildCount()) - 1; i >= 0; i-- {
		child := super.NamedChild(uint(i))
		if child != nil {
			return "< " + nodeText(child, source)
		}
	}
	return strings.TrimSpace(nodeText(super, source))
}

// renderParameters renders a method's parameter list in declaration order:
// required, optional (with default source text), *rest, keyword, **kwrest
// and &block parameters, normalized into parentheses regardless of whether
// the source used them.
func renderParameters(methodNode *sitter.Node, source []byte) string {
	params := methodNode.ChildByFieldName("parameters")
	if params == nil {
		return "()"
	}

	var parts []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(uint(i))
		if child == nil {
			continue
		}
		text := strings.TrimSpace(nodeText(child, source))
		if text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "()"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// literalName resolves a name argument that must be statically determinable:
// a symbol literal (:foo), a delimited symbol (:"foo"), or a plain string
// literal. Computed names return "".
func literalName(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}

	switch node.Kind() {
	case "simple_symbol":
		return strings.TrimPrefix(nodeText(node, source), ":")
	case "delimited_symbol", "symbol":
		if content := findChildByKind(node, "string_content"); content != nil {
			return nodeText(content, source)
		}
		return ""
	case "string":
		// Only plain strings qualify; any interpolation makes the name
		// computed.
		if node.NamedChildCount() != 1 {
			return ""
		}
		if content := node.NamedChild(0); content != nil && content.Kind() == "string_content" {
			return nodeText(content, source)
		}
		return ""
	default:
		return ""
	}
}

// findChildByKind finds the first child node with the given kind.
func findChildByKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}
