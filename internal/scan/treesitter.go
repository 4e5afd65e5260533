package scan

import (
	"log"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"
)

// TreeSitterScanner finds function definitions with the tree-sitter C
// grammar. Signatures are rendered in the same `name(params) {` shape the
// regex scanner produces so the body locator can find them in the text.
type TreeSitterScanner struct {
	language *sitter.Language
}

// NewTreeSitterScanner creates a tree-sitter backed definition scanner.
func NewTreeSitterScanner() *TreeSitterScanner {
	return &TreeSitterScanner{
		language: sitter.NewLanguage(c.Language()),
	}
}

// Definitions returns function definitions in source order. Functions
// whose body is empty (`{}`) are skipped, matching the regex scanner.
func (s *TreeSitterScanner) Definitions(source string) []Definition {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(s.language); err != nil {
		log.Printf("Warning: failed to load C grammar: %v", err)
		return nil
	}

	src := []byte(source)
	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	var defs []Definition
	walkTree(tree.RootNode(), func(n *sitter.Node) bool {
		if n.Kind() != "function_definition" {
			return true
		}
		if def, ok := definitionFromNode(n, src); ok {
			defs = append(defs, def)
		}
		return false
	})
	return defs
}

func definitionFromNode(node *sitter.Node, src []byte) (Definition, bool) {
	body := node.ChildByFieldName("body")
	declarator := findFunctionDeclarator(node.ChildByFieldName("declarator"))
	if body == nil || declarator == nil {
		return Definition{}, false
	}
	if open := body.StartByte(); int(open)+1 < len(src) && src[open+1] == '}' {
		return Definition{}, false
	}

	nameNode := declarator.ChildByFieldName("declarator")
	if nameNode == nil || nameNode.Kind() != "identifier" {
		return Definition{}, false
	}
	name := nodeText(nameNode, src)
	if keywords[name] {
		return Definition{}, false
	}

	// Signature runs from the function name to the closing paren of the
	// parameter list; a brace on its own line will not be found later.
	sig := strings.TrimSpace(string(src[nameNode.StartByte():declarator.EndByte()]))
	return Definition{
		Name:      name,
		Signature: sig + " {",
	}, true
}

// findFunctionDeclarator unwraps pointer declarators down to the
// function_declarator node.
func findFunctionDeclarator(node *sitter.Node) *sitter.Node {
	for node != nil {
		switch node.Kind() {
		case "function_declarator":
			return node
		case "pointer_declarator":
			node = node.ChildByFieldName("declarator")
		default:
			return nil
		}
	}
	return nil
}

func nodeText(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}
	return string(src[node.StartByte():node.EndByte()])
}

// walkTree visits node and its descendants depth first. Returning false
// from visitor skips the node's children.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		walkTree(node.Child(i), visitor)
	}
}
