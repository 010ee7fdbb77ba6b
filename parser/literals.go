package parser

import (
	"strings"

	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

func (c *converter) number(n *sitter.Node) ast.Expr {
	text := c.text(n)
	kind := ast.IntLit
	if n.Kind() == "float" {
		kind = ast.FloatLit
	}
	if strings.HasSuffix(text, "j") || strings.HasSuffix(text, "J") {
		kind = ast.ComplexLit
	}
	return &ast.Literal{Range: c.rangeOf(n), Kind: kind, Value: text}
}

// str converts a string or a concatenation of strings. The concatenation is
// an f-string as soon as one part is, and bytes when its parts are bytes.
func (c *converter) str(n *sitter.Node) ast.Expr {
	parts := []*sitter.Node{n}
	if n.Kind() == "concatenated_string" {
		parts = c.named(n)
	}

	var formatted, bytes bool
	var values []ast.Expr
	for _, part := range parts {
		for _, child := range c.named(part) {
			switch child.Kind() {
			case "string_start":
				prefix := strings.ToLower(strings.TrimRight(c.text(child), `"'`))
				formatted = formatted || strings.ContainsRune(prefix, 'f')
				bytes = bytes || strings.ContainsRune(prefix, 'b')
			case "interpolation":
				values = append(values, c.expr(child.ChildByFieldName("expression")))
			}
		}
	}

	r := c.rangeOf(n)
	switch {
	case formatted:
		return &ast.FormattedString{Range: r, Values: values}
	case bytes:
		return &ast.Literal{Range: r, Kind: ast.BytesLit, Value: c.text(n)}
	default:
		return &ast.Literal{Range: r, Kind: ast.StringLit, Value: c.text(n)}
	}
}
