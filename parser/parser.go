// Package parser turns Python source into the syntax tree of frontend/ast,
// using the tree-sitter Python grammar.
package parser

import (
	"fmt"
	"go/token"
	"log/slog"
	"strings"

	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	"github.com/PiJoules/python-type-inference-sub000/frontend/ilerr"
	"github.com/PiJoules/python-type-inference-sub000/internal/log"
	"github.com/PiJoules/python-type-inference-sub000/util"
	"github.com/pkg/errors"
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

var logger = log.DefaultLogger.With("section", "parser")

var language = sitter.NewLanguage(python.Language())

// ParseModule parses src as the contents of the file called name.
// The file is registered in fset, and the positions of the returned tree point into it.
//
// Syntax errors are reported as an ilerr.NewParse, located at the first
// missing token or, when nothing is missing, at the first unparseable region.
func ParseModule(fset *token.FileSet, name string, src []byte) (*ast.Module, error) {
	p := sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(language); err != nil {
		return nil, errors.Wrap(err, "parser: set language")
	}

	tree := p.Parse(src, nil)
	if tree == nil {
		return nil, errors.Errorf("parser: no tree produced for %s", name)
	}
	defer tree.Close()

	file := fset.AddFile(name, -1, len(src))
	file.SetLinesForContent(src)

	c := &converter{
		src:    src,
		file:   file,
		cursor: tree.Walk(),
		Logger: logger.With("file", name),
	}
	defer c.cursor.Close()

	root := tree.RootNode()
	if root.HasError() {
		err := c.syntaxError(root)
		c.Debug("syntax error", "err", err)
		return nil, err
	}

	mod := &ast.Module{
		Range: c.rangeOf(root),
		Name:  name,
		Body:  c.block(root),
	}
	c.Debug("parsed module", "statements", len(mod.Body))
	return mod, nil
}

// converter walks a tree-sitter tree and builds the equivalent ast nodes.
// Constructs with no ast counterpart become *ast.Unsupported.
type converter struct {
	src    []byte
	file   *token.File
	cursor *sitter.TreeCursor

	*slog.Logger
}

func (c *converter) rangeOf(n *sitter.Node) ast.Range {
	return ast.Range{
		PosStart: c.file.Pos(int(n.StartByte())),
		PosEnd:   c.file.Pos(int(n.EndByte())),
	}
}

func (c *converter) text(n *sitter.Node) string {
	return n.Utf8Text(c.src)
}

// named returns the named children of n, leaving out comments
func (c *converter) named(n *sitter.Node) []*sitter.Node {
	children := n.NamedChildren(c.cursor)
	ret := make([]*sitter.Node, 0, len(children))
	for i := range children {
		if children[i].IsExtra() {
			continue
		}
		ret = append(ret, &children[i])
	}
	return ret
}

// all returns every child of n, anonymous tokens included
func (c *converter) all(n *sitter.Node) []*sitter.Node {
	children := n.Children(c.cursor)
	ret := make([]*sitter.Node, 0, len(children))
	for i := range children {
		if children[i].IsExtra() {
			continue
		}
		ret = append(ret, &children[i])
	}
	return ret
}

func (c *converter) fields(n *sitter.Node, field string) []*sitter.Node {
	children := n.ChildrenByFieldName(field, c.cursor)
	ret := make([]*sitter.Node, len(children))
	for i := range children {
		ret[i] = &children[i]
	}
	return ret
}

// hasToken reports whether n has an anonymous child spelled tok
func (c *converter) hasToken(n *sitter.Node, tok string) bool {
	for _, child := range c.all(n) {
		if !child.IsNamed() && child.Kind() == tok {
			return true
		}
	}
	return false
}

func (c *converter) unsupported(n *sitter.Node, what string) *ast.Unsupported {
	c.Debug("unsupported construct", "kind", n.Kind(), "what", what)
	return &ast.Unsupported{Range: c.rangeOf(n), What: what}
}

func (c *converter) syntaxError(root *sitter.Node) error {
	node := firstNode(root, (*sitter.Node).IsMissing)
	var message string
	if node != nil {
		message = "expected " + strings.TrimSpace(node.Kind())
	} else if node = firstNode(root, (*sitter.Node).IsError); node != nil {
		message = "unexpected " + quoteSnippet(c.text(node))
	} else {
		node = root
		message = "invalid syntax"
	}
	start := node.StartPosition()
	return ilerr.New(ilerr.NewParse{
		Positioner:    c.rangeOf(node),
		ParserMessage: message,
		Line:          int(start.Row) + 1,
		Column:        int(start.Column) + 1,
	})
}

// firstNode returns the leftmost node under root satisfying pred, in pre-order
func firstNode(root *sitter.Node, pred func(*sitter.Node) bool) *sitter.Node {
	pending := &util.Stack[*sitter.Node]{}
	pending.Push(root)
	for {
		node, ok := pending.Pop()
		if !ok {
			return nil
		}
		if pred(node) {
			return node
		}
		for i := node.ChildCount(); i > 0; i-- {
			pending.Push(node.Child(i - 1))
		}
	}
}

func quoteSnippet(s string) string {
	s, _, _ = strings.Cut(s, "\n")
	if len(s) > 20 {
		s = s[:20] + "..."
	}
	return fmt.Sprintf("%q", s)
}
