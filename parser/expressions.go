package parser

import (
	"strings"

	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

func (c *converter) exprs(nodes []*sitter.Node) []ast.Expr {
	ret := make([]ast.Expr, 0, len(nodes))
	for _, n := range nodes {
		ret = append(ret, c.expr(n))
	}
	return ret
}

func (c *converter) expr(n *sitter.Node) ast.Expr {
	r := c.rangeOf(n)
	switch n.Kind() {
	case "identifier", "keyword_identifier":
		return &ast.Name{Range: r, Id: c.text(n)}
	case "integer", "float":
		return c.number(n)
	case "string", "concatenated_string":
		return c.str(n)
	case "true":
		return &ast.Literal{Range: r, Kind: ast.BoolLit, Value: "True"}
	case "false":
		return &ast.Literal{Range: r, Kind: ast.BoolLit, Value: "False"}
	case "none":
		return &ast.Literal{Range: r, Kind: ast.NoneLit, Value: "None"}
	case "ellipsis":
		return &ast.Literal{Range: r, Kind: ast.EllipsisLit, Value: "..."}

	case "binary_operator":
		opNode := n.ChildByFieldName("operator")
		op, ok := ast.OperatorFromSymbol(c.text(opNode))
		if !ok {
			return c.unsupported(opNode, "operator "+c.text(opNode))
		}
		return &ast.BinOp{
			Range: r,
			Left:  c.expr(n.ChildByFieldName("left")),
			Op:    op,
			Right: c.expr(n.ChildByFieldName("right")),
		}
	case "unary_operator":
		op := ast.UAdd
		switch c.text(n.ChildByFieldName("operator")) {
		case "-":
			op = ast.USub
		case "~":
			op = ast.Invert
		}
		return &ast.UnaryOp{Range: r, Op: op, Operand: c.expr(n.ChildByFieldName("argument"))}
	case "not_operator":
		return &ast.UnaryOp{Range: r, Op: ast.Not, Operand: c.expr(n.ChildByFieldName("argument"))}
	case "boolean_operator":
		return c.boolOp(n)
	case "comparison_operator":
		return c.comparison(n)
	case "conditional_expression":
		parts := c.named(n)
		return &ast.IfExp{
			Range:  r,
			Body:   c.expr(parts[0]),
			Test:   c.expr(parts[1]),
			OrElse: c.expr(parts[2]),
		}
	case "named_expression":
		return &ast.NamedExpr{
			Range:  r,
			Target: c.expr(n.ChildByFieldName("name")),
			Value:  c.expr(n.ChildByFieldName("value")),
		}
	case "await":
		return &ast.Await{Range: r, Value: c.expr(c.named(n)[0])}
	case "lambda":
		args, problem := c.arguments(n.ChildByFieldName("parameters"))
		if problem != "" {
			return c.unsupported(n, problem)
		}
		return &ast.Lambda{Range: r, Args: args, Body: c.expr(n.ChildByFieldName("body"))}
	case "yield":
		value := c.named(n)
		if c.hasToken(n, "from") {
			return &ast.YieldFrom{Range: r, Value: c.expr(value[0])}
		}
		yield := &ast.Yield{Range: r}
		if len(value) > 0 {
			yield.Value = c.expr(value[0])
		}
		return yield

	case "call":
		call := &ast.Call{Range: r, Func: c.expr(n.ChildByFieldName("function"))}
		arguments := n.ChildByFieldName("arguments")
		if arguments.Kind() == "generator_expression" {
			call.Args = []ast.Expr{c.expr(arguments)}
		} else {
			call.Args, call.Keywords = c.callArguments(arguments)
		}
		return call
	case "attribute":
		return &ast.Attribute{
			Range: r,
			Value: c.expr(n.ChildByFieldName("object")),
			Attr:  c.text(n.ChildByFieldName("attribute")),
		}
	case "subscript":
		sub := &ast.Subscript{Range: r, Value: c.expr(n.ChildByFieldName("value"))}
		indices := c.fields(n, "subscript")
		if len(indices) == 1 {
			sub.Slice = c.expr(indices[0])
		} else {
			sub.Slice = &ast.Tuple{
				Range: ast.RangeBetween(c.rangeOf(indices[0]), c.rangeOf(indices[len(indices)-1])),
				Elts:  c.exprs(indices),
			}
		}
		return sub
	case "slice":
		return c.slice(n)

	case "parenthesized_expression":
		return c.expr(c.named(n)[0])
	case "tuple", "expression_list", "pattern_list", "tuple_pattern":
		return &ast.Tuple{Range: r, Elts: c.exprs(c.named(n))}
	case "list", "list_pattern":
		return &ast.List{Range: r, Elts: c.exprs(c.named(n))}
	case "set":
		return &ast.Set{Range: r, Elts: c.exprs(c.named(n))}
	case "dictionary":
		return c.dictionary(n)
	case "list_splat", "list_splat_pattern":
		return &ast.Starred{Range: r, Value: c.expr(c.named(n)[0])}
	case "parenthesized_list_splat":
		return c.expr(c.named(n)[0])

	case "list_comprehension":
		return &ast.ListComp{Range: r, Elt: c.expr(n.ChildByFieldName("body")), Generators: c.comprehensions(n)}
	case "set_comprehension":
		return &ast.SetComp{Range: r, Elt: c.expr(n.ChildByFieldName("body")), Generators: c.comprehensions(n)}
	case "generator_expression":
		return &ast.GeneratorExp{Range: r, Elt: c.expr(n.ChildByFieldName("body")), Generators: c.comprehensions(n)}
	case "dictionary_comprehension":
		pair := n.ChildByFieldName("body")
		return &ast.DictComp{
			Range:      r,
			Key:        c.expr(pair.ChildByFieldName("key")),
			Value:      c.expr(pair.ChildByFieldName("value")),
			Generators: c.comprehensions(n),
		}

	case "type":
		// annotations are kept only when they are plain expressions
		inner := c.named(n)
		switch inner[0].Kind() {
		case "splat_type", "generic_type", "union_type", "constrained_type", "member_type":
			return c.unsupported(n, "type annotation "+c.text(n))
		}
		return c.expr(inner[0])
	default:
		return c.unsupported(n, strings.ReplaceAll(n.Kind(), "_", " "))
	}
}

// boolOp flattens `a and b and c` into a single BoolOp
func (c *converter) boolOp(n *sitter.Node) ast.Expr {
	op := ast.And
	if c.text(n.ChildByFieldName("operator")) == "or" {
		op = ast.Or
	}
	var values []ast.Expr
	var collect func(operand *sitter.Node)
	collect = func(operand *sitter.Node) {
		if operand.Kind() == "boolean_operator" && c.text(operand.ChildByFieldName("operator")) == op.String() {
			collect(operand.ChildByFieldName("left"))
			collect(operand.ChildByFieldName("right"))
			return
		}
		values = append(values, c.expr(operand))
	}
	collect(n.ChildByFieldName("left"))
	collect(n.ChildByFieldName("right"))
	return &ast.BoolOp{Range: c.rangeOf(n), Op: op, Values: values}
}

func (c *converter) comparison(n *sitter.Node) ast.Expr {
	operands := c.named(n)
	cmp := &ast.Compare{Range: c.rangeOf(n), Left: c.expr(operands[0])}
	for i, opNode := range c.fields(n, "operators") {
		sym := strings.Join(strings.Fields(c.text(opNode)), " ")
		op, ok := ast.CmpOpFromSymbol(sym)
		if !ok {
			return c.unsupported(opNode, "comparison "+sym)
		}
		cmp.Ops = append(cmp.Ops, op)
		cmp.Comparators = append(cmp.Comparators, c.expr(operands[i+1]))
	}
	return cmp
}

// slice places its operands by counting the colons before each of them
func (c *converter) slice(n *sitter.Node) ast.Expr {
	s := &ast.Slice{Range: c.rangeOf(n)}
	colons := 0
	for _, child := range c.all(n) {
		if !child.IsNamed() {
			if child.Kind() == ":" {
				colons++
			}
			continue
		}
		switch colons {
		case 0:
			s.Lower = c.expr(child)
		case 1:
			s.Upper = c.expr(child)
		default:
			s.Step = c.expr(child)
		}
	}
	return s
}

func (c *converter) dictionary(n *sitter.Node) ast.Expr {
	dict := &ast.Dict{Range: c.rangeOf(n)}
	for _, child := range c.named(n) {
		switch child.Kind() {
		case "pair":
			dict.Keys = append(dict.Keys, c.expr(child.ChildByFieldName("key")))
			dict.Values = append(dict.Values, c.expr(child.ChildByFieldName("value")))
		case "dictionary_splat":
			dict.Keys = append(dict.Keys, nil)
			dict.Values = append(dict.Values, c.expr(c.named(child)[0]))
		}
	}
	return dict
}

// callArguments splits an argument_list into positional arguments and keywords
func (c *converter) callArguments(n *sitter.Node) ([]ast.Expr, []ast.Keyword) {
	var args []ast.Expr
	var keywords []ast.Keyword
	for _, child := range c.named(n) {
		switch child.Kind() {
		case "keyword_argument":
			keywords = append(keywords, ast.Keyword{
				Range: c.rangeOf(child),
				Arg:   c.text(child.ChildByFieldName("name")),
				Value: c.expr(child.ChildByFieldName("value")),
			})
		case "dictionary_splat":
			keywords = append(keywords, ast.Keyword{
				Range: c.rangeOf(child),
				Value: c.expr(c.named(child)[0]),
			})
		default:
			args = append(args, c.expr(child))
		}
	}
	return args, keywords
}

// comprehensions reads the `for ... in ...` and `if ...` clauses following
// the body of a comprehension, attaching each if to the preceding for
func (c *converter) comprehensions(n *sitter.Node) []ast.Comprehension {
	var ret []ast.Comprehension
	for _, child := range c.named(n) {
		switch child.Kind() {
		case "for_in_clause":
			comp := ast.Comprehension{
				Range:   c.rangeOf(child),
				Target:  c.expr(child.ChildByFieldName("left")),
				IsAsync: c.hasToken(child, "async"),
			}
			iters := c.fields(child, "right")
			if len(iters) == 1 {
				comp.Iter = c.expr(iters[0])
			} else {
				comp.Iter = &ast.Tuple{
					Range: ast.RangeBetween(c.rangeOf(iters[0]), c.rangeOf(iters[len(iters)-1])),
					Elts:  c.exprs(iters),
				}
			}
			ret = append(ret, comp)
		case "if_clause":
			last := &ret[len(ret)-1]
			last.Ifs = append(last.Ifs, c.expr(c.named(child)[0]))
		}
	}
	return ret
}
