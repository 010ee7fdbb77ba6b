package ast

// Inspect traverses the tree rooted at node in depth-first order, calling f for each node.
// If f returns false, the children of that node are skipped.
// Nested function, lambda and class bodies are visited like any other child.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, f)
	}
}

// Children returns the direct sub-nodes of node, in source order
func Children(node Node) []Node {
	var out []Node
	expr := func(es ...Expr) {
		for _, e := range es {
			if e != nil {
				out = append(out, e)
			}
		}
	}
	stmts := func(ss []Stmt) {
		for _, s := range ss {
			out = append(out, s)
		}
	}
	arguments := func(args *Arguments) {
		if args == nil {
			return
		}
		expr(args.Defaults...)
		expr(args.KwDefaults...)
	}
	comprehensions := func(gens []Comprehension) {
		for _, g := range gens {
			expr(g.Target, g.Iter)
			expr(g.Ifs...)
		}
	}

	switch n := node.(type) {
	case *Module:
		stmts(n.Body)
	case *FormattedString:
		expr(n.Values...)
	case *BinOp:
		expr(n.Left, n.Right)
	case *UnaryOp:
		expr(n.Operand)
	case *BoolOp:
		expr(n.Values...)
	case *Compare:
		expr(n.Left)
		expr(n.Comparators...)
	case *Call:
		expr(n.Func)
		expr(n.Args...)
		for _, kw := range n.Keywords {
			expr(kw.Value)
		}
	case *Attribute:
		expr(n.Value)
	case *Subscript:
		expr(n.Value, n.Slice)
	case *Slice:
		expr(n.Lower, n.Upper, n.Step)
	case *Starred:
		expr(n.Value)
	case *List:
		expr(n.Elts...)
	case *Tuple:
		expr(n.Elts...)
	case *Set:
		expr(n.Elts...)
	case *Dict:
		expr(n.Keys...)
		expr(n.Values...)
	case *IfExp:
		expr(n.Test, n.Body, n.OrElse)
	case *Lambda:
		arguments(n.Args)
		expr(n.Body)
	case *ListComp:
		expr(n.Elt)
		comprehensions(n.Generators)
	case *SetComp:
		expr(n.Elt)
		comprehensions(n.Generators)
	case *GeneratorExp:
		expr(n.Elt)
		comprehensions(n.Generators)
	case *DictComp:
		expr(n.Key, n.Value)
		comprehensions(n.Generators)
	case *Yield:
		expr(n.Value)
	case *YieldFrom:
		expr(n.Value)
	case *Await:
		expr(n.Value)
	case *NamedExpr:
		expr(n.Target, n.Value)

	case *FunctionDef:
		expr(n.Decorators...)
		arguments(n.Args)
		expr(n.Returns)
		stmts(n.Body)
	case *ClassDef:
		expr(n.Decorators...)
		expr(n.Bases...)
		for _, kw := range n.Keywords {
			expr(kw.Value)
		}
		stmts(n.Body)
	case *Return:
		expr(n.Value)
	case *Delete:
		expr(n.Targets...)
	case *Assign:
		expr(n.Targets...)
		expr(n.Value)
	case *AugAssign:
		expr(n.Target, n.Value)
	case *AnnAssign:
		expr(n.Target, n.Annotation, n.Value)
	case *For:
		expr(n.Target, n.Iter)
		stmts(n.Body)
		stmts(n.OrElse)
	case *While:
		expr(n.Test)
		stmts(n.Body)
		stmts(n.OrElse)
	case *If:
		expr(n.Test)
		stmts(n.Body)
		stmts(n.OrElse)
	case *With:
		for _, item := range n.Items {
			expr(item.ContextExpr, item.OptionalVars)
		}
		stmts(n.Body)
	case *Raise:
		expr(n.Exc, n.Cause)
	case *Try:
		stmts(n.Body)
		for _, h := range n.Handlers {
			expr(h.Type)
			stmts(h.Body)
		}
		stmts(n.OrElse)
		stmts(n.FinalBody)
	case *Assert:
		expr(n.Test, n.Msg)
	case *ExprStmt:
		expr(n.Value)
	}
	return out
}
