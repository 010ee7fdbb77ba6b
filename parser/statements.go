package parser

import (
	"strings"

	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// block converts the statements of a module or an indented suite
func (c *converter) block(n *sitter.Node) []ast.Stmt {
	if n == nil {
		return nil
	}
	var ret []ast.Stmt
	for _, child := range c.named(n) {
		ret = append(ret, c.stmt(child))
	}
	return ret
}

func (c *converter) stmt(n *sitter.Node) ast.Stmt {
	r := c.rangeOf(n)
	switch n.Kind() {
	case "expression_statement":
		return c.expressionStatement(n)
	case "return_statement":
		ret := &ast.Return{Range: r}
		if values := c.named(n); len(values) > 0 {
			ret.Value = c.expr(values[0])
		}
		return ret
	case "delete_statement":
		values := c.named(n)
		if len(values) == 0 {
			return &ast.Delete{Range: r}
		}
		target := c.expr(values[0])
		if tuple, ok := target.(*ast.Tuple); ok && values[0].Kind() == "expression_list" {
			return &ast.Delete{Range: r, Targets: tuple.Elts}
		}
		return &ast.Delete{Range: r, Targets: []ast.Expr{target}}
	case "raise_statement":
		raise := &ast.Raise{Range: r}
		cause := n.ChildByFieldName("cause")
		if cause != nil {
			raise.Cause = c.expr(cause)
		}
		for _, child := range c.named(n) {
			if cause == nil || child.StartByte() != cause.StartByte() {
				raise.Exc = c.expr(child)
				break
			}
		}
		return raise
	case "assert_statement":
		values := c.named(n)
		assert := &ast.Assert{Range: r, Test: c.expr(values[0])}
		if len(values) > 1 {
			assert.Msg = c.expr(values[1])
		}
		return assert
	case "pass_statement":
		return &ast.Pass{Range: r}
	case "break_statement":
		return &ast.Break{Range: r}
	case "continue_statement":
		return &ast.Continue{Range: r}
	case "global_statement":
		return &ast.Global{Range: r, Names: c.identifiers(n)}
	case "nonlocal_statement":
		return &ast.Nonlocal{Range: r, Names: c.identifiers(n)}
	case "import_statement":
		return &ast.Import{Range: r, Names: c.aliases(n)}
	case "import_from_statement":
		return c.importFrom(n)
	case "future_import_statement":
		return &ast.Pass{Range: r}
	case "if_statement":
		return c.ifStatement(n)
	case "for_statement":
		return &ast.For{
			Range:   r,
			Target:  c.expr(n.ChildByFieldName("left")),
			Iter:    c.expr(n.ChildByFieldName("right")),
			Body:    c.block(n.ChildByFieldName("body")),
			OrElse:  c.elseBody(n.ChildByFieldName("alternative")),
			IsAsync: c.hasToken(n, "async"),
		}
	case "while_statement":
		return &ast.While{
			Range:  r,
			Test:   c.expr(n.ChildByFieldName("condition")),
			Body:   c.block(n.ChildByFieldName("body")),
			OrElse: c.elseBody(n.ChildByFieldName("alternative")),
		}
	case "try_statement":
		return c.tryStatement(n)
	case "with_statement":
		return c.withStatement(n)
	case "function_definition":
		return c.functionDef(n, nil)
	case "class_definition":
		return c.classDef(n, nil)
	case "decorated_definition":
		var decorators []ast.Expr
		for _, child := range c.named(n) {
			if child.Kind() == "decorator" {
				decorators = append(decorators, c.expr(c.named(child)[0]))
			}
		}
		def := n.ChildByFieldName("definition")
		if def.Kind() == "class_definition" {
			return c.classDef(def, decorators)
		}
		return c.functionDef(def, decorators)
	case "match_statement":
		return c.unsupported(n, "match statement")
	case "print_statement":
		return c.unsupported(n, "print statement")
	case "exec_statement":
		return c.unsupported(n, "exec statement")
	case "type_alias_statement":
		return c.unsupported(n, "type alias")
	default:
		return c.unsupported(n, strings.ReplaceAll(n.Kind(), "_", " "))
	}
}

func (c *converter) expressionStatement(n *sitter.Node) ast.Stmt {
	r := c.rangeOf(n)
	children := c.named(n)
	if len(children) > 1 {
		return &ast.ExprStmt{Range: r, Value: &ast.Tuple{Range: r, Elts: c.exprs(children)}}
	}
	child := children[0]
	switch child.Kind() {
	case "assignment":
		return c.assignment(child)
	case "augmented_assignment":
		return c.augmentedAssignment(child)
	default:
		return &ast.ExprStmt{Range: r, Value: c.expr(child)}
	}
}

// assignment flattens chains like `a = b = value` into a single ast.Assign
func (c *converter) assignment(n *sitter.Node) ast.Stmt {
	r := c.rangeOf(n)
	left := c.expr(n.ChildByFieldName("left"))
	right := n.ChildByFieldName("right")
	if annotation := n.ChildByFieldName("type"); annotation != nil {
		ann := &ast.AnnAssign{Range: r, Target: left, Annotation: c.expr(annotation)}
		if right != nil {
			ann.Value = c.expr(right)
		}
		return ann
	}

	targets := []ast.Expr{left}
	for right.Kind() == "assignment" && right.ChildByFieldName("type") == nil {
		targets = append(targets, c.expr(right.ChildByFieldName("left")))
		right = right.ChildByFieldName("right")
	}
	switch right.Kind() {
	case "assignment", "augmented_assignment":
		return c.unsupported(right, "assignment expression as a value")
	}
	return &ast.Assign{Range: r, Targets: targets, Value: c.expr(right)}
}

func (c *converter) augmentedAssignment(n *sitter.Node) ast.Stmt {
	opNode := n.ChildByFieldName("operator")
	op, ok := ast.OperatorFromSymbol(c.text(opNode))
	if !ok {
		return c.unsupported(opNode, "operator "+c.text(opNode))
	}
	return &ast.AugAssign{
		Range:  c.rangeOf(n),
		Target: c.expr(n.ChildByFieldName("left")),
		Op:     op,
		Value:  c.expr(n.ChildByFieldName("right")),
	}
}

func (c *converter) identifiers(n *sitter.Node) []string {
	var names []string
	for _, child := range c.named(n) {
		names = append(names, c.text(child))
	}
	return names
}

// aliases reads the `name` fields of an import, each either a dotted name or `dotted as alias`
func (c *converter) aliases(n *sitter.Node) []ast.Alias {
	var ret []ast.Alias
	for _, name := range c.fields(n, "name") {
		alias := ast.Alias{Range: c.rangeOf(name)}
		if name.Kind() == "aliased_import" {
			alias.Name = c.text(name.ChildByFieldName("name"))
			alias.AsName = c.text(name.ChildByFieldName("alias"))
		} else {
			alias.Name = c.text(name)
		}
		ret = append(ret, alias)
	}
	return ret
}

func (c *converter) importFrom(n *sitter.Node) ast.Stmt {
	imp := &ast.ImportFrom{Range: c.rangeOf(n)}
	module := n.ChildByFieldName("module_name")
	if module.Kind() == "relative_import" {
		for _, child := range c.named(module) {
			switch child.Kind() {
			case "import_prefix":
				imp.Level = len(strings.TrimSpace(c.text(child)))
			case "dotted_name":
				imp.Module = c.text(child)
			}
		}
	} else {
		imp.Module = c.text(module)
	}

	for _, child := range c.named(n) {
		if child.Kind() == "wildcard_import" {
			imp.Names = []ast.Alias{{Range: c.rangeOf(child), Name: "*"}}
			return imp
		}
	}
	imp.Names = c.aliases(n)
	return imp
}

// ifStatement builds elif chains as nested ifs in the else branch
func (c *converter) ifStatement(n *sitter.Node) ast.Stmt {
	root := &ast.If{
		Range: c.rangeOf(n),
		Test:  c.expr(n.ChildByFieldName("condition")),
		Body:  c.block(n.ChildByFieldName("consequence")),
	}
	last := root
	for _, alt := range c.fields(n, "alternative") {
		switch alt.Kind() {
		case "elif_clause":
			elif := &ast.If{
				Range: ast.Range{PosStart: c.rangeOf(alt).PosStart, PosEnd: root.PosEnd},
				Test:  c.expr(alt.ChildByFieldName("condition")),
				Body:  c.block(alt.ChildByFieldName("consequence")),
			}
			last.OrElse = []ast.Stmt{elif}
			last = elif
		case "else_clause":
			last.OrElse = c.block(alt.ChildByFieldName("body"))
		}
	}
	return root
}

func (c *converter) elseBody(n *sitter.Node) []ast.Stmt {
	if n == nil {
		return nil
	}
	return c.block(n.ChildByFieldName("body"))
}

// suite returns the block child of clauses like `finally:` that have no body field
func (c *converter) suite(n *sitter.Node) []ast.Stmt {
	for _, child := range c.named(n) {
		if child.Kind() == "block" {
			return c.block(child)
		}
	}
	return nil
}

func (c *converter) tryStatement(n *sitter.Node) ast.Stmt {
	try := &ast.Try{
		Range: c.rangeOf(n),
		Body:  c.block(n.ChildByFieldName("body")),
	}
	for _, child := range c.named(n) {
		switch child.Kind() {
		case "except_clause":
			if c.hasToken(child, "*") {
				return c.unsupported(child, "except*")
			}
			handler := ast.ExceptHandler{Range: c.rangeOf(child), Body: c.suite(child)}
			if values := c.fields(child, "value"); len(values) == 1 {
				handler.Type = c.expr(values[0])
			} else if len(values) > 1 {
				handler.Type = &ast.Tuple{
					Range: ast.RangeBetween(c.rangeOf(values[0]), c.rangeOf(values[len(values)-1])),
					Elts:  c.exprs(values),
				}
			}
			if alias := child.ChildByFieldName("alias"); alias != nil {
				handler.Name = c.text(alias)
			}
			try.Handlers = append(try.Handlers, handler)
		case "except_group_clause":
			return c.unsupported(child, "except*")
		case "else_clause":
			try.OrElse = c.block(child.ChildByFieldName("body"))
		case "finally_clause":
			try.FinalBody = c.suite(child)
		}
	}
	return try
}

func (c *converter) withStatement(n *sitter.Node) ast.Stmt {
	with := &ast.With{
		Range:   c.rangeOf(n),
		Body:    c.block(n.ChildByFieldName("body")),
		IsAsync: c.hasToken(n, "async"),
	}
	for _, child := range c.named(n) {
		if child.Kind() != "with_clause" {
			continue
		}
		for _, item := range c.named(child) {
			value := item.ChildByFieldName("value")
			withItem := ast.WithItem{Range: c.rangeOf(item)}
			if value.Kind() == "as_pattern" {
				withItem.ContextExpr = c.expr(c.named(value)[0])
				withItem.OptionalVars = c.asTarget(value.ChildByFieldName("alias"))
			} else {
				withItem.ContextExpr = c.expr(value)
			}
			with.Items = append(with.Items, withItem)
		}
	}
	return with
}

// asTarget converts the target of `with ... as target`. The grammar renames
// the target node itself, so its shape is recovered from fields and brackets.
func (c *converter) asTarget(n *sitter.Node) ast.Expr {
	r := c.rangeOf(n)
	inner := c.named(n)
	switch {
	case len(inner) == 0:
		return &ast.Name{Range: r, Id: c.text(n)}
	case n.ChildByFieldName("attribute") != nil:
		return &ast.Attribute{
			Range: r,
			Value: c.expr(n.ChildByFieldName("object")),
			Attr:  c.text(n.ChildByFieldName("attribute")),
		}
	case n.ChildByFieldName("subscript") != nil:
		return &ast.Subscript{
			Range: r,
			Value: c.expr(n.ChildByFieldName("value")),
			Slice: c.expr(n.ChildByFieldName("subscript")),
		}
	case n.Child(0).Kind() == "[":
		return &ast.List{Range: r, Elts: c.exprs(inner)}
	case n.Child(0).Kind() == "(" && len(inner) == 1 && !c.hasToken(n, ","):
		return c.expr(inner[0])
	case n.Child(0).Kind() == "(" || c.hasToken(n, ","):
		return &ast.Tuple{Range: r, Elts: c.exprs(inner)}
	default:
		return c.expr(inner[0])
	}
}

func (c *converter) functionDef(n *sitter.Node, decorators []ast.Expr) ast.Stmt {
	args, problem := c.arguments(n.ChildByFieldName("parameters"))
	if problem != "" {
		return c.unsupported(n, problem)
	}
	def := &ast.FunctionDef{
		Range:      c.rangeOf(n),
		Name:       c.text(n.ChildByFieldName("name")),
		Args:       args,
		Body:       c.block(n.ChildByFieldName("body")),
		Decorators: decorators,
		IsAsync:    c.hasToken(n, "async"),
	}
	if returns := n.ChildByFieldName("return_type"); returns != nil {
		def.Returns = c.expr(returns)
	}
	return def
}

func (c *converter) classDef(n *sitter.Node, decorators []ast.Expr) ast.Stmt {
	def := &ast.ClassDef{
		Range:      c.rangeOf(n),
		Name:       c.text(n.ChildByFieldName("name")),
		Body:       c.block(n.ChildByFieldName("body")),
		Decorators: decorators,
	}
	if supers := n.ChildByFieldName("superclasses"); supers != nil {
		def.Bases, def.Keywords = c.callArguments(supers)
	}
	return def
}
