package parser

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// arguments converts a parameters or lambda_parameters node. A non-empty
// problem names a parameter form that ast.Arguments cannot represent.
func (c *converter) arguments(n *sitter.Node) (args *ast.Arguments, problem string) {
	args = &ast.Arguments{}
	if n == nil {
		return args, ""
	}
	args.Range = c.rangeOf(n)

	kwOnly := false
	add := func(arg ast.Arg, def ast.Expr) {
		if kwOnly {
			args.KwOnly = append(args.KwOnly, arg)
			args.KwDefaults = append(args.KwDefaults, def)
			return
		}
		args.Args = append(args.Args, arg)
		if def != nil {
			args.Defaults = append(args.Defaults, def)
		}
	}

	for _, param := range c.named(n) {
		r := c.rangeOf(param)
		switch param.Kind() {
		case "identifier":
			add(ast.Arg{Range: r, Name: c.text(param)}, nil)
		case "default_parameter":
			name := param.ChildByFieldName("name")
			if name.Kind() != "identifier" {
				return nil, "tuple parameter"
			}
			add(ast.Arg{Range: r, Name: c.text(name)}, c.expr(param.ChildByFieldName("value")))
		case "typed_default_parameter":
			arg := ast.Arg{
				Range:      r,
				Name:       c.text(param.ChildByFieldName("name")),
				Annotation: c.expr(param.ChildByFieldName("type")),
			}
			add(arg, c.expr(param.ChildByFieldName("value")))
		case "typed_parameter":
			annotation := c.expr(param.ChildByFieldName("type"))
			inner := c.named(param)[0]
			switch inner.Kind() {
			case "list_splat_pattern":
				args.Vararg = &ast.Arg{Range: r, Name: c.text(c.named(inner)[0]), Annotation: annotation}
				kwOnly = true
			case "dictionary_splat_pattern":
				args.Kwarg = &ast.Arg{Range: r, Name: c.text(c.named(inner)[0]), Annotation: annotation}
			default:
				add(ast.Arg{Range: r, Name: c.text(inner), Annotation: annotation}, nil)
			}
		case "list_splat_pattern":
			args.Vararg = &ast.Arg{Range: r, Name: c.text(c.named(param)[0])}
			kwOnly = true
		case "dictionary_splat_pattern":
			args.Kwarg = &ast.Arg{Range: r, Name: c.text(c.named(param)[0])}
		case "keyword_separator":
			kwOnly = true
		case "positional_separator":
			args.PosOnly, args.Args = args.Args, nil
		case "tuple_pattern":
			return nil, "tuple parameter"
		default:
			return nil, "parameter " + c.text(param)
		}
	}
	return args, ""
}
