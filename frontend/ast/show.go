package ast

import (
	"strings"
)

// ExprString renders expr back as (normalised) Python source,
// for use in error messages and logs
func ExprString(expr Expr) string {
	ctx := &showContext{Builder: &strings.Builder{}}
	ctx.showExpr(expr)
	return ctx.String()
}

type showContext struct {
	*strings.Builder
}

func (ctx *showContext) showList(exprs []Expr, sep string) {
	for i, e := range exprs {
		if i > 0 {
			ctx.WriteString(sep)
		}
		ctx.showExpr(e)
	}
}

func (ctx *showContext) showExpr(expr Expr) {
	switch expr := expr.(type) {
	case nil:
		ctx.WriteString("")
	case *Literal:
		ctx.WriteString(expr.Value)
	case *FormattedString:
		ctx.WriteString("f\"...\"")
	case *Name:
		ctx.WriteString(expr.Id)
	case *BinOp:
		ctx.showExpr(expr.Left)
		ctx.WriteString(" " + expr.Op.String() + " ")
		ctx.showExpr(expr.Right)
	case *UnaryOp:
		ctx.WriteString(expr.Op.String())
		ctx.showExpr(expr.Operand)
	case *BoolOp:
		ctx.showList(expr.Values, " "+expr.Op.String()+" ")
	case *Compare:
		ctx.showExpr(expr.Left)
		for i, op := range expr.Ops {
			ctx.WriteString(" " + op.String() + " ")
			ctx.showExpr(expr.Comparators[i])
		}
	case *Call:
		ctx.showExpr(expr.Func)
		ctx.WriteString("(")
		ctx.showList(expr.Args, ", ")
		for i, kw := range expr.Keywords {
			if i > 0 || len(expr.Args) > 0 {
				ctx.WriteString(", ")
			}
			if kw.Arg == "" {
				ctx.WriteString("**")
			} else {
				ctx.WriteString(kw.Arg + "=")
			}
			ctx.showExpr(kw.Value)
		}
		ctx.WriteString(")")
	case *Attribute:
		ctx.showExpr(expr.Value)
		ctx.WriteString("." + expr.Attr)
	case *Subscript:
		ctx.showExpr(expr.Value)
		ctx.WriteString("[")
		ctx.showExpr(expr.Slice)
		ctx.WriteString("]")
	case *Slice:
		ctx.showExpr(expr.Lower)
		ctx.WriteString(":")
		ctx.showExpr(expr.Upper)
		if expr.Step != nil {
			ctx.WriteString(":")
			ctx.showExpr(expr.Step)
		}
	case *Starred:
		ctx.WriteString("*")
		ctx.showExpr(expr.Value)
	case *List:
		ctx.WriteString("[")
		ctx.showList(expr.Elts, ", ")
		ctx.WriteString("]")
	case *Tuple:
		ctx.WriteString("(")
		ctx.showList(expr.Elts, ", ")
		if len(expr.Elts) == 1 {
			ctx.WriteString(",")
		}
		ctx.WriteString(")")
	case *Set:
		ctx.WriteString("{")
		ctx.showList(expr.Elts, ", ")
		ctx.WriteString("}")
	case *Dict:
		ctx.WriteString("{")
		for i := range expr.Keys {
			if i > 0 {
				ctx.WriteString(", ")
			}
			if expr.Keys[i] == nil {
				ctx.WriteString("**")
			} else {
				ctx.showExpr(expr.Keys[i])
				ctx.WriteString(": ")
			}
			ctx.showExpr(expr.Values[i])
		}
		ctx.WriteString("}")
	case *IfExp:
		ctx.showExpr(expr.Body)
		ctx.WriteString(" if ")
		ctx.showExpr(expr.Test)
		ctx.WriteString(" else ")
		ctx.showExpr(expr.OrElse)
	case *Lambda:
		ctx.WriteString("lambda: ")
		ctx.showExpr(expr.Body)
	case *ListComp:
		ctx.WriteString("[")
		ctx.showExpr(expr.Elt)
		ctx.WriteString(" for ...]")
	case *SetComp:
		ctx.WriteString("{")
		ctx.showExpr(expr.Elt)
		ctx.WriteString(" for ...}")
	case *DictComp:
		ctx.WriteString("{")
		ctx.showExpr(expr.Key)
		ctx.WriteString(": ")
		ctx.showExpr(expr.Value)
		ctx.WriteString(" for ...}")
	case *GeneratorExp:
		ctx.WriteString("(")
		ctx.showExpr(expr.Elt)
		ctx.WriteString(" for ...)")
	case *Yield:
		ctx.WriteString("yield ")
		ctx.showExpr(expr.Value)
	case *YieldFrom:
		ctx.WriteString("yield from ")
		ctx.showExpr(expr.Value)
	case *Await:
		ctx.WriteString("await ")
		ctx.showExpr(expr.Value)
	case *NamedExpr:
		ctx.showExpr(expr.Target)
		ctx.WriteString(" := ")
		ctx.showExpr(expr.Value)
	case *Unsupported:
		ctx.WriteString("<" + expr.What + ">")
	default:
		ctx.WriteString("<" + expr.Describe() + ">")
	}
}
