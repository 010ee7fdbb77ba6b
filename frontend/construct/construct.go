// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package construct

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	"strconv"
)

// Module: a file named name
func Module(name string, body ...ast.Stmt) *ast.Module {
	return &ast.Module{Name: name, Body: body}
}

// Literals

// Integer literal: `1`
func Int(v int) *ast.Literal {
	return &ast.Literal{Kind: ast.IntLit, Value: strconv.Itoa(v)}
}

// Float literal: `1.5`
func Float(v float64) *ast.Literal {
	return &ast.Literal{Kind: ast.FloatLit, Value: strconv.FormatFloat(v, 'g', -1, 64)}
}

// Imaginary literal: `2j`
func Complex(imag float64) *ast.Literal {
	return &ast.Literal{Kind: ast.ComplexLit, Value: strconv.FormatFloat(imag, 'g', -1, 64) + "j"}
}

// String literal: `"a"`
func Str(s string) *ast.Literal {
	return &ast.Literal{Kind: ast.StringLit, Value: strconv.Quote(s)}
}

// Bytes literal: `b"a"`
func Bytes(s string) *ast.Literal {
	return &ast.Literal{Kind: ast.BytesLit, Value: "b" + strconv.Quote(s)}
}

func True() *ast.Literal  { return &ast.Literal{Kind: ast.BoolLit, Value: "True"} }
func False() *ast.Literal { return &ast.Literal{Kind: ast.BoolLit, Value: "False"} }
func None() *ast.Literal  { return &ast.Literal{Kind: ast.NoneLit, Value: "None"} }

// Ellipsis: `...`
func Ellipsis() *ast.Literal { return &ast.Literal{Kind: ast.EllipsisLit, Value: "..."} }

// Formatted string: `f"{a}{b}"`
func FString(values ...ast.Expr) *ast.FormattedString {
	return &ast.FormattedString{Values: values}
}

// Expressions

// Variable
func Name(id string) *ast.Name { return &ast.Name{Id: id} }

// Attribute access: `v.attr`
func Attr(value ast.Expr, attr string) *ast.Attribute {
	return &ast.Attribute{Value: value, Attr: attr}
}

// Subscript: `v[slice]`
func Index(value, slice ast.Expr) *ast.Subscript {
	return &ast.Subscript{Value: value, Slice: slice}
}

// Slice inside a subscript: `lower:upper:step`, any of which may be nil
func Slice(lower, upper, step ast.Expr) *ast.Slice {
	return &ast.Slice{Lower: lower, Upper: upper, Step: step}
}

// Binary operator: `a + b`
func Bin(left ast.Expr, op ast.Operator, right ast.Expr) *ast.BinOp {
	return &ast.BinOp{Left: left, Op: op, Right: right}
}

// Unary operator: `-a`
func Unary(op ast.UnaryOperator, operand ast.Expr) *ast.UnaryOp {
	return &ast.UnaryOp{Op: op, Operand: operand}
}

// Boolean operators: `a and b and c`
func And(values ...ast.Expr) *ast.BoolOp { return &ast.BoolOp{Op: ast.And, Values: values} }
func Or(values ...ast.Expr) *ast.BoolOp  { return &ast.BoolOp{Op: ast.Or, Values: values} }

// Comparison: `a < b`
func Cmp(left ast.Expr, op ast.CmpOp, right ast.Expr) *ast.Compare {
	return &ast.Compare{Left: left, Ops: []ast.CmpOp{op}, Comparators: []ast.Expr{right}}
}

// Chained comparison: `a < b <= c`
func Chain(left ast.Expr, ops []ast.CmpOp, comparators ...ast.Expr) *ast.Compare {
	return &ast.Compare{Left: left, Ops: ops, Comparators: comparators}
}

// Application: `f(x, y)`
func Call(f ast.Expr, args ...ast.Expr) *ast.Call {
	return &ast.Call{Func: f, Args: args}
}

// Application with keywords: `f(x, a=y, **z)`
func CallKw(f ast.Expr, args []ast.Expr, keywords ...ast.Keyword) *ast.Call {
	return &ast.Call{Func: f, Args: args, Keywords: keywords}
}

// Keyword argument: `name=value`
func Kw(name string, value ast.Expr) ast.Keyword {
	return ast.Keyword{Arg: name, Value: value}
}

// Double-starred argument: `**value`
func DoubleStar(value ast.Expr) ast.Keyword {
	return ast.Keyword{Value: value}
}

// Starred argument or target: `*value`
func Star(value ast.Expr) *ast.Starred { return &ast.Starred{Value: value} }

// Displays

func List(elts ...ast.Expr) *ast.List   { return &ast.List{Elts: elts} }
func Tuple(elts ...ast.Expr) *ast.Tuple { return &ast.Tuple{Elts: elts} }
func Set(elts ...ast.Expr) *ast.Set     { return &ast.Set{Elts: elts} }

// Dictionary display: `{k: v}`. A nil key stands for `**values[i]`
func Dict(keys []ast.Expr, values []ast.Expr) *ast.Dict {
	return &ast.Dict{Keys: keys, Values: values}
}

// Conditional expression: `body if test else orElse`
func IfExp(test, body, orElse ast.Expr) *ast.IfExp {
	return &ast.IfExp{Test: test, Body: body, OrElse: orElse}
}

// Anonymous function: `lambda a, b: body`
func Lambda(args *ast.Arguments, body ast.Expr) *ast.Lambda {
	return &ast.Lambda{Args: args, Body: body}
}

// Comprehension clause: `for target in iter if ifs[0] if ifs[1]`
func For(target, iter ast.Expr, ifs ...ast.Expr) ast.Comprehension {
	return ast.Comprehension{Target: target, Iter: iter, Ifs: ifs}
}

// List comprehension: `[elt for ...]`
func ListComp(elt ast.Expr, generators ...ast.Comprehension) *ast.ListComp {
	return &ast.ListComp{Elt: elt, Generators: generators}
}

// Set comprehension: `{elt for ...}`
func SetComp(elt ast.Expr, generators ...ast.Comprehension) *ast.SetComp {
	return &ast.SetComp{Elt: elt, Generators: generators}
}

// Dictionary comprehension: `{key: value for ...}`
func DictComp(key, value ast.Expr, generators ...ast.Comprehension) *ast.DictComp {
	return &ast.DictComp{Key: key, Value: value, Generators: generators}
}

// Generator expression: `(elt for ...)`
func GenExp(elt ast.Expr, generators ...ast.Comprehension) *ast.GeneratorExp {
	return &ast.GeneratorExp{Elt: elt, Generators: generators}
}

// Yield: `yield value`, value may be nil
func Yield(value ast.Expr) *ast.Yield { return &ast.Yield{Value: value} }

func YieldFrom(value ast.Expr) *ast.YieldFrom { return &ast.YieldFrom{Value: value} }

// Parameters

// ParamsBuilder accumulates the parameter list of a def or lambda
type ParamsBuilder struct {
	args *ast.Arguments
}

// Params starts a parameter list with the required parameters names: `(a, b)`
func Params(names ...string) *ParamsBuilder {
	b := &ParamsBuilder{args: &ast.Arguments{}}
	for _, name := range names {
		b.args.Args = append(b.args.Args, ast.Arg{Name: name})
	}
	return b
}

// Default appends a parameter with a default value: `name=value`
func (b *ParamsBuilder) Default(name string, value ast.Expr) *ParamsBuilder {
	b.args.Args = append(b.args.Args, ast.Arg{Name: name})
	b.args.Defaults = append(b.args.Defaults, value)
	return b
}

// Vararg sets the starred parameter: `*name`
func (b *ParamsBuilder) Vararg(name string) *ParamsBuilder {
	b.args.Vararg = &ast.Arg{Name: name}
	return b
}

// KwOnly appends a keyword-only parameter, which is required when value is nil
func (b *ParamsBuilder) KwOnly(name string, value ast.Expr) *ParamsBuilder {
	b.args.KwOnly = append(b.args.KwOnly, ast.Arg{Name: name})
	b.args.KwDefaults = append(b.args.KwDefaults, value)
	return b
}

// Kwarg sets the double-starred parameter: `**name`
func (b *ParamsBuilder) Kwarg(name string) *ParamsBuilder {
	b.args.Kwarg = &ast.Arg{Name: name}
	return b
}

func (b *ParamsBuilder) Build() *ast.Arguments { return b.args }

// Statements

// Expression statement
func Expr(value ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{Value: value} }

// Assignment: `target = value`
func Assign(target, value ast.Expr) *ast.Assign {
	return &ast.Assign{Targets: []ast.Expr{target}, Value: value}
}

// Assignment of a name: `name = value`
func Let(name string, value ast.Expr) *ast.Assign {
	return Assign(Name(name), value)
}

// Augmented assignment: `target += value`
func AugAssign(target ast.Expr, op ast.Operator, value ast.Expr) *ast.AugAssign {
	return &ast.AugAssign{Target: target, Op: op, Value: value}
}

// Annotated assignment: `target: annotation = value`, value may be nil
func AnnAssign(target, annotation, value ast.Expr) *ast.AnnAssign {
	return &ast.AnnAssign{Target: target, Annotation: annotation, Value: value}
}

func Return(value ast.Expr) *ast.Return { return &ast.Return{Value: value} }

func Pass() *ast.Pass         { return &ast.Pass{} }
func Break() *ast.Break       { return &ast.Break{} }
func Continue() *ast.Continue { return &ast.Continue{} }

// Deletion: `del a, b`
func Del(targets ...ast.Expr) *ast.Delete { return &ast.Delete{Targets: targets} }

// Conditional: `if test: body else: orElse`
func If(test ast.Expr, body []ast.Stmt, orElse ...ast.Stmt) *ast.If {
	return &ast.If{Test: test, Body: body, OrElse: orElse}
}

// Loop: `while test: body`
func While(test ast.Expr, body ...ast.Stmt) *ast.While {
	return &ast.While{Test: test, Body: body}
}

// Loop: `for target in iter: body`
func ForLoop(target, iter ast.Expr, body ...ast.Stmt) *ast.For {
	return &ast.For{Target: target, Iter: iter, Body: body}
}

// Context manager: `with ctx as target: body`, target may be nil
func With(ctx, target ast.Expr, body ...ast.Stmt) *ast.With {
	return &ast.With{Items: []ast.WithItem{{ContextExpr: ctx, OptionalVars: target}}, Body: body}
}

// Exception raising: `raise exc`
func Raise(exc ast.Expr) *ast.Raise { return &ast.Raise{Exc: exc} }

// Exception handling: `try: body except ...`
func Try(body []ast.Stmt, handlers []ast.ExceptHandler, orElse []ast.Stmt, finalBody []ast.Stmt) *ast.Try {
	return &ast.Try{Body: body, Handlers: handlers, OrElse: orElse, FinalBody: finalBody}
}

// Exception handler: `except typ as name: body`, typ may be nil and name empty
func Except(typ ast.Expr, name string, body ...ast.Stmt) ast.ExceptHandler {
	return ast.ExceptHandler{Type: typ, Name: name, Body: body}
}

// Assertion: `assert test`
func Assert(test ast.Expr) *ast.Assert { return &ast.Assert{Test: test} }

// Function definition: `def name(args): body`
func Def(name string, args *ast.Arguments, body ...ast.Stmt) *ast.FunctionDef {
	if args == nil {
		args = &ast.Arguments{}
	}
	return &ast.FunctionDef{Name: name, Args: args, Body: body}
}

// Class definition: `class name(bases): body`
func Class(name string, bases []ast.Expr, body ...ast.Stmt) *ast.ClassDef {
	return &ast.ClassDef{Name: name, Bases: bases, Body: body}
}

// Import: `import a.b, c`
func Import(names ...string) *ast.Import {
	imp := &ast.Import{}
	for _, name := range names {
		imp.Names = append(imp.Names, ast.Alias{Name: name})
	}
	return imp
}

// Import with a rename: `import name as asName`
func ImportAs(name, asName string) *ast.Import {
	return &ast.Import{Names: []ast.Alias{{Name: name, AsName: asName}}}
}

// From-import: `from module import a, b`. Use "*" for a star import
func ImportFrom(module string, names ...string) *ast.ImportFrom {
	imp := &ast.ImportFrom{Module: module}
	for _, name := range names {
		imp.Names = append(imp.Names, ast.Alias{Name: name})
	}
	return imp
}

func Global(names ...string) *ast.Global     { return &ast.Global{Names: names} }
func Nonlocal(names ...string) *ast.Nonlocal { return &ast.Nonlocal{Names: names} }
