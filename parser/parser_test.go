package parser_test

import (
	"go/token"
	"reflect"
	"testing"

	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	c "github.com/PiJoules/python-type-inference-sub000/frontend/construct"
	"github.com/PiJoules/python-type-inference-sub000/frontend/ilerr"
	"github.com/PiJoules/python-type-inference-sub000/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rangeType = reflect.TypeOf(ast.Range{})

// stripPositions zeroes every Range under v and turns empty slices into nil,
// so parsed trees compare equal to trees built with construct
func stripPositions(v reflect.Value) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if !v.IsNil() {
			stripPositions(v.Elem())
		}
	case reflect.Slice:
		if v.Len() == 0 {
			if v.CanSet() {
				v.Set(reflect.Zero(v.Type()))
			}
			return
		}
		for i := 0; i < v.Len(); i++ {
			stripPositions(v.Index(i))
		}
	case reflect.Struct:
		if v.Type() == rangeType {
			if v.CanSet() {
				v.Set(reflect.Zero(rangeType))
			}
			return
		}
		for i := 0; i < v.NumField(); i++ {
			stripPositions(v.Field(i))
		}
	}
}

func testParse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	mod, err := parser.ParseModule(token.NewFileSet(), "test.py", []byte(src))
	require.NoError(t, err)
	stripPositions(reflect.ValueOf(mod))
	return mod.Body
}

func TestNoPanics(t *testing.T) {
	files := map[string]string{
		"empty program":       ``,
		"only comments":       "# nothing\n# here\n",
		"no trailing newline": `x = 1`,
		"broken def":          "def f(:\n",
		"unclosed bracket":    "x = [1, 2\n",
		"stray indent":        "x = 1\n    y = 2\n",
	}
	for name, file := range files {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, _ = parser.ParseModule(token.NewFileSet(), "test.py", []byte(file))
			})
		})
	}
}

func TestExpressions(t *testing.T) {
	x, y, z := c.Name("x"), c.Name("y"), c.Name("z")
	tests := []struct {
		src  string
		want ast.Expr
	}{
		{`1`, c.Int(1)},
		{`0x1F`, &ast.Literal{Kind: ast.IntLit, Value: "0x1F"}},
		{`2.5`, c.Float(2.5)},
		{`3j`, c.Complex(3)},
		{`1.5j`, c.Complex(1.5)},
		{`"a"`, c.Str("a")},
		{`b"a"`, c.Bytes("a")},
		{`"a" "b"`, &ast.Literal{Kind: ast.StringLit, Value: `"a" "b"`}},
		{`f"{x} and {y}"`, c.FString(x, y)},
		{`"a" f"{x}"`, c.FString(x)},
		{`True`, c.True()},
		{`False`, c.False()},
		{`None`, c.None()},
		{`...`, c.Ellipsis()},
		{`x + y * z`, c.Bin(x, ast.Add, c.Bin(y, ast.Mult, z))},
		{`(x + y) // z`, c.Bin(c.Bin(x, ast.Add, y), ast.FloorDiv, z)},
		{`x @ y`, c.Bin(x, ast.MatMult, y)},
		{`-x`, c.Unary(ast.USub, x)},
		{`~x`, c.Unary(ast.Invert, x)},
		{`not x`, c.Unary(ast.Not, x)},
		{`x and y and z`, c.And(x, y, z)},
		{`x or y and z`, c.Or(x, c.And(y, z))},
		{`not x and y or z`, c.Or(c.And(c.Unary(ast.Not, x), y), z)},
		{`x < y`, c.Cmp(x, ast.Lt, y)},
		{`1 < x <= 2`, c.Chain(c.Int(1), []ast.CmpOp{ast.Lt, ast.LtE}, x, c.Int(2))},
		{`x not in y`, c.Cmp(x, ast.NotIn, y)},
		{`x is not None`, c.Cmp(x, ast.IsNot, c.None())},
		{`y if x else z`, c.IfExp(x, y, z)},
		{`f(1, *x, k=2, **y)`, c.CallKw(c.Name("f"), []ast.Expr{c.Int(1), c.Star(x)}, c.Kw("k", c.Int(2)), c.DoubleStar(y))},
		{`f()`, c.Call(c.Name("f"))},
		{`sum(a for a in x)`, c.Call(c.Name("sum"), c.GenExp(c.Name("a"), c.For(c.Name("a"), x)))},
		{`x.y.z`, c.Attr(c.Attr(x, "y"), "z")},
		{`x[0]`, c.Index(x, c.Int(0))},
		{`x[1:2]`, c.Index(x, c.Slice(c.Int(1), c.Int(2), nil))},
		{`x[::2]`, c.Index(x, c.Slice(nil, nil, c.Int(2)))},
		{`x[:y]`, c.Index(x, c.Slice(nil, y, nil))},
		{`x[1:, 0]`, c.Index(x, c.Tuple(c.Slice(c.Int(1), nil, nil), c.Int(0)))},
		{`[]`, c.List()},
		{`[1, *x]`, c.List(c.Int(1), c.Star(x))},
		{`()`, c.Tuple()},
		{`(1,)`, c.Tuple(c.Int(1))},
		{`{1, 2}`, c.Set(c.Int(1), c.Int(2))},
		{`{}`, c.Dict(nil, nil)},
		{`{"k": 1, **x}`, c.Dict([]ast.Expr{c.Str("k"), nil}, []ast.Expr{c.Int(1), x})},
		{`[a * 2 for a in x if a]`, c.ListComp(c.Bin(c.Name("a"), ast.Mult, c.Int(2)), c.For(c.Name("a"), x, c.Name("a")))},
		{`{a for a in x for b in a}`, c.SetComp(c.Name("a"), c.For(c.Name("a"), x), c.For(c.Name("b"), c.Name("a")))},
		{`{k: v for k, v in x}`, c.DictComp(c.Name("k"), c.Name("v"), c.For(c.Tuple(c.Name("k"), c.Name("v")), x))},
		{`lambda: 1`, c.Lambda(c.Params().Build(), c.Int(1))},
		{`lambda a, b=1, *c, d, **e: a`, c.Lambda(
			c.Params("a").Default("b", c.Int(1)).Vararg("c").KwOnly("d", nil).Kwarg("e").Build(),
			c.Name("a"),
		)},
		{`(y := 1)`, &ast.NamedExpr{Target: y, Value: c.Int(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			body := testParse(t, "__result = "+tt.src+"\n")
			require.Len(t, body, 1)
			assert.Equal(t, c.Let("__result", tt.want), body[0])
		})
	}
}

func TestStatements(t *testing.T) {
	a, b, x := c.Name("a"), c.Name("b"), c.Name("x")
	tests := []struct {
		name string
		src  string
		want []ast.Stmt
	}{
		{"assignment", "x = 1", []ast.Stmt{c.Let("x", c.Int(1))}},
		{"chained assignment", "a = b = 1", []ast.Stmt{&ast.Assign{Targets: []ast.Expr{a, b}, Value: c.Int(1)}}},
		{"unpacking", "a, *b = x", []ast.Stmt{c.Assign(c.Tuple(a, c.Star(b)), x)}},
		{"list unpacking", "[a, b] = x", []ast.Stmt{c.Assign(c.List(a, b), x)}},
		{"tuple value", "x = 1, 2", []ast.Stmt{c.Let("x", c.Tuple(c.Int(1), c.Int(2)))}},
		{"augmented", "x += 1", []ast.Stmt{c.AugAssign(x, ast.Add, c.Int(1))}},
		{"augmented power", "x **= 2", []ast.Stmt{c.AugAssign(x, ast.Pow, c.Int(2))}},
		{"annotated", "x: int = 1", []ast.Stmt{c.AnnAssign(x, c.Name("int"), c.Int(1))}},
		{"bare annotation", "x: int", []ast.Stmt{c.AnnAssign(x, c.Name("int"), nil)}},
		{"attribute target", "a.b = 1", []ast.Stmt{c.Assign(c.Attr(a, "b"), c.Int(1))}},
		{"expression", "f(x)", []ast.Stmt{c.Expr(c.Call(c.Name("f"), x))}},
		{"semicolons", "a; b", []ast.Stmt{c.Expr(a), c.Expr(b)}},
		{"comments", "x = [1,  # one\n  2]\n# done\n", []ast.Stmt{c.Let("x", c.List(c.Int(1), c.Int(2)))}},
		{"delete", "del a, b[0]", []ast.Stmt{c.Del(a, c.Index(b, c.Int(0)))}},
		{"pass break continue", "while x:\n    pass\n    break\n    continue\n",
			[]ast.Stmt{c.While(x, c.Pass(), c.Break(), c.Continue())}},
		{"while else", "while x:\n    pass\nelse:\n    a = 1\n",
			[]ast.Stmt{&ast.While{Test: x, Body: []ast.Stmt{c.Pass()}, OrElse: []ast.Stmt{c.Let("a", c.Int(1))}}}},
		{"for", "for a, b in x:\n    pass\n", []ast.Stmt{c.ForLoop(c.Tuple(a, b), x, c.Pass())}},
		{"for else", "for a in x:\n    pass\nelse:\n    pass\n",
			[]ast.Stmt{&ast.For{Target: a, Iter: x, Body: []ast.Stmt{c.Pass()}, OrElse: []ast.Stmt{c.Pass()}}}},
		{"elif chain", "if a:\n    pass\nelif b:\n    x = 1\nelse:\n    x = 2\n", []ast.Stmt{
			c.If(a, []ast.Stmt{c.Pass()}, c.If(b, []ast.Stmt{c.Let("x", c.Int(1))}, c.Let("x", c.Int(2)))),
		}},
		{"inline if", "if a: pass", []ast.Stmt{c.If(a, []ast.Stmt{c.Pass()})}},
		{"raise", "raise ValueError(x)", []ast.Stmt{c.Raise(c.Call(c.Name("ValueError"), x))}},
		{"raise from", "raise a from b", []ast.Stmt{&ast.Raise{Exc: a, Cause: b}}},
		{"bare raise", "raise", []ast.Stmt{&ast.Raise{}}},
		{"assert", `assert x, "msg"`, []ast.Stmt{&ast.Assert{Test: x, Msg: c.Str("msg")}}},
		{"try", "try:\n    pass\nexcept (a, b) as e:\n    pass\nexcept x:\n    pass\nexcept:\n    pass\nelse:\n    pass\nfinally:\n    pass\n",
			[]ast.Stmt{c.Try(
				[]ast.Stmt{c.Pass()},
				[]ast.ExceptHandler{
					c.Except(c.Tuple(a, b), "e", c.Pass()),
					c.Except(x, "", c.Pass()),
					c.Except(nil, "", c.Pass()),
				},
				[]ast.Stmt{c.Pass()},
				[]ast.Stmt{c.Pass()},
			)}},
		{"with", "with open(x) as f:\n    pass\n", []ast.Stmt{c.With(c.Call(c.Name("open"), x), c.Name("f"), c.Pass())}},
		{"with attribute target", "with a as x.y:\n    pass\n", []ast.Stmt{c.With(a, c.Attr(x, "y"), c.Pass())}},
		{"with several items", "with a, b as (y, z):\n    pass\n", []ast.Stmt{&ast.With{
			Items: []ast.WithItem{
				{ContextExpr: a},
				{ContextExpr: b, OptionalVars: c.Tuple(c.Name("y"), c.Name("z"))},
			},
			Body: []ast.Stmt{c.Pass()},
		}}},
		{"import", "import os.path as p, sys", []ast.Stmt{&ast.Import{Names: []ast.Alias{{Name: "os.path", AsName: "p"}, {Name: "sys"}}}}},
		{"from import", "from m import a, b", []ast.Stmt{c.ImportFrom("m", "a", "b")}},
		{"star import", "from m import *", []ast.Stmt{c.ImportFrom("m", "*")}},
		{"relative import", "from ..pkg import a as b", []ast.Stmt{&ast.ImportFrom{
			Module: "pkg", Level: 2, Names: []ast.Alias{{Name: "a", AsName: "b"}},
		}}},
		{"relative import of a package", "from . import a", []ast.Stmt{&ast.ImportFrom{Level: 1, Names: []ast.Alias{{Name: "a"}}}}},
		{"future import", "from __future__ import annotations", []ast.Stmt{c.Pass()}},
		{"def", "def f(a, b=1):\n    return a\n", []ast.Stmt{
			c.Def("f", c.Params("a").Default("b", c.Int(1)).Build(), c.Return(a)),
		}},
		{"def returning a tuple", "def f():\n    return 1, 2\n", []ast.Stmt{
			c.Def("f", nil, c.Return(c.Tuple(c.Int(1), c.Int(2)))),
		}},
		{"def with every parameter kind", "@dec\ndef f(a, /, b: int, *, c=1, **d) -> int:\n    global x\n    return a\n", []ast.Stmt{
			&ast.FunctionDef{
				Name: "f",
				Args: &ast.Arguments{
					PosOnly:    []ast.Arg{{Name: "a"}},
					Args:       []ast.Arg{{Name: "b", Annotation: c.Name("int")}},
					KwOnly:     []ast.Arg{{Name: "c"}},
					KwDefaults: []ast.Expr{c.Int(1)},
					Kwarg:      &ast.Arg{Name: "d"},
				},
				Body:       []ast.Stmt{c.Global("x"), c.Return(a)},
				Decorators: []ast.Expr{c.Name("dec")},
				Returns:    c.Name("int"),
			},
		}},
		{"generator", "def g():\n    yield 1\n    yield from x\n", []ast.Stmt{
			c.Def("g", nil, c.Expr(c.Yield(c.Int(1))), c.Expr(c.YieldFrom(x))),
		}},
		{"async def", "async def f():\n    await x\n", []ast.Stmt{
			&ast.FunctionDef{Name: "f", Args: &ast.Arguments{}, Body: []ast.Stmt{c.Expr(&ast.Await{Value: x})}, IsAsync: true},
		}},
		{"nonlocal", "def f():\n    nonlocal a, b\n", []ast.Stmt{c.Def("f", nil, c.Nonlocal("a", "b"))}},
		{"class", "class A(B, metaclass=M):\n    x = 1\n", []ast.Stmt{&ast.ClassDef{
			Name:     "A",
			Bases:    []ast.Expr{c.Name("B")},
			Keywords: []ast.Keyword{c.Kw("metaclass", c.Name("M"))},
			Body:     []ast.Stmt{c.Let("x", c.Int(1))},
		}}},
		{"class without bases", "class A:\n    pass\n", []ast.Stmt{c.Class("A", nil, c.Pass())}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testParse(t, tt.src))
		})
	}
}

func TestUnsupportedConstructs(t *testing.T) {
	src := "match x:\n    case 1:\n        pass\n"
	body := testParse(t, src)
	require.Len(t, body, 1)
	unsupported, ok := body[0].(*ast.Unsupported)
	require.True(t, ok, "got %T", body[0])
	assert.Equal(t, "match statement", unsupported.What)
}

func TestPositions(t *testing.T) {
	fset := token.NewFileSet()
	src := "x = 1\n\ndef f(a):\n    return a + 1\n"
	mod, err := parser.ParseModule(fset, "pos.py", []byte(src))
	require.NoError(t, err)
	require.Len(t, mod.Body, 2)

	def := mod.Body[1].(*ast.FunctionDef)
	pos := fset.Position(def.Pos())
	assert.Equal(t, "pos.py", pos.Filename)
	assert.Equal(t, 3, pos.Line)
	assert.Equal(t, 1, pos.Column)

	ret := def.Body[0].(*ast.Return)
	valuePos := fset.Position(ret.Value.Pos())
	assert.Equal(t, 4, valuePos.Line)
	assert.Equal(t, 12, valuePos.Column)
	assert.Equal(t, "a + 1", src[fset.Position(ret.Value.Pos()).Offset:fset.Position(ret.Value.End()).Offset])
}

func TestSyntaxErrors(t *testing.T) {
	tests := map[string]struct {
		src  string
		line int
	}{
		"doubled operator":  {"x = 1\ny = = 2\n", 2},
		"unclosed call":     {"f(1,\n", 0},
		"missing def colon": {"x = 1\n\ndef f()\n    pass\n", 3},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parser.ParseModule(token.NewFileSet(), "bad.py", []byte(tt.src))
			require.Error(t, err)
			assert.Equal(t, ilerr.Parse, ilerr.CodeOf(err))

			ileErr, ok := ilerr.As(err)
			require.True(t, ok)
			parseErr, ok := ileErr.(ilerr.NewParse)
			require.True(t, ok, "got %T", ileErr)
			if tt.line > 0 {
				assert.Equal(t, tt.line, parseErr.Line)
			}
			assert.Positive(t, parseErr.Column)
			assert.NotEmpty(t, parseErr.ParserMessage)
		})
	}
}
