package types

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	c "github.com/PiJoules/python-type-inference-sub000/frontend/construct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestLiteralAssignment(t *testing.T) {
	env := inferBody(t, c.Let("x", c.Int(2)))
	ts, err := env.Lookup("x")
	require.NoError(t, err)
	assert.True(t, ts.Realize().Equal(NewTypeSet(Int).Realize()))
}

func TestCallPropagatesArguments(t *testing.T) {
	env := inferBody(t,
		c.Def("func", c.Params("a").Build(), c.Return(c.Bin(c.Name("a"), ast.Add, c.Int(2)))),
		c.Let("x", c.Call(c.Name("func"), c.Int(5))),
	)
	assert.Equal(t, "int", typeOf(t, env, "x"))
	assert.Equal(t, "int", param(t, function(t, env, "func"), "a"))
}

func TestFibonacciRecursion(t *testing.T) {
	n := c.Name("n")
	fib := func(delta int) ast.Expr {
		return c.Call(c.Name("fib"), c.Bin(n, ast.Sub, c.Int(delta)))
	}
	env := inferBody(t,
		c.Def("fib", c.Params("n").Build(),
			c.Return(c.IfExp(c.Cmp(n, ast.Lt, c.Int(2)), n, c.Bin(fib(1), ast.Add, fib(2)))),
		),
		c.Let("x", c.Call(c.Name("fib"), c.Int(10))),
	)
	assert.Equal(t, "int", typeOf(t, env, "x"))
	assert.Equal(t, "int", function(t, env, "fib").ReturnTypes().String())
}

func TestDefaultsWidenParameters(t *testing.T) {
	env := inferBody(t,
		c.Def("func", c.Params().Default("a", c.Int(1)).Build(), c.Return(c.Name("a"))),
		c.Let("x", c.Call(c.Name("func"))),
		c.Let("y", c.Call(c.Name("func"), c.Str("s"))),
	)
	fn := function(t, env, "func")
	assert.Equal(t, "{int, str}", param(t, fn, "a"))
	assert.Equal(t, "{int, str}", fn.ReturnTypes().String())
	assert.Equal(t, "int", typeOf(t, env, "x"))
	assert.Equal(t, "{int, str}", typeOf(t, env, "y"))
}

func TestVarargPacksIntoTuple(t *testing.T) {
	env := inferBody(t,
		c.Def("func", c.Params().Vararg("args").Build(), c.Return(c.Name("args"))),
		c.Expr(c.Call(c.Name("func"), c.Int(1), c.Str("a"))),
	)
	args, err := function(t, env, "func").Environment().ExclusiveLookup("args")
	require.NoError(t, err)
	single, ok := args.Realize().Single()
	require.True(t, ok)
	tuple, ok := single.(*Container)
	require.True(t, ok)
	assert.Equal(t, TupleKind, tuple.Kind())
	assert.Equal(t, "{int, str}", tuple.Contents.String())
}

func TestInstancesAreShared(t *testing.T) {
	env := inferBody(t,
		c.Class("A", nil, c.Pass()),
		c.Let("x", c.Call(c.Name("A"))),
		c.Let("y", c.Call(c.Name("A"))),
		c.Assign(c.Attr(c.Name("x"), "attr"), c.Int(1)),
		c.Let("z", c.Attr(c.Name("y"), "attr")),
	)
	assert.Equal(t, "int", typeOf(t, env, "z"))
	x, _ := env.Lookup("x")
	y, _ := env.Lookup("y")
	xi, _ := x.Realize().Single()
	yi, _ := y.Realize().Single()
	assert.Same(t, xi, yi)
}

func TestRecursionTerminates(t *testing.T) {
	cases := []struct {
		name string
		body []ast.Stmt
		want string
	}{
		{
			name: "unconditional self call",
			body: []ast.Stmt{c.Return(c.Call(c.Name("f"), c.Name("n")))},
			want: "{}",
		},
		{
			name: "self call without return",
			body: []ast.Stmt{c.Expr(c.Call(c.Name("f"), c.Name("n")))},
			want: "None",
		},
		{
			name: "widening self call",
			body: []ast.Stmt{c.Return(c.Call(c.Name("f"), c.List(c.Name("n"))))},
			want: "{}",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := inferBody(t,
				c.Def("f", c.Params("n").Build(), tc.body...),
				c.Let("x", c.Call(c.Name("f"), c.Int(1))),
			)
			assert.Equal(t, tc.want, typeOf(t, env, "x"))
		})
	}
}

func TestMutualRecursion(t *testing.T) {
	env := inferBody(t,
		c.Def("even", c.Params("n").Build(),
			c.If(c.Cmp(c.Name("n"), ast.Eq, c.Int(0)), []ast.Stmt{c.Return(c.True())}),
			c.Return(c.Call(c.Name("odd"), c.Bin(c.Name("n"), ast.Sub, c.Int(1)))),
		),
		c.Def("odd", c.Params("n").Build(),
			c.If(c.Cmp(c.Name("n"), ast.Eq, c.Int(0)), []ast.Stmt{c.Return(c.False())}),
			c.Return(c.Call(c.Name("even"), c.Bin(c.Name("n"), ast.Sub, c.Int(1)))),
		),
		c.Let("x", c.Call(c.Name("even"), c.Int(4))),
	)
	assert.Equal(t, "bool", typeOf(t, env, "x"))
}

func TestExpressions(t *testing.T) {
	pairs := c.List(c.Tuple(c.Int(1), c.Str("a")))
	cases := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"int addition", c.Bin(c.Int(1), ast.Add, c.Int(2)), "int"},
		{"int addition is closed over int", c.Bin(c.Int(1), ast.Add, c.Float(2)), "int"},
		{"int plus anything is an int", c.Bin(c.Int(1), ast.Add, c.Str("a")), "int"},
		{"float addition widens", c.Bin(c.Float(1), ast.Add, c.Int(2)), "float"},
		{"numeric widening", c.Bin(c.Int(1), ast.Sub, c.Float(2)), "float"},
		{"true division", c.Bin(c.Int(1), ast.Div, c.Int(2)), "float"},
		{"bool arithmetic", c.Bin(c.True(), ast.Add, c.True()), "int"},
		{"bool bitwise", c.Bin(c.True(), ast.BitAnd, c.False()), "bool"},
		{"complex", c.Bin(c.Complex(1), ast.Mult, c.Int(2)), "complex"},
		{"string repeat", c.Bin(c.Str("a"), ast.Mult, c.Int(3)), "str"},
		{"int times string", c.Bin(c.Int(3), ast.Mult, c.Str("a")), "str"},
		{"list repeat", c.Bin(c.List(c.Int(1)), ast.Mult, c.Int(2)), "list[int]"},
		{"string format", c.Bin(c.Str("%d"), ast.Mod, c.Int(1)), "str"},
		{"comparison", c.Cmp(c.Int(1), ast.Lt, c.Float(2)), "bool"},
		{"comparison chain", c.Chain(c.Int(1), []ast.CmpOp{ast.Lt, ast.LtE}, c.Int(2), c.Int(3)), "bool"},
		{"membership", c.Cmp(c.Int(1), ast.In, c.List(c.Int(1))), "bool"},
		{"identity", c.Cmp(c.None(), ast.IsNot, c.Int(1)), "bool"},
		{"negation", c.Unary(ast.USub, c.True()), "int"},
		{"not", c.Unary(ast.Not, c.Str("")), "bool"},
		{"invert", c.Unary(ast.Invert, c.Int(1)), "int"},
		{"boolean or", c.Or(c.Int(0), c.Str("a")), "{int, str}"},
		{"conditional", c.IfExp(c.True(), c.Int(1), c.None()), "{None, int}"},
		{"f-string", c.FString(c.Int(1)), "str"},
		{"bytes", c.Bytes("b"), "bytes"},
		{"list", c.List(c.Int(1), c.Str("a")), "list[{int, str}]"},
		{"empty list", c.List(), "list[]"},
		{"tuple", c.Tuple(c.Int(1), c.Str("a")), "tuple[int, str]"},
		{"starred tuple", c.Tuple(c.Int(1), c.Star(c.List(c.Str("a")))), "tuple[{int, str}]"},
		{"set", c.Set(c.Int(1), c.Int(2)), "set[int]"},
		{"dict", c.Dict([]ast.Expr{c.Str("k")}, []ast.Expr{c.Int(1)}), "dict[str, int]"},
		{"dict unpacking", c.Dict([]ast.Expr{nil, c.Int(1)}, []ast.Expr{c.Dict([]ast.Expr{c.Str("k")}, []ast.Expr{c.Float(1)}), c.None()}), "dict[{int, str}, {None, float}]"},
		{"string index", c.Index(c.Str("abc"), c.Int(0)), "str"},
		{"list index", c.Index(c.List(c.Int(1)), c.Int(0)), "int"},
		{"list slice", c.Index(c.List(c.Int(1)), c.Slice(c.Int(0), nil, nil)), "list[int]"},
		{"tuple index", c.Index(c.Tuple(c.Int(1), c.Str("a")), c.Int(0)), "{int, str}"},
		{"dict index", c.Index(c.Dict([]ast.Expr{c.Str("k")}, []ast.Expr{c.Int(1)}), c.Str("k")), "int"},
		{"list comprehension", c.ListComp(c.Name("i"), c.For(c.Name("i"), c.Call(c.Name("range"), c.Int(3)))), "list[int]"},
		{"set comprehension", c.SetComp(c.Name("i"), c.For(c.Name("i"), c.Str("ab"))), "set[str]"},
		{"dict comprehension", c.DictComp(c.Name("k"), c.Name("v"), c.For(c.Tuple(c.Name("k"), c.Name("v")), pairs)), "dict[int, str]"},
		{"generator expression", c.GenExp(c.Bin(c.Name("i"), ast.Mult, c.Float(2)), c.For(c.Name("i"), c.List(c.Int(1)))), "generator[float]"},
		{"lambda call", c.Call(c.Lambda(c.Params("v").Build(), c.Name("v")), c.Str("s")), "str"},
		{"len", c.Call(c.Name("len"), c.List()), "int"},
		{"range", c.Call(c.Name("range"), c.Int(1), c.Int(5)), "range[int]"},
		{"sum", c.Call(c.Name("sum"), c.List(c.Float(1))), "float"},
		{"sum of ints", c.Call(c.Name("sum"), c.List(c.Int(1), c.Int(2))), "int"},
		{"sorted", c.Call(c.Name("sorted"), c.Set(c.Str("a"))), "list[str]"},
		{"enumerate", c.Call(c.Name("enumerate"), c.List(c.Str("a"))), "generator[tuple[int, str]]"},
		{"zip", c.Call(c.Name("zip"), c.List(c.Int(1)), c.Str("a")), "generator[tuple[int, str]]"},
		{"list of string", c.Call(c.Name("list"), c.Str("ab")), "list[str]"},
		{"dict keywords", c.CallKw(c.Name("dict"), nil, c.Kw("a", c.Int(1))), "dict[str, int]"},
		{"str method", c.Call(c.Attr(c.Str("a b"), "split")), "list[str]"},
		{"dict get", c.Call(c.Attr(c.Dict([]ast.Expr{c.Str("k")}, []ast.Expr{c.Int(1)}), "get"), c.Str("k")), "{None, int}"},
		{"exception instance", c.Call(c.Name("ValueError"), c.Str("bad")), "ValueError"},
		{"print", c.Call(c.Name("print"), c.Int(1), c.Str("a")), "None"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inferExpr(t, tc.expr))
		})
	}
}

func TestStatements(t *testing.T) {
	cases := []struct {
		name string
		body []ast.Stmt
		want map[string]string
	}{
		{
			name: "branches are all evaluated",
			body: []ast.Stmt{
				c.If(c.False(), []ast.Stmt{c.Let("x", c.Int(1))}, c.Let("x", c.Str("a"))),
			},
			want: map[string]string{"x": "{int, str}"},
		},
		{
			name: "tuple unpacking",
			body: []ast.Stmt{c.Assign(c.Tuple(c.Name("a"), c.Name("b")), c.Tuple(c.Int(1), c.Str("s")))},
			want: map[string]string{"a": "int", "b": "str"},
		},
		{
			name: "starred unpacking",
			body: []ast.Stmt{c.Assign(
				c.List(c.Name("a"), c.Star(c.Name("rest")), c.Name("z")),
				c.Tuple(c.Int(1), c.Str("s"), c.Float(1), c.None()),
			)},
			want: map[string]string{"a": "int", "rest": "list[{float, str}]", "z": "None"},
		},
		{
			name: "unpacking an iterable",
			body: []ast.Stmt{c.Assign(c.Tuple(c.Name("a"), c.Name("b")), c.List(c.Int(1)))},
			want: map[string]string{"a": "int", "b": "int"},
		},
		{
			name: "chained assignment",
			body: []ast.Stmt{&ast.Assign{Targets: []ast.Expr{c.Name("a"), c.Name("b")}, Value: c.Float(1)}},
			want: map[string]string{"a": "float", "b": "float"},
		},
		{
			name: "augmented assignment",
			body: []ast.Stmt{c.Let("x", c.Int(1)), c.AugAssign(c.Name("x"), ast.Div, c.Int(2))},
			want: map[string]string{"x": "{float, int}"},
		},
		{
			name: "in place list extension",
			body: []ast.Stmt{c.Let("l", c.List(c.Int(1))), c.AugAssign(c.Name("l"), ast.Add, c.List(c.Str("a")))},
			want: map[string]string{"l": "list[{int, str}]"},
		},
		{
			name: "subscript assignment",
			body: []ast.Stmt{
				c.Let("d", c.Dict(nil, nil)),
				c.Assign(c.Index(c.Name("d"), c.Str("k")), c.Int(1)),
			},
			want: map[string]string{"d": "dict[str, int]"},
		},
		{
			name: "tuples of distinct lists keep later growth",
			body: []ast.Stmt{
				c.Let("a", c.List()),
				c.Let("b", c.List()),
				c.Let("t", c.Tuple(c.Name("a"))),
				c.Let("t", c.Tuple(c.Name("b"))),
				c.Expr(c.Call(c.Attr(c.Name("b"), "append"), c.Int(1))),
				c.Let("x", c.Index(c.Index(c.Name("t"), c.Int(0)), c.Int(0))),
			},
			want: map[string]string{"x": "int"},
		},
		{
			name: "list insert",
			body: []ast.Stmt{
				c.Let("l", c.List(c.Int(1))),
				c.Expr(c.Call(c.Attr(c.Name("l"), "insert"), c.True(), c.Str("a"))),
			},
			want: map[string]string{"l": "list[{int, str}]"},
		},
		{
			name: "list append",
			body: []ast.Stmt{
				c.Let("l", c.List()),
				c.Expr(c.Call(c.Attr(c.Name("l"), "append"), c.Float(1))),
			},
			want: map[string]string{"l": "list[float]"},
		},
		{
			name: "annotated assignment",
			body: []ast.Stmt{c.AnnAssign(c.Name("x"), c.Name("int"), c.Int(1))},
			want: map[string]string{"x": "int"},
		},
		{
			name: "for loop",
			body: []ast.Stmt{c.ForLoop(c.Tuple(c.Name("i"), c.Name("s")), c.Call(c.Name("enumerate"), c.Str("ab")), c.Pass())},
			want: map[string]string{"i": "int", "s": "str"},
		},
		{
			name: "while loop",
			body: []ast.Stmt{c.Let("n", c.Int(0)), c.While(c.True(), c.AugAssign(c.Name("n"), ast.Sub, c.Float(1)), c.Break())},
			want: map[string]string{"n": "{float, int}"},
		},
		{
			name: "with statement",
			body: []ast.Stmt{c.With(c.Call(c.Name("open"), c.Str("f")), c.Name("fh"), c.Let("data", c.Call(c.Attr(c.Name("fh"), "read"))))},
			want: map[string]string{"fh": "file", "data": "str"},
		},
		{
			name: "exception handler",
			body: []ast.Stmt{c.Try(
				[]ast.Stmt{c.Raise(c.Call(c.Name("KeyError"), c.Str("k")))},
				[]ast.ExceptHandler{
					c.Except(c.Name("ValueError"), "e"),
					c.Except(c.Tuple(c.Name("KeyError"), c.Name("IndexError")), "e"),
				},
				nil,
				[]ast.Stmt{c.Let("done", c.True())},
			)},
			want: map[string]string{"e": "{IndexError, KeyError, ValueError}", "done": "bool"},
		},
		{
			name: "delete",
			body: []ast.Stmt{c.Let("x", c.List(c.Int(1))), c.Del(c.Index(c.Name("x"), c.Int(0)))},
			want: map[string]string{"x": "list[int]"},
		},
		{
			name: "generator function",
			body: []ast.Stmt{
				c.Def("gen", nil, c.Expr(c.Yield(c.Int(1))), c.Expr(c.YieldFrom(c.List(c.Str("a"))))),
				c.Let("g", c.Call(c.Name("gen"))),
				c.ForLoop(c.Name("v"), c.Name("g"), c.Pass()),
			},
			want: map[string]string{"g": "generator[{int, str}]", "v": "{int, str}"},
		},
		{
			name: "keyword arguments",
			body: []ast.Stmt{
				c.Def("f", c.Params("a").Default("b", c.None()).KwOnly("c", c.Int(0)).Kwarg("rest").Build(),
					c.Return(c.Name("rest"))),
				c.Let("r", c.CallKw(c.Name("f"), nil, c.Kw("a", c.Int(1)), c.Kw("c", c.Float(1)), c.Kw("x", c.Str("s")))),
			},
			want: map[string]string{"r": "dict[str, str]"},
		},
		{
			name: "star arguments",
			body: []ast.Stmt{
				c.Def("f", c.Params("a", "b").Build(), c.Return(c.Name("b"))),
				c.Let("r", c.Call(c.Name("f"), c.Star(c.List(c.Int(1))))),
			},
			want: map[string]string{"r": "int"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := inferBody(t, tc.body...)
			for name, want := range tc.want {
				assert.Equal(t, want, typeOf(t, env, name), name)
			}
		})
	}
}

func TestClasses(t *testing.T) {
	self := c.Name("self")
	env := inferBody(t,
		c.Class("Base", nil,
			c.Let("kind", c.Str("base")),
			c.Def("__init__", c.Params("self", "value").Build(),
				c.Assign(c.Attr(self, "value"), c.Name("value"))),
			c.Def("describe", c.Params("self").Build(), c.Return(c.Attr(self, "kind"))),
		),
		c.Class("Child", []ast.Expr{c.Name("Base")},
			c.Def("__init__", c.Params("self").Build(),
				c.Expr(c.Call(c.Attr(c.Call(c.Name("super")), "__init__"), c.Float(1)))),
			c.Def("__add__", c.Params("self", "other").Build(), c.Return(self)),
			c.Def("__len__", c.Params("self").Build(), c.Return(c.Int(0))),
		),
		c.Let("b", c.Call(c.Name("Base"), c.Int(1))),
		c.Let("k", c.Call(c.Name("Child"))),
		c.Let("desc", c.Call(c.Attr(c.Name("k"), "describe"))),
		c.Let("sum", c.Bin(c.Name("k"), ast.Add, c.Name("k"))),
		c.Let("size", c.Call(c.Name("len"), c.Name("k"))),
		c.Let("cls", c.Attr(c.Name("k"), "__class__")),
	)
	assert.Equal(t, "Base", typeOf(t, env, "b"))
	assert.Equal(t, "Child", typeOf(t, env, "k"))
	assert.Equal(t, "str", typeOf(t, env, "desc"))
	assert.Equal(t, "Child", typeOf(t, env, "sum"))
	assert.Equal(t, "int", typeOf(t, env, "size"))
	assert.Equal(t, "class Child", typeOf(t, env, "cls"))

	base, _ := env.Lookup("Base")
	class, _ := base.Realize().Single()
	// Base.__init__ is shared by both classes, so its assignments reach both instances
	value, err := class.(*Class).Instance().Attributes().ExclusiveLookup("value")
	require.NoError(t, err)
	assert.Equal(t, "{float, int}", value.String())

	child, _ := env.Lookup("Child")
	childClass, _ := child.Realize().Single()
	childValue, err := childClass.(*Class).Instance().Attributes().ExclusiveLookup("value")
	require.NoError(t, err)
	assert.Equal(t, "{float, int}", childValue.String())
	assert.True(t, childClass.(*Class).IsSubclassOf(class.(*Class)))
}

func TestUnknownBaseClass(t *testing.T) {
	env := inferBody(t,
		c.Let("Unknown", c.Call(c.Name("getattr"), c.Name("object"), c.Str("x"))),
		c.Class("A", []ast.Expr{c.Name("Unknown")}, c.Pass()),
		c.Let("x", c.Attr(c.Call(c.Name("A")), "anything")),
	)
	assert.Equal(t, "Any", typeOf(t, env, "x"))
}

func TestFunctionDescribe(t *testing.T) {
	env := inferBody(t,
		c.Def("f", c.Params("a").Vararg("rest").Build(), c.Return(c.Name("a"))),
		c.Expr(c.Call(c.Name("f"), c.Int(1), c.Str("s"))),
	)
	assert.Equal(t, "f(a: int, *rest: tuple[str]) -> int", function(t, env, "f").Describe())
}
