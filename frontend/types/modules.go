package types

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	c "github.com/PiJoules/python-type-inference-sub000/frontend/construct"
	"github.com/hashicorp/go-set/v3"
	"maps"
	"slices"
)

// builtinModules build the syntax of the modules importable without a Resolver.
// Their functions return literals of the type the real function returns, so they
// are inferred like any user module
var builtinModules = map[string]func() []ast.Stmt{
	"math":    mathModule,
	"sys":     sysModule,
	"os":      osModule,
	"os.path": osPathModule,
	"random":  randomModule,
	"string":  stringModule,
	"time":    timeModule,
}

var builtinPackages = set.From([]string{"os"})

// BuiltinModule returns a fresh syntax tree of the builtin module called name
func BuiltinModule(name string) (*ast.Module, bool) {
	build, ok := builtinModules[name]
	if !ok {
		return nil, false
	}
	return c.Module(name, build()...), true
}

// BuiltinModuleNames lists the modules BuiltinModule knows, sorted
func BuiltinModuleNames() []string {
	return slices.Sorted(maps.Keys(builtinModules))
}

// returning is `def name(params): return value`
func returning(name string, params *ast.Arguments, value ast.Expr) *ast.FunctionDef {
	return c.Def(name, params, c.Return(value))
}

func mathModule() []ast.Stmt {
	body := []ast.Stmt{
		c.Let("pi", c.Float(3.141592653589793)),
		c.Let("e", c.Float(2.718281828459045)),
		c.Let("tau", c.Float(6.283185307179586)),
		c.Let("inf", c.Call(c.Name("float"), c.Str("inf"))),
		c.Let("nan", c.Call(c.Name("float"), c.Str("nan"))),
	}
	for _, name := range []string{"sqrt", "fabs", "exp", "sin", "cos", "tan", "asin", "acos", "atan", "degrees", "radians"} {
		body = append(body, returning(name, c.Params("x").Build(), c.Float(1)))
	}
	for _, name := range []string{"floor", "ceil", "trunc"} {
		body = append(body, returning(name, c.Params("x").Build(), c.Int(1)))
	}
	return append(body,
		returning("pow", c.Params("x", "y").Build(), c.Float(1)),
		returning("atan2", c.Params("y", "x").Build(), c.Float(1)),
		returning("log", c.Params("x").Default("base", c.Name("e")).Build(), c.Float(1)),
		returning("log2", c.Params("x").Build(), c.Float(1)),
		returning("log10", c.Params("x").Build(), c.Float(1)),
		returning("hypot", c.Params().Vararg("coordinates").Build(), c.Float(1)),
		returning("isnan", c.Params("x").Build(), c.True()),
		returning("isinf", c.Params("x").Build(), c.True()),
		returning("isfinite", c.Params("x").Build(), c.True()),
		returning("isclose", c.Params("a", "b").KwOnly("rel_tol", c.Float(1e-09)).KwOnly("abs_tol", c.Float(0)).Build(), c.True()),
		returning("gcd", c.Params().Vararg("integers").Build(), c.Int(1)),
		returning("factorial", c.Params("n").Build(), c.Int(1)),
		returning("copysign", c.Params("x", "y").Build(), c.Float(1)),
	)
}

func sysModule() []ast.Stmt {
	return []ast.Stmt{
		c.Let("argv", c.List(c.Str(""))),
		c.Let("path", c.List(c.Str(""))),
		c.Let("maxsize", c.Int(2147483647)),
		c.Let("version", c.Str("")),
		c.Let("platform", c.Str("")),
		c.Let("byteorder", c.Str("little")),
		c.Let("stdin", c.Call(c.Name("open"), c.Str("/dev/stdin"))),
		c.Let("stdout", c.Call(c.Name("open"), c.Str("/dev/stdout"))),
		c.Let("stderr", c.Call(c.Name("open"), c.Str("/dev/stderr"))),
		c.Def("exit", c.Params().Default("status", c.None()).Build(), c.Pass()),
		returning("getrecursionlimit", nil, c.Int(1000)),
		c.Def("setrecursionlimit", c.Params("limit").Build(), c.Pass()),
	}
}

func osModule() []ast.Stmt {
	return []ast.Stmt{
		c.ImportAs("os.path", "path"),
		c.Let("sep", c.Str("/")),
		c.Let("linesep", c.Str("\n")),
		c.Let("name", c.Str("posix")),
		c.Let("environ", c.Dict([]ast.Expr{c.Str("")}, []ast.Expr{c.Str("")})),
		returning("getcwd", nil, c.Str("")),
		returning("getpid", nil, c.Int(1)),
		returning("listdir", c.Params().Default("path", c.Str(".")).Build(), c.List(c.Str(""))),
		returning("getenv", c.Params("key").Default("default", c.None()).Build(),
			c.Call(c.Attr(c.Name("environ"), "get"), c.Name("key"), c.Name("default"))),
		c.Def("mkdir", c.Params("path").Default("mode", c.Int(0o777)).Build(), c.Pass()),
		c.Def("makedirs", c.Params("name").Default("mode", c.Int(0o777)).Default("exist_ok", c.False()).Build(), c.Pass()),
		c.Def("remove", c.Params("path").Build(), c.Pass()),
		c.Def("rename", c.Params("src", "dst").Build(), c.Pass()),
	}
}

func osPathModule() []ast.Stmt {
	body := []ast.Stmt{
		c.Let("sep", c.Str("/")),
		returning("join", c.Params("a").Vararg("p").Build(), c.Str("")),
		returning("split", c.Params("p").Build(), c.Tuple(c.Str(""), c.Str(""))),
		returning("splitext", c.Params("p").Build(), c.Tuple(c.Str(""), c.Str(""))),
		returning("getsize", c.Params("filename").Build(), c.Int(1)),
	}
	for _, name := range []string{"basename", "dirname", "abspath", "normpath", "realpath", "expanduser"} {
		body = append(body, returning(name, c.Params("p").Build(), c.Str("")))
	}
	for _, name := range []string{"exists", "isfile", "isdir", "isabs"} {
		body = append(body, returning(name, c.Params("path").Build(), c.True()))
	}
	return body
}

func randomModule() []ast.Stmt {
	return []ast.Stmt{
		returning("random", nil, c.Float(0.5)),
		returning("uniform", c.Params("a", "b").Build(), c.Float(0.5)),
		returning("randint", c.Params("a", "b").Build(), c.Int(1)),
		returning("randrange", c.Params("start").Default("stop", c.None()).Default("step", c.Int(1)).Build(), c.Int(1)),
		returning("choice", c.Params("seq").Build(), c.Index(c.Name("seq"), c.Int(0))),
		returning("sample", c.Params("population", "k").Build(), c.List(c.Index(c.Name("population"), c.Int(0)))),
		c.Def("shuffle", c.Params("x").Build(), c.Pass()),
		c.Def("seed", c.Params().Default("a", c.None()).Build(), c.Pass()),
	}
}

func stringModule() []ast.Stmt {
	var body []ast.Stmt
	for _, name := range []string{
		"ascii_letters", "ascii_lowercase", "ascii_uppercase", "digits",
		"hexdigits", "octdigits", "punctuation", "printable", "whitespace",
	} {
		body = append(body, c.Let(name, c.Str("")))
	}
	return body
}

func timeModule() []ast.Stmt {
	return []ast.Stmt{
		returning("time", nil, c.Float(0)),
		returning("perf_counter", nil, c.Float(0)),
		returning("monotonic", nil, c.Float(0)),
		returning("strftime", c.Params("format").Default("t", c.None()).Build(), c.Str("")),
		c.Def("sleep", c.Params("secs").Build(), c.Pass()),
	}
}
