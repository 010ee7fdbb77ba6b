package types

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	c "github.com/PiJoules/python-type-inference-sub000/frontend/construct"
	"github.com/PiJoules/python-type-inference-sub000/frontend/ilerr"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

// moduleMap resolves modules from syntax trees, falling back to the builtin modules
type moduleMap struct {
	modules  map[string][]ast.Stmt
	packages map[string]bool
	resolved []string
}

func (m *moduleMap) Resolve(name string) (Resolution, error) {
	m.resolved = append(m.resolved, name)
	if body, ok := m.modules[name]; ok {
		return Resolution{Syntax: c.Module(name, body...), Path: name + ".py", IsPackage: m.packages[name]}, nil
	}
	return BuiltinResolver{}.Resolve(name)
}

func inferWith(t *testing.T, resolver Resolver, body ...ast.Stmt) *Environment {
	t.Helper()
	env := CreateRootEnvironment(WithResolver(resolver))
	require.NoError(t, env.Infer(c.Module("__main__", body...)))
	return env
}

func TestBuiltinModules(t *testing.T) {
	cases := []struct {
		name string
		body []ast.Stmt
		want map[string]string
	}{
		{
			name: "math",
			body: []ast.Stmt{
				c.Import("math"),
				c.Let("r", c.Call(c.Attr(c.Name("math"), "sqrt"), c.Int(2))),
				c.Let("p", c.Attr(c.Name("math"), "pi")),
				c.Let("f", c.Call(c.Attr(c.Name("math"), "floor"), c.Float(2))),
			},
			want: map[string]string{"math": "module math", "r": "float", "p": "float", "f": "int"},
		},
		{
			name: "from import",
			body: []ast.Stmt{c.ImportFrom("sys", "argv")},
			want: map[string]string{"argv": "list[str]"},
		},
		{
			name: "dotted import binds the top package",
			body: []ast.Stmt{
				c.Import("os.path"),
				c.Let("j", c.Call(c.Attr(c.Attr(c.Name("os"), "path"), "join"), c.Str("a"), c.Str("b"))),
			},
			want: map[string]string{"os": "module os", "j": "str"},
		},
		{
			name: "import as binds the leaf",
			body: []ast.Stmt{c.ImportAs("os.path", "osp")},
			want: map[string]string{"osp": "module os.path"},
		},
		{
			name: "getenv",
			body: []ast.Stmt{
				c.ImportFrom("os", "getenv"),
				c.Let("home", c.Call(c.Name("getenv"), c.Str("HOME"))),
			},
			want: map[string]string{"home": "{None, str}"},
		},
		{
			name: "random choice",
			body: []ast.Stmt{
				c.Import("random"),
				c.Let("v", c.Call(c.Attr(c.Name("random"), "choice"), c.List(c.Int(1), c.Str("a")))),
			},
			want: map[string]string{"v": "{int, str}"},
		},
		{
			name: "star import",
			body: []ast.Stmt{c.ImportFrom("string", "*")},
			want: map[string]string{"digits": "str"},
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

func TestBuiltinModuleNames(t *testing.T) {
	assert.Equal(t, []string{"math", "os", "os.path", "random", "string", "sys", "time"}, BuiltinModuleNames())
	mod, ok := BuiltinModule("time")
	require.True(t, ok)
	assert.Equal(t, "time", mod.Name)
	_, ok = BuiltinModule("socket")
	assert.False(t, ok)
}

func TestUserModules(t *testing.T) {
	t.Run("module is inferred once", func(t *testing.T) {
		r := &moduleMap{modules: map[string][]ast.Stmt{
			"helpers": {
				c.Def("double", c.Params("v").Build(), c.Return(c.Bin(c.Name("v"), ast.Mult, c.Int(2)))),
				c.Let("_private", c.Int(1)),
				c.Let("VERSION", c.Str("1")),
			},
		}}
		env := inferWith(t, r,
			c.Import("helpers"),
			c.ImportFrom("helpers", "double"),
			c.Let("x", c.Call(c.Name("double"), c.Float(1))),
			c.Let("y", c.Call(c.Attr(c.Name("helpers"), "double"), c.Int(1))),
		)
		assert.Equal(t, []string{"helpers"}, r.resolved)
		assert.Equal(t, "float", typeOf(t, env, "x"))
		assert.Equal(t, "{float, int}", typeOf(t, env, "y"))
	})
	t.Run("star import skips private names", func(t *testing.T) {
		r := &moduleMap{modules: map[string][]ast.Stmt{
			"helpers": {c.Let("_private", c.Int(1)), c.Let("VERSION", c.Str("1"))},
		}}
		env := inferWith(t, r, c.ImportFrom("helpers", "*"))
		assert.Equal(t, "str", typeOf(t, env, "VERSION"))
		_, err := env.Lookup("_private")
		assert.Error(t, err)
	})
	t.Run("circular imports see a partial module", func(t *testing.T) {
		r := &moduleMap{modules: map[string][]ast.Stmt{
			"a": {c.Let("A", c.Int(1)), c.Import("b"), c.Let("fromB", c.Attr(c.Name("b"), "B"))},
			"b": {c.Import("a"), c.Let("B", c.Str("b")), c.Let("fromA", c.Attr(c.Name("a"), "A"))},
		}}
		env := inferWith(t, r, c.Import("a"), c.Let("x", c.Attr(c.Attr(c.Name("a"), "b"), "fromA")))
		assert.Equal(t, "int", typeOf(t, env, "x"))
	})
	t.Run("relative import inside a package", func(t *testing.T) {
		r := &moduleMap{
			modules: map[string][]ast.Stmt{
				"pkg":       {&ast.ImportFrom{Module: "util", Level: 1, Names: []ast.Alias{{Name: "helper"}}}},
				"pkg.util":  {c.Def("helper", nil, c.Return(c.Bytes("b")))},
				"pkg.inner": {&ast.ImportFrom{Level: 1, Names: []ast.Alias{{Name: "util", AsName: "u"}}}},
			},
			packages: map[string]bool{"pkg": true},
		}
		env := inferWith(t, r,
			c.Import("pkg"),
			c.Let("h", c.Call(c.Attr(c.Name("pkg"), "helper"))),
			c.Import("pkg.inner"),
			c.Let("u", c.Attr(c.Attr(c.Name("pkg"), "inner"), "u")),
		)
		assert.Equal(t, "bytes", typeOf(t, env, "h"))
		assert.Equal(t, "module pkg.util", typeOf(t, env, "u"))
	})
	t.Run("module attributes can be assigned", func(t *testing.T) {
		r := &moduleMap{modules: map[string][]ast.Stmt{"conf": {c.Let("level", c.Int(1))}}}
		env := inferWith(t, r,
			c.Import("conf"),
			c.Assign(c.Attr(c.Name("conf"), "level"), c.Str("debug")),
			c.Let("x", c.Attr(c.Name("conf"), "level")),
		)
		assert.Equal(t, "{int, str}", typeOf(t, env, "x"))
	})
}

type failingResolver struct{}

func (failingResolver) Resolve(string) (Resolution, error) {
	return Resolution{}, errors.New("disk on fire")
}

func TestResolverFailuresAreClassified(t *testing.T) {
	env := CreateRootEnvironment(WithResolver(failingResolver{}))
	err := env.Infer(c.Module("__main__", c.Import("anything")))
	require.Error(t, err)
	ileErr, ok := ilerr.As(err)
	require.True(t, ok)
	assert.Equal(t, ilerr.None, ileErr.Code())
	assert.Contains(t, err.Error(), "disk on fire")
}
