package types

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	c "github.com/PiJoules/python-type-inference-sub000/frontend/construct"
	"github.com/PiJoules/python-type-inference-sub000/frontend/ilerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func inferBody(t *testing.T, body ...ast.Stmt) *Environment {
	t.Helper()
	env := CreateRootEnvironment()
	require.NoError(t, env.Infer(c.Module("test", body...)))
	return env
}

func inferFails(t *testing.T, code ilerr.ErrCode, body ...ast.Stmt) ilerr.IleError {
	t.Helper()
	env := CreateRootEnvironment()
	err := env.Infer(c.Module("test", body...))
	require.Error(t, err)
	ileErr, ok := ilerr.As(err)
	require.True(t, ok, "not an IleError: %v", err)
	assert.Equal(t, code, ileErr.Code(), "error was: %v", err)
	return ileErr
}

func typeOf(t *testing.T, env *Environment, name string) string {
	t.Helper()
	ts, err := env.Lookup(name)
	require.NoError(t, err)
	return ts.String()
}

func function(t *testing.T, env *Environment, name string) *Function {
	t.Helper()
	ts, err := env.Lookup(name)
	require.NoError(t, err)
	single, ok := ts.Realize().Single()
	require.True(t, ok, "%s is %s", name, ts)
	f, ok := single.(*Function)
	require.True(t, ok, "%s is %s", name, ts)
	return f
}

func param(t *testing.T, f *Function, name string) string {
	t.Helper()
	ts, err := f.Environment().ExclusiveLookup(name)
	require.NoError(t, err)
	return ts.String()
}

// inferExpr infers `x = expr` and returns the types of x
func inferExpr(t *testing.T, expr ast.Expr, setup ...ast.Stmt) string {
	t.Helper()
	env := inferBody(t, append(setup, c.Let("x", expr))...)
	return typeOf(t, env, "x")
}
