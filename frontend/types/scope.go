package types

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	"github.com/PiJoules/python-type-inference-sub000/frontend/ilerr"
	"github.com/hashicorp/go-set/v3"
	"strings"
)

// declarations are the names a function body binds locally, plus the names
// it declares global or nonlocal
type declarations struct {
	locals    []string
	seen      *set.Set[string]
	globals   *set.Set[string]
	nonlocals *set.Set[string]
}

func (d *declarations) addLocal(name string) {
	if name != "" && d.seen.Insert(name) {
		d.locals = append(d.locals, name)
	}
}

func (d *declarations) addTarget(target ast.Expr) {
	switch t := target.(type) {
	case *ast.Name:
		d.addLocal(t.Id)
	case *ast.Tuple:
		for _, elt := range t.Elts {
			d.addTarget(elt)
		}
	case *ast.List:
		for _, elt := range t.Elts {
			d.addTarget(elt)
		}
	case *ast.Starred:
		d.addTarget(t.Value)
	}
}

// scanDeclarations finds the names bound by body without descending into nested scopes
func scanDeclarations(body []ast.Stmt) *declarations {
	d := &declarations{
		seen:      set.New[string](8),
		globals:   set.New[string](0),
		nonlocals: set.New[string](0),
	}
	d.scan(body)
	return d
}

func (d *declarations) scan(body []ast.Stmt) {
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ast.Assign:
			for _, target := range s.Targets {
				d.addTarget(target)
			}
		case *ast.AugAssign:
			d.addTarget(s.Target)
		case *ast.AnnAssign:
			d.addTarget(s.Target)
		case *ast.For:
			d.addTarget(s.Target)
			d.scan(s.Body)
			d.scan(s.OrElse)
		case *ast.While:
			d.scan(s.Body)
			d.scan(s.OrElse)
		case *ast.If:
			d.scan(s.Body)
			d.scan(s.OrElse)
		case *ast.With:
			for _, item := range s.Items {
				if item.OptionalVars != nil {
					d.addTarget(item.OptionalVars)
				}
			}
			d.scan(s.Body)
		case *ast.Try:
			d.scan(s.Body)
			for _, h := range s.Handlers {
				d.addLocal(h.Name)
				d.scan(h.Body)
			}
			d.scan(s.OrElse)
			d.scan(s.FinalBody)
		case *ast.FunctionDef:
			d.addLocal(s.Name)
		case *ast.ClassDef:
			d.addLocal(s.Name)
		case *ast.Import:
			for _, alias := range s.Names {
				d.addLocal(importedName(alias))
			}
		case *ast.ImportFrom:
			for _, alias := range s.Names {
				if alias.Name != "*" {
					d.addLocal(importedName(alias))
				}
			}
		case *ast.Delete:
			for _, target := range s.Targets {
				d.addTarget(target)
			}
		case *ast.Global:
			d.globals.InsertSlice(s.Names)
		case *ast.Nonlocal:
			d.nonlocals.InsertSlice(s.Names)
		}
	}
}

// importedName is the name an import alias binds: `import a.b` binds a
func importedName(alias ast.Alias) string {
	if alias.AsName != "" {
		return alias.AsName
	}
	first, _, _ := strings.Cut(alias.Name, ".")
	return first
}

// containsYield reports whether body is the body of a generator function
func containsYield(body []ast.Stmt) bool {
	found := false
	for _, stmt := range body {
		ast.Inspect(stmt, func(n ast.Node) bool {
			switch n.(type) {
			case *ast.Yield, *ast.YieldFrom:
				found = true
			case *ast.FunctionDef, *ast.ClassDef, *ast.Lambda:
				return false
			}
			return !found
		})
	}
	return found
}

// scope returns the Environment of the function body, creating it on first use:
// the bindings of the defining scope are copied, names bound in the body are
// replaced by fresh TypeSets, global and nonlocal names are made to refer to the
// live outer TypeSets, and every parameter gets a fresh TypeSet for the binder to fill.
func (f *Function) scope() (*Environment, error) {
	if f.env != nil {
		return f.env, nil
	}
	parent := f.defEnv
	env := newEnvironment(parent, functionScope, parent.State)
	env.owner = f

	for _, name := range parent.order {
		env.bindLive(name, parent.bindings[name].Copy())
	}

	decls := scanDeclarations(f.body)
	for _, name := range decls.locals {
		if decls.globals.Contains(name) || decls.nonlocals.Contains(name) {
			continue
		}
		env.unbind(name)
		env.bindLive(name, NewTypeSet())
	}

	for _, name := range decls.globals.Slice() {
		module := parent.module()
		ts, ok := module.lookupLocal(name)
		if !ok {
			ts = NewTypeSet()
			module.bindLive(name, ts)
		}
		env.bindLive(name, ts)
	}
	for _, name := range decls.nonlocals.Slice() {
		ts, ok := parent.enclosingFunctionBinding(name)
		if !ok {
			return nil, ilerr.New(ilerr.NewUndefinedVariable{Positioner: ast.RangeOf(f.node), Name: name})
		}
		env.bindLive(name, ts)
	}

	for _, name := range f.sig.Names() {
		env.unbind(name)
		env.bindLive(name, NewTypeSet())
	}
	f.env = env
	return env, nil
}

// enclosingFunctionBinding finds name in the nearest enclosing function scope, for nonlocal
func (env *Environment) enclosingFunctionBinding(name string) (*TypeSet, bool) {
	for scope := env; scope != nil; scope = scope.parent {
		if scope.kind != functionScope {
			continue
		}
		if ts, ok := scope.lookupLocal(name); ok {
			return ts, true
		}
	}
	return nil, false
}
