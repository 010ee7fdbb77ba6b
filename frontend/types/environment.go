package types

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	"github.com/PiJoules/python-type-inference-sub000/frontend/ilerr"
	"log/slog"
	"slices"
)

type scopeKind int

const (
	moduleScope scopeKind = iota
	functionScope
	classScope
	comprehensionScope
	// attributeScope is the attribute table of a Type, which has no parent
	attributeScope
)

// Environment is a lexical scope: bindings of names to TypeSets, plus a parent
// used for lookups of names not bound locally.
//
// Environments also serve as the attribute tables of Types.
type Environment struct {
	// parent is only used for lookups, and is nil for root and attribute Environments
	parent   *Environment
	bindings map[string]*TypeSet
	// order keeps names in binding order, for reproducible listings
	order []string
	kind  scopeKind

	// owner is the Function whose body this scope (or an enclosing comprehension) evaluates
	owner *Function
	// class is set for class body scopes
	class *Class

	// modName and isPackage describe the module of a module scope, for relative imports
	modName   string
	isPackage bool

	*State
}

func newEnvironment(parent *Environment, kind scopeKind, state *State) *Environment {
	return &Environment{
		parent:   parent,
		bindings: make(map[string]*TypeSet),
		kind:     kind,
		State:    state,
	}
}

func newAttributeTable() *Environment {
	return newEnvironment(nil, attributeScope, nil)
}

// CreateRootEnvironment returns a module Environment pre-populated
// with the builtin names, ready for ParseCode or Infer
func CreateRootEnvironment(opts ...Option) *Environment {
	s := newState(opts...)
	return s.newModuleEnvironment("__main__", false, s.fileName)
}

// newModuleEnvironment returns the scope of the module called name.
// Builtin modules have an empty path, and no __file__
func (s *State) newModuleEnvironment(name string, isPackage bool, path string) *Environment {
	env := newEnvironment(nil, moduleScope, s)
	env.modName = name
	env.isPackage = isPackage
	populateUniverse(env)
	env.Bind("__name__", NewTypeSet(Str))
	s.builtinNames.InsertSlice([]string{"__name__", "__file__"})
	if path != "" {
		env.Bind("__file__", NewTypeSet(Str))
	}
	return env
}

// Bind unions types into the binding of name, creating it with a copy of types if absent
// (so that the caller's TypeSet is never aliased). It reports whether the binding grew
func (env *Environment) Bind(name string, types *TypeSet) bool {
	if existing, ok := env.bindings[name]; ok {
		return existing.Update(types)
	}
	env.bindings[name] = types.Copy()
	env.order = append(env.order, name)
	return true
}

// bindLive makes name refer to exactly types, shared with whoever else holds it
func (env *Environment) bindLive(name string, types *TypeSet) {
	if _, ok := env.bindings[name]; !ok {
		env.order = append(env.order, name)
	}
	env.bindings[name] = types
}

func (env *Environment) unbind(name string) {
	if _, ok := env.bindings[name]; !ok {
		return
	}
	delete(env.bindings, name)
	env.order = slices.DeleteFunc(env.order, func(n string) bool { return n == name })
}

func (env *Environment) lookupLocal(name string) (*TypeSet, bool) {
	ts, ok := env.bindings[name]
	return ts, ok
}

// Lookup finds name in this scope or, failing that, in its parents
func (env *Environment) Lookup(name string) (*TypeSet, error) {
	for scope := env; scope != nil; scope = scope.parent {
		if ts, ok := scope.lookupLocal(name); ok {
			return ts, nil
		}
	}
	return nil, ilerr.New(ilerr.NewUndefinedVariable{Positioner: ast.Range{}, Name: name})
}

// ExclusiveLookup finds name in this scope only, never in its parents
func (env *Environment) ExclusiveLookup(name string) (*TypeSet, error) {
	if ts, ok := env.lookupLocal(name); ok {
		return ts, nil
	}
	return nil, ilerr.New(ilerr.NewUndefinedVariable{Positioner: ast.Range{}, Name: name})
}

// Names returns the names bound in this scope, in the order they were first bound
func (env *Environment) Names() []string {
	return slices.Clone(env.order)
}

// Parent returns the scope lookups fall back to, or nil
func (env *Environment) Parent() *Environment { return env.parent }

// module returns the module scope this Environment is nested in
func (env *Environment) module() *Environment {
	scope := env
	for scope.parent != nil && scope.kind != moduleScope {
		scope = scope.parent
	}
	return scope
}

// function returns the Function whose body is being evaluated in env, or nil at module level
func (env *Environment) function() *Function {
	for scope := env; scope != nil; scope = scope.parent {
		switch scope.kind {
		case functionScope, comprehensionScope:
			if scope.owner != nil {
				return scope.owner
			}
		default:
			return nil
		}
	}
	return nil
}

// definingScope is where functions defined in env capture their bindings from:
// class bodies are skipped, as Python methods do not see class-level names
func (env *Environment) definingScope() *Environment {
	scope := env
	for scope.kind == classScope && scope.parent != nil {
		scope = scope.parent
	}
	return scope
}

func (env *Environment) log() *slog.Logger {
	return env.logger
}
