package types

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	"github.com/PiJoules/python-type-inference-sub000/frontend/ilerr"
)

// mapTypes applies f to every member of ts and unions the results.
// A TypeSet realizing to Any maps to Any without calling f
func mapTypes(ts *TypeSet, f func(Type) (*TypeSet, error)) (*TypeSet, error) {
	if ts.ContainsAny() {
		return NewTypeSet(Any), nil
	}
	out := NewTypeSet()
	for _, t := range ts.Types() {
		res, err := f(t)
		if err != nil {
			return nil, err
		}
		out.Update(res)
	}
	return out, nil
}

// positionErr attributes err to at, unless it was already attributed to a more precise place
func positionErr(err error, at ast.Node) error {
	if ileErr, ok := err.(ilerr.IleError); ok && at != nil {
		return ilerr.WithRange(ileErr, at)
	}
	return err
}

func mismatch(at ast.Node, operation string, found Type, expected ...string) error {
	return ilerr.New(ilerr.NewTypeMismatch{
		Positioner: ast.RangeOf(at),
		Operation:  operation,
		Expected:   expected,
		Found:      found.String(),
	})
}

func unsupported(at ast.Node, what string) error {
	return ilerr.New(ilerr.NewUnsupportedConstruct{Positioner: ast.RangeOf(at), What: what})
}

// call calls every member of callee with args and unions the results
func (env *Environment) call(callee *TypeSet, args callArgs, at ast.Node) (*TypeSet, error) {
	return mapTypes(callee, func(t Type) (*TypeSet, error) {
		return env.callType(t, args, at)
	})
}

func (env *Environment) callType(t Type, args callArgs, at ast.Node) (*TypeSet, error) {
	switch t := t.(type) {
	case *AnyType:
		return NewTypeSet(Any), nil
	case *Function:
		return env.callFunction(t, args, at)
	case *Builtin:
		bound, err := bind(t.sig, args, t.name, at)
		if err != nil {
			return nil, err
		}
		return t.impl(&builtinCall{env: env, args: bound, at: at, name: t.name})
	case *BoundMethod:
		return env.callType(t.Func, args.prepend(NewTypeSet(t.Self)), at)
	case *Class:
		return env.instantiate(t, args, at)
	case *Instance:
		method, ok := env.attr(t, "__call__")
		if !ok {
			return nil, mismatch(at, "__call__", t, "callable")
		}
		return env.call(method, args, at)
	}
	return nil, mismatch(at, "__call__", t, "callable")
}

// callFunction binds args into the scope of f and returns its memoized return TypeSet.
//
// The body is evaluated on the first call, and again whenever binding a later call
// widened a parameter. A call to a function already being evaluated only binds its
// arguments and contributes a RecursionSentinel.
func (env *Environment) callFunction(f *Function, args callArgs, at ast.Node) (*TypeSet, error) {
	scope, err := f.scope()
	if err != nil {
		return nil, err
	}
	bound, err := bind(f.sig, args, f.name, at)
	if err != nil {
		return nil, err
	}
	widened := false
	for _, p := range bound {
		widened = scope.Bind(p.name, p.types) || widened
	}
	if env.onStack(f.id) {
		env.log().Debug("reentrant call", "function", f.name, "args", args)
		return RecursionSentinel(), nil
	}
	if f.retComputed && !widened {
		return f.ret, nil
	}
	env.log().Debug("evaluating call", "function", f.name, "args", args, "widened", widened)

	pop := env.enter(f.id)
	defer pop()
	f.retComputed = true
	if f.lambdaBody != nil {
		ret, err := scope.evalExpr(f.lambdaBody)
		if err != nil {
			return nil, err
		}
		f.ret.Update(ret)
		return f.ret, nil
	}
	if err := scope.evalBody(f.body); err != nil {
		return nil, err
	}
	if !f.sawReturn && !f.isGenerator {
		f.ret.Add(None)
	}
	return f.ret, nil
}

// instantiate returns the canonical Instance of c, after evaluating __init__ with args
func (env *Environment) instantiate(c *Class, args callArgs, at ast.Node) (*TypeSet, error) {
	instance := c.Instance()
	if init, ok := env.attr(instance, "__init__"); ok {
		if _, err := env.call(init, args, at); err != nil {
			return nil, err
		}
	}
	return NewTypeSet(instance), nil
}

// bindTo exposes the callables in ts as methods of self
func bindTo(self Type, ts *TypeSet) *TypeSet {
	out := NewTypeSet()
	for _, t := range ts.Types() {
		if callable, ok := t.(Callable); ok {
			out.Add(&BoundMethod{Self: self, Func: callable})
			continue
		}
		out.Add(t)
	}
	return out
}

// methodHolder is a builtin kind whose attributes are a fixed method table
type methodHolder interface {
	Type
	Methods() *Environment
}

// attr looks name up on t. Functions found on a class are bound to the instance
// (or builtin value) they are looked up through
func (env *Environment) attr(t Type, name string) (*TypeSet, bool) {
	switch t := t.(type) {
	case *AnyType:
		return NewTypeSet(Any), true
	case *Instance:
		if ts, ok := t.attrs.lookupLocal(name); ok {
			return ts, true
		}
		if ts, ok := t.class.lookupAttr(name); ok {
			return bindTo(t, ts), true
		}
		if name == "__class__" {
			return NewTypeSet(t.class), true
		}
	case *Class:
		if ts, ok := t.lookupAttr(name); ok {
			return ts, true
		}
		if name == "__name__" {
			return NewTypeSet(Str), true
		}
	case *Module:
		return t.env.lookupLocal(name)
	case *superProxy:
		if t.class.base == nil {
			return nil, false
		}
		if ts, ok := t.class.base.lookupAttr(name); ok {
			return bindTo(t.self, ts), true
		}
	case *Function:
		if name == "__name__" || name == "__qualname__" {
			return NewTypeSet(Str), true
		}
	case methodHolder:
		if ts, ok := t.Methods().lookupLocal(name); ok {
			return bindTo(t, ts), true
		}
	}
	return nil, false
}

func (env *Environment) hasAttr(t Type, name string) bool {
	_, ok := env.attr(t, name)
	return ok
}

// getAttr is attribute access on every member of ts
func (env *Environment) getAttr(ts *TypeSet, name string, at ast.Node) (*TypeSet, error) {
	return mapTypes(ts, func(t Type) (*TypeSet, error) {
		if res, ok := env.attr(t, name); ok {
			return res, nil
		}
		return nil, ilerr.New(ilerr.NewMissingAttribute{Positioner: ast.RangeOf(at), Owner: t.String(), Name: name})
	})
}

// setAttr unions value into the attribute name of every member of ts
func (env *Environment) setAttr(ts *TypeSet, name string, value *TypeSet, at ast.Node) error {
	if ts.ContainsAny() {
		return nil
	}
	for _, t := range ts.Types() {
		switch t := t.(type) {
		case *Instance:
			t.attrs.Bind(name, value)
		case *Class:
			t.attrs.Bind(name, value)
		case *Module:
			t.env.Bind(name, value)
		default:
			return mismatch(at, "__setattr__", t, "instance", "class", "module")
		}
	}
	return nil
}

// callMethod calls the method name of recv with positional args.
// A receiver without the method is a TypeMismatch, as for an unsupported operand
func (env *Environment) callMethod(recv Type, name string, at ast.Node, args ...*TypeSet) (*TypeSet, error) {
	method, ok := env.attr(recv, name)
	if !ok {
		return nil, mismatch(at, name, recv)
	}
	return env.call(method, positional(args...), at)
}

// callMethodOn calls the method name on every member of recv
func (env *Environment) callMethodOn(recv *TypeSet, name string, at ast.Node, args ...*TypeSet) (*TypeSet, error) {
	return mapTypes(recv, func(t Type) (*TypeSet, error) {
		return env.callMethod(t, name, at, args...)
	})
}

// iterate returns the types produced by iterating over ts: `__iter__`, then `__next__`
func (env *Environment) iterate(ts *TypeSet, at ast.Node) (*TypeSet, error) {
	return mapTypes(ts, func(t Type) (*TypeSet, error) {
		if !env.hasAttr(t, "__iter__") {
			return nil, mismatch(at, "__iter__", t, "iterable")
		}
		iterator, err := env.callMethod(t, "__iter__", at)
		if err != nil {
			return nil, err
		}
		return env.callMethodOn(iterator, "__next__", at)
	})
}

// mappingItems returns the key and value types of the members of ts used as `**ts`
func (env *Environment) mappingItems(ts *TypeSet, at ast.Node) (keys, values *TypeSet, err error) {
	if ts.ContainsAny() {
		return NewTypeSet(Any), NewTypeSet(Any), nil
	}
	keys, values = NewTypeSet(), NewTypeSet()
	for _, t := range ts.Types() {
		m, ok := t.(*Mapping)
		if !ok {
			return nil, nil, mismatch(at, "keys", t, "dict")
		}
		keys.Update(m.Keys)
		values.Update(m.Values)
	}
	return keys, values, nil
}
