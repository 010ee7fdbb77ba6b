package types

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
)

// builtinCall is a call to a Builtin, after binding
type builtinCall struct {
	env  *Environment
	args bindings
	at   ast.Node
	name string
}

func (c *builtinCall) arg(name string) *TypeSet { return c.args.get(name) }

// self returns the receiver of a builtin method
func (c *builtinCall) self() Type {
	types := c.arg("self").Types()
	if len(types) == 0 {
		return Any
	}
	return types[0]
}

func (c *builtinCall) mismatch(found Type, expected ...string) error {
	return mismatch(c.at, c.name, found, expected...)
}

// each applies f to every member of the argument called name
func (c *builtinCall) each(name string, f func(Type) (*TypeSet, error)) (*TypeSet, error) {
	return mapTypes(c.arg(name), f)
}

// elements returns the types produced by iterating over the argument called name
func (c *builtinCall) elements(name string) (*TypeSet, error) {
	return c.env.iterate(c.arg(name), c.at)
}

// varargs returns the TypeSets packed into the *args parameter called name:
// one per position if the call site passed a known number of them,
// or a single TypeSet of every one of them otherwise
func (c *builtinCall) varargs(name string) []*TypeSet {
	var out []*TypeSet
	for _, t := range c.arg(name).Types() {
		tuple, ok := t.(*Container)
		if !ok {
			continue
		}
		if tuple.Elems != nil {
			out = append(out, tuple.Elems...)
		} else if !tuple.Contents.IsEmpty() {
			out = append(out, tuple.Contents)
		}
	}
	return out
}

func returns(types ...Type) builtinImpl {
	return func(*builtinCall) (*TypeSet, error) {
		return NewTypeSet(types...), nil
	}
}

func returnsSelf(c *builtinCall) (*TypeSet, error) {
	return NewTypeSet(c.self()), nil
}

// returnsNone is the result of methods that mutate their receiver
var returnsNone = returns(None)

func params(positional ...string) *Signature {
	return &Signature{Positional: positional}
}

func (sig *Signature) withDefault(name string, def ...Type) *Signature {
	sig.Defaults = append(sig.Defaults, Param{Name: name, Default: NewTypeSet(def...)})
	return sig
}

func (sig *Signature) withVararg(name string) *Signature {
	sig.Vararg = name
	return sig
}

// withKwOnly adds a keyword-only parameter, required unless a default is given
func (sig *Signature) withKwOnly(name string, def ...Type) *Signature {
	p := Param{Name: name}
	if len(def) > 0 {
		p.Default = NewTypeSet(def...)
	}
	sig.KwOnly = append(sig.KwOnly, p)
	return sig
}

func (sig *Signature) withKwarg(name string) *Signature {
	sig.Kwarg = name
	return sig
}

// anyArgs accepts any call
func anyArgs(positional ...string) *Signature {
	return params(positional...).withVararg("args").withKwarg("kwargs")
}

// methodTable builds the attribute table of a builtin kind
type methodTable struct {
	owner string
	env   *Environment
}

func newMethodTable(owner string, env *Environment) methodTable {
	return methodTable{owner: owner, env: env}
}

func (m methodTable) def(name string, sig *Signature, impl builtinImpl) methodTable {
	m.env.Bind(name, NewTypeSet(newBuiltin(m.owner+"."+name, sig, impl)))
	return m
}

// attr adds a plain data attribute
func (m methodTable) attr(name string, types ...Type) methodTable {
	m.env.Bind(name, NewTypeSet(types...))
	return m
}

// all defines every name with the same signature and impl
func (m methodTable) all(sig *Signature, impl builtinImpl, names ...string) methodTable {
	for _, name := range names {
		m.def(name, sig, impl)
	}
	return m
}
