package types

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	"strings"
)

// Param is a parameter with a default value. A nil Default means the parameter is required
type Param struct {
	Name    string
	Default *TypeSet
}

// Signature is the declared parameter list of a callable
type Signature struct {
	// Positional are the required positional-or-keyword parameters
	Positional []string
	// Defaults are the positional-or-keyword parameters declaring a default
	Defaults []Param
	Vararg   string
	KwOnly   []Param
	Kwarg    string
}

// Names returns every parameter name, in declaration order
func (sig *Signature) Names() []string {
	names := make([]string, 0, len(sig.Positional)+len(sig.Defaults)+len(sig.KwOnly)+2)
	names = append(names, sig.Positional...)
	for _, p := range sig.Defaults {
		names = append(names, p.Name)
	}
	if sig.Vararg != "" {
		names = append(names, sig.Vararg)
	}
	for _, p := range sig.KwOnly {
		names = append(names, p.Name)
	}
	if sig.Kwarg != "" {
		names = append(names, sig.Kwarg)
	}
	return names
}

// Callable is a Type that can appear as the Func of a BoundMethod
type Callable interface {
	Type
	Signature() *Signature
	callableName() string
}

// Function is a user-defined function or lambda. It is created once per definition node.
//
// Its Environment is built lazily on the first call, and its parameters accumulate
// the TypeSets of every call site. The return TypeSet is memoized.
type Function struct {
	identity
	name string
	sig  *Signature
	// body is set for def statements, and lambdaBody for lambdas
	body       []ast.Stmt
	lambdaBody ast.Expr
	node       ast.Node

	// defEnv is the scope the function was defined in
	defEnv *Environment
	// class is the class whose body defined this function, if any
	class *Class

	env *Environment

	ret         *TypeSet
	retComputed bool
	sawReturn   bool
	isGenerator bool
	yields      *TypeSet
	generator   *Generator
}

func (f *Function) Name() string               { return "function" }
func (f *Function) String() string             { return "function " + f.name }
func (f *Function) Hash() uint64               { return f.hashWith(nil) }
func (f *Function) hashWith(visiting) uint64   { return hashOf("function", f.id) }
func (f *Function) stringWith(visiting) string { return f.String() }
func (f *Function) Signature() *Signature      { return f.sig }
func (f *Function) callableName() string       { return f.name }
func (f *Function) FuncName() string           { return f.name }
func (f *Function) Node() ast.Node             { return f.node }

// ReturnTypes returns the memoized return TypeSet. It is empty until the function is first called
func (f *Function) ReturnTypes() *TypeSet { return f.ret }

// Environment returns the scope of the function body, building it if it was never called
func (f *Function) Environment() *Environment {
	env, err := f.scope()
	if err != nil {
		f.defEnv.log().Warn("could not build function scope", "function", f.name, "error", err)
	}
	return env
}

// Describe renders the function with the types inferred for its parameters and return value
func (f *Function) Describe() string {
	env := f.Environment()
	sb := &strings.Builder{}
	sb.WriteString(f.name)
	sb.WriteString("(")
	for i, name := range f.sig.Names() {
		if i > 0 {
			sb.WriteString(", ")
		}
		switch name {
		case f.sig.Vararg:
			sb.WriteString("*")
		case f.sig.Kwarg:
			sb.WriteString("**")
		}
		sb.WriteString(name)
		if env == nil {
			continue
		}
		if ts, err := env.ExclusiveLookup(name); err == nil {
			sb.WriteString(": ")
			sb.WriteString(ts.String())
		}
	}
	sb.WriteString(") -> ")
	sb.WriteString(f.ret.String())
	return sb.String()
}

// Builtin is a function implemented by the inference engine itself.
// Unlike Function, it computes its result anew on every call from that call's arguments
type Builtin struct {
	identity
	name string
	sig  *Signature
	impl builtinImpl
}

type builtinImpl func(c *builtinCall) (*TypeSet, error)

func newBuiltin(name string, sig *Signature, impl builtinImpl) *Builtin {
	return &Builtin{identity: newIdentity(), name: name, sig: sig, impl: impl}
}

func (b *Builtin) Name() string               { return "builtin" }
func (b *Builtin) String() string             { return "builtin " + b.name }
func (b *Builtin) Hash() uint64               { return b.hashWith(nil) }
func (b *Builtin) hashWith(visiting) uint64   { return hashOf("builtin", b.id) }
func (b *Builtin) stringWith(visiting) string { return b.String() }
func (b *Builtin) Signature() *Signature      { return b.sig }
func (b *Builtin) callableName() string       { return b.name }

// Class is a user-defined or builtin class. All its instantiations share one canonical Instance
type Class struct {
	identity
	name string
	base *Class
	// anyBase is set when the base class could not be inferred, which makes
	// missing attributes Any rather than an error
	anyBase bool
	attrs   *Environment
	node    ast.Node

	instance *Instance
}

func newClass(name string, base *Class, attrs *Environment) *Class {
	c := &Class{identity: newIdentity(), name: name, base: base, attrs: attrs}
	attrs.class = c
	return c
}

func (c *Class) Name() string               { return "class" }
func (c *Class) String() string             { return "class " + c.name }
func (c *Class) Hash() uint64               { return c.hashWith(nil) }
func (c *Class) hashWith(visiting) uint64   { return hashOf("class", c.id) }
func (c *Class) stringWith(visiting) string { return c.String() }
func (c *Class) ClassName() string          { return c.name }
func (c *Class) Base() *Class               { return c.base }

// Attributes returns the class-level attribute table: the scope of the class body
func (c *Class) Attributes() *Environment { return c.attrs }

// Instance returns the canonical Instance of c, creating it on first use
func (c *Class) Instance() *Instance {
	if c.instance == nil {
		c.instance = &Instance{class: c, attrs: newEnvironment(nil, attributeScope, c.attrs.State)}
	}
	return c.instance
}

// lookupAttr finds name in the class or its bases
func (c *Class) lookupAttr(name string) (*TypeSet, bool) {
	for k := c; k != nil; k = k.base {
		if ts, ok := k.attrs.lookupLocal(name); ok {
			return ts, true
		}
		if k.anyBase {
			return NewTypeSet(Any), true
		}
	}
	return nil, false
}

// IsSubclassOf reports whether other is c or one of its bases
func (c *Class) IsSubclassOf(other *Class) bool {
	for k := c; k != nil; k = k.base {
		if k == other {
			return true
		}
	}
	return false
}

// Instance stands for every object ever created by calling its Class.
// Instances are identified by their class, never by their (mutable) attributes
type Instance struct {
	class *Class
	attrs *Environment
}

func (i *Instance) Name() string               { return "instance" }
func (i *Instance) String() string             { return i.class.name }
func (i *Instance) Hash() uint64               { return i.hashWith(nil) }
func (i *Instance) hashWith(visiting) uint64   { return hashOf("instance", i.class.id) }
func (i *Instance) stringWith(visiting) string { return i.String() }
func (i *Instance) Class() *Class              { return i.class }

// Attributes returns the attribute table shared by every instance of the class
func (i *Instance) Attributes() *Environment { return i.attrs }

// BoundMethod is a Callable with its receiver, which is prepended to the arguments of a call
type BoundMethod struct {
	Self Type
	Func Callable
}

func (m *BoundMethod) Name() string { return "method" }
func (m *BoundMethod) String() string {
	return "method " + m.Self.String() + "." + m.Func.callableName()
}
func (m *BoundMethod) Hash() uint64 { return m.hashWith(nil) }
func (m *BoundMethod) hashWith(seen visiting) uint64 {
	return hashOf("method", m.Self.hashWith(seen), m.Func.hashWith(seen))
}
func (m *BoundMethod) stringWith(seen visiting) string {
	return "method " + m.Self.stringWith(seen) + "." + m.Func.callableName()
}

// Module is an imported module, whose attributes are its top-level bindings
type Module struct {
	identity
	name string
	env  *Environment
}

func newModule(name string, env *Environment) *Module {
	return &Module{identity: newIdentity(), name: name, env: env}
}

func (m *Module) Name() string               { return "module" }
func (m *Module) String() string             { return "module " + m.name }
func (m *Module) Hash() uint64               { return m.hashWith(nil) }
func (m *Module) hashWith(visiting) uint64   { return hashOf("module", m.id) }
func (m *Module) stringWith(visiting) string { return m.String() }
func (m *Module) ModuleName() string         { return m.name }
func (m *Module) Environment() *Environment  { return m.env }

// superProxy is what super() returns: attribute lookups start at the base of class
// and bind to self
type superProxy struct {
	class *Class
	self  Type
}

func (s *superProxy) Name() string   { return "super" }
func (s *superProxy) String() string { return "super " + s.class.name }
func (s *superProxy) Hash() uint64   { return s.hashWith(nil) }
func (s *superProxy) hashWith(seen visiting) uint64 {
	return hashOf("super", s.class.id, s.self.hashWith(seen))
}
func (s *superProxy) stringWith(visiting) string { return s.String() }
