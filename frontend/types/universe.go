package types

// exceptionHierarchy lists the builtin exception classes, each after its base
var exceptionHierarchy = []struct{ name, base string }{
	{"BaseException", "object"},
	{"Exception", "BaseException"},
	{"ArithmeticError", "Exception"},
	{"ZeroDivisionError", "ArithmeticError"},
	{"AssertionError", "Exception"},
	{"AttributeError", "Exception"},
	{"ImportError", "Exception"},
	{"LookupError", "Exception"},
	{"IndexError", "LookupError"},
	{"KeyError", "LookupError"},
	{"NameError", "Exception"},
	{"OSError", "Exception"},
	{"RuntimeError", "Exception"},
	{"NotImplementedError", "RuntimeError"},
	{"StopIteration", "Exception"},
	{"TypeError", "Exception"},
	{"ValueError", "Exception"},
}

// aliases are builtin names bound to another builtin
var aliases = map[string]string{
	"IOError": "OSError",
}

// builtinConstructors maps the Name of a builtin kind to the builtin creating it, for type()
var builtinConstructors = map[string]string{
	"int": "int", "float": "float", "complex": "complex", "bool": "bool", "str": "str",
	"bytes": "bytes", "list": "list", "tuple": "tuple", "set": "set", "frozenset": "frozenset",
	"range": "range", "dict": "dict",
}

// universe are the builtin functions, shared by every run
var universe []*Builtin

func constructor(name string, sig *Signature, impl builtinImpl) {
	universe = append(universe, newBuiltin(name, sig, impl))
}

// populateUniverse binds the builtin names into a fresh module Environment
func populateUniverse(env *Environment) {
	bind := func(name string, ts *TypeSet) {
		env.Bind(name, ts)
		env.builtinNames.Insert(name)
	}
	for _, b := range universe {
		bind(b.name, NewTypeSet(b))
	}
	bind("True", NewTypeSet(Bool))
	bind("False", NewTypeSet(Bool))
	bind("None", NewTypeSet(None))
	bind("Ellipsis", NewTypeSet(Ellipsis))
	bind("NotImplemented", NewTypeSet(Any))

	bind("object", NewTypeSet(env.builtinClass("object")))
	for _, exc := range exceptionHierarchy {
		bind(exc.name, NewTypeSet(env.builtinClass(exc.name)))
	}
	for alias, name := range aliases {
		bind(alias, NewTypeSet(env.builtinClass(name)))
	}
}

// builtinClass returns object or one of the builtin exception classes,
// creating it the first time it is asked for in a run
func (s *State) builtinClass(name string) *Class {
	if c, ok := s.builtinClasses[name]; ok {
		return c
	}
	var base *Class
	for _, exc := range exceptionHierarchy {
		if exc.name == name {
			base = s.builtinClass(exc.base)
		}
	}
	attrs := newEnvironment(nil, attributeScope, s)
	c := newClass(name, base, attrs)
	methods := newMethodTable(name, attrs)
	if name == "object" {
		methods.def("__init__", params("self"), returnsNone)
	} else {
		methods.def("__init__", params("self").withVararg("args"), func(call *builtinCall) (*TypeSet, error) {
			if instance, ok := call.self().(*Instance); ok {
				instance.attrs.Bind("args", call.arg("args"))
			}
			return NewTypeSet(None), nil
		})
		methods.def("with_traceback", params("self", "tb"), returnsSelf)
	}
	s.builtinClasses[name] = c
	return c
}

func init() {
	constructor("print", params().withVararg("args").
		withKwOnly("sep", Str, None).withKwOnly("end", Str, None).
		withKwOnly("file", None).withKwOnly("flush", Bool), returnsNone)
	constructor("len", params("obj"), returns(Int))
	constructor("range", params().withVararg("args"), func(c *builtinCall) (*TypeSet, error) {
		for _, arg := range c.varargs("args") {
			_, err := mapTypes(arg, func(t Type) (*TypeSet, error) {
				if !isIntLike(t) {
					return nil, c.mismatch(t, "int")
				}
				return nil, nil
			})
			if err != nil {
				return nil, err
			}
		}
		return NewTypeSet(NewContainer(RangeKind, NewTypeSet(Int))), nil
	})

	constructor("int", params().withDefault("x", Int).withDefault("base", Int), returns(Int))
	constructor("float", params().withDefault("x", Float), returns(Float))
	constructor("complex", params().withDefault("real", Int).withDefault("imag", Int), returns(Complex))
	constructor("str", params().withDefault("object", Str).withVararg("args"), returns(Str))
	constructor("bool", params().withDefault("x", Bool), returns(Bool))
	constructor("bytes", params().withVararg("args"), returns(Bytes))

	fromIterable := func(kind ContainerKind) builtinImpl {
		return func(c *builtinCall) (*TypeSet, error) {
			elems, err := c.elements("iterable")
			if err != nil {
				return nil, err
			}
			return NewTypeSet(NewContainer(kind, elems)), nil
		}
	}
	emptyTuple := NewTuple()
	for _, kind := range []ContainerKind{ListKind, TupleKind, SetKind, FrozenSetKind} {
		constructor(kind.String(), params().withDefault("iterable", emptyTuple), fromIterable(kind))
	}
	constructor("dict", params().withVararg("others").withKwarg("kwargs"), func(c *builtinCall) (*TypeSet, error) {
		m := NewMapping(nil, nil)
		for _, others := range c.varargs("others") {
			if err := c.env.updateMapping(m, others, c); err != nil {
				return nil, err
			}
		}
		for _, t := range c.arg("kwargs").Types() {
			if kwargs, ok := t.(*Mapping); ok && !kwargs.Values.IsEmpty() {
				m.Keys.Update(kwargs.Keys)
				m.Values.Update(kwargs.Values)
			}
		}
		return NewTypeSet(m), nil
	})

	constructor("abs", params("x"), func(c *builtinCall) (*TypeSet, error) {
		return c.each("x", func(t Type) (*TypeSet, error) {
			switch t {
			case Bool, Int:
				return NewTypeSet(Int), nil
			case Float, Complex:
				return NewTypeSet(Float), nil
			}
			if c.env.hasAttr(t, "__abs__") {
				return c.env.callMethod(t, "__abs__", c.at)
			}
			return nil, c.mismatch(t, "int", "float", "complex")
		})
	})
	extremum := func(c *builtinCall) (*TypeSet, error) {
		args := c.varargs("args")
		out := NewTypeSet()
		if len(args) == 1 {
			elems, err := c.env.iterate(args[0], c.at)
			if err != nil {
				return nil, err
			}
			out.Update(elems)
			out.Update(withoutNone(c.arg("default")))
		} else {
			for _, arg := range args {
				out.Update(arg)
			}
		}
		if key := withoutNone(c.arg("key")); !key.IsEmpty() {
			if _, err := c.env.call(key, positional(out), c.at); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	for _, name := range []string{"min", "max"} {
		constructor(name, params().withVararg("args").withKwOnly("key", None).withKwOnly("default", None), extremum)
	}
	constructor("sum", params("iterable").withDefault("start", Int), func(c *builtinCall) (*TypeSet, error) {
		elems, err := c.elements("iterable")
		if err != nil {
			return nil, err
		}
		if elems.IsEmpty() {
			return c.arg("start"), nil
		}
		// element + start, so the element kind decides
		return c.env.binaryMethod("__add__", elems, c.arg("start"), c.at)
	})
	constructor("sorted", params("iterable").withKwOnly("key", None).withKwOnly("reverse", Bool),
		func(c *builtinCall) (*TypeSet, error) {
			elems, err := c.elements("iterable")
			if err != nil {
				return nil, err
			}
			if key := withoutNone(c.arg("key")); !key.IsEmpty() {
				if _, err := c.env.call(key, positional(elems), c.at); err != nil {
					return nil, err
				}
			}
			return NewTypeSet(NewContainer(ListKind, elems)), nil
		})
	constructor("reversed", params("seq"), func(c *builtinCall) (*TypeSet, error) {
		elems, err := c.elements("seq")
		if err != nil {
			return nil, err
		}
		return NewTypeSet(NewGenerator(elems)), nil
	})
	constructor("enumerate", params("iterable").withDefault("start", Int), func(c *builtinCall) (*TypeSet, error) {
		elems, err := c.elements("iterable")
		if err != nil {
			return nil, err
		}
		return NewTypeSet(NewGenerator(NewTypeSet(NewTuple(NewTypeSet(Int), elems)))), nil
	})
	constructor("zip", params().withVararg("iterables").withKwOnly("strict", Bool), func(c *builtinCall) (*TypeSet, error) {
		var columns []*TypeSet
		for _, iterable := range c.varargs("iterables") {
			elems, err := c.env.iterate(iterable, c.at)
			if err != nil {
				return nil, err
			}
			columns = append(columns, elems)
		}
		return NewTypeSet(NewGenerator(NewTypeSet(NewTuple(columns...)))), nil
	})
	constructor("map", params("function").withVararg("iterables"), func(c *builtinCall) (*TypeSet, error) {
		var args []*TypeSet
		for _, iterable := range c.varargs("iterables") {
			elems, err := c.env.iterate(iterable, c.at)
			if err != nil {
				return nil, err
			}
			args = append(args, elems)
		}
		results, err := c.env.call(c.arg("function"), positional(args...), c.at)
		if err != nil {
			return nil, err
		}
		return NewTypeSet(NewGenerator(results)), nil
	})
	constructor("filter", params("function", "iterable"), func(c *builtinCall) (*TypeSet, error) {
		elems, err := c.elements("iterable")
		if err != nil {
			return nil, err
		}
		if function := withoutNone(c.arg("function")); !function.IsEmpty() {
			if _, err := c.env.call(function, positional(elems), c.at); err != nil {
				return nil, err
			}
		}
		return NewTypeSet(NewGenerator(elems)), nil
	})

	for _, name := range []string{"isinstance", "issubclass", "hasattr"} {
		constructor(name, params("obj", "classinfo"), returns(Bool))
	}
	constructor("callable", params("obj"), returns(Bool))
	constructor("getattr", params("obj", "name").withVararg("default"), returns(Any))
	constructor("setattr", params("obj", "name", "value"), returnsNone)
	for _, name := range []string{"repr", "ascii", "chr", "hex", "bin", "oct"} {
		constructor(name, params("obj"), returns(Str))
	}
	constructor("format", params("value").withDefault("format_spec", Str), returns(Str))
	for _, name := range []string{"hash", "id", "ord"} {
		constructor(name, params("obj"), returns(Int))
	}
	for _, name := range []string{"any", "all"} {
		constructor(name, params("iterable"), returns(Bool))
	}
	constructor("input", params().withDefault("prompt", Str), returns(Str))
	constructor("open", params("file").withDefault("mode", Str).withDefault("buffering", Int).
		withDefault("encoding", None).withDefault("errors", None).withDefault("newline", None), returns(File))
	constructor("iter", params("obj"), func(c *builtinCall) (*TypeSet, error) {
		return c.env.callMethodOn(c.arg("obj"), "__iter__", c.at)
	})
	constructor("next", params("iterator").withVararg("default"), func(c *builtinCall) (*TypeSet, error) {
		out, err := c.env.callMethodOn(c.arg("iterator"), "__next__", c.at)
		if err != nil {
			return nil, err
		}
		out = out.Copy()
		for _, def := range c.varargs("default") {
			out.Update(def)
		}
		return out, nil
	})
	constructor("round", params("number").withDefault("ndigits", None), func(c *builtinCall) (*TypeSet, error) {
		if withoutNone(c.arg("ndigits")).IsEmpty() {
			return NewTypeSet(Int), nil
		}
		return c.each("number", func(t Type) (*TypeSet, error) {
			if t == Bool {
				return NewTypeSet(Int), nil
			}
			return NewTypeSet(t), nil
		})
	})
	constructor("divmod", params("a", "b"), func(c *builtinCall) (*TypeSet, error) {
		q, err := c.env.binaryMethod("__floordiv__", c.arg("a"), c.arg("b"), c.at)
		if err != nil {
			return nil, err
		}
		return NewTypeSet(NewTuple(q, q)), nil
	})
	constructor("pow", params("base", "exp").withDefault("mod", None), func(c *builtinCall) (*TypeSet, error) {
		return c.env.binaryMethod("__pow__", c.arg("base"), c.arg("exp"), c.at)
	})
	constructor("type", params("obj"), func(c *builtinCall) (*TypeSet, error) {
		return c.each("obj", func(t Type) (*TypeSet, error) {
			if instance, ok := t.(*Instance); ok {
				return NewTypeSet(instance.class), nil
			}
			if name, ok := builtinConstructors[t.Name()]; ok {
				if ts, err := c.env.module().Lookup(name); err == nil {
					return ts, nil
				}
			}
			return NewTypeSet(Any), nil
		})
	})
	constructor("super", params(), func(c *builtinCall) (*TypeSet, error) {
		fn := c.env.function()
		if fn == nil || fn.class == nil || len(fn.sig.Positional) == 0 {
			return nil, unsupported(c.at, "super() outside of a method")
		}
		self, err := fn.env.ExclusiveLookup(fn.sig.Positional[0])
		if err != nil {
			return nil, err
		}
		return mapTypes(self, func(t Type) (*TypeSet, error) {
			return NewTypeSet(&superProxy{class: fn.class, self: t}), nil
		})
	})
}

// withoutNone returns the members of ts other than None
func withoutNone(ts *TypeSet) *TypeSet {
	out := NewTypeSet()
	for _, t := range ts.Types() {
		if t != None {
			out.Add(t)
		}
	}
	return out
}
