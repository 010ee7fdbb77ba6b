package types

var (
	listMethods      = newAttributeTable()
	tupleMethods     = newAttributeTable()
	setMethods       = newAttributeTable()
	frozenSetMethods = newAttributeTable()
	rangeMethods     = newAttributeTable()
	dictMethods      = newAttributeTable()
	generatorMethods = newAttributeTable()
)

func (c *builtinCall) container() *Container {
	if container, ok := c.self().(*Container); ok {
		return container
	}
	return NewContainer(ListKind, NewTypeSet(Any))
}

func (c *builtinCall) mapping() *Mapping {
	if m, ok := c.self().(*Mapping); ok {
		return m
	}
	return NewMapping(NewTypeSet(Any), NewTypeSet(Any))
}

// containerGetItem returns the contents for an int-like key and a copy of the container for a slice
func containerGetItem(c *builtinCall) (*TypeSet, error) {
	self := c.container()
	return c.each("key", func(key Type) (*TypeSet, error) {
		switch {
		case isIntLike(key):
			return self.Contents, nil
		case key == SliceT:
			return NewTypeSet(NewContainer(self.kind, self.Contents)), nil
		}
		return nil, c.mismatch(key, "int", "slice")
	})
}

func containerSetItem(c *builtinCall) (*TypeSet, error) {
	self := c.container()
	_, err := c.each("key", func(key Type) (*TypeSet, error) {
		switch {
		case isIntLike(key):
			self.Contents.Update(c.arg("value"))
			return nil, nil
		case key == SliceT:
			elems, err := c.elements("value")
			if err != nil {
				return nil, err
			}
			self.Contents.Update(elems)
			return nil, nil
		}
		return nil, c.mismatch(key, "int", "slice")
	})
	if err != nil {
		return nil, err
	}
	return NewTypeSet(None), nil
}

// addItem merges the argument called name into the contents
func addItem(name string) builtinImpl {
	return func(c *builtinCall) (*TypeSet, error) {
		c.container().Contents.Update(c.arg(name))
		return NewTypeSet(None), nil
	}
}

// addElements merges the elements of every iterable in the *others parameter into the contents
func addElements(c *builtinCall) (*TypeSet, error) {
	self := c.container()
	for _, others := range c.varargs("others") {
		elems, err := c.env.iterate(others, c.at)
		if err != nil {
			return nil, err
		}
		self.Contents.Update(elems)
	}
	return NewTypeSet(None), nil
}

func insert(c *builtinCall) (*TypeSet, error) {
	_, err := c.each("index", func(index Type) (*TypeSet, error) {
		if !isIntLike(index) {
			return nil, c.mismatch(index, "int")
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	c.container().Contents.Update(c.arg("item"))
	return NewTypeSet(None), nil
}

func contents(c *builtinCall) (*TypeSet, error) {
	return c.container().Contents, nil
}

func copyContainer(c *builtinCall) (*TypeSet, error) {
	self := c.container()
	return NewTypeSet(NewContainer(self.kind, self.Contents)), nil
}

func iterContainer(c *builtinCall) (*TypeSet, error) {
	return NewTypeSet(&Generator{Yields: c.container().Contents}), nil
}

// concat is `+` between containers of the same kind
func concat(c *builtinCall) (*TypeSet, error) {
	self := c.container()
	return c.each("other", func(t Type) (*TypeSet, error) {
		other, ok := t.(*Container)
		if !ok || other.kind != self.kind {
			return nil, c.mismatch(t, self.kind.String())
		}
		if self.Elems != nil && other.Elems != nil {
			return NewTypeSet(NewTuple(append(append([]*TypeSet{}, self.Elems...), other.Elems...)...)), nil
		}
		merged := self.Contents.Copy()
		merged.Update(other.Contents)
		return NewTypeSet(NewContainer(self.kind, merged)), nil
	})
}

func repeatContainer(c *builtinCall) (*TypeSet, error) {
	self := c.container()
	return c.each("other", func(t Type) (*TypeSet, error) {
		if !isIntLike(t) {
			return nil, c.mismatch(t, "int")
		}
		return NewTypeSet(NewContainer(self.kind, self.Contents)), nil
	})
}

// inPlaceConcat is `+=` on a list, which accepts any iterable
func inPlaceConcat(c *builtinCall) (*TypeSet, error) {
	elems, err := c.elements("other")
	if err != nil {
		return nil, err
	}
	c.container().Contents.Update(elems)
	return NewTypeSet(c.self()), nil
}

// setAlgebra returns a new set of the receiver's kind holding the elements of the receiver and of others
func setAlgebra(c *builtinCall) (*TypeSet, error) {
	self := c.container()
	merged := self.Contents.Copy()
	for _, others := range c.varargs("others") {
		elems, err := c.env.iterate(others, c.at)
		if err != nil {
			return nil, err
		}
		merged.Update(elems)
	}
	return NewTypeSet(NewContainer(self.kind, merged)), nil
}

// setOperator is `| & - ^` between sets
func setOperator(c *builtinCall) (*TypeSet, error) {
	self := c.container()
	return c.each("other", func(t Type) (*TypeSet, error) {
		other, ok := t.(*Container)
		if !ok || (other.kind != SetKind && other.kind != FrozenSetKind) {
			return nil, c.mismatch(t, "set", "frozenset")
		}
		merged := self.Contents.Copy()
		merged.Update(other.Contents)
		return NewTypeSet(NewContainer(self.kind, merged)), nil
	})
}

// updateMapping merges into m the items of a mapping, or of an iterable of pairs
func (env *Environment) updateMapping(m *Mapping, from *TypeSet, c *builtinCall) error {
	if from.ContainsAny() {
		m.Keys.Add(Any)
		m.Values.Add(Any)
		return nil
	}
	for _, t := range from.Types() {
		if other, ok := t.(*Mapping); ok {
			m.Keys.Update(other.Keys)
			m.Values.Update(other.Values)
			continue
		}
		pairs, err := env.iterate(NewTypeSet(t), c.at)
		if err != nil {
			return err
		}
		if pairs.ContainsAny() {
			m.Keys.Add(Any)
			m.Values.Add(Any)
			continue
		}
		for _, pair := range pairs.Types() {
			tuple, ok := pair.(*Container)
			switch {
			case ok && len(tuple.Elems) == 2:
				m.Keys.Update(tuple.Elems[0])
				m.Values.Update(tuple.Elems[1])
			case ok:
				m.Keys.Update(tuple.Contents)
				m.Values.Update(tuple.Contents)
			default:
				return c.mismatch(pair, "tuple", "list")
			}
		}
	}
	return nil
}

func init() {
	sequence := func(m methodTable) methodTable {
		return m.
			def("__getitem__", params("self", "key"), containerGetItem).
			def("__iter__", params("self"), iterContainer).
			def("__contains__", params("self", "other"), returns(Bool)).
			def("__len__", params("self"), returns(Int)).
			def("index", anyArgs("self", "item"), returns(Int)).
			def("count", params("self", "item"), returns(Int))
	}

	sequence(newMethodTable("list", listMethods)).
		def("__setitem__", params("self", "key", "value"), containerSetItem).
		def("__delitem__", params("self", "key"), returnsNone).
		def("__add__", params("self", "other"), concat).
		def("__mul__", params("self", "other"), repeatContainer).
		def("__iadd__", params("self", "other"), inPlaceConcat).
		all(params("self", "other"), returns(Bool), "__lt__", "__le__", "__gt__", "__ge__").
		def("append", params("self", "item"), addItem("item")).
		def("extend", params("self").withVararg("others"), addElements).
		def("insert", params("self", "index", "item"), insert).
		def("pop", params("self").withDefault("index", Int), contents).
		all(params("self", "item"), returnsNone, "remove").
		def("clear", params("self"), returnsNone).
		def("copy", params("self"), copyContainer).
		def("sort", params("self").withKwOnly("key", None).withKwOnly("reverse", Bool), returnsNone).
		def("reverse", params("self"), returnsNone)

	sequence(newMethodTable("tuple", tupleMethods)).
		def("__add__", params("self", "other"), concat).
		def("__mul__", params("self", "other"), repeatContainer).
		def("__hash__", params("self"), returns(Int)).
		all(params("self", "other"), returns(Bool), "__lt__", "__le__", "__gt__", "__ge__")

	sequence(newMethodTable("range", rangeMethods)).
		attr("start", Int).
		attr("stop", Int).
		attr("step", Int)

	setLike := func(m methodTable) methodTable {
		return m.
			def("__iter__", params("self"), iterContainer).
			def("__contains__", params("self", "other"), returns(Bool)).
			def("__len__", params("self"), returns(Int)).
			all(params("self", "other"), setOperator, "__or__", "__and__", "__sub__", "__xor__").
			all(params("self").withVararg("others"), setAlgebra,
				"union", "intersection", "difference", "symmetric_difference").
			all(params("self", "other"), returns(Bool), "issubset", "issuperset", "isdisjoint").
			def("copy", params("self"), copyContainer)
	}
	setLike(newMethodTable("set", setMethods)).
		def("add", params("self", "item"), addItem("item")).
		def("update", params("self").withVararg("others"), addElements).
		all(params("self", "item"), returnsNone, "remove", "discard").
		def("pop", params("self"), contents).
		def("clear", params("self"), returnsNone)
	setLike(newMethodTable("frozenset", frozenSetMethods)).
		def("__hash__", params("self"), returns(Int))

	newMethodTable("dict", dictMethods).
		def("__getitem__", params("self", "key"), func(c *builtinCall) (*TypeSet, error) {
			return c.mapping().Values, nil
		}).
		def("__setitem__", params("self", "key", "value"), func(c *builtinCall) (*TypeSet, error) {
			m := c.mapping()
			m.Keys.Update(c.arg("key"))
			m.Values.Update(c.arg("value"))
			return NewTypeSet(None), nil
		}).
		def("__delitem__", params("self", "key"), returnsNone).
		def("__iter__", params("self"), func(c *builtinCall) (*TypeSet, error) {
			return NewTypeSet(&Generator{Yields: c.mapping().Keys}), nil
		}).
		def("__contains__", params("self", "other"), returns(Bool)).
		def("__len__", params("self"), returns(Int)).
		def("__or__", params("self", "other"), func(c *builtinCall) (*TypeSet, error) {
			self := c.mapping()
			merged := NewMapping(self.Keys, self.Values)
			if err := c.env.updateMapping(merged, c.arg("other"), c); err != nil {
				return nil, err
			}
			return NewTypeSet(merged), nil
		}).
		def("get", params("self", "key").withDefault("default", None), func(c *builtinCall) (*TypeSet, error) {
			out := c.mapping().Values.Copy()
			out.Update(c.arg("default"))
			return out, nil
		}).
		def("pop", params("self", "key").withVararg("default"), func(c *builtinCall) (*TypeSet, error) {
			out := c.mapping().Values.Copy()
			for _, def := range c.varargs("default") {
				out.Update(def)
			}
			return out, nil
		}).
		def("popitem", params("self"), func(c *builtinCall) (*TypeSet, error) {
			m := c.mapping()
			return NewTypeSet(NewTuple(m.Keys, m.Values)), nil
		}).
		def("setdefault", params("self", "key").withDefault("default", None), func(c *builtinCall) (*TypeSet, error) {
			m := c.mapping()
			m.Keys.Update(c.arg("key"))
			m.Values.Update(c.arg("default"))
			return m.Values, nil
		}).
		def("update", params("self").withVararg("others").withKwarg("kwargs"), func(c *builtinCall) (*TypeSet, error) {
			m := c.mapping()
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
			return NewTypeSet(None), nil
		}).
		def("keys", params("self"), func(c *builtinCall) (*TypeSet, error) {
			return NewTypeSet(NewContainer(ListKind, c.mapping().Keys)), nil
		}).
		def("values", params("self"), func(c *builtinCall) (*TypeSet, error) {
			return NewTypeSet(NewContainer(ListKind, c.mapping().Values)), nil
		}).
		def("items", params("self"), func(c *builtinCall) (*TypeSet, error) {
			m := c.mapping()
			return NewTypeSet(NewContainer(ListKind, NewTypeSet(NewTuple(m.Keys, m.Values)))), nil
		}).
		def("copy", params("self"), func(c *builtinCall) (*TypeSet, error) {
			m := c.mapping()
			return NewTypeSet(NewMapping(m.Keys, m.Values)), nil
		}).
		def("clear", params("self"), returnsNone)

	generatorNext := func(c *builtinCall) (*TypeSet, error) {
		if g, ok := c.self().(*Generator); ok {
			return g.Yields, nil
		}
		return NewTypeSet(Any), nil
	}
	newMethodTable("generator", generatorMethods).
		def("__iter__", params("self"), returnsSelf).
		def("__next__", params("self"), generatorNext).
		def("send", params("self", "value"), generatorNext).
		def("throw", anyArgs("self"), generatorNext).
		def("close", params("self"), returnsNone)
}
