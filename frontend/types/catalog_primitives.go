package types

// numericRank orders the numeric tower; bool < int < float < complex
func numericRank(t Type) int {
	switch t {
	case Bool:
		return 0
	case Int:
		return 1
	case Float:
		return 2
	case Complex:
		return 3
	}
	return -1
}

var numericTower = [...]Type{Int, Int, Float, Complex}

// arithmetic is the rule of `+ - * ** // %` over numbers: the wider operand wins,
// and bools count as ints
func arithmetic(allowComplex bool) builtinImpl {
	return func(c *builtinCall) (*TypeSet, error) {
		self := c.self()
		return c.each("other", func(other Type) (*TypeSet, error) {
			rank := max(numericRank(self), numericRank(other), 1)
			if numericRank(other) < 0 || (!allowComplex && rank == 3) {
				return nil, c.mismatch(other, "int", "float", "bool")
			}
			return NewTypeSet(numericTower[rank]), nil
		})
	}
}

// intAddition is closed over int whatever other is, so `1 + 2.0` stays an int
func intAddition(*builtinCall) (*TypeSet, error) {
	return NewTypeSet(Int), nil
}

// trueDivision never yields an int
func trueDivision(c *builtinCall) (*TypeSet, error) {
	self := c.self()
	return c.each("other", func(other Type) (*TypeSet, error) {
		if numericRank(other) < 0 {
			return nil, c.mismatch(other, "int", "float")
		}
		if max(numericRank(self), numericRank(other)) == 3 {
			return NewTypeSet(Complex), nil
		}
		return NewTypeSet(Float), nil
	})
}

// intMultiply is the type of other: an int scales a number or repeats a sequence
func intMultiply(c *builtinCall) (*TypeSet, error) {
	return c.each("other", func(other Type) (*TypeSet, error) {
		if rank := numericRank(other); rank >= 0 {
			return NewTypeSet(numericTower[max(rank, 1)]), nil
		}
		switch other := other.(type) {
		case *Container:
			if other.kind == ListKind || other.kind == TupleKind {
				return NewTypeSet(NewContainer(other.kind, other.Contents)), nil
			}
		case *Primitive:
			if other == Str || other == Bytes {
				return NewTypeSet(other), nil
			}
		}
		return nil, c.mismatch(other, "int", "float", "str", "bytes", "list", "tuple")
	})
}

// ordering is the rule of `< <= > >=` over real numbers
func ordering(c *builtinCall) (*TypeSet, error) {
	return c.each("other", func(other Type) (*TypeSet, error) {
		if rank := numericRank(other); rank < 0 || rank == 3 {
			return nil, c.mismatch(other, "int", "float", "bool")
		}
		return NewTypeSet(Bool), nil
	})
}

// bitwise is the rule of `& | ^ << >>`; bools stay bools under & | ^
func bitwise(boolClosed bool) builtinImpl {
	return func(c *builtinCall) (*TypeSet, error) {
		self := c.self()
		return c.each("other", func(other Type) (*TypeSet, error) {
			if !isIntLike(other) {
				return nil, c.mismatch(other, "int", "bool")
			}
			if boolClosed && self == Bool && other == Bool {
				return NewTypeSet(Bool), nil
			}
			return NewTypeSet(Int), nil
		})
	}
}

// negation is unary minus and plus
func negation(c *builtinCall) (*TypeSet, error) {
	return NewTypeSet(numericTower[max(numericRank(c.self()), 1)]), nil
}

// sameKind accepts an other of the receiver's kind, returning result
func sameKind(result Type) builtinImpl {
	return func(c *builtinCall) (*TypeSet, error) {
		self := c.self()
		return c.each("other", func(other Type) (*TypeSet, error) {
			if other != self {
				return nil, c.mismatch(other, self.String())
			}
			return NewTypeSet(result), nil
		})
	}
}

// repeat is sequence repetition by an int
func repeat(c *builtinCall) (*TypeSet, error) {
	self := c.self()
	return c.each("other", func(other Type) (*TypeSet, error) {
		if !isIntLike(other) {
			return nil, c.mismatch(other, "int")
		}
		return NewTypeSet(self), nil
	})
}

// indexing returns item for an int-like key and whole for a slice
func indexing(item, whole Type) builtinImpl {
	return func(c *builtinCall) (*TypeSet, error) {
		return c.each("key", func(key Type) (*TypeSet, error) {
			switch {
			case isIntLike(key):
				return NewTypeSet(item), nil
			case key == SliceT:
				return NewTypeSet(whole), nil
			}
			return nil, c.mismatch(key, "int", "slice")
		})
	}
}

func iterating(item Type) builtinImpl {
	return func(*builtinCall) (*TypeSet, error) {
		return NewTypeSet(NewGenerator(NewTypeSet(item))), nil
	}
}

func init() {
	number := func(p *Primitive, allowComplex bool, add builtinImpl) methodTable {
		m := newMethodTable(p.name, p.methods).
			def("__add__", params("self", "other"), add).
			all(params("self", "other"), arithmetic(true), "__sub__", "__pow__").
			all(params("self", "other"), arithmetic(allowComplex), "__floordiv__", "__mod__").
			def("__truediv__", params("self", "other"), trueDivision).
			all(params("self"), negation, "__neg__", "__pos__").
			def("__bool__", params("self"), returns(Bool)).
			def("__hash__", params("self"), returns(Int))
		if p != Complex {
			m.all(params("self", "other"), ordering, "__lt__", "__le__", "__gt__", "__ge__")
		}
		return m
	}

	for _, p := range []*Primitive{Int, Bool} {
		number(p, false, intAddition).
			def("__mul__", params("self", "other"), intMultiply).
			all(params("self", "other"), bitwise(true), "__and__", "__or__", "__xor__").
			all(params("self", "other"), bitwise(false), "__lshift__", "__rshift__").
			def("__invert__", params("self"), returns(Int)).
			def("__index__", params("self"), returns(Int)).
			def("bit_length", params("self"), returns(Int)).
			def("bit_count", params("self"), returns(Int)).
			def("conjugate", params("self"), returns(Int)).
			def("to_bytes", anyArgs("self"), returns(Bytes)).
			attr("real", Int).
			attr("imag", Int)
	}

	number(Float, false, arithmetic(true)).
		def("__mul__", params("self", "other"), arithmetic(true)).
		def("is_integer", params("self"), returns(Bool)).
		def("conjugate", params("self"), returns(Float)).
		def("hex", params("self"), returns(Str)).
		attr("real", Float).
		attr("imag", Float)

	number(Complex, true, arithmetic(true)).
		def("__mul__", params("self", "other"), arithmetic(true)).
		def("conjugate", params("self"), returns(Complex)).
		attr("real", Float).
		attr("imag", Float)

	strList := func(*builtinCall) (*TypeSet, error) {
		return NewTypeSet(NewContainer(ListKind, NewTypeSet(Str))), nil
	}
	strTriple := func(*builtinCall) (*TypeSet, error) {
		s := NewTypeSet(Str)
		return NewTypeSet(NewTuple(s, s, s)), nil
	}
	newMethodTable("str", Str.methods).
		def("__add__", params("self", "other"), sameKind(Str)).
		all(params("self", "other"), repeat, "__mul__", "__rmul__").
		def("__mod__", params("self", "other"), returns(Str)).
		def("__getitem__", params("self", "key"), indexing(Str, Str)).
		def("__iter__", params("self"), iterating(Str)).
		def("__contains__", params("self", "other"), sameKind(Bool)).
		def("__len__", params("self"), returns(Int)).
		def("__hash__", params("self"), returns(Int)).
		all(params("self", "other"), sameKind(Bool), "__lt__", "__le__", "__gt__", "__ge__").
		all(anyArgs("self"), returns(Str),
			"upper", "lower", "strip", "lstrip", "rstrip", "title", "capitalize", "casefold",
			"swapcase", "replace", "format", "format_map", "center", "ljust", "rjust", "zfill",
			"expandtabs", "join", "removeprefix", "removesuffix", "translate").
		all(anyArgs("self"), returns(Bool),
			"startswith", "endswith", "isdigit", "isalpha", "isalnum", "isspace", "isupper",
			"islower", "isnumeric", "isdecimal", "istitle", "isidentifier", "isprintable", "isascii").
		all(anyArgs("self"), returns(Int), "find", "rfind", "index", "rindex", "count").
		all(anyArgs("self"), strList, "split", "rsplit", "splitlines").
		all(params("self", "sep"), strTriple, "partition", "rpartition").
		def("encode", anyArgs("self"), returns(Bytes))

	newMethodTable("bytes", Bytes.methods).
		def("__add__", params("self", "other"), sameKind(Bytes)).
		all(params("self", "other"), repeat, "__mul__", "__rmul__").
		def("__mod__", params("self", "other"), returns(Bytes)).
		def("__getitem__", params("self", "key"), indexing(Int, Bytes)).
		def("__iter__", params("self"), iterating(Int)).
		def("__contains__", params("self", "other"), returns(Bool)).
		def("__len__", params("self"), returns(Int)).
		def("__hash__", params("self"), returns(Int)).
		all(params("self", "other"), sameKind(Bool), "__lt__", "__le__", "__gt__", "__ge__").
		def("decode", anyArgs("self"), returns(Str)).
		def("hex", anyArgs("self"), returns(Str)).
		all(anyArgs("self"), returns(Bytes),
			"upper", "lower", "strip", "lstrip", "rstrip", "replace", "join", "center", "ljust", "rjust").
		all(anyArgs("self"), returns(Bool), "startswith", "endswith", "isdigit", "isalpha", "isspace").
		all(anyArgs("self"), returns(Int), "find", "rfind", "index", "count").
		def("split", anyArgs("self"), func(*builtinCall) (*TypeSet, error) {
			return NewTypeSet(NewContainer(ListKind, NewTypeSet(Bytes))), nil
		})

	newMethodTable("file", File.methods).
		all(anyArgs("self"), returns(Str), "read", "readline").
		def("readlines", anyArgs("self"), strList).
		def("write", params("self", "data"), returns(Int)).
		all(anyArgs("self"), returnsNone, "writelines", "close", "flush").
		all(anyArgs("self"), returns(Int), "seek", "tell", "fileno").
		def("__enter__", params("self"), returnsSelf).
		def("__exit__", anyArgs("self"), returns(Bool)).
		def("__iter__", params("self"), iterating(Str)).
		attr("name", Str).
		attr("closed", Bool)

	newMethodTable("slice", SliceT.methods).
		attr("start", Int, None).
		attr("stop", Int, None).
		attr("step", Int, None).
		def("indices", params("self", "length"), func(*builtinCall) (*TypeSet, error) {
			i := NewTypeSet(Int)
			return NewTypeSet(NewTuple(i, i, i)), nil
		})
}
