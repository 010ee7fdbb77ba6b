package types

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	"github.com/PiJoules/python-type-inference-sub000/frontend/ilerr"
)

var binaryMethods = map[ast.Operator]string{
	ast.Add:      "__add__",
	ast.Sub:      "__sub__",
	ast.Mult:     "__mul__",
	ast.MatMult:  "__matmul__",
	ast.Div:      "__truediv__",
	ast.Mod:      "__mod__",
	ast.Pow:      "__pow__",
	ast.LShift:   "__lshift__",
	ast.RShift:   "__rshift__",
	ast.BitOr:    "__or__",
	ast.BitXor:   "__xor__",
	ast.BitAnd:   "__and__",
	ast.FloorDiv: "__floordiv__",
}

var comparisonMethods = map[ast.CmpOp]string{
	ast.Lt:  "__lt__",
	ast.LtE: "__le__",
	ast.Gt:  "__gt__",
	ast.GtE: "__ge__",
}

var literalTypes = map[ast.LiteralKind]Type{
	ast.IntLit:      Int,
	ast.FloatLit:    Float,
	ast.ComplexLit:  Complex,
	ast.StringLit:   Str,
	ast.BytesLit:    Bytes,
	ast.BoolLit:     Bool,
	ast.NoneLit:     None,
	ast.EllipsisLit: Ellipsis,
}

// evalExpr returns the types expr may evaluate to. The result may be shared and must not be mutated
func (env *Environment) evalExpr(expr ast.Expr) (*TypeSet, error) {
	ts, err := env.evalExprUnpositioned(expr)
	if err != nil {
		return nil, positionErr(err, expr)
	}
	return ts, nil
}

func (env *Environment) evalExprUnpositioned(expr ast.Expr) (*TypeSet, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return NewTypeSet(literalTypes[e.Kind]), nil

	case *ast.FormattedString:
		if _, err := env.evalExprs(e.Values); err != nil {
			return nil, err
		}
		return NewTypeSet(Str), nil

	case *ast.Name:
		return env.Lookup(e.Id)

	case *ast.BinOp:
		left, err := env.evalExpr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := env.evalExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return env.binaryMethod(binaryMethods[e.Op], left, right, e)

	case *ast.UnaryOp:
		return env.evalUnary(e)

	case *ast.BoolOp:
		return env.evalExprs(e.Values)

	case *ast.Compare:
		return env.evalCompare(e)

	case *ast.Call:
		callee, err := env.evalExpr(e.Func)
		if err != nil {
			return nil, err
		}
		args, err := env.evalCallArgs(e)
		if err != nil {
			return nil, err
		}
		return env.call(callee, args, e)

	case *ast.Attribute:
		value, err := env.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		return env.getAttr(value, e.Attr, e)

	case *ast.Subscript:
		value, err := env.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		key, err := env.evalExpr(e.Slice)
		if err != nil {
			return nil, err
		}
		return env.callMethodOn(value, "__getitem__", e, key)

	case *ast.Slice:
		for _, part := range []ast.Expr{e.Lower, e.Upper, e.Step} {
			if part == nil {
				continue
			}
			if _, err := env.evalExpr(part); err != nil {
				return nil, err
			}
		}
		return NewTypeSet(SliceT), nil

	case *ast.List:
		elems, err := env.evalElements(e.Elts)
		if err != nil {
			return nil, err
		}
		return NewTypeSet(NewContainer(ListKind, elems)), nil

	case *ast.Set:
		elems, err := env.evalElements(e.Elts)
		if err != nil {
			return nil, err
		}
		return NewTypeSet(NewContainer(SetKind, elems)), nil

	case *ast.Tuple:
		return env.evalTuple(e)

	case *ast.Dict:
		return env.evalDict(e)

	case *ast.IfExp:
		return env.evalExprs([]ast.Expr{e.Test, e.Body, e.OrElse}, 1)

	case *ast.Lambda:
		fn, err := env.defineFunction(e, "<lambda>", e.Args, nil, e.Body)
		if err != nil {
			return nil, err
		}
		return NewTypeSet(fn), nil

	case *ast.ListComp:
		scope, err := env.evalGenerators(e.Generators)
		if err != nil {
			return nil, err
		}
		elt, err := scope.evalExpr(e.Elt)
		if err != nil {
			return nil, err
		}
		return NewTypeSet(NewContainer(ListKind, elt)), nil

	case *ast.SetComp:
		scope, err := env.evalGenerators(e.Generators)
		if err != nil {
			return nil, err
		}
		elt, err := scope.evalExpr(e.Elt)
		if err != nil {
			return nil, err
		}
		return NewTypeSet(NewContainer(SetKind, elt)), nil

	case *ast.GeneratorExp:
		scope, err := env.evalGenerators(e.Generators)
		if err != nil {
			return nil, err
		}
		elt, err := scope.evalExpr(e.Elt)
		if err != nil {
			return nil, err
		}
		return NewTypeSet(NewGenerator(elt)), nil

	case *ast.DictComp:
		scope, err := env.evalGenerators(e.Generators)
		if err != nil {
			return nil, err
		}
		key, err := scope.evalExpr(e.Key)
		if err != nil {
			return nil, err
		}
		value, err := scope.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		return NewTypeSet(NewMapping(key, value)), nil

	case *ast.Yield:
		fn := env.function()
		if fn == nil || !fn.isGenerator {
			return nil, unsupported(e, "'yield' outside of a function")
		}
		value := NewTypeSet(None)
		if e.Value != nil {
			var err error
			if value, err = env.evalExpr(e.Value); err != nil {
				return nil, err
			}
		}
		fn.yields.Update(value)
		return NewTypeSet(None), nil

	case *ast.YieldFrom:
		fn := env.function()
		if fn == nil || !fn.isGenerator {
			return nil, unsupported(e, "'yield from' outside of a function")
		}
		value, err := env.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		elems, err := env.iterate(value, e)
		if err != nil {
			return nil, err
		}
		fn.yields.Update(elems)
		return NewTypeSet(None), nil

	case *ast.Starred:
		return nil, unsupported(e, "starred expression outside of a call, display or assignment target")
	case *ast.Await:
		return nil, unsupported(e, "await")
	case *ast.NamedExpr:
		return nil, unsupported(e, "assignment expression")
	case *ast.Unsupported:
		return nil, unsupported(e, e.What)
	}
	return nil, unsupported(expr, expr.Describe())
}

// evalExprs evaluates every expression and unions the results of those from index from on
func (env *Environment) evalExprs(exprs []ast.Expr, from ...int) (*TypeSet, error) {
	start := 0
	if len(from) > 0 {
		start = from[0]
	}
	out := NewTypeSet()
	for i, expr := range exprs {
		ts, err := env.evalExpr(expr)
		if err != nil {
			return nil, err
		}
		if i >= start {
			out.Update(ts)
		}
	}
	return out, nil
}

// binaryMethod dispatches `left op right` to the method of every member of left
func (env *Environment) binaryMethod(method string, left, right *TypeSet, at ast.Node) (*TypeSet, error) {
	return mapTypes(left, func(t Type) (*TypeSet, error) {
		if !env.hasAttr(t, method) {
			return nil, mismatch(at, method, t)
		}
		return env.callMethod(t, method, at, right)
	})
}

// inPlaceMethod is an augmented assignment: the in-place method where defined, else the binary one
func (env *Environment) inPlaceMethod(op ast.Operator, left, right *TypeSet, at ast.Node) (*TypeSet, error) {
	method := binaryMethods[op]
	inPlace := "__i" + method[2:]
	return mapTypes(left, func(t Type) (*TypeSet, error) {
		if env.hasAttr(t, inPlace) {
			return env.callMethod(t, inPlace, at, right)
		}
		return env.binaryMethod(method, NewTypeSet(t), right, at)
	})
}

func (env *Environment) evalUnary(e *ast.UnaryOp) (*TypeSet, error) {
	operand, err := env.evalExpr(e.Operand)
	if err != nil {
		return nil, err
	}
	var method string
	switch e.Op {
	case ast.Not:
		return NewTypeSet(Bool), nil
	case ast.Invert:
		method = "__invert__"
	case ast.UAdd:
		method = "__pos__"
	default:
		method = "__neg__"
	}
	return env.callMethodOn(operand, method, e)
}

// evalCompare evaluates every comparison of a chain and conjoins their results with `__and__`
func (env *Environment) evalCompare(e *ast.Compare) (*TypeSet, error) {
	left, err := env.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	var result *TypeSet
	for i, op := range e.Ops {
		right, err := env.evalExpr(e.Comparators[i])
		if err != nil {
			return nil, err
		}
		cmp, err := env.compare(op, left, right, e)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = cmp
		} else if result, err = env.conjoin(result, cmp, e); err != nil {
			return nil, err
		}
		left = right
	}
	return result, nil
}

func (env *Environment) conjoin(acc, next *TypeSet, at ast.Node) (*TypeSet, error) {
	conj, err := env.binaryMethod("__and__", acc, next, at)
	if err == nil {
		return conj, nil
	}
	if code := ilerr.CodeOf(err); code == ilerr.TypeMismatch || code == ilerr.MissingAttribute {
		out := acc.Copy()
		out.Update(next)
		return out, nil
	}
	return nil, err
}

func (env *Environment) compare(op ast.CmpOp, left, right *TypeSet, at ast.Node) (*TypeSet, error) {
	switch op {
	case ast.Is, ast.IsNot:
		return NewTypeSet(Bool), nil
	case ast.In, ast.NotIn:
		return mapTypes(right, func(t Type) (*TypeSet, error) {
			if env.hasAttr(t, "__contains__") {
				if _, err := env.callMethod(t, "__contains__", at, left); err != nil {
					return nil, err
				}
				return NewTypeSet(Bool), nil
			}
			if _, err := env.iterate(NewTypeSet(t), at); err != nil {
				return nil, err
			}
			return NewTypeSet(Bool), nil
		})
	case ast.Eq, ast.NotEq:
		method := "__eq__"
		if op == ast.NotEq {
			method = "__ne__"
		}
		return mapTypes(left, func(t Type) (*TypeSet, error) {
			if instance, ok := t.(*Instance); ok && env.hasAttr(instance, method) {
				return env.callMethod(instance, method, at, right)
			}
			return NewTypeSet(Bool), nil
		})
	}
	return env.binaryMethod(comparisonMethods[op], left, right, at)
}

// evalCallArgs sorts the arguments of a call site into binder buckets
func (env *Environment) evalCallArgs(e *ast.Call) (callArgs, error) {
	var args callArgs
	for _, arg := range e.Args {
		if starred, ok := arg.(*ast.Starred); ok {
			value, err := env.evalExpr(starred.Value)
			if err != nil {
				return args, err
			}
			elems, err := env.iterate(value, starred)
			if err != nil {
				return args, err
			}
			if args.star == nil {
				args.star = NewTypeSet()
			}
			args.star.Update(elems)
			continue
		}
		value, err := env.evalExpr(arg)
		if err != nil {
			return args, err
		}
		args.positional = append(args.positional, value)
	}
	for _, kw := range e.Keywords {
		value, err := env.evalExpr(kw.Value)
		if err != nil {
			return args, err
		}
		if kw.Arg != "" {
			args.keywords = append(args.keywords, namedArg{name: kw.Arg, types: value})
			continue
		}
		_, values, err := env.mappingItems(value, kw.Value)
		if err != nil {
			return args, err
		}
		if args.doubleStar == nil {
			args.doubleStar = NewTypeSet()
		}
		args.doubleStar.Update(values)
	}
	return args, nil
}

// evalElements unions the elements of a display, unpacking starred ones
func (env *Environment) evalElements(elts []ast.Expr) (*TypeSet, error) {
	out := NewTypeSet()
	for _, elt := range elts {
		if starred, ok := elt.(*ast.Starred); ok {
			value, err := env.evalExpr(starred.Value)
			if err != nil {
				return nil, err
			}
			elems, err := env.iterate(value, starred)
			if err != nil {
				return nil, err
			}
			out.Update(elems)
			continue
		}
		value, err := env.evalExpr(elt)
		if err != nil {
			return nil, err
		}
		out.Update(value)
	}
	return out, nil
}

// evalTuple keeps the type of each position, unless a starred element makes the length unknown
func (env *Environment) evalTuple(e *ast.Tuple) (*TypeSet, error) {
	elems := make([]*TypeSet, 0, len(e.Elts))
	for _, elt := range e.Elts {
		if _, ok := elt.(*ast.Starred); ok {
			contents, err := env.evalElements(e.Elts)
			if err != nil {
				return nil, err
			}
			return NewTypeSet(NewContainer(TupleKind, contents)), nil
		}
	}
	for _, elt := range e.Elts {
		value, err := env.evalExpr(elt)
		if err != nil {
			return nil, err
		}
		elems = append(elems, value)
	}
	return NewTypeSet(NewTuple(elems...)), nil
}

func (env *Environment) evalDict(e *ast.Dict) (*TypeSet, error) {
	keys, values := NewTypeSet(), NewTypeSet()
	for i, value := range e.Values {
		v, err := env.evalExpr(value)
		if err != nil {
			return nil, err
		}
		if e.Keys[i] == nil {
			k, vs, err := env.mappingItems(v, value)
			if err != nil {
				return nil, err
			}
			keys.Update(k)
			values.Update(vs)
			continue
		}
		k, err := env.evalExpr(e.Keys[i])
		if err != nil {
			return nil, err
		}
		keys.Update(k)
		values.Update(v)
	}
	return NewTypeSet(&Mapping{Keys: keys, Values: values}), nil
}

// evalGenerators binds the targets of comprehension clauses in a child scope, which it returns
func (env *Environment) evalGenerators(generators []ast.Comprehension) (*Environment, error) {
	scope := newEnvironment(env, comprehensionScope, env.State)
	scope.owner = env.function()
	for _, gen := range generators {
		if gen.IsAsync {
			return nil, unsupported(gen.Iter, "async comprehension")
		}
		iter, err := scope.evalExpr(gen.Iter)
		if err != nil {
			return nil, err
		}
		elems, err := scope.iterate(iter, gen.Iter)
		if err != nil {
			return nil, err
		}
		if err := scope.assign(gen.Target, elems, gen.Target); err != nil {
			return nil, err
		}
		if _, err := scope.evalExprs(gen.Ifs); err != nil {
			return nil, err
		}
	}
	return scope, nil
}
