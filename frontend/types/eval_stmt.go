package types

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	"github.com/PiJoules/python-type-inference-sub000/frontend/ilerr"
	"slices"
)

// forbiddenClassAttrs are the hooks that would make attribute access unpredictable
var forbiddenClassAttrs = []string{"__getattr__", "__getattribute__", "__setattr__"}

func (env *Environment) evalBody(body []ast.Stmt) error {
	for _, stmt := range body {
		if err := env.evalStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// evalStmt evaluates stmt for its effect on env. Every branch of a control-flow
// statement is evaluated, whatever its condition
func (env *Environment) evalStmt(stmt ast.Stmt) error {
	if err := env.evalStmtUnpositioned(stmt); err != nil {
		return positionErr(err, stmt)
	}
	return nil
}

func (env *Environment) evalStmtUnpositioned(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := env.evalExpr(s.Value)
		return err

	case *ast.Assign:
		value, err := env.evalExpr(s.Value)
		if err != nil {
			return err
		}
		for _, target := range s.Targets {
			if err := env.assign(target, value, s); err != nil {
				return err
			}
		}
		return nil

	case *ast.AugAssign:
		return env.evalAugAssign(s)

	case *ast.AnnAssign:
		if s.Value == nil {
			return nil
		}
		value, err := env.evalExpr(s.Value)
		if err != nil {
			return err
		}
		return env.assign(s.Target, value, s)

	case *ast.If:
		if _, err := env.evalExpr(s.Test); err != nil {
			return err
		}
		if err := env.evalBody(s.Body); err != nil {
			return err
		}
		return env.evalBody(s.OrElse)

	case *ast.While:
		if _, err := env.evalExpr(s.Test); err != nil {
			return err
		}
		if err := env.evalBody(s.Body); err != nil {
			return err
		}
		return env.evalBody(s.OrElse)

	case *ast.For:
		if s.IsAsync {
			return unsupported(s, "async for")
		}
		iter, err := env.evalExpr(s.Iter)
		if err != nil {
			return err
		}
		elems, err := env.iterate(iter, s.Iter)
		if err != nil {
			return err
		}
		if err := env.assign(s.Target, elems, s); err != nil {
			return err
		}
		if err := env.evalBody(s.Body); err != nil {
			return err
		}
		return env.evalBody(s.OrElse)

	case *ast.With:
		return env.evalWith(s)

	case *ast.Try:
		return env.evalTry(s)

	case *ast.Raise:
		for _, expr := range []ast.Expr{s.Exc, s.Cause} {
			if expr == nil {
				continue
			}
			if _, err := env.evalExpr(expr); err != nil {
				return err
			}
		}
		return nil

	case *ast.Assert:
		if _, err := env.evalExpr(s.Test); err != nil {
			return err
		}
		if s.Msg != nil {
			_, err := env.evalExpr(s.Msg)
			return err
		}
		return nil

	case *ast.Delete:
		for _, target := range s.Targets {
			if err := env.evalDelete(target); err != nil {
				return err
			}
		}
		return nil

	case *ast.Return:
		return env.evalReturn(s)

	case *ast.FunctionDef:
		if s.IsAsync {
			return unsupported(s, "async def")
		}
		if len(s.Decorators) > 0 {
			return unsupported(s.Decorators[0], "decorator")
		}
		fn, err := env.defineFunction(s, s.Name, s.Args, s.Body, nil)
		if err != nil {
			return err
		}
		env.Bind(s.Name, NewTypeSet(fn))
		return nil

	case *ast.ClassDef:
		return env.defineClass(s)

	case *ast.Import:
		return env.evalImport(s)

	case *ast.ImportFrom:
		return env.evalImportFrom(s)

	case *ast.Global, *ast.Nonlocal, *ast.Pass, *ast.Break, *ast.Continue:
		return nil

	case *ast.Unsupported:
		return unsupported(s, s.What)
	}
	return unsupported(stmt, stmt.Describe())
}

// assign unions value into target
func (env *Environment) assign(target ast.Expr, value *TypeSet, at ast.Node) error {
	switch t := target.(type) {
	case *ast.Name:
		env.Bind(t.Id, value)
		return nil
	case *ast.Attribute:
		obj, err := env.evalExpr(t.Value)
		if err != nil {
			return err
		}
		return positionErr(env.setAttr(obj, t.Attr, value, t), t)
	case *ast.Subscript:
		obj, err := env.evalExpr(t.Value)
		if err != nil {
			return err
		}
		key, err := env.evalExpr(t.Slice)
		if err != nil {
			return err
		}
		_, err = env.callMethodOn(obj, "__setitem__", t, key, value)
		return positionErr(err, t)
	case *ast.Tuple:
		return env.unpack(t.Elts, value, t)
	case *ast.List:
		return env.unpack(t.Elts, value, t)
	}
	return unsupported(target, "assignment to "+target.Describe())
}

func isStarred(e ast.Expr) bool {
	_, ok := e.(*ast.Starred)
	return ok
}

// unpack assigns the elements of every member of value to targets. A tuple of known
// length must have exactly one element per target, or at least one per unstarred target
func (env *Environment) unpack(targets []ast.Expr, value *TypeSet, at ast.Node) error {
	star := slices.IndexFunc(targets, isStarred)
	if star >= 0 && slices.IndexFunc(targets[star+1:], isStarred) >= 0 {
		return unsupported(at, "multiple starred assignment targets")
	}
	assignAt := func(i int, elems *TypeSet) error {
		if i == star {
			list := NewTypeSet(NewContainer(ListKind, elems))
			return env.assign(targets[i].(*ast.Starred).Value, list, at)
		}
		return env.assign(targets[i], elems, at)
	}

	if value.ContainsAny() {
		for i := range targets {
			if err := assignAt(i, NewTypeSet(Any)); err != nil {
				return err
			}
		}
		return nil
	}
	for _, t := range value.Types() {
		if tuple, ok := t.(*Container); ok && tuple.Elems != nil {
			if err := env.unpackKnown(targets, star, tuple.Elems, assignAt, at); err != nil {
				return err
			}
			continue
		}
		elems, err := env.iterate(NewTypeSet(t), at)
		if err != nil {
			return err
		}
		for i := range targets {
			if err := assignAt(i, elems); err != nil {
				return err
			}
		}
	}
	return nil
}

func (env *Environment) unpackKnown(targets []ast.Expr, star int, elems []*TypeSet, assignAt func(int, *TypeSet) error, at ast.Node) error {
	arityErr := ilerr.New(ilerr.NewUnpackingArity{Positioner: ast.RangeOf(at), Targets: len(targets), Values: len(elems)})
	if star < 0 {
		if len(elems) != len(targets) {
			return arityErr
		}
		for i, elem := range elems {
			if err := assignAt(i, elem); err != nil {
				return err
			}
		}
		return nil
	}
	after := len(targets) - star - 1
	if len(elems) < star+after {
		return arityErr
	}
	for i := 0; i < star; i++ {
		if err := assignAt(i, elems[i]); err != nil {
			return err
		}
	}
	middle := NewTypeSet()
	for _, elem := range elems[star : len(elems)-after] {
		middle.Update(elem)
	}
	if err := assignAt(star, middle); err != nil {
		return err
	}
	for i := 0; i < after; i++ {
		if err := assignAt(star+1+i, elems[len(elems)-after+i]); err != nil {
			return err
		}
	}
	return nil
}

func (env *Environment) evalAugAssign(s *ast.AugAssign) error {
	value, err := env.evalExpr(s.Value)
	if err != nil {
		return err
	}
	switch t := s.Target.(type) {
	case *ast.Name:
		current, err := env.Lookup(t.Id)
		if err != nil {
			return positionErr(err, t)
		}
		result, err := env.inPlaceMethod(s.Op, current, value, s)
		if err != nil {
			return err
		}
		env.Bind(t.Id, result)
		return nil
	case *ast.Attribute:
		obj, err := env.evalExpr(t.Value)
		if err != nil {
			return err
		}
		current, err := env.getAttr(obj, t.Attr, t)
		if err != nil {
			return err
		}
		result, err := env.inPlaceMethod(s.Op, current, value, s)
		if err != nil {
			return err
		}
		return env.setAttr(obj, t.Attr, result, t)
	case *ast.Subscript:
		obj, err := env.evalExpr(t.Value)
		if err != nil {
			return err
		}
		key, err := env.evalExpr(t.Slice)
		if err != nil {
			return err
		}
		current, err := env.callMethodOn(obj, "__getitem__", t, key)
		if err != nil {
			return err
		}
		result, err := env.inPlaceMethod(s.Op, current, value, s)
		if err != nil {
			return err
		}
		_, err = env.callMethodOn(obj, "__setitem__", t, key, result)
		return err
	}
	return unsupported(s.Target, "augmented assignment to "+s.Target.Describe())
}

func (env *Environment) evalWith(s *ast.With) error {
	if s.IsAsync {
		return unsupported(s, "async with")
	}
	for _, item := range s.Items {
		ctx, err := env.evalExpr(item.ContextExpr)
		if err != nil {
			return err
		}
		value, err := mapTypes(ctx, func(t Type) (*TypeSet, error) {
			if env.hasAttr(t, "__exit__") {
				none := NewTypeSet(None)
				if _, err := env.callMethod(t, "__exit__", item.ContextExpr, none, none, none); err != nil {
					return nil, err
				}
			}
			if env.hasAttr(t, "__enter__") {
				return env.callMethod(t, "__enter__", item.ContextExpr)
			}
			return NewTypeSet(t), nil
		})
		if err != nil {
			return err
		}
		if item.OptionalVars != nil {
			if err := env.assign(item.OptionalVars, value, s); err != nil {
				return err
			}
		}
	}
	return env.evalBody(s.Body)
}

func (env *Environment) evalTry(s *ast.Try) error {
	if err := env.evalBody(s.Body); err != nil {
		return err
	}
	for _, handler := range s.Handlers {
		if handler.Type != nil {
			caught, err := env.evalExpr(handler.Type)
			if err != nil {
				return err
			}
			if handler.Name != "" {
				env.Bind(handler.Name, caughtInstances(caught))
			}
		}
		if err := env.evalBody(handler.Body); err != nil {
			return err
		}
	}
	if err := env.evalBody(s.OrElse); err != nil {
		return err
	}
	return env.evalBody(s.FinalBody)
}

// caughtInstances is what `except caught as e` binds e to: the canonical
// instances of the caught classes
func caughtInstances(caught *TypeSet) *TypeSet {
	out := NewTypeSet()
	if caught.ContainsAny() {
		return NewTypeSet(Any)
	}
	for _, t := range caught.Types() {
		switch t := t.(type) {
		case *Class:
			out.Add(t.Instance())
		case *Container:
			out.Update(caughtInstances(t.Contents))
		default:
			out.Add(Any)
		}
	}
	return out
}

func (env *Environment) evalDelete(target ast.Expr) error {
	switch t := target.(type) {
	case *ast.Name:
		_, err := env.Lookup(t.Id)
		return positionErr(err, t)
	case *ast.Attribute:
		_, err := env.evalExpr(t.Value)
		return err
	case *ast.Subscript:
		if _, err := env.evalExpr(t.Value); err != nil {
			return err
		}
		_, err := env.evalExpr(t.Slice)
		return err
	case *ast.Tuple:
		for _, elt := range t.Elts {
			if err := env.evalDelete(elt); err != nil {
				return err
			}
		}
		return nil
	case *ast.List:
		for _, elt := range t.Elts {
			if err := env.evalDelete(elt); err != nil {
				return err
			}
		}
		return nil
	}
	return unsupported(target, "deletion of "+target.Describe())
}

func (env *Environment) evalReturn(s *ast.Return) error {
	fn := env.function()
	if fn == nil {
		return unsupported(s, "'return' outside of a function")
	}
	value := NewTypeSet(None)
	if s.Value != nil {
		var err error
		if value, err = env.evalExpr(s.Value); err != nil {
			return err
		}
	}
	fn.sawReturn = true
	if !fn.isGenerator {
		fn.ret.Update(value)
	}
	return nil
}

// defineFunction returns the Function of a def or lambda node, creating it the first time the
// node is evaluated. Later evaluations widen the defaults of the existing Function
func (env *Environment) defineFunction(node ast.Node, name string, args *ast.Arguments, body []ast.Stmt, lambdaBody ast.Expr) (*Function, error) {
	if fn, ok := env.definitions[node].(*Function); ok {
		sig, err := env.signature(args)
		if err != nil {
			return nil, err
		}
		for i, p := range sig.Defaults {
			fn.sig.Defaults[i].Default.Update(p.Default)
		}
		for i, p := range sig.KwOnly {
			if p.Default != nil {
				fn.sig.KwOnly[i].Default.Update(p.Default)
			}
		}
		return fn, nil
	}
	sig, err := env.signature(args)
	if err != nil {
		return nil, err
	}
	fn := &Function{
		identity:   newIdentity(),
		name:       name,
		sig:        sig,
		body:       body,
		lambdaBody: lambdaBody,
		node:       node,
		defEnv:     env.definingScope(),
		ret:        NewTypeSet(),
	}
	if env.kind == classScope {
		fn.class = env.class
	}
	if containsYield(body) {
		fn.isGenerator = true
		fn.yields = NewTypeSet()
		fn.generator = &Generator{Yields: fn.yields}
		fn.ret.Add(fn.generator)
	}
	env.definitions[node] = fn
	env.log().Debug("defined function", "function", name, "node", ast.Slog(node))
	return fn, nil
}

// signature evaluates the defaults of a parameter list
func (env *Environment) signature(args *ast.Arguments) (*Signature, error) {
	sig := &Signature{}
	if args == nil {
		return sig, nil
	}
	all := append(slices.Clone(args.PosOnly), args.Args...)
	firstDefault := len(all) - len(args.Defaults)
	for i, arg := range all {
		if i < firstDefault {
			sig.Positional = append(sig.Positional, arg.Name)
			continue
		}
		def, err := env.evalExpr(args.Defaults[i-firstDefault])
		if err != nil {
			return nil, err
		}
		sig.Defaults = append(sig.Defaults, Param{Name: arg.Name, Default: def.Copy()})
	}
	if args.Vararg != nil {
		sig.Vararg = args.Vararg.Name
	}
	for i, arg := range args.KwOnly {
		p := Param{Name: arg.Name}
		if i < len(args.KwDefaults) && args.KwDefaults[i] != nil {
			def, err := env.evalExpr(args.KwDefaults[i])
			if err != nil {
				return nil, err
			}
			p.Default = def.Copy()
		}
		sig.KwOnly = append(sig.KwOnly, p)
	}
	if args.Kwarg != nil {
		sig.Kwarg = args.Kwarg.Name
	}
	return sig, nil
}

func (env *Environment) defineClass(s *ast.ClassDef) error {
	switch {
	case len(s.Decorators) > 0:
		return unsupported(s.Decorators[0], "class decorator")
	case len(s.Keywords) > 0:
		return unsupported(s, "class keyword argument '"+s.Keywords[0].Arg+"'")
	case len(s.Bases) > 1:
		return unsupported(s, "multiple inheritance")
	}

	c, ok := env.definitions[s].(*Class)
	if !ok {
		base, anyBase, err := env.classBase(s)
		if err != nil {
			return err
		}
		c = newClass(s.Name, base, newEnvironment(env, classScope, env.State))
		c.anyBase = anyBase
		c.node = s
		env.definitions[s] = c
		env.log().Debug("defined class", "class", s.Name, "node", ast.Slog(s))
	}
	if err := c.attrs.evalBody(s.Body); err != nil {
		return err
	}
	for _, name := range forbiddenClassAttrs {
		if _, ok := c.attrs.lookupLocal(name); ok {
			return unsupported(s, "class defining "+name)
		}
	}
	env.Bind(s.Name, NewTypeSet(c))
	return nil
}

// classBase returns the single base of a class definition: object when none is given,
// or nil and true when the base is not known
func (env *Environment) classBase(s *ast.ClassDef) (*Class, bool, error) {
	if len(s.Bases) == 0 {
		return env.builtinClass("object"), false, nil
	}
	bases, err := env.evalExpr(s.Bases[0])
	if err != nil {
		return nil, false, err
	}
	if bases.ContainsAny() {
		return nil, true, nil
	}
	if t, ok := bases.Realize().Single(); ok {
		if base, ok := t.(*Class); ok {
			return base, false, nil
		}
		return nil, false, unsupported(s.Bases[0], "subclassing "+t.String())
	}
	return nil, false, unsupported(s.Bases[0], "base class with several possible types "+bases.String())
}
