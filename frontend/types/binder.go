package types

import (
	"fmt"
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	"github.com/PiJoules/python-type-inference-sub000/frontend/ilerr"
	"log/slog"
	"slices"
)

type namedArg struct {
	name  string
	types *TypeSet
}

// callArgs are the arguments of a call site, sorted into the buckets the binder consumes
type callArgs struct {
	positional []*TypeSet
	keywords   []namedArg
	// star is the union of the elements of every `*x` argument, nil if there was none
	star *TypeSet
	// doubleStar is the union of the values of every `**x` argument, nil if there was none
	doubleStar *TypeSet
}

func positional(args ...*TypeSet) callArgs {
	return callArgs{positional: args}
}

// prepend returns args with self as the first positional argument
func (args callArgs) prepend(self *TypeSet) callArgs {
	args.positional = append([]*TypeSet{self}, args.positional...)
	return args
}

func (args callArgs) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Int("positional", len(args.positional)), slog.Int("keywords", len(args.keywords))}
	if args.star != nil {
		attrs = append(attrs, slog.Any("star", args.star))
	}
	if args.doubleStar != nil {
		attrs = append(attrs, slog.Any("doubleStar", args.doubleStar))
	}
	return slog.GroupValue(attrs...)
}

// takeKeyword removes the keyword argument called name, if any
func (args *callArgs) takeKeyword(name string) (*TypeSet, bool) {
	i := slices.IndexFunc(args.keywords, func(kw namedArg) bool { return kw.name == name })
	if i < 0 {
		return nil, false
	}
	ts := args.keywords[i].types
	args.keywords = slices.Delete(args.keywords, i, i+1)
	return ts, true
}

// boundParam is the TypeSet a call supplies for a parameter
type boundParam struct {
	name  string
	types *TypeSet
}

type bindings []boundParam

// get returns the TypeSet bound to name, or an empty one
func (b bindings) get(name string) *TypeSet {
	for _, p := range b {
		if p.name == name {
			return p.types
		}
	}
	return NewTypeSet()
}

// bind matches args against sig. The receiver of a bound method must already be the first
// positional argument. Positional arguments left over with no *args parameter to take them are
// ignored, while a required parameter no argument can supply is a SignatureArity error.
func bind(sig *Signature, args callArgs, callee string, at ast.Node) (bindings, error) {
	out := make(bindings, 0, len(sig.Names()))
	pos := args.positional
	args.keywords = slices.Clone(args.keywords)
	fail := func(format string, a ...any) error {
		return ilerr.New(ilerr.NewSignatureArity{
			Positioner: ast.RangeOf(at),
			Callee:     callee,
			Reason:     fmt.Sprintf(format, a...),
		})
	}

	// required positional parameters, which a keyword or an unpacked argument may also supply
	for i, name := range sig.Positional {
		if i < len(pos) {
			out = append(out, boundParam{name, pos[i]})
			continue
		}
		ts, ok := args.takeKeyword(name)
		switch {
		case ok:
		case args.star != nil:
			ts = args.star
		case args.doubleStar != nil:
			ts = args.doubleStar
		default:
			return nil, fail("missing required argument '%s'", name)
		}
		out = append(out, boundParam{name, ts})
	}
	pos = pos[min(len(pos), len(sig.Positional)):]

	// parameters with defaults: leftover positionals first, then keywords
	for _, p := range sig.Defaults {
		if len(pos) > 0 {
			out = append(out, boundParam{p.Name, pos[0]})
			pos = pos[1:]
			continue
		}
		if ts, ok := args.takeKeyword(p.Name); ok {
			out = append(out, boundParam{p.Name, ts})
			continue
		}
		ts := p.Default.Copy()
		if args.star != nil {
			ts.Update(args.star)
		}
		if args.doubleStar != nil {
			ts.Update(args.doubleStar)
		}
		out = append(out, boundParam{p.Name, ts})
	}

	if sig.Vararg != "" {
		var packed *Container
		if args.star == nil {
			packed = NewTuple(pos...)
		} else {
			contents := args.star.Copy()
			for _, ts := range pos {
				contents.Update(ts)
			}
			packed = NewContainer(TupleKind, contents)
		}
		out = append(out, boundParam{sig.Vararg, NewTypeSet(packed)})
	}

	for _, p := range sig.KwOnly {
		if ts, ok := args.takeKeyword(p.Name); ok {
			out = append(out, boundParam{p.Name, ts})
			continue
		}
		var ts *TypeSet
		switch {
		case p.Default != nil:
			ts = p.Default.Copy()
			if args.doubleStar != nil {
				ts.Update(args.doubleStar)
			}
		case args.doubleStar != nil:
			ts = args.doubleStar
		default:
			return nil, fail("missing keyword-only argument '%s'", p.Name)
		}
		out = append(out, boundParam{p.Name, ts})
	}

	if sig.Kwarg != "" {
		values := NewTypeSet()
		for _, kw := range args.keywords {
			values.Update(kw.types)
		}
		if args.doubleStar != nil {
			values.Update(args.doubleStar)
		}
		out = append(out, boundParam{sig.Kwarg, NewTypeSet(NewMapping(NewTypeSet(Str), values))})
		args.keywords, args.doubleStar = nil, nil
	}
	if len(args.keywords) > 0 {
		return nil, fail("unexpected keyword argument '%s'", args.keywords[0].name)
	}
	return out, nil
}
