package types

import (
	"strings"
)

type ContainerKind int

const (
	ListKind ContainerKind = iota
	TupleKind
	SetKind
	FrozenSetKind
	RangeKind
)

func (k ContainerKind) String() string {
	switch k {
	case ListKind:
		return "list"
	case TupleKind:
		return "tuple"
	case SetKind:
		return "set"
	case FrozenSetKind:
		return "frozenset"
	default:
		return "range"
	}
}

// Container is a sequence or set. Its elements merge into a single content TypeSet:
// neither order nor count is tracked, except for Elems.
type Container struct {
	kind     ContainerKind
	Contents *TypeSet
	// Elems holds the type of each position of a tuple built from a display
	// like `(1, "a")`, and is nil whenever the length is unknown
	Elems []*TypeSet
}

// NewContainer returns a Container of kind whose contents are a copy of contents
func NewContainer(kind ContainerKind, contents *TypeSet) *Container {
	if contents == nil {
		contents = NewTypeSet()
	}
	return &Container{kind: kind, Contents: contents.Copy()}
}

// NewTuple returns a tuple of known length, where elems[i] is the type at position i
func NewTuple(elems ...*TypeSet) *Container {
	c := &Container{kind: TupleKind, Contents: NewTypeSet(), Elems: make([]*TypeSet, len(elems))}
	for i, elem := range elems {
		c.Elems[i] = elem.Copy()
		c.Contents.Update(elem)
	}
	return c
}

func (c *Container) Kind() ContainerKind { return c.kind }
func (c *Container) Name() string        { return c.kind.String() }
func (c *Container) String() string      { return c.stringWith(nil) }
func (c *Container) Hash() uint64        { return c.hashWith(nil) }

func (c *Container) hashWith(seen visiting) uint64 {
	parts := []uint64{c.Contents.hashWith(seen)}
	for _, elem := range c.Elems {
		parts = append(parts, elem.hashWith(seen))
	}
	return hashOf("container:"+c.kind.String(), parts...)
}

func (c *Container) stringWith(seen visiting) string {
	if c.Elems != nil {
		elems := make([]string, len(c.Elems))
		for i, elem := range c.Elems {
			elems[i] = elem.stringWith(seen)
		}
		return c.kind.String() + "[" + strings.Join(elems, ", ") + "]"
	}
	if c.Contents.IsEmpty() {
		return c.kind.String() + "[]"
	}
	return c.kind.String() + "[" + c.Contents.stringWith(seen) + "]"
}

func (c *Container) Methods() *Environment {
	switch c.kind {
	case ListKind:
		return listMethods
	case TupleKind:
		return tupleMethods
	case SetKind:
		return setMethods
	case FrozenSetKind:
		return frozenSetMethods
	default:
		return rangeMethods
	}
}

// Mapping is a dict: all keys merge into Keys and all values into Values
type Mapping struct {
	Keys   *TypeSet
	Values *TypeSet
}

// NewMapping returns a Mapping whose keys and values are copies of the given TypeSets
func NewMapping(keys, values *TypeSet) *Mapping {
	if keys == nil {
		keys = NewTypeSet()
	}
	if values == nil {
		values = NewTypeSet()
	}
	return &Mapping{Keys: keys.Copy(), Values: values.Copy()}
}

func (m *Mapping) Name() string   { return "dict" }
func (m *Mapping) String() string { return m.stringWith(nil) }
func (m *Mapping) Hash() uint64   { return m.hashWith(nil) }

func (m *Mapping) hashWith(seen visiting) uint64 {
	return hashOf("dict", m.Keys.hashWith(seen), m.Values.hashWith(seen))
}

func (m *Mapping) stringWith(seen visiting) string {
	if m.Keys.IsEmpty() && m.Values.IsEmpty() {
		return "dict[]"
	}
	return "dict[" + m.Keys.stringWith(seen) + ", " + m.Values.stringWith(seen) + "]"
}

func (m *Mapping) Methods() *Environment { return dictMethods }

// Generator is an iterator: what for loops and next() go through.
// `__iter__` on a container returns one, and `__next__` on it returns Yields
type Generator struct {
	Yields *TypeSet
}

func NewGenerator(yields *TypeSet) *Generator {
	if yields == nil {
		yields = NewTypeSet()
	}
	return &Generator{Yields: yields.Copy()}
}

func (g *Generator) Name() string   { return "generator" }
func (g *Generator) String() string { return g.stringWith(nil) }
func (g *Generator) Hash() uint64   { return g.hashWith(nil) }

func (g *Generator) hashWith(seen visiting) uint64 {
	return hashOf("generator", g.Yields.hashWith(seen))
}

func (g *Generator) stringWith(seen visiting) string {
	if g.Yields.IsEmpty() {
		return "generator[]"
	}
	return "generator[" + g.Yields.stringWith(seen) + "]"
}

func (g *Generator) Methods() *Environment { return generatorMethods }
