package types

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"
	"sync/atomic"
)

// Type is a member of a TypeSet: one possible runtime type of a value.
//
// The set of implementations is closed and lives in this package.
type Type interface {
	fmt.Stringer
	// Name is the discriminator of the kind of Type, like "int" or "function"
	Name() string
	// Hash identifies the Type: primitives by name, containers by kind and content,
	// and functions, classes, instances and modules by the identity of their definition
	Hash() uint64

	hashWith(seen visiting) uint64
	stringWith(seen visiting) string
}

// visiting tracks the TypeSets being traversed while hashing or printing,
// so that self-referencing containers (`a = []; a.append(a)`) terminate
type visiting map[*TypeSet]bool

// Equal can be used to compare Types for equality
func Equal(this, other Type) bool {
	return this == other || this.Hash() == other.Hash()
}

// identity is the arena handle of a Type created from a definition
type identity struct {
	id uint64
}

var freshIDs atomic.Uint64

func newIdentity() identity {
	return identity{id: freshIDs.Add(1)}
}

// ID returns the handle of the Type, unique for the lifetime of the process
func (i identity) ID() uint64 { return i.id }

func hashOf(kind string, parts ...uint64) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(kind))
	arr := make([]byte, 0, 8*len(parts))
	for _, part := range parts {
		arr = binary.LittleEndian.AppendUint64(arr, part)
	}
	_, _ = h.Write(arr)
	return h.Sum64()
}

// hashUnordered hashes parts independently of their order and multiplicity
func hashUnordered(kind string, parts []uint64) uint64 {
	parts = slices.Clone(parts)
	slices.Sort(parts)
	return hashOf(kind, slices.Compact(parts)...)
}

// AnyType is the absorbing element of TypeSets: a value of unknown type
type AnyType struct{}

// Any is the only AnyType
var Any = &AnyType{}

func (*AnyType) Name() string               { return "Any" }
func (*AnyType) String() string             { return "Any" }
func (a *AnyType) Hash() uint64             { return a.hashWith(nil) }
func (*AnyType) hashWith(visiting) uint64   { return hashOf("Any") }
func (*AnyType) stringWith(visiting) string { return "Any" }

// Primitive is a builtin scalar kind like int or str. Primitives are process-wide singletons
type Primitive struct {
	name    string
	display string
	methods *Environment
}

func newPrimitive(name, display string) *Primitive {
	return &Primitive{
		name:    name,
		display: display,
		methods: newAttributeTable(),
	}
}

func (p *Primitive) Name() string               { return p.name }
func (p *Primitive) String() string             { return p.display }
func (p *Primitive) Hash() uint64               { return p.hashWith(nil) }
func (p *Primitive) hashWith(visiting) uint64   { return hashOf("primitive:" + p.name) }
func (p *Primitive) stringWith(visiting) string { return p.display }
func (p *Primitive) Methods() *Environment      { return p.methods }

var (
	Int      = newPrimitive("int", "int")
	Float    = newPrimitive("float", "float")
	Complex  = newPrimitive("complex", "complex")
	Bool     = newPrimitive("bool", "bool")
	Str      = newPrimitive("str", "str")
	Bytes    = newPrimitive("bytes", "bytes")
	None     = newPrimitive("NoneType", "None")
	File     = newPrimitive("file", "file")
	SliceT   = newPrimitive("slice", "slice")
	Ellipsis = newPrimitive("ellipsis", "ellipsis")
)

// isIntLike reports whether t can be used where Python expects an index
func isIntLike(t Type) bool {
	return t == Int || t == Bool
}

func isNumeric(t Type) bool {
	return t == Int || t == Bool || t == Float || t == Complex
}
