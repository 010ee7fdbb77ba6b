package types

import (
	"github.com/benbjohnson/immutable"
	"github.com/xtgo/set"
	"log/slog"
	"slices"
	"sort"
	"strings"
)

// TypeSet is the set of Types a value may have: a union that only ever grows.
//
// TypeSets are mutable and shared: an Environment binding, a container's contents
// and a function's return value are all TypeSets that accumulate through Update.
// Copying must be explicit, via Copy.
type TypeSet struct {
	members []Type
	// sentinel marks a RecursionSentinel, which never holds members
	sentinel bool
}

func NewTypeSet(types ...Type) *TypeSet {
	s := &TypeSet{members: make([]Type, 0, len(types))}
	for _, t := range types {
		s.Add(t)
	}
	return s
}

// RecursionSentinel is the contribution of a reentrant call: it realizes to
// the empty set, so it neither discovers a type nor poisons a union with Any
func RecursionSentinel() *TypeSet {
	return &TypeSet{sentinel: true}
}

func (s *TypeSet) IsSentinel() bool { return s.sentinel }

// isMutable reports whether two structurally equal t must still be told apart,
// because updating the contents of one must not update the other.
// A tuple or frozenset holding something mutable is mutable itself
func isMutable(t Type) bool {
	return mutableWith(t, visiting{})
}

func mutableWith(t Type, seen visiting) bool {
	switch t := t.(type) {
	case *Container:
		if t.kind != TupleKind && t.kind != FrozenSetKind {
			return true
		}
		if holdsMutable(t.Contents, seen) {
			return true
		}
		return slices.ContainsFunc(t.Elems, func(elem *TypeSet) bool {
			return holdsMutable(elem, seen)
		})
	case *Mapping, *Generator:
		return true
	}
	return false
}

func holdsMutable(ts *TypeSet, seen visiting) bool {
	if ts == nil || seen[ts] {
		return false
	}
	seen[ts] = true
	return slices.ContainsFunc(ts.members, func(m Type) bool {
		return mutableWith(m, seen)
	})
}

func (s *TypeSet) has(t Type) bool {
	mutable := isMutable(t)
	return slices.ContainsFunc(s.members, func(m Type) bool {
		if m == t {
			return true
		}
		return !mutable && !isMutable(m) && m.Hash() == t.Hash()
	})
}

// Add unions t into s and reports whether s grew
func (s *TypeSet) Add(t Type) bool {
	if s.sentinel || t == nil || s.has(t) {
		return false
	}
	s.members = append(s.members, t)
	return true
}

// Update unions other into s in place and reports whether s grew
func (s *TypeSet) Update(other *TypeSet) bool {
	if other == nil || other == s {
		return false
	}
	grew := false
	for _, t := range other.members {
		grew = s.Add(t) || grew
	}
	return grew
}

// Copy returns a new TypeSet with the same members. Members are not copied
func (s *TypeSet) Copy() *TypeSet {
	return &TypeSet{members: slices.Clone(s.members)}
}

// Types returns the members of s in insertion order
func (s *TypeSet) Types() []Type {
	return slices.Clone(s.members)
}

func (s *TypeSet) Len() int { return len(s.members) }

func (s *TypeSet) IsEmpty() bool { return len(s.members) == 0 }

// Contains reports whether t is a member of the realized s
func (s *TypeSet) Contains(t Type) bool {
	r := s.Realize()
	if r.IsAny() {
		return t == Any
	}
	return r.Has(t)
}

// ContainsAny reports whether s realizes to Any
func (s *TypeSet) ContainsAny() bool {
	return slices.Contains(s.members, Type(Any))
}

// Realize collapses s into its canonical form: Any if Any is a member,
// otherwise the frozen set of its distinct members
func (s *TypeSet) Realize() Realized {
	if s.ContainsAny() {
		return Realized{any: true, set: immutable.NewSet[Type](typeHasher{}, Any)}
	}
	return Realized{set: immutable.NewSet[Type](typeHasher{}, s.members...)}
}

func (s *TypeSet) String() string {
	return s.Realize().String()
}

func (s *TypeSet) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

func (s *TypeSet) hashWith(seen visiting) uint64 {
	if seen[s] {
		return hashOf("cycle")
	}
	if seen == nil {
		seen = make(visiting)
	}
	seen[s] = true
	defer delete(seen, s)
	if s.ContainsAny() {
		return Any.hashWith(seen)
	}
	hashes := make([]uint64, 0, len(s.members))
	for _, m := range s.members {
		hashes = append(hashes, m.hashWith(seen))
	}
	return hashUnordered("set", hashes)
}

func (s *TypeSet) stringWith(seen visiting) string {
	if seen[s] {
		return "..."
	}
	if seen == nil {
		seen = make(visiting)
	}
	seen[s] = true
	defer delete(seen, s)
	if s.ContainsAny() {
		return "Any"
	}
	names := make([]string, 0, len(s.members))
	for _, m := range s.members {
		names = append(names, m.stringWith(seen))
	}
	return joinNames(names)
}

// joinNames renders names the way a realized TypeSet prints: a lone name as is,
// and several as a sorted, deduplicated `{a, b}`
func joinNames(names []string) string {
	sort.Strings(names)
	names = names[:set.Uniq(sort.StringSlice(names))]
	if len(names) == 1 {
		return names[0]
	}
	return "{" + strings.Join(names, ", ") + "}"
}

type typeHasher struct{}

func (typeHasher) Hash(t Type) uint32 {
	h := t.Hash()
	return uint32(h ^ h>>32)
}

func (typeHasher) Equal(a, b Type) bool {
	return Equal(a, b)
}

// Realized is the canonical, immutable form of a TypeSet:
// Any, a single Type, or a frozen set of several.
// Callers should not assume which of those they hold.
type Realized struct {
	any bool
	set immutable.Set[Type]
}

func (r Realized) IsAny() bool { return r.any }

// Len is the number of distinct types, where Any counts as one
func (r Realized) Len() int { return r.set.Len() }

// Single returns the only type of r, if there is exactly one
func (r Realized) Single() (Type, bool) {
	if r.set.Len() != 1 {
		return nil, false
	}
	return r.Types()[0], true
}

func (r Realized) Has(t Type) bool {
	return r.set.Has(t)
}

// Types returns the distinct types of r sorted by their string form
func (r Realized) Types() []Type {
	types := make([]Type, 0, r.set.Len())
	itr := r.set.Iterator()
	for !itr.Done() {
		t, ok := itr.Next()
		if !ok {
			break
		}
		types = append(types, t)
	}
	slices.SortStableFunc(types, func(a, b Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return types
}

// Names returns the sorted string forms of the types of r
func (r Realized) Names() []string {
	types := r.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

func (r Realized) Equal(other Realized) bool {
	if r.any != other.any || r.set.Len() != other.set.Len() {
		return false
	}
	for _, t := range r.Types() {
		if !other.set.Has(t) {
			return false
		}
	}
	return true
}

func (r Realized) String() string {
	if r.any {
		return "Any"
	}
	if r.set.Len() == 0 {
		return "{}"
	}
	return joinNames(r.Names())
}
