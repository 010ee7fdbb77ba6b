package types

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestTypeSetUnion(t *testing.T) {
	s := NewTypeSet(Int)
	assert.False(t, s.Add(Int))
	assert.True(t, s.Add(Str))
	assert.Equal(t, "{int, str}", s.String())

	grew := s.Update(NewTypeSet(Str, Float))
	assert.True(t, grew)
	assert.False(t, s.Update(NewTypeSet(Int)))
	assert.Equal(t, "{float, int, str}", s.String())
}

func TestTypeSetAnyAbsorbs(t *testing.T) {
	cases := []*TypeSet{
		NewTypeSet(),
		NewTypeSet(Int),
		NewTypeSet(Int, Str, NewContainer(ListKind, NewTypeSet(Float))),
	}
	for _, s := range cases {
		t.Run(s.String(), func(t *testing.T) {
			u := s.Copy()
			u.Update(NewTypeSet(Any))
			r := u.Realize()
			assert.True(t, r.IsAny())
			assert.Equal(t, 1, r.Len())
			assert.Equal(t, "Any", u.String())
		})
	}
}

func TestTypeSetCopyIsIndependent(t *testing.T) {
	s := NewTypeSet(Int)
	cp := s.Copy()
	cp.Add(Str)
	assert.Equal(t, "int", s.String())
	assert.Equal(t, "{int, str}", cp.String())
}

func TestRecursionSentinelIsEmpty(t *testing.T) {
	s := RecursionSentinel()
	assert.True(t, s.IsSentinel())
	assert.True(t, s.IsEmpty())
	assert.False(t, s.Realize().IsAny())
	assert.Equal(t, "{}", s.String())

	u := NewTypeSet(Int)
	assert.False(t, u.Update(s))
	assert.Equal(t, "int", u.String())
}

func TestMutableContainersStayDistinct(t *testing.T) {
	a := NewContainer(ListKind, NewTypeSet(Int))
	b := NewContainer(ListKind, NewTypeSet(Int))
	s := NewTypeSet(a)
	assert.True(t, s.Add(b))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "list[int]", s.String())

	ta, tb := NewTuple(NewTypeSet(Int)), NewTuple(NewTypeSet(Int))
	tuples := NewTypeSet(ta)
	assert.False(t, tuples.Add(tb))

	la, lb := NewContainer(ListKind, NewTypeSet()), NewContainer(ListKind, NewTypeSet())
	holding := NewTypeSet(NewTuple(NewTypeSet(la)))
	assert.True(t, holding.Add(NewTuple(NewTypeSet(lb))), "tuples of distinct lists stay distinct")
	lb.Contents.Add(Int)
	assert.Equal(t, "{tuple[list[]], tuple[list[int]]}", holding.String())

	frozen := NewTypeSet(NewContainer(FrozenSetKind, NewTypeSet(NewTuple(NewTypeSet(la)))))
	assert.True(t, frozen.Add(NewContainer(FrozenSetKind, NewTypeSet(NewTuple(NewTypeSet(lb))))))
}

func TestRealizedEquality(t *testing.T) {
	a := NewTypeSet(Int, Str).Realize()
	b := NewTypeSet(Str, Int, Int).Realize()
	assert.True(t, a.Equal(b))
	assert.Equal(t, []string{"int", "str"}, a.Names())
	assert.False(t, a.Equal(NewTypeSet(Int).Realize()))

	single, ok := NewTypeSet(Float).Realize().Single()
	assert.True(t, ok)
	assert.Equal(t, Float, single)
}

func TestContainerStrings(t *testing.T) {
	cases := []struct {
		name string
		typ  Type
		want string
	}{
		{"empty list", NewContainer(ListKind, nil), "list[]"},
		{"list", NewContainer(ListKind, NewTypeSet(Int, Str)), "list[{int, str}]"},
		{"tuple", NewTuple(NewTypeSet(Int), NewTypeSet(Str)), "tuple[int, str]"},
		{"dict", NewMapping(NewTypeSet(Str), NewTypeSet(Int)), "dict[str, int]"},
		{"generator", NewGenerator(NewTypeSet(Int)), "generator[int]"},
		{"none", None, "None"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.typ.String())
		})
	}
}
