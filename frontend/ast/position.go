package ast

import (
	"fmt"
	"go/token"
)

// Positioner is anything that occupies a stretch of a source file registered in a token.FileSet
type Positioner interface {
	Pos() token.Pos // first character
	End() token.Pos // first character after
}

// Range is the half-open stretch [PosStart, PosEnd) of a source file.
// Nodes embed it to implement Positioner.
type Range struct {
	PosStart token.Pos
	PosEnd   token.Pos
}

func (r Range) Pos() token.Pos { return r.PosStart }
func (r Range) End() token.Pos { return r.PosEnd }

// IsValid reports whether the range points into a source file
func (r Range) IsValid() bool { return r.PosStart.IsValid() }

func (r Range) String() string {
	if !r.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", r.PosStart, r.PosEnd)
}

// RangeBetween spans from the start of first to the end of last
func RangeBetween(first, last Positioner) Range {
	return Range{PosStart: first.Pos(), PosEnd: last.End()}
}

// RangeOf returns the Range p occupies, or the zero Range for a nil p
func RangeOf(p Positioner) Range {
	switch p := p.(type) {
	case nil:
		return Range{}
	case Range:
		return p
	case *Range:
		return *p
	default:
		return Range{PosStart: p.Pos(), PosEnd: p.End()}
	}
}
