package ast

// Operator is a binary arithmetic or bitwise operator
type Operator int

const (
	Add Operator = iota
	Sub
	Mult
	MatMult
	Div
	Mod
	Pow
	LShift
	RShift
	BitOr
	BitXor
	BitAnd
	FloorDiv
)

var operatorSymbols = [...]string{
	Add:      "+",
	Sub:      "-",
	Mult:     "*",
	MatMult:  "@",
	Div:      "/",
	Mod:      "%",
	Pow:      "**",
	LShift:   "<<",
	RShift:   ">>",
	BitOr:    "|",
	BitXor:   "^",
	BitAnd:   "&",
	FloorDiv: "//",
}

func (o Operator) String() string { return operatorSymbols[o] }

// OperatorFromSymbol returns the Operator spelled as sym, accepting
// both the plain ("+") and augmented ("+=") forms
func OperatorFromSymbol(sym string) (Operator, bool) {
	if len(sym) > 1 && sym[len(sym)-1] == '=' {
		sym = sym[:len(sym)-1]
	}
	for op, s := range operatorSymbols {
		if s == sym {
			return Operator(op), true
		}
	}
	return 0, false
}

type UnaryOperator int

const (
	Invert UnaryOperator = iota
	Not
	UAdd
	USub
)

func (o UnaryOperator) String() string {
	switch o {
	case Invert:
		return "~"
	case Not:
		return "not "
	case UAdd:
		return "+"
	default:
		return "-"
	}
}

type BoolOperator int

const (
	And BoolOperator = iota
	Or
)

func (o BoolOperator) String() string {
	if o == And {
		return "and"
	}
	return "or"
}

// CmpOp is a comparison operator, which can be chained
type CmpOp int

const (
	Eq CmpOp = iota
	NotEq
	Lt
	LtE
	Gt
	GtE
	Is
	IsNot
	In
	NotIn
)

var cmpSymbols = [...]string{
	Eq:    "==",
	NotEq: "!=",
	Lt:    "<",
	LtE:   "<=",
	Gt:    ">",
	GtE:   ">=",
	Is:    "is",
	IsNot: "is not",
	In:    "in",
	NotIn: "not in",
}

func (o CmpOp) String() string { return cmpSymbols[o] }

func CmpOpFromSymbol(sym string) (CmpOp, bool) {
	if sym == "<>" {
		return NotEq, true
	}
	for op, s := range cmpSymbols {
		if s == sym {
			return CmpOp(op), true
		}
	}
	return 0, false
}
