package ast

// LiteralKind discriminates the constant a Literal holds
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	ComplexLit
	StringLit
	BytesLit
	BoolLit
	NoneLit
	EllipsisLit
)

func (k LiteralKind) String() string {
	switch k {
	case IntLit:
		return "int"
	case FloatLit:
		return "float"
	case ComplexLit:
		return "complex"
	case StringLit:
		return "str"
	case BytesLit:
		return "bytes"
	case BoolLit:
		return "bool"
	case NoneLit:
		return "None"
	default:
		return "Ellipsis"
	}
}

// Literal is a constant as written in the source,
// Value holds its source text
type Literal struct {
	Range
	Kind  LiteralKind
	Value string
}

// FormattedString is an f-string; Values are the interpolated expressions
type FormattedString struct {
	Range
	Values []Expr
}

type Name struct {
	Range
	Id string
}

type BinOp struct {
	Range
	Left  Expr
	Op    Operator
	Right Expr
}

type UnaryOp struct {
	Range
	Op      UnaryOperator
	Operand Expr
}

type BoolOp struct {
	Range
	Op     BoolOperator
	Values []Expr
}

// Compare is a possibly chained comparison like `a < b <= c`,
// where len(Ops) == len(Comparators)
type Compare struct {
	Range
	Left        Expr
	Ops         []CmpOp
	Comparators []Expr
}

// Keyword is a `name=value` argument at a call site, or a `**value`
// argument when Arg is empty
type Keyword struct {
	Range
	Arg   string
	Value Expr
}

// Call holds positional arguments in Args, which may include *Starred
type Call struct {
	Range
	Func     Expr
	Args     []Expr
	Keywords []Keyword
}

type Attribute struct {
	Range
	Value Expr
	Attr  string
}

type Subscript struct {
	Range
	Value Expr
	Slice Expr
}

// Slice is `lower:upper:step`, and any of them may be nil
type Slice struct {
	Range
	Lower, Upper, Step Expr
}

type Starred struct {
	Range
	Value Expr
}

type List struct {
	Range
	Elts []Expr
}

type Tuple struct {
	Range
	Elts []Expr
}

type Set struct {
	Range
	Elts []Expr
}

// Dict holds parallel Keys and Values. A nil key means `**value`
type Dict struct {
	Range
	Keys   []Expr
	Values []Expr
}

// IfExp is `Body if Test else OrElse`
type IfExp struct {
	Range
	Test, Body, OrElse Expr
}

type Lambda struct {
	Range
	Args *Arguments
	Body Expr
}

// Comprehension is a single `for Target in Iter if ...` clause
type Comprehension struct {
	Range
	Target  Expr
	Iter    Expr
	Ifs     []Expr
	IsAsync bool
}

type ListComp struct {
	Range
	Elt        Expr
	Generators []Comprehension
}

type SetComp struct {
	Range
	Elt        Expr
	Generators []Comprehension
}

type DictComp struct {
	Range
	Key, Value Expr
	Generators []Comprehension
}

type GeneratorExp struct {
	Range
	Elt        Expr
	Generators []Comprehension
}

// Yield may have a nil Value
type Yield struct {
	Range
	Value Expr
}

type YieldFrom struct {
	Range
	Value Expr
}

type Await struct {
	Range
	Value Expr
}

// NamedExpr is `Target := Value`
type NamedExpr struct {
	Range
	Target Expr
	Value  Expr
}

func (*Literal) exprNode()         {}
func (*FormattedString) exprNode() {}
func (*Name) exprNode()            {}
func (*BinOp) exprNode()           {}
func (*UnaryOp) exprNode()         {}
func (*BoolOp) exprNode()          {}
func (*Compare) exprNode()         {}
func (*Call) exprNode()            {}
func (*Attribute) exprNode()       {}
func (*Subscript) exprNode()       {}
func (*Slice) exprNode()           {}
func (*Starred) exprNode()         {}
func (*List) exprNode()            {}
func (*Tuple) exprNode()           {}
func (*Set) exprNode()             {}
func (*Dict) exprNode()            {}
func (*IfExp) exprNode()           {}
func (*Lambda) exprNode()          {}
func (*ListComp) exprNode()        {}
func (*SetComp) exprNode()         {}
func (*DictComp) exprNode()        {}
func (*GeneratorExp) exprNode()    {}
func (*Yield) exprNode()           {}
func (*YieldFrom) exprNode()       {}
func (*Await) exprNode()           {}
func (*NamedExpr) exprNode()       {}

func (*Literal) Describe() string         { return "Literal" }
func (*FormattedString) Describe() string { return "FormattedString" }
func (*Name) Describe() string            { return "Name" }
func (*BinOp) Describe() string           { return "BinOp" }
func (*UnaryOp) Describe() string         { return "UnaryOp" }
func (*BoolOp) Describe() string          { return "BoolOp" }
func (*Compare) Describe() string         { return "Compare" }
func (*Call) Describe() string            { return "Call" }
func (*Attribute) Describe() string       { return "Attribute" }
func (*Subscript) Describe() string       { return "Subscript" }
func (*Slice) Describe() string           { return "Slice" }
func (*Starred) Describe() string         { return "Starred" }
func (*List) Describe() string            { return "List" }
func (*Tuple) Describe() string           { return "Tuple" }
func (*Set) Describe() string             { return "Set" }
func (*Dict) Describe() string            { return "Dict" }
func (*IfExp) Describe() string           { return "IfExp" }
func (*Lambda) Describe() string          { return "Lambda" }
func (*ListComp) Describe() string        { return "ListComp" }
func (*SetComp) Describe() string         { return "SetComp" }
func (*DictComp) Describe() string        { return "DictComp" }
func (*GeneratorExp) Describe() string    { return "GeneratorExp" }
func (*Yield) Describe() string           { return "Yield" }
func (*YieldFrom) Describe() string       { return "YieldFrom" }
func (*Await) Describe() string           { return "Await" }
func (*NamedExpr) Describe() string       { return "NamedExpr" }
