package ast

// Arg is a single declared parameter
type Arg struct {
	Range
	Name       string
	Annotation Expr
}

// Arguments is the declared signature of a function or lambda.
//
// Defaults line up with the last len(Defaults) entries of PosOnly followed by Args.
// KwDefaults is parallel to KwOnly, with nil for keyword-only parameters without a default.
type Arguments struct {
	Range
	PosOnly    []Arg
	Args       []Arg
	Vararg     *Arg
	KwOnly     []Arg
	KwDefaults []Expr
	Kwarg      *Arg
	Defaults   []Expr
}

type FunctionDef struct {
	Range
	Name       string
	Args       *Arguments
	Body       []Stmt
	Decorators []Expr
	Returns    Expr
	IsAsync    bool
}

type ClassDef struct {
	Range
	Name       string
	Bases      []Expr
	Keywords   []Keyword
	Body       []Stmt
	Decorators []Expr
}

// Return may have a nil Value
type Return struct {
	Range
	Value Expr
}

type Delete struct {
	Range
	Targets []Expr
}

// Assign holds several Targets for chained assignments like `a = b = 1`
type Assign struct {
	Range
	Targets []Expr
	Value   Expr
}

type AugAssign struct {
	Range
	Target Expr
	Op     Operator
	Value  Expr
}

// AnnAssign may have a nil Value, like in `x: int`
type AnnAssign struct {
	Range
	Target     Expr
	Annotation Expr
	Value      Expr
}

type For struct {
	Range
	Target  Expr
	Iter    Expr
	Body    []Stmt
	OrElse  []Stmt
	IsAsync bool
}

type While struct {
	Range
	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

// If holds elif chains as a nested If in OrElse
type If struct {
	Range
	Test   Expr
	Body   []Stmt
	OrElse []Stmt
}

type WithItem struct {
	Range
	ContextExpr  Expr
	OptionalVars Expr
}

type With struct {
	Range
	Items   []WithItem
	Body    []Stmt
	IsAsync bool
}

type Raise struct {
	Range
	Exc   Expr
	Cause Expr
}

// ExceptHandler has a nil Type for a bare `except:`, and an empty Name without `as`
type ExceptHandler struct {
	Range
	Type Expr
	Name string
	Body []Stmt
}

type Try struct {
	Range
	Body      []Stmt
	Handlers  []ExceptHandler
	OrElse    []Stmt
	FinalBody []Stmt
}

type Assert struct {
	Range
	Test Expr
	Msg  Expr
}

// Alias is `Name as AsName` in imports; AsName may be empty
type Alias struct {
	Range
	Name   string
	AsName string
}

type Import struct {
	Range
	Names []Alias
}

// ImportFrom is `from Module import Names`. Level counts leading dots of relative imports
// and a single Alias named "*" stands for a star import
type ImportFrom struct {
	Range
	Module string
	Names  []Alias
	Level  int
}

type Global struct {
	Range
	Names []string
}

type Nonlocal struct {
	Range
	Names []string
}

type ExprStmt struct {
	Range
	Value Expr
}

type Pass struct{ Range }

type Break struct{ Range }

type Continue struct{ Range }

func (*FunctionDef) stmtNode() {}
func (*ClassDef) stmtNode()    {}
func (*Return) stmtNode()      {}
func (*Delete) stmtNode()      {}
func (*Assign) stmtNode()      {}
func (*AugAssign) stmtNode()   {}
func (*AnnAssign) stmtNode()   {}
func (*For) stmtNode()         {}
func (*While) stmtNode()       {}
func (*If) stmtNode()          {}
func (*With) stmtNode()        {}
func (*Raise) stmtNode()       {}
func (*Try) stmtNode()         {}
func (*Assert) stmtNode()      {}
func (*Import) stmtNode()      {}
func (*ImportFrom) stmtNode()  {}
func (*Global) stmtNode()      {}
func (*Nonlocal) stmtNode()    {}
func (*ExprStmt) stmtNode()    {}
func (*Pass) stmtNode()        {}
func (*Break) stmtNode()       {}
func (*Continue) stmtNode()    {}

func (*FunctionDef) Describe() string { return "FunctionDef" }
func (*ClassDef) Describe() string    { return "ClassDef" }
func (*Return) Describe() string      { return "Return" }
func (*Delete) Describe() string      { return "Delete" }
func (*Assign) Describe() string      { return "Assign" }
func (*AugAssign) Describe() string   { return "AugAssign" }
func (*AnnAssign) Describe() string   { return "AnnAssign" }
func (*For) Describe() string         { return "For" }
func (*While) Describe() string       { return "While" }
func (*If) Describe() string          { return "If" }
func (*With) Describe() string        { return "With" }
func (*Raise) Describe() string       { return "Raise" }
func (*Try) Describe() string         { return "Try" }
func (*Assert) Describe() string      { return "Assert" }
func (*Import) Describe() string      { return "Import" }
func (*ImportFrom) Describe() string  { return "ImportFrom" }
func (*Global) Describe() string      { return "Global" }
func (*Nonlocal) Describe() string    { return "Nonlocal" }
func (*ExprStmt) Describe() string    { return "ExprStmt" }
func (*Pass) Describe() string        { return "Pass" }
func (*Break) Describe() string       { return "Break" }
func (*Continue) Describe() string    { return "Continue" }
