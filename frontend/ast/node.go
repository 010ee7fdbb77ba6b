package ast

// Node is the base interface for all AST nodes.
//
// The set of nodes is closed: every Expr and Stmt implementation lives in this package,
// and consumers are expected to switch over them exhaustively.
type Node interface {
	Positioner
	// Describe returns the grammar name of the node, like "FunctionDef"
	Describe() string
}

// Expr is the interface for all expression nodes in the AST.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// Stmt is the interface for all statement nodes in the AST.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// Module is the root of a parsed source file
type Module struct {
	Range
	// Name is the dotted import name of the module, or the file name for the main module
	Name string
	Body []Stmt
}

func (m *Module) Describe() string { return "Module" }

// Unsupported stands for a syntactic construct the parser recognised
// but which has no representation in this grammar, like a match statement.
// It is both an Expr and a Stmt so that it can replace either.
type Unsupported struct {
	Range
	What string
}

func (*Unsupported) exprNode()          {}
func (*Unsupported) stmtNode()          {}
func (u *Unsupported) Describe() string { return "Unsupported(" + u.What + ")" }
