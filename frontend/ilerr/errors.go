package ilerr

import (
	"fmt"
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include the frame that created them when printed
var enableDebugErrorPrinting = false

const enableDebugFullStacktrace bool = false

// SetDebugPrinting toggles printing the creating frame in FormatWithCode
func SetDebugPrinting(enabled bool) {
	enableDebugErrorPrinting = enabled
}

type ErrCode int

const (
	None ErrCode = iota
	Parse
	UnsupportedConstruct
	UndefinedVariable
	TypeMismatch
	UnpackingArity
	SignatureArity
	MissingAttribute
	ImportNotFound
)

// IleError is a fatal inference failure attributed to a place in the source
type IleError interface {
	Error() string
	Code() ErrCode
	ast.Positioner

	withStack([]byte) IleError
	getStack() []byte
}

func FormatWithCode(e IleError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			lines := strings.Split(stack, "\n")
			if len(lines) > 6 {
				stack = strings.TrimSpace(lines[6])
			}
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E IleError](err E) IleError {
	return err.withStack(debug.Stack())
}

// WithRange returns err positioned at r, unless err already carries a valid position
func WithRange(err IleError, r ast.Positioner) IleError {
	if r == nil {
		return err
	}
	rng := ast.RangeOf(r)
	switch e := err.(type) {
	case NewUndefinedVariable:
		if !positioned(e.Positioner) {
			e.Positioner = rng
		}
		return e
	case NewMissingAttribute:
		if !positioned(e.Positioner) {
			e.Positioner = rng
		}
		return e
	case NewTypeMismatch:
		if !positioned(e.Positioner) {
			e.Positioner = rng
		}
		return e
	case NewSignatureArity:
		if !positioned(e.Positioner) {
			e.Positioner = rng
		}
		return e
	case NewUnpackingArity:
		if !positioned(e.Positioner) {
			e.Positioner = rng
		}
		return e
	case NewUnsupportedConstruct:
		if !positioned(e.Positioner) {
			e.Positioner = rng
		}
		return e
	case NewImportNotFound:
		if !positioned(e.Positioner) {
			e.Positioner = rng
		}
		return e
	}
	return err
}

func positioned(p ast.Positioner) bool {
	return p != nil && p.Pos().IsValid()
}

type Unclassified struct {
	From error
	ast.Positioner
	stack []byte
}

func (e Unclassified) Error() string {
	return fmt.Sprintf("unclassified error: %v", e.From)
}
func (e Unclassified) Code() ErrCode    { return None }
func (e Unclassified) Unwrap() error    { return e.From }
func (e Unclassified) getStack() []byte { return e.stack }
func (e Unclassified) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewParse struct {
	ast.Positioner
	ParserMessage string
	Line, Column  int
	stack         []byte
}

func (e NewParse) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.ParserMessage)
}
func (e NewParse) Code() ErrCode    { return Parse }
func (e NewParse) getStack() []byte { return e.stack }
func (e NewParse) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUnsupportedConstruct struct {
	ast.Positioner
	What  string
	stack []byte
}

func (e NewUnsupportedConstruct) Code() ErrCode { return UnsupportedConstruct }
func (e NewUnsupportedConstruct) Error() string {
	return fmt.Sprintf("unsupported construct: %s", e.What)
}
func (e NewUnsupportedConstruct) getStack() []byte { return e.stack }
func (e NewUnsupportedConstruct) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUndefinedVariable struct {
	ast.Positioner
	Name  string
	stack []byte
}

func (e NewUndefinedVariable) Code() ErrCode { return UndefinedVariable }
func (e NewUndefinedVariable) Error() string {
	return fmt.Sprintf("variable '%s' is not defined", e.Name)
}
func (e NewUndefinedVariable) getStack() []byte { return e.stack }
func (e NewUndefinedVariable) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

// NewTypeMismatch is an operand outside of the kinds an operator or method accepts
type NewTypeMismatch struct {
	ast.Positioner
	// Operation is the method or operator that rejected the operand, like '__truediv__'
	Operation string
	Expected  []string
	Found     string
	stack     []byte
}

func (e NewTypeMismatch) Code() ErrCode { return TypeMismatch }
func (e NewTypeMismatch) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("type mismatch: '%s' does not support '%s'", e.Operation, e.Found)
	}
	return fmt.Sprintf("type mismatch: '%s' expected one of [%s], but found '%s'", e.Operation, strings.Join(e.Expected, ", "), e.Found)
}
func (e NewTypeMismatch) getStack() []byte { return e.stack }
func (e NewTypeMismatch) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewUnpackingArity struct {
	ast.Positioner
	Targets int
	Values  int
	stack   []byte
}

func (e NewUnpackingArity) Code() ErrCode { return UnpackingArity }
func (e NewUnpackingArity) Error() string {
	return fmt.Sprintf("cannot unpack %d values into %d targets", e.Values, e.Targets)
}
func (e NewUnpackingArity) getStack() []byte { return e.stack }
func (e NewUnpackingArity) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewSignatureArity struct {
	ast.Positioner
	Callee string
	Reason string
	stack  []byte
}

func (e NewSignatureArity) Code() ErrCode { return SignatureArity }
func (e NewSignatureArity) Error() string {
	return fmt.Sprintf("cannot call '%s': %s", e.Callee, e.Reason)
}
func (e NewSignatureArity) getStack() []byte { return e.stack }
func (e NewSignatureArity) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewMissingAttribute struct {
	ast.Positioner
	Owner string
	Name  string
	stack []byte
}

func (e NewMissingAttribute) Code() ErrCode { return MissingAttribute }
func (e NewMissingAttribute) Error() string {
	return fmt.Sprintf("'%s' has no attribute '%s'", e.Owner, e.Name)
}
func (e NewMissingAttribute) getStack() []byte { return e.stack }
func (e NewMissingAttribute) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}

type NewImportNotFound struct {
	ast.Positioner
	Module string
	stack  []byte
}

func (e NewImportNotFound) Code() ErrCode { return ImportNotFound }
func (e NewImportNotFound) Error() string {
	return fmt.Sprintf("no module named '%s'", e.Module)
}
func (e NewImportNotFound) getStack() []byte { return e.stack }
func (e NewImportNotFound) withStack(stack []byte) IleError {
	e.stack = stack
	return e
}
