package types

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	"github.com/PiJoules/python-type-inference-sub000/internal/log"
	"github.com/hashicorp/go-set/v3"
	"go/token"
	"log/slog"
)

// State is shared by every Environment created during a single inference run.
// It is not concurrency safe
type State struct {
	// callStack holds the IDs of the Functions and Classes currently being evaluated,
	// used to detect reentrant calls
	callStack *set.Set[uint64]

	// definitions maps a definition node to the Type it produced,
	// so that re-evaluating a body reuses the same Function or Class
	definitions map[ast.Node]Type

	// modules caches imported modules by their dotted name
	modules map[string]*Module

	// builtinClasses are the exception classes and object, created once per run
	builtinClasses map[string]*Class
	// builtinNames are the names a root Environment starts with
	builtinNames *set.Set[string]

	resolver Resolver
	fset     *token.FileSet
	fileName string
	logger   *slog.Logger
}

// Option configures the State created by CreateRootEnvironment
type Option func(*State)

// WithResolver sets how import statements find modules.
// Without one, only the builtin modules can be imported
func WithResolver(r Resolver) Option {
	return func(s *State) { s.resolver = r }
}

// WithLogger replaces the logger used during inference
func WithLogger(l *slog.Logger) Option {
	return func(s *State) { s.logger = l }
}

// WithFileSet sets the file set that positions in parsed source refer to
func WithFileSet(fset *token.FileSet) Option {
	return func(s *State) { s.fset = fset }
}

// WithFileName sets the name ParseCode registers its source under
func WithFileName(name string) Option {
	return func(s *State) { s.fileName = name }
}

func newState(opts ...Option) *State {
	s := &State{
		callStack:      set.New[uint64](8),
		definitions:    make(map[ast.Node]Type),
		modules:        make(map[string]*Module),
		builtinClasses: make(map[string]*Class),
		builtinNames:   set.New[string](128),
		fileName:       "__main__.py",
		logger:         log.DefaultLogger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fset == nil {
		s.fset = token.NewFileSet()
	}
	s.logger = ast.NodeLogger(s.logger).With("section", "inference")
	if s.resolver == nil {
		s.resolver = BuiltinResolver{}
	}
	return s
}

// FileSet returns the file set positions of errors refer to
func (s *State) FileSet() *token.FileSet { return s.fset }

// IsBuiltinName reports whether name is one of the names a root Environment starts with
func (s *State) IsBuiltinName(name string) bool { return s.builtinNames.Contains(name) }

func (s *State) onStack(id uint64) bool { return s.callStack.Contains(id) }

// enter pushes id onto the call stack and returns the func popping it
func (s *State) enter(id uint64) func() {
	s.callStack.Insert(id)
	return func() { s.callStack.Remove(id) }
}
