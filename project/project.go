// Package project finds the Python modules a program imports and loads programs from disk
package project

import (
	"go/token"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PiJoules/python-type-inference-sub000/frontend/types"
	"github.com/PiJoules/python-type-inference-sub000/internal/config"
	"github.com/PiJoules/python-type-inference-sub000/internal/log"
	"github.com/PiJoules/python-type-inference-sub000/parser"
	"github.com/pkg/errors"
)

var logger = log.DefaultLogger.With("section", "resolver")

// FSResolver resolves dotted module names to `name.py` or `name/__init__.py`
// files of an fs.FS, trying each search path in order. Names found nowhere
// fall back to the builtin modules.
type FSResolver struct {
	fsys        fs.FS
	searchPaths []string
	fset        *token.FileSet
}

// NewFSResolver returns a resolver over fsys. Parsed files are registered in fset.
// Search paths are slash-separated directories of fsys, and "." is used when none is given
func NewFSResolver(fsys fs.FS, fset *token.FileSet, searchPaths ...string) *FSResolver {
	r := &FSResolver{fsys: fsys, fset: fset}
	for _, dir := range searchPaths {
		dir = path.Clean(filepath.ToSlash(dir))
		if !fs.ValidPath(dir) {
			logger.Warn("ignoring search path outside of the project", "path", dir)
			continue
		}
		r.searchPaths = append(r.searchPaths, dir)
	}
	if len(r.searchPaths) == 0 {
		r.searchPaths = []string{"."}
	}
	return r
}

type candidate struct {
	file      string
	isPackage bool
}

func (r *FSResolver) candidates(name string) []candidate {
	rel := strings.ReplaceAll(name, ".", "/")
	var ret []candidate
	for _, dir := range r.searchPaths {
		ret = append(ret,
			candidate{file: path.Join(dir, rel+".py")},
			candidate{file: path.Join(dir, rel, "__init__.py"), isPackage: true},
		)
	}
	return ret
}

// Resolve implements types.Resolver. Syntax errors in the module found are
// returned as they are, I/O failures are wrapped
func (r *FSResolver) Resolve(name string) (types.Resolution, error) {
	for _, c := range r.candidates(name) {
		src, err := fs.ReadFile(r.fsys, c.file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return types.Resolution{}, errors.Wrapf(err, "resolve module %s", name)
		}
		logger.Debug("found module", "module", name, "file", c.file, "package", c.isPackage)
		mod, err := parser.ParseModule(r.fset, c.file, src)
		if err != nil {
			return types.Resolution{}, err
		}
		mod.Name = name
		return types.Resolution{Syntax: mod, Path: c.file, IsPackage: c.isPackage}, nil
	}
	logger.Debug("module not on search path", "module", name, "searchPaths", r.searchPaths)
	return types.BuiltinResolver{}.Resolve(name)
}

// LoadFile infers the Python file at file as the __main__ module. Imports are looked up
// in the directory of the file, then in the search paths of cfg relative to it.
//
// The returned Environment holds the bindings inferred so far even when an error is returned,
// and is nil only when the file could not be read
func LoadFile(file string, cfg *config.Config) (*types.Environment, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	src, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", file)
	}

	fset := token.NewFileSet()
	searchPaths := append([]string{"."}, cfg.SearchPaths...)
	resolver := NewFSResolver(os.DirFS(filepath.Dir(file)), fset, searchPaths...)
	env := types.CreateRootEnvironment(
		types.WithResolver(resolver),
		types.WithFileSet(fset),
		types.WithFileName(file),
	)
	logger.Info("loading file", "file", file, "searchPaths", resolver.searchPaths)
	return env, env.ParseCode(src)
}
