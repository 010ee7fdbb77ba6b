package types

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	"github.com/PiJoules/python-type-inference-sub000/frontend/ilerr"
	"strings"
)

// Resolution is the source of a module found by a Resolver
type Resolution struct {
	Syntax *ast.Module
	// Path is the file the module was read from, empty for builtin modules
	Path string
	// IsPackage is set for __init__.py files, which relative imports resolve against
	IsPackage bool
}

// Resolver finds modules by their dotted name. When it cannot, it returns an error,
// ideally an ilerr.NewImportNotFound
type Resolver interface {
	Resolve(name string) (Resolution, error)
}

// BuiltinResolver only knows the builtin modules
type BuiltinResolver struct{}

func (BuiltinResolver) Resolve(name string) (Resolution, error) {
	if mod, ok := BuiltinModule(name); ok {
		return Resolution{Syntax: mod, IsPackage: builtinPackages.Contains(name)}, nil
	}
	return Resolution{}, ilerr.New(ilerr.NewImportNotFound{Positioner: ast.Range{}, Module: name})
}

// importModule infers the module called name, once per State. The module is cached
// before its body is evaluated, so that import cycles see a partially bound module
func (env *Environment) importModule(name string) (*Module, error) {
	if m, ok := env.modules[name]; ok {
		return m, nil
	}
	res, err := env.resolver.Resolve(name)
	if err != nil {
		if _, ok := ilerr.As(err); !ok {
			err = ilerr.New(ilerr.Unclassified{Positioner: ast.Range{}, From: err})
		}
		return nil, err
	}
	modEnv := env.State.newModuleEnvironment(name, res.IsPackage, res.Path)
	m := newModule(name, modEnv)
	env.modules[name] = m
	env.log().Info("importing module", "module", name, "path", res.Path)
	if err := modEnv.evalBody(res.Syntax.Body); err != nil {
		return nil, err
	}
	return m, nil
}

// importDotted imports every prefix of a dotted name, binding each submodule in its parent.
// It returns the outermost and innermost modules
func (env *Environment) importDotted(name string) (top, leaf *Module, err error) {
	parts := strings.Split(name, ".")
	for i := range parts {
		m, err := env.importModule(strings.Join(parts[:i+1], "."))
		if err != nil {
			return nil, nil, err
		}
		if leaf != nil {
			leaf.env.Bind(parts[i], NewTypeSet(m))
		} else {
			top = m
		}
		leaf = m
	}
	return top, leaf, nil
}

func (env *Environment) evalImport(s *ast.Import) error {
	for _, alias := range s.Names {
		top, leaf, err := env.importDotted(alias.Name)
		if err != nil {
			return positionErr(err, s)
		}
		if alias.AsName != "" {
			env.Bind(alias.AsName, NewTypeSet(leaf))
			continue
		}
		env.Bind(top.name, NewTypeSet(top))
	}
	return nil
}

func (env *Environment) evalImportFrom(s *ast.ImportFrom) error {
	name, err := env.absoluteModuleName(s.Module, s.Level)
	if err != nil {
		return err
	}
	_, m, err := env.importDotted(name)
	if err != nil {
		return err
	}
	for _, alias := range s.Names {
		if alias.Name == "*" {
			env.importStar(m)
			continue
		}
		bound := alias.AsName
		if bound == "" {
			bound = alias.Name
		}
		if ts, ok := m.env.lookupLocal(alias.Name); ok {
			env.Bind(bound, ts)
			continue
		}
		sub, err := env.importModule(name + "." + alias.Name)
		if err != nil {
			if ilerr.CodeOf(err) == ilerr.ImportNotFound {
				return ilerr.New(ilerr.NewImportNotFound{Positioner: alias.Range, Module: name + "." + alias.Name})
			}
			return positionErr(err, s)
		}
		m.env.Bind(alias.Name, NewTypeSet(sub))
		env.Bind(bound, NewTypeSet(sub))
	}
	return nil
}

// importStar binds every public name of m that is not a builtin
func (env *Environment) importStar(m *Module) {
	for _, name := range m.env.Names() {
		if strings.HasPrefix(name, "_") || env.IsBuiltinName(name) {
			continue
		}
		ts, _ := m.env.lookupLocal(name)
		env.Bind(name, ts)
	}
}

// absoluteModuleName resolves the leading dots of a relative import against the
// package of the module being evaluated
func (env *Environment) absoluteModuleName(module string, level int) (string, error) {
	if level == 0 {
		return module, nil
	}
	notFound := ilerr.New(ilerr.NewImportNotFound{Positioner: ast.Range{}, Module: strings.Repeat(".", level) + module})
	scope := env.module()
	pkg := scope.modName
	if !scope.isPackage {
		pkg = parentPackage(pkg)
	}
	for i := 1; i < level; i++ {
		if pkg == "" {
			return "", notFound
		}
		pkg = parentPackage(pkg)
	}
	switch {
	case pkg == "":
		return "", notFound
	case module == "":
		return pkg, nil
	}
	return pkg + "." + module, nil
}

func parentPackage(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return ""
}
