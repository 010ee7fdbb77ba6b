package types

import (
	"github.com/PiJoules/python-type-inference-sub000/frontend/ast"
	"github.com/PiJoules/python-type-inference-sub000/parser"
)

// ParseCode parses src as the source of the file this Environment was created for,
// then infers it
func (env *Environment) ParseCode(src []byte) error {
	mod, err := parser.ParseModule(env.fset, env.fileName, src)
	if err != nil {
		return err
	}
	return env.Infer(mod)
}

// Infer evaluates every statement of mod in env. The first error aborts inference,
// leaving the bindings made so far in place
func (env *Environment) Infer(mod *ast.Module) error {
	env.log().Info("inferring module", "module", mod.Name, "statements", len(mod.Body))
	if err := env.evalBody(mod.Body); err != nil {
		env.log().Debug("inference failed", "module", mod.Name, "err", err)
		return err
	}
	return nil
}
