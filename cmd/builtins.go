package cmd

import (
	"fmt"
	"strings"

	"github.com/PiJoules/python-type-inference-sub000/frontend/types"
	"github.com/spf13/cobra"
)

var BuiltinsCmd = &cobra.Command{
	Use:          "builtins",
	Short:        "List the builtin names and modules the inference knows about",
	RunE:         runBuiltins,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

func runBuiltins(cmd *cobra.Command, _ []string) error {
	env := types.CreateRootEnvironment()
	out := cmd.OutOrStdout()
	for _, name := range env.Names() {
		if !env.IsBuiltinName(name) || strings.HasPrefix(name, "__") {
			continue
		}
		ts, err := env.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s\n", name, ts)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "modules:")
	for _, name := range types.BuiltinModuleNames() {
		fmt.Fprintln(out, "  "+name)
	}
	return nil
}
