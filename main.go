package main

import (
	"os"

	"github.com/PiJoules/python-type-inference-sub000/cmd"
	"github.com/spf13/cobra"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "pyinfer [subcommand]",
	Short:        "pyinfer\n flow-insensitive type inference for Python sources",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.InferCmd)
	rootCmd.AddCommand(cmd.BuiltinsCmd)
}
