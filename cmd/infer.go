package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/PiJoules/python-type-inference-sub000/frontend/ilerr"
	"github.com/PiJoules/python-type-inference-sub000/frontend/types"
	"github.com/PiJoules/python-type-inference-sub000/internal/config"
	"github.com/PiJoules/python-type-inference-sub000/internal/log"
	"github.com/PiJoules/python-type-inference-sub000/project"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var InferCmd = &cobra.Command{
	Use:          "infer file.py",
	Short:        "Infer the types of the module-level names of a Python file",
	RunE:         runInfer,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	configPath *string
	logLevel   *string
	showAll    *bool
)

var logger = log.DefaultLogger.With("section", "cli")

func init() {
	configPath = InferCmd.Flags().StringP("config", "c", "", "path of the config file, defaults to "+config.FileName+" next to the inferred file")
	logLevel = InferCmd.Flags().StringP("log-level", "l", "", "one of debug, info, warn, error; overrides the config file")
	showAll = InferCmd.Flags().BoolP("all", "a", false, "also report the builtin names")
}

func runInfer(cmd *cobra.Command, args []string) error {
	target, err := filepath.Abs(args[0])
	if err != nil {
		return errors.Wrap(err, "could not get absolute path of target")
	}

	cfg, err := config.Load(*configPath, filepath.Dir(target))
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	cfg.ShowBuiltins = cfg.ShowBuiltins || *showAll
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	log.SetLevel(level)
	ilerr.SetDebugPrinting(level <= slog.LevelDebug)
	log.SetSections(cfg.LogSections...)

	logger.Info("inferring", "file", target)
	env, err := project.LoadFile(target, cfg)
	if err != nil {
		if ileErr, ok := ilerr.As(err); ok && env != nil {
			return errors.New(ilerr.FormatWithSource(ileErr, env.FileSet()))
		}
		return err
	}
	return report(cmd.OutOrStdout(), env, cfg.ShowBuiltins)
}

// report writes `name: types` for every name bound in env, in binding order
func report(w io.Writer, env *types.Environment, builtins bool) error {
	for _, name := range env.Names() {
		if !builtins && env.IsBuiltinName(name) {
			continue
		}
		ts, err := env.Lookup(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, ts); err != nil {
			return errors.Wrap(err, "write report")
		}
	}
	return nil
}
