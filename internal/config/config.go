// Package config loads the optional pyinfer.yaml settings file
package config

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileName is looked up next to the inferred file when no explicit path is given
const FileName = "pyinfer.yaml"

type Config struct {
	// SearchPaths are directories, relative to the inferred file, searched for imported modules.
	// The directory of the inferred file is always searched first
	SearchPaths []string `yaml:"searchPaths"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"logLevel"`
	// LogSections restricts debug and info logs to these sections
	LogSections []string `yaml:"logSections"`
	// ShowBuiltins makes reports include the builtin names of the root environment
	ShowBuiltins bool `yaml:"showBuiltins"`
}

func Default() *Config {
	return &Config{
		LogLevel:    "warn",
		LogSections: []string{"inference", "binder", "parser", "resolver", "cli"},
	}
}

// Level parses LogLevel, defaulting to slog.LevelWarn
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelWarn, errors.Wrapf(err, "config: invalid logLevel %q", c.LogLevel)
	}
	return l, nil
}

// Decode reads a Config from r on top of the defaults, rejecting unknown fields
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "config: parse")
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the config at path. When path is empty, FileName inside dir is used
// if it exists, and Default otherwise
func Load(path, dir string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	}
	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, errors.Wrapf(err, "config: open %s", path)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "config: load %s", path)
	}
	return cfg, nil
}
