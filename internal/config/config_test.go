package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
searchPaths: [lib, vendor]
logLevel: debug
showBuiltins: true
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"lib", "vendor"}, cfg.SearchPaths)
	assert.True(t, cfg.ShowBuiltins)
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
	// untouched fields keep their defaults
	assert.Equal(t, Default().LogSections, cfg.LogSections)
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"unknown field": "searchPath: [lib]",
		"bad level":     "logLevel: loud",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("searchPaths: [src]\n"), 0o644))
	cfg, err = Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"src"}, cfg.SearchPaths)

	_, err = Load(filepath.Join(dir, "missing.yaml"), dir)
	assert.Error(t, err)
}
