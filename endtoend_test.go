package main

import (
	"embed"
	"fmt"
	"go/token"
	"io/fs"
	"strings"
	"testing"

	"github.com/PiJoules/python-type-inference-sub000/frontend/ilerr"
	"github.com/PiJoules/python-type-inference-sub000/frontend/types"
	"github.com/PiJoules/python-type-inference-sub000/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// embeds the test programs, and the modules they import under testdata/lib
//
//go:embed testdata
var testSet embed.FS

type expectations struct {
	types map[string]string
	// errCode and errLine are set when inference is expected to fail
	errCode string
	errLine int
}

// format is as follows, one directive per leading comment line:
//
//	# expect name: types
//	# error E003 line
func extractExpectations(t *testing.T, src string) expectations {
	ret := expectations{types: map[string]string{}}
	for _, line := range strings.Split(src, "\n") {
		if !strings.HasPrefix(line, "# ") {
			break
		}
		directive := strings.TrimPrefix(line, "# ")
		switch {
		case strings.HasPrefix(directive, "expect "):
			name, ts, ok := strings.Cut(strings.TrimPrefix(directive, "expect "), ": ")
			if !ok {
				t.Fatalf("could not parse expectation: '%v'", line)
			}
			ret.types[name] = ts
		case strings.HasPrefix(directive, "error "):
			if _, err := fmt.Sscanf(directive, "error %s %d", &ret.errCode, &ret.errLine); err != nil {
				t.Fatalf("could not parse error expectation '%v': %v", line, err)
			}
		}
	}
	if len(ret.types) == 0 && ret.errCode == "" {
		t.Fatalf("no expectations found")
	}
	return ret
}

func TestProgramsEndToEnd(t *testing.T) {
	root, err := fs.Sub(testSet, "testdata")
	require.NoError(t, err)
	files, err := fs.ReadDir(root, ".")
	require.NoError(t, err)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".py") {
			continue
		}
		testFile(t, root, f.Name())
	}
}

func testFile(t *testing.T, root fs.FS, name string) bool {
	return t.Run(name, func(t *testing.T) {
		content, err := fs.ReadFile(root, name)
		require.NoError(t, err)
		want := extractExpectations(t, string(content))

		fset := token.NewFileSet()
		env := types.CreateRootEnvironment(
			types.WithResolver(project.NewFSResolver(root, fset, ".", "lib")),
			types.WithFileSet(fset),
			types.WithFileName(name),
		)
		err = env.ParseCode(content)

		if want.errCode != "" {
			require.Error(t, err)
			ileErr, ok := ilerr.As(err)
			require.True(t, ok, "not an IleError: %v", err)
			assert.Contains(t, ilerr.FormatWithCode(ileErr), "("+want.errCode+")")
			assert.Equal(t, want.errLine, fset.Position(ileErr.Pos()).Line)
			return
		}
		require.NoError(t, err)
		for binding, expected := range want.types {
			ts, err := env.Lookup(binding)
			if assert.NoError(t, err) {
				assert.Equal(t, expected, ts.String(), "types of %s", binding)
			}
		}
	})
}
