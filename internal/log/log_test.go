package log

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"log/slog"
	"testing"
)

func TestSectionFiltering(t *testing.T) {
	SetLevel(slog.LevelDebug)
	defer SetLevel(slog.LevelWarn)
	SetSections("inference")
	defer SetSections("inference", "binder", "parser", "resolver", "cli")

	buf := &bytes.Buffer{}
	logger := NewLogger(buf)

	logger.With("section", "inference").Debug("kept")
	logger.With("section", "parser").Debug("dropped")
	logger.Debug("dropped too")
	logger.With("section", "parser").Warn("warnings always pass")

	out := buf.String()
	assert.Contains(t, out, "kept")
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "warnings always pass")
}

func TestLevel(t *testing.T) {
	SetLevel(slog.LevelError)
	defer SetLevel(slog.LevelWarn)

	buf := &bytes.Buffer{}
	logger := NewLogger(buf).With("section", "cli")
	logger.Warn("below level")
	logger.Error("at level")

	assert.NotContains(t, buf.String(), "below level")
	assert.Contains(t, buf.String(), "at level")
}
