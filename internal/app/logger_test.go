package app

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	t.Run("debug level passes debug records", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger("debug", "text", &buf).Debug("resolving tree")
		assert.Contains(t, buf.String(), "resolving tree")
	})

	t.Run("info level filters debug records", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger("info", "text", &buf).Debug("resolving tree")
		assert.Empty(t, buf.String())
	})

	t.Run("level names are case-insensitive", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger("WARN", "text", &buf).Info("catalog stored")
		assert.Empty(t, buf.String())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger("chatty", "text", &buf)
		logger.Debug("resolving tree")
		logger.Info("catalog stored")
		assert.NotContains(t, buf.String(), "resolving tree")
		assert.Contains(t, buf.String(), "catalog stored")
	})

	t.Run("json format emits JSON records", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger("info", "json", &buf).Info("catalog stored")
		assert.Contains(t, buf.String(), `"msg":"catalog stored"`)
	})
}
