package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Run("finds files recursively in sorted order", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
		for _, name := range []string{"b.hcl", "a.hcl", "notes.txt", filepath.Join("sub", "c.hcl")} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
		}

		files, err := FindFilesByExtension(dir, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(dir, "a.hcl"),
			filepath.Join(dir, "b.hcl"),
			filepath.Join(dir, "sub", "c.hcl"),
		}, files)
	})

	t.Run("a matching file root is returned directly", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "only.json")
		require.NoError(t, os.WriteFile(file, nil, 0o644))

		files, err := FindFilesByExtension(file, ".json")
		require.NoError(t, err)
		assert.Equal(t, []string{file}, files)
	})

	t.Run("a non-matching file root yields nothing", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "only.txt")
		require.NoError(t, os.WriteFile(file, nil, 0o644))

		files, err := FindFilesByExtension(file, ".json")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("missing root is an error", func(t *testing.T) {
		_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".hcl")
		assert.Error(t, err)
	})
}
