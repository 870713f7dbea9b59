// Package testutil provides shared helpers for pipeline tests: temp-dir
// fixture writing, in-memory stores, and thread-safe log capture.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/testgridgo/internal/store"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles writes the given relative-path/content pairs under a fresh temp
// directory and returns its root. Subdirectories in the paths are created as
// needed.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// OpenStore opens an in-memory store that is closed when the test ends.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(context.Background(), store.InMemory)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}
