// Package testutil provides deterministic test helpers shared across
// packages: fixture-tree construction on temporary directories.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTree materializes files under root. Keys are slash-separated paths
// relative to root; parent directories are created as needed.
//
// Use with t.TempDir() to build isolated fixture trees per test.
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// TempTree creates a fresh temporary directory populated with files.
func TempTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	WriteTree(t, root, files)
	return root
}
