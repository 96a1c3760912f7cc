package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	writer := NewWriter()

	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "docs", "api", "routes.txt")
		require.NoError(t, writer.Write(path, "app.UserController:\n"))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "app.UserController:\n", string(content))
	})

	t.Run("overwrites an existing report", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "routes.txt")
		require.NoError(t, writer.Write(path, "old\n"))
		require.NoError(t, writer.Write(path, "new\n"))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new\n", string(content))
	})

	t.Run("leaves no staging file behind", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writer.Write(filepath.Join(dir, "routes.txt"), "content"))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "routes.txt", entries[0].Name())
	})

	t.Run("failure does not clobber the previous report", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "routes.txt")
		require.NoError(t, writer.Write(path, "previous\n"))

		// A destination whose parent is a regular file cannot be renamed into.
		bad := filepath.Join(path, "nested.txt")
		require.Error(t, writer.Write(bad, "broken"))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "previous\n", string(content))
	})
}
