package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDir(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "nested", "data")
		d, err := OpenDir(root, ".json")
		require.NoError(t, err)
		assert.Equal(t, root, d.Root())

		info, err := os.Stat(root)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("fails when path is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		_, err := OpenDir(file, ".json")
		assert.Error(t, err)
	})
}

func TestDirFileLayout(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d, err := OpenDir(root, ".yaml")
	require.NoError(t, err)

	require.NoError(t, d.Set(ctx, "todos", []byte("- id: a\n")))

	data, err := os.ReadFile(filepath.Join(root, "todos.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "- id: a\n", string(data))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, d.Remove(ctx, "todos"))
	_, err = os.Stat(filepath.Join(root, "todos.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestDirReadsExternalEdits(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d, err := OpenDir(root, ".json")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "todos.json"), []byte("{garbage"), 0644))

	v, ok, err := d.Get(ctx, "todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{garbage", string(v))
}
