package filesystem_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/crudgen/internal/adapters/filesystem"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestWorkspaceAdapter_FileExists(t *testing.T) {
	root := t.TempDir()
	adapter := filesystem.NewWorkspaceAdapter()
	ctx := context.Background()

	exists, err := adapter.FileExists(ctx, root, "models/book.js")
	require.NoError(t, err)
	assert.False(t, exists)

	writeFile(t, root, "models/book.js", "module.exports = {};")

	exists, err = adapter.FileExists(ctx, root, "models/book.js")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWorkspaceAdapter_ReadFile(t *testing.T) {
	root := t.TempDir()
	adapter := filesystem.NewWorkspaceAdapter()
	ctx := context.Background()

	content, exists, err := adapter.ReadFile(ctx, root, "routes/index.js")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, content)

	writeFile(t, root, "routes/index.js", "module.exports = router;\n")

	content, exists, err = adapter.ReadFile(ctx, root, "routes/index.js")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "module.exports = router;\n", content)
}

func TestWorkspaceAdapter_Glob(t *testing.T) {
	root := t.TempDir()
	adapter := filesystem.NewWorkspaceAdapter()
	ctx := context.Background()

	writeFile(t, root, "migrations/1700000000002-create-book.js", "")
	writeFile(t, root, "migrations/1700000000001-create-book.js", "")
	writeFile(t, root, "migrations/1700000000003-create-notebook.js", "")

	matches, err := adapter.Glob(ctx, root, "migrations/*-create-book.js")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"migrations/1700000000001-create-book.js",
		"migrations/1700000000002-create-book.js",
	}, matches)

	matches, err = adapter.Glob(ctx, root, "migrations/*-create-page.js")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestWorkspaceAdapter_ResolveRoot(t *testing.T) {
	root := t.TempDir()
	adapter := filesystem.NewWorkspaceAdapter()

	resolved, err := adapter.ResolveRoot(root)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(resolved))

	_, err = adapter.ResolveRoot(filepath.Join(root, "missing"))
	assert.Error(t, err)

	writeFile(t, root, "file.txt", "x")
	_, err = adapter.ResolveRoot(filepath.Join(root, "file.txt"))
	assert.ErrorContains(t, err, "is not a directory")

	wd, err := os.Getwd()
	require.NoError(t, err)
	resolved, err = adapter.ResolveRoot("")
	require.NoError(t, err)
	assert.Equal(t, wd, resolved)
}
