package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalStore_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads", "contracts")

	store, err := NewLocalStore(root, zap.NewNop())
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, root, store.Root())
}

func TestLocalStore_ResolveStripsDirectories(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	path := store.ResolveContractPath("../../etc/passwd")
	assert.Equal(t, filepath.Join(store.Root(), "passwd"), path)
}

func TestLocalStore_ExistsAndDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	path := store.ResolveContractPath("doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	assert.True(t, store.Exists(path))
	assert.True(t, store.Delete(path))
	assert.False(t, store.Exists(path))

	// Deleting a missing file reports failure instead of panicking.
	assert.False(t, store.Delete(path))
}
