package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "player.json")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	t.Parallel()
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "x.json"), []byte("x"), 0o644)
	assert.Error(t, err)
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "a", "b", "stats.json")
	require.NoError(t, EnsureDir(path))
	require.NoError(t, WriteFileAtomic(path, []byte("{}"), 0o644))
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "stats.json")

	type record struct {
		Balance int `json:"balance"`
	}
	var r record
	found, err := ReadJSON(path, &r)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, WriteJSON(path, record{Balance: 1250}))
	found, err = ReadJSON(path, &r)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1250, r.Balance)

	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = ReadJSON(path, &r)
	assert.Error(t, err)
}
