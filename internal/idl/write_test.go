package idl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileReplacesContent(t *testing.T) {
	path := writeTemp(t, "idl.json", "old")

	require.NoError(t, WriteFile(path, []byte("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteFileLeavesNoTempFiles(t *testing.T) {
	path := writeTemp(t, "idl.json", "old")

	require.NoError(t, WriteFile(path, []byte("new")))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "idl.json", entries[0].Name())
}

func TestWriteFileKeepsPermissions(t *testing.T) {
	path := writeTemp(t, "idl.json", "old")
	require.NoError(t, os.Chmod(path, 0600))

	require.NoError(t, WriteFile(path, []byte("new")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWriteFileCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idl.json")

	require.NoError(t, WriteFile(path, []byte("{}")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "idl.json")

	err := WriteFile(path, []byte("{}"))
	require.Error(t, err)
	assert.True(t, IsIOError(err))
}

func TestAcquireLockTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idl.json")

	first, err := acquireLock(path)
	require.NoError(t, err)

	_, err = acquireLock(path)
	require.Error(t, err)
	assert.True(t, IsLockError(err))

	require.NoError(t, first.release())

	again, err := acquireLock(path)
	require.NoError(t, err)
	require.NoError(t, again.release())
}
