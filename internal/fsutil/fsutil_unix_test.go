//go:build unix

package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLockIsExclusiveAcrossHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locked.bin")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

	first, err := os.Open(path)
	require.NoError(t, err)
	defer first.Close()
	second, err := os.Open(path)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, Lock(first))
	require.ErrorIs(t, Lock(second), ErrLocked)

	require.NoError(t, Unlock(first))
	require.NoError(t, Lock(second))
	require.NoError(t, Unlock(second))
}

func TestWritable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Writable(dir))

	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	require.Error(t, Writable(file))

	require.Error(t, Writable(filepath.Join(dir, "missing")))
}
