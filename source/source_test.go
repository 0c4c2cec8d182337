package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-diffspec/fault"
	"github.com/cwbudde/algo-diffspec/fetch"
	"github.com/cwbudde/algo-diffspec/internal/testutil"
)

func TestLocalReadRange(t *testing.T) {
	data := testutil.DeterministicBytes(1, 100)
	src, err := OpenLocal(testutil.WriteFile(t, "a.bin", data))
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, int64(100), src.Size())

	got, err := src.ReadRange(context.Background(), 90, 10)
	require.NoError(t, err)
	assert.Equal(t, data[90:], got)

	got, err = src.ReadRange(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLocalReadRangeOutsideFile(t *testing.T) {
	src, err := OpenLocal(testutil.WriteFile(t, "a.bin", []byte("abcd")))
	require.NoError(t, err)
	defer src.Close()

	_, err = src.ReadRange(context.Background(), 2, 3)
	assert.ErrorIs(t, err, fault.ErrLocalIO)
}

func TestLocalShortReadIsFatal(t *testing.T) {
	path := testutil.WriteFile(t, "shrinks.bin", []byte("abcdefgh"))
	src, err := OpenLocal(path)
	require.NoError(t, err)
	defer src.Close()

	require.NoError(t, os.Truncate(path, 4))

	_, err = src.ReadRange(context.Background(), 0, 8)
	assert.ErrorIs(t, err, fault.ErrLocalIO)
}

func TestLocalOpenMissingFile(t *testing.T) {
	_, err := OpenLocal(filepath.Join(t.TempDir(), "missing.bin"))
	assert.ErrorIs(t, err, fault.ErrLocalIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalCloseIsIdempotentAndReleasesLock(t *testing.T) {
	path := testutil.WriteFile(t, "a.bin", []byte("abcd"))
	first, err := OpenLocal(path)
	require.NoError(t, err)

	require.NoError(t, first.Close())
	require.NoError(t, first.Close())

	_, err = first.ReadRange(context.Background(), 0, 1)
	assert.ErrorIs(t, err, fault.ErrLocalIO)

	second, err := OpenLocal(path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestRemoteReadRange(t *testing.T) {
	data := testutil.DeterministicBytes(2, 50)
	srv := testutil.NewRangeServer(t, data)

	src, err := OpenRemote(context.Background(), fetch.New(), srv.ResourceURL())
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, int64(50), src.Size())

	got, err := src.ReadRange(context.Background(), 48, 2)
	require.NoError(t, err)
	assert.Equal(t, data[48:], got)

	_, err = src.ReadRange(context.Background(), 48, 3)
	assert.ErrorIs(t, err, fault.ErrRemoteFetch)
}

func TestRemoteOpenRequiresRanges(t *testing.T) {
	srv := testutil.NewRangeServer(t, testutil.DeterministicBytes(3, 50))
	srv.NoRanges = true

	_, err := OpenRemote(context.Background(), nil, srv.ResourceURL())
	assert.ErrorIs(t, err, fault.ErrRemoteCapability)
	assert.Equal(t, 0, srv.Gets())
}

func TestOpenDispatchesByKind(t *testing.T) {
	data := []byte("0123456789")
	srv := testutil.NewRangeServer(t, data)
	path := testutil.WriteFile(t, "a.bin", data)

	remote, err := Open(context.Background(), true, srv.ResourceURL(), fetch.New())
	require.NoError(t, err)
	assert.IsType(t, &Remote{}, remote)

	local, err := Open(context.Background(), false, path, nil)
	require.NoError(t, err)
	defer local.Close()
	assert.IsType(t, &Local{}, local)
	assert.Equal(t, path, local.Locator())
}

func TestSameFile(t *testing.T) {
	path := testutil.WriteFile(t, "a.bin", []byte("x"))
	link := filepath.Join(filepath.Dir(path), "link.bin")
	require.NoError(t, os.Symlink(path, link))
	other := testutil.WriteFile(t, "b.bin", []byte("x"))

	assert.True(t, SameFile(path, link))
	assert.False(t, SameFile(path, other))
	assert.False(t, SameFile(path, filepath.Join(t.TempDir(), "missing")))
}
