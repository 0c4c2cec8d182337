// Package source reads byte ranges from local files and remote HTTP
// resources through one interface.
package source

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-diffspec/fetch"
	"github.com/cwbudde/algo-diffspec/internal/fsutil"
)

// ByteSource is a sized, randomly addressable byte stream.
//
// Callers clamp every ReadRange to [0, Size()). Close releases whatever the
// source holds and may be called more than once.
type ByteSource interface {
	Locator() string
	Size() int64
	ReadRange(ctx context.Context, offset int64, length int) ([]byte, error)
	Close() error
}

// Open returns a Remote source for locator when remote is set and a Local
// source otherwise.
func Open(ctx context.Context, remote bool, locator string, client *fetch.Client) (ByteSource, error) {
	if remote {
		return OpenRemote(ctx, client, locator)
	}
	return OpenLocal(locator)
}

// SameFile reports whether two local paths name the same file.
func SameFile(a, b string) bool {
	return fsutil.SameFile(a, b)
}

func checkRange(size, offset int64, length int) error {
	if offset < 0 || length < 0 || offset+int64(length) > size {
		return fmt.Errorf("range [%d,%d) outside [0,%d)", offset, offset+int64(length), size)
	}
	return nil
}
