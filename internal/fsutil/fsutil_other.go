//go:build !unix

package fsutil

import (
	"fmt"
	"os"
)

// Lock is a no-op on platforms without flock(2).
func Lock(_ *os.File) error { return nil }

// Unlock is a no-op on platforms without flock(2).
func Unlock(_ *os.File) error { return nil }

// Writable probes dir by creating and removing a temporary file.
func Writable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", dir)
	}
	f, err := os.CreateTemp(dir, ".diffspec-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
