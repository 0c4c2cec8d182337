// Package fsutil holds the small filesystem primitives diffspec needs beyond
// the os package: advisory exclusive locks, directory writability checks and
// path identity.
package fsutil

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrLocked is returned by Lock when another holder already owns the lock.
var ErrLocked = errors.New("file is locked by another holder")

// SameFile reports whether a and b name the same file. Paths that do not
// exist yet match when they resolve to the same absolute path.
func SameFile(a, b string) bool {
	ai, aerr := os.Stat(a)
	bi, berr := os.Stat(b)
	if aerr == nil && berr == nil {
		return os.SameFile(ai, bi)
	}

	absA, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false
	}
	return absA == absB
}
