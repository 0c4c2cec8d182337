package testutil

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// DeterministicBytes returns n pseudo-random bytes from a fixed seed.
func DeterministicBytes(seed int64, n int) []byte {
	out := make([]byte, n)
	rng := rand.New(rand.NewSource(seed))
	_, _ = rng.Read(out)
	return out
}

// Repeat returns n copies of b.
func Repeat(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

// XOR returns the bytewise exclusive-or of the common prefix of a and b.
func XOR(a, b []byte) []byte {
	n := min(len(a), len(b))
	out := make([]byte, n)
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// WriteFile stores data under t.TempDir and returns the path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
