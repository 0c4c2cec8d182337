package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSameFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.bin")
	b := filepath.Join(dir, "b.bin")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte("x"), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	link := filepath.Join(dir, "link.bin")
	if err := os.Link(a, link); err != nil {
		t.Fatalf("Link: %v", err)
	}
	missing := filepath.Join(dir, "missing.bin")

	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", a, a, true},
		{"unclean path", a, filepath.Join(dir, ".", "a.bin"), true},
		{"hard link", a, link, true},
		{"different files", a, b, false},
		{"both missing same path", missing, missing, true},
		{"missing vs existing", missing, a, false},
	}

	for _, tt := range tests {
		if got := SameFile(tt.a, tt.b); got != tt.want {
			t.Fatalf("%s: SameFile=%v want=%v", tt.name, got, tt.want)
		}
	}
}
