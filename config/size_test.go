package config

import "testing"

func TestIsPowerOf2(t *testing.T) {
	for _, n := range []int{1, 2, 4, 1024, 2048, 1 << 20} {
		if !IsPowerOf2(n) {
			t.Fatalf("IsPowerOf2(%d)=false want=true", n)
		}
	}
	for _, n := range []int{-2, 0, 3, 6, 1000, 2047} {
		if IsPowerOf2(n) {
			t.Fatalf("IsPowerOf2(%d)=true want=false", n)
		}
	}
}

func TestFloorPowerOf2(t *testing.T) {
	tests := []struct{ in, want int }{
		{-1, 0}, {0, 0}, {1, 1}, {2, 2}, {3, 2}, {7, 4}, {8, 8}, {1000, 512}, {2048, 2048},
	}
	for _, tt := range tests {
		if got := FloorPowerOf2(tt.in); got != tt.want {
			t.Fatalf("FloorPowerOf2(%d)=%d want=%d", tt.in, got, tt.want)
		}
	}
}

func TestEffective(t *testing.T) {
	tests := []struct {
		name                   string
		chunk, precision       int
		originalSize, newSize  int64
		wantChunk, wantPrecise int
	}{
		{"requested chunk smallest", 4, 2048, 10, 7, 4, 4},
		{"new file smallest", 1 << 20, 2048, 1 << 30, 1000, 1000, 512},
		{"original file smallest", 1 << 20, 2048, 4096, 1 << 30, 4096, 2048},
		{"precision below chunk", 1 << 20, 256, 1 << 30, 1 << 30, 1 << 20, 256},
		{"exact match", 4, 4, 4, 4, 4, 4},
		{"empty input", 1 << 20, 2048, 0, 100, 0, 2048},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, p := Effective(tt.chunk, tt.precision, tt.originalSize, tt.newSize)
			if c != tt.wantChunk || p != tt.wantPrecise {
				t.Fatalf("Effective()=(%d,%d) want=(%d,%d)", c, p, tt.wantChunk, tt.wantPrecise)
			}
		})
	}
}
