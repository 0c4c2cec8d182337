package config

// IsPowerOf2 reports whether n is a positive power of two.
func IsPowerOf2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// FloorPowerOf2 returns the largest power of two <= n, or 0 for n < 1.
func FloorPowerOf2(n int) int {
	if n < 1 {
		return 0
	}
	p := 1
	for p <= n/2 {
		p <<= 1
	}
	return p
}

// Effective clamps the requested chunk to both stream sizes and the
// precision to the resulting chunk.
//
// The chunk becomes min(chunk, originalSize, newSize). The precision becomes
// min(precision, chunk), lowered to a power of two when the clamped chunk is
// not one. A zero-length input yields a zero chunk and leaves precision as
// requested, since no window will be computed.
func Effective(chunk, precision int, originalSize, newSize int64) (int, int) {
	c := min(int64(chunk), originalSize, newSize)
	if c < 1 {
		return 0, precision
	}
	return int(c), FloorPowerOf2(min(precision, int(c)))
}
