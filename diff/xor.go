package diff

import "crypto/subtle"

// XOR stores a[i]^b[i] into dst for the common length of a and b, working
// in runs of at most step bytes, and returns that length. dst may alias a
// or b and must be at least as long as the result.
func XOR(dst, a, b []byte, step int) int {
	n := min(len(a), len(b))
	if step < 1 {
		step = n
	}
	for off := 0; off < n; off += step {
		end := min(off+step, n)
		subtle.XORBytes(dst[off:end], a[off:end], b[off:end])
	}
	return n
}
