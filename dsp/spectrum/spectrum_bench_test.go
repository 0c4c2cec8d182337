package spectrum

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-diffspec/internal/testutil"
)

func BenchmarkMagnitude(b *testing.B) {
	sizes := []struct {
		name string
		size int
	}{
		{"64", 64},
		{"256", 256},
		{"1K", 1024},
		{"4K", 4096},
	}

	for _, testCase := range sizes {
		b.Run(testCase.name, func(b *testing.B) {
			inData := make([]complex128, testCase.size)
			for i := range inData {
				inData[i] = complex(float64(i)/10.0, float64(testCase.size-i)/10.0)
			}

			b.SetBytes(int64(testCase.size * 16)) // complex128 = 16 bytes
			b.ResetTimer()

			for range b.N {
				_ = Magnitude(inData)
			}
		})
	}
}

func BenchmarkFFTMagnitude(b *testing.B) {
	for _, size := range []int{256, 2048, 16384} {
		samples := bytesToSamples(testutil.DeterministicBytes(1, size))
		tr := NewFFTMagnitude()

		b.Run(strconv.Itoa(size), func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ResetTimer()

			for range b.N {
				if _, err := tr.Magnitude(samples); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
