package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

var (
	// ErrEmptyInput is returned for a zero-length sample window.
	ErrEmptyInput = errors.New("spectrum: empty input")
	// ErrNotPowerOf2 is returned when the window length is not a power of two.
	ErrNotPowerOf2 = errors.New("spectrum: window length must be a power of 2")
)

// MagnitudeTransform maps a real sample window to its magnitude spectrum.
// Implementations may require power-of-two window lengths.
type MagnitudeTransform interface {
	Magnitude(samples []float64) ([]float64, error)
}

// TransformFunc adapts an ordinary function to [MagnitudeTransform].
type TransformFunc func(samples []float64) ([]float64, error)

// Magnitude calls f(samples).
func (f TransformFunc) Magnitude(samples []float64) ([]float64, error) {
	return f(samples)
}

// FFTMagnitude computes |FFT(x)| over all n bins of a length-n window.
//
// Plans are created on first use for each window length and reused.
// An FFTMagnitude is not safe for concurrent use.
type FFTMagnitude struct {
	plans map[int]*algofft.Plan[complex128]
	in    []complex128
	out   []complex128
}

// NewFFTMagnitude returns an FFTMagnitude with an empty plan cache.
func NewFFTMagnitude() *FFTMagnitude {
	return &FFTMagnitude{plans: make(map[int]*algofft.Plan[complex128])}
}

// Magnitude returns len(samples) non-negative bin magnitudes. The output is
// unnormalized, so bin 0 equals the sum of the samples.
func (f *FFTMagnitude) Magnitude(samples []float64) ([]float64, error) {
	n := len(samples)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if n&(n-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOf2, n)
	}
	if n == 1 {
		return []float64{math.Abs(samples[0])}, nil
	}

	plan, err := f.plan(n)
	if err != nil {
		return nil, err
	}

	if cap(f.in) < n {
		f.in = make([]complex128, n)
		f.out = make([]complex128, n)
	}
	in, out := f.in[:n], f.out[:n]
	for i, v := range samples {
		in[i] = complex(v, 0)
	}

	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	return Magnitude(out), nil
}

func (f *FFTMagnitude) plan(n int) (*algofft.Plan[complex128], error) {
	if plan, ok := f.plans[n]; ok {
		return plan, nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}
	f.plans[n] = plan
	return plan, nil
}
