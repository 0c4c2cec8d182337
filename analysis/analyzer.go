package analysis

import (
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-diffspec/dsp/spectrum"
	"github.com/cwbudde/algo-diffspec/fault"
)

// Analyzer yields one magnitude vector per window of its input.
type Analyzer struct {
	r         io.Reader
	precision int
	transform spectrum.MagnitudeTransform

	window  []byte
	samples []float64
	windows int
	done    bool
}

// NewAnalyzer reads r in windows of precision bytes. precision must be a
// power of two. A nil transform selects spectrum.NewFFTMagnitude.
func NewAnalyzer(r io.Reader, precision int, transform spectrum.MagnitudeTransform) (*Analyzer, error) {
	if precision < 1 || precision&(precision-1) != 0 {
		return nil, fault.Config("precision must be a power of 2: %d", precision)
	}
	if transform == nil {
		transform = spectrum.NewFFTMagnitude()
	}

	return &Analyzer{
		r:         r,
		precision: precision,
		transform: transform,
		window:    make([]byte, precision),
		samples:   make([]float64, precision),
	}, nil
}

// Windows returns the number of vectors emitted so far.
func (a *Analyzer) Windows() int { return a.windows }

// Next returns the magnitude vector of the next window, or io.EOF when the
// input is exhausted. A short final window is zero-padded to precision.
func (a *Analyzer) Next() ([]float64, error) {
	if a.done {
		return nil, io.EOF
	}

	n, err := io.ReadFull(a.r, a.window)
	switch {
	case errors.Is(err, io.EOF):
		a.done = true
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		a.done = true
	case err != nil:
		return nil, fault.LocalIO("read diff stream", err)
	}

	for i, b := range a.window[:n] {
		a.samples[i] = float64(b)
	}
	clear(a.samples[n:])

	mag, err := a.transform.Magnitude(a.samples)
	if err != nil {
		return nil, fault.Transform(fmt.Sprintf("window %d", a.windows), err)
	}

	a.windows++
	return mag, nil
}
