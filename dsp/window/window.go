// Package window tapers analysis windows before the magnitude transform.
//
// Windows are generated in periodic form, which is the framing an N-point
// FFT expects. Rectangular leaves the samples untouched and is the default.
package window

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-diffspec/dsp/spectrum"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeWelch
)

var names = map[Type]string{
	TypeRectangular: "rectangular",
	TypeHann:        "hann",
	TypeHamming:     "hamming",
	TypeBlackman:    "blackman",
	TypeWelch:       "welch",
}

var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// Names lists the accepted window names in Type order.
func Names() []string {
	out := make([]string, len(names))
	for t, n := range names {
		out[t] = n
	}
	return out
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("window(%d)", int(t))
}

// Parse returns the Type named s, case-insensitively. An empty name selects
// TypeRectangular.
func Parse(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return TypeRectangular, nil
	}
	for t, n := range names {
		if n == s {
			return t, nil
		}
	}
	return TypeRectangular, fmt.Errorf("window: unknown type %q", s)
}

// Generate returns periodic window coefficients of the given length.
func Generate(t Type, length int) []float64 {
	if length <= 0 {
		return nil
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = eval(t, float64(i)/float64(length))
	}
	return out
}

// Apply multiplies buf in place by the window of its length.
func Apply(t Type, buf []float64) {
	if len(buf) == 0 || t == TypeRectangular {
		return
	}
	vecmath.MulBlockInPlace(buf, Generate(t, len(buf)))
}

func eval(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		return cosineSum(x, hannCoeffs)
	case TypeHamming:
		return cosineSum(x, hammingCoeffs)
	case TypeBlackman:
		return cosineSum(x, blackmanCoeffs)
	case TypeWelch:
		d := x - 0.5
		return 1 - 4*d*d
	default:
		return 1
	}
}

func cosineSum(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}
	return sum
}

// Tapered applies a window to every input of next. Coefficients are
// computed once per length. The caller's samples are not modified.
type Tapered struct {
	typ  Type
	next spectrum.MagnitudeTransform

	mu      sync.Mutex
	coeffs  map[int][]float64
	scratch []float64
}

// NewTapered wraps next with window t. A rectangular window returns next
// unchanged.
func NewTapered(t Type, next spectrum.MagnitudeTransform) spectrum.MagnitudeTransform {
	if t == TypeRectangular {
		return next
	}
	return &Tapered{typ: t, next: next, coeffs: make(map[int][]float64)}
}

// Magnitude windows samples and forwards them to the wrapped transform.
func (w *Tapered) Magnitude(samples []float64) ([]float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(samples)
	coeffs, ok := w.coeffs[n]
	if !ok {
		coeffs = Generate(w.typ, n)
		w.coeffs[n] = coeffs
	}
	if cap(w.scratch) < n {
		w.scratch = make([]float64, n)
	}
	buf := w.scratch[:n]
	vecmath.MulBlock(buf, samples, coeffs)

	return w.next.Magnitude(buf)
}
