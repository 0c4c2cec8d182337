// Package spectrum provides the magnitude-spectrum primitive diffspec runs on
// every window of the difference stream.
//
// The package does not implement an FFT itself. [FFTMagnitude] drives plans
// from github.com/MeKo-Christian/algo-fft and converts the complex bins with
// the SIMD-backed [Magnitude]. Any other radix-2 implementation can be
// injected through the [MagnitudeTransform] interface.
package spectrum
