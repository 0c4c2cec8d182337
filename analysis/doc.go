// Package analysis windows the XOR difference stream, runs the magnitude
// transform on every window and serializes the resulting vectors.
//
// [Analyzer] pulls exactly one precision-sized window per call and emits
// ceil(L/P) vectors for a stream of L bytes, zero-padding the last window.
// [Writer] appends every value of every vector on its own line. The output
// has no window or chunk separators.
package analysis
