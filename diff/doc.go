// Package diff turns two byte sources into their XOR difference stream.
//
// [Engine] is a pull iterator: every call to [Engine.Next] reads one chunk
// at the same offset from both sources and returns their bytewise XOR. The
// stream covers [0, min(size(original), size(new))); trailing bytes of the
// longer source are never read.
//
// [Spill] stores the difference stream on disk so the diff phase and the
// spectral phase never hold more than one chunk or window in memory:
//
//	eng, err := diff.NewEngine(orig, updated, diff.Options{Chunk: 1 << 20, Precision: 2048})
//	spill, err := diff.CreateSpill("")
//	for {
//		chunk, err := eng.Next(ctx)
//		if errors.Is(err, io.EOF) {
//			break
//		}
//		spill.Write(chunk)
//	}
//	r, err := spill.Rewind()
package diff
