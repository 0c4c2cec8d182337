package analysis

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/cwbudde/algo-diffspec/fault"
	"github.com/cwbudde/algo-diffspec/internal/fsutil"
)

// Writer appends magnitude values to a sink, one per line.
type Writer struct {
	w    *bufio.Writer
	file *os.File
	name string

	buf     []byte
	vectors int
	values  int64
}

// NewWriter writes to w. Close flushes but does not close w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), name: "output"}
}

// CreateWriter creates or truncates path and locks it exclusively until
// Close.
func CreateWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fault.LocalIO("create "+path, err)
	}
	if err := fsutil.Lock(f); err != nil {
		_ = f.Close()
		return nil, fault.LocalIO("lock "+path, err)
	}

	w := NewWriter(f)
	w.file = f
	w.name = path
	return w, nil
}

// Vectors returns the number of vectors written.
func (w *Writer) Vectors() int { return w.vectors }

// Values returns the number of values written.
func (w *Writer) Values() int64 { return w.values }

// WriteVector appends every element of v on its own line in plain decimal
// form, never with an exponent.
func (w *Writer) WriteVector(v []float64) error {
	for _, x := range v {
		w.buf = strconv.AppendFloat(w.buf[:0], x, 'f', -1, 64)
		w.buf = append(w.buf, '\n')
		if _, err := w.w.Write(w.buf); err != nil {
			return fault.LocalIO("write "+w.name, err)
		}
	}
	w.vectors++
	w.values += int64(len(v))
	return nil
}

// Close flushes buffered values and, for files from CreateWriter, unlocks
// and closes the file.
func (w *Writer) Close() error {
	err := w.w.Flush()
	if w.file != nil {
		f := w.file
		w.file = nil
		err = errors.Join(err, fsutil.Unlock(f), f.Close())
	}
	if err != nil {
		return fault.LocalIO("close "+w.name, err)
	}
	return nil
}
