package diff

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/cwbudde/algo-diffspec/fault"
)

const spillBufferSize = 256 * 1024

// Spill is write-once storage for the difference stream. After Rewind it is
// read back sequentially from the start.
type Spill struct {
	f       *os.File
	w       *bufio.Writer
	path    string
	persist bool
	size    int64
}

// CreateSpill creates the spill file. An empty path creates an ephemeral
// temporary file that Close removes; any other path is created or
// truncated and left in place.
func CreateSpill(path string) (*Spill, error) {
	var (
		f   *os.File
		err error
	)
	if path == "" {
		f, err = os.CreateTemp("", "diffspec-*.xor")
	} else {
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	}
	if err != nil {
		return nil, fault.LocalIO("create diff file", err)
	}

	return &Spill{
		f:       f,
		w:       bufio.NewWriterSize(f, spillBufferSize),
		path:    f.Name(),
		persist: path != "",
	}, nil
}

// Path returns the location of the spill file.
func (s *Spill) Path() string { return s.path }

// Persistent reports whether the file survives Close.
func (s *Spill) Persistent() bool { return s.persist }

// Size returns the number of bytes written.
func (s *Spill) Size() int64 { return s.size }

// Write appends p to the spill.
func (s *Spill) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	s.size += int64(n)
	if err != nil {
		return n, fault.LocalIO("write "+s.path, err)
	}
	return n, nil
}

// Rewind flushes pending writes and returns a reader positioned at the
// start of the stream.
func (s *Spill) Rewind() (io.Reader, error) {
	if err := s.w.Flush(); err != nil {
		return nil, fault.LocalIO("flush "+s.path, err)
	}
	if _, err := s.f.Seek(0, io.SeekStart); err != nil {
		return nil, fault.LocalIO("seek "+s.path, err)
	}
	return bufio.NewReaderSize(s.f, spillBufferSize), nil
}

// Close flushes and closes the file and removes it unless it is persistent.
func (s *Spill) Close() error {
	if s.f == nil {
		return nil
	}
	f := s.f
	s.f = nil

	flushErr := s.w.Flush()
	err := errors.Join(flushErr, f.Close())
	if !s.persist {
		err = errors.Join(err, os.Remove(s.path))
	}
	if err != nil {
		return fault.LocalIO("close "+s.path, err)
	}
	return nil
}
