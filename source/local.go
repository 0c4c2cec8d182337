package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-diffspec/fault"
	"github.com/cwbudde/algo-diffspec/internal/fsutil"
)

// Local is a file opened read-only and locked exclusively until Close.
type Local struct {
	path string
	f    *os.File
	size int64
}

// OpenLocal opens and locks path. A file locked by another holder is an
// error rather than a wait.
func OpenLocal(path string) (*Local, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fault.LocalIO("open "+path, err)
	}

	if err := fsutil.Lock(f); err != nil {
		_ = f.Close()
		return nil, fault.LocalIO("lock "+path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = fsutil.Unlock(f)
		_ = f.Close()
		return nil, fault.LocalIO("stat "+path, err)
	}

	return &Local{path: path, f: f, size: info.Size()}, nil
}

// Locator returns the file path.
func (l *Local) Locator() string { return l.path }

// Size returns the file size observed at open.
func (l *Local) Size() int64 { return l.size }

// ReadRange reads exactly length bytes at offset. A short read is an error.
func (l *Local) ReadRange(_ context.Context, offset int64, length int) ([]byte, error) {
	op := fmt.Sprintf("read %s [%d,%d)", l.path, offset, offset+int64(length))
	if l.f == nil {
		return nil, fault.LocalIO(op, os.ErrClosed)
	}
	if err := checkRange(l.size, offset, length); err != nil {
		return nil, fault.LocalIO(op, err)
	}

	buf := make([]byte, length)
	n, err := l.f.ReadAt(buf, offset)
	if n == length {
		return buf, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return nil, fault.LocalIO(op, err)
}

// Close unlocks and closes the file.
func (l *Local) Close() error {
	if l.f == nil {
		return nil
	}
	f := l.f
	l.f = nil

	unlockErr := fsutil.Unlock(f)
	closeErr := f.Close()
	if err := errors.Join(unlockErr, closeErr); err != nil {
		return fault.LocalIO("close "+l.path, err)
	}
	return nil
}
