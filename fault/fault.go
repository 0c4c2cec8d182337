// Package fault classifies the failures a diffspec run can end with.
//
// Every error returned by the other packages wraps exactly one of the
// sentinel kinds below, so callers can branch with errors.Is on the kind
// while still seeing the underlying cause.
package fault

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks invalid parameters or unusable paths found at setup.
	ErrConfiguration = errors.New("configuration error")
	// ErrRemoteCapability marks a malformed URL or a server without range support.
	ErrRemoteCapability = errors.New("remote capability error")
	// ErrRemoteFetch marks a range fetch that failed after all retries.
	ErrRemoteFetch = errors.New("remote fetch error")
	// ErrLocalIO marks open, lock, stat, seek, read or write failures on local files.
	ErrLocalIO = errors.New("local i/o error")
	// ErrTransform marks a failure inside the magnitude-spectrum transform.
	ErrTransform = errors.New("transform error")
)

// Error carries a failure kind, the operation that failed and its cause.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil && e.Op == "":
		return e.Kind.Error()
	case e.Err == nil:
		return e.Op
	case e.Op == "":
		return e.Err.Error()
	default:
		return e.Op + ": " + e.Err.Error()
	}
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func wrap(kind error, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Config returns a configuration error with a formatted message.
func Config(format string, args ...any) error {
	return wrap(ErrConfiguration, "", fmt.Errorf(format, args...))
}

// Capability wraps err as a remote capability error for op.
func Capability(op string, err error) error {
	return wrap(ErrRemoteCapability, op, err)
}

// Fetch wraps err as a remote fetch error for op.
func Fetch(op string, err error) error {
	return wrap(ErrRemoteFetch, op, err)
}

// LocalIO wraps err as a local i/o error for op.
func LocalIO(op string, err error) error {
	return wrap(ErrLocalIO, op, err)
}

// Transform wraps err as a transform error for op.
func Transform(op string, err error) error {
	return wrap(ErrTransform, op, err)
}

// KindOf returns the sentinel kind carried by err, or nil when err is not
// classified.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrConfiguration,
		ErrRemoteCapability,
		ErrRemoteFetch,
		ErrLocalIO,
		ErrTransform,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
