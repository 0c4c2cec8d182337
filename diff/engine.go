package diff

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-diffspec/fault"
	"github.com/cwbudde/algo-diffspec/source"
)

// TestRunChunks is the chunk cap applied in test-run mode.
const TestRunChunks = 10

// Options controls an Engine.
type Options struct {
	// Chunk is the number of bytes read from each source per step.
	Chunk int
	// Precision bounds the run length of a single XOR step.
	Precision int
	// TestRun stops the engine after TestRunChunks chunks.
	TestRun bool
	// Parallel reads the two ranges of a step concurrently.
	Parallel bool
}

// Engine yields the XOR difference of two sources one chunk at a time.
// It is finite and cannot be restarted.
type Engine struct {
	original source.ByteSource
	updated  source.ByteSource
	opts     Options

	length  int64
	offset  int64
	emitted int
}

// NewEngine pairs original and updated. Chunk and Precision must be >= 1.
func NewEngine(original, updated source.ByteSource, opts Options) (*Engine, error) {
	if opts.Chunk < 1 {
		return nil, fault.Config("chunk cannot be lower than 1: %d", opts.Chunk)
	}
	if opts.Precision < 1 {
		return nil, fault.Config("precision cannot be lower than 1: %d", opts.Precision)
	}

	return &Engine{
		original: original,
		updated:  updated,
		opts:     opts,
		length:   min(original.Size(), updated.Size()),
	}, nil
}

// Length returns the number of bytes the full difference stream covers.
func (e *Engine) Length() int64 { return e.length }

// Offset returns the number of bytes emitted so far.
func (e *Engine) Offset() int64 { return e.offset }

// Chunks returns how many chunks the engine will emit in total.
func (e *Engine) Chunks() int {
	chunk := int64(e.opts.Chunk)
	n := int((e.length + chunk - 1) / chunk)
	if e.opts.TestRun {
		n = min(n, TestRunChunks)
	}
	return n
}

// Next returns the next difference chunk, or io.EOF once the shorter source
// is exhausted or the test-run cap is reached.
func (e *Engine) Next(ctx context.Context) ([]byte, error) {
	if e.offset >= e.length || (e.opts.TestRun && e.emitted >= TestRunChunks) {
		return nil, io.EOF
	}

	n := int(min(int64(e.opts.Chunk), e.length-e.offset))
	a, b, err := e.read(ctx, n)
	if err != nil {
		return nil, err
	}

	XOR(a, a, b, e.opts.Precision)
	e.offset += int64(n)
	e.emitted++

	return a, nil
}

func (e *Engine) read(ctx context.Context, n int) (a, b []byte, err error) {
	if !e.opts.Parallel {
		if a, err = e.original.ReadRange(ctx, e.offset, n); err != nil {
			return nil, nil, err
		}
		if b, err = e.updated.ReadRange(ctx, e.offset, n); err != nil {
			return nil, nil, err
		}
		return a, b, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = e.original.ReadRange(gctx, e.offset, n)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = e.updated.ReadRange(gctx, e.offset, n)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
