// Package pipeline runs one diffspec job end to end: open both sources,
// stream their XOR difference into a spill, then window the spill through
// the magnitude transform into the output file.
//
// The two phases never overlap. Local sources are locked for the diff phase
// only and are released on every exit path before analysis starts.
package pipeline

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-diffspec/analysis"
	"github.com/cwbudde/algo-diffspec/config"
	"github.com/cwbudde/algo-diffspec/diff"
	"github.com/cwbudde/algo-diffspec/dsp/spectrum"
	"github.com/cwbudde/algo-diffspec/dsp/window"
	"github.com/cwbudde/algo-diffspec/fetch"
	"github.com/cwbudde/algo-diffspec/source"
)

// Result summarizes a finished run.
type Result struct {
	// DiffLength is the number of difference bytes analyzed.
	DiffLength int64
	Chunks     int
	Windows    int
	Values     int64
	// Chunk and Precision are the effective values after clamping.
	Chunk     int
	Precision int
	// Output is the absolute path of the result file.
	Output string
	// DiffFile is the persisted spill path, empty when the spill was
	// temporary.
	DiffFile string
}

// Runner executes a validated RunConfig.
type Runner struct {
	cfg       config.RunConfig
	log       zerolog.Logger
	client    *fetch.Client
	transform spectrum.MagnitudeTransform
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger sets the run logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.log = l }
}

// WithClient replaces the fetch client built from the config.
func WithClient(c *fetch.Client) Option {
	return func(r *Runner) { r.client = c }
}

// WithTransform replaces the FFT magnitude transform. The configured window
// still applies on top of it.
func WithTransform(t spectrum.MagnitudeTransform) Option {
	return func(r *Runner) { r.transform = t }
}

// New returns a Runner for cfg, which must already be validated.
func New(cfg config.RunConfig, opts ...Option) *Runner {
	r := &Runner{cfg: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.client == nil {
		r.client = fetch.New(
			fetch.WithRetries(cfg.Retries),
			fetch.WithTimeout(cfg.FetchTimeout),
			fetch.WithRateLimit(cfg.RateLimit),
			fetch.WithLogger(r.log),
		)
	}
	if r.transform == nil {
		r.transform = spectrum.NewFFTMagnitude()
	}
	// Validate already rejected unknown names.
	if typ, err := window.Parse(cfg.Window); err == nil {
		r.transform = window.NewTapered(typ, r.transform)
	}
	return r
}

// Run executes both phases. Nothing is written before both sources are
// open and probed. Output already written when a later step fails is left
// in place.
func (r *Runner) Run(ctx context.Context) (res Result, err error) {
	if r.cfg.TestRun {
		r.log.Warn().Int("chunks", diff.TestRunChunks).Msg("test run: diff phase is capped")
	}

	spill, err := r.diffPhase(ctx, &res)
	if spill != nil {
		defer func() {
			err = errors.Join(err, spill.Close())
		}()
		if spill.Persistent() {
			res.DiffFile = spill.Path()
		}
	}
	if err != nil {
		return res, err
	}

	if err := r.analysisPhase(ctx, spill, &res); err != nil {
		return res, err
	}

	r.log.Info().
		Str("output", res.Output).
		Int("windows", res.Windows).
		Int64("values", res.Values).
		Msg("run finished")
	return res, nil
}

// diffPhase opens both sources, then creates the spill and fills it. The
// sources are released before it returns. A non-nil spill is returned
// whenever one was created, even alongside an error.
func (r *Runner) diffPhase(ctx context.Context, res *Result) (spill *diff.Spill, err error) {
	original, updated, err := r.openSources(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, original.Close(), updated.Close())
	}()

	spill, err = diff.CreateSpill(r.cfg.DiffFile)
	if err != nil {
		return nil, err
	}

	r.log.Debug().
		Int64("original_bytes", original.Size()).
		Int64("new_bytes", updated.Size()).
		Msg("sources opened")
	if original.Size() != updated.Size() {
		r.log.Info().
			Int64("original_bytes", original.Size()).
			Int64("new_bytes", updated.Size()).
			Msg("sizes differ, comparing the common prefix only")
	}

	res.Chunk, res.Precision = config.Effective(r.cfg.Chunk, r.cfg.Precision, original.Size(), updated.Size())
	if res.Chunk == 0 {
		r.log.Warn().Msg("an input is empty, nothing to compare")
		return spill, nil
	}

	eng, err := diff.NewEngine(original, updated, diff.Options{
		Chunk:     res.Chunk,
		Precision: res.Precision,
		TestRun:   r.cfg.TestRun,
		Parallel:  r.cfg.Parallel,
	})
	if err != nil {
		return spill, err
	}

	total := eng.Chunks()
	r.log.Info().Int("chunks", total).Int("chunk", res.Chunk).Msg("comparing sources")
	for {
		if err := ctx.Err(); err != nil {
			return spill, err
		}

		chunk, err := eng.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return spill, err
		}
		if _, err := spill.Write(chunk); err != nil {
			return spill, err
		}

		res.Chunks++
		r.log.Debug().Int("chunk", res.Chunks).Int("of", total).Msg("compared")
	}

	res.DiffLength = eng.Offset()
	r.log.Info().Int64("bytes", spill.Size()).Msg("diff phase complete")
	return spill, nil
}

// openSources opens original and new. Two local paths naming the same file
// share one handle, since a second exclusive lock on it would fail.
func (r *Runner) openSources(ctx context.Context) (original, updated source.ByteSource, err error) {
	mode := r.cfg.Mode

	original, err = source.Open(ctx, mode.OriginalRemote(), r.cfg.Original, r.client)
	if err != nil {
		return nil, nil, err
	}

	if !mode.OriginalRemote() && !mode.NewRemote() && source.SameFile(r.cfg.Original, r.cfg.New) {
		r.log.Debug().Str("path", r.cfg.Original).Msg("original and new are the same file")
		return original, original, nil
	}

	updated, err = source.Open(ctx, mode.NewRemote(), r.cfg.New, r.client)
	if err != nil {
		return nil, nil, errors.Join(err, original.Close())
	}
	return original, updated, nil
}

func (r *Runner) analysisPhase(ctx context.Context, spill *diff.Spill, res *Result) (err error) {
	rd, err := spill.Rewind()
	if err != nil {
		return err
	}

	an, err := analysis.NewAnalyzer(rd, res.Precision, r.transform)
	if err != nil {
		return err
	}

	w, err := analysis.CreateWriter(r.cfg.Output)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, w.Close())
		res.Windows = w.Vectors()
		res.Values = w.Values()
	}()

	res.Output = r.cfg.Output
	if abs, err := filepath.Abs(r.cfg.Output); err == nil {
		res.Output = abs
	}

	total := (spill.Size() + int64(res.Precision) - 1) / int64(res.Precision)
	r.log.Info().Int64("windows", total).Int("precision", res.Precision).Msg("computing spectra")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		vec, err := an.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := w.WriteVector(vec); err != nil {
			return err
		}

		r.log.Debug().Int("window", an.Windows()).Int64("of", total).Msg("transformed")
	}
}
