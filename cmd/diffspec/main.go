// Command diffspec writes the magnitude spectra of the XOR difference of two
// byte streams, one value per line.
//
// Usage:
//
//	diffspec [flags] <original> <new>
//
// Each input is a local path or, depending on --mode, an http(s) URL served
// with byte-range support.
//
// Examples:
//
//	diffspec old.img new.img
//	diffspec -m O -c 65536 -p 1024 https://mirror.example/old.img new.img
//	diffspec -m B -t -vv https://a.example/x.bin https://b.example/x.bin
//	diffspec --config run.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-diffspec/config"
	"github.com/cwbudde/algo-diffspec/dsp/window"
	"github.com/cwbudde/algo-diffspec/internal/logging"
	"github.com/cwbudde/algo-diffspec/pipeline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f := newFlags()
	if err := execute(ctx, newRootCmd(f), f); err != nil {
		stop()
		os.Exit(1)
	}
}

// execute runs cmd and reports failures cobra returns before RunE, such as
// bad arguments or flags. Run failures were already logged by RunE.
func execute(ctx context.Context, cmd *cobra.Command, f *flags) error {
	err := cmd.ExecuteContext(ctx)
	if err != nil && !f.logged {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\nRun '%s --help' for usage.\n", err, cmd.CommandPath())
	}
	return err
}

type flags struct {
	configPath string
	verbosity  int
	logJSON    bool
	cfg        config.RunConfig

	// logged is set once RunE has logged its own failure.
	logged bool
}

func newFlags() *flags {
	return &flags{cfg: config.Default()}
}

func newRootCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diffspec [flags] <original> <new>",
		Short: "Spectral fingerprint of the byte difference of two files or URLs",
		Long: `diffspec XORs two byte streams chunk by chunk and writes the FFT
magnitude spectrum of every precision-sized window of the difference to the
output file, one value per line.

Modes: F both local files, O original is a URL, N new is a URL, B both URLs.
URLs must answer HEAD with "Accept-Ranges: bytes".`,
		Args:          validateArgs(f),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New(cmd.ErrOrStderr(), logging.Options{
				Verbosity:  f.verbosity,
				JSON:       f.logJSON,
				Production: logging.Production(),
			})

			if err := run(cmd, args, f, log); err != nil {
				log.Error().Err(err).Msg("diffspec failed")
				f.logged = true
				return err
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP((*string)(&f.cfg.Mode), "mode", "m", string(config.DefaultMode), "input kinds: F (files), O (original URL), N (new URL), B (both URLs)")
	fs.IntVarP(&f.cfg.Chunk, "chunk", "c", config.DefaultChunk, "bytes compared per diff step")
	fs.IntVarP(&f.cfg.Precision, "precision", "p", config.DefaultPrecision, "window length in bytes, a power of 2")
	fs.StringVarP(&f.cfg.Output, "output", "o", config.DefaultOutput, "result file")
	fs.StringVarP(&f.cfg.DiffFile, "diff-file", "D", "", "keep the XOR stream in this file")
	fs.BoolVarP(&f.cfg.TestRun, "test-run", "t", false, "stop the diff phase after 10 chunks")
	fs.IntVar(&f.cfg.Retries, "retries", config.DefaultRetries, "extra attempts per failed range fetch")
	fs.DurationVar(&f.cfg.FetchTimeout, "timeout", config.DefaultFetchTimeout, "timeout of one range fetch attempt")
	fs.BoolVar(&f.cfg.Parallel, "parallel", false, "fetch both ranges of a step concurrently")
	fs.Float64Var(&f.cfg.RateLimit, "rate", 0, "max remote requests per second, 0 for no limit")
	fs.StringVarP(&f.cfg.Window, "window", "w", "", "taper each window: "+strings.Join(window.Names(), ", "))
	fs.StringVar(&f.configPath, "config", "", "YAML file with run parameters; flags override it")
	fs.CountVarP(&f.verbosity, "verbose", "v", "log more, repeat for debug output")
	fs.BoolVar(&f.logJSON, "log-json", false, "log JSON lines instead of console text")

	return cmd
}

// validateArgs requires both inputs unless a config file may supply them.
func validateArgs(f *flags) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if f.configPath != "" {
			return cobra.RangeArgs(0, 2)(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	}
}

func run(cmd *cobra.Command, args []string, f *flags, log zerolog.Logger) error {
	cfg, err := buildConfig(cmd, args, f)
	if err != nil {
		return err
	}

	cfg, err = cfg.Validate()
	if err != nil {
		return err
	}

	log.Info().
		Str("mode", string(cfg.Mode)).
		Str("original", cfg.Original).
		Str("new", cfg.New).
		Int("chunk", cfg.Chunk).
		Int("precision", cfg.Precision).
		Msg("starting")

	res, err := pipeline.New(cfg, pipeline.WithLogger(log)).Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Result file:", res.Output)
	if res.DiffFile != "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Diff file:", res.DiffFile)
	}
	return nil
}
