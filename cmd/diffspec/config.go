package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-diffspec/config"
)

// buildConfig merges the optional YAML file, the flags the user actually set
// and the positional inputs, in increasing precedence.
func buildConfig(cmd *cobra.Command, args []string, f *flags) (config.RunConfig, error) {
	if f.configPath == "" {
		cfg := f.cfg
		applyArgs(&cfg, args)
		return cfg, nil
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}

	cmd.Flags().Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "mode":
			cfg.Mode = f.cfg.Mode
		case "chunk":
			cfg.Chunk = f.cfg.Chunk
		case "precision":
			cfg.Precision = f.cfg.Precision
		case "output":
			cfg.Output = f.cfg.Output
		case "diff-file":
			cfg.DiffFile = f.cfg.DiffFile
		case "test-run":
			cfg.TestRun = f.cfg.TestRun
		case "retries":
			cfg.Retries = f.cfg.Retries
		case "timeout":
			cfg.FetchTimeout = f.cfg.FetchTimeout
		case "parallel":
			cfg.Parallel = f.cfg.Parallel
		case "rate":
			cfg.RateLimit = f.cfg.RateLimit
		case "window":
			cfg.Window = f.cfg.Window
		}
	})
	applyArgs(&cfg, args)
	return cfg, nil
}

func applyArgs(cfg *config.RunConfig, args []string) {
	if len(args) > 0 {
		cfg.Original = args[0]
	}
	if len(args) > 1 {
		cfg.New = args[1]
	}
}
