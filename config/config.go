package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-diffspec/fault"
	"github.com/cwbudde/algo-diffspec/internal/fsutil"
)

// Mode tells which of the two inputs are URLs.
type Mode string

const (
	// ModeFiles treats both inputs as local paths.
	ModeFiles Mode = "F"
	// ModeOriginalURL treats only the original input as a URL.
	ModeOriginalURL Mode = "O"
	// ModeNewURL treats only the new input as a URL.
	ModeNewURL Mode = "N"
	// ModeBothURL treats both inputs as URLs.
	ModeBothURL Mode = "B"
)

// OriginalRemote reports whether the original input is fetched over HTTP.
func (m Mode) OriginalRemote() bool {
	return m == ModeOriginalURL || m == ModeBothURL
}

// NewRemote reports whether the new input is fetched over HTTP.
func (m Mode) NewRemote() bool {
	return m == ModeNewURL || m == ModeBothURL
}

const (
	DefaultMode         = ModeFiles
	DefaultChunk        = 1024 * 1024
	DefaultPrecision    = 128 * 16
	DefaultOutput       = "./result.csv"
	DefaultRetries      = 3
	DefaultFetchTimeout = 2 * time.Second
)

// RunConfig holds every parameter of one run.
type RunConfig struct {
	Mode      Mode   `yaml:"mode" validate:"required,oneof=F O N B"`
	Original  string `yaml:"original" validate:"required"`
	New       string `yaml:"new" validate:"required"`
	Chunk     int    `yaml:"chunk" validate:"gte=1"`
	Precision int    `yaml:"precision" validate:"gte=1,pow2"`
	Output    string `yaml:"output" validate:"required"`
	// DiffFile keeps the XOR stream on disk after the run when set.
	DiffFile string `yaml:"diff_file"`
	// TestRun caps the diff phase at ten chunks.
	TestRun bool `yaml:"test_run"`

	Retries      int           `yaml:"retries" validate:"gte=0"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" validate:"gte=0"`
	// Parallel fetches the original and new ranges of one chunk concurrently.
	Parallel bool `yaml:"parallel"`
	// RateLimit bounds remote requests per second; 0 means unlimited.
	RateLimit float64 `yaml:"rate_limit" validate:"gte=0"`
	// Window tapers each analysis window; empty means rectangular.
	Window string `yaml:"window" validate:"window"`
}

// Default returns a RunConfig with every optional field at its default.
func Default() RunConfig {
	return RunConfig{
		Mode:         DefaultMode,
		Chunk:        DefaultChunk,
		Precision:    DefaultPrecision,
		Output:       DefaultOutput,
		Retries:      DefaultRetries,
		FetchTimeout: DefaultFetchTimeout,
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected.
func Load(path string) (RunConfig, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fault.Config("read config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fault.Config("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks c and returns the normalized copy the pipeline runs with.
// Precision larger than the chunk is lowered to fit it. All failures are
// configuration errors.
func (c RunConfig) Validate() (RunConfig, error) {
	if err := validateStruct(c); err != nil {
		return c, err
	}

	if !c.Mode.OriginalRemote() {
		if err := readable(c.Original); err != nil {
			return c, fault.Config("path to original file is invalid or cannot be read: %w", err)
		}
	}
	if !c.Mode.NewRemote() {
		if err := readable(c.New); err != nil {
			return c, fault.Config("path to new file is invalid or cannot be read: %w", err)
		}
	}

	if c.DiffFile != "" {
		if err := fsutil.Writable(filepath.Dir(c.DiffFile)); err != nil {
			return c, fault.Config("path to output diff file is not writeable or its directory doesn't exist: %w", err)
		}
	}
	if err := fsutil.Writable(filepath.Dir(c.Output)); err != nil {
		return c, fault.Config("path to output file is not writeable or its directory doesn't exist: %w", err)
	}

	if err := c.checkDistinctPaths(); err != nil {
		return c, err
	}

	if c.Precision > c.Chunk {
		c.Precision = FloorPowerOf2(c.Chunk)
	}

	return c, nil
}

// checkDistinctPaths rejects an output or diff file that would overwrite a
// local input, and an output that would overwrite the diff file.
func (c RunConfig) checkDistinctPaths() error {
	inputs := []struct {
		name, path string
		remote     bool
	}{
		{"original", c.Original, c.Mode.OriginalRemote()},
		{"new", c.New, c.Mode.NewRemote()},
	}

	for _, in := range inputs {
		if in.remote {
			continue
		}
		if c.DiffFile != "" && fsutil.SameFile(c.DiffFile, in.path) {
			return fault.Config("diff file %s is the %s input", c.DiffFile, in.name)
		}
		if fsutil.SameFile(c.Output, in.path) {
			return fault.Config("output file %s is the %s input", c.Output, in.name)
		}
	}

	if c.DiffFile != "" && fsutil.SameFile(c.Output, c.DiffFile) {
		return fault.Config("output file and diff file are the same: %s", c.Output)
	}
	return nil
}

func readable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &os.PathError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}
	return nil
}
