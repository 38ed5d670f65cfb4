package app

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
)

// ErrInvalidConfig marks a configuration the App refuses to start with.
var ErrInvalidConfig = errors.New("invalid configuration")

var logFormats = []string{"text", "json"}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// SkeletonPath is the template document. Empty selects the built-in
	// reference skeleton.
	SkeletonPath string
	// Specs are process specification files or directories. A single build
	// also accepts inline HCL source here.
	Specs []string
	// Out is the document written by a single build.
	Out string
	// OutDir receives one <spec-base>.smbp per specification in batch mode.
	OutDir string

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Specs) == 0 {
		return nil, fmt.Errorf("%w: at least one specification is required", ErrInvalidConfig)
	}
	switch {
	case cfg.Out == "" && cfg.OutDir == "":
		return nil, fmt.Errorf("%w: an output file or directory is required", ErrInvalidConfig)
	case cfg.Out != "" && cfg.OutDir != "":
		return nil, fmt.Errorf("%w: output file and output directory are mutually exclusive", ErrInvalidConfig)
	case cfg.Out != "" && len(cfg.Specs) > 1:
		return nil, fmt.Errorf("%w: a single build takes one specification, got %d", ErrInvalidConfig, len(cfg.Specs))
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		return nil, fmt.Errorf("%w: log level %q, must be one of %v", ErrInvalidConfig, cfg.LogLevel, levelNames())
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("%w: log format %q, must be one of %v", ErrInvalidConfig, cfg.LogFormat, logFormats)
	}

	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, cfg.WorkerCount)
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = runtime.NumCPU()
	}
	return &cfg, nil
}
