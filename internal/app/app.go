package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/ladsynth/internal/ctxlog"
	"github.com/specialistvlad/ladsynth/internal/document"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	config   *Config
	logger   *slog.Logger
	skeleton *document.Skeleton
}

// NewApp builds an App with its own logger, written to logW, and loads the
// skeleton every build of this App renders into.
func NewApp(logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg, logW)
	logger.Debug("Logger configured successfully.")

	skel := document.ReferenceSkeleton()
	if cfg.SkeletonPath != "" {
		var err error
		if skel, err = document.LoadSkeleton(cfg.SkeletonPath); err != nil {
			return nil, err
		}
		logger.Debug("Skeleton loaded.", "path", cfg.SkeletonPath)
	} else {
		logger.Debug("Using the built-in reference skeleton.")
	}

	return &App{config: cfg, logger: logger, skeleton: skel}, nil
}

// Run performs the build the configuration asks for.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if a.config.OutDir != "" {
		return a.Batch(ctx)
	}
	return a.Generate(ctx)
}
