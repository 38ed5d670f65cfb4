package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/ladsynth/internal/ctxlog"
	"github.com/specialistvlad/ladsynth/internal/fsutil"
)

// DocumentExtension is appended to the base name of every batch output.
const DocumentExtension = ".smbp"

// Batch builds every specification found in Config.Specs into Config.OutDir
// with at most Config.WorkerCount builds in flight. The first failing build
// cancels the rest; documents already written stay in place.
func (a *App) Batch(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	specs, err := fsutil.Expand(a.config.Specs, SpecExtensions...)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		return fmt.Errorf("%w: no specification found in %v", ErrInvalidConfig, a.config.Specs)
	}
	outputs, err := outputPaths(a.config.OutDir, specs)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.config.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	a.logger.Info("🚀 Starting batch build.", "specs", len(specs), "workers", a.config.WorkerCount)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.WorkerCount)
	for i, spec := range specs {
		g.Go(func() error {
			if err := a.build(gctx, spec, outputs[i]); err != nil {
				return fmt.Errorf("%s: %w", spec, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("🏁 Batch build finished.", "documents", len(specs))
	return nil
}

// outputPaths maps each spec to <dir>/<base>.smbp and rejects two specs
// that would write the same document.
func outputPaths(dir string, specs []string) ([]string, error) {
	out := make([]string, len(specs))
	owner := make(map[string]string, len(specs))
	for i, spec := range specs {
		base := strings.TrimSuffix(filepath.Base(spec), filepath.Ext(spec))
		out[i] = filepath.Join(dir, base+DocumentExtension)
		if prev, ok := owner[out[i]]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrInvalidConfig, prev, spec, out[i])
		}
		owner[out[i]] = spec
	}
	return out, nil
}
