package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/ladsynth/internal/config"
	"github.com/specialistvlad/ladsynth/internal/ctxlog"
	"github.com/specialistvlad/ladsynth/internal/document"
	"github.com/specialistvlad/ladsynth/internal/hcl"
	"github.com/specialistvlad/ladsynth/internal/pattern"
	"github.com/specialistvlad/ladsynth/internal/yamlspec"
)

// SpecExtensions are the file extensions batch mode picks up in directories.
var SpecExtensions = []string{".hcl", ".yaml", ".yml"}

// Generate builds the single configured specification into Config.Out.
func (a *App) Generate(ctx context.Context) error {
	return a.build(ctxlog.WithLogger(ctx, a.logger), a.config.Specs[0], a.config.Out)
}

func (a *App) build(ctx context.Context, spec, out string) error {
	logger := ctxlog.FromContext(ctx).With("spec", specLabel(spec))
	ctx = ctxlog.WithLogger(ctx, logger)

	model, conv, err := load(ctx, spec)
	if err != nil {
		return err
	}
	prog, err := pattern.Compile(ctx, model, conv)
	if err != nil {
		return err
	}
	doc, err := document.NewSynthesizer(a.skeleton).Render(ctx, prog)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := document.WriteFileAtomic(out, doc, 0o644); err != nil {
		return err
	}
	logger.Info("Document written.", "program", prog.Name, "out", out, "rungs", len(prog.Rungs()), "bytes", len(doc))
	return nil
}

// load picks the loader from the extension of spec. Directories are read as
// HCL; a value that names no file and looks like HCL source is parsed inline.
func load(ctx context.Context, spec string) (*config.Model, config.Converter, error) {
	info, err := os.Stat(spec)
	if err != nil {
		if os.IsNotExist(err) && isInline(spec) {
			ctxlog.FromContext(ctx).Debug("Parsing inline specification.")
			return hcl.NewLoader().LoadSource(ctx, "inline.hcl", []byte(spec))
		}
		return nil, nil, fmt.Errorf("specification: %w", err)
	}
	if info.IsDir() {
		return hcl.NewLoader().Load(ctx, spec)
	}
	switch strings.ToLower(filepath.Ext(spec)) {
	case ".yaml", ".yml":
		return yamlspec.NewLoader().Load(ctx, spec)
	case ".hcl":
		return hcl.NewLoader().Load(ctx, spec)
	}
	return nil, nil, fmt.Errorf("%w: %s: unsupported extension, expected one of %v", config.ErrInvalidSpec, spec, SpecExtensions)
}

func isInline(spec string) bool {
	return strings.ContainsAny(spec, "{\n")
}

func specLabel(spec string) string {
	if isInline(spec) {
		return "<inline>"
	}
	return spec
}
