package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/specialistvlad/ladsynth/internal/config"
	"github.com/specialistvlad/ladsynth/internal/ctxlog"
	"github.com/specialistvlad/ladsynth/internal/fsutil"
	"github.com/specialistvlad/ladsynth/internal/schema"
)

// Extensions lists the file extensions picked up when a directory is loaded.
var Extensions = []string{".hcl"}

// Loader is the HCL implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL specification loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every file found under paths and merges their blocks, in file
// order, into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.Expand(paths, Extensions...)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}
	for _, file := range files {
		f, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("%w: failed to parse HCL file %s: %w", config.ErrInvalidSpec, file, diags)
		}
		if err := l.merge(ctx, model, f, file); err != nil {
			return nil, nil, err
		}
	}
	return l.finish(ctx, model)
}

// LoadSource parses a single specification held in memory.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*config.Model, config.Converter, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, nil, fmt.Errorf("%w: failed to parse HCL source %s: %w", config.ErrInvalidSpec, filename, diags)
	}
	model := &config.Model{}
	if err := l.merge(ctx, model, f, filename); err != nil {
		return nil, nil, err
	}
	return l.finish(ctx, model)
}

func (l *Loader) merge(ctx context.Context, model *config.Model, f *hcl.File, name string) error {
	var root schema.Spec
	if diags := gohcl.DecodeBody(f.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("%w: failed to decode HCL file %s: %w", config.ErrInvalidSpec, name, diags)
	}

	for _, p := range root.Programs {
		if model.Program != nil {
			return fmt.Errorf("%w: %s: second program block %q, program %q is already declared", config.ErrInvalidSpec, name, p.Name, model.Program.Name)
		}
		model.Program = translateProgram(p)
	}
	for _, m := range root.Memory {
		model.Memory = append(model.Memory, translateMemory(m))
	}
	for _, s := range root.Symbols {
		model.Symbols = append(model.Symbols, translateSymbol(s))
	}
	for _, t := range root.Timers {
		model.Timers = append(model.Timers, translateTimer(t))
	}
	for _, m := range root.Modules {
		model.Modules = append(model.Modules, translateModule(m))
	}
	for _, r := range root.Rungs {
		rung, err := l.translateRung(r)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		model.Rungs = append(model.Rungs, rung)
	}
	ctxlog.FromContext(ctx).Debug("HCL file merged.", "file", name, "symbols", len(root.Symbols), "rungs", len(root.Rungs))
	return nil
}

func (l *Loader) finish(ctx context.Context, model *config.Model) (*config.Model, config.Converter, error) {
	if model.Program == nil {
		return nil, nil, fmt.Errorf("%w: no program block", config.ErrInvalidSpec)
	}
	ctxlog.FromContext(ctx).Debug("HCL loading complete.",
		"program", model.Program.Name,
		"symbols", len(model.Symbols),
		"timers", len(model.Timers),
		"modules", len(model.Modules),
		"rungs", len(model.Rungs),
	)
	return model, NewConverter(), nil
}
