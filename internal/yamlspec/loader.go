package yamlspec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/ladsynth/internal/config"
	"github.com/specialistvlad/ladsynth/internal/ctxlog"
	"github.com/specialistvlad/ladsynth/internal/fsutil"
	hclspec "github.com/specialistvlad/ladsynth/internal/hcl"
)

// Extensions lists the file extensions picked up when a directory is loaded.
var Extensions = []string{".yaml", ".yml"}

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML specification loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every YAML file found under paths and merges them in file order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Converter, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.Expand(paths, Extensions...)
	if err != nil {
		return nil, nil, err
	}

	model := &config.Model{}
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, nil, fmt.Errorf("read specification: %w", err)
		}
		if err := l.merge(ctx, model, file, src); err != nil {
			return nil, nil, err
		}
	}
	return l.finish(ctx, model)
}

// LoadSource reads a single specification held in memory.
func (l *Loader) LoadSource(ctx context.Context, filename string, src []byte) (*config.Model, config.Converter, error) {
	model := &config.Model{}
	if err := l.merge(ctx, model, filename, src); err != nil {
		return nil, nil, err
	}
	return l.finish(ctx, model)
}

func (l *Loader) merge(ctx context.Context, model *config.Model, filename string, src []byte) error {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: failed to decode YAML file %s: %w", config.ErrInvalidSpec, filename, err)
	}

	if doc.Program != nil {
		if model.Program != nil {
			return fmt.Errorf("%w: %s: second program %q, program %q is already declared", config.ErrInvalidSpec, filename, doc.Program.Name, model.Program.Name)
		}
		if doc.Program.Name == "" {
			return fmt.Errorf("%w: %s: program without a name", config.ErrInvalidSpec, filename)
		}
		model.Program = &config.Program{Name: doc.Program.Name, Width: doc.Program.Width, Sections: doc.Program.Sections}
	}

	zones := make([]string, 0, len(doc.Memory))
	for zone := range doc.Memory {
		zones = append(zones, zone)
	}
	sort.Strings(zones)
	for _, zone := range zones {
		m := doc.Memory[zone]
		if m == nil {
			continue
		}
		model.Memory = append(model.Memory, &config.ZoneLayout{
			Zone:              zone,
			Capacity:          m.Capacity,
			RetentiveBoundary: m.RetentiveBoundary,
			Reserved:          m.Reserved,
		})
	}

	for _, s := range doc.Symbols {
		if s.Name == "" || s.Zone == "" {
			return fmt.Errorf("%w: %s: symbol needs a name and a zone", config.ErrInvalidSpec, filename)
		}
		model.Symbols = append(model.Symbols, &config.Symbol{Name: s.Name, Zone: s.Zone, Index: s.Index, Retain: s.Retain, Comment: s.Comment})
	}
	for _, t := range doc.Timers {
		if t.Name == "" {
			return fmt.Errorf("%w: %s: timer without a name", config.ErrInvalidSpec, filename)
		}
		model.Timers = append(model.Timers, &config.Timer{Name: t.Name, Index: t.Index, Preset: t.Preset, Base: t.Base, Mode: t.Mode, Comment: t.Comment})
	}
	for _, m := range doc.Modules {
		out := &config.Module{Reference: m.Reference, Index: m.Index, Capacity: m.Capacity}
		for _, ch := range m.Channels {
			out.Channels = append(out.Channels, &config.Channel{
				Index:    ch.Index,
				Symbol:   ch.Symbol,
				Comment:  ch.Comment,
				Sensor:   ch.Sensor,
				Min:      ch.Min,
				Max:      ch.Max,
				Sampling: ch.Sampling,
			})
		}
		model.Modules = append(model.Modules, out)
	}
	for _, r := range doc.Rungs {
		rung, err := translateRung(filename, r)
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
		model.Rungs = append(model.Rungs, rung)
	}

	ctxlog.FromContext(ctx).Debug("YAML file merged.", "file", filename, "symbols", len(doc.Symbols), "rungs", len(doc.Rungs))
	return nil
}

func (l *Loader) finish(ctx context.Context, model *config.Model) (*config.Model, config.Converter, error) {
	if model.Program == nil {
		return nil, nil, fmt.Errorf("%w: no program", config.ErrInvalidSpec)
	}
	ctxlog.FromContext(ctx).Debug("YAML loading complete.",
		"program", model.Program.Name,
		"symbols", len(model.Symbols),
		"rungs", len(model.Rungs),
	)
	return model, hclspec.NewConverter(), nil
}
