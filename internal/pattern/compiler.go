package pattern

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/specialistvlad/ladsynth/internal/address"
	"github.com/specialistvlad/ladsynth/internal/config"
	"github.com/specialistvlad/ladsynth/internal/ctxlog"
	"github.com/specialistvlad/ladsynth/internal/hardware"
	"github.com/specialistvlad/ladsynth/internal/ladder"
	"github.com/specialistvlad/ladsynth/internal/program"
)

type compiler struct {
	conv    config.Converter
	reg     *address.Registry
	prog    *program.Program
	width   int
	evalCtx *hcl.EvalContext
}

type expander func(ctx context.Context, c *compiler, r *config.Rung) (*ladder.Graph, error)

var patterns = map[string]expander{
	"output":  expandOutput,
	"latch":   expandLatch,
	"compare": expandCompare,
	"assign":  expandAssign,
	"scale":   expandScale,
	"timeout": expandTimeout,
	"ladder":  expandLadder,
}

// Names lists the known patterns in alphabetical order.
func Names() []string {
	out := make([]string, 0, len(patterns))
	for name := range patterns {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Compile allocates everything m declares and expands its rungs, in order,
// into a program. conv binds rung arguments; it comes from the loader that
// produced m.
func Compile(ctx context.Context, m *config.Model, conv config.Converter) (*program.Program, error) {
	if m.Program == nil {
		return nil, fmt.Errorf("%w: no program", config.ErrInvalidSpec)
	}
	logger := ctxlog.FromContext(ctx).With("program", m.Program.Name)
	ctx = ctxlog.WithLogger(ctx, logger)

	reg, err := newRegistry(m.Memory)
	if err != nil {
		return nil, err
	}
	c := &compiler{
		conv:  conv,
		reg:   reg,
		prog:  program.New(m.Program.Name, reg),
		width: m.Program.Width,
	}
	c.prog.Sections = m.Program.Sections

	for _, s := range m.Symbols {
		if err := c.declareSymbol(ctx, s); err != nil {
			return nil, fmt.Errorf("symbol %q: %w", s.Name, err)
		}
	}
	for _, t := range m.Timers {
		if err := c.declareTimer(ctx, t); err != nil {
			return nil, fmt.Errorf("timer %q: %w", t.Name, err)
		}
	}
	for _, mod := range m.Modules {
		if err := c.declareModule(ctx, mod); err != nil {
			return nil, fmt.Errorf("module %s at %d: %w", mod.Reference, mod.Index, err)
		}
	}

	c.evalCtx = c.evalContext()
	for _, r := range m.Rungs {
		if err := c.rung(ctx, r); err != nil {
			return nil, err
		}
	}
	logger.Debug("Program compiled.", "rungs", len(m.Rungs), "symbols", len(reg.Symbols()))
	return c.prog, nil
}

func newRegistry(memory []*config.ZoneLayout) (*address.Registry, error) {
	defaults := address.DefaultLayout()
	var opts []address.Option
	for _, m := range memory {
		zone, err := address.ParseZone(m.Zone)
		if err != nil {
			return nil, fmt.Errorf("%w: memory: %w", config.ErrInvalidSpec, err)
		}
		zl := defaults[zone]
		if m.Capacity != nil {
			zl.Capacity = *m.Capacity
		}
		if m.RetentiveBoundary != nil {
			zl.RetentiveBoundary = *m.RetentiveBoundary
		}
		if m.Reserved != nil {
			zl.Reserved = *m.Reserved
		}
		if zl.Capacity < 0 || zl.RetentiveBoundary < 0 || zl.Reserved < 0 {
			return nil, fmt.Errorf("%w: memory %s: negative layout value", config.ErrInvalidSpec, zone)
		}
		opts = append(opts, address.WithZoneLayout(zone, zl))
	}
	return address.New(opts...), nil
}

func (c *compiler) declareSymbol(ctx context.Context, s *config.Symbol) error {
	logger := ctxlog.FromContext(ctx)

	zone, err := address.ParseZone(s.Zone)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidSpec, err)
	}
	switch zone {
	case address.ZoneAnalog:
		return fmt.Errorf("%w: analog symbols are declared on module channels", config.ErrInvalidSpec)
	case address.ZoneTimer:
		return fmt.Errorf("%w: timer symbols are declared with their settings as timers", config.ErrInvalidSpec)
	}

	retain := s.Retain != nil && *s.Retain
	if retain && c.reg.ZoneBoundary(zone) == 0 {
		return fmt.Errorf("%w: zone %s has no retentive range", address.ErrRetentionMismatch, zone)
	}

	var addr address.Address
	switch {
	case s.Index != nil:
		addr, err = c.reg.AllocateAt(zone, *s.Index)
	case retain:
		addr, err = c.reg.AllocateRetentive(zone)
	default:
		addr, err = c.reg.Allocate(zone)
	}
	if err != nil {
		return err
	}

	if s.Retain != nil && *s.Retain != addr.Retentive {
		return fmt.Errorf("%w: %s requested retain=%t but the address is retentive=%t", address.ErrRetentionMismatch, addr, *s.Retain, addr.Retentive)
	}
	if s.Retain == nil && addr.Retentive {
		logger.Warn("Retentive address allocated implicitly.", "symbol", s.Name, "address", addr.String())
	}

	if _, err := c.reg.Bind(addr, s.Name, s.Comment); err != nil {
		return err
	}
	logger.Debug("Symbol allocated.", "symbol", s.Name, "address", addr.String(), "retentive", addr.Retentive)
	return nil
}

func (c *compiler) declareTimer(ctx context.Context, t *config.Timer) error {
	base, err := ladder.ParseTimeBase(t.Base)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrInvalidSpec, err)
	}
	mode := ladder.ModeOnDelay
	if t.Mode != "" {
		if mode, err = ladder.ParseTimerMode(t.Mode); err != nil {
			return fmt.Errorf("%w: %w", config.ErrInvalidSpec, err)
		}
	}
	if t.Preset < 0 {
		return fmt.Errorf("%w: negative preset %d", ErrInvalidArgument, t.Preset)
	}

	var addr address.Address
	if t.Index != nil {
		addr, err = c.reg.AllocateAt(address.ZoneTimer, *t.Index)
	} else {
		addr, err = c.reg.Allocate(address.ZoneTimer)
	}
	if err != nil {
		return err
	}
	if _, err := c.reg.Bind(addr, t.Name, t.Comment); err != nil {
		return err
	}
	if err := c.prog.DeclareTimer(program.Timer{
		Name:    t.Name,
		Address: addr,
		Preset:  t.Preset,
		Base:    base,
		Mode:    mode,
		Comment: t.Comment,
	}); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Timer declared.", "symbol", t.Name, "address", addr.String(), "preset", t.Preset, "base", base)
	return nil
}

func (c *compiler) declareModule(ctx context.Context, m *config.Module) error {
	b, err := hardware.DeclareModule(c.reg, m.Index, m.Reference, m.Capacity)
	if err != nil {
		return err
	}
	if !b.Catalogued() {
		ctxlog.FromContext(ctx).Warn("Module is not in the catalogue; every sensor type is accepted.", "reference", m.Reference, "capacity", m.Capacity)
	}
	for _, ch := range m.Channels {
		sensor := hardware.SensorNotUsed
		if ch.Sensor != "" {
			if sensor, err = hardware.ParseSensor(ch.Sensor); err != nil {
				return fmt.Errorf("%w: channel %d: %w", config.ErrInvalidSpec, ch.Index, err)
			}
		}
		if sensor == hardware.SensorNotUsed {
			if ch.Symbol != "" {
				return fmt.Errorf("%w: unused channel %d carries symbol %q", ErrInvalidArgument, ch.Index, ch.Symbol)
			}
			if err := b.LeaveUnused(ch.Index); err != nil {
				return err
			}
			continue
		}
		sampling, err := hardware.ParseSampling(ch.Sampling)
		if err != nil {
			return fmt.Errorf("%w: channel %d: %w", config.ErrInvalidSpec, ch.Index, err)
		}
		if _, err := b.ConfigureChannel(ch.Index, hardware.ChannelConfig{
			Symbol:   ch.Symbol,
			Comment:  ch.Comment,
			Sensor:   sensor,
			Range:    hardware.Range{Min: ch.Min, Max: ch.Max},
			Sampling: sampling,
		}); err != nil {
			return err
		}
	}

	ext, err := b.Finalize()
	if err != nil {
		return err
	}
	if err := c.prog.AddExtension(ext); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Module configured.", "module", ext.Reference, "slot", ext.Slot(), "channels", len(ext.Channels))
	return nil
}

// evalContext exposes sym.NAME as the address of every bound symbol.
func (c *compiler) evalContext() *hcl.EvalContext {
	syms := make(map[string]cty.Value)
	for _, s := range c.reg.Symbols() {
		syms[s.Name] = cty.StringVal(s.Address.String())
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"sym": cty.ObjectVal(syms),
		},
		Functions: map[string]function.Function{
			"format": stdlib.FormatFunc,
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"join":   stdlib.JoinFunc,
		},
	}
}

func (c *compiler) decode(ctx context.Context, args map[string]hcl.Expression, target any) error {
	return c.conv.DecodeArguments(ctx, target, args, c.evalCtx)
}

func (c *compiler) rung(ctx context.Context, r *config.Rung) error {
	logger := ctxlog.FromContext(ctx).With("rung", r.Name)
	ctx = ctxlog.WithLogger(ctx, logger)

	expand, ok := patterns[r.Pattern]
	if !ok {
		return fmt.Errorf("rung %q: %w %q", r.Name, ErrUnknownPattern, r.Pattern)
	}
	if r.Pattern != "ladder" && len(r.Elements) > 0 {
		return fmt.Errorf("rung %q: %w: elements are only allowed with the ladder pattern", r.Name, ErrInvalidArgument)
	}

	g, err := expand(ctx, c, r)
	if err != nil {
		return fmt.Errorf("rung %q: %w", r.Name, err)
	}
	rung, err := program.Assemble(ctx, r.Name, r.Comment, r.Label, g)
	if err != nil {
		return err
	}
	if err := c.prog.Append(ctx, rung); err != nil {
		return err
	}
	logger.Debug("Rung compiled.", "pattern", r.Pattern, "elements", len(g.Elements()))
	return nil
}
