package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/specialistvlad/ladsynth/internal/config"
	"github.com/specialistvlad/ladsynth/internal/schema"
)

func translateProgram(p *schema.Program) *config.Program {
	return &config.Program{Name: p.Name, Width: p.Width, Sections: p.Sections}
}

func translateMemory(m *schema.Memory) *config.ZoneLayout {
	return &config.ZoneLayout{
		Zone:              m.Zone,
		Capacity:          m.Capacity,
		RetentiveBoundary: m.RetentiveBoundary,
		Reserved:          m.Reserved,
	}
}

func translateSymbol(s *schema.Symbol) *config.Symbol {
	return &config.Symbol{Name: s.Name, Zone: s.Zone, Index: s.Index, Retain: s.Retain, Comment: s.Comment}
}

func translateTimer(t *schema.Timer) *config.Timer {
	return &config.Timer{Name: t.Name, Index: t.Index, Preset: t.Preset, Base: t.Base, Mode: t.Mode, Comment: t.Comment}
}

func translateModule(m *schema.Module) *config.Module {
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
	return out
}

// translateRung converts a rung block. A rung without a pattern but with
// element blocks is an explicit ladder.
func (l *Loader) translateRung(r *schema.Rung) (*config.Rung, error) {
	out := &config.Rung{
		Name:    r.Name,
		Comment: r.Comment,
		Label:   r.Label,
		Pattern: r.Pattern,
	}
	if r.Arguments != nil {
		args, err := l.extractBodyAttributes(r.Arguments.Body)
		if err != nil {
			return nil, fmt.Errorf("rung %q arguments: %w", r.Name, err)
		}
		out.Arguments = args
	}
	for _, e := range r.Elements {
		args, err := l.extractBodyAttributes(e.Body)
		if err != nil {
			return nil, fmt.Errorf("rung %q element %q at (%d,%d): %w", r.Name, e.Kind, e.Row, e.Column, err)
		}
		out.Elements = append(out.Elements, &config.Element{
			Kind:        e.Kind,
			Row:         e.Row,
			Column:      e.Column,
			Connections: e.Connections,
			Arguments:   args,
		})
	}
	if out.Pattern == "" && len(out.Elements) > 0 {
		out.Pattern = "ladder"
	}
	return out, nil
}

// extractBodyAttributes converts a block body into a map of expressions.
// Nested blocks are not allowed.
func (l *Loader) extractBodyAttributes(body hcl.Body) (map[string]hcl.Expression, error) {
	if body == nil {
		return nil, nil
	}
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidSpec, diags)
	}
	exprMap := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		exprMap[name] = attr.Expr
	}
	return exprMap, nil
}
