package program

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/specialistvlad/ladsynth/internal/address"
	"github.com/specialistvlad/ladsynth/internal/ctxlog"
	"github.com/specialistvlad/ladsynth/internal/hardware"
	"github.com/specialistvlad/ladsynth/internal/ladder"
)

// Program is everything one document is rendered from. It owns its
// Registry and is discarded after rendering.
type Program struct {
	Name     string
	Registry *address.Registry
	// Sections lists the skeleton sections to replace, in no particular order.
	// Empty means every section the renderer knows.
	Sections []string

	namespace  uuid.UUID
	rungs      []*Rung
	rungNames  map[string]struct{}
	timers     []Timer
	extensions []hardware.Extension
}

// New creates an empty program around reg.
func New(name string, reg *address.Registry) *Program {
	return &Program{
		Name:      name,
		Registry:  reg,
		namespace: uuid.NewSHA1(uuid.NameSpaceURL, []byte("ladsynth:program/"+name)),
		rungNames: make(map[string]struct{}),
	}
}

// DeclareTimer adds t to the timer table. Redeclaring an address with the
// same settings is a no-op.
func (p *Program) DeclareTimer(t Timer) error {
	if t.Address.Zone != address.ZoneTimer {
		return fmt.Errorf("%w: timer %q at %s", address.ErrZoneMismatch, t.Name, t.Address)
	}
	if _, ok := p.Registry.Lookup(t.Address); !ok {
		return fmt.Errorf("%w: timer %q at %s", address.ErrUnknownAddress, t.Name, t.Address)
	}
	for _, existing := range p.timers {
		if !existing.Address.Same(t.Address) {
			continue
		}
		if existing.sameSettings(t) {
			return nil
		}
		return fmt.Errorf("%w: %s declared as %d %s %s and as %d %s %s", ErrTimerConflict, t.Address,
			existing.Preset, existing.Base, existing.Mode, t.Preset, t.Base, t.Mode)
	}
	p.timers = append(p.timers, t)
	return nil
}

// Timer returns the declaration at addr.
func (p *Program) Timer(addr address.Address) (Timer, bool) {
	for _, t := range p.timers {
		if t.Address.Same(addr) {
			return t, true
		}
	}
	return Timer{}, false
}

// Timers returns the timer table ordered by index.
func (p *Program) Timers() []Timer {
	out := append([]Timer(nil), p.timers...)
	sort.Slice(out, func(i, j int) bool { return out[i].Address.Index < out[j].Address.Index })
	return out
}

// Append adds r after the rungs already in the program and assigns its ID.
func (p *Program) Append(ctx context.Context, r *Rung) error {
	if _, ok := p.rungNames[r.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateRungName, r.Name)
	}
	for _, e := range r.Graph.Elements() {
		if err := p.checkOperands(e); err != nil {
			return fmt.Errorf("rung %q: %w", r.Name, err)
		}
	}

	r.ID = uuid.NewSHA1(p.namespace, []byte(r.Name))
	p.rungNames[r.Name] = struct{}{}
	p.rungs = append(p.rungs, r)
	ctxlog.FromContext(ctx).Debug("Rung appended.", "rung", r.Name, "position", len(p.rungs)-1, "id", r.ID)
	return nil
}

func (p *Program) checkOperands(e ladder.Placed) error {
	var operand address.Address
	switch e.Kind {
	case ladder.KindContact, ladder.KindCoil:
		operand = e.Address
	case ladder.KindOperation:
		operand = e.Target
	case ladder.KindTimer:
		t, ok := p.Timer(e.Address)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUndeclaredTimer, e)
		}
		if !t.matches(e.Element) {
			return fmt.Errorf("%w: %s uses %d %s %s, table declares %d %s %s", ErrTimerConflict, e,
				e.Preset, e.Base, e.Mode, t.Preset, t.Base, t.Mode)
		}
		return nil
	default:
		return nil
	}
	if _, ok := p.Registry.Lookup(operand); !ok {
		return fmt.Errorf("%w: %s", address.ErrUnknownAddress, e)
	}
	return nil
}

// Rungs returns the rungs in program order.
func (p *Program) Rungs() []*Rung {
	return append([]*Rung(nil), p.rungs...)
}

// AddExtension appends a finalized module. Extensions render in slot order.
func (p *Program) AddExtension(ext hardware.Extension) error {
	for _, existing := range p.extensions {
		if existing.Index == ext.Index {
			return fmt.Errorf("%w: slot %d holds %s and %s", ErrDuplicateExtension, ext.Slot(), existing.Reference, ext.Reference)
		}
	}
	p.extensions = append(p.extensions, ext)
	sort.Slice(p.extensions, func(i, j int) bool { return p.extensions[i].Index < p.extensions[j].Index })
	return nil
}

// Extensions returns the modules in slot order.
func (p *Program) Extensions() []hardware.Extension {
	return append([]hardware.Extension(nil), p.extensions...)
}
