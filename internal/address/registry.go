package address

import (
	"fmt"
	"sort"
)

// Option customizes a Registry at construction time.
type Option func(*Registry)

// WithZoneLayout overrides the layout of a single zone.
func WithZoneLayout(zone Zone, zl ZoneLayout) Option {
	return func(r *Registry) {
		r.layout[zone] = zl
	}
}

// Registry tracks allocated addresses and the symbols bound to them for a
// single program build. It is not safe for concurrent use; every build owns
// its own instance.
type Registry struct {
	layout    Layout
	allocated map[key]Address
	byName    map[string]*Symbol
	byAddress map[key]*Symbol
	// order keeps symbols in binding order for rendering.
	order []*Symbol
}

// New creates an empty registry using the default layout, adjusted by opts.
func New(opts ...Option) *Registry {
	r := &Registry{
		layout:    DefaultLayout().clone(),
		allocated: make(map[key]Address),
		byName:    make(map[string]*Symbol),
		byAddress: make(map[key]*Symbol),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Layout returns the layout of a zone.
func (r *Registry) Layout(zone Zone) ZoneLayout {
	return r.layout[zone]
}

// ZoneBoundary returns the index below which addresses of the zone are retentive.
func (r *Registry) ZoneBoundary(zone Zone) int {
	return r.layout[zone].RetentiveBoundary
}

// IsRetentive reports whether index would be retentive in zone.
func (r *Registry) IsRetentive(zone Zone, index int) bool {
	return index < r.layout[zone].RetentiveBoundary
}

// Allocate returns the next free index of the zone at or above its reserved prefix.
func (r *Registry) Allocate(zone Zone) (Address, error) {
	if zone == ZoneAnalog {
		return Address{}, fmt.Errorf("%w: analog channels are allocated per module slot", ErrZoneMismatch)
	}
	zl := r.layout[zone]
	for i := zl.Reserved; zl.Capacity == 0 || i < zl.Capacity; i++ {
		if _, taken := r.allocated[key{zone: zone, index: i}]; !taken {
			return r.claim(zone, 0, i), nil
		}
	}
	return Address{}, fmt.Errorf("%w: no free %s index at or above %d", ErrZoneExhausted, zone, zl.Reserved)
}

// AllocateRetentive returns the next free index below the zone's retentive boundary.
func (r *Registry) AllocateRetentive(zone Zone) (Address, error) {
	if zone == ZoneAnalog {
		return Address{}, fmt.Errorf("%w: analog channels are allocated per module slot", ErrZoneMismatch)
	}
	boundary := r.layout[zone].RetentiveBoundary
	for i := 0; i < boundary; i++ {
		if _, taken := r.allocated[key{zone: zone, index: i}]; !taken {
			return r.claim(zone, 0, i), nil
		}
	}
	return Address{}, fmt.Errorf("%w: no free retentive %s index below %d", ErrZoneExhausted, zone, boundary)
}

// AllocateAt claims an explicit index. Requesting a taken index fails with
// ErrAddressConflict; indexes below the retentive boundary are flagged, not rejected.
func (r *Registry) AllocateAt(zone Zone, index int) (Address, error) {
	if zone == ZoneAnalog {
		return Address{}, fmt.Errorf("%w: analog channels are allocated per module slot", ErrZoneMismatch)
	}
	zl := r.layout[zone]
	if index < 0 || (zl.Capacity > 0 && index >= zl.Capacity) {
		return Address{}, fmt.Errorf("%w: %s%d outside [0, %d)", ErrOutOfRange, zone.Prefix(), index, zl.Capacity)
	}
	k := key{zone: zone, index: index}
	if existing, taken := r.allocated[k]; taken {
		return Address{}, fmt.Errorf("%w: %s already allocated", ErrAddressConflict, existing)
	}
	return r.claim(zone, 0, index), nil
}

// AllocateChannel claims one channel of the analog module in slot.
func (r *Registry) AllocateChannel(slot, channel int) (Address, error) {
	if slot < 0 || channel < 0 {
		return Address{}, fmt.Errorf("%w: %%IW%d.%d", ErrOutOfRange, slot, channel)
	}
	k := key{zone: ZoneAnalog, slot: slot, index: channel}
	if existing, taken := r.allocated[k]; taken {
		return Address{}, fmt.Errorf("%w: %s already allocated", ErrAddressConflict, existing)
	}
	return r.claim(ZoneAnalog, slot, channel), nil
}

func (r *Registry) claim(zone Zone, slot, index int) Address {
	addr := Address{
		Zone:      zone,
		Slot:      slot,
		Index:     index,
		Retentive: r.IsRetentive(zone, index),
	}
	r.allocated[addr.key()] = addr
	return addr
}

// Lookup returns the registered form of an address, with its retentive flag.
func (r *Registry) Lookup(addr Address) (Address, bool) {
	registered, ok := r.allocated[addr.key()]
	return registered, ok
}

// Bind attaches name to an allocated address. Binding the same name to the
// same address twice is a no-op.
func (r *Registry) Bind(addr Address, name, comment string) (Symbol, error) {
	if name == "" {
		return Symbol{}, fmt.Errorf("%w: empty name for %s", ErrInvalidAddress, addr)
	}
	registered, ok := r.allocated[addr.key()]
	if !ok {
		return Symbol{}, fmt.Errorf("%w: %s (symbol %q)", ErrUnknownAddress, addr, name)
	}

	if existing, ok := r.byName[name]; ok {
		if existing.Address.Same(addr) {
			return *existing, nil
		}
		return Symbol{}, fmt.Errorf("%w: %q is bound to %s, cannot bind it to %s", ErrDuplicateSymbol, name, existing.Address, addr)
	}
	if existing, ok := r.byAddress[addr.key()]; ok {
		return Symbol{}, fmt.Errorf("%w: %s already carries symbol %q, cannot bind %q", ErrDuplicateAddress, addr, existing.Name, name)
	}

	sym := &Symbol{Name: name, Address: registered, Comment: comment}
	r.byName[name] = sym
	r.byAddress[addr.key()] = sym
	r.order = append(r.order, sym)
	return *sym, nil
}

// Resolve returns the address bound to name.
func (r *Registry) Resolve(name string) (Address, error) {
	sym, ok := r.byName[name]
	if !ok {
		return Address{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, name)
	}
	return sym.Address, nil
}

// ResolveZone resolves name and checks that it lives in one of the given zones.
func (r *Registry) ResolveZone(name string, zones ...Zone) (Address, error) {
	addr, err := r.Resolve(name)
	if err != nil {
		return Address{}, err
	}
	for _, z := range zones {
		if addr.Zone == z {
			return addr, nil
		}
	}
	return Address{}, fmt.Errorf("%w: %q is %s (%s), expected %v", ErrZoneMismatch, name, addr, addr.Zone, zones)
}

// SymbolAt returns the symbol bound to addr, if any.
func (r *Registry) SymbolAt(addr Address) (Symbol, bool) {
	sym, ok := r.byAddress[addr.key()]
	if !ok {
		return Symbol{}, false
	}
	return *sym, true
}

// Symbols returns all symbols in binding order.
func (r *Registry) Symbols() []Symbol {
	out := make([]Symbol, 0, len(r.order))
	for _, sym := range r.order {
		out = append(out, *sym)
	}
	return out
}

// Addresses returns every allocated address of zone ordered by slot and index.
func (r *Registry) Addresses(zone Zone) []Address {
	var out []Address
	for k, addr := range r.allocated {
		if k.zone == zone {
			out = append(out, addr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Slot != out[j].Slot {
			return out[i].Slot < out[j].Slot
		}
		return out[i].Index < out[j].Index
	})
	return out
}
