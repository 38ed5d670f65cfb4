package hardware

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/ladsynth/internal/address"
)

// Range is the raw measurement span a channel converts into.
type Range struct {
	Min int
	Max int
}

// ChannelConfig is the configuration of a used channel.
type ChannelConfig struct {
	Symbol   string
	Comment  string
	Sensor   Sensor
	Range    Range
	Sampling Sampling
}

// Channel is one declared channel of an extension.
type Channel struct {
	Index    int
	Address  address.Address
	Symbol   string
	Comment  string
	Sensor   Sensor
	Range    Range
	Sampling Sampling
}

// Used reports whether the channel carries a sensor.
func (c Channel) Used() bool {
	return c.Sensor != SensorNotUsed
}

// Extension is a finalized module with every channel declared.
type Extension struct {
	Index     int
	Reference string
	Channels  []Channel
}

// Slot is the I/O slot the module occupies; slot 0 is the controller itself.
func (e Extension) Slot() int {
	return e.Index + 1
}

// ExtensionBuilder declares the channels of one module.
type ExtensionBuilder struct {
	reg        *address.Registry
	module     Module
	catalogued bool
	index      int
	channels   map[int]Channel
}

// DeclareModule starts the description of the module at extension position
// index. For a catalogue reference a capacity of zero takes the catalogue
// capacity and any other value must match it. A reference missing from the
// catalogue is accepted only with a positive capacity; such a module takes
// every sensor type.
func DeclareModule(reg *address.Registry, index int, reference string, capacity int) (*ExtensionBuilder, error) {
	catalogued := true
	m, err := Lookup(reference)
	if err != nil {
		if capacity <= 0 || strings.TrimSpace(reference) == "" {
			return nil, err
		}
		catalogued = false
		m = Module{
			Reference: strings.TrimSpace(reference),
			Capacity:  capacity,
			Sensors:   append([]Sensor(nil), sensors[1:]...),
		}
	}
	if index < 0 {
		return nil, fmt.Errorf("%w: module %s at negative position %d", ErrChannelRange, m.Reference, index)
	}
	if capacity != 0 && capacity != m.Capacity {
		return nil, fmt.Errorf("%w: %s has %d channels, %d declared", ErrCapacityMismatch, m.Reference, m.Capacity, capacity)
	}
	return &ExtensionBuilder{
		reg:        reg,
		module:     m,
		catalogued: catalogued,
		index:      index,
		channels:   make(map[int]Channel),
	}, nil
}

// Module returns the catalogue entry being configured.
func (b *ExtensionBuilder) Module() Module {
	return b.module
}

// Catalogued reports whether the reference came from the catalogue.
func (b *ExtensionBuilder) Catalogued() bool {
	return b.catalogued
}

func (b *ExtensionBuilder) slot() int {
	return b.index + 1
}

func (b *ExtensionBuilder) claim(index int) (address.Address, error) {
	if index < 0 || index >= b.module.Capacity {
		return address.Address{}, fmt.Errorf("%w: %s channel %d outside [0, %d)", ErrChannelRange, b.module.Reference, index, b.module.Capacity)
	}
	if _, ok := b.channels[index]; ok {
		return address.Address{}, fmt.Errorf("%w: %s channel %d declared twice", ErrChannelRange, b.module.Reference, index)
	}
	return b.reg.AllocateChannel(b.slot(), index)
}

// ConfigureChannel declares a used channel and binds its symbol, if any.
func (b *ExtensionBuilder) ConfigureChannel(index int, cfg ChannelConfig) (Channel, error) {
	if cfg.Sensor == "" || cfg.Sensor == SensorNotUsed {
		return Channel{}, fmt.Errorf("%w: %s channel %d configured without a sensor", ErrUnsupportedSensor, b.module.Reference, index)
	}
	if !b.module.Supports(cfg.Sensor) {
		return Channel{}, fmt.Errorf("%w: %s does not accept %s (channel %d)", ErrUnsupportedSensor, b.module.Reference, cfg.Sensor, index)
	}
	if cfg.Range.Min >= cfg.Range.Max {
		return Channel{}, fmt.Errorf("%w: %s channel %d range [%d, %d]", ErrInvalidRange, b.module.Reference, index, cfg.Range.Min, cfg.Range.Max)
	}
	if cfg.Sampling == "" {
		cfg.Sampling = SamplingNormal
	}

	addr, err := b.claim(index)
	if err != nil {
		return Channel{}, err
	}
	if cfg.Symbol != "" {
		if _, err := b.reg.Bind(addr, cfg.Symbol, cfg.Comment); err != nil {
			return Channel{}, err
		}
	}

	ch := Channel{
		Index:    index,
		Address:  addr,
		Symbol:   cfg.Symbol,
		Comment:  cfg.Comment,
		Sensor:   cfg.Sensor,
		Range:    cfg.Range,
		Sampling: cfg.Sampling,
	}
	b.channels[index] = ch
	return ch, nil
}

// LeaveUnused declares a NotUsed placeholder.
func (b *ExtensionBuilder) LeaveUnused(index int) error {
	addr, err := b.claim(index)
	if err != nil {
		return err
	}
	b.channels[index] = Channel{Index: index, Address: addr, Sensor: SensorNotUsed, Sampling: SamplingNormal}
	return nil
}

// Finalize checks that the channels densely cover [0, capacity).
func (b *ExtensionBuilder) Finalize() (Extension, error) {
	var missing []string
	for i := 0; i < b.module.Capacity; i++ {
		if _, ok := b.channels[i]; !ok {
			missing = append(missing, fmt.Sprint(i))
		}
	}
	if len(missing) > 0 {
		return Extension{}, fmt.Errorf("%w: %s in slot %d is missing channels %s", ErrIncompleteModule, b.module.Reference, b.slot(), strings.Join(missing, ", "))
	}

	ext := Extension{Index: b.index, Reference: b.module.Reference}
	for _, ch := range b.channels {
		ext.Channels = append(ext.Channels, ch)
	}
	sort.Slice(ext.Channels, func(i, j int) bool { return ext.Channels[i].Index < ext.Channels[j].Index })
	return ext, nil
}
