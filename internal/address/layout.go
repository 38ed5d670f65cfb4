package address

// ZoneLayout describes the index space of one zone.
type ZoneLayout struct {
	// Capacity is the number of indexes in the zone. Zero means unbounded.
	Capacity int
	// RetentiveBoundary: indexes below it survive a restart.
	RetentiveBoundary int
	// Reserved is the number of low indexes implicit allocation skips.
	Reserved int
}

// Layout maps zones to their index space.
type Layout map[Zone]ZoneLayout

// DefaultLayout returns the memory layout of the target controller family.
func DefaultLayout() Layout {
	return Layout{
		ZoneBit:    {Capacity: 1024},
		ZoneWord:   {Capacity: 2000, RetentiveBoundary: 100, Reserved: 100},
		ZoneFloat:  {Capacity: 1000, RetentiveBoundary: 100, Reserved: 100},
		ZoneTimer:  {Capacity: 255},
		ZoneAnalog: {},
	}
}

func (l Layout) clone() Layout {
	out := make(Layout, len(l))
	for z, zl := range l {
		out[z] = zl
	}
	return out
}
