package address

import (
	"fmt"
	"strings"
)

// Zone is a class of addressable memory.
type Zone int

const (
	ZoneBit Zone = iota
	ZoneWord
	ZoneFloat
	ZoneTimer
	ZoneAnalog
)

// Zones lists every zone in rendering order.
var Zones = []Zone{ZoneBit, ZoneWord, ZoneFloat, ZoneTimer, ZoneAnalog}

var zoneNames = map[Zone]string{
	ZoneBit:    "bit",
	ZoneWord:   "word",
	ZoneFloat:  "float",
	ZoneTimer:  "timer",
	ZoneAnalog: "analog",
}

var zonePrefixes = map[Zone]string{
	ZoneBit:    "%M",
	ZoneWord:   "%MW",
	ZoneFloat:  "%MF",
	ZoneTimer:  "%TM",
	ZoneAnalog: "%IW",
}

func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("zone(%d)", int(z))
}

// Prefix returns the descriptor prefix used when rendering addresses of the zone.
func (z Zone) Prefix() string {
	return zonePrefixes[z]
}

// ParseZone accepts the lower-case zone names used in process specifications.
func ParseZone(s string) (Zone, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for z, n := range zoneNames {
		if n == name {
			return z, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown zone %q", ErrInvalidAddress, s)
}

// Address is a typed memory location. Slot is only meaningful for analog
// channels, where it numbers the extension module the channel belongs to.
type Address struct {
	Zone      Zone
	Index     int
	Slot      int
	Retentive bool
}

// String renders the address descriptor, e.g. %MW100 or %IW1.2.
func (a Address) String() string {
	if a.Zone == ZoneAnalog {
		return fmt.Sprintf("%s%d.%d", a.Zone.Prefix(), a.Slot, a.Index)
	}
	return fmt.Sprintf("%s%d", a.Zone.Prefix(), a.Index)
}

// IsZero reports whether the address was never set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Same compares location only; the retentive flag is derived and ignored.
func (a Address) Same(other Address) bool {
	return a.key() == other.key()
}

type key struct {
	zone  Zone
	slot  int
	index int
}

func (a Address) key() key {
	return key{zone: a.Zone, slot: a.Slot, index: a.Index}
}

// Symbol binds a program-wide unique name to an address.
type Symbol struct {
	Name    string
	Address Address
	Comment string
}
