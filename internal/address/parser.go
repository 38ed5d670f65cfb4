package address

import (
	"fmt"
	"regexp"
	"strconv"
)

// descriptorRegex matches %M12, %MW100, %MF4, %TM0 and %IW1.3.
var descriptorRegex = regexp.MustCompile(`^%(MW|MF|M|TM|IW)(\d+)(?:\.(\d+))?$`)

var prefixZones = map[string]Zone{
	"M":  ZoneBit,
	"MW": ZoneWord,
	"MF": ZoneFloat,
	"TM": ZoneTimer,
	"IW": ZoneAnalog,
}

// Parse reads an address descriptor. The returned Address never has the
// retentive flag set; use Registry.Lookup for the registered form.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("%w: descriptor cannot be empty", ErrInvalidAddress)
	}

	matches := descriptorRegex.FindStringSubmatch(raw)
	if matches == nil {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, raw)
	}

	zone := prefixZones[matches[1]]
	first, err := strconv.Atoi(matches[2])
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, raw, err)
	}

	if zone == ZoneAnalog {
		if matches[3] == "" {
			return Address{}, fmt.Errorf("%w: analog channel %q needs a slot and a channel", ErrInvalidAddress, raw)
		}
		channel, err := strconv.Atoi(matches[3])
		if err != nil {
			return Address{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, raw, err)
		}
		return Address{Zone: ZoneAnalog, Slot: first, Index: channel}, nil
	}

	if matches[3] != "" {
		return Address{}, fmt.Errorf("%w: %q: only analog channels take a sub-index", ErrInvalidAddress, raw)
	}
	return Address{Zone: zone, Index: first}, nil
}
