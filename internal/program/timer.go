package program

import (
	"github.com/specialistvlad/ladsynth/internal/address"
	"github.com/specialistvlad/ladsynth/internal/ladder"
)

// Timer is an entry of the program's timer table.
type Timer struct {
	Name    string
	Address address.Address
	Preset  int
	Base    ladder.TimeBase
	Mode    ladder.TimerMode
	Comment string
}

func (t Timer) matches(e ladder.Element) bool {
	return t.Preset == e.Preset && t.Base == e.Base && t.Mode == e.Mode
}

func (t Timer) sameSettings(other Timer) bool {
	return t.Preset == other.Preset && t.Base == other.Base && t.Mode == other.Mode
}
