package config

import (
	"github.com/hashicorp/hcl/v2"
)

// Model is the format-agnostic representation of one process specification.
type Model struct {
	Program *Program
	Memory  []*ZoneLayout
	Symbols []*Symbol
	Timers  []*Timer
	Modules []*Module
	Rungs   []*Rung
}

// Program holds program-wide settings.
type Program struct {
	Name string
	// Width is the number of grid columns per rung; zero keeps the default.
	Width int
	// Sections restricts which skeleton sections are replaced.
	Sections []string
}

// ZoneLayout overrides the index space of one memory zone. Nil fields keep
// the default layout.
type ZoneLayout struct {
	Zone              string
	Capacity          *int
	RetentiveBoundary *int
	Reserved          *int
}

// Symbol declares a named memory location.
type Symbol struct {
	Name string
	Zone string
	// Index pins the symbol to an explicit address.
	Index *int
	// Retain is the requested retention; nil means no preference.
	Retain  *bool
	Comment string
}

// Timer declares a timer block and its settings.
type Timer struct {
	Name    string
	Index   *int
	Preset  int
	Base    string
	Mode    string
	Comment string
}

// Module declares one analog extension module.
type Module struct {
	Reference string
	Index     int
	// Capacity is checked against the catalogue; zero accepts the catalogue value.
	// A reference outside the catalogue needs a positive capacity.
	Capacity int
	Channels []*Channel
}

// Channel configures one channel of a module. A NotUsed or empty sensor
// declares a placeholder.
type Channel struct {
	Index    int
	Symbol   string
	Comment  string
	Sensor   string
	Min      int
	Max      int
	Sampling string
}

// Rung is one rung intent: either a named pattern with arguments or a list
// of explicitly placed elements.
type Rung struct {
	Name      string
	Comment   string
	Label     string
	Pattern   string
	Arguments map[string]hcl.Expression
	Elements  []*Element
}

// Element is one explicitly placed ladder element. Its operand attributes
// (ref, negated, expression, target) are kept as expressions.
type Element struct {
	Kind        string
	Row         int
	Column      int
	Connections []string
	Arguments   map[string]hcl.Expression
}
