// Package schema holds the gohcl decoding targets of the HCL process
// specification format.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Spec is the top-level structure of one specification file. Unknown blocks
// and attributes are rejected by the decoder.
type Spec struct {
	Programs []*Program `hcl:"program,block"`
	Memory   []*Memory  `hcl:"memory,block"`
	Symbols  []*Symbol  `hcl:"symbol,block"`
	Timers   []*Timer   `hcl:"timer,block"`
	Modules  []*Module  `hcl:"module,block"`
	Rungs    []*Rung    `hcl:"rung,block"`
}

// Program represents the `program "<name>"` block.
type Program struct {
	Name     string   `hcl:"name,label"`
	Width    int      `hcl:"width,optional"`
	Sections []string `hcl:"sections,optional"`
}

// Memory represents a `memory "<zone>"` layout override.
type Memory struct {
	Zone              string `hcl:"zone,label"`
	Capacity          *int   `hcl:"capacity,optional"`
	RetentiveBoundary *int   `hcl:"retentive_boundary,optional"`
	Reserved          *int   `hcl:"reserved,optional"`
}

// Symbol represents a `symbol "<NAME>"` declaration.
type Symbol struct {
	Name    string `hcl:"name,label"`
	Zone    string `hcl:"zone"`
	Index   *int   `hcl:"index,optional"`
	Retain  *bool  `hcl:"retain,optional"`
	Comment string `hcl:"comment,optional"`
}

// Timer represents a `timer "<NAME>"` declaration.
type Timer struct {
	Name    string `hcl:"name,label"`
	Index   *int   `hcl:"index,optional"`
	Preset  int    `hcl:"preset"`
	Base    string `hcl:"base"`
	Mode    string `hcl:"mode,optional"`
	Comment string `hcl:"comment,optional"`
}

// Module represents a `module "<reference>"` block.
type Module struct {
	Reference string     `hcl:"reference,label"`
	Index     int        `hcl:"index"`
	Capacity  int        `hcl:"capacity,optional"`
	Channels  []*Channel `hcl:"channel,block"`
}

// Channel represents a `channel` block inside a module.
type Channel struct {
	Index    int    `hcl:"index"`
	Symbol   string `hcl:"symbol,optional"`
	Comment  string `hcl:"comment,optional"`
	Sensor   string `hcl:"sensor,optional"`
	Min      int    `hcl:"min,optional"`
	Max      int    `hcl:"max,optional"`
	Sampling string `hcl:"sampling,optional"`
}

// Arguments represents the content of the `arguments` block of a rung.
type Arguments struct {
	Body hcl.Body `hcl:",remain"`
}

// Rung represents a `rung "<name>"` block.
type Rung struct {
	Name      string     `hcl:"name,label"`
	Comment   string     `hcl:"comment,optional"`
	Label     string     `hcl:"label,optional"`
	Pattern   string     `hcl:"pattern,optional"`
	Arguments *Arguments `hcl:"arguments,block"`
	Elements  []*Element `hcl:"element,block"`
}

// Element represents an `element "<kind>"` block. Operand attributes stay in
// Body and are evaluated after allocation.
type Element struct {
	Kind        string   `hcl:"kind,label"`
	Row         int      `hcl:"row"`
	Column      int      `hcl:"column"`
	Connections []string `hcl:"connections"`
	Body        hcl.Body `hcl:",remain"`
}
