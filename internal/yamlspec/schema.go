package yamlspec

import (
	"gopkg.in/yaml.v3"
)

type document struct {
	Program *program               `yaml:"program"`
	Memory  map[string]*zoneLayout `yaml:"memory"`
	Symbols []*symbol              `yaml:"symbols"`
	Timers  []*timer               `yaml:"timers"`
	Modules []*module              `yaml:"modules"`
	Rungs   []*rung                `yaml:"rungs"`
}

type program struct {
	Name     string   `yaml:"name"`
	Width    int      `yaml:"width"`
	Sections []string `yaml:"sections"`
}

type zoneLayout struct {
	Capacity          *int `yaml:"capacity"`
	RetentiveBoundary *int `yaml:"retentive_boundary"`
	Reserved          *int `yaml:"reserved"`
}

type symbol struct {
	Name    string `yaml:"name"`
	Zone    string `yaml:"zone"`
	Index   *int   `yaml:"index"`
	Retain  *bool  `yaml:"retain"`
	Comment string `yaml:"comment"`
}

type timer struct {
	Name    string `yaml:"name"`
	Index   *int   `yaml:"index"`
	Preset  int    `yaml:"preset"`
	Base    string `yaml:"base"`
	Mode    string `yaml:"mode"`
	Comment string `yaml:"comment"`
}

type module struct {
	Reference string     `yaml:"reference"`
	Index     int        `yaml:"index"`
	Capacity  int        `yaml:"capacity"`
	Channels  []*channel `yaml:"channels"`
}

type channel struct {
	Index    int    `yaml:"index"`
	Symbol   string `yaml:"symbol"`
	Comment  string `yaml:"comment"`
	Sensor   string `yaml:"sensor"`
	Min      int    `yaml:"min"`
	Max      int    `yaml:"max"`
	Sampling string `yaml:"sampling"`
}

type rung struct {
	Name      string               `yaml:"name"`
	Comment   string               `yaml:"comment"`
	Label     string               `yaml:"label"`
	Pattern   string               `yaml:"pattern"`
	Arguments map[string]yaml.Node `yaml:"arguments"`
	// Elements keep their operand keys next to the placement keys, so each
	// is read as a raw mapping.
	Elements []map[string]yaml.Node `yaml:"elements"`
}
