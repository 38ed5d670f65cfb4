package ladder

import (
	"fmt"
	"strings"
)

// Connection is a set of directions an element connects to.
type Connection uint8

const (
	Left Connection = 1 << iota
	Right
	Up
	Down
)

// Directions lists the individual directions in rendering order.
var Directions = []Connection{Left, Right, Up, Down}

var directionNames = map[Connection]string{
	Left:  "Left",
	Right: "Right",
	Up:    "Up",
	Down:  "Down",
}

// Has reports whether every direction in d is part of c.
func (c Connection) Has(d Connection) bool {
	return c&d == d
}

// String renders the set the way the target format lists chosen connections,
// e.g. "Left, Right, Down".
func (c Connection) String() string {
	var parts []string
	for _, d := range Directions {
		if c.Has(d) {
			parts = append(parts, directionNames[d])
		}
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, ", ")
}

// ParseConnections reads direction names case-insensitively.
func ParseConnections(names []string) (Connection, error) {
	var c Connection
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		found := false
		for d, n := range directionNames {
			if strings.EqualFold(n, name) {
				c |= d
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown connection %q", ErrInvalidElement, raw)
		}
	}
	return c, nil
}
