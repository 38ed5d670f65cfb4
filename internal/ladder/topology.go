package ladder

import (
	"fmt"
)

// close runs the topology closure in order: reciprocity, output placement,
// the row-0 path, then point merging and network extraction.
func (g *Graph) close() error {
	if err := g.checkReciprocity(); err != nil {
		return err
	}
	if err := g.checkOutputs(); err != nil {
		return err
	}
	if err := g.checkMainPath(); err != nil {
		return err
	}
	pts := g.mergePoints()
	return g.extract(pts)
}

func (g *Graph) neighbor(c Cell, dr, dc int) (Placed, bool) {
	return g.At(c.Row+dr, c.Column+dc)
}

// checkReciprocity verifies that every declared connection is matched by the
// neighbor it points at. Left on column 0 meets the left rail; Right on the
// terminal column meets the right rail, which only output elements may touch.
func (g *Graph) checkReciprocity() error {
	for _, p := range g.elements {
		if p.Connections.Has(Left) && p.Column > 0 {
			n, ok := g.neighbor(p.Cell, 0, -1)
			if !ok || !n.Connections.Has(Right) {
				return fmt.Errorf("%w: %s declares Left but %s does not connect Right", ErrDanglingConnection, p, Cell{p.Row, p.Column - 1})
			}
		}
		if p.Connections.Has(Right) {
			if p.Column == g.width-1 {
				if !p.Kind.IsOutput() {
					return fmt.Errorf("%w: %s reaches the right rail but is not an output", ErrDanglingConnection, p)
				}
			} else {
				n, ok := g.neighbor(p.Cell, 0, 1)
				if !ok || !n.Connections.Has(Left) {
					return fmt.Errorf("%w: %s declares Right but %s does not connect Left", ErrDanglingConnection, p, Cell{p.Row, p.Column + 1})
				}
			}
		}
		if p.Connections.Has(Down) {
			n, ok := g.neighbor(p.Cell, 1, 0)
			if !ok || !n.Connections.Has(Up) {
				return fmt.Errorf("%w: %s declares Down but %s does not connect Up", ErrDanglingConnection, p, Cell{p.Row + 1, p.Column})
			}
		}
		if p.Connections.Has(Up) {
			n, ok := g.neighbor(p.Cell, -1, 0)
			if !ok || !n.Connections.Has(Down) {
				return fmt.Errorf("%w: %s declares Up but %s does not connect Down", ErrDanglingConnection, p, Cell{p.Row - 1, p.Column})
			}
		}
	}
	return nil
}

func (g *Graph) checkOutputs() error {
	coils := make(map[string]Placed)
	for _, p := range g.elements {
		if !p.Kind.IsOutput() {
			continue
		}
		if p.Connections.Has(Up) || p.Connections.Has(Down) {
			return fmt.Errorf("%w: vertical link on output %s", ErrUnsupportedTopology, p)
		}
		if p.Kind != KindCoil && p.Kind != KindTimer {
			continue
		}
		k := p.Address.String()
		if prev, ok := coils[k]; ok {
			return fmt.Errorf("%w: %s is written by %s and %s", ErrDuplicateOutput, p.Address, prev, p)
		}
		coils[k] = p
	}
	return nil
}

// checkMainPath walks row 0 from the left rail until it meets an output element.
func (g *Graph) checkMainPath() error {
	p, ok := g.At(0, 0)
	if !ok || !p.Connections.Has(Left) {
		return fmt.Errorf("%w: row 0 does not start at the left rail", ErrNoEnergizablePath)
	}
	for !p.Kind.IsOutput() {
		if !p.Connections.Has(Right) || p.Column+1 >= g.width {
			return fmt.Errorf("%w: row 0 stops at %s before reaching an output", ErrNoEnergizablePath, p)
		}
		p, _ = g.At(0, p.Column+1)
	}
	return nil
}

// mergePoints joins the rail and every vertical link and records the merged
// in and out point of each element.
func (g *Graph) mergePoints() *points {
	pts := newPoints(g.rows, g.width)
	for r := 1; r < g.rows; r++ {
		pts.union(pts.id(0, 0), pts.id(r, 0))
	}
	for _, p := range g.elements {
		if p.Connections.Has(Down) {
			pts.union(pts.id(p.Row, p.Column+1), pts.id(p.Row+1, p.Column+1))
		}
	}
	g.rail = pts.find(pts.id(0, 0))
	g.wires = make([]wire, len(g.elements))
	for i, p := range g.elements {
		g.wires[i] = wire{in: pts.in(p.Cell), out: pts.out(p.Cell)}
	}
	return pts
}
