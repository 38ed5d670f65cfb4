package ladder

import "sort"

// Graph is a finalized rung: placed elements plus the networks derived from
// their point topology. A Graph is never modified after Finalize.
type Graph struct {
	width    int
	rows     int
	elements []Placed
	index    map[Cell]int
	// wires holds the merged in and out point of every element.
	wires    []wire
	rail     int
	networks []*Network
}

type wire struct {
	in, out int
}

// Width returns the number of grid columns.
func (g *Graph) Width() int { return g.width }

// Rows returns the number of occupied rows.
func (g *Graph) Rows() int { return g.rows }

// Elements returns the placed elements ordered by row, then column.
func (g *Graph) Elements() []Placed {
	return append([]Placed(nil), g.elements...)
}

// At returns the element at (row, column).
func (g *Graph) At(row, column int) (Placed, bool) {
	i, ok := g.index[Cell{Row: row, Column: column}]
	if !ok {
		return Placed{}, false
	}
	return g.elements[i], true
}

// Networks returns the series-parallel networks fed by the left rail, ordered
// by the grid position of their first output.
func (g *Graph) Networks() []*Network {
	return g.networks
}

// Inputs returns the sorted signal keys the rung reads.
func (g *Graph) Inputs() []string {
	seen := make(map[string]struct{})
	for _, p := range g.elements {
		switch p.Kind {
		case KindContact:
			seen[ContactSignal(p.Address)] = struct{}{}
		case KindComparison:
			seen[CompareSignal(p.Expression)] = struct{}{}
		case KindTimer:
			if p.Connections.Has(Right) {
				seen[PinSignal(p.Address, "Q")] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

// OutputKeys returns the sorted output keys the rung writes.
func (g *Graph) OutputKeys() []string {
	seen := make(map[string]struct{})
	for _, p := range g.elements {
		if key, ok := outputKey(p); ok {
			seen[key] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Outputs returns the output elements in grid order.
func (g *Graph) Outputs() []Placed {
	var out []Placed
	for _, p := range g.elements {
		if p.Kind.IsOutput() {
			out = append(out, p)
		}
	}
	return out
}

func outputKey(p Placed) (string, bool) {
	switch p.Kind {
	case KindCoil:
		return CoilOutput(p.Address), true
	case KindOperation:
		return OperationOutput(p.Target, p.Expression), true
	case KindTimer:
		return TimerInput(p.Address), true
	}
	return "", false
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
