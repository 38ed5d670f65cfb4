package ladder

import (
	"fmt"
)

// Network is one series-parallel condition and the outputs it feeds.
type Network struct {
	Condition *Expr
	Outputs   []Terminal
}

// Terminal is an output element of a network.
type Terminal struct {
	Placed
	// Driven holds the networks fed by a timer's Q pin, in grid order.
	Driven []*Network
}

// qSource is the Q pin of a timer block and the points it powers.
type qSource struct {
	timer int
	point int
	reach map[int]bool
}

// extract derives the networks of the rung from the merged point topology.
func (g *Graph) extract(pts *points) error {
	var edges []edge
	for i, p := range g.elements {
		if !p.Connections.Has(Left) {
			continue
		}
		w := g.wires[i]
		switch p.Kind {
		case KindContact:
			edges = append(edges, edge{from: w.in, to: w.out, expr: leafAt(Leaf{Kind: LeafContact, Address: p.Address, Negated: p.Negated}, p.Cell)})
		case KindComparison:
			edges = append(edges, edge{from: w.in, to: w.out, expr: leafAt(Leaf{Kind: LeafComparison, Expression: p.Expression}, p.Cell)})
		case KindLine:
			edges = append(edges, edge{from: w.in, to: w.out, expr: trueAt(p.Cell)})
		}
	}

	fromRail := reachFrom(edges, g.rail)

	var sources []qSource
	for i, p := range g.elements {
		if p.Kind != KindTimer || !p.Connections.Has(Right) {
			continue
		}
		src := qSource{timer: i, point: g.wires[i].out}
		src.reach = reachFrom(edges, src.point)
		for pt := range src.reach {
			if fromRail[pt] {
				return fmt.Errorf("%w: Q output of %s merges with the rail network", ErrUnsupportedTopology, p)
			}
			for _, other := range sources {
				if other.reach[pt] {
					return fmt.Errorf("%w: Q outputs of %s and %s merge", ErrUnsupportedTopology, g.elements[other.timer], p)
				}
			}
		}
		sources = append(sources, src)
	}

	var railOutputs []int
	driven := make(map[int][]int)
	for i, p := range g.elements {
		if !p.Kind.IsOutput() {
			continue
		}
		in := g.wires[i].in
		if !p.Connections.Has(Left) {
			return fmt.Errorf("%w: %s is not connected Left", ErrNoEnergizablePath, p)
		}
		if fromRail[in] {
			railOutputs = append(railOutputs, i)
			continue
		}
		owner := -1
		for s, src := range sources {
			if src.reach[in] {
				owner = s
				break
			}
		}
		if owner < 0 {
			return fmt.Errorf("%w: %s cannot be energized from the left rail", ErrNoEnergizablePath, p)
		}
		if p.Kind == KindTimer {
			return fmt.Errorf("%w: %s is nested under the Q output of %s", ErrUnsupportedTopology, p, g.elements[sources[owner].timer])
		}
		driven[owner] = append(driven[owner], i)
	}

	drivenBy := make(map[int][]*Network)
	for s, src := range sources {
		timer := g.elements[src.timer]
		pin := leafAt(Leaf{Kind: LeafPin, Address: timer.Address, Pin: "Q"}, timer.Cell)
		nets, err := g.group(edges, src.point, driven[s], pin, nil)
		if err != nil {
			return err
		}
		drivenBy[src.timer] = nets
	}

	nets, err := g.group(edges, g.rail, railOutputs, nil, drivenBy)
	if err != nil {
		return err
	}
	g.networks = nets
	return nil
}

// group builds one network per distinct in-point of outputs, ordered by
// their first output. A non-nil lead is put in series before each condition.
func (g *Graph) group(edges []edge, src int, outputs []int, lead *Expr, drivenBy map[int][]*Network) ([]*Network, error) {
	var nets []*Network
	byPoint := make(map[int]*Network)
	for _, i := range outputs {
		in := g.wires[i].in
		net, ok := byPoint[in]
		if !ok {
			cond, err := reduce(edges, src, in)
			if err != nil {
				return nil, fmt.Errorf("%w: network feeding %s", err, g.elements[i])
			}
			if lead != nil {
				cond = series(lead, cond)
			}
			net = &Network{Condition: cond}
			byPoint[in] = net
			nets = append(nets, net)
		}
		net.Outputs = append(net.Outputs, Terminal{Placed: g.elements[i], Driven: drivenBy[i]})
	}
	return nets, nil
}

// reduce collapses the edges lying on some path from src to dst into one
// expression by repeated parallel and series merges.
func reduce(all []edge, src, dst int) (*Expr, error) {
	if src == dst {
		return &Expr{Kind: ExprTrue}, nil
	}
	fwd := reachFrom(all, src)
	bwd := reachTo(all, dst)
	var edges []edge
	for _, e := range all {
		if fwd[e.from] && bwd[e.to] {
			edges = append(edges, e)
		}
	}
	for {
		if len(edges) == 1 && edges[0].from == src && edges[0].to == dst {
			return edges[0].expr, nil
		}
		var merged bool
		if edges, merged = mergeParallel(edges); merged {
			continue
		}
		if edges, merged = mergeSeries(edges, src, dst); merged {
			continue
		}
		return nil, fmt.Errorf("%w: bridge between branches is not series-parallel", ErrUnsupportedTopology)
	}
}

func mergeParallel(edges []edge) ([]edge, bool) {
	type span struct{ from, to int }
	groups := make(map[span][]*Expr)
	var order []span
	for _, e := range edges {
		s := span{e.from, e.to}
		if _, ok := groups[s]; !ok {
			order = append(order, s)
		}
		groups[s] = append(groups[s], e.expr)
	}
	if len(order) == len(edges) {
		return edges, false
	}
	out := make([]edge, 0, len(order))
	for _, s := range order {
		terms := groups[s]
		expr := terms[0]
		if len(terms) > 1 {
			expr = parallel(terms)
		}
		out = append(out, edge{from: s.from, to: s.to, expr: expr})
	}
	return out, true
}

func mergeSeries(edges []edge, src, dst int) ([]edge, bool) {
	in := make(map[int]int)
	outDeg := make(map[int]int)
	for _, e := range edges {
		in[e.to]++
		outDeg[e.from]++
	}
	for _, first := range edges {
		v := first.to
		if v == src || v == dst || in[v] != 1 || outDeg[v] != 1 {
			continue
		}
		out := make([]edge, 0, len(edges)-1)
		var second edge
		for _, e := range edges {
			if e.from == v {
				second = e
			}
		}
		for _, e := range edges {
			switch {
			case e.to == v:
				out = append(out, edge{from: first.from, to: second.to, expr: series(first.expr, second.expr)})
			case e.from == v:
			default:
				out = append(out, e)
			}
		}
		return out, true
	}
	return edges, false
}
