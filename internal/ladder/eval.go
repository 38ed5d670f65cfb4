package ladder

// Evaluate computes the outputs of one scan by power flow over the grid.
// Inputs are a snapshot: coils written by the rung do not feed back into
// contacts of the same scan, and timer Q pins are read from in.
func (g *Graph) Evaluate(in Signals) Outputs {
	powered := map[int]bool{g.rail: true}
	out := make(Outputs)

	// Points on boundary c+1 are only driven by column c, so a column-major
	// sweep sees every in-point settled before it is read.
	for col := 0; col < g.width; col++ {
		for i, p := range g.elements {
			if p.Column != col {
				continue
			}
			w := g.wires[i]
			live := p.Connections.Has(Left) && powered[w.in]
			switch p.Kind {
			case KindContact:
				v := in[ContactSignal(p.Address)]
				if p.Negated {
					v = !v
				}
				if live && v {
					powered[w.out] = true
				}
			case KindComparison:
				if live && in[CompareSignal(p.Expression)] {
					powered[w.out] = true
				}
			case KindLine:
				if live {
					powered[w.out] = true
				}
			case KindTimer:
				out[TimerInput(p.Address)] = live
				if p.Connections.Has(Right) && in[PinSignal(p.Address, "Q")] {
					powered[w.out] = true
				}
			case KindCoil:
				out[CoilOutput(p.Address)] = live
			case KindOperation:
				out[OperationOutput(p.Target, p.Expression)] = live
			}
		}
	}
	return out
}
