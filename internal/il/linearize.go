package il

import (
	"fmt"

	"github.com/specialistvlad/ladsynth/internal/ladder"
)

// Linearize derives the instruction list of a finalized rung. Networks are
// emitted in grid order; parallel branches are joined with Or in ascending
// row order.
func Linearize(g *ladder.Graph) ([]Instruction, error) {
	l := &linearizer{energized: true}
	for _, n := range g.Networks() {
		if err := l.network(n); err != nil {
			return nil, err
		}
	}
	return l.out, nil
}

type linearizer struct {
	out []Instruction
	// energized is set while the accumulator is known to be true without
	// loading anything: at the start of a rung and right after BlockOpen.
	energized bool
}

func (l *linearizer) emit(i Instruction) {
	l.out = append(l.out, i)
	l.energized = false
}

func (l *linearizer) network(n *ladder.Network) error {
	loaded := false
	for _, term := range n.Outputs {
		if term.Kind == ladder.KindTimer {
			if err := l.timer(n.Condition, term); err != nil {
				return err
			}
			// END_BLK leaves the accumulator undefined.
			loaded = false
			continue
		}
		if !loaded {
			if err := l.condition(n.Condition); err != nil {
				return err
			}
			loaded = true
		}
		switch term.Kind {
		case ladder.KindCoil:
			l.emit(Store(term.Address))
		case ladder.KindOperation:
			l.emit(Assign(term.Target, term.Expression))
		default:
			return fmt.Errorf("%w: %s is not an output", ladder.ErrInvalidElement, term.Placed)
		}
	}
	return nil
}

// condition loads cond into the accumulator. An unconditional network emits
// nothing when the accumulator is already known to be energized.
func (l *linearizer) condition(cond *ladder.Expr) error {
	if cond.Kind == ladder.ExprTrue {
		if !l.energized {
			l.emit(LoadTrue())
		}
		return nil
	}
	return l.start(cond, OpLoad)
}

func (l *linearizer) timer(enable *ladder.Expr, term ladder.Terminal) error {
	l.emit(BlockOpen(term.Address))
	l.energized = true
	if err := l.condition(enable); err != nil {
		return err
	}
	l.emit(In())
	l.emit(OutBlock())
	for _, n := range term.Driven {
		if err := l.network(n); err != nil {
			return err
		}
	}
	l.emit(BlockClose())
	return nil
}

// start loads x using opener for its leftmost operand: OpLoad replaces the
// accumulator, OpAndOpen and OpOrOpen begin a parenthesized branch.
func (l *linearizer) start(x *ladder.Expr, opener Op) error {
	switch x.Kind {
	case ladder.ExprTrue:
		if opener != OpLoad {
			return fmt.Errorf("%w: constant operand inside a branch", ladder.ErrUnsupportedTopology)
		}
		l.emit(LoadTrue())
	case ladder.ExprLeaf:
		l.emit(leaf(opener, x.Leaf))
	case ladder.ExprAnd:
		if err := l.start(x.Terms[0], opener); err != nil {
			return err
		}
		for _, t := range x.Terms[1:] {
			if err := l.and(t); err != nil {
				return err
			}
		}
	case ladder.ExprOr:
		if err := l.start(x.Terms[0], opener); err != nil {
			return err
		}
		for _, t := range x.Terms[1:] {
			if err := l.or(t); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *linearizer) and(x *ladder.Expr) error {
	switch x.Kind {
	case ladder.ExprTrue:
	case ladder.ExprLeaf:
		l.emit(leaf(OpAnd, x.Leaf))
	case ladder.ExprAnd:
		for _, t := range x.Terms {
			if err := l.and(t); err != nil {
				return err
			}
		}
	case ladder.ExprOr:
		if err := l.start(x, OpAndOpen); err != nil {
			return err
		}
		l.emit(Close())
	}
	return nil
}

func (l *linearizer) or(x *ladder.Expr) error {
	switch x.Kind {
	case ladder.ExprTrue:
		l.emit(LoadTrue())
	case ladder.ExprLeaf:
		l.emit(leaf(OpOr, x.Leaf))
	case ladder.ExprOr:
		for _, t := range x.Terms {
			if err := l.or(t); err != nil {
				return err
			}
		}
	case ladder.ExprAnd:
		if err := l.start(x, OpOrOpen); err != nil {
			return err
		}
		l.emit(Close())
	}
	return nil
}

func leaf(op Op, lf ladder.Leaf) Instruction {
	switch lf.Kind {
	case ladder.LeafComparison:
		switch op {
		case OpLoad:
			return LoadBlock(lf.Expression)
		case OpAnd:
			return AndBlock(lf.Expression)
		case OpOr:
			return OrBlock(lf.Expression)
		}
		return Instruction{Op: op, Expr: lf.Expression}
	case ladder.LeafPin:
		return Instruction{Op: op, Pin: lf.Pin, Negate: lf.Negated}
	}
	return Instruction{Op: op, Address: lf.Address, Negate: lf.Negated}
}
