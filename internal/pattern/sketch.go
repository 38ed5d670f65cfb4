package pattern

import (
	"fmt"

	"github.com/specialistvlad/ladsynth/internal/ladder"
)

// sketch lays a rung out left to right on row 0: an optional parallel group
// against the left rail, series elements after it, filler lines, then the
// outputs stacked in the terminal column.
type sketch struct {
	b    *ladder.RungBuilder
	next int
}

func (c *compiler) sketch() *sketch {
	var opts []ladder.RungOption
	if c.width > 0 {
		opts = append(opts, ladder.WithWidth(c.width))
	}
	return &sketch{b: ladder.BeginRung(opts...)}
}

// parallel places branches one per row in column 0. It must come first.
func (s *sketch) parallel(branches []ladder.Element) error {
	if len(branches) < 2 {
		return s.series(branches...)
	}
	if s.next != 0 {
		return fmt.Errorf("parallel group after column %d", s.next)
	}
	for i, e := range branches {
		conn := ladder.Left
		if i == 0 {
			conn |= ladder.Right
		} else {
			conn |= ladder.Up
		}
		if i < len(branches)-1 {
			conn |= ladder.Down
		}
		if err := s.b.Place(e, i, 0, conn); err != nil {
			return err
		}
	}
	s.next = 1
	return nil
}

func (s *sketch) series(elems ...ladder.Element) error {
	for _, e := range elems {
		if s.next >= s.b.TerminalColumn() {
			return fmt.Errorf("%w: condition needs more than %d columns", ladder.ErrOutOfGrid, s.b.TerminalColumn())
		}
		if err := s.b.Place(e, 0, s.next, ladder.Left|ladder.Right); err != nil {
			return err
		}
		s.next++
	}
	return nil
}

// outputs terminates the rung. Several outputs share the condition through a
// vertical merge in the column before the terminal one.
func (s *sketch) outputs(outs ...ladder.Element) (*ladder.Graph, error) {
	terminal := s.b.TerminalColumn()
	last := terminal
	if len(outs) > 1 {
		last = terminal - 1
	}
	if s.next > last {
		return nil, fmt.Errorf("%w: condition uses %d columns, %d fit before %d outputs", ladder.ErrOutOfGrid, s.next, last, len(outs))
	}
	if err := s.b.FillSeries(s.next, last, 0); err != nil {
		return nil, err
	}

	if len(outs) > 1 {
		if err := s.b.Place(ladder.Line(), 0, last, ladder.Left|ladder.Right|ladder.Down); err != nil {
			return nil, err
		}
		for i := 1; i < len(outs); i++ {
			conn := ladder.Up | ladder.Right
			if i < len(outs)-1 {
				conn |= ladder.Down
			}
			if err := s.b.Place(ladder.Line(), i, last, conn); err != nil {
				return nil, err
			}
		}
	}
	for i, o := range outs {
		if err := s.b.Place(o, i, terminal, ladder.Left|ladder.Right); err != nil {
			return nil, err
		}
	}
	return s.b.Finalize()
}
