package pattern

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/ladsynth/internal/address"
	"github.com/specialistvlad/ladsynth/internal/ladder"
)

// term parses one condition term.
func (c *compiler) term(raw string) (ladder.Element, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return ladder.Element{}, fmt.Errorf("%w: %q has no closing bracket", ErrInvalidTerm, raw)
		}
		expr := strings.TrimSpace(s[1 : len(s)-1])
		if expr == "" {
			return ladder.Element{}, fmt.Errorf("%w: empty comparison", ErrInvalidTerm)
		}
		return ladder.Comparison(expr), nil
	}

	negated := strings.HasPrefix(s, "!")
	name := strings.TrimSpace(strings.TrimPrefix(s, "!"))
	if name == "" {
		return ladder.Element{}, fmt.Errorf("%w: %q names no symbol", ErrInvalidTerm, raw)
	}
	addr, err := c.reg.ResolveZone(name, address.ZoneBit)
	if err != nil {
		return ladder.Element{}, err
	}
	return ladder.Contact(addr, negated), nil
}

func (c *compiler) terms(raw []string) ([]ladder.Element, error) {
	out := make([]ladder.Element, 0, len(raw))
	for _, r := range raw {
		e, err := c.term(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// inverse flips a contact. Comparisons are opaque and cannot be inverted.
func inverse(e ladder.Element) (ladder.Element, error) {
	if e.Kind != ladder.KindContact {
		return ladder.Element{}, fmt.Errorf("%w: cannot invert comparison [%s]", ErrInvalidTerm, e.Expression)
	}
	e.Negated = !e.Negated
	return e, nil
}

func (c *compiler) coils(names []string) ([]ladder.Element, error) {
	out := make([]ladder.Element, 0, len(names))
	for _, name := range names {
		addr, err := c.reg.ResolveZone(name, address.ZoneBit)
		if err != nil {
			return nil, err
		}
		out = append(out, ladder.Coil(addr))
	}
	return out, nil
}

// timerBlock builds the block element of a declared timer.
func (c *compiler) timerBlock(name string) (ladder.Element, error) {
	addr, err := c.reg.ResolveZone(name, address.ZoneTimer)
	if err != nil {
		return ladder.Element{}, err
	}
	t, ok := c.prog.Timer(addr)
	if !ok {
		return ladder.Element{}, fmt.Errorf("%w: %q is not declared as a timer", ErrInvalidArgument, name)
	}
	return ladder.TimerBlock(t.Address, t.Preset, t.Base, t.Mode), nil
}
