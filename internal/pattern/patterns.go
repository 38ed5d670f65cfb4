package pattern

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/ladsynth/internal/address"
	"github.com/specialistvlad/ladsynth/internal/config"
	"github.com/specialistvlad/ladsynth/internal/ladder"
)

type outputArgs struct {
	Any   []string `ladsynth:"any,optional"`
	When  []string `ladsynth:"when,optional"`
	Coils []string `ladsynth:"coils"`
}

// expandOutput drives coils from (any_1 | ... | any_n) & when_1 & ... & when_m.
func expandOutput(ctx context.Context, c *compiler, r *config.Rung) (*ladder.Graph, error) {
	var args outputArgs
	if err := c.decode(ctx, r.Arguments, &args); err != nil {
		return nil, err
	}
	if len(args.Coils) == 0 {
		return nil, fmt.Errorf("%w: coils is empty", ErrInvalidArgument)
	}
	anyOf, err := c.terms(args.Any)
	if err != nil {
		return nil, err
	}
	when, err := c.terms(args.When)
	if err != nil {
		return nil, err
	}
	coils, err := c.coils(args.Coils)
	if err != nil {
		return nil, err
	}

	s := c.sketch()
	if err := s.parallel(anyOf); err != nil {
		return nil, err
	}
	if err := s.series(when...); err != nil {
		return nil, err
	}
	return s.outputs(coils...)
}

type latchArgs struct {
	Set    []string `ladsynth:"set"`
	Reset  []string `ladsynth:"reset,optional"`
	Output string   `ladsynth:"output"`
}

// expandLatch builds a seal-in: (set_1 | ... | OUTPUT) & !reset_1 & ... -> OUTPUT.
func expandLatch(ctx context.Context, c *compiler, r *config.Rung) (*ladder.Graph, error) {
	var args latchArgs
	if err := c.decode(ctx, r.Arguments, &args); err != nil {
		return nil, err
	}
	if len(args.Set) == 0 {
		return nil, fmt.Errorf("%w: set is empty", ErrInvalidArgument)
	}
	set, err := c.terms(args.Set)
	if err != nil {
		return nil, err
	}
	coils, err := c.coils([]string{args.Output})
	if err != nil {
		return nil, err
	}
	seal := ladder.Contact(coils[0].Address, false)

	resets, err := c.terms(args.Reset)
	if err != nil {
		return nil, err
	}
	for i, e := range resets {
		if resets[i], err = inverse(e); err != nil {
			return nil, err
		}
	}

	s := c.sketch()
	if err := s.parallel(append(set, seal)); err != nil {
		return nil, err
	}
	if err := s.series(resets...); err != nil {
		return nil, err
	}
	return s.outputs(coils...)
}

type compareArgs struct {
	Expression string   `ladsynth:"expression"`
	When       []string `ladsynth:"when,optional"`
	Coils      []string `ladsynth:"coils"`
}

// expandCompare drives coils from when_1 & ... & [expression].
func expandCompare(ctx context.Context, c *compiler, r *config.Rung) (*ladder.Graph, error) {
	var args compareArgs
	if err := c.decode(ctx, r.Arguments, &args); err != nil {
		return nil, err
	}
	if strings.TrimSpace(args.Expression) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidArgument)
	}
	if len(args.Coils) == 0 {
		return nil, fmt.Errorf("%w: coils is empty", ErrInvalidArgument)
	}
	when, err := c.terms(args.When)
	if err != nil {
		return nil, err
	}
	coils, err := c.coils(args.Coils)
	if err != nil {
		return nil, err
	}

	s := c.sketch()
	if err := s.series(append(when, ladder.Comparison(strings.TrimSpace(args.Expression)))...); err != nil {
		return nil, err
	}
	return s.outputs(coils...)
}

type assignArgs struct {
	When       []string `ladsynth:"when,optional"`
	Target     string   `ladsynth:"target"`
	Expression string   `ladsynth:"expression"`
}

// expandAssign executes target := expression while the when terms hold.
func expandAssign(ctx context.Context, c *compiler, r *config.Rung) (*ladder.Graph, error) {
	var args assignArgs
	if err := c.decode(ctx, r.Arguments, &args); err != nil {
		return nil, err
	}
	return c.operation(args.When, args.Target, args.Expression)
}

func (c *compiler) operation(whenTerms []string, targetName, expr string) (*ladder.Graph, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidArgument)
	}
	target, err := c.reg.ResolveZone(targetName, address.ZoneWord, address.ZoneFloat)
	if err != nil {
		return nil, err
	}
	when, err := c.terms(whenTerms)
	if err != nil {
		return nil, err
	}

	s := c.sketch()
	if err := s.series(when...); err != nil {
		return nil, err
	}
	return s.outputs(ladder.Operation(target, strings.TrimSpace(expr)))
}

type scaleArgs struct {
	When   []string `ladsynth:"when,optional"`
	Source string   `ladsynth:"source"`
	Target string   `ladsynth:"target"`
	RawMin *int     `ladsynth:"raw_min,optional"`
	RawMax *int     `ladsynth:"raw_max,optional"`
	EngMin float64  `ladsynth:"eng_min,optional"`
	EngMax float64  `ladsynth:"eng_max"`
}

// expandScale converts a raw integer reading into engineering units:
// target := INT_TO_REAL(source - raw_min) * k + eng_min. The raw span
// defaults to the configured range of an analog source channel.
func expandScale(ctx context.Context, c *compiler, r *config.Rung) (*ladder.Graph, error) {
	var args scaleArgs
	if err := c.decode(ctx, r.Arguments, &args); err != nil {
		return nil, err
	}
	source, err := c.reg.ResolveZone(args.Source, address.ZoneAnalog, address.ZoneWord)
	if err != nil {
		return nil, err
	}
	if _, err := c.reg.ResolveZone(args.Target, address.ZoneFloat); err != nil {
		return nil, err
	}

	rawMin, rawMax, ok := c.channelRange(source)
	if args.RawMin != nil {
		rawMin = *args.RawMin
	}
	if args.RawMax != nil {
		rawMax = *args.RawMax
	}
	if !ok && (args.RawMin == nil || args.RawMax == nil) {
		return nil, fmt.Errorf("%w: %s is not an analog channel, raw_min and raw_max are required", ErrInvalidArgument, args.Source)
	}
	if rawMax == rawMin {
		return nil, fmt.Errorf("%w: empty raw span [%d, %d]", ErrInvalidArgument, rawMin, rawMax)
	}

	k := (args.EngMax - args.EngMin) / float64(rawMax-rawMin)
	expr := fmt.Sprintf("INT_TO_REAL(%s - %d) * %s + %s", source, rawMin, realLiteral(k), realLiteral(args.EngMin))
	return c.operation(args.When, args.Target, expr)
}

func (c *compiler) channelRange(addr address.Address) (int, int, bool) {
	for _, ext := range c.prog.Extensions() {
		for _, ch := range ext.Channels {
			if ch.Address.Same(addr) && ch.Used() {
				return ch.Range.Min, ch.Range.Max, true
			}
		}
	}
	return 0, 0, false
}

// realLiteral formats v so that it always carries a decimal point.
func realLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type timeoutArgs struct {
	When   []string `ladsynth:"when,optional"`
	Timer  string   `ladsynth:"timer"`
	Output string   `ladsynth:"output"`
}

// expandTimeout enables a timer from the when terms; its Q pin drives output.
func expandTimeout(ctx context.Context, c *compiler, r *config.Rung) (*ladder.Graph, error) {
	var args timeoutArgs
	if err := c.decode(ctx, r.Arguments, &args); err != nil {
		return nil, err
	}
	when, err := c.terms(args.When)
	if err != nil {
		return nil, err
	}
	block, err := c.timerBlock(args.Timer)
	if err != nil {
		return nil, err
	}
	coils, err := c.coils([]string{args.Output})
	if err != nil {
		return nil, err
	}

	s := c.sketch()
	if err := s.series(append(when, block)...); err != nil {
		return nil, err
	}
	return s.outputs(coils...)
}

type elementArgs struct {
	Ref        string `ladsynth:"ref,optional"`
	Negated    bool   `ladsynth:"negated,optional"`
	Expression string `ladsynth:"expression,optional"`
	Target     string `ladsynth:"target,optional"`
}

// expandLadder places explicitly described elements.
func expandLadder(ctx context.Context, c *compiler, r *config.Rung) (*ladder.Graph, error) {
	if len(r.Arguments) > 0 {
		return nil, fmt.Errorf("%w: the ladder pattern takes elements, not arguments", ErrInvalidArgument)
	}
	b := c.sketch().b
	for _, e := range r.Elements {
		el, conn, err := c.element(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("element %s at (%d,%d): %w", e.Kind, e.Row, e.Column, err)
		}
		if err := b.Place(el, e.Row, e.Column, conn); err != nil {
			return nil, err
		}
	}
	return b.Finalize()
}

func (c *compiler) element(ctx context.Context, e *config.Element) (ladder.Element, ladder.Connection, error) {
	kind, err := ladder.ParseKind(e.Kind)
	if err != nil {
		return ladder.Element{}, 0, fmt.Errorf("%w: %w", config.ErrInvalidSpec, err)
	}
	conn, err := ladder.ParseConnections(e.Connections)
	if err != nil {
		return ladder.Element{}, 0, fmt.Errorf("%w: %w", config.ErrInvalidSpec, err)
	}
	var args elementArgs
	if err := c.decode(ctx, e.Arguments, &args); err != nil {
		return ladder.Element{}, 0, err
	}
	if err := args.check(kind); err != nil {
		return ladder.Element{}, 0, err
	}
	el, err := c.operand(kind, args)
	return el, conn, err
}

// applies lists the operand arguments each element kind accepts.
var applies = map[ladder.Kind][]string{
	ladder.KindContact:    {"ref", "negated"},
	ladder.KindCoil:       {"ref"},
	ladder.KindComparison: {"expression"},
	ladder.KindOperation:  {"target", "expression"},
	ladder.KindTimer:      {"ref"},
	ladder.KindLine:       nil,
}

func (a elementArgs) check(kind ladder.Kind) error {
	given := map[string]bool{
		"ref":        a.Ref != "",
		"negated":    a.Negated,
		"expression": a.Expression != "",
		"target":     a.Target != "",
	}
	for _, name := range applies[kind] {
		delete(given, name)
	}
	for _, name := range []string{"ref", "negated", "expression", "target"} {
		if given[name] {
			return fmt.Errorf("%w: %q does not apply to a %s", ErrInvalidArgument, name, kind)
		}
	}
	return nil
}

func (c *compiler) operand(kind ladder.Kind, args elementArgs) (ladder.Element, error) {
	switch kind {
	case ladder.KindContact:
		addr, err := c.reg.ResolveZone(args.Ref, address.ZoneBit)
		if err != nil {
			return ladder.Element{}, err
		}
		return ladder.Contact(addr, args.Negated), nil
	case ladder.KindCoil:
		addr, err := c.reg.ResolveZone(args.Ref, address.ZoneBit)
		if err != nil {
			return ladder.Element{}, err
		}
		return ladder.Coil(addr), nil
	case ladder.KindComparison:
		return ladder.Comparison(args.Expression), nil
	case ladder.KindOperation:
		target, err := c.reg.ResolveZone(args.Target, address.ZoneWord, address.ZoneFloat)
		if err != nil {
			return ladder.Element{}, err
		}
		return ladder.Operation(target, args.Expression), nil
	case ladder.KindTimer:
		return c.timerBlock(args.Ref)
	}
	return ladder.Line(), nil
}
