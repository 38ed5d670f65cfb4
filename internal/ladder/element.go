package ladder

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/ladsynth/internal/address"
)

// Kind tags the variant of an Element.
type Kind int

const (
	KindContact Kind = iota
	KindCoil
	KindComparison
	KindOperation
	KindTimer
	KindLine
)

var kindNames = map[Kind]string{
	KindContact:    "contact",
	KindCoil:       "coil",
	KindComparison: "comparison",
	KindOperation:  "operation",
	KindTimer:      "timer",
	KindLine:       "line",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind reads the element kind names used by process specifications.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown element kind %q", ErrInvalidElement, s)
}

// IsOutput reports whether the kind terminates a network.
func (k Kind) IsOutput() bool {
	return k == KindCoil || k == KindOperation || k == KindTimer
}

// TimeBase is the tick of a timer block.
type TimeBase string

const (
	BaseOneMs     TimeBase = "OneMs"
	BaseTenMs     TimeBase = "TenMs"
	BaseHundredMs TimeBase = "HundredMs"
	BaseOneSecond TimeBase = "OneSecond"
	BaseOneMinute TimeBase = "OneMinute"
)

var baseAliases = map[string]TimeBase{
	"1ms":       BaseOneMs,
	"10ms":      BaseTenMs,
	"100ms":     BaseHundredMs,
	"1s":        BaseOneSecond,
	"1min":      BaseOneMinute,
	"onems":     BaseOneMs,
	"tenms":     BaseTenMs,
	"hundredms": BaseHundredMs,
	"onesecond": BaseOneSecond,
	"oneminute": BaseOneMinute,
}

// ParseTimeBase accepts "1ms", "10ms", "100ms", "1s", "1min" or the rendered names.
func ParseTimeBase(s string) (TimeBase, error) {
	if b, ok := baseAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return b, nil
	}
	return "", fmt.Errorf("%w: unknown time base %q", ErrInvalidElement, s)
}

// TimerMode selects the timer behavior.
type TimerMode string

const (
	ModeOnDelay  TimerMode = "TON"
	ModeOffDelay TimerMode = "TOF"
	ModePulse    TimerMode = "TP"
)

// ParseTimerMode accepts TON, TOF and TP.
func ParseTimerMode(s string) (TimerMode, error) {
	switch m := TimerMode(strings.ToUpper(strings.TrimSpace(s))); m {
	case ModeOnDelay, ModeOffDelay, ModePulse:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown timer mode %q", ErrInvalidElement, s)
}

// Element is one visual unit of a rung.
type Element struct {
	Kind Kind
	// Address is the operand of contacts, coils and timer blocks.
	Address address.Address
	Negated bool
	// Expression is the comparison text, or the right-hand side of an operation.
	// It is opaque to this package.
	Expression string
	// Target is the assigned location of an operation.
	Target address.Address
	Preset int
	Base   TimeBase
	Mode   TimerMode
}

// Contact reads a bit; negated contacts conduct when the bit is off.
func Contact(addr address.Address, negated bool) Element {
	return Element{Kind: KindContact, Address: addr, Negated: negated}
}

// Coil writes the power reaching it into a bit.
func Coil(addr address.Address) Element {
	return Element{Kind: KindCoil, Address: addr}
}

// Comparison conducts while expr holds.
func Comparison(expr string) Element {
	return Element{Kind: KindComparison, Expression: expr}
}

// Operation assigns expr to target while powered.
func Operation(target address.Address, expr string) Element {
	return Element{Kind: KindOperation, Target: target, Expression: expr}
}

// TimerBlock places a timer function block. Its Q pin feeds the element to its right.
func TimerBlock(addr address.Address, preset int, base TimeBase, mode TimerMode) Element {
	return Element{Kind: KindTimer, Address: addr, Preset: preset, Base: base, Mode: mode}
}

// Line is a pass-through connector.
func Line() Element {
	return Element{Kind: KindLine}
}

func (e Element) validate() error {
	switch e.Kind {
	case KindContact:
		return expectZone(e.Kind, e.Address, address.ZoneBit)
	case KindCoil:
		return expectZone(e.Kind, e.Address, address.ZoneBit)
	case KindComparison:
		if strings.TrimSpace(e.Expression) == "" {
			return fmt.Errorf("%w: comparison without expression", ErrInvalidElement)
		}
	case KindOperation:
		if strings.TrimSpace(e.Expression) == "" {
			return fmt.Errorf("%w: operation on %s without expression", ErrInvalidElement, e.Target)
		}
		return expectZone(e.Kind, e.Target, address.ZoneWord, address.ZoneFloat)
	case KindTimer:
		if e.Preset < 0 {
			return fmt.Errorf("%w: timer %s has negative preset %d", ErrInvalidElement, e.Address, e.Preset)
		}
		return expectZone(e.Kind, e.Address, address.ZoneTimer)
	case KindLine:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidElement, e.Kind)
	}
	return nil
}

func expectZone(kind Kind, addr address.Address, zones ...address.Zone) error {
	for _, z := range zones {
		if addr.Zone == z {
			return nil
		}
	}
	return fmt.Errorf("%w: %s operand %s is in zone %s, expected %v", address.ErrZoneMismatch, kind, addr, addr.Zone, zones)
}

// Cell is a grid coordinate.
type Cell struct {
	Row    int
	Column int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
}

// Placed is an element positioned on the grid.
type Placed struct {
	Element
	Cell
	Connections Connection
}

func (p Placed) String() string {
	return fmt.Sprintf("%s at %s", p.describe(), p.Cell)
}

func (p Placed) describe() string {
	switch p.Kind {
	case KindContact, KindCoil, KindTimer:
		return fmt.Sprintf("%s %s", p.Kind, p.Address)
	case KindComparison:
		return fmt.Sprintf("comparison [%s]", p.Expression)
	case KindOperation:
		return fmt.Sprintf("operation %s", p.Target)
	}
	return p.Kind.String()
}
