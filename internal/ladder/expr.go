package ladder

import (
	"sort"
	"strings"

	"github.com/specialistvlad/ladsynth/internal/address"
)

// LeafKind tags the operand of a condition leaf.
type LeafKind int

const (
	LeafContact LeafKind = iota
	LeafComparison
	LeafPin
)

// Leaf is a single boolean operand of a network condition.
type Leaf struct {
	Kind       LeafKind
	Address    address.Address
	Negated    bool
	Expression string
	// Pin names the function block output read by a LeafPin, e.g. "Q".
	Pin string
}

// Signal returns the input key the leaf reads.
func (l Leaf) Signal() string {
	switch l.Kind {
	case LeafComparison:
		return CompareSignal(l.Expression)
	case LeafPin:
		return PinSignal(l.Address, l.Pin)
	}
	return ContactSignal(l.Address)
}

// Eval returns the leaf value for the given inputs.
func (l Leaf) Eval(in Signals) bool {
	v := in[l.Signal()]
	if l.Negated {
		return !v
	}
	return v
}

func (l Leaf) String() string {
	var s string
	switch l.Kind {
	case LeafComparison:
		s = "[" + l.Expression + "]"
	case LeafPin:
		s = l.Pin
	default:
		s = l.Address.String()
	}
	if l.Negated {
		return "!" + s
	}
	return s
}

// ExprKind tags the shape of a condition.
type ExprKind int

const (
	ExprTrue ExprKind = iota
	ExprLeaf
	ExprAnd
	ExprOr
)

// Expr is a series-parallel condition. And terms keep left-to-right order;
// Or terms are ordered by ascending row.
type Expr struct {
	Kind  ExprKind
	Leaf  Leaf
	Terms []*Expr
	at    Cell
}

func trueAt(c Cell) *Expr {
	return &Expr{Kind: ExprTrue, at: c}
}

func leafAt(l Leaf, c Cell) *Expr {
	return &Expr{Kind: ExprLeaf, Leaf: l, at: c}
}

func before(a, b Cell) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Column < b.Column
}

func series(terms ...*Expr) *Expr {
	out := &Expr{Kind: ExprAnd, at: terms[0].at}
	for _, t := range terms {
		if t.Kind != ExprTrue && before(t.at, out.at) {
			out.at = t.at
		}
		switch t.Kind {
		case ExprTrue:
		case ExprAnd:
			out.Terms = append(out.Terms, t.Terms...)
		default:
			out.Terms = append(out.Terms, t)
		}
	}
	switch len(out.Terms) {
	case 0:
		return trueAt(out.at)
	case 1:
		only := *out.Terms[0]
		only.at = out.at
		return &only
	}
	return out
}

func parallel(terms []*Expr) *Expr {
	sorted := append([]*Expr(nil), terms...)
	sort.SliceStable(sorted, func(i, j int) bool { return before(sorted[i].at, sorted[j].at) })

	out := &Expr{Kind: ExprOr, at: sorted[0].at}
	for _, t := range sorted {
		switch t.Kind {
		case ExprTrue:
			// A bare wire in parallel shorts the whole branch.
			return trueAt(out.at)
		case ExprOr:
			out.Terms = append(out.Terms, t.Terms...)
		default:
			out.Terms = append(out.Terms, t)
		}
	}
	if len(out.Terms) == 1 {
		return out.Terms[0]
	}
	return out
}

// Eval evaluates the condition for the given inputs.
func (e *Expr) Eval(in Signals) bool {
	switch e.Kind {
	case ExprTrue:
		return true
	case ExprLeaf:
		return e.Leaf.Eval(in)
	case ExprAnd:
		for _, t := range e.Terms {
			if !t.Eval(in) {
				return false
			}
		}
		return true
	case ExprOr:
		for _, t := range e.Terms {
			if t.Eval(in) {
				return true
			}
		}
		return false
	}
	return false
}

func (e *Expr) String() string {
	switch e.Kind {
	case ExprTrue:
		return "TRUE"
	case ExprLeaf:
		return e.Leaf.String()
	}
	sep := " & "
	if e.Kind == ExprOr {
		sep = " | "
	}
	parts := make([]string, len(e.Terms))
	for i, t := range e.Terms {
		if t.Kind == ExprAnd || t.Kind == ExprOr {
			parts[i] = "(" + t.String() + ")"
		} else {
			parts[i] = t.String()
		}
	}
	return strings.Join(parts, sep)
}
