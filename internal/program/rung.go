package program

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/specialistvlad/ladsynth/internal/ctxlog"
	"github.com/specialistvlad/ladsynth/internal/il"
	"github.com/specialistvlad/ladsynth/internal/ladder"
)

// Rung is one graph together with its derived instruction list.
type Rung struct {
	Name         string
	Comment      string
	Label        string
	Graph        *ladder.Graph
	Instructions []il.Instruction
	// ID is assigned by Program.Append from the program and rung names.
	ID uuid.UUID
}

// Assemble linearizes g and checks that both forms agree on every vector of
// the battery.
func Assemble(ctx context.Context, name, comment, label string, g *ladder.Graph) (*Rung, error) {
	logger := ctxlog.FromContext(ctx).With("rung", name)

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidRungName)
	}
	prog, err := il.Linearize(g)
	if err != nil {
		return nil, fmt.Errorf("rung %q: %w", name, err)
	}

	vectors := Battery(name, g.Inputs())
	for _, in := range vectors {
		if err := compare(g, prog, in); err != nil {
			return nil, fmt.Errorf("rung %q: %w", name, err)
		}
	}
	logger.Debug("Rung assembled.", "instructions", len(prog), "inputs", len(g.Inputs()), "vectors", len(vectors))

	return &Rung{
		Name:         name,
		Comment:      comment,
		Label:        label,
		Graph:        g,
		Instructions: prog,
	}, nil
}

func compare(g *ladder.Graph, prog []il.Instruction, in ladder.Signals) error {
	want := g.Evaluate(in)
	got, err := il.Run(prog, in)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLinearizationMismatch, err)
	}
	keys := make(map[string]struct{}, len(want)+len(got))
	for k := range want {
		keys[k] = struct{}{}
	}
	for k := range got {
		keys[k] = struct{}{}
	}
	for k := range keys {
		w, wok := want[k]
		v, gok := got[k]
		if w != v || wok != gok {
			return fmt.Errorf("%w: output %s is %v in the graph and %v in the instruction list for inputs %s",
				ErrLinearizationMismatch, k, describe(w, wok), describe(v, gok), formatVector(in))
		}
	}
	return nil
}

func describe(v, ok bool) string {
	if !ok {
		return "unwritten"
	}
	return fmt.Sprint(v)
}

func formatVector(in ladder.Signals) string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, in[k])
	}
	return "{" + strings.Join(parts, " ") + "}"
}
