package ladder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_Parallel(t *testing.T) {
	g, err := parallelContacts(t).Finalize()
	require.NoError(t, err)

	testCases := []struct {
		a, b, want bool
	}{
		{false, false, false},
		{true, false, true},
		{false, true, true},
		{true, true, true},
	}
	for _, tc := range testCases {
		out := g.Evaluate(Signals{"%M0": tc.a, "%M1": tc.b})
		assert.Equal(t, tc.want, out["%M2"], "A=%v B=%v", tc.a, tc.b)
	}
}

func TestEvaluate_SnapshotInputs(t *testing.T) {
	// %M1 is written by the first network and read by the second; the read
	// sees the input vector, not the value written this scan.
	b := BeginRung()
	place(t, b, Contact(bit(0), false), 0, 0, Left|Right)
	fill(t, b, 1, 10, 0)
	place(t, b, Coil(bit(1)), 0, 10, Left|Right)
	place(t, b, Contact(bit(1), false), 1, 0, Left|Right)
	fill(t, b, 1, 10, 1)
	place(t, b, Coil(bit(2)), 1, 10, Left|Right)

	g, err := b.Finalize()
	require.NoError(t, err)

	got := g.Evaluate(Signals{"%M0": true, "%M1": false})
	want := Outputs{"%M1": true, "%M2": false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Evaluate() mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_TimerPins(t *testing.T) {
	g, err := onDelay(t).Finalize()
	require.NoError(t, err)

	got := g.Evaluate(Signals{"%M0": false, "%TM0.Q": true})
	want := Outputs{"%TM0.IN": false, "%M1": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Evaluate() mismatch (-want +got):\n%s", diff)
	}
}

// TestEvaluate_MatchesNetworks checks that power flow and the reduced
// conditions agree on every input combination.
func TestEvaluate_MatchesNetworks(t *testing.T) {
	builders := map[string]func(t *testing.T) *RungBuilder{
		"single":   singleContact,
		"parallel": parallelContacts,
		"timer":    onDelay,
		"mixed": func(t *testing.T) *RungBuilder {
			b := BeginRung()
			place(t, b, Contact(bit(0), false), 0, 0, Left|Right|Down)
			place(t, b, Contact(bit(1), true), 0, 1, Left|Right)
			place(t, b, Contact(bit(2), false), 0, 2, Left|Right|Down)
			fill(t, b, 3, 10, 0)
			place(t, b, Coil(bit(9)), 0, 10, Left|Right)
			place(t, b, Contact(bit(3), false), 1, 0, Left|Up|Right)
			place(t, b, Comparison("%MW100 < 3"), 1, 1, Left|Right)
			place(t, b, Line(), 1, 2, Left|Up)
			return b
		},
	}

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			g, err := build(t).Finalize()
			require.NoError(t, err)

			inputs := g.Inputs()
			for mask := 0; mask < 1<<len(inputs); mask++ {
				in := make(Signals)
				for i, k := range inputs {
					in[k] = mask&(1<<i) != 0
				}
				if diff := cmp.Diff(fromNetworks(g.Networks(), in), g.Evaluate(in)); diff != "" {
					t.Fatalf("inputs %v (-networks +power flow):\n%s", in, diff)
				}
			}
		})
	}
}

func fromNetworks(nets []*Network, in Signals) Outputs {
	out := make(Outputs)
	for _, n := range nets {
		v := n.Condition.Eval(in)
		for _, term := range n.Outputs {
			key, _ := outputKey(term.Placed)
			out[key] = v
			for k, dv := range fromNetworks(term.Driven, in) {
				out[k] = dv
			}
		}
	}
	return out
}
