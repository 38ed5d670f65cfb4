package hcl

import (
	"context"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/ladsynth/internal/config"
)

type outputArgs struct {
	When  []string `ladsynth:"when,optional"`
	Coils []string `ladsynth:"coils"`
	Limit *float64 `ladsynth:"limit,optional"`
	Count int      `ladsynth:"count,optional"`
}

func parseArgs(t *testing.T, src string) map[string]hcl.Expression {
	t.Helper()
	f, diags := hclsyntax.ParseConfig([]byte(src), "args.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	attrs, diags := f.Body.JustAttributes()
	require.False(t, diags.HasErrors(), diags.Error())
	out := make(map[string]hcl.Expression)
	for name, attr := range attrs {
		out[name] = attr.Expr
	}
	return out
}

func TestDecodeArguments(t *testing.T) {
	evalCtx := &hcl.EvalContext{Variables: map[string]cty.Value{
		"sym": cty.ObjectVal(map[string]cty.Value{"LEVEL": cty.StringVal("%MW100")}),
	}}
	args := parseArgs(t, `
when  = ["START", "[ ${sym.LEVEL} < 5 ]"]
coils = ["RUN"]
count = "3"
`)

	var got outputArgs
	require.NoError(t, NewConverter().DecodeArguments(context.Background(), &got, args, evalCtx))
	assert.Equal(t, outputArgs{
		When:  []string{"START", "[ %MW100 < 5 ]"},
		Coils: []string{"RUN"},
		Count: 3,
	}, got)
}

func TestDecodeArguments_OptionalPointer(t *testing.T) {
	args := parseArgs(t, `
coils = ["RUN"]
limit = 2.5
`)
	var got outputArgs
	require.NoError(t, NewConverter().DecodeArguments(context.Background(), &got, args, nil))
	require.NotNil(t, got.Limit)
	assert.InDelta(t, 2.5, *got.Limit, 1e-9)
	assert.Nil(t, got.When)
}

func TestDecodeArguments_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{name: "missing required", src: `when = ["A"]`, wantMsg: `missing required argument "coils"`},
		{name: "null required", src: `coils = null`, wantMsg: `missing required argument "coils"`},
		{name: "unknown argument", src: "coils = [\"A\"]\ncolour = 1\nshade = 2", wantMsg: `unknown argument "colour", "shade"`},
		{name: "wrong type", src: `coils = "RUN"`, wantMsg: `"coils"`},
		{name: "undefined variable", src: `coils = [sym.MISSING]`, wantMsg: `"coils"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got outputArgs
			err := NewConverter().DecodeArguments(context.Background(), &got, parseArgs(t, tc.src), nil)
			require.ErrorIs(t, err, config.ErrInvalidSpec)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestDecodeArguments_BadTarget(t *testing.T) {
	var notStruct int
	err := NewConverter().DecodeArguments(context.Background(), &notStruct, nil, nil)
	require.Error(t, err)
}
