package hcl

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/ladsynth/internal/config"
	"github.com/specialistvlad/ladsynth/internal/ctxlog"
)

// TagName is the struct tag read by DecodeArguments, e.g.
// `ladsynth:"when,optional"`.
const TagName = "ladsynth"

// Converter is the HCL implementation of the config.Converter interface.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

type field struct {
	name     string
	optional bool
	index    int
}

// DecodeArguments evaluates each argument expression and populates the
// matching tagged field of target. Arguments without a field and missing
// required fields are both errors. A null value counts as absent.
func (c *Converter) DecodeArguments(ctx context.Context, target any, args map[string]hcl.Expression, evalCtx *hcl.EvalContext) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting argument decoding.", "arguments", len(args))

	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() || structVal.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("target must be a non-nil pointer to a struct, got %T", target)
	}
	structVal = structVal.Elem()

	fields := fieldsOf(structVal.Type())
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f.name] = struct{}{}
	}
	var unknown []string
	for name := range args {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown argument %s", config.ErrInvalidSpec, strings.Join(quoteAll(unknown), ", "))
	}

	for _, f := range fields {
		val := cty.NullVal(cty.DynamicPseudoType)
		if expr, ok := args[f.name]; ok {
			v, diags := expr.Value(evalCtx)
			if diags.HasErrors() {
				return fmt.Errorf("%w: argument %q: %w", config.ErrInvalidSpec, f.name, diags)
			}
			val = v
		}
		if val.IsNull() {
			if !f.optional {
				return fmt.Errorf("%w: missing required argument %q", config.ErrInvalidSpec, f.name)
			}
			continue
		}
		if err := c.decode(ctx, val, structVal.Field(f.index).Addr().Interface()); err != nil {
			return fmt.Errorf("%w: failed to decode argument %q: %w", config.ErrInvalidSpec, f.name, err)
		}
	}
	logger.Debug("Finished argument decoding successfully.")
	return nil
}

func fieldsOf(t reflect.Type) []field {
	var out []field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		parts := strings.Split(sf.Tag.Get(TagName), ",")
		if parts[0] == "" || parts[0] == "-" {
			continue
		}
		f := field{name: parts[0], index: i}
		for _, opt := range parts[1:] {
			if opt == "optional" {
				f.optional = true
			}
		}
		out = append(out, f)
	}
	return out
}

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("%q", n)
	}
	return out
}

// decode handles the conversion and decoding of a cty.Value into a Go pointer.
func (c *Converter) decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)
	valPtr := reflect.ValueOf(goVal)

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		logger.Debug("Could not imply cty.Type from Go type, attempting direct decoding.", "go_type", valPtr.Elem().Type().String(), "error", err)
		return gocty.FromCtyValue(val, goVal)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	if !val.Type().Equals(convertedVal.Type()) {
		logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", convertedVal.Type().FriendlyName(),
		)
	}

	return gocty.FromCtyValue(convertedVal, goVal)
}
