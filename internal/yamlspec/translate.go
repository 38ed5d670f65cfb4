package yamlspec

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/ladsynth/internal/config"
)

// placementKeys are the element keys that are not operand arguments.
var placementKeys = map[string]struct{}{"kind": {}, "row": {}, "column": {}, "connections": {}}

func translateRung(filename string, r *rung) (*config.Rung, error) {
	if r.Name == "" {
		return nil, fmt.Errorf("%w: rung without a name", config.ErrInvalidSpec)
	}
	out := &config.Rung{Name: r.Name, Comment: r.Comment, Label: r.Label, Pattern: r.Pattern}

	args, err := expressions(filename, r.Arguments)
	if err != nil {
		return nil, fmt.Errorf("rung %q arguments: %w", r.Name, err)
	}
	out.Arguments = args

	for i, raw := range r.Elements {
		e, err := translateElement(filename, raw)
		if err != nil {
			return nil, fmt.Errorf("rung %q element %d: %w", r.Name, i, err)
		}
		out.Elements = append(out.Elements, e)
	}
	if out.Pattern == "" && len(out.Elements) > 0 {
		out.Pattern = "ladder"
	}
	return out, nil
}

func translateElement(filename string, raw map[string]yaml.Node) (*config.Element, error) {
	e := &config.Element{}
	placement := []struct {
		key    string
		target any
	}{
		{"kind", &e.Kind},
		{"row", &e.Row},
		{"column", &e.Column},
		{"connections", &e.Connections},
	}
	for _, p := range placement {
		n, ok := raw[p.key]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", config.ErrInvalidSpec, p.key)
		}
		if err := n.Decode(p.target); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", config.ErrInvalidSpec, p.key, err)
		}
	}

	operands := make(map[string]yaml.Node, len(raw))
	for k, n := range raw {
		if _, ok := placementKeys[k]; !ok {
			operands[k] = n
		}
	}
	args, err := expressions(filename, operands)
	if err != nil {
		return nil, err
	}
	e.Arguments = args
	return e, nil
}

func expressions(filename string, nodes map[string]yaml.Node) (map[string]hcl.Expression, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make(map[string]hcl.Expression, len(nodes))
	for name, n := range nodes {
		n := n
		expr, err := toExpression(filename, &n)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %q: %w", config.ErrInvalidSpec, name, err)
		}
		out[name] = expr
	}
	return out, nil
}

func nodeRange(filename string, n *yaml.Node) hcl.Range {
	pos := hcl.Pos{Line: n.Line, Column: n.Column}
	return hcl.Range{Filename: filename, Start: pos, End: pos}
}

// toExpression converts a YAML value into the HCL expression it would have
// been written as.
func toExpression(filename string, n *yaml.Node) (hclsyntax.Expression, error) {
	rng := nodeRange(filename, n)
	switch n.Kind {
	case yaml.AliasNode:
		return toExpression(filename, n.Alias)
	case yaml.SequenceNode:
		tuple := &hclsyntax.TupleConsExpr{SrcRange: rng, OpenRange: rng}
		for _, item := range n.Content {
			expr, err := toExpression(filename, item)
			if err != nil {
				return nil, err
			}
			tuple.Exprs = append(tuple.Exprs, expr)
		}
		return tuple, nil
	case yaml.MappingNode:
		obj := &hclsyntax.ObjectConsExpr{SrcRange: rng, OpenRange: rng}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			valueExpr, err := toExpression(filename, value)
			if err != nil {
				return nil, err
			}
			obj.Items = append(obj.Items, hclsyntax.ObjectConsItem{
				KeyExpr: &hclsyntax.ObjectConsKeyExpr{
					Wrapped: &hclsyntax.LiteralValueExpr{Val: cty.StringVal(key.Value), SrcRange: nodeRange(filename, key)},
				},
				ValueExpr: valueExpr,
			})
		}
		return obj, nil
	case yaml.ScalarNode:
		return scalar(filename, n, rng)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func scalar(filename string, n *yaml.Node, rng hcl.Range) (hclsyntax.Expression, error) {
	literal := func(v cty.Value) hclsyntax.Expression {
		return &hclsyntax.LiteralValueExpr{Val: v, SrcRange: rng}
	}
	switch n.ShortTag() {
	case "!!null":
		return literal(cty.NullVal(cty.DynamicPseudoType)), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return literal(cty.BoolVal(b)), nil
	case "!!int", "!!float":
		f, _, err := big.ParseFloat(n.Value, 10, 512, big.ToNearestEven)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return literal(cty.NumberVal(f)), nil
	}

	expr, diags := hclsyntax.ParseTemplate([]byte(n.Value), filename, rng.Start)
	if diags.HasErrors() {
		return nil, diags
	}
	return expr, nil
}
