package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
)

// Loader is the interface for a format-specific specification loader.
type Loader interface {
	// Load reads the specification spread over paths, translates it into the
	// format-agnostic model and returns a matching Converter.
	Load(ctx context.Context, paths ...string) (*Model, Converter, error)

	// LoadSource reads a specification held in memory. filename is only used
	// in diagnostics.
	LoadSource(ctx context.Context, filename string, src []byte) (*Model, Converter, error)
}

// Converter binds lazily-evaluated arguments to Go structs.
type Converter interface {
	// DecodeArguments evaluates args in evalCtx and stores the results in the
	// tagged fields of target, which must be a pointer to a struct.
	DecodeArguments(ctx context.Context, target any, args map[string]hcl.Expression, evalCtx *hcl.EvalContext) error
}
