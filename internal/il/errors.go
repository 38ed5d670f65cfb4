package il

import "errors"

var (
	// ErrMalformedProgram is returned by Run for instruction lists that do
	// not balance their parentheses or blocks.
	ErrMalformedProgram = errors.New("malformed instruction list")
	ErrUnknownOp        = errors.New("unknown instruction")
)
