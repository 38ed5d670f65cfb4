package config

import "errors"

// ErrInvalidSpec marks every problem with the content of a specification:
// syntax, unknown blocks or attributes, bad values and unknown patterns.
var ErrInvalidSpec = errors.New("invalid specification")
