package program

import "errors"

var (
	ErrLinearizationMismatch = errors.New("linearization mismatch")
	ErrDuplicateRungName     = errors.New("duplicate rung name")
	ErrInvalidRungName       = errors.New("invalid rung name")
	ErrTimerConflict         = errors.New("timer conflict")
	ErrUndeclaredTimer       = errors.New("undeclared timer")
	ErrDuplicateExtension    = errors.New("duplicate extension")
)
