package address

import "errors"

var (
	ErrAddressConflict   = errors.New("address conflict")
	ErrDuplicateSymbol   = errors.New("duplicate symbol")
	ErrDuplicateAddress  = errors.New("duplicate address")
	ErrUnknownSymbol     = errors.New("unknown symbol")
	ErrUnknownAddress    = errors.New("address not allocated")
	ErrZoneMismatch      = errors.New("zone mismatch")
	ErrZoneExhausted     = errors.New("zone exhausted")
	ErrOutOfRange        = errors.New("address out of range")
	ErrInvalidAddress    = errors.New("invalid address")
	ErrRetentionMismatch = errors.New("retention mismatch")
)
