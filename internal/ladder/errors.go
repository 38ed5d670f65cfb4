package ladder

import "errors"

var (
	ErrDanglingConnection  = errors.New("dangling connection")
	ErrNoEnergizablePath   = errors.New("no energizable path")
	ErrCellOccupied        = errors.New("cell occupied")
	ErrOutOfGrid           = errors.New("cell outside grid")
	ErrTerminalColumn      = errors.New("output element outside terminal column")
	ErrDuplicateOutput     = errors.New("duplicate output")
	ErrUnsupportedTopology = errors.New("unsupported topology")
	ErrInvalidElement      = errors.New("invalid element")
)
