package hardware

import "errors"

var (
	ErrIncompleteModule  = errors.New("incomplete module")
	ErrChannelRange      = errors.New("channel index out of range")
	ErrUnknownModule     = errors.New("unknown module reference")
	ErrUnsupportedSensor = errors.New("unsupported sensor")
	ErrCapacityMismatch  = errors.New("channel capacity mismatch")
	ErrInvalidRange      = errors.New("invalid measurement range")
)
