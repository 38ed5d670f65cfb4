package pattern

import (
	"fmt"

	"github.com/specialistvlad/ladsynth/internal/config"
)

var (
	ErrUnknownPattern  = fmt.Errorf("%w: unknown pattern", config.ErrInvalidSpec)
	ErrInvalidTerm     = fmt.Errorf("%w: invalid term", config.ErrInvalidSpec)
	ErrInvalidArgument = fmt.Errorf("%w: invalid argument", config.ErrInvalidSpec)
)
