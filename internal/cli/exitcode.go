package cli

import (
	"errors"

	"github.com/specialistvlad/ladsynth/internal/address"
	"github.com/specialistvlad/ladsynth/internal/app"
	"github.com/specialistvlad/ladsynth/internal/config"
	"github.com/specialistvlad/ladsynth/internal/document"
	"github.com/specialistvlad/ladsynth/internal/hardware"
	"github.com/specialistvlad/ladsynth/internal/il"
	"github.com/specialistvlad/ladsynth/internal/ladder"
	"github.com/specialistvlad/ladsynth/internal/program"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitIO          = 1
	ExitUsage       = 2
	ExitInvalidSpec = 3
	ExitStructural  = 4
	ExitMismatch    = 5
	ExitHardware    = 6
	ExitSection     = 7
	ExitEncoding    = 8
)

// categories is checked in order; the first matching sentinel decides.
// Specification errors come first because pattern and loader errors wrap
// the sentinel of the layer that detected them as well.
var categories = []struct {
	code int
	errs []error
}{
	{ExitUsage, []error{app.ErrInvalidConfig}},
	{ExitInvalidSpec, []error{config.ErrInvalidSpec}},
	{ExitStructural, []error{
		address.ErrAddressConflict,
		address.ErrDuplicateSymbol,
		address.ErrDuplicateAddress,
		address.ErrUnknownSymbol,
		address.ErrUnknownAddress,
		address.ErrZoneMismatch,
		address.ErrZoneExhausted,
		address.ErrOutOfRange,
		address.ErrInvalidAddress,
		address.ErrRetentionMismatch,
		ladder.ErrDanglingConnection,
		ladder.ErrNoEnergizablePath,
		ladder.ErrCellOccupied,
		ladder.ErrOutOfGrid,
		ladder.ErrTerminalColumn,
		ladder.ErrDuplicateOutput,
		ladder.ErrUnsupportedTopology,
		ladder.ErrInvalidElement,
		program.ErrDuplicateRungName,
		program.ErrInvalidRungName,
		program.ErrTimerConflict,
		program.ErrUndeclaredTimer,
	}},
	{ExitMismatch, []error{
		program.ErrLinearizationMismatch,
		il.ErrMalformedProgram,
		il.ErrUnknownOp,
	}},
	{ExitHardware, []error{
		hardware.ErrIncompleteModule,
		hardware.ErrChannelRange,
		hardware.ErrUnknownModule,
		hardware.ErrUnsupportedSensor,
		hardware.ErrCapacityMismatch,
		hardware.ErrInvalidRange,
		program.ErrDuplicateExtension,
	}},
	{ExitSection, []error{
		document.ErrUnknownSection,
		document.ErrSectionNotFound,
		document.ErrDuplicateSection,
		document.ErrMalformedSkeleton,
	}},
	{ExitEncoding, []error{document.ErrEncodingViolation}},
}

// Classify wraps err in an ExitError carrying the code of its category.
// Anything unrecognized, I/O failures included, exits with ExitIO.
// A nil err yields nil.
func Classify(err error) *ExitError {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	for _, c := range categories {
		for _, target := range c.errs {
			if errors.Is(err, target) {
				return &ExitError{Code: c.code, Message: err.Error(), Err: err}
			}
		}
	}
	return &ExitError{Code: ExitIO, Message: err.Error(), Err: err}
}
