package ladder

import (
	"github.com/specialistvlad/ladsynth/internal/address"
)

// Signals maps input signal keys to their value for one evaluation.
type Signals map[string]bool

// Outputs maps output keys to the value a rung produced.
type Outputs map[string]bool

// ContactSignal is the input key of a bit read by a contact.
func ContactSignal(addr address.Address) string {
	return addr.String()
}

// CompareSignal is the input key of a comparison. Comparisons are opaque, so
// each distinct expression text is an independent input.
func CompareSignal(expr string) string {
	return "[" + expr + "]"
}

// PinSignal is the input key of a function block output pin, e.g. %TM0.Q.
func PinSignal(block address.Address, pin string) string {
	return block.String() + "." + pin
}

// CoilOutput is the output key of a coil.
func CoilOutput(addr address.Address) string {
	return addr.String()
}

// OperationOutput is the output key recording whether an operation executed.
func OperationOutput(target address.Address, expr string) string {
	return target.String() + " := " + expr
}

// TimerInput is the output key of a timer's IN pin.
func TimerInput(addr address.Address) string {
	return addr.String() + ".IN"
}
