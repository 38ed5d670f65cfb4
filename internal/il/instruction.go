package il

import (
	"fmt"

	"github.com/specialistvlad/ladsynth/internal/address"
)

// Op is an instruction opcode.
type Op int

const (
	OpLoad Op = iota
	OpAnd
	OpOr
	OpLoadBlock
	OpAndBlock
	OpOrBlock
	OpAndOpen
	OpOrOpen
	OpClose
	OpStore
	OpBlockOpen
	OpIn
	OpOutBlock
	OpBlockClose
	OpAssign
	OpLoadTrue
)

var opNames = map[Op]string{
	OpLoad:       "Load",
	OpAnd:        "And",
	OpOr:         "Or",
	OpLoadBlock:  "LoadBlock",
	OpAndBlock:   "AndBlock",
	OpOrBlock:    "OrBlock",
	OpAndOpen:    "AndOpen",
	OpOrOpen:     "OrOpen",
	OpClose:      "Close",
	OpStore:      "Store",
	OpBlockOpen:  "BlockOpen",
	OpIn:         "In",
	OpOutBlock:   "OutBlock",
	OpBlockClose: "BlockClose",
	OpAssign:     "Assign",
	OpLoadTrue:   "LoadTrue",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Instruction is one line of an instruction list. The operand of loads,
// logic and open instructions is exactly one of Address, Expr or Pin.
type Instruction struct {
	Op      Op
	Address address.Address
	Negate  bool
	// Expr is a comparison for block operands, or the right-hand side of an Assign.
	Expr string
	// Pin names a function block output read inside BlockOpen/BlockClose.
	Pin string
}

func Load(addr address.Address, negate bool) Instruction {
	return Instruction{Op: OpLoad, Address: addr, Negate: negate}
}

func And(addr address.Address, negate bool) Instruction {
	return Instruction{Op: OpAnd, Address: addr, Negate: negate}
}

func Or(addr address.Address, negate bool) Instruction {
	return Instruction{Op: OpOr, Address: addr, Negate: negate}
}

func LoadBlock(expr string) Instruction { return Instruction{Op: OpLoadBlock, Expr: expr} }
func AndBlock(expr string) Instruction  { return Instruction{Op: OpAndBlock, Expr: expr} }
func OrBlock(expr string) Instruction   { return Instruction{Op: OpOrBlock, Expr: expr} }

func LoadPin(pin string) Instruction {
	return Instruction{Op: OpLoad, Pin: pin}
}

func Store(addr address.Address) Instruction {
	return Instruction{Op: OpStore, Address: addr}
}

func BlockOpen(block address.Address) Instruction {
	return Instruction{Op: OpBlockOpen, Address: block}
}

func In() Instruction         { return Instruction{Op: OpIn} }
func OutBlock() Instruction   { return Instruction{Op: OpOutBlock} }
func BlockClose() Instruction { return Instruction{Op: OpBlockClose} }
func Close() Instruction      { return Instruction{Op: OpClose} }
func LoadTrue() Instruction   { return Instruction{Op: OpLoadTrue} }

// Assign writes expr into target while the accumulator is true.
func Assign(target address.Address, expr string) Instruction {
	return Instruction{Op: OpAssign, Address: target, Expr: expr}
}

// String renders the instruction in the controller's text syntax.
func (i Instruction) String() string {
	switch i.Op {
	case OpLoad, OpAnd, OpOr:
		return mnemonic(i.Op, i.Negate) + " " + i.operand()
	case OpLoadBlock:
		return "LD [ " + i.Expr + " ]"
	case OpAndBlock:
		return "AND [ " + i.Expr + " ]"
	case OpOrBlock:
		return "OR [ " + i.Expr + " ]"
	case OpAndOpen, OpOrOpen:
		m := "AND("
		if i.Op == OpOrOpen {
			m = "OR("
		}
		if i.Negate {
			m += "N"
		}
		return m + " " + i.operand()
	case OpClose:
		return ")"
	case OpStore:
		return "ST " + i.Address.String()
	case OpBlockOpen:
		return "BLK " + i.Address.String()
	case OpIn:
		return "IN"
	case OpOutBlock:
		return "OUT_BLK"
	case OpBlockClose:
		return "END_BLK"
	case OpAssign:
		return "[ " + i.Address.String() + " := " + i.Expr + " ]"
	case OpLoadTrue:
		return "LD TRUE"
	}
	return i.Op.String()
}

func mnemonic(op Op, negate bool) string {
	var m string
	switch op {
	case OpLoad:
		m = "LD"
	case OpAnd:
		m = "AND"
	case OpOr:
		m = "OR"
	}
	if negate {
		m += "N"
	}
	return m
}

func (i Instruction) operand() string {
	switch {
	case i.Pin != "":
		return i.Pin
	case i.Expr != "":
		return "[ " + i.Expr + " ]"
	}
	return i.Address.String()
}

// Lines renders every instruction of prog.
func Lines(prog []Instruction) []string {
	out := make([]string, len(prog))
	for n, i := range prog {
		out[n] = i.String()
	}
	return out
}
