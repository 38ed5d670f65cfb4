package il

import (
	"fmt"

	"github.com/specialistvlad/ladsynth/internal/address"
	"github.com/specialistvlad/ladsynth/internal/ladder"
)

type frame struct {
	acc bool
	op  Op
}

// Machine replays an instruction list for one scan. Inputs are a snapshot:
// Store does not change what later loads of the same bit read.
type Machine struct {
	in    ladder.Signals
	out   ladder.Outputs
	acc   bool
	stack []frame
	block *address.Address
}

// Run executes prog against in and returns the written outputs.
func Run(prog []Instruction, in ladder.Signals) (ladder.Outputs, error) {
	m := &Machine{in: in, out: make(ladder.Outputs), acc: true}
	for pc, i := range prog {
		if err := m.step(i); err != nil {
			return nil, fmt.Errorf("instruction %d (%s): %w", pc, i, err)
		}
	}
	if len(m.stack) > 0 {
		return nil, fmt.Errorf("%w: %d unclosed parentheses", ErrMalformedProgram, len(m.stack))
	}
	if m.block != nil {
		return nil, fmt.Errorf("%w: block %s not closed", ErrMalformedProgram, m.block)
	}
	return m.out, nil
}

func (m *Machine) step(i Instruction) error {
	switch i.Op {
	case OpLoad, OpLoadBlock:
		v, err := m.operand(i)
		if err != nil {
			return err
		}
		m.acc = v
	case OpAnd, OpAndBlock:
		v, err := m.operand(i)
		if err != nil {
			return err
		}
		m.acc = m.acc && v
	case OpOr, OpOrBlock:
		v, err := m.operand(i)
		if err != nil {
			return err
		}
		m.acc = m.acc || v
	case OpAndOpen, OpOrOpen:
		v, err := m.operand(i)
		if err != nil {
			return err
		}
		m.stack = append(m.stack, frame{acc: m.acc, op: i.Op})
		m.acc = v
	case OpClose:
		if len(m.stack) == 0 {
			return fmt.Errorf("%w: unbalanced )", ErrMalformedProgram)
		}
		f := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		if f.op == OpAndOpen {
			m.acc = f.acc && m.acc
		} else {
			m.acc = f.acc || m.acc
		}
	case OpLoadTrue:
		m.acc = true
	case OpStore:
		m.out[ladder.CoilOutput(i.Address)] = m.acc
	case OpAssign:
		m.out[ladder.OperationOutput(i.Address, i.Expr)] = m.acc
	case OpBlockOpen:
		if m.block != nil {
			return fmt.Errorf("%w: block %s opened inside %s", ErrMalformedProgram, i.Address, m.block)
		}
		blk := i.Address
		m.block = &blk
		m.acc = true
	case OpIn:
		if m.block == nil {
			return fmt.Errorf("%w: IN outside a block", ErrMalformedProgram)
		}
		m.out[ladder.TimerInput(*m.block)] = m.acc
	case OpOutBlock:
		if m.block == nil {
			return fmt.Errorf("%w: OUT_BLK outside a block", ErrMalformedProgram)
		}
	case OpBlockClose:
		if m.block == nil {
			return fmt.Errorf("%w: END_BLK without BLK", ErrMalformedProgram)
		}
		m.block = nil
		m.acc = false
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOp, i.Op)
	}
	return nil
}

func (m *Machine) operand(i Instruction) (bool, error) {
	var v bool
	switch {
	case i.Pin != "":
		if m.block == nil {
			return false, fmt.Errorf("%w: pin %s read outside a block", ErrMalformedProgram, i.Pin)
		}
		v = m.in[ladder.PinSignal(*m.block, i.Pin)]
	case i.Expr != "":
		v = m.in[ladder.CompareSignal(i.Expr)]
	default:
		v = m.in[ladder.ContactSignal(i.Address)]
	}
	if i.Negate {
		v = !v
	}
	return v, nil
}
