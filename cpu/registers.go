package cpu

import (
	"fmt"

	"github.com/ezrec/crazyvm/isa"
)

// Condition bits written to the Flag register by Cmp.
const (
	FLAG_ZERO      = uint32(1 << 0) // lhs == 0
	FLAG_LESS      = uint32(1 << 1) // lhs < rhs
	FLAG_GREATER   = uint32(1 << 2) // lhs > rhs
	FLAG_EQUAL     = uint32(1 << 3) // lhs == rhs
	FLAG_NOT_EQUAL = uint32(1 << 4) // lhs != rhs
)

// Registers is the register file, indexed by isa.Register.
type Registers [isa.REG_COUNT]uint32

// String renders the register file, one register per line.
func (regs *Registers) String() (text string) {
	for _, reg := range isa.Registers {
		text += fmt.Sprintf("% 5s: %v\n", reg, regs[reg])
	}
	return
}

// compare computes the Flag register value for lhs against rhs.
func compare(lhs, rhs uint32) (flag uint32) {
	if lhs == 0 {
		flag |= FLAG_ZERO
	}
	if lhs < rhs {
		flag |= FLAG_LESS
	}
	if lhs > rhs {
		flag |= FLAG_GREATER
	}
	if lhs == rhs {
		flag |= FLAG_EQUAL
	} else {
		flag |= FLAG_NOT_EQUAL
	}
	return
}
