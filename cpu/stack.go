package cpu

import (
	"errors"
	"slices"

	"github.com/ezrec/crazyvm/isa"
)

// push writes a value at SP and advances SP by one word.
// The top word of memory is never used, so that SP always stays addressable.
func (cpu *Cpu) push(value uint32) (err error) {
	sp := cpu.Register[isa.REG_SP]
	if uint64(sp)+1 >= uint64(cpu.Memory.Len()) {
		err = ErrStackOverflow
		return
	}

	err = cpu.Memory.Write(value, sp)
	if err != nil {
		err = errors.Join(ErrMemoryWrite, err)
		return
	}

	cpu.Register[isa.REG_SP] = sp + 1
	return
}

// pop retreats SP by one word and reads the value there.
// SP is unchanged if the read fails.
func (cpu *Cpu) pop() (value uint32, err error) {
	sp := cpu.Register[isa.REG_SP]
	if sp < 1 {
		err = ErrStackUnderflow
		return
	}

	value, err = cpu.Memory.Read(sp - 1)
	if err != nil {
		err = errors.Join(ErrMemoryRead, err)
		return
	}

	cpu.Register[isa.REG_SP] = sp - 1
	return
}

// Stack returns a copy of the stack contents, bottom first.
func (cpu *Cpu) Stack() []uint32 {
	sp := min(uint64(cpu.Register[isa.REG_SP]), uint64(cpu.Memory.Len()))
	return slices.Clone(cpu.Memory.Data[:sp])
}
