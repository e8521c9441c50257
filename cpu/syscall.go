package cpu

import (
	"errors"

	"github.com/ccoveille/go-safecast"
	"go.uber.org/zap"

	"github.com/ezrec/crazyvm/isa"
)

// syscall runs the host service selected by register A.
func (cpu *Cpu) syscall() (code uint32, exited bool, err error) {
	reg := &cpu.Register

	selector := Syscall(reg[isa.REG_A])
	if cpu.Verbose {
		zap.S().Debugf("cpu: syscall %v", selector)
	}

	switch selector {
	case SYSCALL_EXIT:
		code = reg[isa.REG_B]
		exited = true
	case SYSCALL_READ:
		err = cpu.sysRead(reg[isa.REG_C], reg[isa.REG_D])
	case SYSCALL_WRITE:
		err = cpu.sysWrite(reg[isa.REG_C], reg[isa.REG_D])
	default:
		err = fault(ErrSyscall(selector))
	}

	return
}

// sysRead stores one input line, a byte per word, at dest.
// Each byte goes through the push path with SP pointed at its slot;
// SP is restored afterwards.
func (cpu *Cpu) sysRead(dest uint32, count uint32) (err error) {
	if cpu.console == nil {
		err = errors.Join(ErrSyscallIo, ErrConsoleMissing)
		return
	}

	limit, err := safecast.ToInt(count)
	if err != nil {
		err = errors.Join(ErrSyscallIo, err)
		return
	}

	line, err := cpu.console.ReadLine(limit)
	if err != nil {
		err = errors.Join(ErrSyscallIo, err)
		return
	}

	sp := cpu.Register[isa.REG_SP]
	defer func() {
		cpu.Register[isa.REG_SP] = sp
	}()

	for n, ch := range line {
		cpu.Register[isa.REG_SP] = dest + uint32(n)
		err = cpu.push(uint32(ch))
		if err != nil {
			return
		}
	}

	return
}

// sysWrite writes count words at src as character codes.
func (cpu *Cpu) sysWrite(src uint32, count uint32) (err error) {
	if cpu.console == nil {
		err = errors.Join(ErrSyscallIo, ErrConsoleMissing)
		return
	}

	text, err := cpu.Memory.ReadMany(src, count)
	if err != nil {
		err = errors.Join(ErrMemoryRead, err)
		return
	}

	for _, ch := range text {
		err = cpu.console.WriteChar(ch)
		if err != nil {
			err = errors.Join(ErrSyscallIo, err)
			return
		}
	}

	return
}
