package cpu

import (
	"errors"

	"github.com/ezrec/crazyvm/isa"
	"github.com/ezrec/crazyvm/translate"
)

var f = translate.From

var (
	// Recoverable runtime conditions
	ErrStackOverflow     = errors.New(f("stack overflow"))
	ErrStackUnderflow    = errors.New(f("stack underflow"))
	ErrMemoryWrite       = errors.New(f("memory write"))
	ErrMemoryRead        = errors.New(f("memory read"))
	ErrNoNextInstruction = errors.New(f("no next instruction"))
	ErrSyscallIo         = errors.New(f("syscall i/o"))
	ErrConsoleMissing    = errors.New(f("console missing"))

	// Unrecoverable faults
	ErrFault                = errors.New(f("fault"))
	ErrDivideByZero         = errors.New(f("divide by zero"))
	ErrSyscallUnimplemented = errors.New(f("syscall unimplemented"))
)

// ErrOutOfBounds reports a memory access past the end of a store.
type ErrOutOfBounds uint32

func (err ErrOutOfBounds) Error() string {
	return f("out of bounds memory access @ %d", uint32(err))
}

// ErrSyscall reports an unknown syscall selector.
type ErrSyscall uint32

func (err ErrSyscall) Error() string {
	return f("syscall %d", uint32(err))
}

func (err ErrSyscall) Is(target error) bool {
	return target == ErrSyscallUnimplemented
}

// ErrTrap locates a failed instruction.
type ErrTrap struct {
	Pc     uint32     // Address of the failed instruction.
	Opcode isa.Opcode // Decoded instruction, if decoding succeeded.
	Err    error
}

func (err *ErrTrap) Error() string {
	return f("pc %d '%v' %v", err.Pc, err.Opcode, err.Err)
}

func (err *ErrTrap) Unwrap() error {
	return err.Err
}

// IsFault is true if err is an unrecoverable fault rather than a runtime
// condition the driver may report and recover from.
func IsFault(err error) bool {
	return errors.Is(err, ErrFault)
}

// fault marks an error as unrecoverable.
func fault(err error) error {
	return errors.Join(ErrFault, err)
}
