// Package emulator runs assembled programs on a cpu, with a tape console
// and a source-level view of the running program.
package emulator

import (
	"errors"
	"fmt"
	"iter"
	"maps"

	"go.uber.org/zap"

	"github.com/ezrec/crazyvm/asm"
	"github.com/ezrec/crazyvm/cpu"
	"github.com/ezrec/crazyvm/internal"
	"github.com/ezrec/crazyvm/io"
	"github.com/ezrec/crazyvm/isa"
)

type Emulator struct {
	Verbose bool
	*cpu.Cpu
	Program    *asm.Program
	Tape       io.Tape
	MaxTicks   int  // Maximum instructions per run, 0 for no limit.
	MemorySize uint // Data memory, in words.

	Exited   bool
	ExitCode uint32
}

// NewEmulator returns an emulator with an empty program and memory words of
// data memory.
func NewEmulator(memory uint) (emu *Emulator) {
	emu = &Emulator{
		Program:    &asm.Program{},
		MemorySize: memory,
	}

	emu.Reset()

	return
}

// Defines returns the equates a machine with memory words of data memory
// offers to programs.
func Defines(memory uint) iter.Seq2[string, string] {
	defines := map[string]string{
		"MEMORY_SIZE": fmt.Sprintf("%d", memory),
	}

	return internal.IterSeq2Concat(maps.All(defines), cpu.SystemDefines())
}

// Defines returns the equates the machine offers to programs.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return Defines(emu.MemorySize)
}

// Reset loads the program into a fresh cpu, and rewinds the tape.
func (emu *Emulator) Reset() {
	emu.Cpu = cpu.NewCpu(emu.Program.Binary(), emu.MemorySize)
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.SetConsole(&emu.Tape)
	emu.Tape.Rewind()

	emu.Exited = false
	emu.ExitCode = 0
}

// Pc is the address of the next instruction.
func (emu *Emulator) Pc() uint32 {
	return emu.Cpu.Register[isa.REG_PC]
}

// LineNo is the source line of the next instruction, or 0 if unknown.
func (emu *Emulator) LineNo() int {
	stmt := emu.Program.Debug(emu.Pc())
	if stmt == nil {
		return 0
	}
	return stmt.LineNo
}

// Tick executes one instruction. done is set once the program has exited,
// or has run past its last instruction.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Exited {
		done = true
		return
	}

	lineno := emu.LineNo()
	pc := emu.Pc()

	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	if emu.MaxTicks > 0 && emu.Cpu.Ticks >= emu.MaxTicks {
		err = ErrTickLimit
		return
	}

	if emu.Verbose {
		if stmt := emu.Program.Debug(pc); stmt != nil {
			zap.S().Debugf("emulator: %d: %v", lineno, stmt.Text())
		}
	}

	code, exited, err := emu.Cpu.Step()
	if errors.Is(err, cpu.ErrNoNextInstruction) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	if exited {
		emu.Exited = true
		emu.ExitCode = code
		done = true
	}

	return
}

// Run ticks until the program is done, returning its exit code.
// A program that runs off its end exits with code 0.
func (emu *Emulator) Run() (code uint32, err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil {
			return
		}
		if done {
			code = emu.ExitCode
			return
		}
	}
}

// IsFault is true if err is an unrecoverable fault.
func IsFault(err error) bool {
	return cpu.IsFault(err)
}
