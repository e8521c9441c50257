package cpu

import (
	"fmt"
	"iter"
	"maps"

	"go.uber.org/zap"

	"github.com/ezrec/crazyvm/io"
	"github.com/ezrec/crazyvm/isa"
)

// Console is the host side of the read and write syscalls.
type Console io.Console

var _cpu_defines = map[string]string{
	"SYS_EXIT":       fmt.Sprintf("%d", SYSCALL_EXIT),
	"SYS_READ":       fmt.Sprintf("%d", SYSCALL_READ),
	"SYS_WRITE":      fmt.Sprintf("%d", SYSCALL_WRITE),
	"FLAG_ZERO":      fmt.Sprintf("%d", FLAG_ZERO),
	"FLAG_LESS":      fmt.Sprintf("%d", FLAG_LESS),
	"FLAG_GREATER":   fmt.Sprintf("%d", FLAG_GREATER),
	"FLAG_EQUAL":     fmt.Sprintf("%d", FLAG_EQUAL),
	"FLAG_NOT_EQUAL": fmt.Sprintf("%d", FLAG_NOT_EQUAL),
}

// Cpu is the simulation context of the machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register Registers // Register file.
	Memory   *Memory   // Data and stack store.
	Rom      *Rom      // Instruction store.
	State    State     // Execution mode.

	Ticks int // Instructions fetched.

	console Console
}

// NewCpu creates a CPU running program, with memory words of data store.
func NewCpu(program []uint32, memory uint) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(memory),
		Rom:    NewRom(program),
	}

	return
}

// SystemDefines are the equates for syscall selectors and Flag bits.
func SystemDefines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return SystemDefines()
}

// SetConsole attaches the host streams used by the read and write syscalls.
func (cpu *Cpu) SetConsole(console Console) {
	cpu.console = console
}

// Reset the CPU state.
// - Clears the registers and data memory.
// - Returns to the running state.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		zap.S().Debugf("cpu: reset")
	}

	clear(cpu.Register[:])
	clear(cpu.Memory.Data)
	cpu.State = STATE_RUNNING
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = cpu.Register.String()
	text += fmt.Sprintf("% 5s: %v\n", "state", cpu.State)

	stack := cpu.Stack()
	if len(stack) > 0 {
		text += "stack:\n"
		for n, value := range stack {
			text += fmt.Sprintf("% 5d: %v\n", n, value)
		}
	}

	return
}

// Step fetches, decodes and executes a single instruction.
// On the exit syscall, exited is set and code holds the exit code.
func (cpu *Cpu) Step() (code uint32, exited bool, err error) {
	pc := cpu.Register[isa.REG_PC]

	word, err := cpu.Rom.Read(pc)
	if err != nil {
		err = ErrNoNextInstruction
		return
	}
	cpu.Register[isa.REG_PC] = pc + 1
	cpu.Ticks++

	op, err := isa.Decode(word)
	if err != nil {
		err = &ErrTrap{Pc: pc, Err: fault(err)}
		return
	}

	if cpu.State == STATE_SKIPPING {
		if cpu.Verbose {
			zap.S().Debugf("%5d: (%v)", pc, op)
		}
		if op.Tag == isa.OP_RET {
			cpu.State = STATE_RUNNING
		}
		return
	}

	if cpu.Verbose {
		zap.S().Debugf("%5d: %v", pc, op)
	}

	code, exited, err = cpu.Execute(op)
	if err != nil {
		err = &ErrTrap{Pc: pc, Opcode: op, Err: err}
		return
	}

	return
}

// Execute executes a single decoded instruction in the running state.
// Hand built opcodes naming a register outside the file are a fault.
func (cpu *Cpu) Execute(op isa.Opcode) (code uint32, exited bool, err error) {
	if !op.R1.Valid() || !op.R2.Valid() || !op.R3.Valid() {
		err = fault(isa.ErrRegisterInvalid)
		return
	}

	reg := &cpu.Register
	flag := reg[isa.REG_FLAG]

	switch op.Tag {
	case isa.OP_ADD:
		reg[op.R3] = reg[op.R1] + reg[op.R2]
	case isa.OP_SUB:
		reg[op.R3] = reg[op.R1] - reg[op.R2]
	case isa.OP_MUL:
		reg[op.R3] = reg[op.R1] * reg[op.R2]
	case isa.OP_DIV:
		if reg[op.R2] == 0 {
			err = fault(ErrDivideByZero)
			return
		}
		reg[op.R3] = reg[op.R1] / reg[op.R2]
	case isa.OP_IMM:
		reg[op.R1] = uint32(op.Literal)
	case isa.OP_PUSH:
		err = cpu.push(reg[op.R1])
	case isa.OP_POP:
		var value uint32
		value, err = cpu.pop()
		if err != nil {
			return
		}
		reg[op.R1] = value
	case isa.OP_STACK_ADD, isa.OP_STACK_SUB, isa.OP_STACK_MUL, isa.OP_STACK_DIV:
		err = cpu.stackArith(op.Tag)
	case isa.OP_CMP:
		reg[isa.REG_FLAG] = compare(reg[op.R1], reg[op.R2])
	case isa.OP_JMP:
		cpu.jumpIf(true, op.Literal)
	case isa.OP_JE:
		cpu.jumpIf(flag&FLAG_EQUAL != 0, op.Literal)
	case isa.OP_JNE:
		cpu.jumpIf(flag&FLAG_NOT_EQUAL != 0, op.Literal)
	case isa.OP_JG:
		cpu.jumpIf(flag&FLAG_GREATER != 0, op.Literal)
	case isa.OP_JGE:
		both := FLAG_GREATER | FLAG_EQUAL
		cpu.jumpIf(flag&both == both, op.Literal)
	case isa.OP_JL:
		cpu.jumpIf(flag&FLAG_LESS != 0, op.Literal)
	case isa.OP_JLE:
		both := FLAG_LESS | FLAG_EQUAL
		cpu.jumpIf(flag&both == both, op.Literal)
	case isa.OP_JZ:
		cpu.jumpIf(flag&FLAG_ZERO != 0, op.Literal)
	case isa.OP_JNZ:
		cpu.jumpIf(flag&FLAG_ZERO == 0, op.Literal)
	case isa.OP_RET:
		var pc uint32
		pc, err = cpu.pop()
		if err != nil {
			err = fault(err)
			return
		}
		reg[isa.REG_PC] = pc
	case isa.OP_CALL:
		err = cpu.push(reg[isa.REG_PC])
		if err != nil {
			return
		}
		// Address op.Literal holds the Fn marker.
		reg[isa.REG_PC] = uint32(op.Literal) + 1
	case isa.OP_FN:
		cpu.State = STATE_SKIPPING
	case isa.OP_SYSCALL:
		code, exited, err = cpu.syscall()
	default:
		err = fault(isa.ErrOpcode(op.Word()))
	}

	return
}

// jumpIf sets PC to target when cond holds.
func (cpu *Cpu) jumpIf(cond bool, target isa.Bit13Literal) {
	if cond {
		cpu.Register[isa.REG_PC] = uint32(target)
	}
}

// stackArith pops a then b, and pushes b op a.
// SP is left unchanged on failure.
func (cpu *Cpu) stackArith(tag isa.OpTag) (err error) {
	sp := cpu.Register[isa.REG_SP]
	defer func() {
		if err != nil {
			cpu.Register[isa.REG_SP] = sp
		}
	}()

	a, err := cpu.pop()
	if err != nil {
		return
	}
	b, err := cpu.pop()
	if err != nil {
		return
	}

	var value uint32
	switch tag {
	case isa.OP_STACK_ADD:
		value = b + a
	case isa.OP_STACK_SUB:
		value = b - a
	case isa.OP_STACK_MUL:
		value = b * a
	case isa.OP_STACK_DIV:
		if a == 0 {
			err = fault(ErrDivideByZero)
			return
		}
		value = b / a
	}

	err = cpu.push(value)
	return
}
