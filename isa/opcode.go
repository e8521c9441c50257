package isa

import (
	"strings"
)

// OpTag is the 8-bit opcode tag in the low byte of an instruction word.
type OpTag uint8

//go:generate go tool stringer -linecomment -type=OpTag
const (
	OP_ADD       = OpTag(0x01) // Add
	OP_SUB       = OpTag(0x02) // Sub
	OP_MUL       = OpTag(0x03) // Mul
	OP_DIV       = OpTag(0x04) // Div
	OP_IMM       = OpTag(0x05) // Imm
	OP_PUSH      = OpTag(0x06) // Push
	OP_POP       = OpTag(0x07) // Pop
	OP_CMP       = OpTag(0x08) // Cmp
	OP_JMP       = OpTag(0x09) // Jmp
	OP_JE        = OpTag(0x0a) // Je
	OP_JNE       = OpTag(0x0b) // Jne
	OP_JG        = OpTag(0x0c) // Jg
	OP_JGE       = OpTag(0x0d) // Jge
	OP_JZ        = OpTag(0x0e) // Jz
	OP_JNZ       = OpTag(0x0f) // Jnz
	OP_JL        = OpTag(0x10) // Jl
	OP_JLE       = OpTag(0x11) // Jle
	OP_SYSCALL   = OpTag(0x12) // Syscall
	OP_RET       = OpTag(0x13) // Ret
	OP_CALL      = OpTag(0x14) // Call
	OP_FN        = OpTag(0x15) // Fn
	OP_STACK_ADD = OpTag(0x16) // StackAdd
	OP_STACK_SUB = OpTag(0x17) // StackSub
	OP_STACK_MUL = OpTag(0x18) // StackMul
	OP_STACK_DIV = OpTag(0x19) // StackDiv
)

// Shape is the operand layout of an opcode.
type Shape int

const (
	SHAPE_NONE = Shape(0) // No operands.
	SHAPE_R    = Shape(1) // One register.
	SHAPE_RR   = Shape(2) // Two registers.
	SHAPE_RRR  = Shape(3) // Three registers.
	SHAPE_RL   = Shape(4) // One register and a literal.
	SHAPE_L    = Shape(5) // One literal.
)

// shapeMap is the operand shape of every known tag.
var shapeMap = map[OpTag]Shape{
	OP_ADD:       SHAPE_RRR,
	OP_SUB:       SHAPE_RRR,
	OP_MUL:       SHAPE_RRR,
	OP_DIV:       SHAPE_RRR,
	OP_IMM:       SHAPE_RL,
	OP_PUSH:      SHAPE_R,
	OP_POP:       SHAPE_R,
	OP_CMP:       SHAPE_RR,
	OP_JMP:       SHAPE_L,
	OP_JE:        SHAPE_L,
	OP_JNE:       SHAPE_L,
	OP_JG:        SHAPE_L,
	OP_JGE:       SHAPE_L,
	OP_JZ:        SHAPE_L,
	OP_JNZ:       SHAPE_L,
	OP_JL:        SHAPE_L,
	OP_JLE:       SHAPE_L,
	OP_SYSCALL:   SHAPE_NONE,
	OP_RET:       SHAPE_NONE,
	OP_CALL:      SHAPE_L,
	OP_FN:        SHAPE_NONE,
	OP_STACK_ADD: SHAPE_NONE,
	OP_STACK_SUB: SHAPE_NONE,
	OP_STACK_MUL: SHAPE_NONE,
	OP_STACK_DIV: SHAPE_NONE,
}

// mnemonicMap maps assembler mnemonics to tags.
var mnemonicMap = func() map[string]OpTag {
	mnemonics := make(map[string]OpTag, len(shapeMap))
	for tag := range shapeMap {
		mnemonics[tag.String()] = tag
	}
	return mnemonics
}()

// Known is true if the tag is part of the instruction set.
func (tag OpTag) Known() bool {
	_, ok := shapeMap[tag]
	return ok
}

// Shape returns the operand layout of the tag.
func (tag OpTag) Shape() Shape {
	return shapeMap[tag]
}

// Operands returns the number of operands for the shape.
func (shape Shape) Operands() int {
	switch shape {
	case SHAPE_R, SHAPE_L:
		return 1
	case SHAPE_RR, SHAPE_RL:
		return 2
	case SHAPE_RRR:
		return 3
	}
	return 0
}

// ParseOpTag returns the tag for an assembler mnemonic.
func ParseOpTag(mnemonic string) (tag OpTag, err error) {
	tag, ok := mnemonicMap[mnemonic]
	if !ok {
		err = ErrOpcodeInvalid
	}
	return
}

// Opcode is a decoded instruction.
// Operand fields not used by the shape of Tag are zero.
type Opcode struct {
	Tag     OpTag
	R1      Register
	R2      Register
	R3      Register
	Literal Bit13Literal
}

// MakeNone creates an instruction without operands.
func MakeNone(tag OpTag) Opcode {
	return Opcode{Tag: tag}
}

// MakeR creates a single register instruction.
func MakeR(tag OpTag, r1 Register) Opcode {
	return Opcode{Tag: tag, R1: r1}
}

// MakeRR creates a two register instruction.
func MakeRR(tag OpTag, r1, r2 Register) Opcode {
	return Opcode{Tag: tag, R1: r1, R2: r2}
}

// MakeRRR creates a three register instruction.
func MakeRRR(tag OpTag, r1, r2, r3 Register) Opcode {
	return Opcode{Tag: tag, R1: r1, R2: r2, R3: r3}
}

// MakeRL creates a register and literal instruction.
func MakeRL(tag OpTag, r1 Register, lit Bit13Literal) Opcode {
	return Opcode{Tag: tag, R1: r1, Literal: lit}
}

// MakeL creates a literal instruction.
func MakeL(tag OpTag, lit Bit13Literal) Opcode {
	return Opcode{Tag: tag, Literal: lit}
}

func fieldR1(r Register) uint32 {
	return (uint32(r) & 0x7) << 8
}

func fieldR2(r Register) uint32 {
	return (uint32(r) & 0x7) << 11
}

func fieldR3(r Register) uint32 {
	return (uint32(r) & 0x7) << 14
}

func fieldLit(lit Bit13Literal) uint32 {
	return (uint32(lit) & LITERAL_MAX) << 11
}

// Encode returns the instruction word for an opcode.
func Encode(op Opcode) (word uint32) {
	word = uint32(op.Tag)

	switch op.Tag.Shape() {
	case SHAPE_R:
		word |= fieldR1(op.R1)
	case SHAPE_RR:
		word |= fieldR1(op.R1) | fieldR2(op.R2)
	case SHAPE_RRR:
		word |= fieldR1(op.R1) | fieldR2(op.R2) | fieldR3(op.R3)
	case SHAPE_RL:
		word |= fieldR1(op.R1) | fieldLit(op.Literal)
	case SHAPE_L:
		word |= fieldLit(op.Literal)
	}

	return
}

// Decode returns the opcode of an instruction word.
// Words with an unknown tag return ErrOpcode.
func Decode(word uint32) (op Opcode, err error) {
	tag := OpTag(word & 0xff)
	if !tag.Known() {
		err = ErrOpcode(word)
		return
	}

	r1 := registerOf(word >> 8)
	r2 := registerOf(word >> 11)
	r3 := registerOf(word >> 14)
	lit := MakeBit13Literal(word >> 11)

	switch tag.Shape() {
	case SHAPE_NONE:
		op = MakeNone(tag)
	case SHAPE_R:
		op = MakeR(tag, r1)
	case SHAPE_RR:
		op = MakeRR(tag, r1, r2)
	case SHAPE_RRR:
		op = MakeRRR(tag, r1, r2, r3)
	case SHAPE_RL:
		op = MakeRL(tag, r1, lit)
	case SHAPE_L:
		op = MakeL(tag, lit)
	}

	return
}

// Word returns the instruction word for the opcode.
func (op Opcode) Word() uint32 {
	return Encode(op)
}

// Operands returns the text of each operand, in assembler order.
func (op Opcode) Operands() (operands []string) {
	switch op.Tag.Shape() {
	case SHAPE_R:
		operands = []string{op.R1.String()}
	case SHAPE_RR:
		operands = []string{op.R1.String(), op.R2.String()}
	case SHAPE_RRR:
		operands = []string{op.R1.String(), op.R2.String(), op.R3.String()}
	case SHAPE_RL:
		operands = []string{op.R1.String(), op.Literal.String()}
	case SHAPE_L:
		operands = []string{op.Literal.String()}
	}
	return
}

// String returns the assembly language representation of the opcode.
func (op Opcode) String() string {
	return strings.Join(append([]string{op.Tag.String()}, op.Operands()...), " ")
}
