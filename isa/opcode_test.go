package isa

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testLiterals = []Bit13Literal{0, 1, 2, 0x55, 0x100, 0xaaa, 0x1555, LITERAL_MAX - 1, LITERAL_MAX}

// allOpcodes generates every tag with every register combination and a
// spread of literal values.
func allOpcodes() (ops []Opcode) {
	for tag := range shapeMap {
		switch tag.Shape() {
		case SHAPE_NONE:
			ops = append(ops, MakeNone(tag))
		case SHAPE_R:
			for _, r1 := range Registers {
				ops = append(ops, MakeR(tag, r1))
			}
		case SHAPE_RR:
			for _, r1 := range Registers {
				for _, r2 := range Registers {
					ops = append(ops, MakeRR(tag, r1, r2))
				}
			}
		case SHAPE_RRR:
			for _, r1 := range Registers {
				for _, r2 := range Registers {
					for _, r3 := range Registers {
						ops = append(ops, MakeRRR(tag, r1, r2, r3))
					}
				}
			}
		case SHAPE_RL:
			for _, r1 := range Registers {
				for _, lit := range testLiterals {
					ops = append(ops, MakeRL(tag, r1, lit))
				}
			}
		case SHAPE_L:
			for _, lit := range testLiterals {
				ops = append(ops, MakeL(tag, lit))
			}
		}
	}
	return
}

func TestOpcode_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	ops := allOpcodes()
	assert.Greater(len(ops), 4*8*8*8)

	for _, op := range ops {
		word := Encode(op)
		decoded, err := Decode(word)
		assert.NoError(err, op.String())
		assert.Equal(op, decoded, op.String())
		assert.Equal(word, decoded.Word(), op.String())
	}
}

func TestOpcode_Encode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op   Opcode
		word uint32
	}){
		{MakeRRR(OP_ADD, REG_A, REG_B, REG_C), 0x01 | 4<<8 | 5<<11 | 6<<14},
		{MakeRRR(OP_DIV, REG_SP, REG_PC, REG_D), 0x04 | 0<<8 | 1<<11 | 7<<14},
		{MakeRL(OP_IMM, REG_B, 42), 0x05 | 5<<8 | 42<<11},
		{MakeR(OP_PUSH, REG_D), 0x06 | 7<<8},
		{MakeR(OP_POP, REG_FLAG), 0x07 | 2<<8},
		{MakeRR(OP_CMP, REG_A, REG_ZERO), 0x08 | 4<<8 | 3<<11},
		{MakeL(OP_JMP, LITERAL_MAX), 0x09 | 0x1fff<<11},
		{MakeL(OP_JLE, 3), 0x11 | 3<<11},
		{MakeNone(OP_SYSCALL), 0x12},
		{MakeNone(OP_RET), 0x13},
		{MakeL(OP_CALL, 7), 0x14 | 7<<11},
		{MakeNone(OP_FN), 0x15},
		{MakeNone(OP_STACK_DIV), 0x19},
	}

	for _, entry := range table {
		assert.Equal(entry.word, Encode(entry.op), entry.op.String())
	}
}

func TestOpcode_EncodeIgnoresUnusedFields(t *testing.T) {
	assert := assert.New(t)

	op := Opcode{Tag: OP_PUSH, R1: REG_A, R2: REG_D, R3: REG_D, Literal: 99}
	decoded, err := Decode(Encode(op))
	assert.NoError(err)
	assert.Equal(MakeR(OP_PUSH, REG_A), decoded)
}

func TestOpcode_DecodeUnknown(t *testing.T) {
	assert := assert.New(t)

	for _, word := range []uint32{0x00, 0x1a, 0xff, 0x1234_5600} {
		_, err := Decode(word)
		assert.Error(err)
		assert.True(errors.Is(err, ErrOpcodeDecode), "%#x", word)
		assert.Equal(ErrOpcode(word), err)
	}
}

func TestOpcode_String(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op   Opcode
		text string
	}){
		{MakeRRR(OP_ADD, REG_A, REG_B, REG_C), "Add A B C"},
		{MakeRRR(OP_MUL, REG_SP, REG_FLAG, REG_ZERO), "Mul SP Flag Zero"},
		{MakeRL(OP_IMM, REG_A, 8191), "Imm A 8191"},
		{MakeR(OP_POP, REG_PC), "Pop PC"},
		{MakeRR(OP_CMP, REG_B, REG_A), "Cmp B A"},
		{MakeL(OP_JGE, 12), "Jge 12"},
		{MakeNone(OP_RET), "Ret"},
		{MakeNone(OP_FN), "Fn"},
		{MakeNone(OP_STACK_SUB), "StackSub"},
		{MakeNone(OpTag(0x77)), "OpTag(119)"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.op.String())
	}
}

func TestOpTag_Parse(t *testing.T) {
	assert := assert.New(t)

	for tag := range shapeMap {
		parsed, err := ParseOpTag(tag.String())
		assert.NoError(err)
		assert.Equal(tag, parsed)
	}

	_, err := ParseOpTag("add")
	assert.ErrorIs(err, ErrOpcodeInvalid)
	_, err = ParseOpTag("")
	assert.ErrorIs(err, ErrOpcodeInvalid)
}

func TestShape_Operands(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(3, OP_SUB.Shape().Operands())
	assert.Equal(2, OP_IMM.Shape().Operands())
	assert.Equal(2, OP_CMP.Shape().Operands())
	assert.Equal(1, OP_JNZ.Shape().Operands())
	assert.Equal(1, OP_POP.Shape().Operands())
	assert.Equal(0, OP_FN.Shape().Operands())
}

func FuzzDecode(f *testing.F) {
	for _, op := range []Opcode{
		MakeRRR(OP_ADD, REG_A, REG_B, REG_C),
		MakeRL(OP_IMM, REG_D, LITERAL_MAX),
		MakeL(OP_CALL, 1),
		MakeNone(OP_SYSCALL),
	} {
		f.Add(Encode(op))
	}
	f.Add(uint32(0))
	f.Add(uint32(0xffffffff))

	f.Fuzz(func(t *testing.T, word uint32) {
		assert := assert.New(t)

		op, err := Decode(word)
		if !OpTag(word & 0xff).Known() {
			assert.ErrorIs(err, ErrOpcodeDecode)
			return
		}
		assert.NoError(err)
		assert.Equal(uint32(op.Tag), word&0xff)

		again, err := Decode(Encode(op))
		assert.NoError(err)
		assert.Equal(op, again, "0x%08x", word)
	})
}
