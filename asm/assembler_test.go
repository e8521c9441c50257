package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/crazyvm/isa"
)

const (
	A = isa.REG_A
	B = isa.REG_B
	C = isa.REG_C
	D = isa.REG_D
)

func lit(value uint32) isa.Bit13Literal {
	return isa.MakeBit13Literal(value)
}

func parse(t *testing.T, lines ...string) (prog *Program) {
	asm := &Assembler{NoExit: true}

	prog, err := asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	return
}

func codes(prog *Program) (ops []isa.Opcode) {
	for _, op := range prog.Codes() {
		ops = append(ops, op)
	}
	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{NoExit: true}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Statements))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("8191", asm.Equate["LITERAL_MAX"])
}

func TestAssembler_Exit(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader("Imm D 9\n"))
	assert.NoError(err)

	assert.Equal([]isa.Opcode{
		isa.MakeRL(isa.OP_IMM, D, lit(9)),
		isa.MakeRL(isa.OP_IMM, A, lit(0)),
		isa.MakeRL(isa.OP_IMM, B, lit(0)),
		isa.MakeNone(isa.OP_SYSCALL),
	}, codes(prog))
	assert.Equal(uint32(3), prog.Statements[3].Pc)
	assert.Equal(2, prog.Statements[3].LineNo)
}

func TestAssembler_Shapes(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		"Add A B C",
		"Div D Zero SP",
		"Imm A #1f",
		"Imm Flag $101",
		"Push D",
		"Pop PC",
		"Cmp A B",
		"Jmp 5",
		"Ret",
		"StackMul",
		"\tSub\tA  B\tC ; trailing comment",
		"; comment line",
		"",
	)

	expected := []isa.Opcode{
		isa.MakeRRR(isa.OP_ADD, A, B, C),
		isa.MakeRRR(isa.OP_DIV, D, isa.REG_ZERO, isa.REG_SP),
		isa.MakeRL(isa.OP_IMM, A, lit(0x1f)),
		isa.MakeRL(isa.OP_IMM, isa.REG_FLAG, lit(5)),
		isa.MakeR(isa.OP_PUSH, D),
		isa.MakeR(isa.OP_POP, isa.REG_PC),
		isa.MakeRR(isa.OP_CMP, A, B),
		isa.MakeL(isa.OP_JMP, lit(5)),
		isa.MakeNone(isa.OP_RET),
		isa.MakeNone(isa.OP_STACK_MUL),
		isa.MakeRRR(isa.OP_SUB, A, B, C),
	}
	assert.Equal(expected, codes(prog))

	var words []uint32
	for _, op := range expected {
		words = append(words, isa.Encode(op))
	}
	assert.Equal(words, prog.Binary())

	assert.Equal(11, prog.Statements[10].LineNo)
	assert.Equal([]string{"Sub", "A", "B", "C"}, prog.Statements[10].Words)
}

func TestAssembler_Labels(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		"start: Imm A 1",
		"       Jmp end",
		"loop:  Add A A A",
		"end:   Jnz loop",
		"       Call start",
		"a: b:",
		"c: Fn",
	)

	assert.Equal(map[string]uint32{
		"start": 0,
		"loop":  2,
		"end":   3,
		"a":     5,
		"b":     5,
		"c":     5,
	}, prog.Labels)

	ops := codes(prog)
	assert.Equal(isa.MakeL(isa.OP_JMP, lit(3)), ops[1])
	assert.Equal(isa.MakeL(isa.OP_JNZ, lit(2)), ops[3])
	assert.Equal(isa.MakeL(isa.OP_CALL, lit(0)), ops[4])
	assert.Equal("end", prog.Statements[1].LinkLabel)
}

func TestAssembler_Equate(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		".equ COUNT 10",
		".equ PTR C",
		"Imm PTR COUNT",
		"Push PTR",
		".equ BASE #100",
		"Imm A $(BASE*2+1)",
		"Imm B $(LINENO)",
		"Imm D $( (1 << 13) - 1 )",
	)

	assert.Equal([]isa.Opcode{
		isa.MakeRL(isa.OP_IMM, C, lit(10)),
		isa.MakeR(isa.OP_PUSH, C),
		isa.MakeRL(isa.OP_IMM, A, lit(513)),
		isa.MakeRL(isa.OP_IMM, B, lit(7)),
		isa.MakeRL(isa.OP_IMM, D, lit(8191)),
	}, codes(prog))
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{NoExit: true}
	asm.Predefine("SYS_WRITE", "2")
	asm.Predefine("MEMORY_SIZE", "4194304")

	prog, err := asm.Parse(strings.NewReader("Imm A SYS_WRITE\nImm B $(MEMORY_SIZE >> 12)\n"))
	assert.NoError(err)
	assert.Equal([]isa.Opcode{
		isa.MakeRL(isa.OP_IMM, A, lit(2)),
		isa.MakeRL(isa.OP_IMM, B, lit(1024)),
	}, codes(prog))
}

func TestAssembler_Character(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		"Imm A 'H'",
		`Imm B '\n'`,
		`Imm C '\e'`,
		`Imm D '\\'`,
		"Imm A ';' ; comment",
		".equ SEMI ';'",
		"Imm B SEMI",
	)

	assert.Equal([]isa.Opcode{
		isa.MakeRL(isa.OP_IMM, A, lit('H')),
		isa.MakeRL(isa.OP_IMM, B, lit('\n')),
		isa.MakeRL(isa.OP_IMM, C, lit(0x1b)),
		isa.MakeRL(isa.OP_IMM, D, lit('\\')),
		isa.MakeRL(isa.OP_IMM, A, lit(';')),
		isa.MakeRL(isa.OP_IMM, B, lit(';')),
	}, codes(prog))
}

func TestAssembler_MacroScope(t *testing.T) {
	assert := assert.New(t)

	// Arguments are only defined within the expansion.
	asm := &Assembler{NoExit: true}
	_, err := asm.Parse(strings.NewReader(".macro m code\nImm A code\n.endm\nm 1\nImm code 1"))
	assert.ErrorIs(err, isa.ErrRegisterInvalid)

	var syntaxErr *ErrSyntax
	if assert.ErrorAs(err, &syntaxErr) {
		assert.Equal(5, syntaxErr.LineNo)
	}
}

func TestAssembler_MacroExpand(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		".macro exit code",
		"  Imm A 0",
		"  Imm B code",
		"  Syscall",
		".endm",
		"exit 7",
		"exit $(6*7)",
	)

	assert.Equal([]isa.Opcode{
		isa.MakeRL(isa.OP_IMM, A, lit(0)),
		isa.MakeRL(isa.OP_IMM, B, lit(7)),
		isa.MakeNone(isa.OP_SYSCALL),
		isa.MakeRL(isa.OP_IMM, A, lit(0)),
		isa.MakeRL(isa.OP_IMM, B, lit(42)),
		isa.MakeNone(isa.OP_SYSCALL),
	}, codes(prog))

	// Statements report the macro body lines.
	assert.Equal(3, prog.Statements[1].LineNo)
	assert.Equal([]string{"Imm", "B", "42"}, prog.Statements[4].Words)
}

func TestAssembler_MacroLabels(t *testing.T) {
	assert := assert.New(t)

	prog := parse(t,
		".macro wait reg",
		"@top: Cmp reg Zero",
		"      Jnz @top",
		".endm",
		"wait A",
		"wait B",
	)

	assert.Equal([]isa.Opcode{
		isa.MakeRR(isa.OP_CMP, A, isa.REG_ZERO),
		isa.MakeL(isa.OP_JNZ, lit(0)),
		isa.MakeRR(isa.OP_CMP, B, isa.REG_ZERO),
		isa.MakeL(isa.OP_JNZ, lit(2)),
	}, codes(prog))
	assert.Equal(uint32(0), prog.Labels["wait_1_top"])
	assert.Equal(uint32(2), prog.Labels["wait_2_top"])
}

func TestAssembler_Errors(t *testing.T) {
	table := map[string]struct {
		source string
		lineno int
		err    error
	}{
		"instruction":      {"Bogus A", 1, ErrInstructionInvalid},
		"lowercase":        {"add A B C", 1, isa.ErrOpcodeInvalid},
		"value-missing":    {"Add A B", 1, ErrOpcodeValueMissing},
		"extra-args":       {"Ret\nRet A", 2, ErrOpcodeExtraArgs},
		"register":         {"Push Q", 1, isa.ErrRegisterInvalid},
		"register-value":   {"Push Q", 1, ErrParseValue("Q")},
		"too-big":          {"Imm A 8192", 1, isa.ErrLiteralTooBig},
		"invalid-digit":    {"Imm A #xyz", 1, isa.ErrLiteralInvalidDigit},
		"negative":         {"Imm A -1", 1, ErrParseValue("-1")},
		"label-missing":    {"Ret\nJmp nowhere\nRet", 2, ErrLabelMissing("nowhere")},
		"label-duplicate":  {"a: Ret\na: Ret", 2, ErrLabelDuplicate},
		"label-syntax":     {"1a: Ret", 1, ErrLabelSyntax},
		"equ-syntax":       {".equ X", 1, ErrEquateSyntax},
		"equ-duplicate":    {".equ X 1\n.equ X 2", 2, ErrEquateDuplicate},
		"expression":       {"Imm A $(1+)", 1, ErrParseExpression("1+")},
		"expression-type":  {`Imm A $("a")`, 1, ErrParseExpression(`"a"`)},
		"macro-lonely":     {".macro m\nRet", 2, ErrMacroLonely},
		"macro-endm":       {"Ret\n.endm", 2, ErrMacroLonelyEndm},
		"macro-nesting":    {".macro m\n.macro n", 2, ErrMacroNesting},
		"macro-args":       {".macro m a\n.endm\nm", 3, ErrMacroSyntax},
		"macro-duplicate":  {".macro m\n.endm\n.macro m", 3, ErrMacroDuplicate},
		"macro-name":       {".macro", 1, ErrMacroSyntax},
		"macro-body":       {".macro m\nBogus\n.endm\nm", 2, ErrInstructionInvalid},
		"macro-body-macro": {".macro m\nBogus\n.endm\nm", 2, &ErrMacro{}},
	}

	for name, entry := range table {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			asm := &Assembler{}
			prog, err := asm.Parse(strings.NewReader(entry.source))
			assert.Nil(prog)

			switch target := entry.err.(type) {
			case *ErrMacro:
				assert.ErrorAs(err, &target)
			default:
				assert.ErrorIs(err, entry.err)
			}

			var syntaxErr *ErrSyntax
			if assert.ErrorAs(err, &syntaxErr) {
				assert.Equal(entry.lineno, syntaxErr.LineNo)
			}
		})
	}
}
