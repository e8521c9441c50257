package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"go.uber.org/zap"

	"github.com/ezrec/crazyvm/isa"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"LITERAL_MAX": fmt.Sprintf("%d", isa.LITERAL_MAX),
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
)

// Assembler is a single pass macro assembler for the crazyvm machine.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	NoExit    bool        // If set, no exit syscall is appended.
	Statement []Statement // List of generated statements.

	predefine map[string]string   // Predefines
	Label     map[string]uint32   // Map of jump labels to instruction addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expansions int // Count of macro expansions.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// parseNumber parses a 32-bit number, in the literal syntax.
func parseNumber(word string) (value uint32, err error) {
	digits := word
	base := 10
	if len(word) > 0 {
		switch word[0] {
		case '#':
			digits = word[1:]
			base = 16
		case '$':
			digits = word[1:]
			base = 2
		}
	}

	v64, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value32, err := parseNumber(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeUint64(uint64(value32))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint32(st_int64)
	return
}

// characterValue converts a quoted character to its decimal value.
func characterValue(word string) string {
	str := word[1 : len(word)-1]
	if str[0] == '\\' {
		str = str[1:]
		switch str {
		case "\\":
			str = "\\"
		case "n":
			str = "\n"
		case "r":
			str = "\r"
		case "e":
			str = "\033"
		default:
			return word
		}
	} else if len(str) != 1 {
		return word
	}
	return fmt.Sprintf("%d", str[0])
}

// parseLine parses a single line into instruction words, processing
// equates, labels and macro invocations.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%d", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, characterValue)

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) {
			err = ErrLabelSyntax
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentPc()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		asm.expansions++
		prefix := fmt.Sprintf("%v_%v_", name, asm.expansions)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", prefix)
			words, err = asm.parseLine(line, lineno)
			if err == nil {
				err = asm.parseWords(words, lineno)
			}
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentPc gets the address of the next statement.
func (asm *Assembler) currentPc() uint32 {
	return uint32(len(asm.Statement))
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			var syntaxErr *ErrSyntax
			if !errors.As(err, &syntaxErr) {
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			}
		}
	}()

	asm.Label = make(map[string]uint32, 16)
	asm.Statement = asm.Statement[:0]
	asm.Macro = make(map[string](*Macro))
	asm.expansions = 0
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			zap.S().Debugf("%v: %v", lineno, text)
		}

		// Character literals may quote ';'.
		text = reCharacter.ReplaceAllStringFunc(text, characterValue)

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	if !asm.NoExit {
		lineno += 1
		line = ""
		for _, exit := range []string{"Imm A 0", "Imm B 0", "Syscall"} {
			err = asm.parseWords(strings.Fields(exit), lineno)
			if err != nil {
				return
			}
		}
	}

	// Final linking of jump labels.
	for n := range asm.Statement {
		stmt := &asm.Statement[n]

		if len(stmt.LinkLabel) == 0 {
			continue
		}
		label := stmt.LinkLabel
		pc, ok := asm.Label[label]
		if !ok {
			err = &ErrSyntax{LineNo: stmt.LineNo, Line: stmt.Text(), Err: ErrLabelMissing(label)}
			return
		}
		if pc > isa.LITERAL_MAX {
			err = &ErrSyntax{LineNo: stmt.LineNo, Line: stmt.Text(), Err: &isa.ErrLiteral{Text: label, Err: isa.ErrLiteralTooBig}}
			return
		}
		stmt.Code.Literal = isa.MakeBit13Literal(pc)
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statement),
		Labels:     maps.Clone(asm.Label),
	}

	return
}

// parseRegister parses a register operand.
func parseRegister(word string) (reg isa.Register, err error) {
	reg, err = isa.ParseRegister(word)
	if err != nil {
		err = errors.Join(ErrParseValue(word), err)
	}
	return
}

// parseLiteral parses a literal operand, or names a label to link.
func parseLiteral(word string) (lit isa.Bit13Literal, label string, err error) {
	switch word[0] {
	case '#', '$', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		lit, err = isa.ParseBit13Literal(word)
		return
	}

	if !reLabel.MatchString(word) {
		err = ErrParseValue(word)
		return
	}

	label = word
	return
}

// parseWords evaluates the words of a single instruction.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	tag, err := isa.ParseOpTag(words[0])
	if err != nil {
		err = errors.Join(ErrInstructionInvalid, err)
		return
	}

	args := words[1:]
	shape := tag.Shape()
	switch {
	case len(args) < shape.Operands():
		err = ErrOpcodeValueMissing
		return
	case len(args) > shape.Operands():
		err = ErrOpcodeExtraArgs
		return
	}

	var regs [3]isa.Register
	var lit isa.Bit13Literal
	var label string

	for n, arg := range args {
		isLiteral := (shape == isa.SHAPE_RL && n == 1) || shape == isa.SHAPE_L
		if isLiteral {
			lit, label, err = parseLiteral(arg)
		} else {
			regs[n], err = parseRegister(arg)
		}
		if err != nil {
			return
		}
	}

	var code isa.Opcode
	switch shape {
	case isa.SHAPE_NONE:
		code = isa.MakeNone(tag)
	case isa.SHAPE_R:
		code = isa.MakeR(tag, regs[0])
	case isa.SHAPE_RR:
		code = isa.MakeRR(tag, regs[0], regs[1])
	case isa.SHAPE_RRR:
		code = isa.MakeRRR(tag, regs[0], regs[1], regs[2])
	case isa.SHAPE_RL:
		code = isa.MakeRL(tag, regs[0], lit)
	case isa.SHAPE_L:
		code = isa.MakeL(tag, lit)
	}

	stmt := Statement{
		LineNo:    lineno,
		Pc:        asm.currentPc(),
		Words:     slices.Clone(words),
		Code:      code,
		LinkLabel: label,
	}
	if asm.Verbose {
		zap.S().Debugf("%5d: %v", stmt.Pc, stmt.Code)
	}
	asm.Statement = append(asm.Statement, stmt)

	return
}
