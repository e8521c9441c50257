package asm

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/ccoveille/go-safecast"

	cio "github.com/ezrec/crazyvm/io"
	"github.com/ezrec/crazyvm/isa"
)

// Statement is a single assembled instruction.
type Statement struct {
	LineNo    int        // Source line number.
	Pc        uint32     // Instruction address.
	Words     []string   // Source words, after equate and macro expansion.
	Code      isa.Opcode // Assembled instruction.
	LinkLabel string     // Label to resolve into the literal operand.
}

// Text returns the source text of the statement.
func (stmt *Statement) Text() string {
	return strings.Join(stmt.Words, " ")
}

// Program is an assembled program, with its debug information.
type Program struct {
	Statements []Statement
	Labels     map[string]uint32
}

// Debug returns the statement at pc, or nil.
func (prog *Program) Debug(pc uint32) (stmt *Statement) {
	for n := range prog.Statements {
		if prog.Statements[n].Pc == pc {
			stmt = &prog.Statements[n]
			break
		}
	}

	return
}

// Binary returns the instruction words of the program.
func (prog *Program) Binary() (bins []uint32) {
	for _, code := range prog.Codes() {
		bins = append(bins, code.Word())
	}

	return
}

// Codes iterates over the instructions by address.
func (prog *Program) Codes() iter.Seq2[uint32, isa.Opcode] {
	return func(yield func(pc uint32, code isa.Opcode) bool) {
		for _, stmt := range prog.Statements {
			if !yield(stmt.Pc, stmt.Code) {
				return
			}
		}
	}
}

// Image returns the program with its debug information, ready to save.
func (prog *Program) Image() (img *cio.Image) {
	img = cio.NewImage(prog.Binary())
	for _, stmt := range prog.Statements {
		img.Lines = append(img.Lines, cio.ImageLine{
			Pc:     stmt.Pc,
			LineNo: stmt.LineNo,
			Text:   stmt.Text(),
		})
	}
	if len(prog.Labels) > 0 {
		img.Labels = maps.Clone(prog.Labels)
	}

	return
}

// NewProgramFromImage decodes a program image, restoring the debug
// information it carries.
func NewProgramFromImage(img *cio.Image) (prog *Program, err error) {
	prog, err = Disassemble(img.Words)
	if err != nil {
		return
	}

	for _, line := range img.Lines {
		stmt := prog.Debug(line.Pc)
		if stmt == nil {
			continue
		}
		stmt.LineNo = line.LineNo
		if len(line.Text) > 0 {
			stmt.Words = strings.Fields(line.Text)
		}
	}

	if len(img.Labels) > 0 {
		prog.Labels = maps.Clone(img.Labels)
	}

	return
}

// Disassemble decodes instruction words into a program.
// Statement line numbers are the listing line of each instruction.
func Disassemble(words []uint32) (prog *Program, err error) {
	prog = &Program{
		Statements: make([]Statement, 0, len(words)),
	}

	for n, word := range words {
		var pc uint32
		pc, err = safecast.ToUint32(n)
		if err != nil {
			prog = nil
			return
		}

		var code isa.Opcode
		code, err = isa.Decode(word)
		if err != nil {
			err = &ErrSyntax{LineNo: n + 1, Line: fmt.Sprintf("%08x", word), Err: err}
			prog = nil
			return
		}

		prog.Statements = append(prog.Statements, Statement{
			LineNo: n + 1,
			Pc:     pc,
			Words:  strings.Fields(code.String()),
			Code:   code,
		})
	}

	return
}

// WriteListing writes the program as assembly text, one instruction per
// line. Labels are written on their own line before the instruction they
// name.
func (prog *Program) WriteListing(w io.Writer) (err error) {
	labels := map[uint32][]string{}
	for label, pc := range prog.Labels {
		labels[pc] = append(labels[pc], label)
	}

	for _, stmt := range prog.Statements {
		names := labels[stmt.Pc]
		slices.Sort(names)
		for _, name := range names {
			_, err = fmt.Fprintf(w, "%v:\n", name)
			if err != nil {
				return
			}
		}
		_, err = fmt.Fprintf(w, "\t%v\n", stmt.Code)
		if err != nil {
			return
		}
	}

	return
}
