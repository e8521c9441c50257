// Package asm is the assembler and disassembler for crazyvm programs.
//
// Source is line oriented; ';' starts a comment. A line holds optional
// 'label:' prefixes followed by an instruction, a mnemonic and its
// operands separated by whitespace:
//
//	loop:   Imm A 1
//	        Add A B B
//	        Jmp loop
//
// Registers are named SP, PC, Flag, Zero, A, B, C and D. Literals are
// decimal, '#' prefixed hexadecimal or '$' prefixed binary, and must fit
// in 13 bits. A literal operand may also be a label, resolved once the
// whole source has been read.
//
// Directives:
//
//	.equ NAME VALUE      textual substitution of a word
//	.macro NAME ARGS...  start of a macro body, ended by .endm
//	$(expr)              compile time expression over numeric equates
//	'c'                  character value; \\ \n \r \e are escapes
//
// Within a macro body '@' expands to a prefix unique to each expansion.
//
// Unless NoExit is set, the assembled program ends with an exit syscall
// with code 0.
package asm
