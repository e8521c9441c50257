// Package isa implements the instruction set of the crazyvm machine.
//
// Every instruction is one 32-bit word. The low byte holds the opcode tag,
// the remaining fields depend on the operand shape of that tag:
//
//	RRR  <r3:3 @14><r2:3 @11><r1:3 @8><tag:8>
//	RR   <r2:3 @11><r1:3 @8><tag:8>
//	R    <r1:3 @8><tag:8>
//	RL   <lit:13 @11><r1:3 @8><tag:8>
//	L    <lit:13 @11><tag:8>
//	none <tag:8>
//
// Registers are encoded as their 3-bit index (SP, PC, Flag, Zero, A, B, C, D),
// and literals are unsigned 13-bit values.
package isa
