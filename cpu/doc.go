// Package cpu implements the execution engine of the crazyvm machine.
//
// The CPU consists of eight 32-bit registers (SP, PC, Flag, Zero, A-D), a
// read-only instruction store (Rom) and a word addressed data memory whose
// low end holds an upward growing stack. Each Step fetches the word at PC,
// decodes it with package isa and executes it.
//
// A function body is written as Fn, the body, then Ret. Falling into Fn
// switches the CPU into the skipping state, where nothing but Ret has an
// effect, so the body is only ever executed when entered by Call.
//
// Syscalls are selected by register A and take their arguments in B, C and D.
package cpu
