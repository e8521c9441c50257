// Package io provides the host side of the crazyvm machine: the console
// streams used by the read and write syscalls, and the persisted forms of
// a program (reversed-hex text and CBOR images).
package io

// Console defines the host streams available to a running program.
type Console interface {
	// ReadLine reads the next line of input without its terminator,
	// truncated to at most limit bytes. At end of input it returns an
	// empty line and no error.
	ReadLine(limit int) (line []byte, err error)
	// WriteChar writes a single character code to the output.
	WriteChar(code uint32) error
}
