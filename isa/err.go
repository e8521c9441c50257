package isa

import (
	"errors"

	"github.com/ezrec/crazyvm/translate"
)

var f = translate.From

var (
	// Literal parse errors
	ErrLiteralTooBig       = errors.New(f("literal too big"))
	ErrLiteralInvalidDigit = errors.New(f("literal invalid digit"))

	// Decode errors
	ErrOpcodeDecode    = errors.New(f("decode"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
)

// ErrOpcode reports an instruction word with an unknown tag.
type ErrOpcode uint32

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%08x tag 0x%02x", uint32(eo), uint32(eo)&0xff)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	if err == ErrOpcodeDecode {
		return true
	}
	_, ok = err.(ErrOpcode)
	return
}

// ErrLiteral reports the literal text that failed to parse.
type ErrLiteral struct {
	Text string
	Err  error
}

func (err *ErrLiteral) Error() string {
	return f("'%v' %v", err.Text, err.Err)
}

func (err *ErrLiteral) Unwrap() error {
	return err.Err
}
