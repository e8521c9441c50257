package isa

import (
	"strconv"
)

const (
	LITERAL_BITS = 13                     // Width of a literal operand.
	LITERAL_MAX  = (1 << LITERAL_BITS) - 1 // Largest literal value.
)

// Bit13Literal is an unsigned 13-bit instruction operand.
type Bit13Literal uint16

// MakeBit13Literal truncates a raw value to 13 bits.
func MakeBit13Literal(value uint32) Bit13Literal {
	return Bit13Literal(value & LITERAL_MAX)
}

// ParseBit13Literal parses literal text.
// A '#' prefix selects hexadecimal, '$' binary, otherwise decimal.
func ParseBit13Literal(text string) (lit Bit13Literal, err error) {
	digits := text
	base := 10
	if len(text) > 0 {
		switch text[0] {
		case '#':
			digits = text[1:]
			base = 16
		case '$':
			digits = text[1:]
			base = 2
		}
	}

	value, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		cause := ErrLiteralInvalidDigit
		if nerr, ok := err.(*strconv.NumError); ok && nerr.Err == strconv.ErrRange {
			cause = ErrLiteralTooBig
		}
		err = &ErrLiteral{Text: text, Err: cause}
		return
	}

	if value > LITERAL_MAX {
		err = &ErrLiteral{Text: text, Err: ErrLiteralTooBig}
		return
	}

	lit = Bit13Literal(value)
	return
}

// String renders the literal in decimal.
func (lit Bit13Literal) String() string {
	return strconv.FormatUint(uint64(lit), 10)
}
