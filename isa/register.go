package isa

// Register is an architectural register index.
type Register uint8

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_SP    = Register(0) // SP
	REG_PC    = Register(1) // PC
	REG_FLAG  = Register(2) // Flag
	REG_ZERO  = Register(3) // Zero
	REG_A     = Register(4) // A
	REG_B     = Register(5) // B
	REG_C     = Register(6) // C
	REG_D     = Register(7) // D
	REG_COUNT = Register(8) // Count
)

// Registers lists every addressable register in wire order.
var Registers = [REG_COUNT]Register{
	REG_SP, REG_PC, REG_FLAG, REG_ZERO, REG_A, REG_B, REG_C, REG_D,
}

// registerMap maps assembler register names.
var registerMap = map[string]Register{
	"SP":   REG_SP,
	"PC":   REG_PC,
	"Flag": REG_FLAG,
	"Zero": REG_ZERO,
	"A":    REG_A,
	"B":    REG_B,
	"C":    REG_C,
	"D":    REG_D,
}

// ParseRegister returns the register with the given name.
func ParseRegister(name string) (reg Register, err error) {
	reg, ok := registerMap[name]
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// Valid is true for the eight addressable registers.
func (reg Register) Valid() bool {
	return reg < REG_COUNT
}

// registerOf converts a 3-bit field into a register.
func registerOf(field uint32) Register {
	return Registers[field&0x7]
}
