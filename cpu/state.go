package cpu

// State is the execution mode of the CPU.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING  = State(0) // Running
	STATE_SKIPPING = State(1) // SkippingBody
)

// Syscall is a host service selector, passed in register A.
type Syscall uint32

//go:generate go tool stringer -linecomment -type=Syscall
const (
	SYSCALL_EXIT  = Syscall(0) // exit
	SYSCALL_READ  = Syscall(1) // read
	SYSCALL_WRITE = Syscall(2) // write
)
