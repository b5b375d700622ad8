package vm

import (
	"errors"
	"fmt"
)

// Kind identifies one entry of the error taxonomy in spec.md §7. Each kind
// maps to a stable process exit code, assigned in cmd/um/main.go.
type Kind int

const (
	// FaultInvalidProgram covers open failures and a file size that is not
	// a multiple of 4.
	FaultInvalidProgram Kind = iota + 1
	// FaultInvalidOpcode is an opcode of 14 or 15 reaching dispatch.
	FaultInvalidOpcode
	// FaultRegister is a register index outside [0,8) — a bug in the
	// binary, since Decode can never itself produce one.
	FaultRegister
	// FaultMemory covers out-of-bounds array access, abandoning a free or
	// zero identifier, and load-program from an unallocated identifier.
	FaultMemory
	// FaultDivByZero is division with a zero divisor.
	FaultDivByZero
	// FaultOutOfMemory is a host allocator failure. The engine also reports
	// a failed write to stdout or a failed (non-EOF) read from stdin with
	// this kind.
	FaultOutOfMemory
	// FaultRanOff is the program counter reaching the end of array 0
	// without having executed halt.
	FaultRanOff
)

var kindNames = map[Kind]string{
	FaultInvalidProgram: "invalid program",
	FaultInvalidOpcode:  "invalid opcode",
	FaultRegister:       "invalid register access",
	FaultMemory:         "invalid memory access",
	FaultDivByZero:      "division by zero",
	FaultOutOfMemory:    "out of memory",
	FaultRanOff:         "program ran off end",
}

// Fault is a fatal, unrecoverable VM error. Every VM-internal error is a
// Fault: there is no recovery path, per spec.md §7's propagation policy.
type Fault struct {
	Kind Kind
	Msg  string
}

func newFault(kind Kind, format string, args ...any) *Fault {
	return &Fault{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", kindNames[f.Kind], f.Msg)
}

// AsFault reports whether err is a *Fault, unwrapping once.
func AsFault(err error) (*Fault, bool) {
	if f, ok := err.(*Fault); ok {
		return f, true
	}
	f, ok := errors.Unwrap(err).(*Fault)
	return f, ok
}
