package vm

import (
	"bufio"
	"io"
	"log"
)

// TraceFunc is called once per executed instruction when tracing is
// enabled. It has no effect on machine semantics (SPEC_FULL.md §4.4).
type TraceFunc func(cycle uint64, pc Platter, inst Instruction)

// Machine is a single Universal Machine instance: registers, the hidden
// program counter, the array pool, and the byte streams opcodes 10 and 11
// read and write through.
type Machine struct {
	Regs Registers
	Mem  *Memory
	PC   Platter

	// Cycles counts instructions executed so far, surfaced in trace lines
	// and the diagnostic snapshot (SPEC_FULL.md §4.4).
	Cycles uint64

	in    *bufio.Reader
	out   io.Writer
	Trace TraceFunc

	// Logger receives non-fatal warnings (e.g. output of a value above
	// 255). Nil disables them entirely; they are never required for
	// correctness.
	Logger *log.Logger
}

// New creates a machine with array 0 loaded from prog, PC at 0, and all
// registers zeroed.
func New(prog []Platter, in io.Reader, out io.Writer) *Machine {
	return &Machine{
		Mem: NewMemory(prog),
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Run executes instructions until halt or a fault. A normal halt returns
// nil; anything else returns the *Fault that stopped the machine.
func (m *Machine) Run() error {
	for {
		halted, err := m.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// Step fetches, decodes and executes exactly one instruction.
func (m *Machine) Step() (halted bool, err error) {
	prog := m.Mem.Program()
	if int(m.PC) >= len(prog) {
		return false, newFault(FaultRanOff, "PC %d reached end of array 0 (size %d) without halt", m.PC, len(prog))
	}

	word := prog[m.PC]
	pc := m.PC
	m.PC++ // advance before dispatch: load-program writes PC directly and must win

	inst := Decode(word)
	if int(inst.Op) >= int(opCount) {
		return false, newFault(FaultInvalidOpcode, "opcode %d at PC %d", inst.Op, pc)
	}

	if m.Trace != nil {
		m.Trace(m.Cycles, pc, inst)
	}
	m.Cycles++

	return dispatch[inst.Op](m, inst)
}
