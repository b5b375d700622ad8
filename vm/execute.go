package vm

import "io"

// opFunc implements one opcode's effect on the machine. It returns
// (halted, err): halted is true only for a normal `halt`; err is a *Fault
// for any abnormal stop.
type opFunc func(m *Machine, inst Instruction) (bool, error)

// dispatch is indexed by Op, built once at package init. This mirrors the
// teacher's per-opcode handler-function style (cpu/instructions.go's
// Handler field), generalized into a static table since UM dispatch needs
// no further per-instance decoding the way variable-length 68k addressing
// modes do.
var dispatch [opCount]opFunc

func init() {
	dispatch[OpCMove] = opCMove
	dispatch[OpIndex] = opIndex
	dispatch[OpAmend] = opAmend
	dispatch[OpAdd] = opAdd
	dispatch[OpMult] = opMult
	dispatch[OpDiv] = opDiv
	dispatch[OpNand] = opNand
	dispatch[OpHalt] = opHalt
	dispatch[OpAlloc] = opAlloc
	dispatch[OpAbandon] = opAbandon
	dispatch[OpOutput] = opOutput
	dispatch[OpInput] = opInput
	dispatch[OpLoadProgram] = opLoadProgram
	dispatch[OpPut] = opPut
}

// opCMove: if R[C] != 0, R[A] := R[B].
func opCMove(m *Machine, inst Instruction) (bool, error) {
	if m.Regs.Get(inst.C) != 0 {
		m.Regs.Set(inst.A, m.Regs.Get(inst.B))
	}
	return false, nil
}

// opIndex: R[A] := array(R[B])[R[C]].
func opIndex(m *Machine, inst Instruction) (bool, error) {
	val, err := m.Mem.Read(m.Regs.Get(inst.B), m.Regs.Get(inst.C))
	if err != nil {
		return false, err
	}
	m.Regs.Set(inst.A, val)
	return false, nil
}

// opAmend: array(R[A])[R[B]] := R[C]. Permits R[A] == 0, the self-
// modifying case; the next fetch sees the new word because Write mutates
// array 0's backing slice in place.
func opAmend(m *Machine, inst Instruction) (bool, error) {
	if err := m.Mem.Write(m.Regs.Get(inst.A), m.Regs.Get(inst.B), m.Regs.Get(inst.C)); err != nil {
		return false, err
	}
	return false, nil
}

// opAdd: R[A] := (R[B] + R[C]) mod 2^32. Go's uint32 arithmetic already
// wraps at 2^32, so no explicit mask is needed.
func opAdd(m *Machine, inst Instruction) (bool, error) {
	m.Regs.Set(inst.A, m.Regs.Get(inst.B)+m.Regs.Get(inst.C))
	return false, nil
}

// opMult: R[A] := (R[B] * R[C]) mod 2^32.
func opMult(m *Machine, inst Instruction) (bool, error) {
	m.Regs.Set(inst.A, m.Regs.Get(inst.B)*m.Regs.Get(inst.C))
	return false, nil
}

// opDiv: R[A] := R[B] / R[C], unsigned. Fatal if R[C] == 0.
func opDiv(m *Machine, inst Instruction) (bool, error) {
	divisor := m.Regs.Get(inst.C)
	if divisor == 0 {
		return false, newFault(FaultDivByZero, "div: R[%d] (dividend %d) by R[%d] == 0", inst.B, m.Regs.Get(inst.B), inst.C)
	}
	m.Regs.Set(inst.A, m.Regs.Get(inst.B)/divisor)
	return false, nil
}

// opNand: R[A] := ~(R[B] & R[C]) over 32 bits.
func opNand(m *Machine, inst Instruction) (bool, error) {
	m.Regs.Set(inst.A, ^(m.Regs.Get(inst.B) & m.Regs.Get(inst.C)))
	return false, nil
}

// opHalt stops the machine normally.
func opHalt(m *Machine, inst Instruction) (bool, error) {
	return true, nil
}

// opAlloc: R[B] := allocate(R[C]).
func opAlloc(m *Machine, inst Instruction) (bool, error) {
	m.Regs.Set(inst.B, m.Mem.Allocate(m.Regs.Get(inst.C)))
	return false, nil
}

// opAbandon: abandon(R[C]).
func opAbandon(m *Machine, inst Instruction) (bool, error) {
	if err := m.Mem.Abandon(m.Regs.Get(inst.C)); err != nil {
		return false, err
	}
	return false, nil
}

// opOutput writes the low 8 bits of R[C] to stdout. Values above 255 are a
// program error but never crash the host; per spec.md's own resolution of
// this open question, the low byte is emitted regardless, for
// deterministic test behavior.
func opOutput(m *Machine, inst Instruction) (bool, error) {
	val := m.Regs.Get(inst.C)
	if val > 0xff && m.Logger != nil {
		m.Logger.Printf("warning: output value %d exceeds a byte at cycle %d; emitting low byte", val, m.Cycles)
	}
	if _, err := m.out.Write([]byte{byte(val)}); err != nil {
		return false, newFault(FaultOutOfMemory, "output: write failed: %s", err)
	}
	return false, nil
}

// opInput reads one byte into R[C]; on EOF, R[C] := 0xFFFFFFFF.
func opInput(m *Machine, inst Instruction) (bool, error) {
	b, err := m.in.ReadByte()
	if err != nil {
		if err == io.EOF {
			m.Regs.Set(inst.C, 0xFFFFFFFF)
			return false, nil
		}
		return false, newFault(FaultOutOfMemory, "input: read failed: %s", err)
	}
	m.Regs.Set(inst.C, Platter(b))
	return false, nil
}

// opLoadProgram: replace_program(R[B]); PC := R[C]. R[B] == 0 must still
// set PC, with no copy needed since array 0 duplicating itself is a no-op
// on contents (spec.md §4.4 edge case, §5 performance note).
func opLoadProgram(m *Machine, inst Instruction) (bool, error) {
	if err := m.Mem.ReplaceProgram(m.Regs.Get(inst.B)); err != nil {
		return false, err
	}
	m.PC = m.Regs.Get(inst.C)
	return false, nil
}

// opPut: R[A] := Value, the 25-bit immediate, unsigned and zero-extended.
func opPut(m *Machine, inst Instruction) (bool, error) {
	m.Regs.Set(inst.A, inst.Value)
	return false, nil
}
