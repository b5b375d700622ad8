// Package vm implements the Universal Machine: the 32-bit platter codec,
// the array-pool memory manager, the register file, and the fetch/decode/
// execute loop.
package vm

import (
	"encoding/binary"
	"fmt"
)

// Platter is the UM's fundamental 32-bit datum.
type Platter = uint32

// Op identifies one of the fourteen opcodes a platter can decode to.
type Op uint8

// Opcodes, in the order the assembler's mnemonic table uses.
const (
	OpCMove Op = iota
	OpIndex
	OpAmend
	OpAdd
	OpMult
	OpDiv
	OpNand
	OpHalt
	OpAlloc
	OpAbandon
	OpOutput
	OpInput
	OpLoadProgram
	OpPut
	opCount
)

// Mnemonics, indexed by Op. Used by the assembler, the disassembler and
// instruction trace logging.
var Mnemonics = [opCount]string{
	OpCMove:       "cmove",
	OpIndex:       "get",
	OpAmend:       "set",
	OpAdd:         "add",
	OpMult:        "mult",
	OpDiv:         "div",
	OpNand:        "nand",
	OpHalt:        "halt",
	OpAlloc:       "allocate",
	OpAbandon:     "free",
	OpOutput:      "out",
	OpInput:       "in",
	OpLoadProgram: "load",
	OpPut:         "put",
}

// MnemonicToOp is the inverse of Mnemonics, built once at init.
var MnemonicToOp = func() map[string]Op {
	m := make(map[string]Op, len(Mnemonics))
	for op, name := range Mnemonics {
		m[name] = Op(op)
	}
	return m
}()

// Instruction is the decoded form of a single packed platter. Standard
// instructions (opcodes 0-12) use A, B and C; Put (opcode 13) uses A and
// Value only.
type Instruction struct {
	Op    Op
	A     uint8 // register index, [0,8)
	B     uint8
	C     uint8
	Value uint32 // 25-bit zero-extended immediate, Put only
}

// Decode extracts the logical fields of a packed 32-bit instruction. An
// opcode of 14 or 15 still decodes as a standard-variant instruction; the
// engine reports the invalid-opcode fault at dispatch time, not here.
func Decode(word Platter) Instruction {
	op := Op(word >> 28)
	if op == OpPut {
		return Instruction{
			Op:    op,
			A:     uint8((word >> 25) & 0x7),
			Value: word & 0x01ffffff,
		}
	}
	return Instruction{
		Op: op,
		A:  uint8((word >> 6) & 0x7),
		B:  uint8((word >> 3) & 0x7),
		C:  uint8(word & 0x7),
	}
}

// Encode packs an Instruction back into its wire form. Calling Encode with
// a standard opcode greater than 12 is a programmer error: the assembler is
// responsible for only ever producing well-formed instructions.
func Encode(inst Instruction) (Platter, error) {
	if inst.Op == OpPut {
		if inst.Value > 0x01ffffff {
			return 0, fmt.Errorf("put value %#x overflows 25 bits", inst.Value)
		}
		return uint32(inst.Op)<<28 | uint32(inst.A&0x7)<<25 | inst.Value, nil
	}
	if inst.Op > 12 {
		return 0, fmt.Errorf("encode: opcode %d is not a standard opcode", inst.Op)
	}
	return uint32(inst.Op)<<28 | uint32(inst.A&0x7)<<6 | uint32(inst.B&0x7)<<3 | uint32(inst.C&0x7), nil
}

// String renders a decoded instruction in assembler mnemonic syntax, e.g.
// "add 0 1 2" or "put 3 42". Used by the disassembler and by trace logging
// so both reuse the codec's own notion of instruction shape rather than
// re-deriving it.
func (i Instruction) String() string {
	name := "??"
	if int(i.Op) < len(Mnemonics) {
		name = Mnemonics[i.Op]
	}
	if i.Op == OpPut {
		return fmt.Sprintf("%s %d %d", name, i.A, i.Value)
	}
	return fmt.Sprintf("%s %d %d %d", name, i.A, i.B, i.C)
}

// BytesToProgram reassembles a stream of big-endian 32-bit words into a
// slice of platters. It fails if the byte count is not a multiple of 4.
func BytesToProgram(b []byte) ([]Platter, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("program length %d is not a multiple of 4", len(b))
	}
	out := make([]Platter, len(b)/4)
	for i := range out {
		out[i] = binary.BigEndian.Uint32(b[i*4:])
	}
	return out, nil
}

// ProgramToBytes serializes a slice of platters as big-endian bytes, the
// inverse of BytesToProgram.
func ProgramToBytes(p []Platter) []byte {
	out := make([]byte, len(p)*4)
	for i, w := range p {
		binary.BigEndian.PutUint32(out[i*4:], w)
	}
	return out
}
