// Package assembler turns Universal Machine assembly source into the
// packed big-endian binary format vm.Decode/vm.Encode define. It is an
// external collaborator around the codec (spec.md §1): only the binary
// format it produces is normative, not its own grammar.
package assembler

import (
	"strings"

	"github.com/Urethramancer/um/vm"
)

// Assembler holds label state across the two passes Assemble runs. It
// follows the same two-pass shape as the teacher's own assembler
// (assemble once to fix label offsets, then again to emit code), simplified
// because every UM instruction is exactly one platter wide: there is no
// variable-length-encoding fixed point to iterate to convergence.
type Assembler struct {
	labels map[string]vm.Platter
}

// New creates an empty Assembler.
func New() *Assembler {
	return &Assembler{labels: make(map[string]vm.Platter)}
}

// Assemble parses src and returns the packed big-endian binary. Per
// spec.md §7, it aborts with the first *Error encountered.
func (a *Assembler) Assemble(src string) ([]byte, error) {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	nodes, err := parseLines(lines)
	if err != nil {
		return nil, err
	}

	// Pass 1: labels resolve to the offset of the next emitted instruction.
	// Labels consume no space, so this is a single linear walk, not the
	// fixed-point loop a variable-length ISA would need.
	var offset vm.Platter
	for _, n := range nodes {
		if n.kind == nodeLabel {
			a.labels[n.label] = offset
			continue
		}
		offset++
	}

	// Pass 2: emit code, resolving register and value operands.
	program := make([]vm.Platter, 0, offset)
	for _, n := range nodes {
		if n.kind == nodeLabel {
			continue
		}
		inst, err := a.buildInstruction(n)
		if err != nil {
			return nil, err
		}
		word, err := vm.Encode(inst)
		if err != nil {
			return nil, &Error{Line: n.line, Msg: err.Error()}
		}
		program = append(program, word)
	}

	return vm.ProgramToBytes(program), nil
}

// buildInstruction resolves a node's raw operand tokens against the
// mnemonic table's arity: three registers for opcodes 0-12 (halt also
// accepts zero, matching spec.md's own bare "halt" in its end-to-end
// scenarios), a register plus a 25-bit value for put (opcode 13, spec.md
// §6.2).
func (a *Assembler) buildInstruction(n *node) (vm.Instruction, error) {
	if n.op == vm.OpPut {
		if len(n.operands) != 2 {
			return vm.Instruction{}, &Error{Line: n.line, Msg: "put requires exactly 2 operands (A value)"}
		}
		reg, err := parseRegister(n.operands[0], n.line)
		if err != nil {
			return vm.Instruction{}, err
		}
		val, err := parseValue(n.operands[1], a.labels, n.line)
		if err != nil {
			return vm.Instruction{}, err
		}
		return vm.Instruction{Op: vm.OpPut, A: reg, Value: val}, nil
	}

	// halt's operands are never read by the engine, and spec.md's own
	// end-to-end scenarios write it bare ("add 0 1 2; halt"); accept that
	// nullary form alongside the fully-written "halt 0 0 0".
	if n.op == vm.OpHalt && len(n.operands) == 0 {
		return vm.Instruction{Op: vm.OpHalt}, nil
	}

	if len(n.operands) != 3 {
		return vm.Instruction{}, &Error{Line: n.line, Msg: vm.Mnemonics[n.op] + " requires exactly 3 register operands"}
	}
	regs := [3]uint8{}
	for i, tok := range n.operands {
		reg, err := parseRegister(tok, n.line)
		if err != nil {
			return vm.Instruction{}, err
		}
		regs[i] = reg
	}
	return vm.Instruction{Op: n.op, A: regs[0], B: regs[1], C: regs[2]}, nil
}
