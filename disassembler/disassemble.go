// Package disassembler renders a packed Universal Machine binary back into
// assembler mnemonic syntax. Since every instruction is a fixed one
// platter wide, disassembly is a linear sweep with no need for the
// branch-reachability analysis a variable-length ISA disassembler would
// require (contrast the teacher's multi-stage, reachability-driven
// Disassemble) — each word decodes independently via vm.Decode, and
// Instruction.String does the actual rendering, so this package carries no
// decode logic of its own (SPEC_FULL.md §4.1).
package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/um/vm"
)

// Disassemble decodes a packed big-endian binary into one mnemonic line per
// instruction. It fails if code's length is not a multiple of 4 (spec.md
// §6.1). The output is itself valid assembler source: no offset or other
// decoration is added to a line, so feeding it straight back into
// assembler.Assemble round-trips to the original bytes (spec.md §8,
// property 5).
func Disassemble(code []byte) (string, error) {
	program, err := vm.BytesToProgram(code)
	if err != nil {
		return "", fmt.Errorf("disassemble: %w", err)
	}

	var out strings.Builder
	for _, word := range program {
		inst := vm.Decode(word)
		fmt.Fprintf(&out, "%s\n", inst)
	}
	return out.String(), nil
}
