package assembler

import (
	"strconv"
	"strings"

	"github.com/Urethramancer/um/vm"
)

// parseLines turns assembler source into a flat list of nodes, in order.
// Lines beginning with '#' or containing only whitespace are skipped
// (spec.md §6.2). A line consisting of a bare "name:" defines a label at
// the current instruction offset; every other non-blank line is an
// instruction.
func parseLines(lines []string) ([]*node, error) {
	var nodes []*node
	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if label, ok := strings.CutSuffix(line, ":"); ok {
			if strings.ContainsAny(label, " \t") {
				return nil, &Error{Line: lineNo, Msg: "malformed label: " + raw}
			}
			nodes = append(nodes, &node{kind: nodeLabel, line: lineNo, label: label})
			continue
		}

		fields := strings.Fields(line)
		mnemonic := strings.ToLower(fields[0])
		op, ok := vm.MnemonicToOp[mnemonic]
		if !ok {
			return nil, &Error{Line: lineNo, Msg: "unknown mnemonic: " + fields[0]}
		}
		nodes = append(nodes, &node{
			kind:     nodeInstruction,
			line:     lineNo,
			op:       op,
			operands: fields[1:],
		})
	}
	return nodes, nil
}

// parseRegister parses an operand that must be a register index in [0,8).
func parseRegister(tok string, lineNo int) (uint8, error) {
	n, err := strconv.ParseUint(tok, 10, 8)
	if err != nil || n >= 8 {
		return 0, &Error{Line: lineNo, Msg: "invalid register operand: " + tok}
	}
	return uint8(n), nil
}

// parseValue parses a put immediate or a label reference, per SPEC_FULL.md
// §6.2's label and literal support: decimal, 0x-hex, a 'c' character literal,
// or a bare identifier resolved against labels in the caller's second pass.
func parseValue(tok string, labels map[string]vm.Platter, lineNo int) (vm.Platter, error) {
	if strings.HasPrefix(tok, "'") && strings.HasSuffix(tok, "'") && len(tok) == 3 {
		return vm.Platter(tok[1]), nil
	}
	if v, ok := labels[tok]; ok {
		return v, nil
	}
	base := 10
	num := tok
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		base = 16
		num = tok[2:]
	}
	n, err := strconv.ParseUint(num, base, 32)
	if err != nil {
		return 0, &Error{Line: lineNo, Msg: "invalid value or undefined label: " + tok}
	}
	if n >= 1<<25 {
		return 0, &Error{Line: lineNo, Msg: "value out of 25-bit range: " + tok}
	}
	return vm.Platter(n), nil
}
