package assembler

import "github.com/Urethramancer/um/vm"

// nodeKind distinguishes the two productive line shapes the grammar
// recognizes; blank/comment lines never become nodes.
type nodeKind int

const (
	nodeLabel nodeKind = iota
	nodeInstruction
)

// node is one parsed line of source, either a label definition or an
// instruction with its (possibly still-symbolic) operands.
type node struct {
	kind  nodeKind
	line  int
	label string // nodeLabel: the defined name

	op       vm.Op    // nodeInstruction
	operands []string // raw operand tokens, resolved against labels in pass 2
}
