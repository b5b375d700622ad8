package assembler

import "fmt"

// Error reports a source line and message, per spec.md §7's propagation
// policy: the assembler reports a line number with each error and aborts
// on the first.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}
