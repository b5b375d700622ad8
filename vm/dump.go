package vm

import (
	"fmt"
	"os"
)

// WriteDump writes a human-readable snapshot of m's registers, PC, cycle
// count and array-pool stats to path. The format is informative only
// (spec.md §6.5); nothing in this repo parses it back.
func WriteDump(m *Machine, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	active, highWater := m.Mem.Stats()
	fmt.Fprintf(f, "cycle: %d\n", m.Cycles)
	fmt.Fprintf(f, "pc: %d\n", m.PC)
	for i, v := range m.Regs {
		fmt.Fprintf(f, "r%d: %d (0x%08x)\n", i, v, v)
	}
	fmt.Fprintf(f, "active arrays: %d\n", active)
	fmt.Fprintf(f, "high-water id: %d\n", highWater)
	fmt.Fprintf(f, "array 0 size: %d\n", len(m.Mem.Program()))
	return nil
}
