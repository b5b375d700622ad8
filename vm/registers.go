package vm

// Registers holds the eight program-visible general-purpose registers.
// The program counter is deliberately not part of this type: it is a
// hidden platter the engine owns directly, never addressable as a
// register operand (spec.md §3, invariant 5).
type Registers [8]Platter

// Get returns the value of register reg. reg is trusted to be in [0,8): it is
// always extracted from a 3-bit instruction field by Decode, which can
// never produce an out-of-range index.
func (r *Registers) Get(reg uint8) Platter {
	return r[reg]
}

// Set stores val into register reg.
func (r *Registers) Set(reg uint8, val Platter) {
	r[reg] = val
}
