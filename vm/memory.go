package vm

// Memory is the array pool: a growable collection of arrays of platters,
// keyed by identifier, with LIFO reuse of abandoned identifiers. Identifier
// 0 is reserved for the program array and is always active.
//
// The pool is backed by a growable slice of optional entries plus a
// separate stack of freed indices, per the abstract requirement in
// spec.md's design notes — this is the idiomatic substitute for the
// reference's pointer-to-arrays-plus-free-list.
type Memory struct {
	arrays  [][]Platter // arrays[id] == nil means id is not active
	freeIDs []Platter   // LIFO stack of abandoned, reusable identifiers
	highID  Platter     // next fresh identifier if freeIDs is empty
}

// NewMemory creates a pool with array 0 already allocated from prog (a
// defensive copy is taken so the caller's slice can be reused).
func NewMemory(prog []Platter) *Memory {
	m := &Memory{
		arrays: make([][]Platter, 1, 16),
		highID: 1,
	}
	m.arrays[0] = append(make([]Platter, 0, len(prog)), prog...)
	return m
}

// active reports whether id currently names a live array.
func (m *Memory) active(id Platter) bool {
	return int(id) < len(m.arrays) && m.arrays[id] != nil
}

// Allocate returns a fresh, zero-filled array of the given size and a
// non-zero identifier for it, reusing the most recently abandoned
// identifier when one is available.
func (m *Memory) Allocate(size Platter) Platter {
	arr := make([]Platter, size)

	if n := len(m.freeIDs); n > 0 {
		id := m.freeIDs[n-1]
		m.freeIDs = m.freeIDs[:n-1]
		m.arrays[id] = arr
		return id
	}

	id := m.highID
	m.highID++
	m.arrays = append(m.arrays, arr) // id == len(m.arrays) before this append
	return id
}

// Abandon releases id back to the free-list. Fatal per spec.md §4.2 if id
// is 0 or not active; the engine turns that into a Fault.
func (m *Memory) Abandon(id Platter) error {
	if id == 0 {
		return newFault(FaultMemory, "abandon: identifier 0 is the program array")
	}
	if !m.active(id) {
		return newFault(FaultMemory, "abandon: identifier %d is not active", id)
	}
	m.arrays[id] = nil
	m.freeIDs = append(m.freeIDs, id)
	return nil
}

// Read returns the platter at offset within array id.
func (m *Memory) Read(id, offset Platter) (Platter, error) {
	if !m.active(id) {
		return 0, newFault(FaultMemory, "read: identifier %d is not active", id)
	}
	arr := m.arrays[id]
	if int(offset) >= len(arr) {
		return 0, newFault(FaultMemory, "read: offset %d out of bounds for array %d (size %d)", offset, id, len(arr))
	}
	return arr[offset], nil
}

// Write stores val at offset within array id.
func (m *Memory) Write(id, offset, val Platter) error {
	if !m.active(id) {
		return newFault(FaultMemory, "write: identifier %d is not active", id)
	}
	arr := m.arrays[id]
	if int(offset) >= len(arr) {
		return newFault(FaultMemory, "write: offset %d out of bounds for array %d (size %d)", offset, id, len(arr))
	}
	arr[offset] = val
	return nil
}

// ReplaceProgram duplicates array src and installs the duplicate as array
// 0, regardless of array 0's previous size. src == 0 is a no-op: array 0
// duplicating itself is, by definition, already array 0, so the copy is
// skipped as the dominant-cost optimization spec.md §5 calls for.
func (m *Memory) ReplaceProgram(src Platter) error {
	if src == 0 {
		return nil
	}
	if !m.active(src) {
		return newFault(FaultMemory, "load-program: identifier %d is not active", src)
	}
	dup := append(make([]Platter, 0, len(m.arrays[src])), m.arrays[src]...)
	m.arrays[0] = dup
	return nil
}

// Program returns the live backing slice for array 0. The engine fetches
// directly through this on every cycle so self-modifying writes (via
// Write(0, ...) or ReplaceProgram) are observed on the very next fetch.
func (m *Memory) Program() []Platter {
	return m.arrays[0]
}

// Stats reports the number of currently active arrays and the high-water
// identifier, for the diagnostic snapshot and the optional -memstats flag.
func (m *Memory) Stats() (active int, highWater Platter) {
	for _, a := range m.arrays {
		if a != nil {
			active++
		}
	}
	return active, m.highID
}
