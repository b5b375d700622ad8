package vm

import "testing"

func TestNewMemoryReservesArrayZero(t *testing.T) {
	m := NewMemory([]Platter{1, 2, 3})
	got, err := m.Read(0, 1)
	if err != nil || got != 2 {
		t.Fatalf("got %d, %v", got, err)
	}
}

func TestAllocateReturnsNonZeroZeroFilled(t *testing.T) {
	m := NewMemory(nil)
	id := m.Allocate(4)
	if id == 0 {
		t.Fatal("allocate must never return identifier 0")
	}
	for i := Platter(0); i < 4; i++ {
		v, err := m.Read(id, i)
		if err != nil || v != 0 {
			t.Fatalf("offset %d: got %d, %v", i, v, err)
		}
	}
}

func TestAbandonThenAllocateReusesLIFO(t *testing.T) {
	m := NewMemory(nil)
	a := m.Allocate(1)
	b := m.Allocate(1)
	if err := m.Abandon(b); err != nil {
		t.Fatal(err)
	}
	if err := m.Abandon(a); err != nil {
		t.Fatal(err)
	}
	// LIFO: a was abandoned last, so it must come back first.
	reused := m.Allocate(1)
	if reused != a {
		t.Fatalf("expected LIFO reuse of %d, got %d", a, reused)
	}
	reused2 := m.Allocate(1)
	if reused2 != b {
		t.Fatalf("expected LIFO reuse of %d, got %d", b, reused2)
	}
}

func TestAbandonZeroIsFatal(t *testing.T) {
	m := NewMemory(nil)
	if err := m.Abandon(0); err == nil {
		t.Fatal("expected fault abandoning identifier 0")
	}
}

func TestAbandonInactiveIsFatal(t *testing.T) {
	m := NewMemory(nil)
	if err := m.Abandon(99); err == nil {
		t.Fatal("expected fault abandoning an inactive identifier")
	}
}

func TestReadWriteOutOfBoundsIsFatal(t *testing.T) {
	m := NewMemory(nil)
	id := m.Allocate(2)
	if _, err := m.Read(id, 2); err == nil {
		t.Fatal("expected fault reading out of bounds")
	}
	if err := m.Write(id, 2, 1); err == nil {
		t.Fatal("expected fault writing out of bounds")
	}
}

func TestReplaceProgramDeepCopies(t *testing.T) {
	m := NewMemory([]Platter{0})
	src := m.Allocate(2)
	m.Write(src, 0, 10)
	m.Write(src, 1, 20)

	if err := m.ReplaceProgram(src); err != nil {
		t.Fatal(err)
	}
	if len(m.Program()) != 2 || m.Program()[0] != 10 || m.Program()[1] != 20 {
		t.Fatalf("got %v", m.Program())
	}

	// Mutating the source after the copy must not affect array 0.
	m.Write(src, 0, 999)
	if m.Program()[0] != 10 {
		t.Fatalf("array 0 mutated after source changed: %v", m.Program())
	}
}

func TestReplaceProgramZeroIsNoOp(t *testing.T) {
	m := NewMemory([]Platter{7, 8, 9})
	if err := m.ReplaceProgram(0); err != nil {
		t.Fatal(err)
	}
	if len(m.Program()) != 3 || m.Program()[0] != 7 {
		t.Fatalf("got %v", m.Program())
	}
}

func TestReplaceProgramFromUnallocatedIsFatal(t *testing.T) {
	m := NewMemory(nil)
	if err := m.ReplaceProgram(42); err == nil {
		t.Fatal("expected fault replacing program from an unallocated identifier")
	}
}

func TestStats(t *testing.T) {
	m := NewMemory([]Platter{0})
	m.Allocate(1)
	id2 := m.Allocate(1)
	m.Abandon(id2)

	active, high := m.Stats()
	if active != 2 { // array 0 plus the surviving allocation
		t.Errorf("expected 2 active arrays, got %d", active)
	}
	if high != 3 {
		t.Errorf("expected high-water id 3, got %d", high)
	}
}
