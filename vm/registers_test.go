package vm

import "testing"

func TestRegistersGetSet(t *testing.T) {
	var r Registers
	r.Set(3, 42)
	if r.Get(3) != 42 {
		t.Fatalf("got %d", r.Get(3))
	}
	if r.Get(0) != 0 {
		t.Fatalf("expected register 0 to start at zero, got %d", r.Get(0))
	}
}
