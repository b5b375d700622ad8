package assembler_test

import (
	"testing"

	"github.com/Urethramancer/um/assembler"
	"github.com/Urethramancer/um/vm"
)

// decodeAll decodes a packed binary into its instructions, for assertions.
func decodeAll(t *testing.T, code []byte) []vm.Instruction {
	t.Helper()
	prog, err := vm.BytesToProgram(code)
	if err != nil {
		t.Fatalf("bytes to program: %s", err)
	}
	out := make([]vm.Instruction, len(prog))
	for i, w := range prog {
		out[i] = vm.Decode(w)
	}
	return out
}

func TestAssembleStandardInstruction(t *testing.T) {
	code, err := assembler.New().Assemble("add 0 1 2\n")
	if err != nil {
		t.Fatal(err)
	}
	insts := decodeAll(t, code)
	if len(insts) != 1 || insts[0] != (vm.Instruction{Op: vm.OpAdd, A: 0, B: 1, C: 2}) {
		t.Fatalf("got %+v", insts)
	}
}

func TestAssemblePut(t *testing.T) {
	code, err := assembler.New().Assemble("put 3 42\n")
	if err != nil {
		t.Fatal(err)
	}
	insts := decodeAll(t, code)
	if len(insts) != 1 || insts[0] != (vm.Instruction{Op: vm.OpPut, A: 3, Value: 42}) {
		t.Fatalf("got %+v", insts)
	}
}

func TestAssembleSkipsCommentsAndBlankLines(t *testing.T) {
	code, err := assembler.New().Assemble("# a comment\n\nhalt\n   \n# another\n")
	if err != nil {
		t.Fatal(err)
	}
	insts := decodeAll(t, code)
	if len(insts) != 1 || insts[0].Op != vm.OpHalt {
		t.Fatalf("got %+v", insts)
	}
}

func TestAssembleHexAndCharLiterals(t *testing.T) {
	code, err := assembler.New().Assemble("put 0 0x2a\nput 1 'A'\n")
	if err != nil {
		t.Fatal(err)
	}
	insts := decodeAll(t, code)
	if insts[0].Value != 42 || insts[1].Value != 'A' {
		t.Fatalf("got %+v", insts)
	}
}

func TestAssembleLabelResolution(t *testing.T) {
	// "start" names offset 1 (the add instruction); the put at offset 0
	// loads that offset as its value so a hand-written loader could jump
	// there via load-program.
	code, err := assembler.New().Assemble(`
		put 0 start
		start:
		add 1 2 3
		halt
	`)
	if err != nil {
		t.Fatal(err)
	}
	insts := decodeAll(t, code)
	if insts[0] != (vm.Instruction{Op: vm.OpPut, A: 0, Value: 1}) {
		t.Fatalf("label did not resolve to offset 1: %+v", insts[0])
	}
}

func TestAssembleUnknownMnemonicReportsLine(t *testing.T) {
	_, err := assembler.New().Assemble("add 0 1 2\nbogus 0 0 0\n")
	var aerr *assembler.Error
	if err == nil {
		t.Fatal("expected error")
	}
	if e, ok := err.(*assembler.Error); ok {
		aerr = e
	} else {
		t.Fatalf("expected *assembler.Error, got %T", err)
	}
	if aerr.Line != 2 {
		t.Fatalf("expected error on line 2, got %d", aerr.Line)
	}
}

func TestAssembleRejectsOutOfRangeRegister(t *testing.T) {
	if _, err := assembler.New().Assemble("add 8 0 0\n"); err == nil {
		t.Fatal("expected error for register index 8")
	}
}

func TestAssembleRejectsWrongArity(t *testing.T) {
	if _, err := assembler.New().Assemble("halt 0\n"); err == nil {
		t.Fatal("expected error for halt with an operand")
	}
	if _, err := assembler.New().Assemble("put 0\n"); err == nil {
		t.Fatal("expected error for put missing its value")
	}
}

func TestAssembleAllMnemonics(t *testing.T) {
	src := "cmove 0 1 2\n" +
		"get 0 1 2\n" +
		"set 0 1 2\n" +
		"add 0 1 2\n" +
		"mult 0 1 2\n" +
		"div 0 1 2\n" +
		"nand 0 1 2\n" +
		"halt\n" +
		"allocate 0 1 2\n" +
		"free 0 1 2\n" +
		"out 0 1 2\n" +
		"in 0 1 2\n" +
		"load 0 1 2\n" +
		"put 0 2\n"
	code, err := assembler.New().Assemble(src)
	if err != nil {
		t.Fatal(err)
	}
	insts := decodeAll(t, code)
	if len(insts) != 14 {
		t.Fatalf("expected 14 instructions, got %d", len(insts))
	}
	for op := vm.OpCMove; op <= vm.OpPut; op++ {
		if insts[op].Op != op {
			t.Errorf("instruction %d: expected opcode %d, got %d", op, op, insts[op].Op)
		}
	}
}
