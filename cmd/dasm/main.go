// Command dasm disassembles a packed Universal Machine binary back into
// mnemonic syntax: dasm <binary> [<outfile>].
package main

import (
	"fmt"
	"os"

	"github.com/grimdork/climate"

	"github.com/Urethramancer/um/disassembler"
)

// Binary is the one required positional argument. The trailing outfile is
// optional, and climate's handling of an optional arg-tagged field is
// unverified (no network access to confirm its behavior), so it is read
// directly off os.Args below instead of risking climate.Parse rejecting a
// one-argument invocation outright.
type options struct {
	Binary string `arg:"binary" help:"packed UM binary to disassemble"`
}

func main() {
	var opt options
	if err := climate.Parse(&opt); err != nil || opt.Binary == "" {
		fmt.Fprintln(os.Stderr, "usage: dasm <binary> [<outfile>]")
		os.Exit(1)
	}

	outFile := "output.uma"
	if len(os.Args) > 2 {
		outFile = os.Args[len(os.Args)-1]
	}

	code, err := os.ReadFile(opt.Binary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dasm: %s\n", err)
		os.Exit(1)
	}

	text, err := disassembler.Disassemble(code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dasm: %s\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outFile, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "dasm: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Disassembly written to %s\n", outFile)
}
