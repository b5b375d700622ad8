// Command asm assembles Universal Machine source into the packed binary
// format: asm <source> [<outfile>].
package main

import (
	"fmt"
	"os"

	"github.com/grimdork/climate"

	"github.com/Urethramancer/um/assembler"
)

// options is parsed by climate: Source is the one required positional
// argument. The trailing outfile is optional, and climate's handling of an
// optional arg-tagged field is unverified (no network access to confirm
// its behavior), so it is read directly off os.Args below instead of
// risking climate.Parse rejecting a one-argument invocation outright.
type options struct {
	Source string `arg:"source" help:"assembly source file"`
}

func main() {
	var opt options
	if err := climate.Parse(&opt); err != nil || opt.Source == "" {
		fmt.Fprintln(os.Stderr, "usage: asm <source> [<outfile>]")
		os.Exit(1)
	}

	outFile := "output.umz"
	if len(os.Args) > 2 {
		outFile = os.Args[len(os.Args)-1]
	}

	src, err := os.ReadFile(opt.Source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asm: %s\n", err)
		os.Exit(1)
	}

	asm := assembler.New()
	code, err := asm.Assemble(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "asm: %s\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outFile, code, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "asm: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d bytes to %s\n", len(code), outFile)
}
