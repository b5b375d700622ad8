// Command um is the Universal Machine interpreter: um <program_file>.
package main

import (
	"log"
	"os"

	"github.com/grimdork/climate"

	"github.com/Urethramancer/um/vm"
)

// options is parsed by climate: the `flag` tags become optional flags, the
// `arg` tag is the one required positional argument (spec.md §6.3).
type options struct {
	Trace        bool   `flag:"trace" help:"log one line per executed instruction"`
	DumpOnSignal bool   `flag:"dump-on-signal" help:"write memdump.txt before exiting on a signal"`
	MemStats     bool   `flag:"memstats" help:"print array pool stats after the machine halts"`
	Program      string `arg:"program" help:"packed UM binary to run"`
}

// Exit codes for the CLI-level conditions. Missing arguments and an invalid
// program file are detected here, before a machine exists, so they get
// their own codes; vm.FaultInvalidProgram is not used for them. Faults from
// the machine exit with exitFault plus their vm.Kind value.
const (
	exitOK = iota
	exitMissingArgs
	exitInvalidProgramFile
	exitFault // offset added to the vm.Kind value below
)

func main() {
	logger := log.New(os.Stderr, "", 0)

	var opt options
	if err := climate.Parse(&opt); err != nil || opt.Program == "" {
		logger.Println("usage: um [-trace] [-dump-on-signal] [-memstats] <program_file>")
		os.Exit(exitMissingArgs)
	}

	data, err := os.ReadFile(opt.Program)
	if err != nil {
		logger.Printf("um: %s", err)
		os.Exit(exitInvalidProgramFile)
	}

	prog, err := vm.BytesToProgram(data)
	if err != nil {
		logger.Printf("um: %s", err)
		os.Exit(exitInvalidProgramFile)
	}

	m := vm.New(prog, os.Stdin, os.Stdout)
	m.Logger = logger
	if opt.Trace {
		m.Trace = func(cycle uint64, pc vm.Platter, inst vm.Instruction) {
			logger.Printf("%6d pc=%-6d %s", cycle, pc, inst)
		}
	}
	vm.InstallSignalHandler(m, opt.DumpOnSignal)

	runErr := m.Run()

	if opt.MemStats {
		active, highWater := m.Mem.Stats()
		logger.Printf("um: %d active arrays, high-water id %d, %d cycles", active, highWater, m.Cycles)
	}

	if runErr == nil {
		os.Exit(exitOK)
	}

	logger.Printf("um: %s", runErr)
	if err := vm.WriteDump(m, "memdump.txt"); err != nil {
		logger.Printf("um: failed to write memdump: %s", err)
	}

	fault, ok := vm.AsFault(runErr)
	if !ok {
		os.Exit(exitFault)
	}
	os.Exit(exitFault + int(fault.Kind))
}
