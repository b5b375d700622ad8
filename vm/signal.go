package vm

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// InstallSignalHandler arranges for SIGINT/SIGTERM to end the process with
// exit code 0 after printing a one-line diagnostic to stderr and, if
// dumpOnSignal is set, writing a memdump.txt snapshot of m first. This is an
// external collaborator contract (spec.md §4.5), not a machine opcode: an
// immediate exit from the handler is sufficient since the machine owns no
// externally shared resources that need orderly shutdown.
func InstallSignalHandler(m *Machine, dumpOnSignal bool) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-ch
		fmt.Fprintf(os.Stderr, "um: received %s, stopping\n", sig)
		if dumpOnSignal {
			if err := WriteDump(m, "memdump.txt"); err != nil {
				fmt.Fprintf(os.Stderr, "um: failed to write memdump: %s\n", err)
			}
		}
		os.Exit(0)
	}()
}
