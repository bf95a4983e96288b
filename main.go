// main is the entry point for the prove CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/brightops/prove/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// A failing gate already printed its report and a fatal abort was
		// already logged; anything else is an operational error that
		// still needs a line.
		if !errors.Is(err, cmd.ErrChecksFailed) && !errors.Is(err, cmd.ErrGateAborted) {
			fmt.Fprintln(os.Stderr, "❌", err)
		}
		os.Exit(1)
	}
}
