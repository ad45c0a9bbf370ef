// Command corrucalc fits corrugation profiles onto flat sheets, prices the
// bends and writes reports, drawings and bend programs.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
