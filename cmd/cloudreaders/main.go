// cloudreaders reconstructs plausible pen-stroke motion data from
// static artwork and exports it as an RCP 2025 sensor-data package.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
