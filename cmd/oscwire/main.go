// Command oscwire encodes, decodes, matches, sends and receives OSC packets.
package main

import (
	"os"
)

func main() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
