// Command wifiview shows the Wi-Fi profiles saved on this machine, with
// their passwords, in a terminal UI or as a plain table.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Application crashed: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := newRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
