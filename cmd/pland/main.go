package main

import (
	"fmt"
	"os"

	"github.com/saurabhkm/pland/cmd/pland/commands"
)

// Version is set during build.
var version = "dev"

func main() {
	commands.SetVersionInfo(version)
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
