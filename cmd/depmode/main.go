package main

import (
	"os"

	"github.com/danieljhkim/depmode/internal/cli"
)

var version = "dev"

func main() {
	cli.SetVersion(version)

	// Execute renders fatal errors itself, diagnostics included.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
