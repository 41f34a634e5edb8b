package main

import (
	"os"

	"github.com/covtrace/tracetriage/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
