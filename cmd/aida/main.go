// Package main is the entry point for the aida CLI tool.
package main

import (
	"os"

	"github.com/aidahq/aida/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
