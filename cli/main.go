// Package main is the entry point for the ormkit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ormkit/ormkit/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
