// Package main is the entry point for the quantity-editor CLI.
package main

import (
	"os"

	"quantity-editor/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
