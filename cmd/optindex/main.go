// Package main provides the entry point for the optindex CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/optindex/cmd/optindex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
