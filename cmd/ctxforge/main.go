// Package main provides the entry point for the ctxforge CLI.
package main

import (
	"os"

	"github.com/Aman-CERP/ctxforge/cmd/ctxforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
