// Package main is the entry point for the loggy TUI.
package main

import (
	"fmt"
	"os"

	"github.com/gempir/loggy/internal/logtui"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var _ = []string{commit, date}

func main() {
	if err := logtui.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
