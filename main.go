package main

import (
	"fmt"
	"os"

	"github.com/bnema/viewkit/cmd"
)

// Set by the linker
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	if version != "" {
		cmd.Version = version
	}
	if commit != "" {
		cmd.Commit = commit
	}
	if date != "" {
		cmd.Date = date
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
