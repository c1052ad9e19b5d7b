// Package main is the entry point for the gli CLI.
package main

import (
	"fmt"
	"os"

	"github.com/danielolaszy/gli/cmd"
	"github.com/danielolaszy/gli/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
