package main

import (
	"fmt"
	"os"

	"browsed/internal/log"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	if err := execute(NewRootCmd()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs cmd and releases the log file configured while it ran.
func execute(cmd *cobra.Command) error {
	defer func() {
		if err := log.Default().Close(); err != nil {
			fmt.Fprintln(os.Stderr, "closing log file:", err)
		}
	}()
	return cmd.Execute()
}
