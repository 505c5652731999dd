package main

import (
	"browsed/internal/tui"

	"github.com/spf13/cobra"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [directory]",
		Short: "Browse interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(args)
			if err != nil {
				return err
			}
			return tui.Run(s)
		},
	}
}
