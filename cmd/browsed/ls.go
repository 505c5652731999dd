package main

import (
	"encoding/json"
	"fmt"

	"browsed/internal/config"
	"browsed/internal/filter"

	"github.com/spf13/cobra"
)

func lsCmd() *cobra.Command {
	var (
		pattern string
		mode    string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "ls [directory]",
		Short: "Print a directory listing once",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != "" {
				m, err := filter.ParseMode(mode)
				if err != nil {
					return err
				}
				local := *cfg
				local.Filter = config.FilterConfig{Mode: string(m)}
				cfg = &local
			}

			s, err := newSession(args)
			if err != nil {
				return err
			}
			if err := s.Refresh(); err != nil {
				return err
			}
			if err := s.SetFilter(pattern); err != nil {
				return err
			}

			listing := s.ListCurrent(false)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(listing)
			}
			for _, it := range listing.Items {
				if it.IsDir {
					fmt.Fprintln(out, it.Name+"/")
				} else {
					fmt.Fprintln(out, it.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "only list names matching this pattern")
	cmd.Flags().StringVarP(&mode, "mode", "m", "", "pattern syntax: regex, glob or fuzzy (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the listing as JSON")
	return cmd
}
