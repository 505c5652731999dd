package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"browsed/internal/command"

	"github.com/spf13/cobra"
)

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell [directory]",
		Short: "Run commands read line by line from stdin",
		Long: `Shell reads one command per line and prints one JSON response per line.
A line is either a JSON request or "<command> [argument]", for example:

  list_files
  mark_file 2
  filter_by_pattern \.png$
  copy_marked_to /tmp/out

Index commands take a number, optionally followed by a listing generation.

Commands: ` + strings.Join(command.Names, ", "),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(args)
			if err != nil {
				return err
			}
			d := command.NewDispatcher(s, logger)
			defer d.Close()

			return runShell(cmd, d, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runShell(cmd *cobra.Command, d *command.Dispatcher, in io.Reader, out io.Writer) error {
	enc := json.NewEncoder(out)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		req, err := parseLine(line)
		var resp command.Response
		if err != nil {
			resp = command.Response{Command: req.Command, Error: err.Error(), ErrorKind: "unknown"}
		} else if resp, err = d.Dispatch(cmd.Context(), req); err != nil {
			return err
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// parseLine turns a shell line into a request.
func parseLine(line string) (command.Request, error) {
	var req command.Request
	if strings.HasPrefix(line, "{") {
		err := json.Unmarshal([]byte(line), &req)
		return req, err
	}

	name, arg, _ := strings.Cut(line, " ")
	req.Command = name
	arg = strings.TrimSpace(arg)

	switch name {
	case command.GetPreview, command.GetMarkedPreview, command.MarkFile, command.NavigateInto:
		fields := strings.Fields(arg)
		if len(fields) == 0 {
			return req, fmt.Errorf("%s needs an index", name)
		}
		index, err := strconv.Atoi(fields[0])
		if err != nil {
			return req, fmt.Errorf("bad index %q", fields[0])
		}
		req.Index = &index
		if len(fields) > 1 {
			gen, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return req, fmt.Errorf("bad generation %q", fields[1])
			}
			req.Generation = &gen
		}
	case command.NavigateToPath, command.CopyMarkedTo:
		req.Path = arg
	case command.FilterByPattern:
		req.Pattern = arg
	}
	return req, nil
}
