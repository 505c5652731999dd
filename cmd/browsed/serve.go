package main

import (
	"os"
	"os/signal"
	"syscall"

	"browsed/internal/bridge"
	"browsed/internal/command"
	"browsed/internal/log"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [directory]",
		Short: "Serve the session to a UI process over a websocket",
		Long: `Serve starts an HTTP server with a websocket endpoint at /ws. Each text
message is a JSON command such as {"id":"1","command":"list_files"} and is
answered with one JSON response.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.Server.Addr
			}

			s, err := newSession(args)
			if err != nil {
				return err
			}
			d := command.NewDispatcher(s, logger)
			defer d.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.With(log.F("location", s.CurrentPath()), log.F("session", s.ID())).Info("session ready")
			h := bridge.NewHandler(d, cfg.Server.AllowedOrigins, logger)
			return bridge.Serve(ctx, addr, bridge.NewMux(h), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
