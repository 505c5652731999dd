package main

import (
	"fmt"

	"browsed/internal/config"
	"browsed/internal/log"
	"browsed/internal/session"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *log.Logger
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var (
		debug   bool
		logJSON bool
		logFile string
	)

	rootCmd := &cobra.Command{
		Use:   "browsed",
		Short: "A directory browsing session engine",
		Long: `browsed browses directories, marks files across locations, filters
listings by name and copies marked files in one batch. It can run as a
terminal UI, as a websocket bridge for a separate UI process, or as a
line-oriented command shell.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			if cmd.Flags().Changed("debug") && debug {
				cfg.Logging.Level = "debug"
			}
			if cmd.Flags().Changed("log-json") {
				cfg.Logging.JSON = logJSON
			}
			if cmd.Flags().Changed("log-file") {
				cfg.Logging.File = logFile
			}

			opts := []log.Option{log.WithOutput(cmd.ErrOrStderr())}
			if cfg.Logging.JSON {
				opts = append(opts, log.WithJSON())
			}
			if cfg.Logging.File != "" {
				opts = append(opts, log.WithFile(cfg.Logging.File))
			}
			log.Configure(opts...)
			log.SetDebug(cfg.IsDebug())
			logger = log.Default()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/browsed/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write logs as JSON")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file instead of stderr")

	rootCmd.AddCommand(tuiCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(shellCmd())
	rootCmd.AddCommand(lsCmd())
	rootCmd.AddCommand(configCmd())

	return rootCmd
}

// newSession starts a session at the first argument, if any.
func newSession(args []string) (*session.Session, error) {
	opts := []session.Option{session.WithLogger(logger)}
	if len(args) > 0 {
		opts = append(opts, session.WithStartDir(args[0]))
	}
	return session.New(cfg, opts...)
}
