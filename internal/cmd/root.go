// Package cmd wires the command line interface.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/chrishannam/Telemetry-F1-2021/internal/config"
	"github.com/chrishannam/Telemetry-F1-2021/internal/logging"

	"go.uber.org/zap"
)

var (
	flagHost     string
	flagPort     int
	flagLogLevel string
	flagLogFile  string
)

// NewRootCmd builds the root command and attaches the subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "f1telemetry",
		Short:         "Receive and decode F1 2021 UDP telemetry",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flagHost, "host", "", "interface to bind the UDP listener to (default all interfaces)")
	cmd.PersistentFlags().IntVar(&flagPort, "port", 0, "UDP port to listen on (default 20777)")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "also write logs to this rotated file")

	cmd.AddCommand(NewRecordCmd())
	cmd.AddCommand(NewMCPCmd())
	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig merges environment configuration with explicit flag overrides.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()
	if cmd.Flags().Changed("host") {
		cfg.Listen.Host = flagHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Listen.Port = flagPort
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
	return cfg
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.File)
}
