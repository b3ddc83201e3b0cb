package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/timedeck/internal/config"
	"github.com/oshokin/timedeck/internal/service/server"
	"github.com/oshokin/timedeck/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// stateFile overrides the storage path from the configuration.
	stateFile string
	// logLevel overrides the log level from the configuration.
	logLevel string
	// allowMultiple skips the single-instance check.
	allowMultiple bool

	// rootCmd represents the base command for running the timedeck server.
	rootCmd = &cobra.Command{
		Use:   "timedeck-server [listen-address]",
		Short: "Run the timedeck stopwatch, timer, alarm and world clock server.",
		Long: `Starts the timedeck server that owns the stopwatch, the countdown timer,
the alarm scheduler and the world clock board.

The gRPC API listens on the port from ServerAddress in the configuration file
(e.g., :7450). A listen address can be provided as argument to override it
(e.g., :9090, 0.0.0.0:7450). When http_addr is set, a read-only JSON status
view and Prometheus metrics are served there.

Alarms, world clocks and the timer sound survive restarts in the configured
storage. Only one server runs per host unless --allow-multiple is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				StateFile:     stateFile,
				LogLevel:      logLevel,
				AllowMultiple: allowMultiple,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the timedeck-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&stateFile, "state-file", "s", "", "override the storage path from the configuration")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "override the log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&allowMultiple, "allow-multiple", false, "skip the single-instance check")
}
