package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/timedeck/internal/logger"
)

// defaultWatchInterval is the refresh period of the watch command.
const defaultWatchInterval = time.Second

var errNotServing = errors.New("server is not serving")

func newStatusCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show every facility of the server at once.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.connect(cmd.Context())
			if err != nil {
				return err
			}

			healthy, err := client.Healthy(cmd.Context())
			if err != nil {
				return err
			}

			if !healthy {
				return errNotServing
			}

			st, err := client.Status(cmd.Context())
			if err != nil {
				return err
			}

			return printStatus(cmd.OutOrStdout(), st)
		},
	}
}

func newWatchCommand(s *session) *cobra.Command {
	var (
		interval time.Duration
		count    int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a status line at a fixed interval until interrupted.",
		Long: `Polls the server and prints one line per refresh with the stopwatch,
the timer and any ringing alarm. Failed polls are logged and retried.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := logger.WithName(cmd.Context(), "watch")

			client, err := s.connect(ctx)
			if err != nil {
				return err
			}

			if interval <= 0 {
				interval = defaultWatchInterval
			}

			printed := 0

			// refresh prints one line and reports whether the count is reached.
			refresh := func() bool {
				st, statusErr := client.Status(ctx)
				if statusErr != nil {
					logger.ErrorKV(ctx, "Status failed", "error", statusErr)

					return false
				}

				_, _ = fmt.Fprintln(cmd.OutOrStdout(), watchLine(st))
				printed++

				return count > 0 && printed >= count
			}

			if refresh() {
				return nil
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					if refresh() {
						return nil
					}
				}
			}
		},
	}

	cmd.Flags().DurationVarP(&interval, "interval", "i", defaultWatchInterval, "refresh interval")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "stop after this many lines (0 runs until interrupted)")

	return cmd
}
