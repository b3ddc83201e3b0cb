package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	api "github.com/oshokin/timedeck/internal/api/grpc/timedeck"
)

func newStopwatchCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:       "stopwatch [show|start|stop|lap|reset]",
		Aliases:   []string{"sw"},
		Short:     "Show or drive the stopwatch.",
		ValidArgs: []string{"show", "start", "stop", "lap", "reset"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := api.StopwatchShow
			if len(args) > 0 {
				action = api.StopwatchAction(args[0])
			}

			client, err := s.connect(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := client.Stopwatch(cmd.Context(), s.actor, action)
			if err != nil {
				return err
			}

			if action != api.StopwatchShow && !resp.Changed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "stopwatch %s: nothing to do\n", action)
			}

			return printStopwatch(cmd.OutOrStdout(), resp.State)
		},
	}
}
