package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	api "github.com/oshokin/timedeck/internal/api/grpc/timedeck"
	"github.com/oshokin/timedeck/internal/domain/actor"
	"github.com/oshokin/timedeck/internal/domain/alarm"
)

func newAlarmCommand(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:   "alarm",
		Short: "List and manage alarms. Without a subcommand the alarms are listed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listAlarms(cmd, s)
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List alarms in schedule order.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return listAlarms(cmd, s)
			},
		},
		newAlarmAddCommand(s),
		newAlarmIDCommand(s, "toggle", "Enable or disable an alarm.", (deckClient).ToggleAlarm),
		newAlarmIDCommand(s, "delete", "Remove an alarm.", (deckClient).DeleteAlarm),
		&cobra.Command{
			Use:   "dismiss",
			Short: "Silence the ringing alarm.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				client, err := s.connect(cmd.Context())
				if err != nil {
					return err
				}

				resp, err := client.DismissAlarm(cmd.Context(), s.actor)
				if err != nil {
					return err
				}

				if !resp.Changed {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No alarm is ringing.")

					return nil
				}

				return printAlarm(cmd.OutOrStdout(), resp)
			},
		},
	)

	return root
}

func listAlarms(cmd *cobra.Command, s *session) error {
	client, err := s.connect(cmd.Context())
	if err != nil {
		return err
	}

	resp, err := client.ListAlarms(cmd.Context())
	if err != nil {
		return err
	}

	return printAlarms(cmd.OutOrStdout(), resp.Alarms, resp.Ringing)
}

func newAlarmAddCommand(s *session) *cobra.Command {
	var label, soundRef string

	cmd := &cobra.Command{
		Use:   "add <HH:MM> | <h:mm> <AM|PM>",
		Short: "Schedule an alarm in 24-hour or 12-hour form.",
		Example: `  timedeck-ctl alarm add 07:30 --label "Wake Up"
  timedeck-ctl alarm add 6:45 pm --sound "Zen Bells"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := addAlarmRequest(args)
			if err != nil {
				return err
			}

			req.Label = label
			req.Sound = soundRef

			client, err := s.connect(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := client.AddAlarm(cmd.Context(), s.actor, req)
			if err != nil {
				return err
			}

			return printAlarm(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "alarm label (default \"Alarm\")")
	cmd.Flags().StringVar(&soundRef, "sound", "", "catalog sound name or data URI")

	return cmd
}

// addAlarmRequest turns "HH:MM" or "h:mm AM|PM" into a request. Numeric
// fields are sent as typed; the server clamps them into range.
func addAlarmRequest(args []string) (*api.AddAlarmRequest, error) {
	if len(args) == 1 {
		if _, err := alarm.ParseEntry(args[0]); err != nil {
			return nil, err
		}

		return &api.AddAlarmRequest{Time: args[0]}, nil
	}

	hour, minute, err := alarm.SplitClock(args[0])
	if err != nil {
		return nil, err
	}

	if _, ok := alarm.ParseMeridiem(args[1]); !ok {
		return nil, fmt.Errorf("unknown meridiem %q, expected AM or PM", args[1])
	}

	return &api.AddAlarmRequest{Hour: hour, Minute: minute, Meridiem: args[1]}, nil
}

// newAlarmIDCommand builds a command that acts on one alarm id.
func newAlarmIDCommand(
	s *session,
	use, short string,
	call func(deckClient, context.Context, *actor.Actor, int64) (*api.AlarmResponse, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid alarm id %q", args[0])
			}

			client, err := s.connect(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := call(client, cmd.Context(), s.actor, id)
			if err != nil {
				return err
			}

			// Deletion answers without the removed alarm.
			if resp.Alarm == nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Alarm %d: %s done.\n", id, use)

				return nil
			}

			return printAlarm(cmd.OutOrStdout(), resp)
		},
	}
}
