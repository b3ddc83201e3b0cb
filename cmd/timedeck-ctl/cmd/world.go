package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	api "github.com/oshokin/timedeck/internal/api/grpc/timedeck"
)

func newWorldCommand(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:   "world",
		Short: "Show and edit the world clock board. Without a subcommand the board is listed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWorld(cmd, s, &api.WorldRequest{Action: api.WorldList})
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the board in display order.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runWorld(cmd, s, &api.WorldRequest{Action: api.WorldList})
			},
		},
		&cobra.Command{
			Use:     "add <timezone>",
			Short:   "Add an IANA timezone, e.g. Asia/Tokyo.",
			Args:    cobra.ExactArgs(1),
			Example: "  timedeck-ctl world add Europe/Berlin",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWorld(cmd, s, &api.WorldRequest{Action: api.WorldAdd, Timezone: args[0]})
			},
		},
		&cobra.Command{
			Use:     "remove <id>",
			Aliases: []string{"rm"},
			Short:   "Remove a city. The local clock cannot be removed.",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runWorld(cmd, s, &api.WorldRequest{Action: api.WorldRemove, ID: args[0]})
			},
		},
		&cobra.Command{
			Use:   "rename <id> <name>",
			Short: "Give a city a custom name.",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				name := strings.Join(args[1:], " ")

				return runWorld(cmd, s, &api.WorldRequest{Action: api.WorldRename, ID: args[0], Name: name})
			},
		},
		&cobra.Command{
			Use:   "move <id> <index>",
			Short: "Move a city to a zero-based position.",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				index, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid index %q", args[1])
				}

				return runWorld(cmd, s, &api.WorldRequest{Action: api.WorldMove, ID: args[0], Index: index})
			},
		},
		newWorldSettingsCommand(s),
	)

	return root
}

func newWorldSettingsCommand(s *session) *cobra.Command {
	var settings api.WorldClockSettings

	cmd := &cobra.Command{
		Use:     "settings",
		Short:   "Show or change how readings are rendered.",
		Example: "  timedeck-ctl world settings --24h --date=false",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := s.connect(cmd.Context())
			if err != nil {
				return err
			}

			current, err := client.World(cmd.Context(), s.actor, &api.WorldRequest{Action: api.WorldList})
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("24h") && !flags.Changed("offset") && !flags.Changed("date") {
				return printWorldSettings(cmd.OutOrStdout(), current.Settings)
			}

			next := current.Settings

			if flags.Changed("24h") {
				next.Is24Hour = settings.Is24Hour
			}

			if flags.Changed("offset") {
				next.ShowOffset = settings.ShowOffset
			}

			if flags.Changed("date") {
				next.ShowDate = settings.ShowDate
			}

			resp, err := client.World(cmd.Context(), s.actor, &api.WorldRequest{Action: api.WorldSettings, Settings: &next})
			if err != nil {
				return err
			}

			return printWorldSettings(cmd.OutOrStdout(), resp.Settings)
		},
	}

	cmd.Flags().BoolVar(&settings.Is24Hour, "24h", false, "render times in 24-hour form")
	cmd.Flags().BoolVar(&settings.ShowOffset, "offset", false, "show the offset from local time")
	cmd.Flags().BoolVar(&settings.ShowDate, "date", false, "show the weekday")

	return cmd
}

func runWorld(cmd *cobra.Command, s *session, req *api.WorldRequest) error {
	client, err := s.connect(cmd.Context())
	if err != nil {
		return err
	}

	resp, err := client.World(cmd.Context(), s.actor, req)
	if err != nil {
		return err
	}

	return printCities(cmd.OutOrStdout(), resp.Cities)
}
