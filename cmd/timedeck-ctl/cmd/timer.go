package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	api "github.com/oshokin/timedeck/internal/api/grpc/timedeck"
)

// timerActions maps command words to countdown actions and whether they
// take a value.
//
//nolint:gochecknoglobals // Read-only table.
var timerActions = map[string]struct {
	action   api.TimerAction
	hasValue bool
}{
	"show":    {action: api.TimerShow},
	"digit":   {action: api.TimerDigit, hasValue: true},
	"delete":  {action: api.TimerDelete},
	"preset":  {action: api.TimerPreset, hasValue: true},
	"set":     {action: api.TimerInput, hasValue: true},
	"start":   {action: api.TimerStart},
	"pause":   {action: api.TimerPause},
	"resume":  {action: api.TimerResume},
	"reset":   {action: api.TimerReset},
	"dismiss": {action: api.TimerDismiss},
	"sound":   {action: api.TimerSound, hasValue: true},
}

func newTimerCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "timer [action] [value]",
		Short: "Show or drive the countdown timer.",
		Long: `Actions:
  show              print the timer (default)
  digit <0-9>       append a digit to the HHMMSS input
  delete            remove the last input digit
  preset <name>     load a preset: 1m, 5m, 10m or 30m
  set <digits>      replace the input, e.g. 130 for 1m30s
  start|pause|resume|reset
  dismiss           silence a finished timer
  sound <name|uri>  choose the completion sound`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := "show"
			if len(args) > 0 {
				word = args[0]
			}

			entry, ok := timerActions[word]
			if !ok {
				return fmt.Errorf("unknown timer action %q", word)
			}

			var value string

			switch {
			case entry.hasValue && len(args) != 2:
				return fmt.Errorf("timer %s needs a value", word)
			case !entry.hasValue && len(args) > 1:
				return fmt.Errorf("timer %s takes no value", word)
			case entry.hasValue:
				value = args[1]
			}

			client, err := s.connect(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := client.Timer(cmd.Context(), s.actor, entry.action, value)
			if err != nil {
				return err
			}

			if entry.action != api.TimerShow && !resp.Changed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timer %s: nothing to do\n", word)
			}

			return printTimer(cmd.OutOrStdout(), resp.State)
		},
	}
}
