package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	api "github.com/oshokin/timedeck/internal/api/grpc/timedeck"
)

// newTable returns a tabwriter aligned the same way for every listing.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printStatus(w io.Writer, st *api.StatusResponse) error {
	tw := newTable(w)

	_, _ = fmt.Fprintf(tw, "Server\t%s\n", st.Version)
	_, _ = fmt.Fprintf(tw, "Now\t%s\n", st.Now.Format(time.RFC3339))
	_, _ = fmt.Fprintf(tw, "Stopwatch\t%s\n", stopwatchLine(st.Stopwatch))
	_, _ = fmt.Fprintf(tw, "Timer\t%s\n", timerLine(st.Timer))
	_, _ = fmt.Fprintf(tw, "Alarms\t%s\n", alarmsLine(st.Alarms, st.Ringing))

	if err := tw.Flush(); err != nil {
		return err
	}

	if len(st.World) == 0 {
		return nil
	}

	_, _ = fmt.Fprintln(w)

	return printCities(w, st.World)
}

// watchLine condenses a status into one refreshable line.
func watchLine(st *api.StatusResponse) string {
	parts := []string{
		st.Now.Format(time.TimeOnly),
		"stopwatch " + stopwatchLine(st.Stopwatch),
		"timer " + timerLine(st.Timer),
	}

	if st.Ringing != nil {
		parts = append(parts, fmt.Sprintf("RINGING %s (%s)", st.Ringing.Label, st.Ringing.Time12))
	}

	return strings.Join(parts, "  ")
}

func stopwatchLine(s api.StopwatchState) string {
	state := "stopped"
	if s.Running {
		state = "running"
	}

	line := s.Display + " " + state
	if n := len(s.Laps); n > 0 {
		line += fmt.Sprintf(", %d laps", n)
	}

	return line
}

func timerLine(t api.TimerState) string {
	return fmt.Sprintf("%s %s, sound %s", t.Phase, t.Display, t.Sound)
}

func alarmsLine(alarms []api.Alarm, ringing *api.Alarm) string {
	enabled := 0

	for _, a := range alarms {
		if a.Enabled {
			enabled++
		}
	}

	line := fmt.Sprintf("%d configured, %d enabled", len(alarms), enabled)
	if ringing != nil {
		line += fmt.Sprintf(", ringing: %s (%s)", ringing.Label, ringing.Time12)
	}

	return line
}

func printStopwatch(w io.Writer, s api.StopwatchState) error {
	_, _ = fmt.Fprintln(w, stopwatchLine(s))

	if len(s.Laps) == 0 {
		return nil
	}

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "LAP\tSPLIT")

	for _, lap := range s.Laps {
		_, _ = fmt.Fprintf(tw, "%d\t%s\n", lap.Index, lap.Display)
	}

	return tw.Flush()
}

func printTimer(w io.Writer, t api.TimerState) error {
	tw := newTable(w)

	_, _ = fmt.Fprintf(tw, "Phase\t%s\n", t.Phase)
	_, _ = fmt.Fprintf(tw, "Display\t%s\n", t.Display)
	_, _ = fmt.Fprintf(tw, "Input\t%s\n", t.Input)
	_, _ = fmt.Fprintf(tw, "Sound\t%s\n", t.Sound)

	return tw.Flush()
}

func printAlarms(w io.Writer, alarms []api.Alarm, ringing *api.Alarm) error {
	if len(alarms) == 0 {
		_, _ = fmt.Fprintln(w, "No alarms.")

		return nil
	}

	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tTIME\tLABEL\tENABLED\tSOUND\t")

	for _, a := range alarms {
		mark := ""
		if ringing != nil && ringing.ID == a.ID {
			mark = "ringing"
		}

		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%s\t%s\n", a.ID, a.Time12, a.Label, a.Enabled, a.Sound, mark)
	}

	return tw.Flush()
}

func printAlarm(w io.Writer, resp *api.AlarmResponse) error {
	if resp.Alarm == nil {
		_, _ = fmt.Fprintln(w, "No alarm affected.")

		return nil
	}

	a := resp.Alarm
	_, err := fmt.Fprintf(w, "%d %s %q enabled=%t sound=%s\n", a.ID, a.Time12, a.Label, a.Enabled, a.Sound)

	return err
}

func printCities(w io.Writer, cities []api.CityReading) error {
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tCITY\tTIME\tDAY\tOFFSET")

	for _, c := range cities {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Time, c.Weekday, c.Offset)
	}

	return tw.Flush()
}

func printWorldSettings(w io.Writer, s api.WorldClockSettings) error {
	_, err := fmt.Fprintf(w, "24-hour=%t offset=%t date=%t\n", s.Is24Hour, s.ShowOffset, s.ShowDate)

	return err
}
