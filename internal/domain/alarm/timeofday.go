package alarm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeOfDay is returned when an "HH:MM" string cannot be parsed.
var ErrInvalidTimeOfDay = errors.New("invalid time of day")

// TimeOfDay is a wall-clock time with minute resolution.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay clamps hour to 0-23 and minute to 0-59.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{
		Hour:   clampInt(hour, 0, 23),
		Minute: clampInt(minute, 0, 59),
	}
}

// TimeOfDayOf truncates t to its hour and minute in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// SplitClock splits an "H:MM" string into its numeric fields without any
// range check.
func SplitClock(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	hour, err = strconv.Atoi(hh)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	minute, err = strconv.Atoi(mm)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	return hour, minute, nil
}

// ParseEntry parses user-entered "HH:MM" and clamps each field into range,
// so "07:75" becomes 07:59 and "24:10" becomes 23:10.
func ParseEntry(s string) (TimeOfDay, error) {
	hour, minute, err := SplitClock(s)
	if err != nil {
		return TimeOfDay{}, err
	}

	return NewTimeOfDay(hour, minute), nil
}

// ParseTimeOfDay parses a stored 24-hour "HH:MM" string. Out-of-range fields
// are rejected; use ParseEntry for user input.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hour, minute, err := SplitClock(s)
	if err != nil {
		return TimeOfDay{}, err
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// String renders the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Meridiem is the AM/PM half of a 12-hour clock.
type Meridiem int

const (
	// AM is midnight to noon.
	AM Meridiem = iota
	// PM is noon to midnight.
	PM
)

// String returns "AM" or "PM".
func (m Meridiem) String() string {
	if m == PM {
		return "PM"
	}

	return "AM"
}

// ParseMeridiem accepts "am" or "pm" in any case.
func ParseMeridiem(s string) (Meridiem, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AM":
		return AM, true
	case "PM":
		return PM, true
	default:
		return AM, false
	}
}

// From12Hour converts a 12-hour clock reading to a TimeOfDay.
// 12 AM is hour 0 and 12 PM is hour 12. An hour outside 1-12 is clamped to 12
// and a minute outside 0-59 to the nearest bound.
func From12Hour(hour, minute int, m Meridiem) TimeOfDay {
	if hour < 1 || hour > 12 {
		hour = 12
	}

	switch {
	case m == AM && hour == 12:
		hour = 0
	case m == PM && hour < 12:
		hour += 12
	}

	return NewTimeOfDay(hour, minute)
}

// To12Hour converts t to a 12-hour clock reading.
func (t TimeOfDay) To12Hour() (hour, minute int, m Meridiem) {
	m = AM
	if t.Hour >= 12 {
		m = PM
	}

	hour = t.Hour % 12
	if hour == 0 {
		hour = 12
	}

	return hour, t.Minute, m
}

// Format12 renders the time as "hh:MM AM".
func (t TimeOfDay) Format12() string {
	hour, minute, m := t.To12Hour()

	return fmt.Sprintf("%02d:%02d %s", hour, minute, m)
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
