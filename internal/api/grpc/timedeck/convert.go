package timedeck

import (
	"time"

	"github.com/oshokin/timedeck/internal/domain/actor"
	"github.com/oshokin/timedeck/internal/domain/alarm"
	"github.com/oshokin/timedeck/internal/domain/countdown"
	"github.com/oshokin/timedeck/internal/domain/stopwatch"
	"github.com/oshokin/timedeck/internal/domain/worldclock"
	"github.com/oshokin/timedeck/internal/sound"
)

// Status is the domain snapshot behind StatusResponse.
type Status struct {
	Now       time.Time
	Stopwatch stopwatch.Snapshot
	Timer     countdown.Snapshot
	Alarms    []alarm.Entry
	Ringing   *alarm.Entry
	World     []worldclock.Reading
}

// NewStatusResponse renders a status snapshot.
func NewStatusResponse(st Status, version string) *StatusResponse {
	var ringing *Alarm

	if st.Ringing != nil {
		a := NewAlarm(*st.Ringing)
		ringing = &a
	}

	return &StatusResponse{
		Now:       st.Now,
		Version:   version,
		Stopwatch: NewStopwatchState(st.Stopwatch),
		Timer:     NewTimerState(st.Timer),
		Alarms:    NewAlarms(st.Alarms),
		Ringing:   ringing,
		World:     NewCityReadings(st.World),
	}
}

// NewStopwatchState renders a stopwatch snapshot.
func NewStopwatchState(s stopwatch.Snapshot) StopwatchState {
	laps := make([]Lap, 0, len(s.Laps))
	for _, l := range s.Laps {
		laps = append(laps, Lap{
			Index:      l.Index,
			DurationMs: l.Duration.Milliseconds(),
			Display:    stopwatch.Format(l.Duration),
		})
	}

	return StopwatchState{
		ElapsedMs: s.Elapsed.Milliseconds(),
		Display:   stopwatch.Format(s.Elapsed),
		Running:   s.Running,
		Laps:      laps,
	}
}

// NewTimerState renders a countdown snapshot.
func NewTimerState(s countdown.Snapshot) TimerState {
	return TimerState{
		Phase:        s.Phase.String(),
		Input:        s.Input,
		ConfiguredMs: s.Configured.Milliseconds(),
		RemainingMs:  s.Remaining.Milliseconds(),
		TotalMs:      s.Total.Milliseconds(),
		Display:      s.Display,
		Sound:        sound.NameOf(s.Sound),
	}
}

// NewAlarm renders an alarm entry.
func NewAlarm(e alarm.Entry) Alarm {
	return Alarm{
		ID:      int64(e.ID),
		Time:    e.Time.String(),
		Time12:  e.Time.Format12(),
		Label:   e.Label,
		Enabled: e.Enabled,
		Sound:   sound.NameOf(e.Sound),
	}
}

// NewAlarms renders entries in order.
func NewAlarms(entries []alarm.Entry) []Alarm {
	out := make([]Alarm, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewAlarm(e))
	}

	return out
}

// NewCityReadings renders board readings.
func NewCityReadings(readings []worldclock.Reading) []CityReading {
	out := make([]CityReading, 0, len(readings))
	for _, r := range readings {
		out = append(out, CityReading{
			ID:          r.City.ID,
			Name:        r.City.DisplayName(),
			Timezone:    r.City.Timezone,
			Time:        r.Time,
			Weekday:     r.Weekday,
			Offset:      r.Offset,
			OffsetHours: r.OffsetHours,
		})
	}

	return out
}

// NewWorldClockSettings renders board settings.
func NewWorldClockSettings(s worldclock.Settings) WorldClockSettings {
	return WorldClockSettings{
		Is24Hour:   s.Is24Hour,
		ShowOffset: s.ShowOffset,
		ShowDate:   s.ShowDate,
	}
}

// toDomainSettings converts wire settings to the board's form.
func toDomainSettings(s *WorldClockSettings) worldclock.Settings {
	return worldclock.Settings{
		Is24Hour:   s.Is24Hour,
		ShowOffset: s.ShowOffset,
		ShowDate:   s.ShowDate,
	}
}

// toDomainActor converts a wire Actor to a domain Actor.
func toDomainActor(a *Actor) *actor.Actor {
	if a == nil {
		return nil
	}

	return &actor.Actor{
		Hostname: a.Hostname,
		Username: a.Username,
	}
}

// NewActor converts a domain Actor to its wire form.
func NewActor(a *actor.Actor) *Actor {
	if a == nil {
		return nil
	}

	return &Actor{
		Hostname: a.Hostname,
		Username: a.Username,
	}
}
