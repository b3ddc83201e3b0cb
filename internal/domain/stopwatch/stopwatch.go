package stopwatch

import (
	"fmt"
	"time"
)

// Lap is a single split. Duration is the time since the previous lap mark,
// or since the stopwatch was started for the first lap.
type Lap struct {
	Index    int
	Duration time.Duration
}

// Snapshot is a point-in-time view of the stopwatch.
type Snapshot struct {
	Elapsed time.Duration
	Running bool
	// Laps are ordered most recent first.
	Laps []Lap
}

// Stopwatch accumulates elapsed time across start/stop cycles.
// The zero value is a stopped stopwatch at 00:00.00.
// It is not safe for concurrent use.
type Stopwatch struct {
	accumulated time.Duration
	running     bool
	anchor      time.Time
	lastLapMark time.Duration
	laps        []Lap
}

// New returns a stopped stopwatch.
func New() *Stopwatch {
	return new(Stopwatch)
}

// Start begins a running interval at now. Returns false if already running.
func (s *Stopwatch) Start(now time.Time) bool {
	if s.running {
		return false
	}

	s.running = true
	s.anchor = now

	return true
}

// Stop closes the running interval at now. Returns false if not running.
func (s *Stopwatch) Stop(now time.Time) bool {
	if !s.running {
		return false
	}

	s.accumulated += since(s.anchor, now)
	s.running = false
	s.anchor = time.Time{}

	return true
}

// Lap records a split at now. Only valid while running.
func (s *Stopwatch) Lap(now time.Time) (Lap, bool) {
	if !s.running {
		return Lap{}, false
	}

	elapsed := s.Elapsed(now)

	lap := Lap{
		Index:    len(s.laps) + 1,
		Duration: elapsed - s.lastLapMark,
	}

	s.laps = append([]Lap{lap}, s.laps...)
	s.lastLapMark = elapsed

	return lap, true
}

// Reset clears elapsed time and laps. Ignored while running.
func (s *Stopwatch) Reset() bool {
	if s.running {
		return false
	}

	s.accumulated = 0
	s.lastLapMark = 0
	s.laps = nil

	return true
}

// Elapsed returns the true elapsed time at now. It has no side effects.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	if !s.running {
		return s.accumulated
	}

	return s.accumulated + since(s.anchor, now)
}

// Running reports whether an interval is open.
func (s *Stopwatch) Running() bool {
	return s.running
}

// Laps returns a copy of the recorded laps, most recent first.
func (s *Stopwatch) Laps() []Lap {
	if len(s.laps) == 0 {
		return nil
	}

	out := make([]Lap, len(s.laps))
	copy(out, s.laps)

	return out
}

// Snapshot captures the stopwatch at now.
func (s *Stopwatch) Snapshot(now time.Time) Snapshot {
	return Snapshot{
		Elapsed: s.Elapsed(now),
		Running: s.running,
		Laps:    s.Laps(),
	}
}

// since clamps a backwards-moving wall clock to zero.
func since(anchor, now time.Time) time.Duration {
	d := now.Sub(anchor)
	if d < 0 {
		return 0
	}

	return d
}

// Format renders d as MM:SS.hh. Hundredths are truncated, never rounded,
// and minutes are not wrapped at the hour.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	ms := d.Milliseconds()

	return fmt.Sprintf("%02d:%02d.%02d", ms/60000, (ms%60000)/1000, (ms%1000)/10)
}
