package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// base is an arbitrary wall-clock origin for the tests.
var base = time.Date(2024, time.May, 4, 9, 0, 0, 0, time.UTC)

// at returns base shifted by ms milliseconds.
func at(ms int64) time.Time {
	return base.Add(time.Duration(ms) * time.Millisecond)
}

// TestStopwatch_StartStopSum verifies elapsed after Stop equals the sum of all running intervals.
func TestStopwatch_StartStopSum(t *testing.T) {
	t.Parallel()

	intervals := [][2]int64{{0, 1500}, {4000, 4010}, {10_000, 70_123}, {90_000, 90_000}}

	sw := New()

	var want time.Duration

	for _, iv := range intervals {
		require.True(t, sw.Start(at(iv[0])))
		require.True(t, sw.Stop(at(iv[1])))

		want += time.Duration(iv[1]-iv[0]) * time.Millisecond

		require.Equal(t, want, sw.Elapsed(at(iv[1])))
		// Stopped elapsed does not depend on the observation time.
		require.Equal(t, want, sw.Elapsed(at(iv[1]+99_999)))
	}
}

// TestStopwatch_InvalidTransitions checks that invalid calls are no-ops.
func TestStopwatch_InvalidTransitions(t *testing.T) {
	t.Parallel()

	sw := New()

	require.False(t, sw.Stop(at(0)))

	_, ok := sw.Lap(at(0))
	require.False(t, ok)

	require.True(t, sw.Start(at(0)))
	require.False(t, sw.Start(at(500)), "double start")
	require.False(t, sw.Reset(), "reset while running")
	require.Equal(t, time.Second, sw.Elapsed(at(1000)))
	require.True(t, sw.Running())
}

// TestStopwatch_LapsSumToElapsed verifies lap durations add up to elapsed at the last lap.
func TestStopwatch_LapsSumToElapsed(t *testing.T) {
	t.Parallel()

	sw := New()
	require.True(t, sw.Start(at(0)))

	_, _ = sw.Lap(at(1234))
	require.True(t, sw.Stop(at(2000)))
	require.True(t, sw.Start(at(5000)))
	_, _ = sw.Lap(at(5500))
	last, ok := sw.Lap(at(9999))
	require.True(t, ok)
	require.Equal(t, 3, last.Index)

	laps := sw.Laps()
	require.Len(t, laps, 3)
	require.Equal(t, []int{3, 2, 1}, []int{laps[0].Index, laps[1].Index, laps[2].Index})

	var sum time.Duration
	for _, l := range laps {
		sum += l.Duration
	}

	require.Equal(t, sw.Elapsed(at(9999)), sum)
	require.Equal(t, 1234*time.Millisecond, laps[2].Duration)
	// Second lap spans the paused gap without counting it.
	require.Equal(t, (2000-1234+500)*time.Millisecond, laps[1].Duration)
}

// TestStopwatch_Reset clears elapsed and laps only when stopped.
func TestStopwatch_Reset(t *testing.T) {
	t.Parallel()

	sw := New()
	sw.Start(at(0))
	sw.Lap(at(100))
	sw.Stop(at(200))

	require.True(t, sw.Reset())
	require.Zero(t, sw.Elapsed(at(300)))
	require.Empty(t, sw.Laps())

	// Laps after reset start from index 1 and from zero.
	sw.Start(at(1000))
	lap, ok := sw.Lap(at(1100))
	require.True(t, ok)
	require.Equal(t, Lap{Index: 1, Duration: 100 * time.Millisecond}, lap)
}

// TestStopwatch_BackwardsClock ensures a clock moving backwards never yields negative time.
func TestStopwatch_BackwardsClock(t *testing.T) {
	t.Parallel()

	sw := New()
	sw.Start(at(1000))
	require.Zero(t, sw.Elapsed(at(500)))
	sw.Stop(at(500))
	require.Zero(t, sw.Elapsed(at(2000)))
}

// TestStopwatch_Snapshot returns copies that callers cannot use to mutate state.
func TestStopwatch_Snapshot(t *testing.T) {
	t.Parallel()

	sw := New()
	sw.Start(at(0))
	sw.Lap(at(10))

	snap := sw.Snapshot(at(25))
	require.True(t, snap.Running)
	require.Equal(t, 25*time.Millisecond, snap.Elapsed)

	snap.Laps[0].Duration = time.Hour
	require.Equal(t, 10*time.Millisecond, sw.Laps()[0].Duration)
}

// TestFormat checks MM:SS.hh rendering with truncated hundredths.
func TestFormat(t *testing.T) {
	t.Parallel()

	cases := map[time.Duration]string{
		0:                         "00:00.00",
		9 * time.Millisecond:      "00:00.00",
		999 * time.Millisecond:    "00:00.99",
		61_239 * time.Millisecond: "01:01.23",
		75 * time.Minute:          "75:00.00",
		-time.Second:              "00:00.00",
	}
	for in, want := range cases {
		require.Equal(t, want, Format(in), in.String())
	}
}
