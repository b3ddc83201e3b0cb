package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/timedeck/internal/domain/effect"
)

const defaultSound = "data:audio/wav;base64,DEFAULT"

// day returns 2024-06-01 shifted by d days at hh:mm:ss UTC.
func day(d, hh, mm, ss int) time.Time {
	return time.Date(2024, time.June, 1+d, hh, mm, ss, 0, time.UTC)
}

// TestScheduler_WakeUpScenario rings at 07:30, stays quiet after dismissal and rings again the next day.
func TestScheduler_WakeUpScenario(t *testing.T) {
	t.Parallel()

	s := NewScheduler(defaultSound)
	entry := s.Add(day(0, 6, 0, 0), TimeOfDay{7, 30}, "Wake Up", "")
	require.True(t, entry.Enabled)
	require.Equal(t, defaultSound, entry.Sound)

	require.Empty(t, s.Evaluate(day(0, 7, 29, 59)))

	effects := s.Evaluate(day(0, 7, 30, 0))
	require.Equal(t, []effect.Effect{effect.Play(effect.ChannelAlarm, defaultSound, true)}, effects)

	ringing, ok := s.Ringing()
	require.True(t, ok)
	require.Equal(t, "Wake Up", ringing.Label)

	// Sticky while ringing.
	require.Empty(t, s.Evaluate(day(0, 7, 30, 5)))

	dismissed, effects, ok := s.Dismiss(day(0, 7, 30, 12))
	require.True(t, ok)
	require.Equal(t, entry.ID, dismissed.ID)
	require.Equal(t, []effect.Effect{effect.Stop(effect.ChannelAlarm)}, effects)

	for sec := 12; sec < 60; sec++ {
		require.Empty(t, s.Evaluate(day(0, 7, 30, sec)), "second %d", sec)

		_, ringing := s.Ringing()
		require.False(t, ringing)
	}

	require.Empty(t, s.Evaluate(day(0, 7, 31, 0)))

	require.NotEmpty(t, s.Evaluate(day(1, 7, 30, 0)))

	ringing, ok = s.Ringing()
	require.True(t, ok)
	require.Equal(t, entry.ID, ringing.ID)
}

// TestScheduler_FirstMatchWins checks that only one entry rings for a shared minute.
func TestScheduler_FirstMatchWins(t *testing.T) {
	t.Parallel()

	s := NewScheduler(defaultSound)
	older := s.Add(day(0, 6, 0, 0), TimeOfDay{8, 0}, "older", "a")
	newer := s.Add(day(0, 6, 0, 1), TimeOfDay{8, 0}, "newer", "b")

	// New entries go ahead of existing ones with the same time.
	entries := s.Entries()
	require.Equal(t, newer.ID, entries[0].ID)
	require.Equal(t, older.ID, entries[1].ID)

	effects := s.Evaluate(day(0, 8, 0, 0))
	require.Equal(t, "b", effects[0].Sound)

	// Dismissing the first match guards only it; the first-match rule then
	// stops at the guarded entry for the rest of the minute.
	_, _, _ = s.Dismiss(day(0, 8, 0, 3))
	require.Empty(t, s.Evaluate(day(0, 8, 0, 4)))

	// Disabling the guarded entry lets the next match ring.
	_, err := s.Toggle(newer.ID)
	require.NoError(t, err)
	require.Equal(t, "a", s.Evaluate(day(0, 8, 0, 5))[0].Sound)
}

// TestScheduler_DisabledEntriesDoNotRing covers Toggle round trips.
func TestScheduler_DisabledEntriesDoNotRing(t *testing.T) {
	t.Parallel()

	s := NewScheduler(defaultSound)
	e := s.Add(day(0, 0, 0, 0), TimeOfDay{9, 15}, "", "")
	require.Equal(t, DefaultLabel, e.Label)

	toggled, err := s.Toggle(e.ID)
	require.NoError(t, err)
	require.False(t, toggled.Enabled)
	require.Empty(t, s.Evaluate(day(0, 9, 15, 0)))

	toggled, err = s.Toggle(e.ID)
	require.NoError(t, err)
	require.True(t, toggled.Enabled)
	require.NotEmpty(t, s.Evaluate(day(0, 9, 15, 30)))

	_, err = s.Toggle(12345)
	require.ErrorIs(t, err, ErrNotFound)
}

// TestScheduler_ToggleKeepsRinging verifies toggling a ringing entry does not silence it.
func TestScheduler_ToggleKeepsRinging(t *testing.T) {
	t.Parallel()

	s := NewScheduler(defaultSound)
	e := s.Add(day(0, 0, 0, 0), TimeOfDay{6, 45}, "gym", "")
	require.NotEmpty(t, s.Evaluate(day(0, 6, 45, 0)))

	_, err := s.Toggle(e.ID)
	require.NoError(t, err)

	_, ringing := s.Ringing()
	require.True(t, ringing)
}

// TestScheduler_DeleteRingingEntry ensures dismissal still works after the ringing entry is deleted.
func TestScheduler_DeleteRingingEntry(t *testing.T) {
	t.Parallel()

	s := NewScheduler(defaultSound)
	e := s.Add(day(0, 0, 0, 0), TimeOfDay{7, 0}, "bye", "")
	require.NotEmpty(t, s.Evaluate(day(0, 7, 0, 0)))

	require.NoError(t, s.Delete(e.ID))
	require.ErrorIs(t, s.Delete(e.ID), ErrNotFound)
	require.Zero(t, s.Len())

	ringing, ok := s.Ringing()
	require.True(t, ok)
	require.Equal(t, "bye", ringing.Label)

	dismissed, effects, ok := s.Dismiss(day(0, 7, 0, 10))
	require.True(t, ok)
	require.Equal(t, e.ID, dismissed.ID)
	require.Len(t, effects, 1)

	_, _, ok = s.Dismiss(day(0, 7, 0, 11))
	require.False(t, ok)
}

// TestScheduler_AddOrderingAndIDs checks sorted insertion and strictly increasing ids.
func TestScheduler_AddOrderingAndIDs(t *testing.T) {
	t.Parallel()

	s := NewScheduler(defaultSound)
	now := day(0, 12, 0, 0)

	a := s.Add(now, TimeOfDay{22, 0}, "late", "")
	b := s.Add(now, TimeOfDay{5, 0}, "early", "")
	c := s.Add(now, TimeOfDay{12, 30}, "noon", "")

	require.Equal(t, ID(now.UnixMilli()), a.ID)
	require.Equal(t, a.ID+1, b.ID)
	require.Equal(t, b.ID+1, c.ID)

	var labels []string
	for _, e := range s.Entries() {
		labels = append(labels, e.Label)
	}

	require.Equal(t, []string{"early", "noon", "late"}, labels)
}

// TestScheduler_Load fills missing sounds and labels and keeps ids monotonic.
func TestScheduler_Load(t *testing.T) {
	t.Parallel()

	s := NewScheduler(defaultSound)
	s.Load([]Entry{
		{ID: 5_000_000_000_000, Time: TimeOfDay{9, 0}, Label: "b", Enabled: true},
		{ID: 7, Time: TimeOfDay{8, 0}, Enabled: false, Sound: "custom"},
	})

	entries := s.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, ID(7), entries[0].ID)
	require.Equal(t, DefaultLabel, entries[0].Label)
	require.Equal(t, "custom", entries[0].Sound)
	require.Equal(t, defaultSound, entries[1].Sound)

	added := s.Add(day(0, 0, 0, 0), TimeOfDay{1, 0}, "x", "")
	require.Equal(t, ID(5_000_000_000_001), added.ID)

	// Entries returns a copy.
	entries[0].Label = "mutated"
	require.NotEqual(t, "mutated", s.Entries()[0].Label)
}

// TestScheduler_GuardIsPerMinute verifies the dedup guard does not leak into the next minute.
func TestScheduler_GuardIsPerMinute(t *testing.T) {
	t.Parallel()

	s := NewScheduler(defaultSound)
	s.Add(day(0, 0, 0, 0), TimeOfDay{10, 0}, "a", "")
	s.Add(day(0, 0, 0, 0), TimeOfDay{10, 1}, "b", "")

	require.NotEmpty(t, s.Evaluate(day(0, 10, 0, 0)))
	_, _, _ = s.Dismiss(day(0, 10, 0, 1))

	// Another entry in the next minute is unaffected by the guard.
	effects := s.Evaluate(day(0, 10, 1, 0))
	require.NotEmpty(t, effects)

	ringing, _ := s.Ringing()
	require.Equal(t, "b", ringing.Label)
}
