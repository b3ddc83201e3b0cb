package worldclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// mustLoad loads a zone or fails the test.
func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation(name)
	require.NoError(t, err)

	return loc
}

// ids lists city ids in board order.
func ids(b *Board) []string {
	out := make([]string, 0)
	for _, c := range b.Cities() {
		out = append(out, c.ID)
	}

	return out
}

// TestNewBoard_Defaults checks the default cities and settings.
func TestNewBoard_Defaults(t *testing.T) {
	t.Parallel()

	b := NewBoard(time.UTC, nil)
	require.Equal(t, []string{LocalID, "tokyo", "london", "ny"}, ids(b))
	require.Equal(t, "UTC", b.Cities()[0].Timezone)
	require.Equal(t, Settings{Is24Hour: false, ShowOffset: true, ShowDate: true}, b.Settings())
}

// TestBoard_AddRemove covers validation, naming and the local city guard.
func TestBoard_AddRemove(t *testing.T) {
	t.Parallel()

	b := NewBoard(time.UTC, nil)

	city, err := b.Add("America/Los_Angeles")
	require.NoError(t, err)
	require.Equal(t, City{ID: "America/Los_Angeles", Name: "Los Angeles", Timezone: "America/Los_Angeles"}, city)

	_, err = b.Add("America/Los_Angeles")
	require.ErrorIs(t, err, ErrDuplicate)

	_, err = b.Add("Asia/Tokyo")
	require.ErrorIs(t, err, ErrDuplicate)

	_, err = b.Add("Nowhere/Atlantis")
	require.ErrorIs(t, err, ErrUnknownTimezone)

	_, err = b.Add("")
	require.ErrorIs(t, err, ErrUnknownTimezone)

	require.ErrorIs(t, b.Remove(LocalID), ErrLocalFixed)
	require.ErrorIs(t, b.Remove("missing"), ErrNotFound)
	require.NoError(t, b.Remove("tokyo"))
	require.Equal(t, []string{LocalID, "london", "ny", "America/Los_Angeles"}, ids(b))
}

// TestBoard_Rename trims names and ignores blanks.
func TestBoard_Rename(t *testing.T) {
	t.Parallel()

	b := NewBoard(time.UTC, nil)

	city, changed, err := b.Rename("ny", "  Big Apple ")
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, "Big Apple", city.DisplayName())
	require.Equal(t, "New York", city.Name)

	_, changed, err = b.Rename("ny", "   ")
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, "Big Apple", b.Cities()[3].CustomName)

	_, changed, err = b.Rename(LocalID, "Home")
	require.NoError(t, err)
	require.True(t, changed)

	_, _, err = b.Rename("missing", "x")
	require.ErrorIs(t, err, ErrNotFound)
}

// TestBoard_Move reorders cities and keeps local first.
func TestBoard_Move(t *testing.T) {
	t.Parallel()

	b := NewBoard(time.UTC, nil)

	moved, err := b.Move("ny", 1)
	require.NoError(t, err)
	require.True(t, moved)
	require.Equal(t, []string{LocalID, "ny", "tokyo", "london"}, ids(b))

	moved, err = b.Move("ny", 0)
	require.NoError(t, err)
	require.False(t, moved, "clamped to its current slot")

	moved, err = b.Move("tokyo", 99)
	require.NoError(t, err)
	require.True(t, moved)
	require.Equal(t, []string{LocalID, "ny", "london", "tokyo"}, ids(b))

	_, err = b.Move(LocalID, 2)
	require.ErrorIs(t, err, ErrLocalFixed)

	_, err = b.Move("missing", 2)
	require.ErrorIs(t, err, ErrNotFound)
}

// TestBoard_Readings renders times, weekdays and offsets against a fixed instant.
func TestBoard_Readings(t *testing.T) {
	t.Parallel()

	london := mustLoad(t, "Europe/London")
	b := NewBoard(london, nil)
	_, err := b.Add("Asia/Kolkata")
	require.NoError(t, err)

	// 2024-01-15 23:30 UTC is winter in London (UTC+0).
	now := time.Date(2024, time.January, 15, 23, 30, 0, 0, time.UTC)

	readings := b.Readings(now)
	require.Len(t, readings, 5)

	byID := make(map[string]Reading)
	for _, r := range readings {
		byID[r.City.ID] = r
	}

	require.Equal(t, "11:30 PM", byID[LocalID].Time)
	require.Equal(t, "Local Time", byID[LocalID].Offset)
	require.Equal(t, "Mon", byID[LocalID].Weekday)

	require.Equal(t, "08:30 AM", byID["tokyo"].Time)
	require.Equal(t, "Tue", byID["tokyo"].Weekday)
	require.Equal(t, "9h ahead", byID["tokyo"].Offset)

	require.Equal(t, "Local Time", byID["london"].Offset)
	require.Equal(t, "06:30 PM", byID["ny"].Time)
	require.Equal(t, "5h behind", byID["ny"].Offset)
	require.Equal(t, "5.5h ahead", byID["Asia/Kolkata"].Offset)

	require.True(t, b.SetSettings(Settings{Is24Hour: true}))
	require.False(t, b.SetSettings(Settings{Is24Hour: true}))

	readings = b.Readings(now)
	require.Equal(t, "23:30", readings[0].Time)
	require.Empty(t, readings[0].Weekday)
	require.Empty(t, readings[0].Offset)
}

// TestBoard_Load skips bad or duplicate zones and restores the local city.
func TestBoard_Load(t *testing.T) {
	t.Parallel()

	b := NewBoard(time.UTC, nil)

	skipped := b.Load([]City{
		{ID: "paris", Name: "Paris", Timezone: "Europe/Paris"},
		{ID: "bad", Name: "Bad", Timezone: "Bad/Zone"},
		{ID: "paris-2", Timezone: "Europe/Paris"},
		{Timezone: "Australia/Sydney"},
	}, Settings{ShowDate: true})

	require.Len(t, skipped, 2)
	require.Equal(t, []string{LocalID, "paris", "Australia/Sydney"}, ids(b))
	require.Equal(t, "Sydney", b.Cities()[2].Name)
	require.Equal(t, Settings{ShowDate: true}, b.Settings())

	// A persisted local city keeps its custom name but follows the local zone.
	b.Load([]City{{ID: LocalID, Name: "Old", Timezone: "Asia/Tokyo", CustomName: "Home"}}, DefaultSettings())
	cities := b.Cities()
	require.Len(t, cities, 1)
	require.Equal(t, "UTC", cities[0].Timezone)
	require.Equal(t, "Home", cities[0].DisplayName())
}

// TestFormatOffset checks rendering of whole and fractional offsets.
func TestFormatOffset(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Local Time", FormatOffset(0))
	require.Equal(t, "Local Time", FormatOffset(0.05))
	require.Equal(t, "3h ahead", FormatOffset(3))
	require.Equal(t, "5.75h ahead", FormatOffset(5.75))
	require.Equal(t, "9.5h behind", FormatOffset(-9.5))
}

// TestDisplayNameAndSearch covers zone naming and the search list.
func TestDisplayNameAndSearch(t *testing.T) {
	t.Parallel()

	require.Equal(t, "New York", DisplayName("America/New_York"))
	require.Equal(t, "UTC", DisplayName("UTC"))
	require.Equal(t, "Buenos Aires", DisplayName("America/Argentina/Buenos_Aires"))

	require.Equal(t, []string{"America/New_York"}, SearchZones("york"))
	require.Contains(t, SearchZones("europe"), "Europe/Paris")
	require.Empty(t, SearchZones("zzz"))
}
