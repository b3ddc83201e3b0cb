package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestFrom12Hour exhaustively checks the 12-hour to 24-hour conversion.
func TestFrom12Hour(t *testing.T) {
	t.Parallel()

	require.Equal(t, TimeOfDay{0, 0}, From12Hour(12, 0, AM))
	require.Equal(t, TimeOfDay{12, 0}, From12Hour(12, 0, PM))
	require.Equal(t, TimeOfDay{1, 15}, From12Hour(1, 15, AM))
	require.Equal(t, TimeOfDay{13, 15}, From12Hour(1, 15, PM))
	require.Equal(t, TimeOfDay{23, 59}, From12Hour(11, 59, PM))

	seen := make(map[TimeOfDay]bool)

	for _, m := range []Meridiem{AM, PM} {
		for hour := 1; hour <= 12; hour++ {
			for minute := range 60 {
				tod := From12Hour(hour, minute, m)
				require.False(t, seen[tod], "duplicate %s", tod)

				seen[tod] = true

				// Converting back yields the input.
				h, mm, mer := tod.To12Hour()
				require.Equal(t, hour, h)
				require.Equal(t, minute, mm)
				require.Equal(t, m, mer)
			}
		}
	}

	require.Len(t, seen, 24*60)
}

// TestFrom12Hour_Clamps verifies out-of-range inputs are clamped rather than rejected.
func TestFrom12Hour_Clamps(t *testing.T) {
	t.Parallel()

	require.Equal(t, TimeOfDay{0, 59}, From12Hour(0, 75, AM))
	require.Equal(t, TimeOfDay{12, 0}, From12Hour(13, -4, PM))
	require.Equal(t, TimeOfDay{12, 0}, From12Hour(13, 0, PM))
	require.Equal(t, TimeOfDay{0, 0}, From12Hour(13, 0, AM))
	require.Equal(t, TimeOfDay{23, 59}, NewTimeOfDay(40, 99))
	require.Equal(t, TimeOfDay{0, 0}, NewTimeOfDay(-1, -1))
}

// TestParseTimeOfDay covers valid and invalid "HH:MM" strings.
func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()

	tod, err := ParseTimeOfDay("07:30")
	require.NoError(t, err)
	require.Equal(t, TimeOfDay{7, 30}, tod)
	require.Equal(t, "07:30", tod.String())
	require.Equal(t, "07:30 AM", tod.Format12())
	require.Equal(t, "11:05 PM", TimeOfDay{23, 5}.Format12())

	for _, bad := range []string{"", "7", "24:00", "12:60", "aa:bb", "-1:10"} {
		_, err := ParseTimeOfDay(bad)
		require.ErrorIs(t, err, ErrInvalidTimeOfDay, bad)
	}
}

// TestParseEntry clamps out-of-range fields of user input instead of rejecting them.
func TestParseEntry(t *testing.T) {
	t.Parallel()

	tod, err := ParseEntry("07:75")
	require.NoError(t, err)
	require.Equal(t, TimeOfDay{7, 59}, tod)

	tod, err = ParseEntry("24:10")
	require.NoError(t, err)
	require.Equal(t, TimeOfDay{23, 10}, tod)

	tod, err = ParseEntry("-1:10")
	require.NoError(t, err)
	require.Equal(t, TimeOfDay{0, 10}, tod)

	for _, bad := range []string{"", "7", "aa:bb", "7:xx"} {
		_, err := ParseEntry(bad)
		require.ErrorIs(t, err, ErrInvalidTimeOfDay, bad)
	}
}

// TestParseMeridiem accepts both halves in any case.
func TestParseMeridiem(t *testing.T) {
	t.Parallel()

	m, ok := ParseMeridiem("pm")
	require.True(t, ok)
	require.Equal(t, PM, m)

	m, ok = ParseMeridiem(" Am ")
	require.True(t, ok)
	require.Equal(t, "AM", m.String())

	_, ok = ParseMeridiem("noon")
	require.False(t, ok)
}

// TestTimeOfDayOf discards seconds.
func TestTimeOfDayOf(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 1, 7, 30, 59, 999, time.UTC)
	require.Equal(t, TimeOfDay{7, 30}, TimeOfDayOf(now))
}
