package worldclock

import (
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// LocalID is the id of the city that follows the local zone.
const LocalID = "local"

var (
	// ErrNotFound is returned when no city has the requested id.
	ErrNotFound = errors.New("city not found")
	// ErrDuplicate is returned when a zone is already on the board.
	ErrDuplicate = errors.New("timezone already on the board")
	// ErrLocalFixed is returned when removing or moving the local city.
	ErrLocalFixed = errors.New("the local city cannot be removed or moved")
)

// City is one clock on the board.
type City struct {
	ID       string
	Name     string
	Timezone string
	// CustomName overrides Name when set.
	CustomName string
}

// DisplayName returns CustomName if set, otherwise Name.
func (c City) DisplayName() string {
	if c.CustomName != "" {
		return c.CustomName
	}

	return c.Name
}

// Settings controls how readings are rendered.
type Settings struct {
	Is24Hour   bool
	ShowOffset bool
	ShowDate   bool
}

// DefaultSettings is 12-hour time with offset and weekday shown.
func DefaultSettings() Settings {
	return Settings{Is24Hour: false, ShowOffset: true, ShowDate: true}
}

// Reading is a rendered clock for one city.
type Reading struct {
	City City
	// Time is "03:04 PM" or "15:04" depending on the settings.
	Time string
	// Weekday is the short weekday name, empty when dates are hidden.
	Weekday string
	// Offset describes the difference to local time, empty when hidden.
	Offset string
	// OffsetHours is positive for zones ahead of local time.
	OffsetHours float64
}

// Board is the ordered list of cities. It is not safe for concurrent use.
type Board struct {
	cities   []City
	settings Settings
	local    *time.Location
	resolver LocationResolver
}

// NewBoard returns a board with the default cities. A nil local zone means
// time.Local and a nil resolver means a fresh ZoneDB.
func NewBoard(local *time.Location, resolver LocationResolver) *Board {
	if local == nil {
		local = time.Local
	}

	if resolver == nil {
		resolver = NewZoneDB()
	}

	return &Board{
		cities:   DefaultCities(local),
		settings: DefaultSettings(),
		local:    local,
		resolver: resolver,
	}
}

// DefaultCities returns the local clock plus Tokyo, London and New York.
func DefaultCities(local *time.Location) []City {
	return []City{
		localCity(local),
		{ID: "tokyo", Name: "Tokyo", Timezone: "Asia/Tokyo"},
		{ID: "london", Name: "London", Timezone: "Europe/London"},
		{ID: "ny", Name: "New York", Timezone: "America/New_York"},
	}
}

func localCity(local *time.Location) City {
	return City{ID: LocalID, Name: "Local Time", Timezone: local.String()}
}

// Load replaces the cities and settings with a persisted board. Cities whose
// zone cannot be resolved or that repeat a zone are skipped and returned. The
// local city is kept (or inserted first) and bound to the local zone.
func (b *Board) Load(cities []City, settings Settings) []City {
	var skipped []City

	out := make([]City, 0, len(cities)+1)
	seen := make(map[string]bool, len(cities))
	hasLocal := false

	for _, c := range cities {
		if c.ID == LocalID {
			if hasLocal {
				skipped = append(skipped, c)

				continue
			}

			hasLocal = true
			custom := c.CustomName
			c = localCity(b.local)
			c.CustomName = custom
			out = append(out, c)

			continue
		}

		if _, err := b.resolver.Resolve(c.Timezone); err != nil || seen[c.Timezone] {
			skipped = append(skipped, c)

			continue
		}

		seen[c.Timezone] = true

		if c.ID == "" {
			c.ID = c.Timezone
		}

		if c.Name == "" {
			c.Name = DisplayName(c.Timezone)
		}

		out = append(out, c)
	}

	if !hasLocal {
		out = slices.Insert(out, 0, localCity(b.local))
	}

	b.cities = out
	b.settings = settings

	return skipped
}

// Cities returns a copy of the board.
func (b *Board) Cities() []City {
	return slices.Clone(b.cities)
}

// Settings returns the display settings.
func (b *Board) Settings() Settings {
	return b.settings
}

// SetSettings replaces the display settings and reports whether they changed.
func (b *Board) SetSettings(s Settings) bool {
	if b.settings == s {
		return false
	}

	b.settings = s

	return true
}

// Add appends the zone as a new city whose id is the zone name.
func (b *Board) Add(timezone string) (City, error) {
	timezone = strings.TrimSpace(timezone)

	if _, err := b.resolver.Resolve(timezone); err != nil {
		return City{}, err
	}

	if slices.ContainsFunc(b.cities, func(c City) bool { return c.Timezone == timezone }) {
		return City{}, ErrDuplicate
	}

	city := City{ID: timezone, Name: DisplayName(timezone), Timezone: timezone}
	b.cities = append(b.cities, city)

	return city, nil
}

// Remove deletes a city. The local city cannot be removed.
func (b *Board) Remove(id string) error {
	if id == LocalID {
		return ErrLocalFixed
	}

	idx := b.index(id)
	if idx < 0 {
		return ErrNotFound
	}

	b.cities = slices.Delete(b.cities, idx, idx+1)

	return nil
}

// Rename sets a custom name. A blank name is ignored and reported as
// unchanged.
func (b *Board) Rename(id, name string) (City, bool, error) {
	idx := b.index(id)
	if idx < 0 {
		return City{}, false, ErrNotFound
	}

	name = strings.TrimSpace(name)
	if name == "" || name == b.cities[idx].CustomName {
		return b.cities[idx], false, nil
	}

	b.cities[idx].CustomName = name

	return b.cities[idx], true, nil
}

// Move places a city at index, shifting the others. The index is clamped to
// the positions after the local city.
func (b *Board) Move(id string, index int) (bool, error) {
	if id == LocalID {
		return false, ErrLocalFixed
	}

	from := b.index(id)
	if from < 0 {
		return false, ErrNotFound
	}

	lo := 0
	if b.index(LocalID) == 0 {
		lo = 1
	}

	to := min(max(index, lo), len(b.cities)-1)
	if to == from {
		return false, nil
	}

	city := b.cities[from]
	b.cities = slices.Delete(b.cities, from, from+1)
	b.cities = slices.Insert(b.cities, to, city)

	return true, nil
}

// Readings renders every city at now following the settings.
func (b *Board) Readings(now time.Time) []Reading {
	_, localOffset := now.In(b.local).Zone()

	layout := "03:04 PM"
	if b.settings.Is24Hour {
		layout = "15:04"
	}

	out := make([]Reading, 0, len(b.cities))

	for _, c := range b.cities {
		loc := b.local
		if c.ID != LocalID {
			resolved, err := b.resolver.Resolve(c.Timezone)
			if err != nil {
				continue
			}

			loc = resolved
		}

		at := now.In(loc)
		_, offset := at.Zone()
		diff := float64(offset-localOffset) / 3600

		r := Reading{
			City:        c,
			Time:        at.Format(layout),
			OffsetHours: diff,
		}

		if b.settings.ShowDate {
			r.Weekday = at.Format("Mon")
		}

		if b.settings.ShowOffset {
			r.Offset = FormatOffset(diff)
		}

		out = append(out, r)
	}

	return out
}

// FormatOffset describes an hour difference as "Local Time", "9h ahead" or
// "5.5h behind".
func FormatOffset(hours float64) string {
	if math.Abs(hours) < 0.1 {
		return "Local Time"
	}

	direction := "ahead"
	if hours < 0 {
		direction = "behind"
	}

	return strconv.FormatFloat(math.Abs(hours), 'f', -1, 64) + "h " + direction
}

func (b *Board) index(id string) int {
	return slices.IndexFunc(b.cities, func(c City) bool { return c.ID == id })
}
