package worldclock

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// ErrUnknownTimezone is returned when a zone name cannot be resolved.
var ErrUnknownTimezone = errors.New("unknown timezone")

// LocationResolver turns an IANA zone name into a location.
type LocationResolver interface {
	Resolve(name string) (*time.Location, error)
}

// ZoneDB resolves names through the time package zone database and caches
// the results. It is safe for concurrent use.
type ZoneDB struct {
	mu    sync.Mutex
	cache map[string]*time.Location
}

// NewZoneDB returns an empty resolver cache.
func NewZoneDB() *ZoneDB {
	return &ZoneDB{cache: make(map[string]*time.Location)}
}

// Resolve loads the named zone. Empty names and "Local" are rejected so that
// only explicit zones end up on the board.
func (z *ZoneDB) Resolve(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}

	z.mu.Lock()
	defer z.mu.Unlock()

	if loc, ok := z.cache[name]; ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnknownTimezone, name, err)
	}

	z.cache[name] = loc

	return loc, nil
}

// knownZones is offered for search when the host cannot enumerate its zone
// database.
//
//nolint:gochecknoglobals // Read-only table.
var knownZones = []string{
	"Africa/Cairo", "America/Chicago", "America/Denver", "America/Los_Angeles",
	"America/New_York", "America/Sao_Paulo", "Asia/Dubai", "Asia/Kolkata",
	"Asia/Shanghai", "Asia/Tokyo", "Australia/Sydney", "Europe/London",
	"Europe/Moscow", "Europe/Paris", "Pacific/Honolulu", "UTC",
}

// SearchZones returns the known zones containing term, case-insensitively.
func SearchZones(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))

	out := make([]string, 0, len(knownZones))

	for _, z := range knownZones {
		if strings.Contains(strings.ToLower(z), term) {
			out = append(out, z)
		}
	}

	return slices.Clip(out)
}

// DisplayName derives a city name from a zone: the last path segment with
// underscores turned into spaces.
func DisplayName(timezone string) string {
	name := timezone
	if i := strings.LastIndex(timezone, "/"); i >= 0 {
		name = timezone[i+1:]
	}

	name = strings.ReplaceAll(name, "_", " ")
	if name == "" {
		return timezone
	}

	return name
}
