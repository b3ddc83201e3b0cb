package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oshokin/timedeck/internal/domain/alarm"
	"github.com/oshokin/timedeck/internal/domain/worldclock"
	"github.com/oshokin/timedeck/internal/repository/kv"
)

// Keys of the persisted collections.
const (
	KeyAlarms        = "alarms"
	KeyWorldClocks   = "worldClocks"
	KeyWorldSettings = "worldClockSettings"
	KeyTimerSound    = "timerSound"
)

var (
	// ErrNotFound is returned when a collection has never been saved.
	ErrNotFound = errors.New("settings not found")
	// ErrMalformed is returned when a stored collection cannot be decoded.
	ErrMalformed = errors.New("malformed settings")
)

// Repository loads and saves the persisted collections.
type Repository interface {
	LoadAlarms(ctx context.Context) ([]alarm.Entry, error)
	SaveAlarms(ctx context.Context, entries []alarm.Entry) error
	LoadWorldClocks(ctx context.Context) ([]worldclock.City, error)
	SaveWorldClocks(ctx context.Context, cities []worldclock.City) error
	LoadWorldSettings(ctx context.Context) (worldclock.Settings, error)
	SaveWorldSettings(ctx context.Context, s worldclock.Settings) error
	LoadTimerSound(ctx context.Context) (string, error)
	SaveTimerSound(ctx context.Context, sound string) error
}

// alarmRecord is the stored form of an alarm entry.
type alarmRecord struct {
	ID      int64  `json:"id"`
	Time    string `json:"time"`
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
	Sound   string `json:"sound,omitempty"`
}

// cityRecord is the stored form of a world clock city.
type cityRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Timezone   string `json:"timezone"`
	CustomName string `json:"customName,omitempty"`
}

// settingsRecord is the stored form of the world clock settings.
type settingsRecord struct {
	Is24Hour   bool `json:"is24Hour"`
	ShowOffset bool `json:"showOffset"`
	ShowDate   bool `json:"showDate"`
}

// StoreRepository implements Repository on a kv.Store.
type StoreRepository struct {
	store kv.Store
}

// NewStoreRepository wraps store.
func NewStoreRepository(store kv.Store) *StoreRepository {
	return &StoreRepository{store: store}
}

// LoadAlarms returns the stored alarms. Entries with an unreadable time are
// dropped and reported with ErrMalformed next to the readable ones.
func (r *StoreRepository) LoadAlarms(ctx context.Context) ([]alarm.Entry, error) {
	var records []alarmRecord
	if err := r.get(ctx, KeyAlarms, &records); err != nil {
		return nil, err
	}

	entries := make([]alarm.Entry, 0, len(records))

	var errs []error

	for _, rec := range records {
		at, err := alarm.ParseTimeOfDay(rec.Time)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: alarm %d: %w", ErrMalformed, rec.ID, err))

			continue
		}

		entries = append(entries, alarm.Entry{
			ID:      alarm.ID(rec.ID),
			Time:    at,
			Label:   rec.Label,
			Enabled: rec.Enabled,
			Sound:   rec.Sound,
		})
	}

	return entries, errors.Join(errs...)
}

// SaveAlarms overwrites the stored alarms.
func (r *StoreRepository) SaveAlarms(ctx context.Context, entries []alarm.Entry) error {
	records := make([]alarmRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, alarmRecord{
			ID:      int64(e.ID),
			Time:    e.Time.String(),
			Label:   e.Label,
			Enabled: e.Enabled,
			Sound:   e.Sound,
		})
	}

	return r.put(ctx, KeyAlarms, records)
}

// LoadWorldClocks returns the stored cities.
func (r *StoreRepository) LoadWorldClocks(ctx context.Context) ([]worldclock.City, error) {
	var records []cityRecord
	if err := r.get(ctx, KeyWorldClocks, &records); err != nil {
		return nil, err
	}

	cities := make([]worldclock.City, 0, len(records))
	for _, rec := range records {
		cities = append(cities, worldclock.City(rec))
	}

	return cities, nil
}

// SaveWorldClocks overwrites the stored cities.
func (r *StoreRepository) SaveWorldClocks(ctx context.Context, cities []worldclock.City) error {
	records := make([]cityRecord, 0, len(cities))
	for _, c := range cities {
		records = append(records, cityRecord(c))
	}

	return r.put(ctx, KeyWorldClocks, records)
}

// LoadWorldSettings returns the stored display settings. Fields missing from
// the document keep their defaults.
func (r *StoreRepository) LoadWorldSettings(ctx context.Context) (worldclock.Settings, error) {
	rec := settingsRecord(worldclock.DefaultSettings())
	if err := r.get(ctx, KeyWorldSettings, &rec); err != nil {
		return worldclock.DefaultSettings(), err
	}

	return worldclock.Settings(rec), nil
}

// SaveWorldSettings overwrites the stored display settings.
func (r *StoreRepository) SaveWorldSettings(ctx context.Context, s worldclock.Settings) error {
	return r.put(ctx, KeyWorldSettings, settingsRecord(s))
}

// LoadTimerSound returns the stored countdown sound.
func (r *StoreRepository) LoadTimerSound(ctx context.Context) (string, error) {
	var sound string
	if err := r.get(ctx, KeyTimerSound, &sound); err != nil {
		return "", err
	}

	return sound, nil
}

// SaveTimerSound overwrites the stored countdown sound.
func (r *StoreRepository) SaveTimerSound(ctx context.Context, sound string) error {
	return r.put(ctx, KeyTimerSound, sound)
}

func (r *StoreRepository) get(ctx context.Context, key string, dst any) error {
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return ErrNotFound
	}

	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}

	if err = json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformed, key, err)
	}

	return nil
}

func (r *StoreRepository) put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err = r.store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	return nil
}
