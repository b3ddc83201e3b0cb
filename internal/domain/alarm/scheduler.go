package alarm

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/oshokin/timedeck/internal/domain/effect"
)

// DefaultLabel names alarms added without a label.
const DefaultLabel = "Alarm"

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = errors.New("alarm not found")

// ID identifies an entry. New ids are derived from the creation time in
// milliseconds and are strictly increasing within a scheduler.
type ID int64

// Entry is a single recurring alarm.
type Entry struct {
	ID      ID
	Time    TimeOfDay
	Label   string
	Enabled bool
	// Sound is an opaque URI handed to the playback sink.
	Sound string
}

// dismissal is the dedup guard recorded by Dismiss.
type dismissal struct {
	id     ID
	bucket time.Time
}

// Scheduler owns the alarm entries and the ringing state.
// It is not safe for concurrent use; callers serialise Evaluate with CRUD.
type Scheduler struct {
	entries       []Entry
	ringing       *Entry
	lastDismissed *dismissal
	lastID        ID
	defaultSound  string
}

// NewScheduler returns an empty scheduler. defaultSound is used for entries
// added or loaded without a sound.
func NewScheduler(defaultSound string) *Scheduler {
	return &Scheduler{defaultSound: defaultSound}
}

// Load replaces all entries, e.g. with the persisted collection. Entries
// without a sound get the default sound and the result is ordered by time of
// day, keeping the given order for equal times.
func (s *Scheduler) Load(entries []Entry) {
	s.entries = make([]Entry, 0, len(entries))

	for _, e := range entries {
		if e.Sound == "" {
			e.Sound = s.defaultSound
		}

		if e.Label == "" {
			e.Label = DefaultLabel
		}

		s.entries = append(s.entries, e)
		s.lastID = max(s.lastID, e.ID)
	}

	slices.SortStableFunc(s.entries, func(a, b Entry) int {
		return a.Time.Minutes() - b.Time.Minutes()
	})
}

// Add creates an enabled entry and inserts it ahead of entries with the same
// time of day.
func (s *Scheduler) Add(now time.Time, at TimeOfDay, label, sound string) Entry {
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultLabel
	}

	if sound == "" {
		sound = s.defaultSound
	}

	id := max(ID(now.UnixMilli()), s.lastID+1)
	s.lastID = id

	entry := Entry{
		ID:      id,
		Time:    NewTimeOfDay(at.Hour, at.Minute),
		Label:   label,
		Enabled: true,
		Sound:   sound,
	}

	idx, _ := slices.BinarySearchFunc(s.entries, entry.Time.Minutes(), func(e Entry, target int) int {
		return e.Time.Minutes() - target
	})

	s.entries = slices.Insert(s.entries, idx, entry)

	return entry
}

// Toggle flips the enabled flag of an entry. Ringing and the dedup guard are
// left untouched.
func (s *Scheduler) Toggle(id ID) (Entry, error) {
	idx := s.index(id)
	if idx < 0 {
		return Entry{}, ErrNotFound
	}

	s.entries[idx].Enabled = !s.entries[idx].Enabled

	return s.entries[idx], nil
}

// Delete removes an entry. Deleting a ringing entry keeps it ringing until
// dismissed.
func (s *Scheduler) Delete(id ID) error {
	idx := s.index(id)
	if idx < 0 {
		return ErrNotFound
	}

	s.entries = slices.Delete(s.entries, idx, idx+1)

	return nil
}

// Entries returns a copy of the entries ordered by time of day.
func (s *Scheduler) Entries() []Entry {
	return slices.Clone(s.entries)
}

// Len returns the number of entries.
func (s *Scheduler) Len() int {
	return len(s.entries)
}

// Ringing returns a copy of the ringing entry.
func (s *Scheduler) Ringing() (Entry, bool) {
	if s.ringing == nil {
		return Entry{}, false
	}

	return *s.ringing, true
}

// Evaluate checks the entries against now. At most one entry rings at a time:
// the first enabled entry matching the current minute wins, unless it was
// dismissed earlier in this same minute.
func (s *Scheduler) Evaluate(now time.Time) []effect.Effect {
	if s.ringing != nil {
		return nil
	}

	current := TimeOfDayOf(now)

	idx := slices.IndexFunc(s.entries, func(e Entry) bool {
		return e.Enabled && e.Time == current
	})
	if idx < 0 {
		return nil
	}

	match := s.entries[idx]

	if g := s.lastDismissed; g != nil && g.id == match.ID && g.bucket.Equal(minuteBucket(now)) {
		return nil
	}

	s.ringing = &match

	return []effect.Effect{effect.Play(effect.ChannelAlarm, match.Sound, true)}
}

// Dismiss stops the ringing entry and guards it for the rest of the minute.
func (s *Scheduler) Dismiss(now time.Time) (Entry, []effect.Effect, bool) {
	if s.ringing == nil {
		return Entry{}, nil, false
	}

	dismissed := *s.ringing

	s.lastDismissed = &dismissal{id: dismissed.ID, bucket: minuteBucket(now)}
	s.ringing = nil

	return dismissed, []effect.Effect{effect.Stop(effect.ChannelAlarm)}, true
}

func (s *Scheduler) index(id ID) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool { return e.ID == id })
}

// minuteBucket identifies the calendar minute of t, date included, so a guard
// never outlives the minute it was recorded in.
func minuteBucket(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}
