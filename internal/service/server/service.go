package server

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	api "github.com/oshokin/timedeck/internal/api/grpc/timedeck"
	"github.com/oshokin/timedeck/internal/clock"
	"github.com/oshokin/timedeck/internal/domain/actor"
	"github.com/oshokin/timedeck/internal/domain/alarm"
	"github.com/oshokin/timedeck/internal/domain/countdown"
	"github.com/oshokin/timedeck/internal/domain/effect"
	"github.com/oshokin/timedeck/internal/domain/stopwatch"
	"github.com/oshokin/timedeck/internal/domain/worldclock"
	"github.com/oshokin/timedeck/internal/events"
	"github.com/oshokin/timedeck/internal/logger"
	"github.com/oshokin/timedeck/internal/metrics"
	"github.com/oshokin/timedeck/internal/playback"
	"github.com/oshokin/timedeck/internal/repository/settings"
	"github.com/oshokin/timedeck/internal/sound"
)

// eventSink accepts events for asynchronous delivery.
type eventSink interface {
	Enqueue(ctx context.Context, e events.Event)
}

// dependencies are the collaborators of the service.
type dependencies struct {
	clock    clock.Clock
	location *time.Location
	repo     settings.Repository
	player   playback.Player
	events   eventSink
	metrics  *metrics.Metrics
}

// service owns every engine. All engine access, ticks included, happens under mu.
// It is unexported to keep the transport decoupled from the implementation.
type service struct {
	clock      clock.Clock
	location   *time.Location
	repo       settings.Repository
	dispatcher *playback.Dispatcher
	events     eventSink
	metrics    *metrics.Metrics

	// mu protects the engines below.
	mu        sync.Mutex
	stopwatch *stopwatch.Stopwatch
	timer     *countdown.Countdown
	alarms    *alarm.Scheduler
	board     *worldclock.Board
}

// newService builds the engines and restores persisted collections. Missing
// or malformed collections fall back to defaults with a warning.
func newService(ctx context.Context, deps dependencies) *service {
	if deps.clock == nil {
		deps.clock = clock.Real{}
	}

	if deps.location == nil {
		deps.location = time.Local
	}

	if deps.metrics == nil {
		deps.metrics = metrics.New()
	}

	s := &service{
		clock:     deps.clock,
		location:  deps.location,
		repo:      deps.repo,
		events:    deps.events,
		metrics:   deps.metrics,
		stopwatch: stopwatch.New(),
		timer:     countdown.New(sound.Default),
		alarms:    alarm.NewScheduler(sound.Default),
		board:     worldclock.NewBoard(deps.location, worldclock.NewZoneDB()),
	}

	s.dispatcher = playback.NewDispatcher(deps.player, s.metrics.PlaybackFailed)

	if s.repo != nil {
		s.restore(ctx)
	}

	s.metrics.SetAlarms(s.alarms.Len())

	return s
}

// restore loads every persisted collection.
func (s *service) restore(ctx context.Context) {
	entries, err := s.repo.LoadAlarms(ctx)
	if err != nil && !errors.Is(err, settings.ErrNotFound) {
		logger.WarnKV(ctx, "Some alarms could not be restored", "kept", len(entries), "error", err)
	}

	s.alarms.Load(entries)

	cities, err := s.repo.LoadWorldClocks(ctx)
	if err != nil && !errors.Is(err, settings.ErrNotFound) {
		logger.WarnKV(ctx, "World clocks could not be restored, using defaults", "error", err)
	}

	boardSettings, err := s.repo.LoadWorldSettings(ctx)
	if err != nil && !errors.Is(err, settings.ErrNotFound) {
		logger.WarnKV(ctx, "World clock settings could not be restored, using defaults", "error", err)
	}

	if len(cities) == 0 {
		cities = worldclock.DefaultCities(s.location)
	}

	for _, c := range s.board.Load(cities, boardSettings) {
		logger.WarnKV(ctx, "Skipping world clock", "id", c.ID, "timezone", c.Timezone)
	}

	timerSound, err := s.repo.LoadTimerSound(ctx)
	switch {
	case err == nil && timerSound != "":
		s.timer.SetSound(timerSound)
	case err != nil && !errors.Is(err, settings.ErrNotFound):
		logger.WarnKV(ctx, "Timer sound could not be restored, using default", "error", err)
	}

	logger.InfoKV(ctx, "Settings restored", "alarms", s.alarms.Len(), "world_clocks", len(s.board.Cities()))
}

// Tick evaluates the countdown and the alarm scheduler at now.
func (s *service) Tick(ctx context.Context, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.Tick()

	if fx := s.timer.Tick(now); len(fx) > 0 {
		s.dispatcher.Apply(ctx, fx)
		s.metrics.TimerFinished()
		s.publish(ctx, events.New(events.TimerFinished, now, map[string]any{
			"duration_ms": s.timer.Snapshot(now).Total.Milliseconds(),
			"sound":       sound.NameOf(s.timer.Sound()),
		}))

		logger.Info(ctx, "Timer finished")
	}

	local := now.In(s.location)
	if fx := s.alarms.Evaluate(local); len(fx) > 0 {
		s.dispatcher.Apply(ctx, fx)
		s.metrics.AlarmRang()

		if entry, ok := s.alarms.Ringing(); ok {
			s.publish(ctx, events.New(events.AlarmRinging, now, alarmAttributes(entry)))
			logger.InfoKV(ctx, "Alarm ringing", "id", entry.ID, "label", entry.Label, "time", entry.Time)
		}
	}

	s.metrics.SetTimerRemaining(s.timer.Remaining(now))
	s.metrics.SetStopwatchRunning(s.stopwatch.Running())
}

// Status returns a snapshot of every facility.
func (s *service) Status(context.Context) api.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now().In(s.location)

	st := api.Status{
		Now:       now,
		Stopwatch: s.stopwatch.Snapshot(now),
		Timer:     s.timer.Snapshot(now),
		Alarms:    s.alarms.Entries(),
		World:     s.board.Readings(now),
	}

	if entry, ok := s.alarms.Ringing(); ok {
		st.Ringing = &entry
	}

	return st
}

// Stopwatch returns the stopwatch snapshot.
func (s *service) Stopwatch(context.Context) stopwatch.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.stopwatch.Snapshot(s.clock.Now())
}

// StartStopwatch starts the stopwatch.
func (s *service) StartStopwatch(ctx context.Context, a *actor.Actor) (stopwatch.Snapshot, bool) {
	return s.stopwatchOp(ctx, a, "Stopwatch started", func(now time.Time) bool {
		return s.stopwatch.Start(now)
	})
}

// StopStopwatch stops the stopwatch.
func (s *service) StopStopwatch(ctx context.Context, a *actor.Actor) (stopwatch.Snapshot, bool) {
	return s.stopwatchOp(ctx, a, "Stopwatch stopped", func(now time.Time) bool {
		return s.stopwatch.Stop(now)
	})
}

// ResetStopwatch clears a stopped stopwatch.
func (s *service) ResetStopwatch(ctx context.Context, a *actor.Actor) (stopwatch.Snapshot, bool) {
	return s.stopwatchOp(ctx, a, "Stopwatch reset", func(time.Time) bool {
		return s.stopwatch.Reset()
	})
}

// LapStopwatch records a lap on a running stopwatch.
func (s *service) LapStopwatch(ctx context.Context, a *actor.Actor) (stopwatch.Snapshot, bool) {
	return s.stopwatchOp(ctx, a, "Lap recorded", func(now time.Time) bool {
		lap, ok := s.stopwatch.Lap(now)
		if !ok {
			return false
		}

		s.metrics.Lap()
		s.publish(ctx, events.New(events.StopwatchLap, now, map[string]any{
			"index":       lap.Index,
			"duration_ms": lap.Duration.Milliseconds(),
		}).WithActor(a.String()))

		return true
	})
}

// stopwatchOp runs op under the lock and logs changes.
func (s *service) stopwatchOp(
	ctx context.Context,
	a *actor.Actor,
	msg string,
	op func(now time.Time) bool,
) (stopwatch.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	changed := op(now)
	if changed {
		s.metrics.SetStopwatchRunning(s.stopwatch.Running())
		logger.InfoKV(ctx, msg, "elapsed", stopwatch.Format(s.stopwatch.Elapsed(now)), "actor", a)
	}

	return s.stopwatch.Snapshot(now), changed
}

// Timer returns the countdown snapshot.
func (s *service) Timer(context.Context) countdown.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.timer.Snapshot(s.clock.Now())
}

// EnterTimerDigit appends a digit to the countdown input.
func (s *service) EnterTimerDigit(ctx context.Context, a *actor.Actor, digit rune) (countdown.Snapshot, bool) {
	return s.timerInput(ctx, a, func() ([]effect.Effect, bool) {
		return s.timer.EnterDigit(digit)
	})
}

// DeleteTimerDigit removes the last input digit.
func (s *service) DeleteTimerDigit(ctx context.Context, a *actor.Actor) (countdown.Snapshot, bool) {
	return s.timerInput(ctx, a, s.timer.DeleteDigit)
}

// ApplyTimerPreset replaces the input with a preset.
func (s *service) ApplyTimerPreset(ctx context.Context, a *actor.Actor, p countdown.Preset) (countdown.Snapshot, bool) {
	return s.timerInput(ctx, a, func() ([]effect.Effect, bool) {
		return s.timer.ApplyPreset(p)
	})
}

// ConfigureTimer replaces the input with a digit string.
func (s *service) ConfigureTimer(ctx context.Context, a *actor.Actor, input string) (countdown.Snapshot, bool) {
	return s.timerInput(ctx, a, func() ([]effect.Effect, bool) {
		return s.timer.Configure(input)
	})
}

// ResetTimer returns the countdown to Setup with an empty input.
func (s *service) ResetTimer(ctx context.Context, a *actor.Actor) (countdown.Snapshot, bool) {
	return s.timerInput(ctx, a, s.timer.Reset)
}

// DismissTimer acknowledges a finished countdown.
func (s *service) DismissTimer(ctx context.Context, a *actor.Actor) (countdown.Snapshot, bool) {
	return s.timerInput(ctx, a, s.timer.Dismiss)
}

// timerInput runs an effect-producing countdown operation under the lock.
// A Stop effect means a finished countdown was acknowledged.
func (s *service) timerInput(
	ctx context.Context,
	a *actor.Actor,
	op func() ([]effect.Effect, bool),
) (countdown.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	fx, changed := op()
	s.dispatcher.Apply(ctx, fx)

	if slices.ContainsFunc(fx, func(e effect.Effect) bool { return e.Kind == effect.KindStop }) {
		s.publish(ctx, events.New(events.TimerDismissed, now, nil).WithActor(a.String()))
		logger.InfoKV(ctx, "Timer dismissed", "actor", a)
	}

	snap := s.timer.Snapshot(now)
	if changed {
		logger.DebugKV(ctx, "Timer input changed", "input", snap.Input, "display", snap.Display, "actor", a)
	}

	return snap, changed
}

// StartTimer starts the countdown from Setup.
func (s *service) StartTimer(ctx context.Context, a *actor.Actor) (countdown.Snapshot, bool) {
	return s.timerTransition(ctx, a, "Timer started", s.timer.Start)
}

// PauseTimer pauses a running countdown.
func (s *service) PauseTimer(ctx context.Context, a *actor.Actor) (countdown.Snapshot, bool) {
	return s.timerTransition(ctx, a, "Timer paused", s.timer.Pause)
}

// ResumeTimer resumes a paused countdown.
func (s *service) ResumeTimer(ctx context.Context, a *actor.Actor) (countdown.Snapshot, bool) {
	return s.timerTransition(ctx, a, "Timer resumed", s.timer.Resume)
}

// timerTransition runs a countdown lifecycle transition under the lock.
func (s *service) timerTransition(
	ctx context.Context,
	a *actor.Actor,
	msg string,
	op func(now time.Time) bool,
) (countdown.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	changed := op(now)
	snap := s.timer.Snapshot(now)

	if changed {
		s.metrics.SetTimerRemaining(snap.Remaining)
		logger.InfoKV(ctx, msg, "remaining", snap.Display, "actor", a)
	}

	return snap, changed
}

// SetTimerSound changes and persists the countdown sound. soundRef is a
// catalog name or a sound URI.
func (s *service) SetTimerSound(ctx context.Context, a *actor.Actor, soundRef string) (countdown.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	uri := sound.Lookup(soundRef).URI

	if uri == s.timer.Sound() {
		return s.timer.Snapshot(now), false
	}

	s.dispatcher.Apply(ctx, s.timer.SetSound(uri))
	s.persist(ctx, settings.KeyTimerSound, func() error { return s.repo.SaveTimerSound(ctx, uri) })

	logger.InfoKV(ctx, "Timer sound changed", "sound", sound.NameOf(uri), "actor", a)

	return s.timer.Snapshot(now), true
}

// Alarms returns the entries in schedule order and the ringing entry, if any.
func (s *service) Alarms(context.Context) ([]alarm.Entry, *alarm.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.alarms.Entries()

	entry, ok := s.alarms.Ringing()
	if !ok {
		return entries, nil
	}

	return entries, &entry
}

// AddAlarm schedules a new enabled alarm. soundRef is a catalog name, a
// sound URI or empty for the default sound.
func (s *service) AddAlarm(
	ctx context.Context,
	a *actor.Actor,
	at alarm.TimeOfDay,
	label, soundRef string,
) alarm.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var uri string
	if soundRef != "" {
		uri = sound.Lookup(soundRef).URI
	}

	entry := s.alarms.Add(s.clock.Now(), at, label, uri)
	s.saveAlarms(ctx)

	logger.InfoKV(ctx, "Alarm added", "id", entry.ID, "time", entry.Time, "label", entry.Label, "actor", a)

	return entry
}

// ToggleAlarm flips the enabled flag of an alarm.
func (s *service) ToggleAlarm(ctx context.Context, a *actor.Actor, id alarm.ID) (alarm.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.alarms.Toggle(id)
	if err != nil {
		return alarm.Entry{}, err
	}

	s.saveAlarms(ctx)

	logger.InfoKV(ctx, "Alarm toggled", "id", entry.ID, "enabled", entry.Enabled, "actor", a)

	return entry, nil
}

// DeleteAlarm removes an alarm. A ringing copy keeps ringing until dismissed.
func (s *service) DeleteAlarm(ctx context.Context, a *actor.Actor, id alarm.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.alarms.Delete(id); err != nil {
		return err
	}

	s.saveAlarms(ctx)

	logger.InfoKV(ctx, "Alarm deleted", "id", id, "actor", a)

	return nil
}

// DismissAlarm silences the ringing alarm.
func (s *service) DismissAlarm(ctx context.Context, a *actor.Actor) (alarm.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	entry, fx, ok := s.alarms.Dismiss(now.In(s.location))
	if !ok {
		return alarm.Entry{}, false
	}

	s.dispatcher.Apply(ctx, fx)
	s.publish(ctx, events.New(events.AlarmDismissed, now, alarmAttributes(entry)).WithActor(a.String()))

	logger.InfoKV(ctx, "Alarm dismissed", "id", entry.ID, "label", entry.Label, "actor", a)

	return entry, true
}

// saveAlarms persists the alarm collection. Callers hold mu.
func (s *service) saveAlarms(ctx context.Context) {
	s.metrics.SetAlarms(s.alarms.Len())

	entries := s.alarms.Entries()
	s.persist(ctx, settings.KeyAlarms, func() error { return s.repo.SaveAlarms(ctx, entries) })
}

// World returns the board readings and settings.
func (s *service) World(context.Context) ([]worldclock.Reading, worldclock.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.board.Readings(s.clock.Now()), s.board.Settings()
}

// AddCity adds a zone to the board.
func (s *service) AddCity(ctx context.Context, a *actor.Actor, timezone string) (worldclock.City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	city, err := s.board.Add(timezone)
	if err != nil {
		return worldclock.City{}, err
	}

	s.saveCities(ctx)

	logger.InfoKV(ctx, "World clock added", "id", city.ID, "actor", a)

	return city, nil
}

// RemoveCity removes a city from the board.
func (s *service) RemoveCity(ctx context.Context, a *actor.Actor, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.board.Remove(id); err != nil {
		return err
	}

	s.saveCities(ctx)

	logger.InfoKV(ctx, "World clock removed", "id", id, "actor", a)

	return nil
}

// RenameCity sets a custom city name.
func (s *service) RenameCity(ctx context.Context, a *actor.Actor, id, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	city, changed, err := s.board.Rename(id, name)
	if err != nil || !changed {
		return false, err
	}

	s.saveCities(ctx)

	logger.InfoKV(ctx, "World clock renamed", "id", id, "name", city.DisplayName(), "actor", a)

	return true, nil
}

// MoveCity reorders the board.
func (s *service) MoveCity(ctx context.Context, a *actor.Actor, id string, index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := s.board.Move(id, index)
	if err != nil || !changed {
		return false, err
	}

	s.saveCities(ctx)

	logger.InfoKV(ctx, "World clock moved", "id", id, "index", index, "actor", a)

	return true, nil
}

// SetWorldSettings changes how readings are rendered.
func (s *service) SetWorldSettings(ctx context.Context, a *actor.Actor, ws worldclock.Settings) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.board.SetSettings(ws) {
		return false
	}

	s.persist(ctx, settings.KeyWorldSettings, func() error { return s.repo.SaveWorldSettings(ctx, ws) })

	logger.InfoKV(ctx, "World clock settings changed", "settings", ws, "actor", a)

	return true
}

// saveCities persists the board. Callers hold mu.
func (s *service) saveCities(ctx context.Context) {
	cities := s.board.Cities()
	s.persist(ctx, settings.KeyWorldClocks, func() error { return s.repo.SaveWorldClocks(ctx, cities) })
}

// persist runs save when a repository is configured. Failures are logged only.
func (s *service) persist(ctx context.Context, key string, save func() error) {
	if s.repo == nil {
		return
	}

	if err := save(); err != nil {
		logger.ErrorKV(ctx, "Failed to persist settings", "key", key, "error", err)
	}
}

// publish hands e to the event sink, if any.
func (s *service) publish(ctx context.Context, e events.Event) {
	if s.events == nil {
		return
	}

	s.events.Enqueue(ctx, e)
}

// alarmAttributes describes an alarm entry in an event.
func alarmAttributes(e alarm.Entry) map[string]any {
	return map[string]any{
		"alarm_id": int64(e.ID),
		"time":     e.Time.String(),
		"label":    e.Label,
		"sound":    sound.NameOf(e.Sound),
	}
}
