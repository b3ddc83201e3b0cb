package timedeck

import (
	"context"
	"errors"
	"unicode/utf8"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/oshokin/timedeck/internal/domain/actor"
	"github.com/oshokin/timedeck/internal/domain/alarm"
	"github.com/oshokin/timedeck/internal/domain/countdown"
	"github.com/oshokin/timedeck/internal/domain/stopwatch"
	"github.com/oshokin/timedeck/internal/domain/worldclock"
)

// StopwatchService runs stopwatch operations. The bool reports whether state changed.
type StopwatchService interface {
	Stopwatch(ctx context.Context) stopwatch.Snapshot
	StartStopwatch(ctx context.Context, a *actor.Actor) (stopwatch.Snapshot, bool)
	StopStopwatch(ctx context.Context, a *actor.Actor) (stopwatch.Snapshot, bool)
	LapStopwatch(ctx context.Context, a *actor.Actor) (stopwatch.Snapshot, bool)
	ResetStopwatch(ctx context.Context, a *actor.Actor) (stopwatch.Snapshot, bool)
}

// TimerService runs countdown operations.
type TimerService interface {
	Timer(ctx context.Context) countdown.Snapshot
	EnterTimerDigit(ctx context.Context, a *actor.Actor, digit rune) (countdown.Snapshot, bool)
	DeleteTimerDigit(ctx context.Context, a *actor.Actor) (countdown.Snapshot, bool)
	ApplyTimerPreset(ctx context.Context, a *actor.Actor, p countdown.Preset) (countdown.Snapshot, bool)
	ConfigureTimer(ctx context.Context, a *actor.Actor, input string) (countdown.Snapshot, bool)
	StartTimer(ctx context.Context, a *actor.Actor) (countdown.Snapshot, bool)
	PauseTimer(ctx context.Context, a *actor.Actor) (countdown.Snapshot, bool)
	ResumeTimer(ctx context.Context, a *actor.Actor) (countdown.Snapshot, bool)
	ResetTimer(ctx context.Context, a *actor.Actor) (countdown.Snapshot, bool)
	DismissTimer(ctx context.Context, a *actor.Actor) (countdown.Snapshot, bool)
	SetTimerSound(ctx context.Context, a *actor.Actor, soundRef string) (countdown.Snapshot, bool)
}

// AlarmService runs alarm scheduler operations.
type AlarmService interface {
	Alarms(ctx context.Context) ([]alarm.Entry, *alarm.Entry)
	AddAlarm(ctx context.Context, a *actor.Actor, at alarm.TimeOfDay, label, soundRef string) alarm.Entry
	ToggleAlarm(ctx context.Context, a *actor.Actor, id alarm.ID) (alarm.Entry, error)
	DeleteAlarm(ctx context.Context, a *actor.Actor, id alarm.ID) error
	DismissAlarm(ctx context.Context, a *actor.Actor) (alarm.Entry, bool)
}

// WorldService runs world clock board operations.
type WorldService interface {
	World(ctx context.Context) ([]worldclock.Reading, worldclock.Settings)
	AddCity(ctx context.Context, a *actor.Actor, timezone string) (worldclock.City, error)
	RemoveCity(ctx context.Context, a *actor.Actor, id string) error
	RenameCity(ctx context.Context, a *actor.Actor, id, name string) (bool, error)
	MoveCity(ctx context.Context, a *actor.Actor, id string, index int) (bool, error)
	SetWorldSettings(ctx context.Context, a *actor.Actor, s worldclock.Settings) bool
}

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	StopwatchService
	TimerService
	AlarmService
	WorldService

	Status(ctx context.Context) Status
}

// Server implements the TimeDeck gRPC API.
type Server struct {
	// service provides the business logic.
	service Service
	// version is reported by Status.
	version string
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service, version string) *Server {
	return &Server{
		service: service,
		version: version,
	}
}

// Status returns a snapshot of every facility.
func (s *Server) Status(ctx context.Context, _ *StatusRequest) (*StatusResponse, error) {
	return NewStatusResponse(s.service.Status(ctx), s.version), nil
}

// Stopwatch runs a stopwatch action.
func (s *Server) Stopwatch(ctx context.Context, req *StopwatchRequest) (*StopwatchResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	a := toDomainActor(req.Actor)

	var (
		snap    stopwatch.Snapshot
		changed bool
	)

	switch req.Action {
	case StopwatchShow, "":
		snap = s.service.Stopwatch(ctx)
	case StopwatchStart:
		snap, changed = s.service.StartStopwatch(ctx, a)
	case StopwatchStop:
		snap, changed = s.service.StopStopwatch(ctx, a)
	case StopwatchLap:
		snap, changed = s.service.LapStopwatch(ctx, a)
	case StopwatchReset:
		snap, changed = s.service.ResetStopwatch(ctx, a)
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown stopwatch action %q", req.Action)
	}

	return &StopwatchResponse{Changed: changed, State: NewStopwatchState(snap)}, nil
}

// Timer runs a countdown action.
//
//nolint:cyclop // One case per action.
func (s *Server) Timer(ctx context.Context, req *TimerRequest) (*TimerResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	a := toDomainActor(req.Actor)

	var (
		snap    countdown.Snapshot
		changed bool
	)

	switch req.Action {
	case TimerShow, "":
		snap = s.service.Timer(ctx)
	case TimerDigit:
		r, size := utf8.DecodeRuneInString(req.Value)
		if size == 0 || size != len(req.Value) || r < '0' || r > '9' {
			return nil, status.Errorf(codes.InvalidArgument, "digit must be a single 0-9, got %q", req.Value)
		}

		snap, changed = s.service.EnterTimerDigit(ctx, a, r)
	case TimerDelete:
		snap, changed = s.service.DeleteTimerDigit(ctx, a)
	case TimerPreset:
		p, ok := countdown.PresetByName(req.Value)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "unknown preset %q", req.Value)
		}

		snap, changed = s.service.ApplyTimerPreset(ctx, a, p)
	case TimerInput:
		snap, changed = s.service.ConfigureTimer(ctx, a, req.Value)
	case TimerStart:
		snap, changed = s.service.StartTimer(ctx, a)
	case TimerPause:
		snap, changed = s.service.PauseTimer(ctx, a)
	case TimerResume:
		snap, changed = s.service.ResumeTimer(ctx, a)
	case TimerReset:
		snap, changed = s.service.ResetTimer(ctx, a)
	case TimerDismiss:
		snap, changed = s.service.DismissTimer(ctx, a)
	case TimerSound:
		if req.Value == "" {
			return nil, status.Error(codes.InvalidArgument, "sound is required")
		}

		snap, changed = s.service.SetTimerSound(ctx, a, req.Value)
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown timer action %q", req.Action)
	}

	return &TimerResponse{Changed: changed, State: NewTimerState(snap)}, nil
}

// AddAlarm schedules a new alarm.
func (s *Server) AddAlarm(ctx context.Context, req *AddAlarmRequest) (*AlarmResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	at, err := requestedTime(req)
	if err != nil {
		return nil, err
	}

	entry := s.service.AddAlarm(ctx, toDomainActor(req.Actor), at, req.Label, req.Sound)
	wire := NewAlarm(entry)

	return &AlarmResponse{Changed: true, Alarm: &wire}, nil
}

// requestedTime reads the 24-hour or 12-hour form of an AddAlarmRequest.
func requestedTime(req *AddAlarmRequest) (alarm.TimeOfDay, error) {
	if req.Meridiem != "" {
		m, ok := alarm.ParseMeridiem(req.Meridiem)
		if !ok {
			return alarm.TimeOfDay{}, status.Errorf(codes.InvalidArgument, "unknown meridiem %q", req.Meridiem)
		}

		return alarm.From12Hour(req.Hour, req.Minute, m), nil
	}

	at, err := alarm.ParseEntry(req.Time)
	if err != nil {
		return alarm.TimeOfDay{}, status.Error(codes.InvalidArgument, err.Error())
	}

	return at, nil
}

// ListAlarms returns alarms in schedule order and the ringing one, if any.
func (s *Server) ListAlarms(ctx context.Context, _ *ListAlarmsRequest) (*ListAlarmsResponse, error) {
	entries, ringing := s.service.Alarms(ctx)

	resp := &ListAlarmsResponse{Alarms: NewAlarms(entries)}
	if ringing != nil {
		wire := NewAlarm(*ringing)
		resp.Ringing = &wire
	}

	return resp, nil
}

// ToggleAlarm flips an alarm's enabled flag.
func (s *Server) ToggleAlarm(ctx context.Context, req *AlarmRequest) (*AlarmResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	entry, err := s.service.ToggleAlarm(ctx, toDomainActor(req.Actor), alarm.ID(req.ID))
	if err != nil {
		return nil, toStatus(err)
	}

	wire := NewAlarm(entry)

	return &AlarmResponse{Changed: true, Alarm: &wire}, nil
}

// DeleteAlarm removes an alarm.
func (s *Server) DeleteAlarm(ctx context.Context, req *AlarmRequest) (*AlarmResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if err := s.service.DeleteAlarm(ctx, toDomainActor(req.Actor), alarm.ID(req.ID)); err != nil {
		return nil, toStatus(err)
	}

	return &AlarmResponse{Changed: true}, nil
}

// DismissAlarm silences the ringing alarm. Changed is false when nothing rang.
func (s *Server) DismissAlarm(ctx context.Context, req *DismissAlarmRequest) (*AlarmResponse, error) {
	var a *actor.Actor
	if req != nil {
		a = toDomainActor(req.Actor)
	}

	entry, ok := s.service.DismissAlarm(ctx, a)
	if !ok {
		return &AlarmResponse{}, nil
	}

	wire := NewAlarm(entry)

	return &AlarmResponse{Changed: true, Alarm: &wire}, nil
}

// World runs a world clock action and returns the resulting board.
//
//nolint:cyclop // One case per action.
func (s *Server) World(ctx context.Context, req *WorldRequest) (*WorldResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	a := toDomainActor(req.Actor)

	var (
		changed bool
		err     error
	)

	switch req.Action {
	case WorldList, "":
	case WorldAdd:
		_, err = s.service.AddCity(ctx, a, req.Timezone)
		changed = err == nil
	case WorldRemove:
		err = s.service.RemoveCity(ctx, a, req.ID)
		changed = err == nil
	case WorldRename:
		changed, err = s.service.RenameCity(ctx, a, req.ID, req.Name)
	case WorldMove:
		changed, err = s.service.MoveCity(ctx, a, req.ID, req.Index)
	case WorldSettings:
		if req.Settings == nil {
			return nil, status.Error(codes.InvalidArgument, "settings are required")
		}

		changed = s.service.SetWorldSettings(ctx, a, toDomainSettings(req.Settings))
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown world action %q", req.Action)
	}

	if err != nil {
		return nil, toStatus(err)
	}

	readings, settings := s.service.World(ctx)

	return &WorldResponse{
		Changed:  changed,
		Cities:   NewCityReadings(readings),
		Settings: NewWorldClockSettings(settings),
	}, nil
}

// toStatus maps domain sentinels to gRPC status codes.
func toStatus(err error) error {
	switch {
	case errors.Is(err, alarm.ErrNotFound), errors.Is(err, worldclock.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, worldclock.ErrUnknownTimezone):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, worldclock.ErrDuplicate):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, worldclock.ErrLocalFixed):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
