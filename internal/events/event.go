package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kind names an event type.
type Kind string

const (
	// AlarmRinging is emitted when an alarm starts ringing.
	AlarmRinging Kind = "alarm.ringing"
	// AlarmDismissed is emitted when a ringing alarm is dismissed.
	AlarmDismissed Kind = "alarm.dismissed"
	// TimerFinished is emitted when the countdown reaches zero.
	TimerFinished Kind = "timer.finished"
	// TimerDismissed is emitted when a finished countdown is acknowledged.
	TimerDismissed Kind = "timer.dismissed"
	// StopwatchLap is emitted for every lap.
	StopwatchLap Kind = "stopwatch.lap"
)

// Event is a single published occurrence.
type Event struct {
	ID         uuid.UUID      `json:"id"`
	Kind       Kind           `json:"kind"`
	At         time.Time      `json:"at"`
	Actor      string         `json:"actor,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// New returns an event with a fresh id.
func New(kind Kind, at time.Time, attributes map[string]any) Event {
	return Event{
		ID:         uuid.New(),
		Kind:       kind,
		At:         at,
		Attributes: attributes,
	}
}

// WithActor returns a copy of e attributed to actor.
func (e Event) WithActor(actor string) Event {
	e.Actor = actor

	return e
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher discards events.
type NopPublisher struct{}

// Publish does nothing.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close does nothing.
func (NopPublisher) Close() error { return nil }
