package events

import (
	"context"
	"sync"

	"github.com/oshokin/timedeck/internal/logger"
)

// Queue publishes events from a background goroutine. Events that do not fit
// in the buffer are dropped with a warning.
type Queue struct {
	publisher Publisher
	events    chan Event
	wg        sync.WaitGroup
	onError   func(Event, error)
}

// NewQueue wraps publisher with a buffer of size events.
func NewQueue(publisher Publisher, size int, onError func(Event, error)) *Queue {
	if publisher == nil {
		publisher = NopPublisher{}
	}

	return &Queue{
		publisher: publisher,
		events:    make(chan Event, max(size, 1)),
		onError:   onError,
	}
}

// Start runs the delivery loop until ctx is done or Close is called.
func (q *Queue) Start(ctx context.Context) {
	q.wg.Go(func() {
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-q.events:
				if !ok {
					return
				}

				if err := q.publisher.Publish(ctx, e); err != nil {
					logger.WarnKV(ctx, "Failed to publish event", "kind", e.Kind, "error", err)

					if q.onError != nil {
						q.onError(e, err)
					}
				}
			}
		}
	})
}

// Enqueue schedules e for delivery without blocking.
func (q *Queue) Enqueue(ctx context.Context, e Event) {
	select {
	case q.events <- e:
	default:
		logger.WarnKV(ctx, "Event queue full, dropping event", "kind", e.Kind)
	}
}

// Close stops accepting events, waits for the loop and closes the publisher.
// Enqueue must not be called after Close.
func (q *Queue) Close() error {
	close(q.events)
	q.wg.Wait()

	return q.publisher.Close()
}
