package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/timedeck/internal/config"
)

// fakeToken is an already-completed mqtt.Token.
type fakeToken struct {
	err     error
	pending bool
}

// Wait reports completion.
func (t *fakeToken) Wait() bool { return !t.pending }

// WaitTimeout reports completion unless the token is pending.
func (t *fakeToken) WaitTimeout(time.Duration) bool { return !t.pending }

// Done returns a closed channel.
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)

	return ch
}

// Error returns the configured error.
func (t *fakeToken) Error() error { return t.err }

// published is a captured Publish call.
type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// fakeClient records publishes. Methods not overridden panic through the nil embedded interface.
type fakeClient struct {
	mqtt.Client

	mu           sync.Mutex
	messages     []published
	token        *fakeToken
	disconnected bool
}

// Publish records the message.
func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload any) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, _ := payload.([]byte)
	c.messages = append(c.messages, published{topic: topic, qos: qos, retained: retained, payload: data})

	if c.token != nil {
		return c.token
	}

	return new(fakeToken)
}

// Disconnect records the call.
func (c *fakeClient) Disconnect(uint) {
	c.disconnected = true
}

// TestNew assigns ids and attributes.
func TestNew(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.June, 1, 7, 30, 0, 0, time.UTC)
	a := New(AlarmRinging, at, map[string]any{"label": "Wake Up"})
	b := New(AlarmRinging, at, nil).WithActor("o.shokin@kitchen")

	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, "o.shokin@kitchen", b.Actor)
	require.Empty(t, a.Actor)
}

// TestMQTTPublisher_Publish checks topic layout and payload.
func TestMQTTPublisher_Publish(t *testing.T) {
	t.Parallel()

	client := new(fakeClient)
	p := newMQTTPublisher(client, "home/timedeck/", time.Second)

	at := time.Date(2024, time.June, 1, 7, 30, 0, 0, time.UTC)
	e := New(TimerFinished, at, map[string]any{"total_seconds": 300})

	require.NoError(t, p.Publish(context.Background(), e))
	require.Len(t, client.messages, 1)

	msg := client.messages[0]
	require.Equal(t, "home/timedeck/timer/finished", msg.topic)
	require.Equal(t, byte(qos), msg.qos)
	require.False(t, msg.retained)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.payload, &decoded))
	require.Equal(t, e.ID.String(), decoded["id"])
	require.Equal(t, "timer.finished", decoded["kind"])
	require.Equal(t, "2024-06-01T07:30:00Z", decoded["at"])

	require.NoError(t, p.Close())
	require.True(t, client.disconnected)
}

// TestMQTTPublisher_Errors surfaces broker errors and timeouts.
func TestMQTTPublisher_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("not authorized")

	client := &fakeClient{token: &fakeToken{err: boom}}
	p := newMQTTPublisher(client, "timedeck", time.Second)
	require.ErrorIs(t, p.Publish(context.Background(), New(StopwatchLap, time.Now(), nil)), boom)

	client.token = &fakeToken{pending: true}
	require.ErrorIs(t, p.Publish(context.Background(), New(StopwatchLap, time.Now(), nil)), errTimeout)

	_, err := NewMQTTPublisher(config.MQTT{}, time.Second)
	require.ErrorIs(t, err, errBrokerRequired)
}

// recordingPublisher collects events for queue tests.
type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
	closed bool
}

// Publish records e.
func (p *recordingPublisher) Publish(_ context.Context, e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, e)

	return p.err
}

// Close records the call.
func (p *recordingPublisher) Close() error {
	p.closed = true

	return nil
}

// TestQueue delivers events in order and drains on Close.
func TestQueue(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{err: errors.New("offline")}

	var failures int

	q := NewQueue(pub, 8, func(Event, error) { failures++ })
	q.Start(context.Background())

	for _, k := range []Kind{AlarmRinging, AlarmDismissed, TimerFinished} {
		q.Enqueue(context.Background(), New(k, time.Now(), nil))
	}

	require.NoError(t, q.Close())
	require.True(t, pub.closed)
	require.Len(t, pub.events, 3)
	require.Equal(t, TimerFinished, pub.events[2].Kind)
	require.Equal(t, 3, failures)
}

// TestQueue_DropsWhenFull never blocks the caller.
func TestQueue_DropsWhenFull(t *testing.T) {
	t.Parallel()

	pub := new(recordingPublisher)
	q := NewQueue(pub, 1, nil)

	// Not started: the second event does not fit.
	q.Enqueue(context.Background(), New(AlarmRinging, time.Now(), nil))
	q.Enqueue(context.Background(), New(AlarmRinging, time.Now(), nil))

	require.NoError(t, q.Close())
	require.Empty(t, pub.events)
	require.NoError(t, NopPublisher{}.Publish(context.Background(), Event{}))
}
