//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	api "github.com/oshokin/timedeck/internal/api/grpc/timedeck"
	"github.com/oshokin/timedeck/internal/config"
	"github.com/oshokin/timedeck/internal/discovery"
	"github.com/oshokin/timedeck/internal/domain/actor"
)

// Client wraps the TimeDeck gRPC client with timeouts and actor stamping.
type Client struct {
	// conn is the underlying gRPC connection to the server.
	conn *grpc.ClientConn
	// api is the TimeDeck service client.
	api *api.Client
	// health is the standard gRPC health client of the same connection.
	health healthpb.HealthClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errActorRequired is returned when an actor is not provided but is required for the operation.
	errActorRequired = errors.New("actor must be provided")
	// errRequestRequired is returned when a request body is missing.
	errRequestRequired = errors.New("request must be provided")
)

// Dial establishes a gRPC connection to the timedeck server.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(
		address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(api.CodecName)),
	)
	if err != nil {
		return nil, fmt.Errorf("dial timedeck server: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         api.NewClient(conn),
		health:      healthpb.NewHealthClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// DialDiscovered browses mDNS for a server and dials the first one found.
// The browse is bounded by timeout.
func DialDiscovered(ctx context.Context, timeout time.Duration, opts ...Option) (*Client, discovery.Service, error) {
	browseCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	found, err := discovery.Find(browseCtx)
	if err != nil {
		return nil, discovery.Service{}, err
	}

	client, err := Dial(ctx, found.Address(), opts...)
	if err != nil {
		return nil, discovery.Service{}, err
	}

	return client, found, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Healthy reports whether the server answers SERVING for the TimeDeck service.
func (c *Client) Healthy(ctx context.Context) (bool, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.health.Check(callCtx, &healthpb.HealthCheckRequest{Service: api.ServiceName})
	if err != nil {
		return false, fmt.Errorf("health check: %w", err)
	}

	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING, nil
}

// Status fetches the full snapshot of every engine.
func (c *Client) Status(ctx context.Context) (*api.StatusResponse, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.Status(callCtx, new(api.StatusRequest))
	if err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}

	return resp, nil
}

// Stopwatch performs a stopwatch action on behalf of a.
func (c *Client) Stopwatch(
	ctx context.Context,
	a *actor.Actor,
	action api.StopwatchAction,
) (*api.StopwatchResponse, error) {
	if a == nil {
		return nil, errActorRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.Stopwatch(callCtx, &api.StopwatchRequest{Actor: api.NewActor(a), Action: action})
	if err != nil {
		return nil, fmt.Errorf("stopwatch %s: %w", action, err)
	}

	return resp, nil
}

// Timer performs a countdown action on behalf of a. Value carries the digit,
// preset name, input string or sound name the action needs.
func (c *Client) Timer(
	ctx context.Context,
	a *actor.Actor,
	action api.TimerAction,
	value string,
) (*api.TimerResponse, error) {
	if a == nil {
		return nil, errActorRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.Timer(callCtx, &api.TimerRequest{Actor: api.NewActor(a), Action: action, Value: value})
	if err != nil {
		return nil, fmt.Errorf("timer %s: %w", action, err)
	}

	return resp, nil
}

// AddAlarm creates an alarm. The request's actor is replaced by a.
func (c *Client) AddAlarm(ctx context.Context, a *actor.Actor, req *api.AddAlarmRequest) (*api.AlarmResponse, error) {
	if a == nil {
		return nil, errActorRequired
	}

	if req == nil {
		return nil, errRequestRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	stamped := *req
	stamped.Actor = api.NewActor(a)

	resp, err := c.api.AddAlarm(callCtx, &stamped)
	if err != nil {
		return nil, fmt.Errorf("add alarm: %w", err)
	}

	return resp, nil
}

// ListAlarms returns the alarm list and the ringing alarm, if any.
func (c *Client) ListAlarms(ctx context.Context) (*api.ListAlarmsResponse, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.ListAlarms(callCtx, new(api.ListAlarmsRequest))
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}

	return resp, nil
}

// ToggleAlarm flips the enabled flag of alarm id.
func (c *Client) ToggleAlarm(ctx context.Context, a *actor.Actor, id int64) (*api.AlarmResponse, error) {
	if a == nil {
		return nil, errActorRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.ToggleAlarm(callCtx, &api.AlarmRequest{Actor: api.NewActor(a), ID: id})
	if err != nil {
		return nil, fmt.Errorf("toggle alarm %d: %w", id, err)
	}

	return resp, nil
}

// DeleteAlarm removes alarm id.
func (c *Client) DeleteAlarm(ctx context.Context, a *actor.Actor, id int64) (*api.AlarmResponse, error) {
	if a == nil {
		return nil, errActorRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.DeleteAlarm(callCtx, &api.AlarmRequest{Actor: api.NewActor(a), ID: id})
	if err != nil {
		return nil, fmt.Errorf("delete alarm %d: %w", id, err)
	}

	return resp, nil
}

// DismissAlarm silences the ringing alarm.
func (c *Client) DismissAlarm(ctx context.Context, a *actor.Actor) (*api.AlarmResponse, error) {
	if a == nil {
		return nil, errActorRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.DismissAlarm(callCtx, &api.DismissAlarmRequest{Actor: api.NewActor(a)})
	if err != nil {
		return nil, fmt.Errorf("dismiss alarm: %w", err)
	}

	return resp, nil
}

// World performs a world clock action. The request's actor is replaced by a.
func (c *Client) World(ctx context.Context, a *actor.Actor, req *api.WorldRequest) (*api.WorldResponse, error) {
	if req == nil {
		return nil, errRequestRequired
	}

	if a == nil && req.Action != api.WorldList {
		return nil, errActorRequired
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	stamped := *req
	stamped.Actor = api.NewActor(a)

	resp, err := c.api.World(callCtx, &stamped)
	if err != nil {
		return nil, fmt.Errorf("world %s: %w", req.Action, err)
	}

	return resp, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
