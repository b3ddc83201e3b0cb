package timedeck

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "timedeck.v1.TimeDeck"

// Full method names.
const (
	MethodStatus       = "/" + ServiceName + "/Status"
	MethodStopwatch    = "/" + ServiceName + "/Stopwatch"
	MethodTimer        = "/" + ServiceName + "/Timer"
	MethodAddAlarm     = "/" + ServiceName + "/AddAlarm"
	MethodListAlarms   = "/" + ServiceName + "/ListAlarms"
	MethodToggleAlarm  = "/" + ServiceName + "/ToggleAlarm"
	MethodDeleteAlarm  = "/" + ServiceName + "/DeleteAlarm"
	MethodDismissAlarm = "/" + ServiceName + "/DismissAlarm"
	MethodWorld        = "/" + ServiceName + "/World"
)

// TimeDeckServer is the server API of the TimeDeck service.
//
//nolint:revive // Stutters on purpose, mirrors generated service names.
type TimeDeckServer interface {
	Status(ctx context.Context, req *StatusRequest) (*StatusResponse, error)
	Stopwatch(ctx context.Context, req *StopwatchRequest) (*StopwatchResponse, error)
	Timer(ctx context.Context, req *TimerRequest) (*TimerResponse, error)
	AddAlarm(ctx context.Context, req *AddAlarmRequest) (*AlarmResponse, error)
	ListAlarms(ctx context.Context, req *ListAlarmsRequest) (*ListAlarmsResponse, error)
	ToggleAlarm(ctx context.Context, req *AlarmRequest) (*AlarmResponse, error)
	DeleteAlarm(ctx context.Context, req *AlarmRequest) (*AlarmResponse, error)
	DismissAlarm(ctx context.Context, req *DismissAlarmRequest) (*AlarmResponse, error)
	World(ctx context.Context, req *WorldRequest) (*WorldResponse, error)
}

// RegisterTimeDeckServer registers srv on s.
func RegisterTimeDeckServer(s grpc.ServiceRegistrar, srv TimeDeckServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the TimeDeck service. Payloads use the CBOR codec.
//
//nolint:gochecknoglobals // grpc.ServiceRegistrar takes a descriptor pointer.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TimeDeckServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Status", Handler: unary(MethodStatus, TimeDeckServer.Status)},
		{MethodName: "Stopwatch", Handler: unary(MethodStopwatch, TimeDeckServer.Stopwatch)},
		{MethodName: "Timer", Handler: unary(MethodTimer, TimeDeckServer.Timer)},
		{MethodName: "AddAlarm", Handler: unary(MethodAddAlarm, TimeDeckServer.AddAlarm)},
		{MethodName: "ListAlarms", Handler: unary(MethodListAlarms, TimeDeckServer.ListAlarms)},
		{MethodName: "ToggleAlarm", Handler: unary(MethodToggleAlarm, TimeDeckServer.ToggleAlarm)},
		{MethodName: "DeleteAlarm", Handler: unary(MethodDeleteAlarm, TimeDeckServer.DeleteAlarm)},
		{MethodName: "DismissAlarm", Handler: unary(MethodDismissAlarm, TimeDeckServer.DismissAlarm)},
		{MethodName: "World", Handler: unary(MethodWorld, TimeDeckServer.World)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "timedeck/v1/timedeck.cbor",
}

// unary adapts a typed server method to a grpc.MethodHandler.
func unary[Req, Resp any](
	fullMethod string,
	call func(TimeDeckServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}

		if interceptor == nil {
			return call(srv.(TimeDeckServer), ctx, in) //nolint:forcetypeassert // Checked by RegisterService.
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}

		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TimeDeckServer), ctx, req.(*Req)) //nolint:forcetypeassert // Same request type.
		}

		return interceptor(ctx, in, info, handler)
	}
}

// Client is the client API of the TimeDeck service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient returns a client bound to cc.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// invoke runs one unary call with the CBOR codec.
func invoke[Resp any](ctx context.Context, c *Client, method string, req any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)

	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, method, req, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// Status calls TimeDeck.Status.
func (c *Client) Status(ctx context.Context, req *StatusRequest, opts ...grpc.CallOption) (*StatusResponse, error) {
	return invoke[StatusResponse](ctx, c, MethodStatus, req, opts...)
}

// Stopwatch calls TimeDeck.Stopwatch.
func (c *Client) Stopwatch(
	ctx context.Context,
	req *StopwatchRequest,
	opts ...grpc.CallOption,
) (*StopwatchResponse, error) {
	return invoke[StopwatchResponse](ctx, c, MethodStopwatch, req, opts...)
}

// Timer calls TimeDeck.Timer.
func (c *Client) Timer(ctx context.Context, req *TimerRequest, opts ...grpc.CallOption) (*TimerResponse, error) {
	return invoke[TimerResponse](ctx, c, MethodTimer, req, opts...)
}

// AddAlarm calls TimeDeck.AddAlarm.
func (c *Client) AddAlarm(ctx context.Context, req *AddAlarmRequest, opts ...grpc.CallOption) (*AlarmResponse, error) {
	return invoke[AlarmResponse](ctx, c, MethodAddAlarm, req, opts...)
}

// ListAlarms calls TimeDeck.ListAlarms.
func (c *Client) ListAlarms(
	ctx context.Context,
	req *ListAlarmsRequest,
	opts ...grpc.CallOption,
) (*ListAlarmsResponse, error) {
	return invoke[ListAlarmsResponse](ctx, c, MethodListAlarms, req, opts...)
}

// ToggleAlarm calls TimeDeck.ToggleAlarm.
func (c *Client) ToggleAlarm(ctx context.Context, req *AlarmRequest, opts ...grpc.CallOption) (*AlarmResponse, error) {
	return invoke[AlarmResponse](ctx, c, MethodToggleAlarm, req, opts...)
}

// DeleteAlarm calls TimeDeck.DeleteAlarm.
func (c *Client) DeleteAlarm(ctx context.Context, req *AlarmRequest, opts ...grpc.CallOption) (*AlarmResponse, error) {
	return invoke[AlarmResponse](ctx, c, MethodDeleteAlarm, req, opts...)
}

// DismissAlarm calls TimeDeck.DismissAlarm.
func (c *Client) DismissAlarm(
	ctx context.Context,
	req *DismissAlarmRequest,
	opts ...grpc.CallOption,
) (*AlarmResponse, error) {
	return invoke[AlarmResponse](ctx, c, MethodDismissAlarm, req, opts...)
}

// World calls TimeDeck.World.
func (c *Client) World(ctx context.Context, req *WorldRequest, opts ...grpc.CallOption) (*WorldResponse, error) {
	return invoke[WorldResponse](ctx, c, MethodWorld, req, opts...)
}
