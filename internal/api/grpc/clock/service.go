package clock

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "hydrationclock.v1.ClockService"

// Method names.
const (
	MethodToggleReminders = "ToggleReminders"
	MethodSetReminders    = "SetReminders"
	MethodAddAlarm        = "AddAlarm"
	MethodEditAlarm       = "EditAlarm"
	MethodToggleAlarm     = "ToggleAlarm"
	MethodSetAlarmArmed   = "SetAlarmArmed"
	MethodGetStatus       = "GetStatus"
)

// FullMethod returns the "/service/method" path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// ClockServiceServer is the server API for the clock service.
type ClockServiceServer interface {
	ToggleReminders(ctx context.Context, req *emptypb.Empty) (*wrapperspb.BoolValue, error)
	SetReminders(ctx context.Context, req *wrapperspb.BoolValue) (*wrapperspb.BoolValue, error)
	AddAlarm(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.Int64Value, error)
	EditAlarm(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error)
	ToggleAlarm(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error)
	SetAlarmArmed(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error)
	GetStatus(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// RegisterClockServiceServer registers srv on registrar.
func RegisterClockServiceServer(registrar grpc.ServiceRegistrar, srv ClockServiceServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the clock service for grpc.Server.
//
//nolint:gochecknoglobals // grpc.ServiceRegistrar takes the descriptor by pointer.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: MethodToggleReminders,
			Handler: unaryHandler(MethodToggleReminders, newEmpty,
				func(s ClockServiceServer, ctx context.Context, req *emptypb.Empty) (proto.Message, error) {
					return s.ToggleReminders(ctx, req)
				}),
		},
		{
			MethodName: MethodSetReminders,
			Handler: unaryHandler(MethodSetReminders, newBool,
				func(s ClockServiceServer, ctx context.Context, req *wrapperspb.BoolValue) (proto.Message, error) {
					return s.SetReminders(ctx, req)
				}),
		},
		{
			MethodName: MethodAddAlarm,
			Handler: unaryHandler(MethodAddAlarm, newString,
				func(s ClockServiceServer, ctx context.Context, req *wrapperspb.StringValue) (proto.Message, error) {
					return s.AddAlarm(ctx, req)
				}),
		},
		{
			MethodName: MethodEditAlarm,
			Handler: unaryHandler(MethodEditAlarm, newStruct,
				func(s ClockServiceServer, ctx context.Context, req *structpb.Struct) (proto.Message, error) {
					return s.EditAlarm(ctx, req)
				}),
		},
		{
			MethodName: MethodToggleAlarm,
			Handler: unaryHandler(MethodToggleAlarm, newInt64,
				func(s ClockServiceServer, ctx context.Context, req *wrapperspb.Int64Value) (proto.Message, error) {
					return s.ToggleAlarm(ctx, req)
				}),
		},
		{
			MethodName: MethodSetAlarmArmed,
			Handler: unaryHandler(MethodSetAlarmArmed, newStruct,
				func(s ClockServiceServer, ctx context.Context, req *structpb.Struct) (proto.Message, error) {
					return s.SetAlarmArmed(ctx, req)
				}),
		},
		{
			MethodName: MethodGetStatus,
			Handler: unaryHandler(MethodGetStatus, newEmpty,
				func(s ClockServiceServer, ctx context.Context, req *emptypb.Empty) (proto.Message, error) {
					return s.GetStatus(ctx, req)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hydrationclock/v1/clock.proto",
}

func newEmpty() *emptypb.Empty { return new(emptypb.Empty) }

func newBool() *wrapperspb.BoolValue { return new(wrapperspb.BoolValue) }

func newString() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }

func newInt64() *wrapperspb.Int64Value { return new(wrapperspb.Int64Value) }

func newStruct() *structpb.Struct { return new(structpb.Struct) }

// unaryHandler builds the grpc.MethodHandler for one method: decode into a
// fresh request, then call through the interceptor chain if there is one.
func unaryHandler[Req proto.Message](
	method string,
	newRequest func() Req,
	call func(ClockServiceServer, context.Context, Req) (proto.Message, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newRequest()
		if err := dec(in); err != nil {
			return nil, err
		}

		server, _ := srv.(ClockServiceServer)

		if interceptor == nil {
			return call(server, ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}

		handler := func(ctx context.Context, req any) (any, error) {
			typed, _ := req.(Req)

			return call(server, ctx, typed)
		}

		return interceptor(ctx, in, info, handler)
	}
}

// ClockServiceClient is the client API for the clock service.
type ClockServiceClient interface {
	ToggleReminders(ctx context.Context, req *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	SetReminders(ctx context.Context, req *wrapperspb.BoolValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	AddAlarm(ctx context.Context, req *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	EditAlarm(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ToggleAlarm(ctx context.Context, req *wrapperspb.Int64Value, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	SetAlarmArmed(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetStatus(ctx context.Context, req *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type clockServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewClockServiceClient returns a client stub over cc.
func NewClockServiceClient(cc grpc.ClientConnInterface) ClockServiceClient {
	return &clockServiceClient{cc: cc}
}

func invoke[Resp proto.Message](
	ctx context.Context,
	cc grpc.ClientConnInterface,
	method string,
	req proto.Message,
	out Resp,
	opts []grpc.CallOption,
) (Resp, error) {
	if err := cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		var zero Resp

		return zero, err
	}

	return out, nil
}

func (c *clockServiceClient) ToggleReminders(
	ctx context.Context,
	req *emptypb.Empty,
	opts ...grpc.CallOption,
) (*wrapperspb.BoolValue, error) {
	return invoke(ctx, c.cc, MethodToggleReminders, req, new(wrapperspb.BoolValue), opts)
}

func (c *clockServiceClient) SetReminders(
	ctx context.Context,
	req *wrapperspb.BoolValue,
	opts ...grpc.CallOption,
) (*wrapperspb.BoolValue, error) {
	return invoke(ctx, c.cc, MethodSetReminders, req, new(wrapperspb.BoolValue), opts)
}

func (c *clockServiceClient) AddAlarm(
	ctx context.Context,
	req *wrapperspb.StringValue,
	opts ...grpc.CallOption,
) (*wrapperspb.Int64Value, error) {
	return invoke(ctx, c.cc, MethodAddAlarm, req, new(wrapperspb.Int64Value), opts)
}

func (c *clockServiceClient) EditAlarm(
	ctx context.Context,
	req *structpb.Struct,
	opts ...grpc.CallOption,
) (*emptypb.Empty, error) {
	return invoke(ctx, c.cc, MethodEditAlarm, req, new(emptypb.Empty), opts)
}

func (c *clockServiceClient) ToggleAlarm(
	ctx context.Context,
	req *wrapperspb.Int64Value,
	opts ...grpc.CallOption,
) (*wrapperspb.BoolValue, error) {
	return invoke(ctx, c.cc, MethodToggleAlarm, req, new(wrapperspb.BoolValue), opts)
}

func (c *clockServiceClient) SetAlarmArmed(
	ctx context.Context,
	req *structpb.Struct,
	opts ...grpc.CallOption,
) (*emptypb.Empty, error) {
	return invoke(ctx, c.cc, MethodSetAlarmArmed, req, new(emptypb.Empty), opts)
}

func (c *clockServiceClient) GetStatus(
	ctx context.Context,
	req *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return invoke(ctx, c.cc, MethodGetStatus, req, new(structpb.Struct), opts)
}
