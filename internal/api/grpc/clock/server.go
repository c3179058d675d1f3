package clock

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/hydration-clock/internal/domain/alarm"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	ToggleReminders(ctx context.Context) bool
	SetReminders(ctx context.Context, enabled bool) bool
	AddAlarm(ctx context.Context, at domain.TimeOfDay) (int, error)
	EditAlarm(ctx context.Context, index int, at domain.TimeOfDay) error
	ToggleAlarm(ctx context.Context, index int) (bool, error)
	SetAlarmArmed(ctx context.Context, index int, armed bool) error
	Status(ctx context.Context) domain.Status
}

var _ ClockServiceServer = (*Server)(nil)

// Server implements the ClockService gRPC API.
type Server struct {
	// service provides the widget commands.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// ToggleReminders flips the reminder flag.
func (s *Server) ToggleReminders(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return wrapperspb.Bool(s.service.ToggleReminders(ctx)), nil
}

// SetReminders sets the reminder flag.
func (s *Server) SetReminders(ctx context.Context, req *wrapperspb.BoolValue) (*wrapperspb.BoolValue, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	return wrapperspb.Bool(s.service.SetReminders(ctx, req.GetValue())), nil
}

// AddAlarm parses "HH:MM" and appends an armed alarm.
func (s *Server) AddAlarm(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.Int64Value, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	at, err := domain.ParseTimeOfDay(req.GetValue())
	if err != nil {
		return nil, toStatusError(err)
	}

	index, err := s.service.AddAlarm(ctx, at)
	if err != nil {
		return nil, toStatusError(err)
	}

	return wrapperspb.Int64(int64(index)), nil
}

// EditAlarm changes the time of an existing alarm.
func (s *Server) EditAlarm(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	index, at, err := parseEditRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := s.service.EditAlarm(ctx, index, at); err != nil {
		return nil, toStatusError(err)
	}

	return new(emptypb.Empty), nil
}

// ToggleAlarm flips the armed flag of an alarm.
func (s *Server) ToggleAlarm(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	index, err := indexFromInt64(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	armed, err := s.service.ToggleAlarm(ctx, index)
	if err != nil {
		return nil, toStatusError(err)
	}

	return wrapperspb.Bool(armed), nil
}

// SetAlarmArmed arms or disarms an alarm.
func (s *Server) SetAlarmArmed(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	index, armed, err := parseArmRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := s.service.SetAlarmArmed(ctx, index, armed); err != nil {
		return nil, toStatusError(err)
	}

	return new(emptypb.Empty), nil
}

// GetStatus returns the current time, reminder flag and alarm list.
func (s *Server) GetStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return StatusToProto(s.service.Status(ctx)), nil
}

// toStatusError maps domain errors to gRPC status codes.
func toStatusError(err error) error {
	switch {
	case errors.Is(err, domain.ErrOutOfRange):
		return status.Error(codes.OutOfRange, err.Error())
	case errors.Is(err, domain.ErrInvalidTime):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "unable to apply command")
	}
}
