package clock

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/oshokin/hydration-clock/internal/logger"
)

// Metadata keys carrying the calling actor.
const (
	hostnameKey = "x-actor-hostname"
	usernameKey = "x-actor-username"
)

// Actor identifies who issued a control command.
type Actor struct {
	Hostname string
	Username string
}

// String renders the actor as user@host.
func (a Actor) String() string {
	return fmt.Sprintf("%s@%s", a.Username, a.Hostname)
}

// WithActor attaches actor to the outgoing call metadata.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return metadata.AppendToOutgoingContext(ctx, hostnameKey, actor.Hostname, usernameKey, actor.Username)
}

// ActorFromContext reads the actor from incoming call metadata.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return Actor{}, false
	}

	hosts, users := md.Get(hostnameKey), md.Get(usernameKey)
	if len(hosts) == 0 || len(users) == 0 {
		return Actor{}, false
	}

	return Actor{
		Hostname: hosts[0],
		Username: users[0],
	}, true
}

// LoggingInterceptor tags the request logger with the method and actor and
// logs every failed call.
func LoggingInterceptor(base context.Context) grpc.UnaryServerInterceptor {
	baseLogger := logger.FromContext(base)

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = logger.ToContext(ctx, baseLogger)
		ctx = logger.WithKV(ctx, "method", info.FullMethod)

		if actor, ok := ActorFromContext(ctx); ok {
			ctx = logger.WithKV(ctx, "actor", actor.String())
		}

		resp, err := handler(ctx, req)
		if err != nil {
			logger.WarnKV(ctx, "Control call failed", "error", err)
		}

		return resp, err
	}
}
