package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/catsocial/internal/rpc"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const identityKey ctxKey = "identity"

// identity returns the caller resolved by sessionInterceptor, or nil for an
// anonymous call.
func identity(ctx context.Context) *models.User {
	u, _ := ctx.Value(identityKey).(*models.User)
	return u
}

func sessionToken(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(rpc.SessionTokenKey); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// sessionInterceptor resolves the session token, if any, into the caller's
// identity. A call without a token proceeds anonymously; whether that is
// acceptable is up to the service. A token that resolves to nobody fails the
// call.
func (s *GRPCServer) sessionInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	token := sessionToken(ctx)
	if token == "" {
		return handler(ctx, req)
	}

	u, err := s.svc.Sessions.Resolve(ctx, token)
	if err != nil {
		return nil, s.toStatus(ctx, info.FullMethod, err)
	}

	return handler(context.WithValue(ctx, identityKey, u), req)
}

// observeInterceptor logs and reports the duration and status code of every
// call.
func (s *GRPCServer) observeInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	elapsed := time.Since(start)

	code := status.Code(err)
	if s.observer != nil {
		s.observer.ObserveRPC(info.FullMethod, code.String(), elapsed)
	}
	if code != codes.OK {
		s.logger.Debug(ctx, "request failed", "method", info.FullMethod, "code", code.String(), "duration", elapsed)
	}
	return resp, err
}
