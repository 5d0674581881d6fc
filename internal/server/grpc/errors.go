package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var kindCodes = []struct {
	kind error
	code codes.Code
}{
	{common.ErrValidation, codes.InvalidArgument},
	{common.ErrUnauthorized, codes.Unauthenticated},
	{common.ErrForbidden, codes.PermissionDenied},
	{common.ErrorNotFound, codes.NotFound},
	{common.ErrConflict, codes.AlreadyExists},
}

// toStatus maps a service error to a gRPC status. Domain errors keep their
// message; storage and unexpected errors are logged and reported with a
// generic one.
func (s *GRPCServer) toStatus(ctx context.Context, method string, err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	for _, kc := range kindCodes {
		if errors.Is(err, kc.kind) {
			return status.Error(kc.code, common.Message(err))
		}
	}

	s.logger.Error(ctx, "request failed", "method", method, "error", err)
	if errors.Is(err, common.ErrStorage) {
		return status.Error(codes.Unavailable, "storage temporarily unavailable, try again")
	}
	return status.Error(codes.Internal, "internal error")
}
