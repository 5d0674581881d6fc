package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/catsocial/internal/rpc"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn

	mu    sync.RWMutex
	token string
}

var _ Client = (*GRPCClient)(nil)

func withSessionToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	md.Set(rpc.SessionTokenKey, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) sessionTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token != "" {
		ctx = withSessionToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewGRPCClient connects to endpointURL. Extra dial options are appended to
// the defaults (plaintext, JSON codec, session interceptor).
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
		grpc.WithUnaryInterceptor(c.sessionTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func (s *GRPCClient) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) invoke(ctx context.Context, method string, req, resp any) error {
	return s.mapError(s.conn.Invoke(ctx, rpc.FullMethod(method), req, resp))
}

func (s *GRPCClient) Register(ctx context.Context, username, passwordHash, email string) (string, error) {
	var resp rpc.SessionResponse
	req := &rpc.RegisterRequest{Username: username, PasswordHash: passwordHash, Email: email}
	if err := s.invoke(ctx, rpc.MethodRegister, req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, passwordHash string) (*rpc.SessionResponse, error) {
	var resp rpc.SessionResponse
	req := &rpc.LoginRequest{Email: email, PasswordHash: passwordHash}
	if err := s.invoke(ctx, rpc.MethodLogin, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	var resp models.Profile
	if err := s.invoke(ctx, rpc.MethodGetProfile, &rpc.ProfileRequest{Username: username}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) FollowUser(ctx context.Context, username, action string) (*rpc.FollowResponse, error) {
	var resp rpc.FollowResponse
	if err := s.invoke(ctx, rpc.MethodFollowUser, &rpc.FollowRequest{Username: username, Action: action}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) ListFollowers(ctx context.Context, page rpc.PageRequest) (*models.Page[models.FollowView], error) {
	var resp models.Page[models.FollowView]
	if err := s.invoke(ctx, rpc.MethodListFollowers, &page, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) ListFollowing(ctx context.Context, page rpc.PageRequest) (*models.Page[models.FollowView], error) {
	var resp models.Page[models.FollowView]
	if err := s.invoke(ctx, rpc.MethodListFollowing, &page, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) CreateCat(ctx context.Context, req *rpc.CreateCatRequest) (*rpc.CreateCatResponse, error) {
	var resp rpc.CreateCatResponse
	if err := s.invoke(ctx, rpc.MethodCreateCat, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) ListCats(ctx context.Context, req *rpc.ListCatsRequest) (*models.Page[models.CatView], error) {
	var resp models.Page[models.CatView]
	if err := s.invoke(ctx, rpc.MethodListCats, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) LikeCat(ctx context.Context, catID, action string) (*rpc.LikeResponse, error) {
	var resp rpc.LikeResponse
	if err := s.invoke(ctx, rpc.MethodLikeCat, &rpc.LikeRequest{CatID: catID, Action: action}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	return s.invoke(ctx, rpc.MethodPing, &rpc.PingRequest{}, &rpc.StatusResponse{})
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)

	var kind error
	switch st.Code() {
	case codes.Unauthenticated:
		kind = ErrUnauthorized
	case codes.PermissionDenied:
		kind = ErrForbidden
	case codes.NotFound:
		kind = ErrNotFound
	case codes.AlreadyExists:
		kind = ErrConflict
	case codes.InvalidArgument:
		kind = ErrInvalid
	case codes.Unavailable, codes.DeadlineExceeded:
		kind = ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
	return fmt.Errorf("%w: %s", kind, st.Message())
}
