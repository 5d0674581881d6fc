// Package grpc exposes the catsocial services over gRPC with the JSON codec
// from package rpc.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/catsocial/internal/logging"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/services"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc"
)

type sessionResolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

type userService interface {
	Register(ctx context.Context, username, passwordHash, email string) (string, error)
	Login(ctx context.Context, email, passwordHash string) (string, *models.Profile, error)
	GetProfile(ctx context.Context, viewer *models.User, target string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, me *models.User, bio *string, avatar []byte) (*models.Profile, error)
}

type graphService interface {
	Follow(ctx context.Context, me *models.User, target string) (*services.FollowResult, error)
	Unfollow(ctx context.Context, me *models.User, target string) (*services.FollowResult, error)
	Like(ctx context.Context, me *models.User, catID string) (*services.LikeResult, error)
	Unlike(ctx context.Context, me *models.User, catID string) (*services.LikeResult, error)
}

type catService interface {
	Create(ctx context.Context, me *models.User, in models.NewCat, image []byte) (*models.Cat, error)
}

type collectionService interface {
	Create(ctx context.Context, me *models.User, name, description string) (*models.Collection, error)
	Update(ctx context.Context, me *models.User, id string, name, description *string) (*models.Collection, error)
	Delete(ctx context.Context, me *models.User, id string) error
	AddCat(ctx context.Context, me *models.User, collectionID, catID string) (int64, error)
	RemoveCat(ctx context.Context, me *models.User, collectionID, catID string) (int64, error)
}

type commentService interface {
	Create(ctx context.Context, me *models.User, catID, body string) (*models.Comment, error)
	Delete(ctx context.Context, me *models.User, id string) error
}

type feedService interface {
	ListCats(ctx context.Context, viewer *models.User, q services.CatQuery) (*models.Page[models.CatView], error)
	ListFollowers(ctx context.Context, me *models.User, limit int, cursor string) (*models.Page[models.FollowView], error)
	ListFollowing(ctx context.Context, me *models.User, limit int, cursor string) (*models.Page[models.FollowView], error)
	ListCollections(ctx context.Context, owner string, limit int, cursor string) (*models.Page[models.Collection], error)
	GetCollection(ctx context.Context, viewer *models.User, id string, limit int, cursor string) (*services.CollectionPage, error)
	ListComments(ctx context.Context, viewer *models.User, catID string, limit int, cursor string) (*models.Page[models.CommentView], error)
}

// RPCObserver receives the outcome of every unary call.
type RPCObserver interface {
	ObserveRPC(method, code string, d time.Duration)
}

// Services bundles the backends the server dispatches to.
type Services struct {
	Sessions    sessionResolver
	Users       userService
	Graph       graphService
	Cats        catService
	Collections collectionService
	Comments    commentService
	Feed        feedService
}

type GRPCServer struct {
	address  string
	svc      Services
	logger   logging.Logger
	observer RPCObserver
	validate *validator.Validate
}

// NewGRPCServer builds a server listening on address. observer may be nil.
func NewGRPCServer(address string, l logging.Logger, svc Services, observer RPCObserver) *GRPCServer {
	return &GRPCServer{
		address:  address,
		svc:      svc,
		logger:   l.With("module", "grpc_server"),
		observer: observer,
		validate: newValidator(),
	}
}

// NewServer returns a *grpc.Server with the interceptors installed and the
// CatSocial service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.observeInterceptor, s.sessionInterceptor))
	srv := grpc.NewServer(opts...)
	srv.RegisterService(&serviceDesc, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	<-stopped
	return nil
}
