package client

import (
	"context"

	"github.com/dmitrijs2005/catsocial/internal/rpc"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
)

// Client is the subset of the API the command-line tool uses.
type Client interface {
	Register(ctx context.Context, username, passwordHash, email string) (string, error)
	Login(ctx context.Context, email, passwordHash string) (*rpc.SessionResponse, error)
	GetProfile(ctx context.Context, username string) (*models.Profile, error)
	FollowUser(ctx context.Context, username, action string) (*rpc.FollowResponse, error)
	ListFollowers(ctx context.Context, page rpc.PageRequest) (*models.Page[models.FollowView], error)
	ListFollowing(ctx context.Context, page rpc.PageRequest) (*models.Page[models.FollowView], error)
	CreateCat(ctx context.Context, req *rpc.CreateCatRequest) (*rpc.CreateCatResponse, error)
	ListCats(ctx context.Context, req *rpc.ListCatsRequest) (*models.Page[models.CatView], error)
	LikeCat(ctx context.Context, catID, action string) (*rpc.LikeResponse, error)
	Ping(ctx context.Context) error

	// SetToken sets the session token sent with subsequent calls.
	SetToken(token string)
	Close() error
}
