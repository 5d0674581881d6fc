package grpc

import (
	"context"

	"github.com/dmitrijs2005/catsocial/internal/rpc"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/services"
)

func (s *GRPCServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.SessionResponse, error) {
	token, err := s.svc.Users.Register(ctx, req.Username, req.PasswordHash, req.Email)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodRegister, err)
	}

	s.logger.Info(ctx, "Registered", "username", req.Username)
	return &rpc.SessionResponse{Token: token}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.SessionResponse, error) {
	token, profile, err := s.svc.Users.Login(ctx, req.Email, req.PasswordHash)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodLogin, err)
	}
	return &rpc.SessionResponse{Token: token, Profile: profile}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *rpc.ProfileRequest) (*models.Profile, error) {
	p, err := s.svc.Users.GetProfile(ctx, identity(ctx), req.Username)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodGetProfile, err)
	}
	return p, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*models.Profile, error) {
	p, err := s.svc.Users.UpdateProfile(ctx, identity(ctx), req.Bio, req.Avatar)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodUpdateProfile, err)
	}
	return p, nil
}

func (s *GRPCServer) FollowUser(ctx context.Context, req *rpc.FollowRequest) (*rpc.FollowResponse, error) {
	follow := s.svc.Graph.Follow
	if req.Action == rpc.ActionUnfollow {
		follow = s.svc.Graph.Unfollow
	}

	res, err := follow(ctx, identity(ctx), req.Username)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodFollowUser, err)
	}
	return &rpc.FollowResponse{Status: res.Status, FollowerCount: res.FollowerCount, FollowingCount: res.FollowingCount}, nil
}

func (s *GRPCServer) ListFollowers(ctx context.Context, req *rpc.PageRequest) (*models.Page[models.FollowView], error) {
	p, err := s.svc.Feed.ListFollowers(ctx, identity(ctx), req.Limit, req.Cursor)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodListFollowers, err)
	}
	return p, nil
}

func (s *GRPCServer) ListFollowing(ctx context.Context, req *rpc.PageRequest) (*models.Page[models.FollowView], error) {
	p, err := s.svc.Feed.ListFollowing(ctx, identity(ctx), req.Limit, req.Cursor)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodListFollowing, err)
	}
	return p, nil
}

func (s *GRPCServer) CreateCat(ctx context.Context, req *rpc.CreateCatRequest) (*rpc.CreateCatResponse, error) {
	in := models.NewCat{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	cat, err := s.svc.Cats.Create(ctx, identity(ctx), in, req.Image)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodCreateCat, err)
	}

	s.logger.Info(ctx, "Cat created", "id", cat.ID, "owner", cat.Owner)
	return &rpc.CreateCatResponse{ID: cat.ID, ImageKey: cat.ImageKey, CreatedAt: cat.CreatedAt}, nil
}

func (s *GRPCServer) ListCats(ctx context.Context, req *rpc.ListCatsRequest) (*models.Page[models.CatView], error) {
	q := services.CatQuery{Limit: req.Limit, Cursor: req.Cursor, Username: req.Username}
	p, err := s.svc.Feed.ListCats(ctx, identity(ctx), q)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodListCats, err)
	}
	return p, nil
}

func (s *GRPCServer) LikeCat(ctx context.Context, req *rpc.LikeRequest) (*rpc.LikeResponse, error) {
	like := s.svc.Graph.Like
	if req.Action == rpc.ActionUnlike {
		like = s.svc.Graph.Unlike
	}

	res, err := like(ctx, identity(ctx), req.CatID)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodLikeCat, err)
	}
	return &rpc.LikeResponse{Likes: res.Likes, Liked: res.Liked}, nil
}

func (s *GRPCServer) CreateCollection(ctx context.Context, req *rpc.CreateCollectionRequest) (*models.Collection, error) {
	c, err := s.svc.Collections.Create(ctx, identity(ctx), req.Name, req.Description)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodCreateCollection, err)
	}
	return c, nil
}

func (s *GRPCServer) ListCollections(ctx context.Context, req *rpc.ListCollectionsRequest) (*models.Page[models.Collection], error) {
	p, err := s.svc.Feed.ListCollections(ctx, req.Username, req.Limit, req.Cursor)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodListCollections, err)
	}
	return p, nil
}

func (s *GRPCServer) GetCollection(ctx context.Context, req *rpc.GetCollectionRequest) (*rpc.CollectionPage, error) {
	p, err := s.svc.Feed.GetCollection(ctx, identity(ctx), req.ID, req.Limit, req.Cursor)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodGetCollection, err)
	}
	return &rpc.CollectionPage{Collection: p.Collection, Owner: p.Owner, Cats: p.Cats}, nil
}

func (s *GRPCServer) UpdateCollection(ctx context.Context, req *rpc.UpdateCollectionRequest) (*models.Collection, error) {
	c, err := s.svc.Collections.Update(ctx, identity(ctx), req.ID, req.Name, req.Description)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodUpdateCollection, err)
	}
	return c, nil
}

func (s *GRPCServer) DeleteCollection(ctx context.Context, req *rpc.IDRequest) (*rpc.StatusResponse, error) {
	if err := s.svc.Collections.Delete(ctx, identity(ctx), req.ID); err != nil {
		return nil, s.toStatus(ctx, rpc.MethodDeleteCollection, err)
	}
	return &rpc.StatusResponse{Status: "deleted"}, nil
}

func (s *GRPCServer) AddCatToCollection(ctx context.Context, req *rpc.MembershipRequest) (*rpc.MembershipResponse, error) {
	n, err := s.svc.Collections.AddCat(ctx, identity(ctx), req.CollectionID, req.CatID)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodAddCatToCollection, err)
	}
	return &rpc.MembershipResponse{CatCount: n}, nil
}

func (s *GRPCServer) RemoveCatFromCollection(ctx context.Context, req *rpc.MembershipRequest) (*rpc.MembershipResponse, error) {
	n, err := s.svc.Collections.RemoveCat(ctx, identity(ctx), req.CollectionID, req.CatID)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodRemoveCatFromCollection, err)
	}
	return &rpc.MembershipResponse{CatCount: n}, nil
}

func (s *GRPCServer) CreateComment(ctx context.Context, req *rpc.CreateCommentRequest) (*rpc.CreateCommentResponse, error) {
	c, err := s.svc.Comments.Create(ctx, identity(ctx), req.CatID, req.Body)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodCreateComment, err)
	}
	return &rpc.CreateCommentResponse{ID: c.ID, CreatedAt: c.CreatedAt}, nil
}

func (s *GRPCServer) ListComments(ctx context.Context, req *rpc.ListCommentsRequest) (*models.Page[models.CommentView], error) {
	p, err := s.svc.Feed.ListComments(ctx, identity(ctx), req.CatID, req.Limit, req.Cursor)
	if err != nil {
		return nil, s.toStatus(ctx, rpc.MethodListComments, err)
	}
	return p, nil
}

func (s *GRPCServer) DeleteComment(ctx context.Context, req *rpc.IDRequest) (*rpc.StatusResponse, error) {
	if err := s.svc.Comments.Delete(ctx, identity(ctx), req.ID); err != nil {
		return nil, s.toStatus(ctx, rpc.MethodDeleteComment, err)
	}
	return &rpc.StatusResponse{Status: "deleted"}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.StatusResponse, error) {
	return &rpc.StatusResponse{Status: "OK"}, nil
}
