package grpc

import (
	"context"

	"github.com/dmitrijs2005/catsocial/internal/rpc"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"google.golang.org/grpc"
)

// catSocialServer is the method set serviceDesc dispatches to.
type catSocialServer interface {
	Register(context.Context, *rpc.RegisterRequest) (*rpc.SessionResponse, error)
	Login(context.Context, *rpc.LoginRequest) (*rpc.SessionResponse, error)
	GetProfile(context.Context, *rpc.ProfileRequest) (*models.Profile, error)
	UpdateProfile(context.Context, *rpc.UpdateProfileRequest) (*models.Profile, error)
	FollowUser(context.Context, *rpc.FollowRequest) (*rpc.FollowResponse, error)
	ListFollowers(context.Context, *rpc.PageRequest) (*models.Page[models.FollowView], error)
	ListFollowing(context.Context, *rpc.PageRequest) (*models.Page[models.FollowView], error)
	CreateCat(context.Context, *rpc.CreateCatRequest) (*rpc.CreateCatResponse, error)
	ListCats(context.Context, *rpc.ListCatsRequest) (*models.Page[models.CatView], error)
	LikeCat(context.Context, *rpc.LikeRequest) (*rpc.LikeResponse, error)
	CreateCollection(context.Context, *rpc.CreateCollectionRequest) (*models.Collection, error)
	ListCollections(context.Context, *rpc.ListCollectionsRequest) (*models.Page[models.Collection], error)
	GetCollection(context.Context, *rpc.GetCollectionRequest) (*rpc.CollectionPage, error)
	UpdateCollection(context.Context, *rpc.UpdateCollectionRequest) (*models.Collection, error)
	DeleteCollection(context.Context, *rpc.IDRequest) (*rpc.StatusResponse, error)
	AddCatToCollection(context.Context, *rpc.MembershipRequest) (*rpc.MembershipResponse, error)
	RemoveCatFromCollection(context.Context, *rpc.MembershipRequest) (*rpc.MembershipResponse, error)
	CreateComment(context.Context, *rpc.CreateCommentRequest) (*rpc.CreateCommentResponse, error)
	ListComments(context.Context, *rpc.ListCommentsRequest) (*models.Page[models.CommentView], error)
	DeleteComment(context.Context, *rpc.IDRequest) (*rpc.StatusResponse, error)
	Ping(context.Context, *rpc.PingRequest) (*rpc.StatusResponse, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: rpc.ServiceName,
	HandlerType: (*catSocialServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(rpc.MethodRegister, catSocialServer.Register),
		unary(rpc.MethodLogin, catSocialServer.Login),
		unary(rpc.MethodGetProfile, catSocialServer.GetProfile),
		unary(rpc.MethodUpdateProfile, catSocialServer.UpdateProfile),
		unary(rpc.MethodFollowUser, catSocialServer.FollowUser),
		unary(rpc.MethodListFollowers, catSocialServer.ListFollowers),
		unary(rpc.MethodListFollowing, catSocialServer.ListFollowing),
		unary(rpc.MethodCreateCat, catSocialServer.CreateCat),
		unary(rpc.MethodListCats, catSocialServer.ListCats),
		unary(rpc.MethodLikeCat, catSocialServer.LikeCat),
		unary(rpc.MethodCreateCollection, catSocialServer.CreateCollection),
		unary(rpc.MethodListCollections, catSocialServer.ListCollections),
		unary(rpc.MethodGetCollection, catSocialServer.GetCollection),
		unary(rpc.MethodUpdateCollection, catSocialServer.UpdateCollection),
		unary(rpc.MethodDeleteCollection, catSocialServer.DeleteCollection),
		unary(rpc.MethodAddCatToCollection, catSocialServer.AddCatToCollection),
		unary(rpc.MethodRemoveCatFromCollection, catSocialServer.RemoveCatFromCollection),
		unary(rpc.MethodCreateComment, catSocialServer.CreateComment),
		unary(rpc.MethodListComments, catSocialServer.ListComments),
		unary(rpc.MethodDeleteComment, catSocialServer.DeleteComment),
		unary(rpc.MethodPing, catSocialServer.Ping),
	},
	Streams: []grpc.StreamDesc{},
}

// unary adapts a typed method to a grpc.MethodDesc the way generated code
// does: decode, run interceptors, call. Requests are validated right before
// the call, after the session interceptor has run.
func unary[Req, Resp any](name string, call func(catSocialServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}

			handler := func(ctx context.Context, req any) (any, error) {
				if v, ok := srv.(*GRPCServer); ok {
					if err := v.validateRequest(req); err != nil {
						return nil, err
					}
				}
				return call(srv.(catSocialServer), ctx, req.(*Req))
			}

			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: rpc.FullMethod(name)}
			return interceptor(ctx, in, info, handler)
		},
	}
}
