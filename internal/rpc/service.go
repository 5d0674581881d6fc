package rpc

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "catsocial.v1.CatSocial"

// SessionTokenKey is the metadata key carrying the session token.
const SessionTokenKey = "session_token"

const (
	MethodRegister                = "Register"
	MethodLogin                   = "Login"
	MethodGetProfile              = "GetProfile"
	MethodUpdateProfile           = "UpdateProfile"
	MethodFollowUser              = "FollowUser"
	MethodListFollowers           = "ListFollowers"
	MethodListFollowing           = "ListFollowing"
	MethodCreateCat               = "CreateCat"
	MethodListCats                = "ListCats"
	MethodLikeCat                 = "LikeCat"
	MethodCreateCollection        = "CreateCollection"
	MethodListCollections         = "ListCollections"
	MethodGetCollection           = "GetCollection"
	MethodUpdateCollection        = "UpdateCollection"
	MethodDeleteCollection        = "DeleteCollection"
	MethodAddCatToCollection      = "AddCatToCollection"
	MethodRemoveCatFromCollection = "RemoveCatFromCollection"
	MethodCreateComment           = "CreateComment"
	MethodListComments            = "ListComments"
	MethodDeleteComment           = "DeleteComment"
	MethodPing                    = "Ping"
)

// FullMethod returns the "/service/method" path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// Actions accepted by FollowUser and LikeCat.
const (
	ActionFollow   = "follow"
	ActionUnfollow = "unfollow"
	ActionLike     = "like"
	ActionUnlike   = "unlike"
)
