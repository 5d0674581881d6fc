package rpc

import (
	"time"

	"github.com/dmitrijs2005/catsocial/internal/server/models"
)

// Validation tags are enforced by the server. "username" and "sha256hex" are
// custom tags registered by the server's validator.

type RegisterRequest struct {
	Username     string `json:"username" validate:"required,username"`
	PasswordHash string `json:"password_hash" validate:"required,sha256hex"`
	Email        string `json:"email" validate:"required,email,max=254"`
}

type LoginRequest struct {
	Email        string `json:"email" validate:"required,email,max=254"`
	PasswordHash string `json:"password_hash" validate:"required,sha256hex"`
}

// SessionResponse carries a freshly issued session token. Profile is only
// set by Login.
type SessionResponse struct {
	Token   string          `json:"token"`
	Profile *models.Profile `json:"profile,omitempty"`
}

// ProfileRequest asks for the profile of Username, or of the caller when it
// is empty.
type ProfileRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,username"`
}

// UpdateProfileRequest changes the caller's bio and/or avatar. A nil Bio
// and an empty Avatar leave the respective field unchanged.
type UpdateProfileRequest struct {
	Bio    *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Avatar []byte  `json:"avatar,omitempty" validate:"max=5242880"`
}

type FollowRequest struct {
	Username string `json:"username" validate:"required,username"`
	Action   string `json:"action" validate:"required,oneof=follow unfollow"`
}

type FollowResponse struct {
	Status         string `json:"status"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
}

// PageRequest selects one page of a listing. Limit 0 means the server's
// default page size; Cursor is empty for the first page.
type PageRequest struct {
	Limit  int    `json:"limit,omitempty" validate:"gte=0"`
	Cursor string `json:"cursor,omitempty" validate:"max=1024"`
}

type CreateCatRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description,omitempty" validate:"max=2000"`
	Tags        []string `json:"tags,omitempty" validate:"max=20,dive,required,max=30"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Image       []byte   `json:"image" validate:"required,max=5242880"`
}

type CreateCatResponse struct {
	ID        string    `json:"id"`
	ImageKey  string    `json:"image_key"`
	CreatedAt time.Time `json:"created_at"`
}

// ListCatsRequest pages all cats, or only those of Username.
type ListCatsRequest struct {
	PageRequest
	Username string `json:"username,omitempty" validate:"omitempty,username"`
}

type LikeRequest struct {
	CatID  string `json:"cat_id" validate:"required,uuid"`
	Action string `json:"action" validate:"required,oneof=like unlike"`
}

type LikeResponse struct {
	Likes int64 `json:"likes"`
	Liked bool  `json:"liked"`
}

type CreateCollectionRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"max=1000"`
}

type ListCollectionsRequest struct {
	PageRequest
	Username string `json:"username" validate:"required,username"`
}

type GetCollectionRequest struct {
	PageRequest
	ID string `json:"id" validate:"required,uuid"`
}

// CollectionPage is a collection, its owner and one page of its cats.
type CollectionPage struct {
	Collection models.Collection           `json:"collection"`
	Owner      models.Profile              `json:"owner"`
	Cats       models.Page[models.CatView] `json:"cats"`
}

type UpdateCollectionRequest struct {
	ID          string  `json:"id" validate:"required,uuid"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// IDRequest addresses a single collection or comment.
type IDRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

type MembershipRequest struct {
	CollectionID string `json:"collection_id" validate:"required,uuid"`
	CatID        string `json:"cat_id" validate:"required,uuid"`
}

type MembershipResponse struct {
	CatCount int64 `json:"cat_count"`
}

type CreateCommentRequest struct {
	CatID string `json:"cat_id" validate:"required,uuid"`
	Body  string `json:"body" validate:"required,max=2000"`
}

type CreateCommentResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type ListCommentsRequest struct {
	PageRequest
	CatID string `json:"cat_id" validate:"required,uuid"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type PingRequest struct{}
