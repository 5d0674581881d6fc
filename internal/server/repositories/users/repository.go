package users

import (
	"context"

	"github.com/dmitrijs2005/catsocial/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetBySessionTokenHash(ctx context.Context, hash string) (*models.User, error)
	GetMany(ctx context.Context, usernames []string) (map[string]*models.User, error)

	// SetSessionTokenHash replaces the identity's current session token.
	SetSessionTokenHash(ctx context.Context, username, hash string) error
	UpdateProfile(ctx context.Context, username string, bio, avatarKey *string) (*models.User, error)

	// AddFollowDelta moves follower.following_count and followee.follower_count
	// by delta (floored at zero) and returns both new values.
	AddFollowDelta(ctx context.Context, follower, followee string, delta int64) (following, followers int64, err error)
	AddPostDelta(ctx context.Context, username string, delta int64) (int64, error)
}
