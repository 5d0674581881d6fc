package follows

import (
	"context"

	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/pagination"
)

type Repository interface {
	// Insert adds the edge and reports whether it was absent before.
	Insert(ctx context.Context, follower, followee string) (bool, error)
	// Delete removes the edge and reports whether it was present.
	Delete(ctx context.Context, follower, followee string) (bool, error)

	// ListFollowers pages the edges pointing at followee, newest first.
	// The key's ID is the follower's username.
	ListFollowers(ctx context.Context, followee string, after *pagination.Key, limit int) ([]models.Follow, error)
	// ListFollowing pages the edges leaving follower, newest first.
	// The key's ID is the followee's username.
	ListFollowing(ctx context.Context, follower string, after *pagination.Key, limit int) ([]models.Follow, error)

	// FollowedBy returns the subset of candidates that follower follows.
	FollowedBy(ctx context.Context, follower string, candidates []string) (map[string]bool, error)
}
