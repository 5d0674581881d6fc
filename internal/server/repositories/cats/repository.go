package cats

import (
	"context"

	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/pagination"
)

type Repository interface {
	// Create inserts cat; cat.ID must already be set. Likes and CreatedAt
	// are filled from the stored row.
	Create(ctx context.Context, cat *models.Cat) error
	GetByID(ctx context.Context, id string) (*models.Cat, error)

	// List pages cats newest first. An empty owner lists everyone's cats.
	List(ctx context.Context, owner string, after *pagination.Key, limit int) ([]models.Cat, error)

	// AddLikeDelta moves the likes counter by delta, floored at zero.
	AddLikeDelta(ctx context.Context, id string, delta int64) (int64, error)
}
