package collections

import (
	"context"

	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/pagination"
)

type Repository interface {
	// Create inserts c; c.ID must already be set.
	Create(ctx context.Context, c *models.Collection) error
	GetByID(ctx context.Context, id string) (*models.Collection, error)
	ListByOwner(ctx context.Context, owner string, after *pagination.Key, limit int) ([]models.Collection, error)
	// Update changes name and/or description; nil leaves a field as is.
	Update(ctx context.Context, id string, name, description *string) (*models.Collection, error)
	// Delete removes the collection together with its membership rows.
	Delete(ctx context.Context, id string) (bool, error)

	// InsertCat adds a membership row and reports whether it was absent.
	InsertCat(ctx context.Context, collectionID, catID string) (bool, error)
	// DeleteCat removes a membership row and reports whether it was present.
	DeleteCat(ctx context.Context, collectionID, catID string) (bool, error)
	// AddCatDelta moves cat_count by delta, floored at zero.
	AddCatDelta(ctx context.Context, collectionID string, delta int64) (int64, error)
	// ListCats pages the collection's cats by (added_at DESC, cat_id DESC).
	ListCats(ctx context.Context, collectionID string, after *pagination.Key, limit int) ([]models.CollectionCat, error)
}
