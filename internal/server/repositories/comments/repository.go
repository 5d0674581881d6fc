package comments

import (
	"context"

	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/pagination"
)

type Repository interface {
	// Create inserts c; c.ID must already be set.
	Create(ctx context.Context, c *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListByCat(ctx context.Context, catID string, after *pagination.Key, limit int) ([]models.Comment, error)
}
