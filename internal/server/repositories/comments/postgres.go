package comments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/pagination"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Comment) error {
	query :=
		`INSERT INTO comments (id, cat_id, author, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`

	if err := r.db.QueryRowContext(ctx, query, c.ID, c.CatID, c.Author, c.Body).Scan(&c.CreatedAt); err != nil {
		return pgerr.Wrap(err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `SELECT id, cat_id, author, body, created_at FROM comments WHERE id = $1`

	c := &models.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.CatID, &c.Author, &c.Body, &c.CreatedAt)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, pgerr.Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) ListByCat(ctx context.Context, catID string, after *pagination.Key, limit int) ([]models.Comment, error) {
	where, args := after.Clause("created_at", "id", 2)
	args = append([]any{catID}, args...)
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT id, cat_id, author, body, created_at FROM comments
		 WHERE cat_id = $1 %s
		 ORDER BY created_at DESC, id DESC
		 LIMIT $%d`, where, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	var result []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.CatID, &c.Author, &c.Body, &c.CreatedAt); err != nil {
			return nil, pgerr.Wrap(err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return result, nil
}
