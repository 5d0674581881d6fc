package collections

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/pagination"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/cats"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/pgerr"
)

const collectionColumns = `id, owner, name, description, cat_count, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCollection(row scanner) (*models.Collection, error) {
	c := &models.Collection{}
	if err := row.Scan(&c.ID, &c.Owner, &c.Name, &c.Description, &c.CatCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Collection) error {
	query :=
		`INSERT INTO collections (id, owner, name, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING cat_count, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, c.ID, c.Owner, c.Name, c.Description).
		Scan(&c.CatCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return pgerr.Wrap(err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE id = $1`

	c, err := scanCollection(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return c, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, owner string, after *pagination.Key, limit int) ([]models.Collection, error) {
	where, args := after.Clause("created_at", "id", 2)
	args = append([]any{owner}, args...)
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT %s FROM collections
		 WHERE owner = $1 %s
		 ORDER BY created_at DESC, id DESC
		 LIMIT $%d`, collectionColumns, where, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	var result []models.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, pgerr.Wrap(err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, name, description *string) (*models.Collection, error) {
	query :=
		`UPDATE collections
		 SET name = COALESCE($2, name), description = COALESCE($3, description), updated_at = now()
		 WHERE id = $1
		 RETURNING ` + collectionColumns

	c, err := scanCollection(r.db.QueryRowContext(ctx, query, id, name, description))
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.exec(ctx, `DELETE FROM collections WHERE id = $1`, id)
}

func (r *PostgresRepository) InsertCat(ctx context.Context, collectionID, catID string) (bool, error) {
	query := `INSERT INTO collection_cats (collection_id, cat_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	return r.exec(ctx, query, collectionID, catID)
}

func (r *PostgresRepository) DeleteCat(ctx context.Context, collectionID, catID string) (bool, error) {
	query := `DELETE FROM collection_cats WHERE collection_id = $1 AND cat_id = $2`
	return r.exec(ctx, query, collectionID, catID)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, pgerr.Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) AddCatDelta(ctx context.Context, collectionID string, delta int64) (int64, error) {
	query :=
		`UPDATE collections SET cat_count = GREATEST(cat_count + $2, 0), updated_at = now()
		 WHERE id = $1
		 RETURNING cat_count`

	var n int64
	if err := r.db.QueryRowContext(ctx, query, collectionID, delta).Scan(&n); err != nil {
		return 0, pgerr.Wrap(err)
	}
	return n, nil
}

func (r *PostgresRepository) ListCats(ctx context.Context, collectionID string, after *pagination.Key, limit int) ([]models.CollectionCat, error) {
	where, args := after.Clause("m.added_at", "m.cat_id", 2)
	args = append([]any{collectionID}, args...)
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT %s, m.added_at
		 FROM collection_cats m
		 JOIN cats c ON c.id = m.cat_id
		 WHERE m.collection_id = $1 %s
		 ORDER BY m.added_at DESC, m.cat_id DESC
		 LIMIT $%d`, cats.Columns("c"), where, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	var result []models.CollectionCat
	for rows.Next() {
		var item models.CollectionCat
		c, err := cats.Scan(rows, &item.AddedAt)
		if err != nil {
			return nil, pgerr.Wrap(err)
		}
		item.Cat = *c
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return result, nil
}
