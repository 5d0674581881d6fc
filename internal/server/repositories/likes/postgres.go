package likes

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, catID, username string) (bool, error) {
	query := `INSERT INTO likes (cat_id, username) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	return r.exec(ctx, query, catID, username)
}

func (r *PostgresRepository) Delete(ctx context.Context, catID, username string) (bool, error) {
	query := `DELETE FROM likes WHERE cat_id = $1 AND username = $2`
	return r.exec(ctx, query, catID, username)
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

func (r *PostgresRepository) LikedBy(ctx context.Context, username string, catIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(catIDs))
	if username == "" || len(catIDs) == 0 {
		return result, nil
	}

	query := `SELECT cat_id FROM likes WHERE username = $1 AND cat_id = ANY($2::text[]::uuid[])`

	rows, err := r.db.QueryContext(ctx, query, username, catIDs)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, pgerr.Wrap(err)
		}
		result[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return result, nil
}
