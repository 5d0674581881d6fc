package follows

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

func (r *PostgresRepository) Insert(ctx context.Context, follower, followee string) (bool, error) {
	query := `INSERT INTO follows (follower, followee) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	return r.exec(ctx, query, follower, followee)
}

func (r *PostgresRepository) Delete(ctx context.Context, follower, followee string) (bool, error) {
	query := `DELETE FROM follows WHERE follower = $1 AND followee = $2`
	return r.exec(ctx, query, follower, followee)
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

func (r *PostgresRepository) ListFollowers(ctx context.Context, followee string, after *pagination.Key, limit int) ([]models.Follow, error) {
	return r.list(ctx, "followee", "follower", followee, after, limit)
}

func (r *PostgresRepository) ListFollowing(ctx context.Context, follower string, after *pagination.Key, limit int) ([]models.Follow, error) {
	return r.list(ctx, "follower", "followee", follower, after, limit)
}

// list pages edges whose anchor column equals username, keyed by
// (followed_at, counterpart).
func (r *PostgresRepository) list(ctx context.Context, anchor, counterpart, username string, after *pagination.Key, limit int) ([]models.Follow, error) {
	where, args := after.Clause("followed_at", counterpart, 2)
	args = append([]any{username}, args...)
	args = append(args, limit)

	query := fmt.Sprintf(`SELECT follower, followee, followed_at FROM follows
		 WHERE %s = $1 %s
		 ORDER BY followed_at DESC, %s DESC
		 LIMIT $%d`, anchor, where, counterpart, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	var result []models.Follow
	for rows.Next() {
		var f models.Follow
		if err := rows.Scan(&f.Follower, &f.Followee, &f.FollowedAt); err != nil {
			return nil, pgerr.Wrap(err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return result, nil
}

func (r *PostgresRepository) FollowedBy(ctx context.Context, follower string, candidates []string) (map[string]bool, error) {
	result := make(map[string]bool, len(candidates))
	if follower == "" || len(candidates) == 0 {
		return result, nil
	}

	query := `SELECT followee FROM follows WHERE follower = $1 AND followee = ANY($2)`

	rows, err := r.db.QueryContext(ctx, query, follower, candidates)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	for rows.Next() {
		var followee string
		if err := rows.Scan(&followee); err != nil {
			return nil, pgerr.Wrap(err)
		}
		result[followee] = true
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return result, nil
}
