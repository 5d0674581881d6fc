package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/pgerr"
)

const userColumns = `username, email, password_hash, COALESCE(session_token_hash, ''), bio, avatar_key,
		post_count, follower_count, following_count, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.UserName, &u.Email, &u.PasswordHash, &u.SessionTokenHash, &u.Bio, &u.AvatarKey,
		&u.PostCount, &u.FollowerCount, &u.FollowingCount, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, user.UserName, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		return pgerr.Wrap(err)
	}
	return nil
}

func (r *PostgresRepository) getBy(ctx context.Context, column, value string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, value))
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return u, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username", username)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *PostgresRepository) GetBySessionTokenHash(ctx context.Context, hash string) (*models.User, error) {
	return r.getBy(ctx, "session_token_hash", hash)
}

// GetMany loads all identities among usernames in a single query. Missing
// usernames are simply absent from the result.
func (r *PostgresRepository) GetMany(ctx context.Context, usernames []string) (map[string]*models.User, error) {
	result := make(map[string]*models.User, len(usernames))
	if len(usernames) == 0 {
		return result, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE username = ANY($1)`

	rows, err := r.db.QueryContext(ctx, query, usernames)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, pgerr.Wrap(err)
		}
		result[u.UserName] = u
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Wrap(err)
	}
	return result, nil
}

func (r *PostgresRepository) SetSessionTokenHash(ctx context.Context, username, hash string) error {
	query := `UPDATE users SET session_token_hash = $2 WHERE username = $1`

	res, err := r.db.ExecContext(ctx, query, username, hash)
	if err != nil {
		return pgerr.Wrap(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n != 1 {
		return common.ErrorNotFound
	}
	return nil
}

// UpdateProfile changes the editable profile fields; nil leaves a field as is.
// Counters are not editable here.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, username string, bio, avatarKey *string) (*models.User, error) {
	query := `UPDATE users SET bio = COALESCE($2, bio), avatar_key = COALESCE($3, avatar_key)
		 WHERE username = $1
		 RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, username, bio, avatarKey))
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return u, nil
}

// AddFollowDelta updates the two rows in username order so that concurrent
// A->B and B->A mutations lock rows in the same order.
func (r *PostgresRepository) AddFollowDelta(ctx context.Context, follower, followee string, delta int64) (int64, int64, error) {
	var following, followers int64

	type update struct {
		username string
		column   string
		dst      *int64
	}
	updates := []update{
		{username: follower, column: "following_count", dst: &following},
		{username: followee, column: "follower_count", dst: &followers},
	}
	if followee < follower {
		updates[0], updates[1] = updates[1], updates[0]
	}

	for _, u := range updates {
		v, err := r.addDelta(ctx, u.username, u.column, delta)
		if err != nil {
			return 0, 0, err
		}
		*u.dst = v
	}
	return following, followers, nil
}

func (r *PostgresRepository) AddPostDelta(ctx context.Context, username string, delta int64) (int64, error) {
	return r.addDelta(ctx, username, "post_count", delta)
}

// addDelta applies delta to a counter column. column is always one of the
// constants above, never client input.
func (r *PostgresRepository) addDelta(ctx context.Context, username, column string, delta int64) (int64, error) {
	query := fmt.Sprintf(`UPDATE users SET %[1]s = GREATEST(%[1]s + $2, 0) WHERE username = $1 RETURNING %[1]s`, column)

	var v int64
	if err := r.db.QueryRowContext(ctx, query, username, delta).Scan(&v); err != nil {
		return 0, pgerr.Wrap(err)
	}
	return v, nil
}
