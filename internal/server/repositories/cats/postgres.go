package cats

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/pagination"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/pgerr"
	"github.com/jackc/pgx/v5/pgtype"
)

var columns = []string{"id", "owner", "name", "description", "tags", "latitude", "longitude", "image_key", "likes", "created_at"}

// Columns returns the cat column list, each prefixed with alias when set.
func Columns(alias string) string {
	if alias == "" {
		return strings.Join(columns, ", ")
	}
	prefixed := make([]string, len(columns))
	for i, c := range columns {
		prefixed[i] = alias + "." + c
	}
	return strings.Join(prefixed, ", ")
}

type Scanner interface {
	Scan(dest ...any) error
}

// Scan reads a row selected with Columns followed by any extra columns.
func Scan(row Scanner, extra ...any) (*models.Cat, error) {
	c := &models.Cat{}
	dest := []any{&c.ID, &c.Owner, &c.Name, &c.Description, pgtype.NewMap().SQLScanner(&c.Tags),
		&c.Latitude, &c.Longitude, &c.ImageKey, &c.Likes, &c.CreatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c, nil
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, cat *models.Cat) error {
	query :=
		`INSERT INTO cats (id, owner, name, description, tags, latitude, longitude, image_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING likes, created_at`

	tags := cat.Tags
	if tags == nil {
		tags = []string{}
	}

	err := r.db.QueryRowContext(ctx, query, cat.ID, cat.Owner, cat.Name, cat.Description, tags,
		cat.Latitude, cat.Longitude, cat.ImageKey).Scan(&cat.Likes, &cat.CreatedAt)
	if err != nil {
		return pgerr.Wrap(err)
	}
	cat.Tags = tags
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Cat, error) {
	query := `SELECT ` + Columns("") + ` FROM cats WHERE id = $1`

	c, err := Scan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, owner string, after *pagination.Key, limit int) ([]models.Cat, error) {
	var (
		filter []string
		args   []any
	)
	if owner != "" {
		args = append(args, owner)
		filter = append(filter, fmt.Sprintf("owner = $%d", len(args)))
	}
	if where, keyArgs := after.Clause("created_at", "id", len(args)+1); where != "" {
		args = append(args, keyArgs...)
		filter = append(filter, strings.TrimPrefix(where, "AND "))
	}
	args = append(args, limit)

	query := `SELECT ` + Columns("") + ` FROM cats`
	if len(filter) > 0 {
		query += ` WHERE ` + strings.Join(filter, " AND ")
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d`, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgerr.Wrap(err)
	}
	defer rows.Close()

	var result []models.Cat
	for rows.Next() {
		c, err := Scan(rows)
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

func (r *PostgresRepository) AddLikeDelta(ctx context.Context, id string, delta int64) (int64, error) {
	query := `UPDATE cats SET likes = GREATEST(likes + $2, 0) WHERE id = $1 RETURNING likes`

	var likes int64
	if err := r.db.QueryRowContext(ctx, query, id, delta).Scan(&likes); err != nil {
		return 0, pgerr.Wrap(err)
	}
	return likes, nil
}
