package collections

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/pagination"
	"github.com/dmitrijs2005/catsocial/internal/testutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	collID = "11111111-1111-4111-8111-111111111111"
	catID  = "22222222-2222-4222-8222-222222222222"
)

var collCols = []string{"id", "owner", "name", "description", "cat_count", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := testutil.NewMock(t)
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	now := time.Now()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+collections\s*\(id,\s*owner,\s*name,\s*description\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+cat_count,\s*created_at,\s*updated_at$`).
		WithArgs(collID, "alice", "Favourites", "best cats").
		WillReturnRows(sqlmock.NewRows([]string{"cat_count", "created_at", "updated_at"}).AddRow(0, now, now))

	c := &models.Collection{ID: collID, Owner: "alice", Name: "Favourites", Description: "best cats"}
	require.NoError(t, repo.Create(context.Background(), c))
	assert.True(t, c.CreatedAt.Equal(now))
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+collections`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "collections_owner_name_key"})

	err := repo.Create(context.Background(), &models.Collection{ID: collID, Owner: "alice", Name: "Favourites"})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*owner,.*FROM\s+collections\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(collID).
		WillReturnRows(sqlmock.NewRows(collCols))

	_, err := repo.GetByID(context.Background(), collID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListByOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	at := time.Now()
	mock.ExpectQuery(`(?s)^SELECT.*FROM\s+collections\s+WHERE\s+owner\s*=\s*\$1\s+AND\s+\(created_at,\s*id\)\s*<\s*\(\$2,\s*\$3\)\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s+LIMIT\s+\$4$`).
		WithArgs("alice", at, collID, 21).
		WillReturnRows(sqlmock.NewRows(collCols).AddRow("c2", "alice", "Old", "", 2, at, at))

	got, err := repo.ListByOwner(context.Background(), "alice", &pagination.Key{At: at, ID: collID}, 21)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.EqualValues(t, 2, got[0].CatCount)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	name := "Renamed"
	now := time.Now()
	mock.ExpectQuery(`(?s)^UPDATE\s+collections\s+SET\s+name\s*=\s*COALESCE\(\$2,\s*name\),\s*description\s*=\s*COALESCE\(\$3,\s*description\),\s*updated_at\s*=\s*now\(\).*RETURNING`).
		WithArgs(collID, name, nil).
		WillReturnRows(sqlmock.NewRows(collCols).AddRow(collID, "alice", name, "d", 1, now, now))

	got, err := repo.Update(context.Background(), collID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+collections\s+WHERE\s+id\s*=\s*\$1$`).
		WithArgs(collID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Delete(context.Background(), collID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMembership_InsertDeleteDelta(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	ins := `(?s)^INSERT\s+INTO\s+collection_cats\s*\(collection_id,\s*cat_id\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s+DO\s+NOTHING$`
	del := `(?s)^DELETE\s+FROM\s+collection_cats\s+WHERE\s+collection_id\s*=\s*\$1\s+AND\s+cat_id\s*=\s*\$2$`
	mock.ExpectExec(ins).WithArgs(collID, catID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(ins).WithArgs(collID, catID).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(del).WithArgs(collID, catID).WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.InsertCat(context.Background(), collID, catID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.InsertCat(context.Background(), collID, catID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DeleteCat(context.Background(), collID, catID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddCatDelta(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^UPDATE\s+collections\s+SET\s+cat_count\s*=\s*GREATEST\(cat_count\s*\+\s*\$2,\s*0\).*RETURNING\s+cat_count$`).
		WithArgs(collID, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"cat_count"}).AddRow(3))

	n, err := repo.AddCatDelta(context.Background(), collID, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestListCats(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	added := time.Now()
	cols := []string{"id", "owner", "name", "description", "tags", "latitude", "longitude", "image_key", "likes", "created_at", "added_at"}
	mock.ExpectQuery(`(?s)^SELECT\s+c\.id,\s*c\.owner,.*m\.added_at\s+FROM\s+collection_cats\s+m\s+JOIN\s+cats\s+c\s+ON\s+c\.id\s*=\s*m\.cat_id\s+WHERE\s+m\.collection_id\s*=\s*\$1\s+ORDER\s+BY\s+m\.added_at\s+DESC,\s*m\.cat_id\s+DESC\s+LIMIT\s+\$2$`).
		WithArgs(collID, 2).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(catID, "bob", "Tom", "", "{grey}", nil, nil, "k", 1, added.Add(-time.Hour), added))

	got, err := repo.ListCats(context.Background(), collID, nil, 2)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, catID, got[0].Cat.ID)
	assert.Equal(t, []string{"grey"}, got[0].Cat.Tags)
	assert.True(t, got[0].AddedAt.Equal(added))
}
