package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/cats"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/collections"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/comments"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/follows"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/likes"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so that the same
// code runs against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Follows(db dbx.DBTX) follows.Repository
	Likes(db dbx.DBTX) likes.Repository
	Cats(db dbx.DBTX) cats.Repository
	Collections(db dbx.DBTX) collections.Repository
	Comments(db dbx.DBTX) comments.Repository
}
