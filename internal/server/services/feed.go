package services

import (
	"context"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/pagination"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/catsocial/internal/server/storage"
)

// CatQuery selects a page of cats. An empty Username lists everyone's cats.
type CatQuery struct {
	Limit    int
	Cursor   string
	Username string
}

// CollectionPage is a collection together with one page of its cats.
type CollectionPage struct {
	Collection models.Collection           `json:"collection"`
	Owner      models.Profile              `json:"owner"`
	Cats       models.Page[models.CatView] `json:"cats"`
}

// FeedService serves the paginated read side. Viewer may be nil for
// anonymous reads; "followed" and "liked" flags are then all false.
type FeedService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	paginator   *pagination.Paginator
	enricher    *enricher
}

func NewFeedService(db dbx.DBTX, m repomanager.RepositoryManager, p *pagination.Paginator, images storage.ImageStore) *FeedService {
	return &FeedService{db: db, repomanager: m, paginator: p, enricher: newEnricher(db, m, images)}
}

func (s *FeedService) ListCats(ctx context.Context, viewer *models.User, q CatQuery) (*models.Page[models.CatView], error) {
	req, err := s.paginator.Request(q.Limit, q.Cursor)
	if err != nil {
		return nil, err
	}

	rows, err := s.repomanager.Cats(s.db).List(ctx, q.Username, req.After, req.Fetch())
	if err != nil {
		return nil, common.Storage("list cats", err)
	}
	page, next, err := pagination.Cut(s.paginator, req, rows, catKey)
	if err != nil {
		return nil, err
	}

	items, err := s.enricher.cats(ctx, viewer, page)
	if err != nil {
		return nil, err
	}
	return &models.Page[models.CatView]{Items: items, NextCursor: next}, nil
}

// ListFollowers pages the identities following me.
func (s *FeedService) ListFollowers(ctx context.Context, me *models.User, limit int, cursor string) (*models.Page[models.FollowView], error) {
	if err := requireIdentity(me); err != nil {
		return nil, err
	}
	return s.listFollows(ctx, me, limit, cursor, s.repomanager.Follows(s.db).ListFollowers,
		func(f models.Follow) string { return f.Follower })
}

// ListFollowing pages the identities me follows.
func (s *FeedService) ListFollowing(ctx context.Context, me *models.User, limit int, cursor string) (*models.Page[models.FollowView], error) {
	if err := requireIdentity(me); err != nil {
		return nil, err
	}
	return s.listFollows(ctx, me, limit, cursor, s.repomanager.Follows(s.db).ListFollowing,
		func(f models.Follow) string { return f.Followee })
}

type followLister func(ctx context.Context, username string, after *pagination.Key, limit int) ([]models.Follow, error)

func (s *FeedService) listFollows(ctx context.Context, me *models.User, limit int, cursor string,
	list followLister, counterpart func(models.Follow) string) (*models.Page[models.FollowView], error) {
	req, err := s.paginator.Request(limit, cursor)
	if err != nil {
		return nil, err
	}

	rows, err := list(ctx, me.UserName, req.After, req.Fetch())
	if err != nil {
		return nil, common.Storage("list follows", err)
	}
	page, next, err := pagination.Cut(s.paginator, req, rows, func(f models.Follow) pagination.Key {
		return pagination.Key{At: f.FollowedAt, ID: counterpart(f)}
	})
	if err != nil {
		return nil, err
	}

	items, err := s.enricher.follows(ctx, me, page, counterpart)
	if err != nil {
		return nil, err
	}
	return &models.Page[models.FollowView]{Items: items, NextCursor: next}, nil
}

// ListCollections pages owner's collections.
func (s *FeedService) ListCollections(ctx context.Context, owner string, limit int, cursor string) (*models.Page[models.Collection], error) {
	req, err := s.paginator.Request(limit, cursor)
	if err != nil {
		return nil, err
	}

	rows, err := s.repomanager.Collections(s.db).ListByOwner(ctx, owner, req.After, req.Fetch())
	if err != nil {
		return nil, common.Storage("list collections", err)
	}
	page, next, err := pagination.Cut(s.paginator, req, rows, func(c models.Collection) pagination.Key {
		return pagination.Key{At: c.CreatedAt, ID: c.ID}
	})
	if err != nil {
		return nil, err
	}
	if page == nil {
		page = []models.Collection{}
	}
	return &models.Page[models.Collection]{Items: page, NextCursor: next}, nil
}

// GetCollection returns the collection with one page of its cats, newest
// additions first.
func (s *FeedService) GetCollection(ctx context.Context, viewer *models.User, id string, limit int, cursor string) (*CollectionPage, error) {
	if err := parseID("collection", id); err != nil {
		return nil, err
	}
	req, err := s.paginator.Request(limit, cursor)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Collections(s.db)
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "collection %s not found", id)
	}

	rows, err := repo.ListCats(ctx, id, req.After, req.Fetch())
	if err != nil {
		return nil, common.Storage("list collection cats", err)
	}
	page, next, err := pagination.Cut(s.paginator, req, rows, func(m models.CollectionCat) pagination.Key {
		return pagination.Key{At: m.AddedAt, ID: m.Cat.ID}
	})
	if err != nil {
		return nil, err
	}

	items, err := s.enricher.collectionCats(ctx, viewer, page)
	if err != nil {
		return nil, err
	}

	l, err := s.enricher.load(ctx, viewer, []string{c.Owner}, nil)
	if err != nil {
		return nil, err
	}
	owner, err := s.enricher.profile(ctx, l, c.Owner)
	if err != nil {
		return nil, err
	}

	return &CollectionPage{
		Collection: *c,
		Owner:      owner,
		Cats:       models.Page[models.CatView]{Items: items, NextCursor: next},
	}, nil
}

// ListComments pages the comments on a cat, newest first.
func (s *FeedService) ListComments(ctx context.Context, viewer *models.User, catID string, limit int, cursor string) (*models.Page[models.CommentView], error) {
	if err := parseID("cat", catID); err != nil {
		return nil, err
	}
	req, err := s.paginator.Request(limit, cursor)
	if err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Cats(s.db).GetByID(ctx, catID); err != nil {
		return nil, notFound(err, "cat %s not found", catID)
	}

	rows, err := s.repomanager.Comments(s.db).ListByCat(ctx, catID, req.After, req.Fetch())
	if err != nil {
		return nil, common.Storage("list comments", err)
	}
	page, next, err := pagination.Cut(s.paginator, req, rows, func(c models.Comment) pagination.Key {
		return pagination.Key{At: c.CreatedAt, ID: c.ID}
	})
	if err != nil {
		return nil, err
	}

	items, err := s.enricher.comments(ctx, viewer, page)
	if err != nil {
		return nil, err
	}
	return &models.Page[models.CommentView]{Items: items, NextCursor: next}, nil
}

func catKey(c models.Cat) pagination.Key {
	return pagination.Key{At: c.CreatedAt, ID: c.ID}
}
