package services

import (
	"context"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/catsocial/internal/server/storage"
	"golang.org/x/sync/errgroup"
)

// enricher attaches owner profiles, "followed by me" and "liked by me" flags
// to a page of rows. Each page costs at most three batched queries, run
// concurrently, no matter how many rows it has.
type enricher struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	images      storage.ImageStore
}

func newEnricher(db dbx.DBTX, m repomanager.RepositoryManager, images storage.ImageStore) *enricher {
	return &enricher{db: db, repomanager: m, images: images}
}

type lookup struct {
	users    map[string]*models.User
	followed map[string]bool
	liked    map[string]bool
}

// load runs the batched lookups for usernames and catIDs. The follow and
// like lookups are skipped for anonymous viewers.
func (e *enricher) load(ctx context.Context, viewer *models.User, usernames, catIDs []string) (*lookup, error) {
	l := &lookup{users: map[string]*models.User{}, followed: map[string]bool{}, liked: map[string]bool{}}
	usernames = distinct(usernames)
	catIDs = distinct(catIDs)

	g, ctx := errgroup.WithContext(ctx)

	if len(usernames) > 0 {
		g.Go(func() error {
			users, err := e.repomanager.Users(e.db).GetMany(ctx, usernames)
			if err != nil {
				return err
			}
			l.users = users
			return nil
		})
	}

	if viewer != nil && len(usernames) > 0 {
		g.Go(func() error {
			followed, err := e.repomanager.Follows(e.db).FollowedBy(ctx, viewer.UserName, usernames)
			if err != nil {
				return err
			}
			l.followed = followed
			return nil
		})
	}

	if viewer != nil && len(catIDs) > 0 {
		g.Go(func() error {
			liked, err := e.repomanager.Likes(e.db).LikedBy(ctx, viewer.UserName, catIDs)
			if err != nil {
				return err
			}
			l.liked = liked
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, common.Storage("enrich", err)
	}
	return l, nil
}

// profile returns the profile of username from l, or a fallback when the
// identity vanished after the page was read.
func (e *enricher) profile(ctx context.Context, l *lookup, username string) (models.Profile, error) {
	u, ok := l.users[username]
	if !ok {
		return models.FallbackProfile(username), nil
	}
	return e.profileOf(ctx, u, l.followed[username])
}

func (e *enricher) profileOf(ctx context.Context, u *models.User, followed bool) (models.Profile, error) {
	avatar, err := e.images.URL(ctx, u.AvatarKey)
	if err != nil {
		return models.Profile{}, common.Storage("avatar url", err)
	}
	return models.Profile{
		UserName:       u.UserName,
		Bio:            u.Bio,
		AvatarURL:      avatar,
		PostCount:      u.PostCount,
		FollowerCount:  u.FollowerCount,
		FollowingCount: u.FollowingCount,
		Followed:       followed,
	}, nil
}

func (e *enricher) cat(ctx context.Context, l *lookup, c *models.Cat) (models.CatView, error) {
	owner, err := e.profile(ctx, l, c.Owner)
	if err != nil {
		return models.CatView{}, err
	}
	image, err := e.images.URL(ctx, c.ImageKey)
	if err != nil {
		return models.CatView{}, common.Storage("image url", err)
	}
	return models.CatView{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Tags:        c.Tags,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		ImageURL:    image,
		Likes:       c.Likes,
		Liked:       l.liked[c.ID],
		CreatedAt:   c.CreatedAt,
		Owner:       owner,
	}, nil
}

func (e *enricher) cats(ctx context.Context, viewer *models.User, cats []models.Cat) ([]models.CatView, error) {
	usernames := make([]string, 0, len(cats))
	ids := make([]string, 0, len(cats))
	for _, c := range cats {
		usernames = append(usernames, c.Owner)
		ids = append(ids, c.ID)
	}

	l, err := e.load(ctx, viewer, usernames, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.CatView, 0, len(cats))
	for i := range cats {
		v, err := e.cat(ctx, l, &cats[i])
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (e *enricher) collectionCats(ctx context.Context, viewer *models.User, items []models.CollectionCat) ([]models.CatView, error) {
	usernames := make([]string, 0, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		usernames = append(usernames, it.Cat.Owner)
		ids = append(ids, it.Cat.ID)
	}

	l, err := e.load(ctx, viewer, usernames, ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.CatView, 0, len(items))
	for i := range items {
		v, err := e.cat(ctx, l, &items[i].Cat)
		if err != nil {
			return nil, err
		}
		v.AddedAt = items[i].AddedAt
		views = append(views, v)
	}
	return views, nil
}

// follows renders edges from the point of view of me; counterpart picks the
// other end of each edge.
func (e *enricher) follows(ctx context.Context, me *models.User, edges []models.Follow, counterpart func(models.Follow) string) ([]models.FollowView, error) {
	usernames := make([]string, 0, len(edges))
	for _, f := range edges {
		usernames = append(usernames, counterpart(f))
	}

	l, err := e.load(ctx, me, usernames, nil)
	if err != nil {
		return nil, err
	}

	views := make([]models.FollowView, 0, len(edges))
	for _, f := range edges {
		p, err := e.profile(ctx, l, counterpart(f))
		if err != nil {
			return nil, err
		}
		views = append(views, models.FollowView{Profile: p, FollowedAt: f.FollowedAt})
	}
	return views, nil
}

func (e *enricher) comments(ctx context.Context, viewer *models.User, comments []models.Comment) ([]models.CommentView, error) {
	usernames := make([]string, 0, len(comments))
	for _, c := range comments {
		usernames = append(usernames, c.Author)
	}

	l, err := e.load(ctx, viewer, usernames, nil)
	if err != nil {
		return nil, err
	}

	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		p, err := e.profile(ctx, l, c.Author)
		if err != nil {
			return nil, err
		}
		views = append(views, models.CommentView{ID: c.ID, CatID: c.CatID, Body: c.Body, CreatedAt: c.CreatedAt, Author: p})
	}
	return views, nil
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
