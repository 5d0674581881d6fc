package services

import (
	"context"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/logging"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/catsocial/internal/server/storage"
	"github.com/google/uuid"
)

// CatService creates cat posts.
type CatService struct {
	db          dbx.Transactor
	repomanager repomanager.RepositoryManager
	images      storage.ImageStore
	recorder    MutationRecorder
	log         logging.Logger
}

func NewCatService(db dbx.Transactor, m repomanager.RepositoryManager, images storage.ImageStore,
	rec MutationRecorder, log logging.Logger) *CatService {
	return &CatService{db: db, repomanager: m, images: images, recorder: recorderOrNop(rec), log: log}
}

// Create uploads the image, then inserts the cat and bumps the owner's
// post_count in one transaction. The image is removed again if the
// transaction fails.
func (s *CatService) Create(ctx context.Context, me *models.User, in models.NewCat, image []byte) (*models.Cat, error) {
	if err := requireIdentity(me); err != nil {
		return nil, err
	}

	key, err := s.images.Put(ctx, "cats", image)
	if err != nil {
		return nil, common.Storage("upload image", err)
	}

	cat := &models.Cat{
		ID:          uuid.NewString(),
		Owner:       me.UserName,
		Name:        in.Name,
		Description: in.Description,
		Tags:        in.Tags,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		ImageKey:    key,
	}
	if cat.Tags == nil {
		cat.Tags = []string{}
	}

	err = s.db.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Cats(tx).Create(ctx, cat); err != nil {
			return err
		}
		_, err := s.repomanager.Users(tx).AddPostDelta(ctx, me.UserName, 1)
		return err
	})
	s.recorder.EdgeMutation(EdgePost, OpInsert, err == nil, err)
	if err != nil {
		if derr := s.images.Delete(ctx, key); derr != nil {
			s.log.Warn(ctx, "failed to delete orphaned image", "key", key, "error", derr)
		}
		return nil, common.Storage("create cat", err)
	}
	return cat, nil
}
