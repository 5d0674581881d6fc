package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/server/auth"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CollectionService manages collections and their membership. Every
// mutation except Create is gated on ownership.
type CollectionService struct {
	db          dbx.Transactor
	repomanager repomanager.RepositoryManager
	recorder    MutationRecorder
}

func NewCollectionService(db dbx.Transactor, m repomanager.RepositoryManager, rec MutationRecorder) *CollectionService {
	return &CollectionService{db: db, repomanager: m, recorder: recorderOrNop(rec)}
}

func (s *CollectionService) Create(ctx context.Context, me *models.User, name, description string) (*models.Collection, error) {
	if err := requireIdentity(me); err != nil {
		return nil, err
	}

	c := &models.Collection{ID: uuid.NewString(), Owner: me.UserName, Name: name, Description: description}
	if err := s.repomanager.Collections(s.db).Create(ctx, c); err != nil {
		return nil, duplicateName(err, name)
	}
	return c, nil
}

// Update renames and/or redescribes a collection; nil leaves a field as is.
func (s *CollectionService) Update(ctx context.Context, me *models.User, id string, name, description *string) (*models.Collection, error) {
	if _, err := s.owned(ctx, me, id); err != nil {
		return nil, err
	}

	c, err := s.repomanager.Collections(s.db).Update(ctx, id, name, description)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Errorf(common.ErrorNotFound, "collection %s not found", id)
		}
		n := ""
		if name != nil {
			n = *name
		}
		return nil, duplicateName(err, n)
	}
	return c, nil
}

// Delete removes the collection; membership rows go with it.
func (s *CollectionService) Delete(ctx context.Context, me *models.User, id string) error {
	if _, err := s.owned(ctx, me, id); err != nil {
		return err
	}

	deleted, err := s.repomanager.Collections(s.db).Delete(ctx, id)
	if err != nil {
		return common.Storage("delete collection", err)
	}
	if !deleted {
		return common.Errorf(common.ErrorNotFound, "collection %s not found", id)
	}
	return nil
}

// AddCat puts the cat into the collection and returns the resulting
// cat_count. Adding a cat that is already there changes nothing.
func (s *CollectionService) AddCat(ctx context.Context, me *models.User, collectionID, catID string) (int64, error) {
	return s.membership(ctx, me, collectionID, catID, OpInsert)
}

// RemoveCat takes the cat out of the collection and returns the resulting
// cat_count.
func (s *CollectionService) RemoveCat(ctx context.Context, me *models.User, collectionID, catID string) (int64, error) {
	return s.membership(ctx, me, collectionID, catID, OpDelete)
}

func (s *CollectionService) membership(ctx context.Context, me *models.User, collectionID, catID, op string) (int64, error) {
	if _, err := s.owned(ctx, me, collectionID); err != nil {
		return 0, err
	}
	if err := parseID("cat", catID); err != nil {
		return 0, err
	}
	if _, err := s.repomanager.Cats(s.db).GetByID(ctx, catID); err != nil {
		return 0, notFound(err, "cat %s not found", catID)
	}

	var (
		count   int64
		applied bool
	)
	err := s.db.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		repo := s.repomanager.Collections(tx)
		if op == OpInsert {
			applied, err = repo.InsertCat(ctx, collectionID, catID)
		} else {
			applied, err = repo.DeleteCat(ctx, collectionID, catID)
		}
		if err != nil {
			return err
		}

		count, err = repo.AddCatDelta(ctx, collectionID, delta(op, applied))
		return err
	})
	s.recorder.EdgeMutation(EdgeMembership, op, applied, err)
	if err != nil {
		return 0, common.Storage("collection membership", err)
	}
	return count, nil
}

// owned loads the collection and checks that me owns it.
func (s *CollectionService) owned(ctx context.Context, me *models.User, id string) (*models.Collection, error) {
	if err := requireIdentity(me); err != nil {
		return nil, err
	}
	if err := parseID("collection", id); err != nil {
		return nil, err
	}

	c, err := s.repomanager.Collections(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "collection %s not found", id)
	}
	if err := auth.RequireOwner(me, c); err != nil {
		return nil, err
	}
	return c, nil
}

func duplicateName(err error, name string) error {
	if errors.Is(err, common.ErrConflict) {
		return common.Errorf(common.ErrConflict, "collection %q already exists", name)
	}
	return common.Storage("collection", err)
}
