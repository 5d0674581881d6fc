package services

import (
	"context"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/server/auth"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

type CommentService struct {
	db          dbx.Transactor
	repomanager repomanager.RepositoryManager
}

func NewCommentService(db dbx.Transactor, m repomanager.RepositoryManager) *CommentService {
	return &CommentService{db: db, repomanager: m}
}

func (s *CommentService) Create(ctx context.Context, me *models.User, catID, body string) (*models.Comment, error) {
	if err := requireIdentity(me); err != nil {
		return nil, err
	}
	if err := parseID("cat", catID); err != nil {
		return nil, err
	}

	c := &models.Comment{ID: uuid.NewString(), CatID: catID, Author: me.UserName, Body: body}
	if err := s.repomanager.Comments(s.db).Create(ctx, c); err != nil {
		return nil, notFound(err, "cat %s not found", catID)
	}
	return c, nil
}

// Delete removes a comment. Only its author may do so.
func (s *CommentService) Delete(ctx context.Context, me *models.User, id string) error {
	if err := requireIdentity(me); err != nil {
		return err
	}
	if err := parseID("comment", id); err != nil {
		return err
	}

	repo := s.repomanager.Comments(s.db)
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "comment %s not found", id)
	}
	if err := auth.RequireOwner(me, c); err != nil {
		return err
	}

	deleted, err := repo.Delete(ctx, id)
	if err != nil {
		return common.Storage("delete comment", err)
	}
	if !deleted {
		return common.Errorf(common.ErrorNotFound, "comment %s not found", id)
	}
	return nil
}
