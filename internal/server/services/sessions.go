package services

import (
	"context"
	"encoding/hex"
	"errors"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/server/auth"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/repomanager"
)

// SessionService issues and resolves opaque session tokens. A token stays
// valid until the next Issue for the same identity replaces it.
type SessionService struct {
	db          dbx.Transactor
	repomanager repomanager.RepositoryManager
}

func NewSessionService(db dbx.Transactor, m repomanager.RepositoryManager) *SessionService {
	return &SessionService{db: db, repomanager: m}
}

// Issue generates a fresh token for username and stores its digest,
// invalidating the previous token. tx may be a transaction or the pool.
func (s *SessionService) Issue(ctx context.Context, tx dbx.DBTX, username string) (string, error) {
	token, err := common.MakeRandHexString(common.SessionTokenBytes)
	if err != nil {
		return "", common.ErrorInternal
	}

	if err := s.repomanager.Users(tx).SetSessionTokenHash(ctx, username, auth.HashToken(token)); err != nil {
		return "", common.Storage("issue session", err)
	}
	return token, nil
}

// Resolve returns the identity currently holding token.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.User, error) {
	if !wellFormedToken(token) {
		return nil, common.Errorf(common.ErrUnauthorized, "invalid session token")
	}

	user, err := s.repomanager.Users(s.db).GetBySessionTokenHash(ctx, auth.HashToken(token))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.Errorf(common.ErrUnauthorized, "invalid session token")
		}
		return nil, common.Storage("resolve session", err)
	}
	return user, nil
}

func wellFormedToken(token string) bool {
	if len(token) != 2*common.SessionTokenBytes {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}
