package services

import (
	"context"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/server/auth"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/repomanager"
)

// FollowResult reports the state after a follow or unfollow.
type FollowResult struct {
	Status         string `json:"status"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
}

// LikeResult reports the state after a like or unlike.
type LikeResult struct {
	Likes int64 `json:"likes"`
	Liked bool  `json:"liked"`
}

// GraphService mutates follow and like edges. Each mutation is one
// transaction: the idempotent edge write, then a counter update by the
// number of rows the write actually changed (0 or 1). Repeating a call is
// therefore harmless and concurrent duplicates cannot double-count.
type GraphService struct {
	db          dbx.Transactor
	repomanager repomanager.RepositoryManager
	recorder    MutationRecorder
}

func NewGraphService(db dbx.Transactor, m repomanager.RepositoryManager, rec MutationRecorder) *GraphService {
	return &GraphService{db: db, repomanager: m, recorder: recorderOrNop(rec)}
}

// Follow makes me follow target. FollowerCount is target's, FollowingCount
// is me's.
func (s *GraphService) Follow(ctx context.Context, me *models.User, target string) (*FollowResult, error) {
	return s.follow(ctx, me, target, OpInsert)
}

// Unfollow removes the edge me -> target, if any.
func (s *GraphService) Unfollow(ctx context.Context, me *models.User, target string) (*FollowResult, error) {
	return s.follow(ctx, me, target, OpDelete)
}

func (s *GraphService) follow(ctx context.Context, me *models.User, target, op string) (*FollowResult, error) {
	verb, status := "follow", "followed"
	if op == OpDelete {
		verb, status = "unfollow", "unfollowed"
	}

	if err := requireIdentity(me); err != nil {
		return nil, err
	}
	if err := auth.RequireNotSelf(me, target, verb); err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Users(s.db).GetByUsername(ctx, target); err != nil {
		return nil, notFound(err, "user %s not found", target)
	}

	res := &FollowResult{Status: status}
	var applied bool
	err := s.db.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		edges := s.repomanager.Follows(tx)
		if op == OpInsert {
			applied, err = edges.Insert(ctx, me.UserName, target)
		} else {
			applied, err = edges.Delete(ctx, me.UserName, target)
		}
		if err != nil {
			return err
		}

		res.FollowingCount, res.FollowerCount, err = s.repomanager.Users(tx).
			AddFollowDelta(ctx, me.UserName, target, delta(op, applied))
		return err
	})
	s.recorder.EdgeMutation(EdgeFollow, op, applied, err)
	if err != nil {
		return nil, common.Storage(verb, err)
	}
	return res, nil
}

// Like records that me likes the cat.
func (s *GraphService) Like(ctx context.Context, me *models.User, catID string) (*LikeResult, error) {
	return s.like(ctx, me, catID, OpInsert)
}

// Unlike removes me's like from the cat, if any.
func (s *GraphService) Unlike(ctx context.Context, me *models.User, catID string) (*LikeResult, error) {
	return s.like(ctx, me, catID, OpDelete)
}

func (s *GraphService) like(ctx context.Context, me *models.User, catID, op string) (*LikeResult, error) {
	if err := requireIdentity(me); err != nil {
		return nil, err
	}
	if err := parseID("cat", catID); err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Cats(s.db).GetByID(ctx, catID); err != nil {
		return nil, notFound(err, "cat %s not found", catID)
	}

	res := &LikeResult{Liked: op == OpInsert}
	var applied bool
	err := s.db.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		edges := s.repomanager.Likes(tx)
		if op == OpInsert {
			applied, err = edges.Insert(ctx, catID, me.UserName)
		} else {
			applied, err = edges.Delete(ctx, catID, me.UserName)
		}
		if err != nil {
			return err
		}

		res.Likes, err = s.repomanager.Cats(tx).AddLikeDelta(ctx, catID, delta(op, applied))
		return err
	})
	s.recorder.EdgeMutation(EdgeLike, op, applied, err)
	if err != nil {
		if op == OpInsert {
			return nil, common.Storage("like", err)
		}
		return nil, common.Storage("unlike", err)
	}
	return res, nil
}
