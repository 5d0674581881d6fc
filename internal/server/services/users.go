package services

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/logging"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/catsocial/internal/server/storage"
)

// UserService provides account operations:
//   - Register: create an identity and its first session
//   - Login: verify credentials and rotate the session token
//   - GetProfile / UpdateProfile: public profile reads and edits
type UserService struct {
	db          dbx.Transactor
	repomanager repomanager.RepositoryManager
	sessions    *SessionService
	enricher    *enricher
	images      storage.ImageStore
	log         logging.Logger
}

func NewUserService(db dbx.Transactor, m repomanager.RepositoryManager, sessions *SessionService,
	images storage.ImageStore, log logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		sessions:    sessions,
		enricher:    newEnricher(db, m, images),
		images:      images,
		log:         log,
	}
}

// Register creates the identity and issues its first session token in one
// transaction. The password arrives already hashed.
func (s *UserService) Register(ctx context.Context, username, passwordHash, email string) (string, error) {
	var token string
	err := s.db.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		user := &models.User{UserName: username, Email: email, PasswordHash: passwordHash}
		if err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			if errors.Is(err, common.ErrConflict) {
				return common.Errorf(common.ErrConflict, "username or email already taken")
			}
			return err
		}

		var err error
		token, err = s.sessions.Issue(ctx, tx, username)
		return err
	})
	if err != nil {
		return "", common.Storage("register", err)
	}
	return token, nil
}

// Login checks the credentials and rotates the session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, passwordHash string) (string, *models.Profile, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.Errorf(common.ErrUnauthorized, "invalid email or password")
		}
		return "", nil, common.Storage("login", err)
	}
	if subtle.ConstantTimeCompare([]byte(user.PasswordHash), []byte(passwordHash)) != 1 {
		return "", nil, common.Errorf(common.ErrUnauthorized, "invalid email or password")
	}

	token, err := s.sessions.Issue(ctx, s.db, user.UserName)
	if err != nil {
		return "", nil, err
	}

	profile, err := s.enricher.profileOf(ctx, user, false)
	if err != nil {
		return "", nil, err
	}
	return token, &profile, nil
}

// GetProfile returns target's profile as seen by viewer. An empty target
// means the viewer itself; an anonymous viewer without a target gets the
// guest profile.
func (s *UserService) GetProfile(ctx context.Context, viewer *models.User, target string) (*models.Profile, error) {
	if target == "" {
		if viewer == nil {
			guest := models.GuestProfile()
			return &guest, nil
		}
		target = viewer.UserName
	}

	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, target)
	if err != nil {
		return nil, notFound(err, "user %s not found", target)
	}

	followed := false
	if viewer != nil && viewer.UserName != target {
		set, err := s.repomanager.Follows(s.db).FollowedBy(ctx, viewer.UserName, []string{target})
		if err != nil {
			return nil, common.Storage("followed by", err)
		}
		followed = set[target]
	}

	profile, err := s.enricher.profileOf(ctx, user, followed)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile edits bio and/or avatar. Counters are never touched here.
func (s *UserService) UpdateProfile(ctx context.Context, me *models.User, bio *string, avatar []byte) (*models.Profile, error) {
	if err := requireIdentity(me); err != nil {
		return nil, err
	}

	var avatarKey *string
	if len(avatar) > 0 {
		key, err := s.images.Put(ctx, "avatars", avatar)
		if err != nil {
			return nil, common.Storage("upload avatar", err)
		}
		avatarKey = &key
	}

	user, err := s.repomanager.Users(s.db).UpdateProfile(ctx, me.UserName, bio, avatarKey)
	if err != nil {
		if avatarKey != nil {
			s.discard(ctx, *avatarKey)
		}
		return nil, notFound(err, "user %s not found", me.UserName)
	}
	if avatarKey != nil && me.AvatarKey != "" && me.AvatarKey != *avatarKey {
		s.discard(ctx, me.AvatarKey)
	}

	profile, err := s.enricher.profileOf(ctx, user, false)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *UserService) discard(ctx context.Context, key string) {
	if err := s.images.Delete(ctx, key); err != nil {
		s.log.Warn(ctx, "failed to delete image", "key", key, "error", err)
	}
}
