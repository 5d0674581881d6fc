package services

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/dmitrijs2005/catsocial/internal/dbx"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/dmitrijs2005/catsocial/internal/server/pagination"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/cats"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/collections"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/comments"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/follows"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/likes"
	"github.com/dmitrijs2005/catsocial/internal/server/repositories/users"
	"github.com/dmitrijs2005/catsocial/internal/server/storage"
)

// memStore is an in-memory stand-in for PostgreSQL. Transactions are
// serialized and rolled back on error, which is enough to exercise the
// edge+counter discipline of the services, including under concurrency.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	state memState
	clock time.Time

	// fail makes the named repository method return the error once.
	fail map[string]error
	// calls counts repository method invocations.
	calls map[string]int
}

type pair [2]string

type memState struct {
	users       map[string]models.User
	follows     map[pair]time.Time
	likes       map[pair]time.Time
	cats        map[string]models.Cat
	collections map[string]models.Collection
	members     map[pair]time.Time
	comments    map[string]models.Comment
}

func (s memState) clone() memState {
	return memState{
		users:       cloneMap(s.users),
		follows:     cloneMap(s.follows),
		likes:       cloneMap(s.likes),
		cats:        cloneMap(s.cats),
		collections: cloneMap(s.collections),
		members:     cloneMap(s.members),
		comments:    cloneMap(s.comments),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			users:       map[string]models.User{},
			follows:     map[pair]time.Time{},
			likes:       map[pair]time.Time{},
			cats:        map[string]models.Cat{},
			collections: map[string]models.Collection{},
			members:     map[pair]time.Time{},
			comments:    map[string]models.Comment{},
		},
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		fail:  map[string]error{},
		calls: map[string]int{},
	}
}

// enter locks the data and applies failure injection for method. Callers
// defer the unlock before calling it.
func (s *memStore) enter(method string) error {
	s.mu.Lock()
	s.calls[method]++
	if err, ok := s.fail[method]; ok {
		delete(s.fail, method)
		return err
	}
	return nil
}

func (s *memStore) now() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *memStore) failNext(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[method] = err
}

func (s *memStore) callCount(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// dbx.Transactor

func (s *memStore) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	panic("memStore: raw SQL not supported")
}

func (s *memStore) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	panic("memStore: raw SQL not supported")
}

func (s *memStore) QueryRowContext(context.Context, string, ...any) *sql.Row {
	panic("memStore: raw SQL not supported")
}

func (s *memStore) InTx(ctx context.Context, fn dbx.TxFunc) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.state.clone()
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.state = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// repomanager.RepositoryManager

func (s *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (s *memStore) Users(dbx.DBTX) users.Repository              { return memUsers{s} }
func (s *memStore) Follows(dbx.DBTX) follows.Repository          { return memFollows{s} }
func (s *memStore) Likes(dbx.DBTX) likes.Repository              { return memLikes{s} }
func (s *memStore) Cats(dbx.DBTX) cats.Repository                { return memCats{s} }
func (s *memStore) Collections(dbx.DBTX) collections.Repository  { return memCollections{s} }
func (s *memStore) Comments(dbx.DBTX) comments.Repository        { return memComments{s} }

// invariants checks every denormalized counter against its edge rows.
func (s *memStore) invariants() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var broken []string
	for name, u := range s.state.users {
		var followers, following, posts int64
		for e := range s.state.follows {
			if e[1] == name {
				followers++
			}
			if e[0] == name {
				following++
			}
		}
		for _, c := range s.state.cats {
			if c.Owner == name {
				posts++
			}
		}
		if u.FollowerCount != followers || u.FollowingCount != following || u.PostCount != posts {
			broken = append(broken, fmt.Sprintf("user %s: counters %d/%d/%d, edges %d/%d/%d",
				name, u.FollowerCount, u.FollowingCount, u.PostCount, followers, following, posts))
		}
	}
	for id, c := range s.state.cats {
		var n int64
		for e := range s.state.likes {
			if e[0] == id {
				n++
			}
		}
		if c.Likes != n {
			broken = append(broken, fmt.Sprintf("cat %s: likes %d, edges %d", id, c.Likes, n))
		}
	}
	for id, c := range s.state.collections {
		var n int64
		for e := range s.state.members {
			if e[0] == id {
				n++
			}
		}
		if c.CatCount != n {
			broken = append(broken, fmt.Sprintf("collection %s: cat_count %d, rows %d", id, c.CatCount, n))
		}
	}
	return broken
}

func (s *memStore) user(name string) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.users[name]
}

func (s *memStore) cat(id string) models.Cat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.cats[id]
}

// seedUser inserts an identity directly.
func (s *memStore) seedUser(name string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := models.User{UserName: name, Email: name + "@example.com", PasswordHash: strings.Repeat("a", 64), CreatedAt: s.now()}
	s.state.users[name] = u
	return &u
}

// seedCat inserts a cat directly, keeping post_count in step.
func (s *memStore) seedCat(id, owner string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.cats[id] = models.Cat{ID: id, Owner: owner, Name: "cat " + id, Tags: []string{}, ImageKey: "cats/" + id, CreatedAt: at}
	u := s.state.users[owner]
	u.PostCount++
	s.state.users[owner] = u
}

func fk(format string, args ...any) error {
	return fmt.Errorf("%w: %s", common.ErrorNotFound, fmt.Sprintf(format, args...))
}

func page[T any](rows []T, keyOf func(T) pagination.Key, after *pagination.Key, limit int) []T {
	slices.SortFunc(rows, func(a, b T) int {
		ka, kb := keyOf(a), keyOf(b)
		switch {
		case kb.Less(ka):
			return -1
		case ka.Less(kb):
			return 1
		default:
			return 0
		}
	})
	var out []T
	for _, r := range rows {
		if after != nil && !keyOf(r).Less(*after) {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) error {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Users.Create"); err != nil {
		return err
	}
	if _, ok := r.s.state.users[u.UserName]; ok {
		return fmt.Errorf("%w: users_pkey", common.ErrConflict)
	}
	for _, other := range r.s.state.users {
		if other.Email == u.Email {
			return fmt.Errorf("%w: users_email_key", common.ErrConflict)
		}
	}
	u.CreatedAt = r.s.now()
	r.s.state.users[u.UserName] = *u
	return nil
}

func (r memUsers) find(method string, match func(models.User) bool) (*models.User, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter(method); err != nil {
		return nil, err
	}
	for _, u := range r.s.state.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetByUsername(_ context.Context, name string) (*models.User, error) {
	return r.find("Users.GetByUsername", func(u models.User) bool { return u.UserName == name })
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find("Users.GetByEmail", func(u models.User) bool { return u.Email == email })
}

func (r memUsers) GetBySessionTokenHash(_ context.Context, hash string) (*models.User, error) {
	return r.find("Users.GetBySessionTokenHash", func(u models.User) bool { return hash != "" && u.SessionTokenHash == hash })
}

func (r memUsers) GetMany(_ context.Context, names []string) (map[string]*models.User, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Users.GetMany"); err != nil {
		return nil, err
	}
	out := map[string]*models.User{}
	for _, n := range names {
		if u, ok := r.s.state.users[n]; ok {
			out[n] = &u
		}
	}
	return out, nil
}

func (r memUsers) SetSessionTokenHash(_ context.Context, name, hash string) error {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Users.SetSessionTokenHash"); err != nil {
		return err
	}
	u, ok := r.s.state.users[name]
	if !ok {
		return common.ErrorNotFound
	}
	u.SessionTokenHash = hash
	r.s.state.users[name] = u
	return nil
}

func (r memUsers) UpdateProfile(_ context.Context, name string, bio, avatarKey *string) (*models.User, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Users.UpdateProfile"); err != nil {
		return nil, err
	}
	u, ok := r.s.state.users[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if bio != nil {
		u.Bio = *bio
	}
	if avatarKey != nil {
		u.AvatarKey = *avatarKey
	}
	r.s.state.users[name] = u
	return &u, nil
}

func (r memUsers) AddFollowDelta(_ context.Context, follower, followee string, d int64) (int64, int64, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Users.AddFollowDelta"); err != nil {
		return 0, 0, err
	}
	a, ok := r.s.state.users[follower]
	b, ok2 := r.s.state.users[followee]
	if !ok || !ok2 {
		return 0, 0, common.ErrorNotFound
	}
	a.FollowingCount = max(a.FollowingCount+d, 0)
	b.FollowerCount = max(b.FollowerCount+d, 0)
	r.s.state.users[follower] = a
	r.s.state.users[followee] = b
	return a.FollowingCount, b.FollowerCount, nil
}

func (r memUsers) AddPostDelta(_ context.Context, name string, d int64) (int64, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Users.AddPostDelta"); err != nil {
		return 0, err
	}
	u, ok := r.s.state.users[name]
	if !ok {
		return 0, common.ErrorNotFound
	}
	u.PostCount = max(u.PostCount+d, 0)
	r.s.state.users[name] = u
	return u.PostCount, nil
}

type memFollows struct{ s *memStore }

func (r memFollows) Insert(_ context.Context, follower, followee string) (bool, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Follows.Insert"); err != nil {
		return false, err
	}
	if _, ok := r.s.state.users[followee]; !ok {
		return false, fk("follows_followee_fkey")
	}
	k := pair{follower, followee}
	if _, ok := r.s.state.follows[k]; ok {
		return false, nil
	}
	r.s.state.follows[k] = r.s.now()
	return true, nil
}

func (r memFollows) Delete(_ context.Context, follower, followee string) (bool, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Follows.Delete"); err != nil {
		return false, err
	}
	k := pair{follower, followee}
	if _, ok := r.s.state.follows[k]; !ok {
		return false, nil
	}
	delete(r.s.state.follows, k)
	return true, nil
}

func (r memFollows) list(anchor int, name string, after *pagination.Key, limit int) []models.Follow {
	var rows []models.Follow
	for k, at := range r.s.state.follows {
		if k[anchor] == name {
			rows = append(rows, models.Follow{Follower: k[0], Followee: k[1], FollowedAt: at})
		}
	}
	return page(rows, func(f models.Follow) pagination.Key {
		if anchor == 1 {
			return pagination.Key{At: f.FollowedAt, ID: f.Follower}
		}
		return pagination.Key{At: f.FollowedAt, ID: f.Followee}
	}, after, limit)
}

func (r memFollows) ListFollowers(_ context.Context, followee string, after *pagination.Key, limit int) ([]models.Follow, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Follows.ListFollowers"); err != nil {
		return nil, err
	}
	return r.list(1, followee, after, limit), nil
}

func (r memFollows) ListFollowing(_ context.Context, follower string, after *pagination.Key, limit int) ([]models.Follow, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Follows.ListFollowing"); err != nil {
		return nil, err
	}
	return r.list(0, follower, after, limit), nil
}

func (r memFollows) FollowedBy(_ context.Context, follower string, candidates []string) (map[string]bool, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Follows.FollowedBy"); err != nil {
		return nil, err
	}
	out := map[string]bool{}
	for _, c := range candidates {
		if _, ok := r.s.state.follows[pair{follower, c}]; ok {
			out[c] = true
		}
	}
	return out, nil
}

type memLikes struct{ s *memStore }

func (r memLikes) Insert(_ context.Context, catID, name string) (bool, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Likes.Insert"); err != nil {
		return false, err
	}
	if _, ok := r.s.state.cats[catID]; !ok {
		return false, fk("likes_cat_id_fkey")
	}
	k := pair{catID, name}
	if _, ok := r.s.state.likes[k]; ok {
		return false, nil
	}
	r.s.state.likes[k] = r.s.now()
	return true, nil
}

func (r memLikes) Delete(_ context.Context, catID, name string) (bool, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Likes.Delete"); err != nil {
		return false, err
	}
	k := pair{catID, name}
	if _, ok := r.s.state.likes[k]; !ok {
		return false, nil
	}
	delete(r.s.state.likes, k)
	return true, nil
}

func (r memLikes) LikedBy(_ context.Context, name string, ids []string) (map[string]bool, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Likes.LikedBy"); err != nil {
		return nil, err
	}
	out := map[string]bool{}
	for _, id := range ids {
		if _, ok := r.s.state.likes[pair{id, name}]; ok {
			out[id] = true
		}
	}
	return out, nil
}

type memCats struct{ s *memStore }

func (r memCats) Create(_ context.Context, c *models.Cat) error {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Cats.Create"); err != nil {
		return err
	}
	if _, ok := r.s.state.users[c.Owner]; !ok {
		return fk("cats_owner_fkey")
	}
	c.CreatedAt = r.s.now()
	r.s.state.cats[c.ID] = *c
	return nil
}

func (r memCats) GetByID(_ context.Context, id string) (*models.Cat, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Cats.GetByID"); err != nil {
		return nil, err
	}
	c, ok := r.s.state.cats[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r memCats) List(_ context.Context, owner string, after *pagination.Key, limit int) ([]models.Cat, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Cats.List"); err != nil {
		return nil, err
	}
	var rows []models.Cat
	for _, c := range r.s.state.cats {
		if owner == "" || c.Owner == owner {
			rows = append(rows, c)
		}
	}
	return page(rows, catKey, after, limit), nil
}

func (r memCats) AddLikeDelta(_ context.Context, id string, d int64) (int64, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Cats.AddLikeDelta"); err != nil {
		return 0, err
	}
	c, ok := r.s.state.cats[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	c.Likes = max(c.Likes+d, 0)
	r.s.state.cats[id] = c
	return c.Likes, nil
}

type memCollections struct{ s *memStore }

func (r memCollections) Create(_ context.Context, c *models.Collection) error {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Collections.Create"); err != nil {
		return err
	}
	for _, other := range r.s.state.collections {
		if other.Owner == c.Owner && other.Name == c.Name {
			return fmt.Errorf("%w: collections_owner_name_key", common.ErrConflict)
		}
	}
	c.CreatedAt = r.s.now()
	c.UpdatedAt = c.CreatedAt
	r.s.state.collections[c.ID] = *c
	return nil
}

func (r memCollections) GetByID(_ context.Context, id string) (*models.Collection, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Collections.GetByID"); err != nil {
		return nil, err
	}
	c, ok := r.s.state.collections[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r memCollections) ListByOwner(_ context.Context, owner string, after *pagination.Key, limit int) ([]models.Collection, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Collections.ListByOwner"); err != nil {
		return nil, err
	}
	var rows []models.Collection
	for _, c := range r.s.state.collections {
		if c.Owner == owner {
			rows = append(rows, c)
		}
	}
	return page(rows, func(c models.Collection) pagination.Key { return pagination.Key{At: c.CreatedAt, ID: c.ID} }, after, limit), nil
}

func (r memCollections) Update(_ context.Context, id string, name, description *string) (*models.Collection, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Collections.Update"); err != nil {
		return nil, err
	}
	c, ok := r.s.state.collections[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if name != nil {
		for oid, other := range r.s.state.collections {
			if oid != id && other.Owner == c.Owner && other.Name == *name {
				return nil, fmt.Errorf("%w: collections_owner_name_key", common.ErrConflict)
			}
		}
		c.Name = *name
	}
	if description != nil {
		c.Description = *description
	}
	c.UpdatedAt = r.s.now()
	r.s.state.collections[id] = c
	return &c, nil
}

func (r memCollections) Delete(_ context.Context, id string) (bool, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Collections.Delete"); err != nil {
		return false, err
	}
	if _, ok := r.s.state.collections[id]; !ok {
		return false, nil
	}
	delete(r.s.state.collections, id)
	for k := range r.s.state.members {
		if k[0] == id {
			delete(r.s.state.members, k)
		}
	}
	return true, nil
}

func (r memCollections) InsertCat(_ context.Context, collID, catID string) (bool, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Collections.InsertCat"); err != nil {
		return false, err
	}
	if _, ok := r.s.state.cats[catID]; !ok {
		return false, fk("collection_cats_cat_id_fkey")
	}
	k := pair{collID, catID}
	if _, ok := r.s.state.members[k]; ok {
		return false, nil
	}
	r.s.state.members[k] = r.s.now()
	return true, nil
}

func (r memCollections) DeleteCat(_ context.Context, collID, catID string) (bool, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Collections.DeleteCat"); err != nil {
		return false, err
	}
	k := pair{collID, catID}
	if _, ok := r.s.state.members[k]; !ok {
		return false, nil
	}
	delete(r.s.state.members, k)
	return true, nil
}

func (r memCollections) AddCatDelta(_ context.Context, collID string, d int64) (int64, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Collections.AddCatDelta"); err != nil {
		return 0, err
	}
	c, ok := r.s.state.collections[collID]
	if !ok {
		return 0, common.ErrorNotFound
	}
	c.CatCount = max(c.CatCount+d, 0)
	r.s.state.collections[collID] = c
	return c.CatCount, nil
}

func (r memCollections) ListCats(_ context.Context, collID string, after *pagination.Key, limit int) ([]models.CollectionCat, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Collections.ListCats"); err != nil {
		return nil, err
	}
	var rows []models.CollectionCat
	for k, at := range r.s.state.members {
		if k[0] == collID {
			rows = append(rows, models.CollectionCat{Cat: r.s.state.cats[k[1]], AddedAt: at})
		}
	}
	return page(rows, func(m models.CollectionCat) pagination.Key { return pagination.Key{At: m.AddedAt, ID: m.Cat.ID} }, after, limit), nil
}

type memComments struct{ s *memStore }

func (r memComments) Create(_ context.Context, c *models.Comment) error {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Comments.Create"); err != nil {
		return err
	}
	if _, ok := r.s.state.cats[c.CatID]; !ok {
		return fk("comments_cat_id_fkey")
	}
	c.CreatedAt = r.s.now()
	r.s.state.comments[c.ID] = *c
	return nil
}

func (r memComments) GetByID(_ context.Context, id string) (*models.Comment, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Comments.GetByID"); err != nil {
		return nil, err
	}
	c, ok := r.s.state.comments[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r memComments) Delete(_ context.Context, id string) (bool, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Comments.Delete"); err != nil {
		return false, err
	}
	if _, ok := r.s.state.comments[id]; !ok {
		return false, nil
	}
	delete(r.s.state.comments, id)
	return true, nil
}

func (r memComments) ListByCat(_ context.Context, catID string, after *pagination.Key, limit int) ([]models.Comment, error) {
	defer r.s.mu.Unlock()
	if err := r.s.enter("Comments.ListByCat"); err != nil {
		return nil, err
	}
	var rows []models.Comment
	for _, c := range r.s.state.comments {
		if c.CatID == catID {
			rows = append(rows, c)
		}
	}
	return page(rows, func(c models.Comment) pagination.Key { return pagination.Key{At: c.CreatedAt, ID: c.ID} }, after, limit), nil
}

// memImages is an in-memory storage.ImageStore.
type memImages struct {
	mu      sync.Mutex
	objects map[string][]byte
	seq     int
	putErr  error
	urlErr  error
}

func newMemImages() *memImages {
	return &memImages{objects: map[string][]byte{}}
}

func (m *memImages) Put(_ context.Context, prefix string, data []byte) (string, error) {
	if _, err := storage.DetectImage(data); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return "", m.putErr
	}
	m.seq++
	key := fmt.Sprintf("%s/%d", prefix, m.seq)
	m.objects[key] = data
	return key, nil
}

func (m *memImages) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memImages) URL(_ context.Context, key string) (string, error) {
	if m.urlErr != nil {
		return "", m.urlErr
	}
	if key == "" {
		return "", nil
	}
	return "https://img.test/" + key, nil
}

func (m *memImages) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// recorder counts EdgeMutation calls by "edge/op/result".
type recorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func newRecorder() *recorder { return &recorder{counts: map[string]int{}} }

func (r *recorder) EdgeMutation(edge, op string, applied bool, err error) {
	result := "noop"
	switch {
	case err != nil:
		result = "error"
	case applied:
		result = "applied"
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[edge+"/"+op+"/"+result]++
}

func (r *recorder) get(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[key]
}
