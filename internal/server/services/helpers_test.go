package services

import (
	"testing"

	"github.com/dmitrijs2005/catsocial/internal/logging"
	"github.com/dmitrijs2005/catsocial/internal/server/pagination"
)

var pngImage = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

const (
	catA = "00000000-0000-4000-8000-00000000000a"
	catB = "00000000-0000-4000-8000-00000000000b"
	catC = "00000000-0000-4000-8000-00000000000c"

	missingID = "ffffffff-ffff-4fff-8fff-ffffffffffff"
)

type env struct {
	store    *memStore
	images   *memImages
	recorder *recorder

	sessions    *SessionService
	users       *UserService
	graph       *GraphService
	cats        *CatService
	collections *CollectionService
	comments    *CommentService
	feed        *FeedService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := newMemStore()
	images := newMemImages()
	rec := newRecorder()
	paginator := pagination.NewPaginator(pagination.NewCodec([]byte("test-secret")), pagination.Limits{Default: 20, Max: 100})

	sessions := NewSessionService(store, store)
	return &env{
		store:       store,
		images:      images,
		recorder:    rec,
		sessions:    sessions,
		users:       NewUserService(store, store, sessions, images, logging.Nop{}),
		graph:       NewGraphService(store, store, rec),
		cats:        NewCatService(store, store, images, rec, logging.Nop{}),
		collections: NewCollectionService(store, store, rec),
		comments:    NewCommentService(store, store),
		feed:        NewFeedService(store, store, paginator, images),
	}
}
