// Package services contains server-side business logic: session handling,
// the edge mutations that keep denormalized counters in step with their
// edge tables, and the read-side composition of paginated listings.
package services

import (
	"errors"

	"github.com/dmitrijs2005/catsocial/internal/common"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/google/uuid"
)

// Edge kinds reported to the MutationRecorder.
const (
	EdgeFollow     = "follow"
	EdgeLike       = "like"
	EdgeMembership = "membership"
	EdgePost       = "post"

	OpInsert = "insert"
	OpDelete = "delete"
)

// MutationRecorder observes edge mutations. *metrics.Metrics implements it.
type MutationRecorder interface {
	EdgeMutation(edge, op string, applied bool, err error)
}

type nopRecorder struct{}

func (nopRecorder) EdgeMutation(string, string, bool, error) {}

func recorderOrNop(r MutationRecorder) MutationRecorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}

// delta converts "did the edge row change" into a counter delta for op.
func delta(op string, applied bool) int64 {
	switch {
	case !applied:
		return 0
	case op == OpDelete:
		return -1
	default:
		return 1
	}
}

// parseID checks that id is a UUID. what names the entity in the message.
func parseID(what, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.Errorf(common.ErrValidation, "invalid %s id", what)
	}
	return nil
}

// notFound replaces a bare repository ErrorNotFound with a message naming
// the missing entity. Other errors become storage failures.
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.Errorf(common.ErrorNotFound, format, args...)
	}
	return common.Storage("lookup", err)
}

// requireIdentity fails with common.ErrUnauthorized for anonymous callers.
func requireIdentity(me *models.User) error {
	if me == nil {
		return common.Errorf(common.ErrUnauthorized, "authentication required")
	}
	return nil
}
