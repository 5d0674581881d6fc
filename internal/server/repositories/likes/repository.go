package likes

import "context"

type Repository interface {
	// Insert adds the like edge and reports whether it was absent before.
	Insert(ctx context.Context, catID, username string) (bool, error)
	// Delete removes the like edge and reports whether it was present.
	Delete(ctx context.Context, catID, username string) (bool, error)
	// LikedBy returns the subset of catIDs liked by username.
	LikedBy(ctx context.Context, username string, catIDs []string) (map[string]bool, error)
}
