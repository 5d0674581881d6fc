package models

import "time"

// Collection is a named, owner-curated set of cats.
type Collection struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CatCount    int64     `json:"cat_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Collection) OwnerUsername() string { return c.Owner }

// CollectionCat is a membership row joined with the cat it points at.
type CollectionCat struct {
	Cat     Cat
	AddedAt time.Time
}
