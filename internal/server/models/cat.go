// Package models defines server-side data models persisted in the database.
package models

import "time"

// Cat is a content post.
type Cat struct {
	ID          string
	Owner       string
	Name        string
	Description string
	Tags        []string
	Latitude    *float64
	Longitude   *float64
	ImageKey    string
	Likes       int64
	CreatedAt   time.Time
}

func (c *Cat) OwnerUsername() string { return c.Owner }

// NewCat carries the client-supplied creation fields.
type NewCat struct {
	Name        string
	Description string
	Tags        []string
	Latitude    *float64
	Longitude   *float64
}

// CatView is a Cat enriched for a particular viewer.
type CatView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Likes       int64     `json:"likes"`
	Liked       bool      `json:"liked"`
	CreatedAt   time.Time `json:"created_at"`
	AddedAt     time.Time `json:"added_at,omitzero"`
	Owner       Profile   `json:"owner"`
}
