package models

import "time"

type Comment struct {
	ID        string
	CatID     string
	Author    string
	Body      string
	CreatedAt time.Time
}

func (c *Comment) OwnerUsername() string { return c.Author }

type CommentView struct {
	ID        string    `json:"id"`
	CatID     string    `json:"cat_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Author    Profile   `json:"author"`
}
