package models

import "time"

// Follow is a directed edge follower -> followee.
type Follow struct {
	Follower   string
	Followee   string
	FollowedAt time.Time
}

// FollowView is one row of a follower/following listing.
type FollowView struct {
	Profile    Profile   `json:"profile"`
	FollowedAt time.Time `json:"followed_at"`
}
