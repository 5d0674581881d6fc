package models

import "time"

// User is an identity row. The counters are derived from edge tables and
// are only ever changed together with the edge they count.
type User struct {
	UserName         string
	Email            string
	PasswordHash     string
	SessionTokenHash string
	Bio              string
	AvatarKey        string
	PostCount        int64
	FollowerCount    int64
	FollowingCount   int64
	CreatedAt        time.Time
}

// Profile is the public projection of a User as seen by a viewer.
type Profile struct {
	UserName       string `json:"username"`
	Bio            string `json:"bio"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	PostCount      int64  `json:"post_count"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
	Followed       bool   `json:"followed"`
	Guest          bool   `json:"guest,omitempty"`
}

// GuestProfile is returned for unauthenticated profile requests.
func GuestProfile() Profile {
	return Profile{UserName: "guest", Guest: true}
}

// FallbackProfile stands in for an identity that disappeared between the
// page query and the profile lookup.
func FallbackProfile(username string) Profile {
	return Profile{UserName: username}
}
