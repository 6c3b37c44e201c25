// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a user in the Ripple application.
//
// The four IDList columns are the user's side of the denormalized social
// graph: Posts and Following are outbound references, Followers and
// LikedPosts record what other entities point at this user. For any pair
// (A, B), A in B.Followers must mirror B in A.Following; the pairing is
// maintained by the services, not by the storage layer.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email,omitempty"`
	Password string `gorm:"not null" json:"-"`

	Posts      IDList `gorm:"serializer:json" json:"posts"`
	LikedPosts IDList `gorm:"serializer:json" json:"likes"`
	Followers  IDList `gorm:"serializer:json" json:"followers"`
	Following  IDList `gorm:"serializer:json" json:"following"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public returns a copy safe for public listing endpoints: the email is
// stripped. The password hash is never serialized regardless.
func (u User) Public() User {
	u.Email = ""
	return u
}
