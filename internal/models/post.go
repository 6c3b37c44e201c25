package models

import "time"

// Post represents a short text post in the Ripple application.
//
// AuthorName and AuthorUsername are snapshots taken at creation time and are
// not kept in sync with later profile renames. Likes holds the IDs of users
// who liked the post; TotalLikes caches its cardinality and is recomputed
// from the set on every mutation rather than incremented, so it cannot drift.
type Post struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Body           string `gorm:"type:text;not null" json:"body"`
	AuthorID       uint   `gorm:"not null;index" json:"author_id"`
	AuthorName     string `gorm:"not null" json:"author_name"`
	AuthorUsername string `gorm:"not null" json:"author_username"`

	Likes      IDList `gorm:"serializer:json" json:"likes"`
	TotalLikes int    `json:"total_likes"`

	// Comment nesting is modelled but not exposed by any endpoint.
	IsComment bool   `json:"is_comment"`
	Comments  IDList `gorm:"serializer:json" json:"comments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
