package entity

import "time"

type User struct {
	ID        uint
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string // bcrypt hash, never serialized
	CreatedAt time.Time

	// Favorites holds the user's favorited posts, filled for the self-view
	// detail projection only.
	Favorites []Post
}
