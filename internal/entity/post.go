package entity

import "time"

type Post struct {
	ID      uint
	Title   string
	Body    string
	OwnerID uint
	// OwnerUsername is resolved from the owner row; the full projection shows
	// the username, never the owner id.
	OwnerUsername string
	CategoryID    *uint
	CategoryName  string
	PreviewURL    string
	Images        []PostImage
	Comments      []Comment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PostImage struct {
	ID       uint
	PostID   uint
	Title    string
	ImageURL string
}
