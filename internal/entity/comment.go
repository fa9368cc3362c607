package entity

import "time"

type Comment struct {
	ID            uint
	PostID        uint
	OwnerID       uint
	OwnerUsername string
	Body          string
	CreatedAt     time.Time
}
