package model

import "time"

// Like is a (post, owner) join row. The composite unique index is the actual
// race-safety mechanism for duplicate likes under concurrent requests.
type Like struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	PostID  uint `gorm:"not null;uniqueIndex:idx_like_post_owner" json:"post_id"`
	OwnerID uint `gorm:"not null;uniqueIndex:idx_like_post_owner" json:"owner_id"`

	Post  Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Owner User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
