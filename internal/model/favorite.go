package model

import "time"

// Favorite mirrors Like's uniqueness contract but is driven by a single
// toggle operation rather than an add/remove pair.
type Favorite struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	PostID  uint `gorm:"not null;uniqueIndex:idx_favorite_post_owner" json:"post_id"`
	OwnerID uint `gorm:"not null;uniqueIndex:idx_favorite_post_owner" json:"owner_id"`

	Post  Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Owner User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
