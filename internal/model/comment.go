package model

import "time"

type Comment struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	PostID  uint   `gorm:"not null;index" json:"post"`
	OwnerID uint   `gorm:"not null;index" json:"owner_id"`
	Body    string `gorm:"type:text;not null" json:"body"`

	Post  Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Owner User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
