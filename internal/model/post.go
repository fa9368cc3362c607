package model

import "time"

type Post struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Title      string `gorm:"size:255;uniqueIndex;not null" json:"title"`
	Body       string `gorm:"type:text" json:"body"`
	OwnerID    uint   `gorm:"not null;index" json:"owner_id"`
	CategoryID *uint  `gorm:"index" json:"category_id"`
	PreviewURL string `json:"preview"`

	Owner    User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`

	Images   []PostImage `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"images"`
	Comments []Comment   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
