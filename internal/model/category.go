package model

type Category struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	ParentID *uint  `gorm:"index" json:"parent"`

	// Removing a category removes its whole subtree.
	Children []Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
}
