package model

import (
	"math/rand"
	"strconv"

	"gorm.io/gorm"
)

type PostImage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	Title    string `gorm:"size:150" json:"title"`
	ImageURL string `gorm:"not null" json:"image"`
}

// GenerateImageTitle returns "image" followed by a random integer in
// [10, 99999]. Collisions are permitted: titles are display labels, not keys.
func GenerateImageTitle() string {
	return "image" + strconv.Itoa(rand.Intn(99990)+10)
}

// BeforeSave regenerates the title on every write. Caller-supplied titles are
// never meaningful input.
func (pi *PostImage) BeforeSave(tx *gorm.DB) error {
	pi.Title = GenerateImageTitle()
	return nil
}
