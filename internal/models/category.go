package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is a label attached to posts via the post_categories join
// table. Categories are created implicitly when attached to a post by
// that post's owner.
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Posts     []Post         `gorm:"many2many:post_categories" json:"posts,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
