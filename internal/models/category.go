package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Category groups products on the storefront.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:200;not null;uniqueIndex" validate:"required,max=200"`
	Slug      string    `json:"slug" gorm:"size:255;uniqueIndex" validate:"omitempty,max=255"`
	Image     string    `json:"image" gorm:"size:255" validate:"omitempty,max=255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave derives the slug from the title when none was given.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = slug.Make(c.Title)
	}
	return nil
}
