package models

import "time"

// Like records that a user liked a product. A user can like a product only once.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_like_user_product"`
	User      *User     `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_like_user_product"`
	Product   *Product  `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time `json:"created_at"`
}
