package models

import "time"

// Order is a single-product purchase placed from the storefront.
// The product reference is cleared, not cascaded, when the product is removed.
type Order struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	CustomerName  string    `json:"customer_name" gorm:"size:255;not null"`
	CustomerPhone string    `json:"customer_phone" gorm:"size:13;not null"`
	ProductID     *uint     `json:"product_id" gorm:"index"`
	Product       *Product  `json:"product,omitempty" gorm:"constraint:OnDelete:SET NULL;"`
	Quantity      int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	CreatedAt     time.Time `json:"created_at" gorm:"<-:create"`
}
