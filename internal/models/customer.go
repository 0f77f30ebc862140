package models

import "time"

// Customer is a customer record managed by shop staff.
type Customer struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:255;not null" validate:"required,max=255"`
	Email          string    `json:"email" gorm:"size:255;not null;uniqueIndex" validate:"required,email"`
	Phone          string    `json:"phone" gorm:"size:20;not null" validate:"required,max=20"`
	BillingAddress string    `json:"billing_address" gorm:"type:text;not null" validate:"required"`
	JoinedDate     time.Time `json:"joined_date"`
	Image          string    `json:"image" gorm:"size:255"`
	VATNumber      string    `json:"vat_number" gorm:"size:9;uniqueIndex"`
}
