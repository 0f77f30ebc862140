package models

import "time"

// User is an account that can log in to the store.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password    string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"`
	IsStaff     bool      `json:"is_staff" gorm:"not null;default:false"`
	IsSuperuser bool      `json:"is_superuser" gorm:"not null;default:false"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
