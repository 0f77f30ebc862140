package models

import (
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultProductImage is used when a product is created without an image.
const DefaultProductImage = "images/no_image.png"

var hundred = decimal.NewFromInt(100)

// Product represents a product in the store.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null;uniqueIndex" validate:"required,max=255"`
	Slug        string          `json:"slug" gorm:"size:255;uniqueIndex" validate:"omitempty,max=255"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(14,2);not null"`
	Image       string          `json:"image" gorm:"size:255"`
	Discount    int             `json:"discount" gorm:"not null;default:0" validate:"gte=0,lte=100"`
	Quantity    int             `json:"quantity" gorm:"not null;check:quantity >= 0" validate:"gte=0"`
	CategoryID  *uint           `json:"category_id" gorm:"index"`
	Category    *Category       `json:"category,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
	Likes       int             `json:"likes" gorm:"not null;default:0"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// DiscountedPrice is computed on load and never stored.
	DiscountedPrice decimal.Decimal `json:"discounted_price" gorm:"-"`
}

// CalculateDiscountedPrice returns price × (1 − discount/100) rounded to 2 decimal places
// with banker's rounding.
func (p *Product) CalculateDiscountedPrice() decimal.Decimal {
	if p.Discount <= 0 {
		return p.Price.RoundBank(2)
	}
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromInt(int64(p.Discount)).Div(hundred))
	return p.Price.Mul(factor).RoundBank(2)
}

// BeforeSave derives the slug from the name and fills the default image.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
	if p.Image == "" {
		p.Image = DefaultProductImage
	}
	return nil
}

// AfterFind fills the computed discounted price.
func (p *Product) AfterFind(tx *gorm.DB) error {
	p.DiscountedPrice = p.CalculateDiscountedPrice()
	return nil
}
