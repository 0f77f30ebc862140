package repositories

import (
	"context"

	"storefront/internal/models"
)

// ProductSort selects the ordering of a category listing.
type ProductSort string

const (
	SortNone      ProductSort = ""
	SortNewest    ProductSort = "new"
	SortMostLiked ProductSort = "likes"
	SortPriceDesc ProductSort = "expensive"
	SortPriceAsc  ProductSort = "cheap"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetByCategory(ctx context.Context, categoryID uint, sort ProductSort) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	// Delete removes the product, its likes, and clears the product reference of its orders.
	Delete(ctx context.Context, id uint) error
}
