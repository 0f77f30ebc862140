package repositories

import (
	"context"

	"storefront/internal/models"
)

// LikeRepository defines the interface for product likes.
type LikeRepository interface {
	Exists(ctx context.Context, userID string, productID uint) (bool, error)
	// Create stores the like and increments the product's like counter atomically.
	Create(ctx context.Context, like *models.Like) error
}
