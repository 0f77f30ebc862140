package repositories

import (
	"context"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMLikeRepository is a GORM implementation of LikeRepository.
type GORMLikeRepository struct {
	db *gorm.DB
}

// NewGORMLikeRepository creates a new instance of GORMLikeRepository.
func NewGORMLikeRepository(db *gorm.DB) *GORMLikeRepository {
	return &GORMLikeRepository{db: db}
}

func (r *GORMLikeRepository) Exists(ctx context.Context, userID string, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return count > 0, nil
}

func (r *GORMLikeRepository) Create(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(like).Error; err != nil {
			return fmt.Errorf("failed to create like: %w", translate(err))
		}
		res := tx.Model(&models.Product{}).
			Where("id = ?", like.ProductID).
			UpdateColumn("likes", gorm.Expr("likes + 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to increment likes of product %d: %w", like.ProductID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %d: %w", like.ProductID, ErrNotFound)
		}
		return nil
	})
}
