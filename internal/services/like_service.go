package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// LikeService records product likes.
type LikeService struct {
	likes    repositories.LikeRepository
	products repositories.ProductRepository
}

// NewLikeService creates a new LikeService.
func NewLikeService(likes repositories.LikeRepository, products repositories.ProductRepository) *LikeService {
	return &LikeService{likes: likes, products: products}
}

// Like records that userID liked the product and returns its new like count.
// A second like by the same user fails with ErrAlreadyLiked.
func (s *LikeService) Like(ctx context.Context, userID, productSlug string) (int, error) {
	product, err := s.products.GetBySlug(ctx, productSlug)
	if err != nil {
		return 0, err
	}

	exists, err := s.likes.Exists(ctx, userID, product.ID)
	if err != nil {
		return 0, err
	}
	if exists {
		return product.Likes, ErrAlreadyLiked
	}

	if err := s.likes.Create(ctx, &models.Like{UserID: userID, ProductID: product.ID}); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return product.Likes, ErrAlreadyLiked
		}
		return 0, fmt.Errorf("failed to like product %s: %w", productSlug, err)
	}
	return product.Likes + 1, nil
}
