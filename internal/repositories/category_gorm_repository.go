package repositories

import (
	"context"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

func (r *GORMCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	return categories, nil
}

func (r *GORMCategoryRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "slug = ?", slug).Error; err != nil {
		if translate(err) == ErrNotFound {
			return nil, fmt.Errorf("category with slug %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by slug %s: %w", slug, err)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", translate(err))
	}
	return nil
}

func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).
		Model(category).
		Select("title", "slug", "image", "updated_at").
		Updates(category)
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d not found for update: %w", category.ID, ErrNotFound)
	}
	return nil
}

// Delete removes an empty category.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteWithProducts removes the category, its products and their likes in one transaction.
// Orders of those products are kept with the product detached.
func (r *GORMCategoryRepository) DeleteWithProducts(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := tx.Model(&models.Product{}).Select("id").Where("category_id = ?", id)
		if err := tx.Model(&models.Order{}).Where("product_id IN (?)", products).Update("product_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach orders from category %d: %w", id, err)
		}
		if err := tx.Where("product_id IN (?)", products).Delete(&models.Like{}).Error; err != nil {
			return fmt.Errorf("failed to delete likes of category %d: %w", id, err)
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return fmt.Errorf("failed to delete products of category %d: %w", id, err)
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("category with ID %d not found for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
}
