package repositories

import (
	"context"
	"fmt"
	"strings"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// Search returns products whose name or description contains query, case-insensitively.
func (r *GORMProductRepository) Search(ctx context.Context, query string) ([]models.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.GetAll(ctx)
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products for %q: %w", query, err)
	}
	return products, nil
}

// GetBySlug retrieves a single product with its category.
func (r *GORMProductRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, "slug = ?", slug).Error; err != nil {
		if translate(err) == ErrNotFound {
			return nil, fmt.Errorf("product with slug %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by slug %s: %w", slug, err)
	}
	return &product, nil
}

// GetByCategory lists the products of a category in the requested order.
func (r *GORMProductRepository) GetByCategory(ctx context.Context, categoryID uint, sort ProductSort) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Where("category_id = ?", categoryID)
	switch sort {
	case SortNewest:
		q = q.Order("created_at DESC").Order("id DESC")
	case SortMostLiked:
		q = q.Order("likes DESC")
	case SortPriceDesc:
		q = q.Order("price DESC")
	case SortPriceAsc:
		q = q.Order("price ASC")
	default:
		q = q.Order("id")
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products of category %d: %w", categoryID, err)
	}
	return products, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Omit("Category").Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", translate(err))
	}
	product.DiscountedPrice = product.CalculateDiscountedPrice()
	return nil
}

// Update writes every editable column of an existing product, zero values included.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).
		Model(product).
		Select("name", "slug", "description", "price", "image", "discount", "quantity", "category_id", "updated_at").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d not found for update: %w", product.ID, ErrNotFound)
	}
	product.DiscountedPrice = product.CalculateDiscountedPrice()
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("product_id = ?", id).Update("product_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach orders from product %d: %w", id, err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return fmt.Errorf("failed to delete likes of product %d: %w", id, err)
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %d not found for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
}
