package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders, newest first.
func (r *GORMOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Preload("Product").Order("created_at DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Product").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// GetByProduct lists the orders placed for a product.
func (r *GORMOrderRepository) GetByProduct(ctx context.Context, productID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders of product %d: %w", productID, err)
	}
	return orders, nil
}

// PlaceOrder decrements stock with a conditional update and inserts the order in the same
// transaction. The update only matches while quantity >= requested, so concurrent orders for
// the same product can never drive the stock negative.
func (r *GORMOrderRepository) PlaceOrder(ctx context.Context, order *models.Order) (int, error) {
	if order.ProductID == nil {
		return 0, fmt.Errorf("order has no product")
	}
	productID := *order.ProductID

	var remaining int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND quantity >= ?", productID, order.Quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", order.Quantity))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement stock of product %d: %w", productID, res.Error)
		}

		var product models.Product
		if err := tx.Select("id", "quantity").First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product with ID %d: %w", productID, ErrNotFound)
			}
			return fmt.Errorf("failed to read stock of product %d: %w", productID, err)
		}
		if res.RowsAffected != 1 {
			return &StockError{Available: product.Quantity}
		}
		remaining = product.Quantity

		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return remaining, nil
}
