package repositories

import (
	"context"

	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetByProduct(ctx context.Context, productID uint) ([]models.Order, error)
	// PlaceOrder inserts the order and decrements the stock of its product in one transaction.
	// It returns the stock left after the decrement, or a *StockError when fewer units remain
	// than the order asks for.
	PlaceOrder(ctx context.Context, order *models.Order) (int, error)
}
