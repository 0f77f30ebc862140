package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var phonePattern = regexp.MustCompile(`^\+998\d{9}$`)

// OrderConfirmation describes a committed order.
type OrderConfirmation struct {
	OrderID     uint            `json:"order_id"`
	ProductSlug string          `json:"product_slug"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
	Remaining   int             `json:"remaining"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	notifier    notify.Notifier
	log         *zap.Logger
}

// NewOrderService creates a new OrderService. notifier may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, notifier notify.Notifier, log *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		notifier:    notifier,
		log:         log,
	}
}

// GetAllOrders retrieves all orders, newest first.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// GetOrder retrieves a single order by its ID.
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

// PlaceOrder validates a storefront order and commits it together with the stock decrement.
// Checks run in a fixed order and the first failure is returned: unknown product, phone format,
// missing fields, quantity format, then stock.
func (s *OrderService) PlaceOrder(ctx context.Context, productSlug, customerName, customerPhone, quantityRaw string) (*OrderConfirmation, error) {
	product, err := s.productRepo.GetBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}

	if !phonePattern.MatchString(customerPhone) {
		return nil, ErrInvalidPhone
	}

	if customerName == "" || customerPhone == "" || quantityRaw == "" {
		return nil, ErrMissingField
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(quantityRaw))
	if err != nil || quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	if product.Quantity < quantity {
		return nil, &InsufficientStockError{Available: product.Quantity}
	}

	order := &models.Order{
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
		ProductID:     &product.ID,
		Quantity:      quantity,
		CreatedAt:     time.Now(),
	}
	remaining, err := s.orderRepo.PlaceOrder(ctx, order)
	if err != nil {
		var stockErr *repositories.StockError
		if errors.As(err, &stockErr) {
			return nil, &InsufficientStockError{Available: stockErr.Available}
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		s.log.Error("failed to place order", zap.String("product", productSlug), zap.Error(err))
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	product.Quantity = remaining

	s.log.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.String("product", product.Slug),
		zap.Int("quantity", quantity),
		zap.Int("remaining", remaining),
	)
	publish(ctx, s.notifier, s.log,
		notify.OrderCreated(order, product.Name),
		notify.ProductUpdated(product),
	)

	unitPrice := product.CalculateDiscountedPrice()
	return &OrderConfirmation{
		OrderID:     order.ID,
		ProductSlug: product.Slug,
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Remaining:   remaining,
		CreatedAt:   order.CreatedAt,
	}, nil
}
